// endian_le.go -- zero-copy word conversions for little-endian hosts
//
// (c) Sudhi Herle 2018
//
// License GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

//go:build 386 || amd64 || arm || arm64 || ppc64le || mipsle || mips64le || riscv64 || loong64 || wasm

package rsdict

import (
	"unsafe"
)

// u64sToByteSlice returns the little-endian byte encoding of 'v'; on
// this platform it aliases 'v'.
func u64sToByteSlice(v []uint64) []byte {
	if len(v) == 0 {
		return []byte{}
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*8)
}

// bsToUint64Slice decodes little-endian words from 'b'; on this platform
// it aliases 'b', which must be 8-byte aligned.
func bsToUint64Slice(b []byte) []uint64 {
	if len(b) < 8 {
		return []uint64{}
	}
	return unsafe.Slice((*uint64)(unsafe.Pointer(&b[0])), len(b)/8)
}
