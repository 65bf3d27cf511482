// endian_be.go -- word conversions for big-endian hosts
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

//go:build !(386 || amd64 || arm || arm64 || ppc64le || mipsle || mips64le || riscv64 || loong64 || wasm)

package rsdict

import (
	"encoding/binary"
)

// u64sToByteSlice returns the little-endian byte encoding of 'v'
func u64sToByteSlice(v []uint64) []byte {
	b := make([]byte, len(v)*8)
	for i, x := range v {
		binary.LittleEndian.PutUint64(b[i*8:], x)
	}
	return b
}

// bsToUint64Slice decodes little-endian words from 'b' into native order
func bsToUint64Slice(b []byte) []uint64 {
	v := make([]uint64, len(b)/8)
	for i := range v {
		v[i] = binary.LittleEndian.Uint64(b[i*8:])
	}
	return v
}
