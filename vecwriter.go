// vecwriter.go -- write a bitvector to a self-checking file
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

package rsdict

import (
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/dchest/siphash"
)

// The on-disk vector file has the following structure:
//   - 64 byte file header: big-endian encoding of all multibyte ints
//      * magic    [4]byte  "RSBV"
//      * flags    uint32   (reserved, 0)
//      * salt     [16]byte random salt for the siphash payload checksum
//      * nbits    uint64   length of the bitvector in bits
//      * offset   uint64   file offset of the payload (page-aligned)
//      * cksum    uint64   siphash-2-4 of the payload bytes
//      * resv     [16]byte
//
//   - Zero padding until the next PageSize boundary. Readers only need
//     the offset to be a multiple of 8; the page size of the reading
//     host does not matter.
//   - Payload: ceil(nbits/64) little-endian uint64 words; bit i is
//     bit i%64 of word i/64. Bits past nbits are zero.
//     The payload is memory mapped by OpenVectorFile(); little-endian
//     makes it usable in place on the common archs.
//   - 32 bytes of strong checksum (SHA512_256) over the file header.
//
// Only the raw bits are stored. The rank/select index is cheap to
// rebuild and has no on-disk form.

const (
	_Magic = "RSBV"

	_HeaderSize  = 64
	_TrailerSize = 32
)

// WriteVectorFile writes 'bv' to file 'fn'. The data is written to a
// temporary file first and renamed into place once complete.
func WriteVectorFile(fn string, bv *BitVector) error {
	return writeVectorFile(fn, bv, uint64(os.Getpagesize()))
}

// write 'bv' with its payload at the first multiple of 'align' (a power
// of two, at least 8) past the header.
func writeVectorFile(fn string, bv *BitVector, align uint64) (err error) {
	tmp := fmt.Sprintf("%s.tmp.%d", fn, rand32())
	fd, err := os.OpenFile(tmp, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	// undo the tmpfile
	defer func(e *error) {
		if *e != nil {
			fd.Close()
			os.Remove(tmp)
		}
	}(&err)

	salt := randbytes(16)
	payload := u64sToByteSlice(bv.v)

	h := siphash.New(salt)
	h.Write(payload)

	// The payload offset is a multiple of 'align'; the reader needs
	// 8-byte alignment to use the mapped words in place.
	align_m1 := align - 1
	off := (uint64(_HeaderSize) + align_m1) & ^align_m1

	var hdr [_HeaderSize]byte

	be := binary.BigEndian
	copy(hdr[:4], _Magic)

	i := 8
	i += copy(hdr[i:], salt)
	be.PutUint64(hdr[i:i+8], bv.n)
	i += 8
	be.PutUint64(hdr[i:i+8], off)
	i += 8
	be.PutUint64(hdr[i:i+8], h.Sum64())

	cksum := sha512.Sum512_256(hdr[:])

	wr := newErrWriter(fd)
	wr.Write(hdr[:])
	wr.Write(make([]byte, off-_HeaderSize))
	wr.Write(payload)
	wr.Write(cksum[:])
	if err = wr.Error(); err != nil {
		return fmt.Errorf("%s: %w", tmp, err)
	}
	if exp := off + uint64(len(payload)) + _TrailerSize; wr.Written() != exp {
		return fmt.Errorf("%s: wrote %d bytes, exp %d", tmp, wr.Written(), exp)
	}

	if err = fd.Sync(); err != nil {
		return err
	}

	if err = fd.Close(); err != nil {
		return err
	}

	if err = os.Rename(tmp, fn); err != nil {
		return err
	}
	return nil
}
