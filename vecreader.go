// vecreader.go -- memory map a bitvector written by WriteVectorFile
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
	"crypto/subtle"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/dchest/siphash"
	"github.com/dustin/go-humanize"
	"github.com/opencoff/go-mmap"
)

// VectorFile is a bitvector backed by a read-only memory mapping of a
// file. The BitVector (and any index built over it) must not be used
// after Close().
type VectorFile struct {
	bv *BitVector

	nbits  uint64
	offset uint64
	cksum  uint64
	salt   []byte

	// nil for an empty bitvector
	mm *mmap.Mapping
	fd *os.File
	fn string
}

// OpenVectorFile opens a file written by WriteVectorFile, verifies its
// checksums and maps the bits into memory.
func OpenVectorFile(fn string) (vf *VectorFile, err error) {
	fd, err := os.Open(fn)
	if err != nil {
		return nil, err
	}

	var mapping *mmap.Mapping

	defer func(e *error) {
		if *e != nil {
			if mapping != nil {
				mapping.Unmap()
			}
			fd.Close()
		}
	}(&err)

	st, err := fd.Stat()
	if err != nil {
		return nil, fmt.Errorf("%s: can't stat: %w", fn, err)
	}

	sz := st.Size()
	if sz < (_HeaderSize + _TrailerSize) {
		return nil, fmt.Errorf("%s: file too small: %w", fn, ErrTooSmall)
	}

	var hdrb [_HeaderSize]byte

	_, err = io.ReadFull(fd, hdrb[:])
	if err != nil {
		return nil, fmt.Errorf("%s: can't read header: %w", fn, err)
	}

	vf = &VectorFile{
		fd: fd,
		fn: fn,
	}

	if err = vf.verifyHeader(hdrb[:], sz); err != nil {
		return nil, err
	}

	if err = vf.decodeHeader(hdrb[:], sz); err != nil {
		return nil, err
	}

	nw := words(vf.nbits)
	if nw == 0 {
		vf.bv = wrapWords([]uint64{}, 0)
		return vf, nil
	}

	// map from the start of the file: mmap offsets must be multiples of
	// the page size, which need not match the writer's.
	mm := mmap.New(fd)
	mapsz := vf.offset + nw*8
	mapping, err = mm.Map(int64(mapsz), 0, mmap.PROT_READ, mmap.F_READAHEAD)
	if err != nil {
		return nil, fmt.Errorf("%s: can't mmap %d bytes: %w", fn, mapsz, err)
	}
	vf.mm = mapping

	bs := mapping.Bytes()[vf.offset:mapsz]
	h := siphash.New(vf.salt)
	h.Write(bs)
	if csum := h.Sum64(); csum != vf.cksum {
		return nil, fmt.Errorf("%s: payload checksum failure; exp %#x, saw %#x: %w",
			fn, vf.cksum, csum, ErrCorrupt)
	}

	v := bsToUint64Slice(bs)
	if r := vf.nbits % 64; r > 0 && (v[nw-1] & ^widthMask(uint(r))) != 0 {
		return nil, fmt.Errorf("%s: bits set beyond length %d: %w", fn, vf.nbits, ErrCorrupt)
	}

	vf.bv = wrapWords(v, vf.nbits)
	return vf, nil
}

// BitVector returns the memory mapped bitvector
func (vf *VectorFile) BitVector() *BitVector {
	return vf.bv
}

// Filename returns the name of the underlying file
func (vf *VectorFile) Filename() string {
	return vf.fn
}

// Close unmaps the bitvector and closes the file
func (vf *VectorFile) Close() error {
	if vf.mm != nil {
		vf.mm.Unmap()
		vf.mm = nil
	}

	err := vf.fd.Close()
	vf.bv = nil
	vf.fd = nil
	vf.salt = nil
	return err
}

// Desc provides a human description of the vector file
func (vf *VectorFile) Desc() string {
	return fmt.Sprintf("%s: %d bits, %d ones (%s) at %#x, salt %#x\n",
		vf.fn, vf.nbits, vf.bv.ones, humanize.IBytes(words(vf.nbits)*8), vf.offset, vf.salt)
}

// Verify checksum of the header; the trailer is the last 32 bytes of
// the file.
func (vf *VectorFile) verifyHeader(hdrb []byte, sz int64) error {
	var expsum [_TrailerSize]byte

	_, err := vf.fd.ReadAt(expsum[:], sz-_TrailerSize)
	if err != nil {
		return fmt.Errorf("%s: checksum i/o error: %w", vf.fn, err)
	}

	csum := sha512.Sum512_256(hdrb)
	if subtle.ConstantTimeCompare(csum[:], expsum[:]) != 1 {
		return fmt.Errorf("%s: header checksum failure; exp %#x, saw %#x: %w",
			vf.fn, expsum[:], csum[:], ErrCorrupt)
	}
	return nil
}

// entry condition: b is _HeaderSize bytes long.
func (vf *VectorFile) decodeHeader(b []byte, sz int64) error {
	if magic := string(b[:4]); magic != _Magic {
		return fmt.Errorf("%s: bad file magic <%s>: %w", vf.fn, magic, ErrCorrupt)
	}

	be := binary.BigEndian
	i := 8

	vf.salt = make([]byte, 16)
	i += copy(vf.salt, b[i:i+16])
	vf.nbits = be.Uint64(b[i : i+8])
	i += 8
	vf.offset = be.Uint64(b[i : i+8])
	i += 8
	vf.cksum = be.Uint64(b[i : i+8])

	if vf.offset < _HeaderSize || vf.offset >= uint64(sz) || vf.offset%8 != 0 {
		return fmt.Errorf("%s: corrupt header: payload offset %d: %w", vf.fn, vf.offset, ErrCorrupt)
	}

	// nbits must leave room for the payload length computation below
	if vf.nbits > uint64(sz)*8 {
		return fmt.Errorf("%s: corrupt header: %d bits in %d bytes: %w", vf.fn, vf.nbits, sz, ErrCorrupt)
	}

	exp := vf.offset + words(vf.nbits)*8 + _TrailerSize
	if exp != uint64(sz) {
		return fmt.Errorf("%s: size mismatch; exp %d, saw %d: %w", vf.fn, exp, sz, ErrCorrupt)
	}
	return nil
}
