// errors.go - public errors exposed by rsdict
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
	"errors"
)

var (
	// ErrOutOfRange is returned when a bit position or rank query is
	// outside the valid range of the bit vector.
	ErrOutOfRange = errors.New("index out of range")

	// ErrNotFound is returned by Select1 when there is no set bit
	// with the requested rank.
	ErrNotFound = errors.New("no such set bit")

	// ErrInvalidOption is returned when a tuning parameter in Options
	// is outside its permissible range.
	ErrInvalidOption = errors.New("invalid option")

	// Header too small for unmarshalling
	ErrTooSmall = errors.New("not enough data to unmarshal")

	// ErrCorrupt is returned when a vector file fails its integrity checks
	ErrCorrupt = errors.New("corrupted vector file")
)
