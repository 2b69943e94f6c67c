package chunk

import (
	"bytes"
	"encoding/binary"
)

// MaxKeywordLength is the longest keyword or name a chunk may carry.
const MaxKeywordLength = 79

// U16 decodes a big-endian uint16 from the first two bytes of b.
func U16(b []byte) uint16 {
	return binary.BigEndian.Uint16(b)
}

// U32 decodes a big-endian uint32 from the first four bytes of b.
func U32(b []byte) uint32 {
	return binary.BigEndian.Uint32(b)
}

// Fixed decodes a four-byte unsigned integer representing value * 100000.
func Fixed(b []byte) float64 {
	return float64(U32(b)) / 100_000.0
}

// CString splits b at its first zero byte. It returns the bytes before the
// terminator and the bytes after it.
func CString(b []byte) (s, rest []byte, err error) {
	i := bytes.IndexByte(b, 0)
	if i < 0 {
		return nil, nil, ErrMissingNullTerminator
	}
	return b[:i], b[i+1:], nil
}

// Keyword is CString with the 1-79 byte length rule applied to the string.
func Keyword(b []byte) (s, rest []byte, err error) {
	s, rest, err = CString(b)
	if err != nil {
		return nil, nil, err
	}
	if len(s) == 0 || len(s) > MaxKeywordLength {
		return nil, nil, ErrInvalidStringLength
	}
	return s, rest, nil
}

// Records splits b into fixed-size records and decodes each with fn. ok is
// false when len(b) is not a multiple of size.
func Records[T any](b []byte, size int, fn func(rec []byte) T) (out []T, ok bool) {
	if size <= 0 || len(b)%size != 0 {
		return nil, false
	}
	out = make([]T, 0, len(b)/size)
	for i := 0; i < len(b); i += size {
		out = append(out, fn(b[i:i+size]))
	}
	return out, true
}
