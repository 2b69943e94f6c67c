package png

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// MaxInflatedSize caps how much a single compressed payload may expand to.
const MaxInflatedSize = 64 << 20

// ErrInflatedTooLarge is returned when a payload expands past the limit.
var ErrInflatedTooLarge = errors.New("inflated data exceeds size limit")

// inflate decompresses a zlib stream, stopping with ErrInflatedTooLarge
// once more than limit bytes come out.
func inflate(compressed []byte, limit int64) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("failed to read deflated data: %w", err)
	}
	defer zr.Close()

	var out bytes.Buffer
	n, err := io.Copy(&out, io.LimitReader(zr, limit+1))
	if err != nil {
		return nil, fmt.Errorf("error inflating data: %w", err)
	}
	if n > limit {
		return nil, ErrInflatedTooLarge
	}
	return out.Bytes(), nil
}

// Inflate returns the decompressed text, converted from Latin-1.
func (t CompressedText) Inflate() (string, error) {
	b, err := inflate(t.Compressed, MaxInflatedSize)
	if err != nil {
		return "", err
	}
	return latin1(b), nil
}

// Decode returns the UTF-8 text, decompressing it first when needed.
func (t InternationalText) Decode() (string, error) {
	if !t.Compressed {
		return string(t.Text), nil
	}
	b, err := inflate(t.Text, MaxInflatedSize)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Inflate returns the raw ICC profile.
func (p ICCProfile) Inflate() ([]byte, error) {
	return inflate(p.Profile, MaxInflatedSize)
}

// InflatedSize reports how many bytes of filtered scanlines the image data
// expands to, without keeping them. It fails with ErrInflatedTooLarge past
// MaxInflatedSize.
func (d ImageData) InflatedSize() (int64, error) {
	return d.inflatedSize(MaxInflatedSize)
}

func (d ImageData) inflatedSize(limit int64) (int64, error) {
	zr, err := zlib.NewReader(bytes.NewReader(d.Data))
	if err != nil {
		return 0, fmt.Errorf("failed to read deflated IDAT data: %w", err)
	}
	defer zr.Close()
	n, err := io.Copy(io.Discard, io.LimitReader(zr, limit+1))
	if err != nil {
		return n, fmt.Errorf("error reading inflated IDAT data: %w", err)
	}
	if n > limit {
		return n, ErrInflatedTooLarge
	}
	return n, nil
}
