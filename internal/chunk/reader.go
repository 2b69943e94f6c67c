package chunk

import (
	"bytes"
	"errors"
	"io"

	"github.com/snksoft/crc"
)

// MaxLength is the largest chunk data length the format allows (2^31 - 1).
const MaxLength = 0x7fffffff

// headerSize is the length field plus the chunk type.
const headerSize = 8

var crcTable = crc.NewTable(crc.CRC32)

// Checksum computes the CRC-32 of a chunk's type followed by its data.
func Checksum(id ID, data []byte) uint32 {
	b := id.Bytes()
	block := make([]byte, 0, len(b)+len(data))
	block = append(block, b[:]...)
	block = append(block, data...)
	return uint32(crcTable.CalculateCRC(block))
}

// Cursor reads chunks sequentially from a seekable byte source. It is owned
// by a single parse and must not be shared.
type Cursor struct {
	r         io.ReadSeeker
	verify    bool
	maxLength uint32
	tmp       [headerSize]byte
}

// NewCursor wraps r. When verify is set every chunk's stored CRC is checked.
// Declared lengths above maxLength are rejected before any data is read.
func NewCursor(r io.ReadSeeker, verify bool, maxLength uint32) *Cursor {
	if maxLength == 0 || maxLength > MaxLength {
		maxLength = MaxLength
	}
	return &Cursor{r: r, verify: verify, maxLength: maxLength}
}

// ReadFull fills p from the source.
func (c *Cursor) ReadFull(p []byte) error {
	if _, err := io.ReadFull(c.r, p); err != nil {
		return &IOError{Op: "read", Err: err}
	}
	return nil
}

// ReadU32 reads a big-endian uint32.
func (c *Cursor) ReadU32() (uint32, error) {
	if err := c.ReadFull(c.tmp[:4]); err != nil {
		return 0, err
	}
	return U32(c.tmp[:4]), nil
}

// ReadHeader reads the length and type that open every chunk.
func (c *Cursor) ReadHeader() (length uint32, id ID, err error) {
	if err := c.ReadFull(c.tmp[:headerSize]); err != nil {
		return 0, 0, err
	}
	return U32(c.tmp[:4]), FromBytes(c.tmp[4:8]), nil
}

// Rewind moves the source back by the size of one chunk header, undoing the
// last ReadHeader.
func (c *Cursor) Rewind() error {
	if _, err := c.r.Seek(-headerSize, io.SeekCurrent); err != nil {
		return &IOError{Op: "seek", Err: err}
	}
	return nil
}

// ReadChunk reads one complete chunk.
func (c *Cursor) ReadChunk() (Chunk, error) {
	// Below is visually what a chunk in the PNG datastream looks like.
	//  +------------+ +------------+ +------------+ +-------+
	//  |   LENGTH   | | CHUNK TYPE | | CHUNK DATA | |  CRC  |
	//  +------------+ +------------+ +------------+ +-------+
	length, id, err := c.ReadHeader()
	if err != nil {
		return Chunk{}, err
	}
	return c.ReadBody(length, id)
}

// ReadBody reads the data and CRC of a chunk whose header was already
// consumed.
func (c *Cursor) ReadBody(length uint32, id ID) (Chunk, error) {
	if length > c.maxLength {
		return Chunk{}, Errorf(id, ErrInvalidChunkLength)
	}

	// The type and data are kept in one block since the CRC covers both.
	// The buffer grows with the bytes actually present, never from the
	// declared length alone.
	var block bytes.Buffer
	b := id.Bytes()
	block.Write(b[:])
	if _, err := io.CopyN(&block, c.r, int64(length)); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return Chunk{}, &IOError{Op: "read chunk data", Err: err}
	}

	stored, err := c.ReadU32()
	if err != nil {
		return Chunk{}, err
	}
	typeAndData := block.Bytes()
	if c.verify && uint32(crcTable.CalculateCRC(typeAndData)) != stored {
		return Chunk{}, Errorf(id, ErrChecksumMismatch)
	}

	return Chunk{
		Length: length,
		Type:   id,
		Data:   typeAndData[4:],
		CRC:    stored,
	}, nil
}
