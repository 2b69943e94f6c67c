// Package pngtest assembles PNG datastreams chunk by chunk for tests.
package pngtest

import (
	"bytes"
	"encoding/binary"

	"github.com/klauspost/compress/zlib"

	"pngchunks.adpollak.net/internal/chunk"
)

// Signature is the 8-byte PNG magic.
const Signature = "\x89PNG\r\n\x1a\n"

// Builder accumulates a datastream.
type Builder struct {
	buf bytes.Buffer
}

// New starts a datastream with the PNG signature already written.
func New() *Builder {
	b := &Builder{}
	b.buf.WriteString(Signature)
	return b
}

// Empty starts a datastream with nothing written.
func Empty() *Builder {
	return &Builder{}
}

// Raw appends p verbatim.
func (b *Builder) Raw(p []byte) *Builder {
	b.buf.Write(p)
	return b
}

// Chunk appends a chunk with a correct CRC.
func (b *Builder) Chunk(tag string, data []byte) *Builder {
	id, err := chunk.FromString(tag)
	if err != nil {
		panic(err)
	}
	return b.ChunkCRC(tag, data, chunk.Checksum(id, data))
}

// ChunkCRC appends a chunk with the given stored CRC.
func (b *Builder) ChunkCRC(tag string, data []byte, crc uint32) *Builder {
	b.buf.Write(U32(uint32(len(data))))
	b.buf.WriteString(tag)
	b.buf.Write(data)
	b.buf.Write(U32(crc))
	return b
}

// Header appends a non-interlaced IHDR chunk.
func (b *Builder) Header(width, height uint32, depth, colorType uint8) *Builder {
	return b.Chunk("IHDR", IHDR(width, height, depth, colorType, 0))
}

// Data appends an IDAT chunk.
func (b *Builder) Data(p []byte) *Builder {
	return b.Chunk("IDAT", p)
}

// End appends the IEND chunk.
func (b *Builder) End() *Builder {
	return b.Chunk("IEND", nil)
}

// Bytes returns the datastream built so far.
func (b *Builder) Bytes() []byte {
	return bytes.Clone(b.buf.Bytes())
}

// Reader returns a seekable reader over the datastream.
func (b *Builder) Reader() *bytes.Reader {
	return bytes.NewReader(b.Bytes())
}

// IHDR encodes header data with compression and filter method 0.
func IHDR(width, height uint32, depth, colorType, interlace uint8) []byte {
	p := append(U32(width), U32(height)...)
	return append(p, depth, colorType, 0, 0, interlace)
}

// U16 encodes v big-endian.
func U16(v uint16) []byte {
	return binary.BigEndian.AppendUint16(nil, v)
}

// U32 encodes v big-endian.
func U32(v uint32) []byte {
	return binary.BigEndian.AppendUint32(nil, v)
}

// Concat joins byte slices.
func Concat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

// Deflate zlib-compresses p.
func Deflate(p []byte) []byte {
	var out bytes.Buffer
	zw := zlib.NewWriter(&out)
	if _, err := zw.Write(p); err != nil {
		panic(err)
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return out.Bytes()
}

// Gray1x1 is a complete, decodable 1x1 8-bit grayscale image.
func Gray1x1() *Builder {
	// One scanline: filter type 0, one sample.
	return New().Header(1, 1, 8, 0).Data(Deflate([]byte{0, 0x80})).End()
}
