// Package png decodes the chunk structure of a PNG datastream into a
// validated Document. Image data is returned still compressed.
package png

import (
	"errors"
	"io"
	"log"

	"pngchunks.adpollak.net/internal/chunk"
)

// Signature opens every PNG datastream.
// 137 80 78 71 13 10 26 10
const Signature = "\x89\x50\x4E\x47\x0D\x0A\x1A\x0A"

const ihdrLength = 13

// decoder accumulates records while walking the datastream. It is local to
// one Parse call and is only handed out after assemble copies it into a
// Document.
type decoder struct {
	cur *chunk.Cursor
	log *log.Logger

	header  *Header
	palette *Palette
	data    *ImageData
	trailer bool

	transparency       Transparency
	gamma              *float64
	chromaticity       *Chromaticity
	renderingIntent    *RenderingIntent
	iccProfile         *ICCProfile
	texts              []Text
	compressedTexts    []CompressedText
	internationalTexts []InternationalText
	background         Background
	physical           *PhysicalDimensions
	significantBits    SignificantBits
	suggestedPalettes  []SuggestedPalette
	histogram          *Histogram
	time               *Time
	unknown            []UnknownChunk
}

// Parse reads a PNG datastream from r and returns the decoded document, or
// the first error encountered. r is only read and seeked, never written.
func Parse(r io.ReadSeeker, opts ...Option) (*Document, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	d := &decoder{
		cur: chunk.NewCursor(r, cfg.checksums, cfg.maxChunkLength),
		log: cfg.logger,
	}
	if err := d.checkSignature(); err != nil {
		return nil, err
	}
	if err := d.parseIHDR(); err != nil {
		return nil, err
	}
	if err := d.parseChunks(); err != nil {
		return nil, err
	}
	return d.assemble()
}

// checkSignature determines if the stream is a PNG datastream by examining
// the first 8 bytes.
func (d *decoder) checkSignature() error {
	var sig [len(Signature)]byte
	if err := d.cur.ReadFull(sig[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return chunk.ErrInvalidSignature
		}
		return err
	}
	if string(sig[:]) != Signature {
		return chunk.ErrInvalidSignature
	}
	d.log.Println("Successfully validated PNG signature")
	return nil
}

// parseIHDR decodes the mandatory first chunk.
func (d *decoder) parseIHDR() error {
	id := chunk.ChunkIHDR
	length, typ, err := d.cur.ReadHeader()
	if err != nil {
		return err
	}
	if typ != id {
		return chunk.Errorf(id, chunk.ErrMissingRequiredChunk)
	}
	if length != ihdrLength {
		return chunk.Errorf(id, chunk.ErrInvalidChunkLength)
	}
	c, err := d.cur.ReadBody(length, typ)
	if err != nil {
		return err
	}

	// width:              4 bytes
	// height:             4 bytes
	// Bit depth:          1 byte
	// Color type:         1 byte
	// Compression method: 1 byte
	// Filter method:      1 byte
	// Interlace method:   1 byte
	h := Header{
		Width:             chunk.U32(c.Data[0:4]),
		Height:            chunk.U32(c.Data[4:8]),
		BitDepth:          c.Data[8],
		ColorType:         ColorType(c.Data[9]),
		CompressionMethod: c.Data[10],
		FilterMethod:      c.Data[11],
		InterlaceMethod:   InterlaceMethod(c.Data[12]),
	}
	if err := h.validate(); err != nil {
		return err
	}
	d.log.Printf("IHDR data: %+v\n", h)
	d.header = &h
	return nil
}

func (h Header) validate() error {
	id := chunk.ChunkIHDR
	switch {
	case h.Width == 0 || h.Width > chunk.MaxLength:
		return chunk.InvalidField(id, "width")
	case h.Height == 0 || h.Height > chunk.MaxLength:
		return chunk.InvalidField(id, "height")
	case h.CompressionMethod != CompressionDeflate:
		return chunk.InvalidField(id, "compression method")
	case h.FilterMethod != FilterAdaptive:
		return chunk.InvalidField(id, "filter method")
	case h.InterlaceMethod != InterlaceNone && h.InterlaceMethod != InterlaceAdam7:
		return chunk.InvalidField(id, "interlace method")
	}
	depths, ok := validBitDepths[h.ColorType]
	if !ok {
		return chunk.InvalidField(id, "color type")
	}
	for _, bd := range depths {
		if bd == h.BitDepth {
			return nil
		}
	}
	return chunk.InvalidField(id, "bit depth")
}

// parseChunks walks the datastream until IEND, handing each chunk to the
// decoder for its type.
func (d *decoder) parseChunks() error {
	for !d.trailer {
		c, err := d.cur.ReadChunk()
		if err != nil {
			return err
		}
		d.log.Printf("chunkType: %v length: %d\n", c.Type, c.Length)
		if err := d.dispatch(c); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) dispatch(c chunk.Chunk) error {
	switch c.Type.Kind() {
	case chunk.KindHeader:
		return chunk.Errorf(c.Type, chunk.ErrDuplicateChunk)
	case chunk.KindPalette:
		return d.parsePLTE(c)
	case chunk.KindData:
		return d.parseIDAT(c)
	case chunk.KindTrailer:
		return d.parseIEND(c)
	case chunk.KindTransparency:
		return d.parseTRNS(c)
	case chunk.KindGamma:
		return d.parseGAMA(c)
	case chunk.KindChromaticity:
		return d.parseCHRM(c)
	case chunk.KindStandardRGB:
		return d.parseSRGB(c)
	case chunk.KindICCProfile:
		return d.parseICCP(c)
	case chunk.KindText:
		return d.parseTEXT(c)
	case chunk.KindCompressedText:
		return d.parseZTXT(c)
	case chunk.KindInternationalText:
		return d.parseITXT(c)
	case chunk.KindBackground:
		return d.parseBKGD(c)
	case chunk.KindPhysicalDimensions:
		return d.parsePHYS(c)
	case chunk.KindSignificantBits:
		return d.parseSBIT(c)
	case chunk.KindSuggestedPalette:
		return d.parseSPLT(c)
	case chunk.KindHistogram:
		return d.parseHIST(c)
	case chunk.KindTime:
		return d.parseTIME(c)
	default:
		d.log.Printf("Skipping chunk type: %s\n", c.Type)
		d.unknown = append(d.unknown, UnknownChunk{Type: c.Type, Data: c.Data})
		return nil
	}
}

func (d *decoder) parseIEND(c chunk.Chunk) error {
	if c.Length != 0 {
		return chunk.Errorf(c.Type, chunk.ErrInvalidChunkLength)
	}
	d.log.Println("Reached IEND")
	d.trailer = true
	return nil
}

// assemble checks that every required chunk was seen and freezes the
// collected records into a Document.
func (d *decoder) assemble() (*Document, error) {
	if d.header == nil {
		return nil, chunk.Errorf(chunk.ChunkIHDR, chunk.ErrMissingRequiredChunk)
	}
	if d.header.ColorType == IndexedColor && d.palette == nil {
		return nil, chunk.Errorf(chunk.ChunkPLTE, chunk.ErrMissingRequiredChunk)
	}
	if d.data == nil {
		return nil, chunk.Errorf(chunk.ChunkIDAT, chunk.ErrMissingRequiredChunk)
	}
	if !d.trailer {
		return nil, chunk.Errorf(chunk.ChunkIEND, chunk.ErrMissingRequiredChunk)
	}

	return &Document{
		Header:             *d.header,
		Palette:            d.palette,
		Data:               *d.data,
		Transparency:       d.transparency,
		Gamma:              d.gamma,
		Chromaticity:       d.chromaticity,
		RenderingIntent:    d.renderingIntent,
		ICCProfile:         d.iccProfile,
		Texts:              d.texts,
		CompressedTexts:    d.compressedTexts,
		InternationalTexts: d.internationalTexts,
		Background:         d.background,
		PhysicalDimensions: d.physical,
		SignificantBits:    d.significantBits,
		SuggestedPalettes:  d.suggestedPalettes,
		Histogram:          d.histogram,
		Time:               d.time,
		Unknown:            d.unknown,
	}, nil
}
