package png

import (
	"golang.org/x/text/encoding/charmap"

	"pngchunks.adpollak.net/internal/chunk"
)

// latin1 converts ISO-8859-1 bytes, the encoding of tEXt and zTXt, to a Go
// string.
func latin1(b []byte) string {
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}

// keyword reads the null-terminated keyword that starts b.
func keyword(id chunk.ID, b []byte) (string, []byte, error) {
	kw, rest, err := chunk.Keyword(b)
	if err != nil {
		return "", nil, chunk.Errorf(id, err)
	}
	return latin1(kw), rest, nil
}

func (d *decoder) parseICCP(c chunk.Chunk) error {
	id := c.Type
	if d.iccProfile != nil {
		return chunk.Errorf(id, chunk.ErrDuplicateChunk)
	}
	if err := d.checkOrder(id, beforePLTE|beforeIDAT); err != nil {
		return err
	}

	name, rest, err := keyword(id, c.Data)
	if err != nil {
		return err
	}
	if len(rest) < 1 {
		return chunk.Errorf(id, chunk.ErrInvalidChunkLength)
	}
	if rest[0] != CompressionDeflate {
		return chunk.InvalidField(id, "compression method")
	}
	d.iccProfile = &ICCProfile{
		Name:              name,
		CompressionMethod: rest[0],
		Profile:           rest[1:],
	}
	return nil
}

func (d *decoder) parseTEXT(c chunk.Chunk) error {
	kw, rest, err := keyword(c.Type, c.Data)
	if err != nil {
		return err
	}
	d.texts = append(d.texts, Text{Keyword: kw, Text: latin1(rest)})
	return nil
}

func (d *decoder) parseZTXT(c chunk.Chunk) error {
	id := c.Type
	kw, rest, err := keyword(id, c.Data)
	if err != nil {
		return err
	}
	if len(rest) < 1 {
		return chunk.Errorf(id, chunk.ErrInvalidChunkLength)
	}
	if rest[0] != CompressionDeflate {
		return chunk.InvalidField(id, "compression method")
	}
	d.compressedTexts = append(d.compressedTexts, CompressedText{
		Keyword:           kw,
		CompressionMethod: rest[0],
		Compressed:        rest[1:],
	})
	return nil
}

func (d *decoder) parseITXT(c chunk.Chunk) error {
	id := c.Type
	kw, rest, err := keyword(id, c.Data)
	if err != nil {
		return err
	}
	if len(rest) < 2 {
		return chunk.Errorf(id, chunk.ErrInvalidChunkLength)
	}
	flag, method := rest[0], rest[1]
	if flag > 1 {
		return chunk.InvalidField(id, "compression flag")
	}
	if method != CompressionDeflate {
		return chunk.InvalidField(id, "compression method")
	}

	lang, rest, err := chunk.CString(rest[2:])
	if err != nil {
		return chunk.Errorf(id, err)
	}
	translated, text, err := chunk.CString(rest)
	if err != nil {
		return chunk.Errorf(id, err)
	}
	d.internationalTexts = append(d.internationalTexts, InternationalText{
		Keyword:           kw,
		Compressed:        flag == 1,
		CompressionMethod: method,
		LanguageTag:       string(lang),
		TranslatedKeyword: string(translated),
		Text:              text,
	})
	return nil
}

func (d *decoder) parseSPLT(c chunk.Chunk) error {
	id := c.Type
	if err := d.checkOrder(id, beforeIDAT); err != nil {
		return err
	}

	name, rest, err := keyword(id, c.Data)
	if err != nil {
		return err
	}
	if len(rest) < 1 {
		return chunk.Errorf(id, chunk.ErrInvalidChunkLength)
	}
	depth, rest := rest[0], rest[1:]

	var (
		entries []SuggestedPaletteEntry
		ok      bool
	)
	switch depth {
	case 8:
		entries, ok = chunk.Records(rest, 6, func(b []byte) SuggestedPaletteEntry {
			return SuggestedPaletteEntry{
				R:         uint16(b[0]),
				G:         uint16(b[1]),
				B:         uint16(b[2]),
				A:         uint16(b[3]),
				Frequency: chunk.U16(b[4:6]),
			}
		})
	case 16:
		entries, ok = chunk.Records(rest, 10, func(b []byte) SuggestedPaletteEntry {
			return SuggestedPaletteEntry{
				R:         chunk.U16(b[0:2]),
				G:         chunk.U16(b[2:4]),
				B:         chunk.U16(b[4:6]),
				A:         chunk.U16(b[6:8]),
				Frequency: chunk.U16(b[8:10]),
			}
		})
	default:
		return chunk.InvalidField(id, "sample depth")
	}
	if !ok {
		return chunk.Errorf(id, chunk.ErrInvalidChunkLength)
	}
	d.suggestedPalettes = append(d.suggestedPalettes, SuggestedPalette{
		Name:        name,
		SampleDepth: depth,
		Entries:     entries,
	})
	return nil
}
