package png

import "pngchunks.adpollak.net/internal/chunk"

const maxPaletteEntries = 256

func (d *decoder) parsePLTE(c chunk.Chunk) error {
	id := c.Type
	if d.palette != nil {
		return chunk.Errorf(id, chunk.ErrDuplicateChunk)
	}
	if err := d.checkOrder(id, beforeIDAT); err != nil {
		return err
	}
	if c.Length == 0 || c.Length > 3*maxPaletteEntries {
		return chunk.Errorf(id, chunk.ErrInvalidChunkLength)
	}
	entries, ok := chunk.Records(c.Data, 3, func(b []byte) RGB {
		return RGB{R: b[0], G: b[1], B: b[2]}
	})
	if !ok {
		return chunk.Errorf(id, chunk.ErrInvalidChunkLength)
	}
	d.palette = &Palette{Entries: entries}
	return nil
}

func (d *decoder) parseTRNS(c chunk.Chunk) error {
	id := c.Type
	if d.transparency != nil {
		return chunk.Errorf(id, chunk.ErrDuplicateChunk)
	}
	if err := d.checkOrder(id, d.paletteOrder()); err != nil {
		return err
	}

	switch d.header.ColorType {
	case Grayscale:
		if c.Length != 2 {
			return chunk.Errorf(id, chunk.ErrInvalidChunkLength)
		}
		d.transparency = &GrayTransparency{Gray: chunk.U16(c.Data)}
	case TrueColor:
		if c.Length != 6 {
			return chunk.Errorf(id, chunk.ErrInvalidChunkLength)
		}
		d.transparency = &RGBTransparency{
			R: chunk.U16(c.Data[0:2]),
			G: chunk.U16(c.Data[2:4]),
			B: chunk.U16(c.Data[4:6]),
		}
	case IndexedColor:
		if int(c.Length) != len(d.palette.Entries) {
			return chunk.Errorf(id, chunk.ErrInvalidChunkLength)
		}
		d.transparency = &IndexedTransparency{Alpha: c.Data}
	default:
		// Alpha color types carry a full alpha channel already.
		return chunk.InvalidField(id, "color type")
	}
	return nil
}

func (d *decoder) parseGAMA(c chunk.Chunk) error {
	id := c.Type
	if d.gamma != nil {
		return chunk.Errorf(id, chunk.ErrDuplicateChunk)
	}
	if err := d.checkOrder(id, beforePLTE|beforeIDAT); err != nil {
		return err
	}
	if c.Length != 4 {
		return chunk.Errorf(id, chunk.ErrInvalidChunkLength)
	}
	gamma := chunk.Fixed(c.Data)
	d.gamma = &gamma
	return nil
}

func (d *decoder) parseCHRM(c chunk.Chunk) error {
	id := c.Type
	if d.chromaticity != nil {
		return chunk.Errorf(id, chunk.ErrDuplicateChunk)
	}
	if err := d.checkOrder(id, beforePLTE|beforeIDAT); err != nil {
		return err
	}
	if c.Length != 32 {
		return chunk.Errorf(id, chunk.ErrInvalidChunkLength)
	}
	b := c.Data
	d.chromaticity = &Chromaticity{
		WhiteX: chunk.Fixed(b[0:4]),
		WhiteY: chunk.Fixed(b[4:8]),
		RedX:   chunk.Fixed(b[8:12]),
		RedY:   chunk.Fixed(b[12:16]),
		GreenX: chunk.Fixed(b[16:20]),
		GreenY: chunk.Fixed(b[20:24]),
		BlueX:  chunk.Fixed(b[24:28]),
		BlueY:  chunk.Fixed(b[28:32]),
	}
	return nil
}

func (d *decoder) parseSRGB(c chunk.Chunk) error {
	id := c.Type
	if d.renderingIntent != nil {
		return chunk.Errorf(id, chunk.ErrDuplicateChunk)
	}
	if err := d.checkOrder(id, beforePLTE|beforeIDAT); err != nil {
		return err
	}
	if c.Length != 1 {
		return chunk.Errorf(id, chunk.ErrInvalidChunkLength)
	}
	intent := RenderingIntent(c.Data[0])
	if intent > AbsoluteColorimetric {
		return chunk.InvalidField(id, "rendering intent")
	}
	d.renderingIntent = &intent
	return nil
}

func (d *decoder) parseBKGD(c chunk.Chunk) error {
	id := c.Type
	if d.background != nil {
		return chunk.Errorf(id, chunk.ErrDuplicateChunk)
	}
	if err := d.checkOrder(id, d.paletteOrder()); err != nil {
		return err
	}

	switch d.header.ColorType {
	case Grayscale, GrayscaleAlpha:
		if c.Length != 2 {
			return chunk.Errorf(id, chunk.ErrInvalidChunkLength)
		}
		d.background = &GrayBackground{Gray: chunk.U16(c.Data)}
	case TrueColor, TrueColorAlpha:
		if c.Length != 6 {
			return chunk.Errorf(id, chunk.ErrInvalidChunkLength)
		}
		d.background = &RGBBackground{
			R: chunk.U16(c.Data[0:2]),
			G: chunk.U16(c.Data[2:4]),
			B: chunk.U16(c.Data[4:6]),
		}
	case IndexedColor:
		if c.Length != 1 {
			return chunk.Errorf(id, chunk.ErrInvalidChunkLength)
		}
		if int(c.Data[0]) >= len(d.palette.Entries) {
			return chunk.InvalidField(id, "palette index")
		}
		d.background = &IndexedBackground{Index: c.Data[0]}
	}
	return nil
}

func (d *decoder) parsePHYS(c chunk.Chunk) error {
	id := c.Type
	if d.physical != nil {
		return chunk.Errorf(id, chunk.ErrDuplicateChunk)
	}
	if err := d.checkOrder(id, beforeIDAT); err != nil {
		return err
	}
	if c.Length != 9 {
		return chunk.Errorf(id, chunk.ErrInvalidChunkLength)
	}
	unit := Unit(c.Data[8])
	if unit > UnitMeter {
		return chunk.InvalidField(id, "unit specifier")
	}
	d.physical = &PhysicalDimensions{
		PixelsPerUnitX: chunk.U32(c.Data[0:4]),
		PixelsPerUnitY: chunk.U32(c.Data[4:8]),
		Unit:           unit,
	}
	return nil
}

// sbitLengths is the sBIT data length per color type.
var sbitLengths = map[ColorType]uint32{
	Grayscale:      1,
	TrueColor:      3,
	IndexedColor:   3,
	GrayscaleAlpha: 2,
	TrueColorAlpha: 4,
}

func (d *decoder) parseSBIT(c chunk.Chunk) error {
	id := c.Type
	if d.significantBits != nil {
		return chunk.Errorf(id, chunk.ErrDuplicateChunk)
	}
	if err := d.checkOrder(id, beforePLTE|beforeIDAT); err != nil {
		return err
	}
	if c.Length != sbitLengths[d.header.ColorType] {
		return chunk.Errorf(id, chunk.ErrInvalidChunkLength)
	}
	depth := d.header.SampleDepth()
	for _, v := range c.Data {
		if v == 0 || v > depth {
			return chunk.InvalidField(id, "significant bits")
		}
	}

	b := c.Data
	switch d.header.ColorType {
	case Grayscale:
		d.significantBits = &GraySignificantBits{Gray: b[0]}
	case TrueColor:
		d.significantBits = &RGBSignificantBits{R: b[0], G: b[1], B: b[2]}
	case IndexedColor:
		d.significantBits = &IndexedSignificantBits{R: b[0], G: b[1], B: b[2]}
	case GrayscaleAlpha:
		d.significantBits = &GrayAlphaSignificantBits{Gray: b[0], Alpha: b[1]}
	case TrueColorAlpha:
		d.significantBits = &RGBASignificantBits{R: b[0], G: b[1], B: b[2], A: b[3]}
	}
	return nil
}

func (d *decoder) parseHIST(c chunk.Chunk) error {
	id := c.Type
	if d.histogram != nil {
		return chunk.Errorf(id, chunk.ErrDuplicateChunk)
	}
	if err := d.checkOrder(id, afterPLTE|beforeIDAT); err != nil {
		return err
	}
	if int(c.Length) != 2*len(d.palette.Entries) {
		return chunk.Errorf(id, chunk.ErrInvalidChunkLength)
	}
	freq, _ := chunk.Records(c.Data, 2, chunk.U16)
	d.histogram = &Histogram{Frequencies: freq}
	return nil
}

func (d *decoder) parseTIME(c chunk.Chunk) error {
	id := c.Type
	if d.time != nil {
		return chunk.Errorf(id, chunk.ErrDuplicateChunk)
	}
	if c.Length != 7 {
		return chunk.Errorf(id, chunk.ErrInvalidChunkLength)
	}
	b := c.Data
	d.time = &Time{
		Year:   chunk.U16(b[0:2]),
		Month:  b[2],
		Day:    b[3],
		Hour:   b[4],
		Minute: b[5],
		Second: b[6],
	}
	return nil
}
