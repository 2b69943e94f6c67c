package png

// interlaceScan defines the placement and size of a pass for Adam7 interlacing.
type interlaceScan struct {
	xFactor, yFactor, xOffset, yOffset uint64
}

// interlacing defines Adam7 interlacing, with 7 passes of reduced images.
// See https://www.w3.org/TR/PNG/#8Interlace
var interlacing = []interlaceScan{
	{8, 8, 0, 0},
	{8, 8, 4, 0},
	{4, 8, 0, 4},
	{4, 4, 2, 0},
	{2, 4, 0, 2},
	{2, 2, 1, 0},
	{1, 2, 0, 1},
}

// Channels is the number of samples per pixel.
func (h Header) Channels() int {
	switch h.ColorType {
	case TrueColor:
		return 3
	case GrayscaleAlpha:
		return 2
	case TrueColorAlpha:
		return 4
	}
	return 1
}

// BitsPerPixel is the size of one pixel in the image data.
func (h Header) BitsPerPixel() int {
	return h.Channels() * int(h.BitDepth)
}

// RawSize is the number of bytes the image data must inflate to: every
// scanline of every pass plus its filter type byte.
func (h Header) RawSize() uint64 {
	if h.InterlaceMethod != InterlaceAdam7 {
		return h.passSize(uint64(h.Width), uint64(h.Height))
	}
	var total uint64
	for _, p := range interlacing {
		if uint64(h.Width) <= p.xOffset || uint64(h.Height) <= p.yOffset {
			continue
		}
		w := (uint64(h.Width) - p.xOffset + p.xFactor - 1) / p.xFactor
		ht := (uint64(h.Height) - p.yOffset + p.yFactor - 1) / p.yFactor
		total += h.passSize(w, ht)
	}
	return total
}

func (h Header) passSize(w, ht uint64) uint64 {
	rowBytes := (w*uint64(h.BitsPerPixel()) + 7) / 8
	return ht * (1 + rowBytes)
}
