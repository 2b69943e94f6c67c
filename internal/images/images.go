package images

import (
	"image"
	"image/color"

	"pngchunks.adpollak.net/internal/png"
)

// Config describes the image a document would decode to, in the same shape
// image.DecodeConfig reports it. No image data is touched.
func Config(doc *png.Document) image.Config {
	return image.Config{
		ColorModel: ColorModel(doc),
		Width:      int(doc.Header.Width),
		Height:     int(doc.Header.Height),
	}
}

// ColorModel switches on the 5 color types as specified in the PNG
// specification. A tRNS chunk turns opaque models into ones with alpha.
func ColorModel(doc *png.Document) color.Model {
	wide := doc.Header.BitDepth == 16
	transparent := doc.Transparency != nil

	switch doc.Header.ColorType {
	case png.Grayscale:
		switch {
		case transparent && wide:
			return color.NRGBA64Model
		case transparent:
			return color.NRGBAModel
		case wide:
			return color.Gray16Model
		}
		return color.GrayModel
	case png.TrueColor:
		switch {
		case transparent && wide:
			return color.NRGBA64Model
		case transparent:
			return color.NRGBAModel
		case wide:
			return color.RGBA64Model
		}
		return color.RGBAModel
	case png.IndexedColor:
		return Palette(doc)
	case png.GrayscaleAlpha, png.TrueColorAlpha:
		if wide {
			return color.NRGBA64Model
		}
		return color.NRGBAModel
	}
	return nil
}

// Palette builds the color palette from PLTE, applying tRNS alpha values to
// the leading entries. It returns nil when the document has no palette.
func Palette(doc *png.Document) color.Palette {
	if doc.Palette == nil {
		return nil
	}
	var alpha []uint8
	if t, ok := doc.Transparency.(*png.IndexedTransparency); ok {
		alpha = t.Alpha
	}

	p := make(color.Palette, len(doc.Palette.Entries))
	for i, e := range doc.Palette.Entries {
		a := uint8(0xff)
		if i < len(alpha) {
			a = alpha[i]
		}
		p[i] = color.NRGBA{R: e.R, G: e.G, B: e.B, A: a}
	}
	return p
}
