// Package report renders a parsed document for people: as aligned plain
// text or as a Word document.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"pngchunks.adpollak.net/internal/chunk"
	"pngchunks.adpollak.net/internal/png"
)

// Line is one record of the report.
type Line struct {
	Tag  chunk.ID
	Text string
}

// Class is "critical" or "ancillary" depending on the tag's first letter.
func (l Line) Class() string {
	if l.Tag.IsCritical() {
		return "critical"
	}
	return "ancillary"
}

// Lines lists the records of doc in stream order of their landmark: header
// and palette first, image data, then ancillary and unknown chunks.
func Lines(doc *png.Document) []Line {
	h := doc.Header
	out := []Line{{
		Tag: chunk.ChunkIHDR,
		Text: fmt.Sprintf("%dx%d, bit depth %d, %s, interlace %s",
			h.Width, h.Height, h.BitDepth, h.ColorType, h.InterlaceMethod),
	}}
	add := func(id chunk.ID, format string, args ...any) {
		out = append(out, Line{Tag: id, Text: fmt.Sprintf(format, args...)})
	}

	if p := doc.Palette; p != nil {
		add(chunk.ChunkPLTE, "%d entries", len(p.Entries))
	}
	add(chunk.ChunkIDAT, "%d chunk(s), %d compressed bytes", doc.Data.Chunks, len(doc.Data.Data))

	switch t := doc.Transparency.(type) {
	case *png.GrayTransparency:
		add(chunk.ChunktRNS, "gray %d", t.Gray)
	case *png.RGBTransparency:
		add(chunk.ChunktRNS, "rgb(%d, %d, %d)", t.R, t.G, t.B)
	case *png.IndexedTransparency:
		add(chunk.ChunktRNS, "%d alpha values", len(t.Alpha))
	}
	if g := doc.Gamma; g != nil {
		add(chunk.ChunkgAMA, "%.5f", *g)
	}
	if c := doc.Chromaticity; c != nil {
		add(chunk.ChunkcHRM, "white (%.5f, %.5f) red (%.5f, %.5f) green (%.5f, %.5f) blue (%.5f, %.5f)",
			c.WhiteX, c.WhiteY, c.RedX, c.RedY, c.GreenX, c.GreenY, c.BlueX, c.BlueY)
	}
	if ri := doc.RenderingIntent; ri != nil {
		add(chunk.ChunksRGB, "rendering intent %s", *ri)
	}
	if p := doc.ICCProfile; p != nil {
		add(chunk.ChunkiCCP, "%q, %d compressed bytes", p.Name, len(p.Profile))
	}
	for _, t := range doc.Texts {
		add(chunk.ChunktEXt, "%s: %s", t.Keyword, t.Text)
	}
	for _, t := range doc.CompressedTexts {
		add(chunk.ChunkzTXt, "%s: %d compressed bytes", t.Keyword, len(t.Compressed))
	}
	for _, t := range doc.InternationalTexts {
		add(chunk.ChunkiTXt, "%s [%s] %q compressed=%t, %d bytes",
			t.Keyword, t.LanguageTag, t.TranslatedKeyword, t.Compressed, len(t.Text))
	}
	switch b := doc.Background.(type) {
	case *png.GrayBackground:
		add(chunk.ChunkbKGD, "gray %d", b.Gray)
	case *png.RGBBackground:
		add(chunk.ChunkbKGD, "rgb(%d, %d, %d)", b.R, b.G, b.B)
	case *png.IndexedBackground:
		add(chunk.ChunkbKGD, "palette index %d", b.Index)
	}
	if p := doc.PhysicalDimensions; p != nil {
		add(chunk.ChunkpHYs, "%d x %d pixels per %s", p.PixelsPerUnitX, p.PixelsPerUnitY, p.Unit)
	}
	switch s := doc.SignificantBits.(type) {
	case *png.GraySignificantBits:
		add(chunk.ChunksBIT, "gray %d", s.Gray)
	case *png.RGBSignificantBits:
		add(chunk.ChunksBIT, "r %d g %d b %d", s.R, s.G, s.B)
	case *png.IndexedSignificantBits:
		add(chunk.ChunksBIT, "palette r %d g %d b %d", s.R, s.G, s.B)
	case *png.GrayAlphaSignificantBits:
		add(chunk.ChunksBIT, "gray %d alpha %d", s.Gray, s.Alpha)
	case *png.RGBASignificantBits:
		add(chunk.ChunksBIT, "r %d g %d b %d a %d", s.R, s.G, s.B, s.A)
	}
	for _, p := range doc.SuggestedPalettes {
		add(chunk.ChunksPLT, "%q, depth %d, %d entries", p.Name, p.SampleDepth, len(p.Entries))
	}
	if hist := doc.Histogram; hist != nil {
		add(chunk.ChunkhIST, "%d frequencies", len(hist.Frequencies))
	}
	if t := doc.Time; t != nil {
		add(chunk.ChunktIME, "%04d-%02d-%02d %02d:%02d:%02d",
			t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second)
	}
	for _, u := range doc.Unknown {
		add(u.Type, "%d bytes (not interpreted)", len(u.Data))
	}
	out = append(out, Line{Tag: chunk.ChunkIEND})
	return out
}

// WriteText writes the report as aligned columns: tag, class, details.
func WriteText(w io.Writer, doc *png.Document) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, l := range Lines(doc) {
		text := strings.ReplaceAll(l.Text, "\n", " ")
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n", l.Tag, l.Class(), text); err != nil {
			return err
		}
	}
	return tw.Flush()
}
