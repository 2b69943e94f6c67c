package png

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"pngchunks.adpollak.net/internal/chunk"
	"pngchunks.adpollak.net/internal/pngtest"
)

func TestIndexedDocument(t *testing.T) {
	u32, u16, cat := pngtest.U32, pngtest.U16, pngtest.Concat
	r := pngtest.New().
		Header(2, 2, 8, 3).
		Chunk("sBIT", []byte{5, 6, 5}).
		Chunk("gAMA", u32(45455)).
		Chunk("cHRM", cat(u32(31270), u32(32900), u32(64000), u32(33000),
			u32(30000), u32(60000), u32(15000), u32(6000))).
		Chunk("sRGB", []byte{0}).
		Chunk("iCCP", cat([]byte("sRGB IEC61966-2.1\x00\x00"), []byte{0x78, 0x9c})).
		Chunk("PLTE", []byte{255, 0, 0, 0, 255, 0}).
		Chunk("tRNS", []byte{0, 128}).
		Chunk("bKGD", []byte{1}).
		Chunk("hIST", cat(u16(3), u16(1))).
		Chunk("pHYs", cat(u32(2835), u32(2835), []byte{1})).
		Chunk("sPLT", cat([]byte("six\x00\x08"), []byte{1, 2, 3, 4}, u16(9))).
		Chunk("tIME", cat(u16(2024), []byte{2, 29, 23, 59, 60})).
		Chunk("tEXt", []byte("Title\x00caf\xe9")).
		Chunk("zTXt", []byte("Comment\x00\x00zz")).
		Chunk("iTXt", []byte("Author\x00\x00\x00en-US\x00Autor\x00Jos\xc3\xa9")).
		Data([]byte{1}).
		End().
		Reader()

	doc, err := Parse(r)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got, want := doc.SignificantBits, SignificantBits(&IndexedSignificantBits{5, 6, 5}); !reflect.DeepEqual(got, want) {
		t.Fatalf("sBIT: got %+v want %+v", got, want)
	}
	if doc.Gamma == nil || *doc.Gamma != 0.45455 {
		t.Fatalf("gAMA: got %v", doc.Gamma)
	}
	wantChrm := Chromaticity{0.3127, 0.329, 0.64, 0.33, 0.3, 0.6, 0.15, 0.06}
	if doc.Chromaticity == nil || *doc.Chromaticity != wantChrm {
		t.Fatalf("cHRM: got %+v want %+v", doc.Chromaticity, wantChrm)
	}
	if doc.RenderingIntent == nil || *doc.RenderingIntent != Perceptual {
		t.Fatalf("sRGB: got %v", doc.RenderingIntent)
	}
	if p := doc.ICCProfile; p == nil || p.Name != "sRGB IEC61966-2.1" || !bytes.Equal(p.Profile, []byte{0x78, 0x9c}) {
		t.Fatalf("iCCP: got %+v", p)
	}
	if got, want := doc.Transparency, Transparency(&IndexedTransparency{Alpha: []byte{0, 128}}); !reflect.DeepEqual(got, want) {
		t.Fatalf("tRNS: got %+v want %+v", got, want)
	}
	if got, want := doc.Background, Background(&IndexedBackground{Index: 1}); !reflect.DeepEqual(got, want) {
		t.Fatalf("bKGD: got %+v want %+v", got, want)
	}
	if doc.Histogram == nil || !reflect.DeepEqual(doc.Histogram.Frequencies, []uint16{3, 1}) {
		t.Fatalf("hIST: got %+v", doc.Histogram)
	}
	if got, want := doc.PhysicalDimensions, (&PhysicalDimensions{2835, 2835, UnitMeter}); !reflect.DeepEqual(got, want) {
		t.Fatalf("pHYs: got %+v want %+v", got, want)
	}
	wantSPLT := []SuggestedPalette{{
		Name:        "six",
		SampleDepth: 8,
		Entries:     []SuggestedPaletteEntry{{R: 1, G: 2, B: 3, A: 4, Frequency: 9}},
	}}
	if !reflect.DeepEqual(doc.SuggestedPalettes, wantSPLT) {
		t.Fatalf("sPLT: got %+v want %+v", doc.SuggestedPalettes, wantSPLT)
	}
	// Ranges are not checked: 60 seconds and Feb 29 are stored as read.
	if got, want := doc.Time, (&Time{2024, 2, 29, 23, 59, 60}); !reflect.DeepEqual(got, want) {
		t.Fatalf("tIME: got %+v want %+v", got, want)
	}
	if want := []Text{{Keyword: "Title", Text: "café"}}; !reflect.DeepEqual(doc.Texts, want) {
		t.Fatalf("tEXt: got %+v want %+v", doc.Texts, want)
	}
	if want := []CompressedText{{Keyword: "Comment", Compressed: []byte("zz")}}; !reflect.DeepEqual(doc.CompressedTexts, want) {
		t.Fatalf("zTXt: got %+v want %+v", doc.CompressedTexts, want)
	}
	wantITXT := []InternationalText{{
		Keyword:           "Author",
		LanguageTag:       "en-US",
		TranslatedKeyword: "Autor",
		Text:              []byte("José"),
	}}
	if !reflect.DeepEqual(doc.InternationalTexts, wantITXT) {
		t.Fatalf("iTXt: got %+v want %+v", doc.InternationalTexts, wantITXT)
	}
}

func TestColorTypeShapes(t *testing.T) {
	u16, cat := pngtest.U16, pngtest.Concat
	for _, tc := range []struct {
		name      string
		colorType uint8
		depth     uint8
		trns      []byte
		bkgd      []byte
		sbit      []byte
		wantTRNS  Transparency
		wantBKGD  Background
		wantSBIT  SignificantBits
	}{
		{
			name: "gray", colorType: 0, depth: 16,
			trns: u16(7), bkgd: u16(9), sbit: []byte{12},
			wantTRNS: &GrayTransparency{7},
			wantBKGD: &GrayBackground{9},
			wantSBIT: &GraySignificantBits{12},
		},
		{
			name: "rgb", colorType: 2, depth: 8,
			trns: cat(u16(1), u16(2), u16(3)), bkgd: cat(u16(4), u16(5), u16(6)), sbit: []byte{5, 6, 5},
			wantTRNS: &RGBTransparency{1, 2, 3},
			wantBKGD: &RGBBackground{4, 5, 6},
			wantSBIT: &RGBSignificantBits{5, 6, 5},
		},
		{
			name: "gray_alpha", colorType: 4, depth: 8,
			bkgd: u16(200), sbit: []byte{8, 1},
			wantBKGD: &GrayBackground{200},
			wantSBIT: &GrayAlphaSignificantBits{8, 1},
		},
		{
			name: "rgba", colorType: 6, depth: 16,
			bkgd: cat(u16(65535), u16(0), u16(1)), sbit: []byte{16, 16, 16, 16},
			wantBKGD: &RGBBackground{65535, 0, 1},
			wantSBIT: &RGBASignificantBits{16, 16, 16, 16},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b := pngtest.New().Header(1, 1, tc.depth, tc.colorType)
			b.Chunk("sBIT", tc.sbit)
			if tc.trns != nil {
				b.Chunk("tRNS", tc.trns)
			}
			b.Chunk("bKGD", tc.bkgd)
			doc, err := Parse(b.Data([]byte{1}).End().Reader())
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if !reflect.DeepEqual(doc.Transparency, tc.wantTRNS) {
				t.Fatalf("tRNS: got %#v want %#v", doc.Transparency, tc.wantTRNS)
			}
			if !reflect.DeepEqual(doc.Background, tc.wantBKGD) {
				t.Fatalf("bKGD: got %#v want %#v", doc.Background, tc.wantBKGD)
			}
			if !reflect.DeepEqual(doc.SignificantBits, tc.wantSBIT) {
				t.Fatalf("sBIT: got %#v want %#v", doc.SignificantBits, tc.wantSBIT)
			}
		})
	}
}

func TestChunkErrors(t *testing.T) {
	plte2 := []byte{1, 1, 1, 2, 2, 2}
	for _, tc := range []struct {
		name  string
		build func(b *pngtest.Builder) *pngtest.Builder
		id    chunk.ID
		kind  error
	}{
		{
			name: "trns_indexed_short",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 3).Chunk("PLTE", plte2).Chunk("tRNS", []byte{0})
			},
			id: chunk.ChunktRNS, kind: chunk.ErrInvalidChunkLength,
		},
		{
			name: "trns_indexed_long",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 3).Chunk("PLTE", plte2).Chunk("tRNS", []byte{0, 0, 0})
			},
			id: chunk.ChunktRNS, kind: chunk.ErrInvalidChunkLength,
		},
		{
			name: "trns_before_plte",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 3).Chunk("tRNS", []byte{0, 0}).Chunk("PLTE", plte2)
			},
			id: chunk.ChunktRNS, kind: chunk.ErrInvalidChunkOrder,
		},
		{
			name: "trns_after_idat",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 0).Data([]byte{1}).Chunk("tRNS", []byte{0, 0})
			},
			id: chunk.ChunktRNS, kind: chunk.ErrInvalidChunkOrder,
		},
		{
			name: "trns_alpha_color_type",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 6).Chunk("tRNS", make([]byte, 8))
			},
			id: chunk.ChunktRNS, kind: chunk.ErrInvalidFieldValue,
		},
		{
			name: "trns_duplicate",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 0).Chunk("tRNS", []byte{0, 0}).Chunk("tRNS", []byte{0, 0})
			},
			id: chunk.ChunktRNS, kind: chunk.ErrDuplicateChunk,
		},
		{
			name: "gama_after_plte",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 3).Chunk("PLTE", plte2).Chunk("gAMA", pngtest.U32(1))
			},
			id: chunk.ChunkgAMA, kind: chunk.ErrInvalidChunkOrder,
		},
		{
			name: "gama_length",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 0).Chunk("gAMA", []byte{1, 2, 3})
			},
			id: chunk.ChunkgAMA, kind: chunk.ErrInvalidChunkLength,
		},
		{
			name: "chrm_length",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 0).Chunk("cHRM", make([]byte, 31))
			},
			id: chunk.ChunkcHRM, kind: chunk.ErrInvalidChunkLength,
		},
		{
			name: "srgb_intent",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 0).Chunk("sRGB", []byte{4})
			},
			id: chunk.ChunksRGB, kind: chunk.ErrInvalidFieldValue,
		},
		{
			name: "srgb_duplicate",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 0).Chunk("sRGB", []byte{0}).Chunk("sRGB", []byte{0})
			},
			id: chunk.ChunksRGB, kind: chunk.ErrDuplicateChunk,
		},
		{
			name: "iccp_unterminated",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 0).Chunk("iCCP", []byte("no terminator here"))
			},
			id: chunk.ChunkiCCP, kind: chunk.ErrMissingNullTerminator,
		},
		{
			name: "iccp_empty_name",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 0).Chunk("iCCP", []byte("\x00\x00data"))
			},
			id: chunk.ChunkiCCP, kind: chunk.ErrInvalidStringLength,
		},
		{
			name: "iccp_long_name",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 0).Chunk("iCCP", []byte(strings.Repeat("n", 80)+"\x00\x00"))
			},
			id: chunk.ChunkiCCP, kind: chunk.ErrInvalidStringLength,
		},
		{
			name: "iccp_no_method",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 0).Chunk("iCCP", []byte("name\x00"))
			},
			id: chunk.ChunkiCCP, kind: chunk.ErrInvalidChunkLength,
		},
		{
			name: "iccp_method",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 0).Chunk("iCCP", []byte("name\x00\x01"))
			},
			id: chunk.ChunkiCCP, kind: chunk.ErrInvalidFieldValue,
		},
		{
			name: "text_unterminated",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 0).Chunk("tEXt", []byte("Title"))
			},
			id: chunk.ChunktEXt, kind: chunk.ErrMissingNullTerminator,
		},
		{
			name: "text_empty_keyword",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 0).Chunk("tEXt", []byte("\x00text"))
			},
			id: chunk.ChunktEXt, kind: chunk.ErrInvalidStringLength,
		},
		{
			name: "ztxt_long_keyword",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 0).Chunk("zTXt", []byte(strings.Repeat("k", 81)+"\x00\x00"))
			},
			id: chunk.ChunkzTXt, kind: chunk.ErrInvalidStringLength,
		},
		{
			name: "ztxt_method",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 0).Chunk("zTXt", []byte("k\x00\x07"))
			},
			id: chunk.ChunkzTXt, kind: chunk.ErrInvalidFieldValue,
		},
		{
			name: "itxt_flag",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 0).Chunk("iTXt", []byte("k\x00\x02\x00\x00\x00"))
			},
			id: chunk.ChunkiTXt, kind: chunk.ErrInvalidFieldValue,
		},
		{
			name: "itxt_language_unterminated",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 0).Chunk("iTXt", []byte("k\x00\x00\x00en"))
			},
			id: chunk.ChunkiTXt, kind: chunk.ErrMissingNullTerminator,
		},
		{
			name: "itxt_short",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 0).Chunk("iTXt", []byte("k\x00\x00"))
			},
			id: chunk.ChunkiTXt, kind: chunk.ErrInvalidChunkLength,
		},
		{
			name: "bkgd_index_range",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 3).Chunk("PLTE", plte2).Chunk("bKGD", []byte{2})
			},
			id: chunk.ChunkbKGD, kind: chunk.ErrInvalidFieldValue,
		},
		{
			name: "bkgd_length",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 2).Chunk("bKGD", []byte{0, 0})
			},
			id: chunk.ChunkbKGD, kind: chunk.ErrInvalidChunkLength,
		},
		{
			name: "phys_unit",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 0).Chunk("pHYs", pngtest.Concat(make([]byte, 8), []byte{2}))
			},
			id: chunk.ChunkpHYs, kind: chunk.ErrInvalidFieldValue,
		},
		{
			name: "phys_after_idat",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 0).Data([]byte{1}).Chunk("pHYs", make([]byte, 9))
			},
			id: chunk.ChunkpHYs, kind: chunk.ErrInvalidChunkOrder,
		},
		{
			name: "sbit_zero",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 2).Chunk("sBIT", []byte{8, 0, 8})
			},
			id: chunk.ChunksBIT, kind: chunk.ErrInvalidFieldValue,
		},
		{
			name: "sbit_above_depth",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 4, 0).Chunk("sBIT", []byte{5})
			},
			id: chunk.ChunksBIT, kind: chunk.ErrInvalidFieldValue,
		},
		{
			name: "sbit_length",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 4).Chunk("sBIT", []byte{8})
			},
			id: chunk.ChunksBIT, kind: chunk.ErrInvalidChunkLength,
		},
		{
			name: "splt_depth",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 0).Chunk("sPLT", []byte("p\x00\x02"))
			},
			id: chunk.ChunksPLT, kind: chunk.ErrInvalidFieldValue,
		},
		{
			name: "splt_depth_bytes",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 0).Chunk("sPLT", pngtest.Concat([]byte("p\x00\x01"), make([]byte, 6)))
			},
			id: chunk.ChunksPLT, kind: chunk.ErrInvalidFieldValue,
		},
		{
			name: "splt_entry_length",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 0).Chunk("sPLT", pngtest.Concat([]byte("p\x00\x10"), make([]byte, 12)))
			},
			id: chunk.ChunksPLT, kind: chunk.ErrInvalidChunkLength,
		},
		{
			name: "splt_after_idat",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 0).Data([]byte{1}).Chunk("sPLT", []byte("p\x00\x08"))
			},
			id: chunk.ChunksPLT, kind: chunk.ErrInvalidChunkOrder,
		},
		{
			name: "hist_without_palette",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 2).Chunk("hIST", []byte{0, 1})
			},
			id: chunk.ChunkhIST, kind: chunk.ErrInvalidChunkOrder,
		},
		{
			name: "hist_length",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 3).Chunk("PLTE", plte2).Chunk("hIST", []byte{0, 1})
			},
			id: chunk.ChunkhIST, kind: chunk.ErrInvalidChunkLength,
		},
		{
			name: "time_length",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 0).Chunk("tIME", make([]byte, 6))
			},
			id: chunk.ChunktIME, kind: chunk.ErrInvalidChunkLength,
		},
		{
			name: "time_duplicate",
			build: func(b *pngtest.Builder) *pngtest.Builder {
				return b.Header(1, 1, 8, 0).Chunk("tIME", make([]byte, 7)).Chunk("tIME", make([]byte, 7))
			},
			id: chunk.ChunktIME, kind: chunk.ErrDuplicateChunk,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.build(pngtest.New())
			_, err := Parse(b.Data([]byte{9}).End().Reader())
			wantChunkErr(t, err, tc.id, tc.kind)
		})
	}
}

func TestRepeatableChunks(t *testing.T) {
	r := pngtest.New().
		Header(1, 1, 8, 0).
		Chunk("tEXt", []byte("Comment\x00one")).
		Chunk("tEXt", []byte("Comment\x00two")).
		Chunk("sPLT", []byte("a\x00\x10")).
		Chunk("sPLT", pngtest.Concat([]byte("b\x00\x10"), make([]byte, 20))).
		Data([]byte{1}).
		Chunk("tEXt", []byte("Comment\x00three")).
		Chunk("iTXt", []byte("k\x00\x01\x00\x00\x00x")).
		Chunk("iTXt", []byte("k\x00\x00\x00\x00\x00")).
		End().
		Reader()
	doc, err := Parse(r)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Texts) != 3 || doc.Texts[2].Text != "three" {
		t.Fatalf("tEXt: got %+v", doc.Texts)
	}
	if len(doc.SuggestedPalettes) != 2 || len(doc.SuggestedPalettes[1].Entries) != 2 {
		t.Fatalf("sPLT: got %+v", doc.SuggestedPalettes)
	}
	if len(doc.InternationalTexts) != 2 || !doc.InternationalTexts[0].Compressed {
		t.Fatalf("iTXt: got %+v", doc.InternationalTexts)
	}
}
