package png

import "testing"

func TestRawSize(t *testing.T) {
	for _, tc := range []struct {
		name string
		h    Header
		want uint64
	}{
		{"gray8", Header{Width: 8, Height: 8, BitDepth: 8, ColorType: Grayscale}, 72},
		{"gray1_packed", Header{Width: 9, Height: 2, BitDepth: 1, ColorType: Grayscale}, 6},
		{"rgba16", Header{Width: 3, Height: 1, BitDepth: 16, ColorType: TrueColorAlpha}, 25},
		{"indexed4", Header{Width: 3, Height: 3, BitDepth: 4, ColorType: IndexedColor}, 9},
		{"adam7_8x8", Header{Width: 8, Height: 8, BitDepth: 8, ColorType: Grayscale, InterlaceMethod: InterlaceAdam7}, 79},
		{"adam7_1x1", Header{Width: 1, Height: 1, BitDepth: 8, ColorType: TrueColor, InterlaceMethod: InterlaceAdam7}, 4},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.h.RawSize(); got != tc.want {
				t.Fatalf("got %d want %d", got, tc.want)
			}
		})
	}
}

func TestSampleDepth(t *testing.T) {
	if got := (Header{BitDepth: 2, ColorType: IndexedColor}).SampleDepth(); got != 8 {
		t.Fatalf("indexed: got %d want 8", got)
	}
	if got := (Header{BitDepth: 16, ColorType: GrayscaleAlpha}).SampleDepth(); got != 16 {
		t.Fatalf("gray alpha: got %d want 16", got)
	}
}
