package png

import "pngchunks.adpollak.net/internal/chunk"

// constraint is a set of placement rules relative to the PLTE and IDAT
// landmarks.
type constraint uint8

const (
	beforePLTE constraint = 1 << iota
	afterPLTE
	beforeIDAT
)

// checkOrder fails with ErrInvalidChunkOrder when the chunk id arrives on
// the wrong side of a landmark named in want.
func (d *decoder) checkOrder(id chunk.ID, want constraint) error {
	switch {
	case want&beforePLTE != 0 && d.palette != nil,
		want&afterPLTE != 0 && d.palette == nil,
		want&beforeIDAT != 0 && d.data != nil:
		return chunk.Errorf(id, chunk.ErrInvalidChunkOrder)
	}
	return nil
}

// paletteOrder is the rule for chunks that refer to palette entries only
// when the image is indexed.
func (d *decoder) paletteOrder() constraint {
	if d.header.ColorType == IndexedColor {
		return afterPLTE | beforeIDAT
	}
	return beforeIDAT
}
