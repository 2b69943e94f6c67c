package png

import (
	"bytes"

	"pngchunks.adpollak.net/internal/chunk"
)

// parseIDAT consumes the whole run of consecutive IDAT chunks starting at c.
// It peeks at each following chunk header and rewinds when the run ends, so
// the dispatcher sees the next chunk untouched. A later IDAT means the run
// was interrupted.
func (d *decoder) parseIDAT(c chunk.Chunk) error {
	id := chunk.ChunkIDAT
	if d.data != nil {
		return chunk.Errorf(id, chunk.ErrNonConsecutiveData)
	}
	if c.Length == 0 {
		return chunk.Errorf(id, chunk.ErrInvalidChunkLength)
	}

	var idat bytes.Buffer
	idat.Write(c.Data)
	count := 1
	for {
		length, next, err := d.cur.ReadHeader()
		if err != nil {
			return err
		}
		if next != id {
			if err := d.cur.Rewind(); err != nil {
				return err
			}
			break
		}
		if length == 0 {
			return chunk.Errorf(id, chunk.ErrInvalidChunkLength)
		}
		more, err := d.cur.ReadBody(length, next)
		if err != nil {
			return err
		}
		idat.Write(more.Data)
		count++
	}

	d.log.Printf("Reached IDAT: %d chunk(s), %d bytes\n", count, idat.Len())
	d.data = &ImageData{Chunks: count, Data: idat.Bytes()}
	return nil
}
