package report

import (
	"fmt"
	"io"

	"github.com/fumiama/go-docx"

	"pngchunks.adpollak.net/internal/png"
)

// WriteDocx exports the report as a .docx file: a title paragraph followed by
// one paragraph per record.
func WriteDocx(w io.Writer, title string, doc *png.Document) error {
	d := docx.New().WithDefaultTheme()
	d.AddParagraph().AddText(title).Size("32")
	for _, l := range Lines(doc) {
		p := d.AddParagraph()
		p.AddText(fmt.Sprintf("%s (%s)", l.Tag, l.Class())).Size("24")
		if l.Text != "" {
			p.AddText(": " + l.Text)
		}
	}
	if _, err := d.WriteTo(w); err != nil {
		return fmt.Errorf("error writing docx report: %w", err)
	}
	return nil
}
