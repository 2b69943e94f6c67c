package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fumiama/imgsz"

	"pngchunks.adpollak.net/internal/images"
	"pngchunks.adpollak.net/internal/png"
	"pngchunks.adpollak.net/internal/report"
)

type options struct {
	png     string
	verbose bool
	skipCRC bool
	inflate bool
	probe   bool
	docx    string
}

func main() {
	var opts options
	// cl-args for png file path
	flag.StringVar(&opts.png, "png", "", "png file to supply (or pass it as the first argument)")
	flag.BoolVar(&opts.verbose, "v", false, "log every chunk as it is parsed")
	flag.BoolVar(&opts.skipCRC, "skip-crc", false, "do not verify chunk checksums")
	flag.BoolVar(&opts.inflate, "inflate", false, "decompress text, ICC profile and image data and report their sizes")
	flag.BoolVar(&opts.probe, "probe", false, "cross-check the header dimensions with an independent size probe")
	flag.StringVar(&opts.docx, "docx", "", "also write the report as a Word `file`")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <file.png>\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if opts.png == "" && flag.NArg() > 0 {
		opts.png = flag.Arg(0)
	}
	if opts.png == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(opts, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(opts options, out io.Writer) error {
	// Open the png
	file, err := os.Open(opts.png)
	if err != nil {
		return err
	}
	defer file.Close()

	logger := log.New(io.Discard, "", 0)
	if opts.verbose {
		logger = log.New(os.Stderr, "png: ", log.LstdFlags)
		logger.Printf("Successfully opened %s\n", opts.png)
	}

	doc, err := png.Parse(file, png.WithLogger(logger), png.WithChecksums(!opts.skipCRC))
	if err != nil {
		return fmt.Errorf("parser error: %w", err)
	}

	if err := report.WriteText(out, doc); err != nil {
		return err
	}
	cfg := images.Config(doc)
	fmt.Fprintf(out, "\nimage: %dx%d, color model %T\n", cfg.Width, cfg.Height, cfg.ColorModel)

	if opts.inflate {
		if err := printInflated(out, doc); err != nil {
			return err
		}
	}
	if opts.probe {
		if err := probe(file, doc); err != nil {
			return err
		}
	}
	if opts.docx != "" {
		if err := writeDocx(opts.docx, opts.png, doc); err != nil {
			return err
		}
		log.Printf("Wrote report to %s\n", opts.docx)
	}
	return nil
}

// writeDocx creates path and writes the Word report into it.
func writeDocx(path, title string, doc *png.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteDocx(f, title, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// printInflated decompresses every compressed payload in doc.
func printInflated(out io.Writer, doc *png.Document) error {
	n, err := doc.Data.InflatedSize()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "IDAT inflates to %d bytes (expected %d)\n", n, doc.Header.RawSize())

	if p := doc.ICCProfile; p != nil {
		profile, err := p.Inflate()
		if err != nil {
			return fmt.Errorf("iCCP %q: %w", p.Name, err)
		}
		fmt.Fprintf(out, "iCCP %q inflates to %d bytes\n", p.Name, len(profile))
	}
	for _, t := range doc.CompressedTexts {
		text, err := t.Inflate()
		if err != nil {
			return fmt.Errorf("zTXt %q: %w", t.Keyword, err)
		}
		fmt.Fprintf(out, "zTXt %s: %s\n", t.Keyword, text)
	}
	for _, t := range doc.InternationalTexts {
		text, err := t.Decode()
		if err != nil {
			return fmt.Errorf("iTXt %q: %w", t.Keyword, err)
		}
		fmt.Fprintf(out, "iTXt %s: %s\n", t.Keyword, text)
	}
	return nil
}

// probe sniffs the image size with imgsz and compares it to the header.
func probe(file io.ReadSeeker, doc *png.Document) error {
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	sz, format, err := imgsz.DecodeSize(file)
	if err != nil {
		return fmt.Errorf("size probe failed: %w", err)
	}
	if format != "png" || sz.Width != int(doc.Header.Width) || sz.Height != int(doc.Header.Height) {
		return fmt.Errorf("size probe mismatch: probe saw %s %dx%d, header says %dx%d",
			format, sz.Width, sz.Height, doc.Header.Width, doc.Header.Height)
	}
	log.Printf("size probe agrees: %dx%d\n", sz.Width, sz.Height)
	return nil
}
