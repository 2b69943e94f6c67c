package png

import "pngchunks.adpollak.net/internal/chunk"

// ColorType describes the pixel interpretation of the image data.
type ColorType uint8

// Color type, as per the PNG spec.
const (
	Grayscale      ColorType = 0
	TrueColor      ColorType = 2
	IndexedColor   ColorType = 3
	GrayscaleAlpha ColorType = 4
	TrueColorAlpha ColorType = 6
)

func (c ColorType) String() string {
	switch c {
	case Grayscale:
		return "Greyscale"
	case TrueColor:
		return "Truecolor"
	case IndexedColor:
		return "Indexed-color"
	case GrayscaleAlpha:
		return "Greyscale with alpha"
	case TrueColorAlpha:
		return "Truecolor with alpha"
	}
	return "invalid"
}

// validBitDepths lists the legal bit depths per color type.
var validBitDepths = map[ColorType][]uint8{
	Grayscale:      {1, 2, 4, 8, 16},
	TrueColor:      {8, 16},
	IndexedColor:   {1, 2, 4, 8},
	GrayscaleAlpha: {8, 16},
	TrueColorAlpha: {8, 16},
}

// InterlaceMethod is the transmission order of the image data.
type InterlaceMethod uint8

const (
	InterlaceNone  InterlaceMethod = 0
	InterlaceAdam7 InterlaceMethod = 1
)

func (m InterlaceMethod) String() string {
	if m == InterlaceAdam7 {
		return "Adam7"
	}
	return "none"
}

// The only compression and filter methods defined by the format.
const (
	CompressionDeflate = 0
	FilterAdaptive     = 0
)

// Header is the content of the IHDR chunk.
type Header struct {
	Width             uint32
	Height            uint32
	BitDepth          uint8
	ColorType         ColorType
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   InterlaceMethod
}

// SampleDepth is the bit depth of palette samples for indexed images and the
// image bit depth otherwise.
func (h Header) SampleDepth() uint8 {
	if h.ColorType == IndexedColor {
		return 8
	}
	return h.BitDepth
}

// RGB is one palette entry.
type RGB struct {
	R, G, B uint8
}

// Palette is the content of the PLTE chunk.
type Palette struct {
	Entries []RGB
}

// ImageData is the concatenation of every IDAT chunk's data.
type ImageData struct {
	Chunks int    // Number of IDAT chunks that contributed.
	Data   []byte // Still zlib compressed.
}

// Transparency is the content of a tRNS chunk. Its concrete type depends on
// the header's color type: *GrayTransparency, *RGBTransparency or
// *IndexedTransparency.
type Transparency interface {
	isTransparency()
}

type GrayTransparency struct {
	Gray uint16
}

type RGBTransparency struct {
	R, G, B uint16
}

// IndexedTransparency holds one alpha value per leading palette entry.
type IndexedTransparency struct {
	Alpha []uint8
}

func (*GrayTransparency) isTransparency()    {}
func (*RGBTransparency) isTransparency()     {}
func (*IndexedTransparency) isTransparency() {}

// Chromaticity holds the CIE 1931 x,y coordinates from cHRM.
type Chromaticity struct {
	WhiteX, WhiteY float64
	RedX, RedY     float64
	GreenX, GreenY float64
	BlueX, BlueY   float64
}

// RenderingIntent is the sRGB rendering intent.
type RenderingIntent uint8

const (
	Perceptual RenderingIntent = iota
	RelativeColorimetric
	Saturation
	AbsoluteColorimetric
)

func (r RenderingIntent) String() string {
	switch r {
	case Perceptual:
		return "perceptual"
	case RelativeColorimetric:
		return "relative colorimetric"
	case Saturation:
		return "saturation"
	case AbsoluteColorimetric:
		return "absolute colorimetric"
	}
	return "invalid"
}

// ICCProfile is the content of the iCCP chunk.
type ICCProfile struct {
	Name              string
	CompressionMethod uint8
	Profile           []byte // zlib compressed.
}

// Text is a tEXt chunk. Both fields are converted from Latin-1.
type Text struct {
	Keyword string
	Text    string
}

// CompressedText is a zTXt chunk.
type CompressedText struct {
	Keyword           string
	CompressionMethod uint8
	Compressed        []byte
}

// InternationalText is an iTXt chunk. Text is UTF-8, zlib compressed when
// Compressed is set.
type InternationalText struct {
	Keyword           string
	Compressed        bool
	CompressionMethod uint8
	LanguageTag       string
	TranslatedKeyword string
	Text              []byte
}

// Background is the content of a bKGD chunk: *GrayBackground,
// *RGBBackground or *IndexedBackground depending on the color type.
type Background interface {
	isBackground()
}

type GrayBackground struct {
	Gray uint16
}

type RGBBackground struct {
	R, G, B uint16
}

type IndexedBackground struct {
	Index uint8
}

func (*GrayBackground) isBackground()    {}
func (*RGBBackground) isBackground()     {}
func (*IndexedBackground) isBackground() {}

// Unit is the pHYs unit specifier.
type Unit uint8

const (
	UnitUnknown Unit = 0
	UnitMeter   Unit = 1
)

func (u Unit) String() string {
	if u == UnitMeter {
		return "meter"
	}
	return "unknown"
}

// PhysicalDimensions is the content of the pHYs chunk.
type PhysicalDimensions struct {
	PixelsPerUnitX uint32
	PixelsPerUnitY uint32
	Unit           Unit
}

// SignificantBits is the content of an sBIT chunk. One concrete type exists
// per color type.
type SignificantBits interface {
	isSignificantBits()
}

type GraySignificantBits struct {
	Gray uint8
}

type RGBSignificantBits struct {
	R, G, B uint8
}

// IndexedSignificantBits applies to the palette entries' samples.
type IndexedSignificantBits struct {
	R, G, B uint8
}

type GrayAlphaSignificantBits struct {
	Gray, Alpha uint8
}

type RGBASignificantBits struct {
	R, G, B, A uint8
}

func (*GraySignificantBits) isSignificantBits()      {}
func (*RGBSignificantBits) isSignificantBits()       {}
func (*IndexedSignificantBits) isSignificantBits()   {}
func (*GrayAlphaSignificantBits) isSignificantBits() {}
func (*RGBASignificantBits) isSignificantBits()      {}

// SuggestedPaletteEntry is one sPLT entry. With 8 bit samples only the low
// byte of each channel is used.
type SuggestedPaletteEntry struct {
	R, G, B, A uint16
	Frequency  uint16
}

// SuggestedPalette is an sPLT chunk.
type SuggestedPalette struct {
	Name        string
	SampleDepth uint8
	Entries     []SuggestedPaletteEntry
}

// Histogram holds one frequency per palette entry.
type Histogram struct {
	Frequencies []uint16
}

// Time is the tIME chunk. Values are stored as read; none of the ranges are
// checked.
type Time struct {
	Year   uint16
	Month  uint8
	Day    uint8
	Hour   uint8
	Minute uint8
	Second uint8
}

// UnknownChunk is a chunk the parser does not interpret.
type UnknownChunk struct {
	Type chunk.ID
	Data []byte
}

// Document is a fully validated PNG datastream. Optional chunks that were
// absent are nil.
type Document struct {
	Header             Header
	Palette            *Palette
	Data               ImageData
	Transparency       Transparency
	Gamma              *float64
	Chromaticity       *Chromaticity
	RenderingIntent    *RenderingIntent
	ICCProfile         *ICCProfile
	Texts              []Text
	CompressedTexts    []CompressedText
	InternationalTexts []InternationalText
	Background         Background
	PhysicalDimensions *PhysicalDimensions
	SignificantBits    SignificantBits
	SuggestedPalettes  []SuggestedPalette
	Histogram          *Histogram
	Time               *Time
	Unknown            []UnknownChunk
}
