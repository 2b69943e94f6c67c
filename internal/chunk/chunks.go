package chunk

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Chunk defines the chunk layout as specified by PNG datastream structure.
type Chunk struct {
	Length uint32 // A four-byte unsigned integer giving the number of bytes in the chunk's data field.
	Type   ID     // A sequence of four bytes defining the chunk type.
	Data   []byte // The data bytes of the relevant chunk type; can be zero length.
	CRC    uint32 // The stored CRC, calculated on chunk type and data but NOT length.
}

// ID is a chunk type tag. The four ASCII bytes are kept as a big-endian
// uint32 so they can be compared and switched on directly.
type ID uint32

func tag(a, b, c, d byte) ID {
	return ID(a)<<24 | ID(b)<<16 | ID(c)<<8 | ID(d)
}

var (
	// NOTE: Critical chunks
	ChunkIHDR = tag('I', 'H', 'D', 'R')
	ChunkPLTE = tag('P', 'L', 'T', 'E')
	ChunkIDAT = tag('I', 'D', 'A', 'T')
	ChunkIEND = tag('I', 'E', 'N', 'D')

	// NOTE: Ancillary chunks
	ChunkcHRM = tag('c', 'H', 'R', 'M')
	ChunkgAMA = tag('g', 'A', 'M', 'A')
	ChunkiCCP = tag('i', 'C', 'C', 'P')
	ChunksBIT = tag('s', 'B', 'I', 'T')
	ChunksRGB = tag('s', 'R', 'G', 'B')
	ChunkbKGD = tag('b', 'K', 'G', 'D')
	ChunkhIST = tag('h', 'I', 'S', 'T')
	ChunktRNS = tag('t', 'R', 'N', 'S')
	ChunkpHYs = tag('p', 'H', 'Y', 's')
	ChunksPLT = tag('s', 'P', 'L', 'T')
	ChunktIME = tag('t', 'I', 'M', 'E')
	ChunkiTXt = tag('i', 'T', 'X', 't')
	ChunktEXt = tag('t', 'E', 'X', 't')
	ChunkzTXt = tag('z', 'T', 'X', 't')
)

// FromBytes builds an ID from the first four bytes of b.
func FromBytes(b []byte) ID {
	return ID(binary.BigEndian.Uint32(b[:4]))
}

// FromString converts a four character tag such as "IDAT" into an ID.
func FromString(s string) (ID, error) {
	if len(s) != 4 {
		return 0, errors.New("chunk type must be exactly 4 bytes")
	}
	return FromBytes([]byte(s)), nil
}

// Bytes returns the four tag bytes in stream order.
func (id ID) Bytes() [4]byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(id))
	return b
}

// String renders the tag as text when every byte is an ASCII letter, and as
// hex otherwise.
func (id ID) String() string {
	b := id.Bytes()
	for _, c := range b {
		if !isLetter(c) {
			return fmt.Sprintf("0x%08X", uint32(id))
		}
	}
	return string(b[:])
}

// IsCritical determines if a chunk is a Ancillary or Critical type.
func (id ID) IsCritical() bool {
	return id.Bytes()[0]&0x20 == 0
}

// IsPrivate reports whether the tag's second letter is lowercase.
func (id ID) IsPrivate() bool {
	return id.Bytes()[1]&0x20 != 0
}

// IsSafeToCopy reports whether editors may copy the chunk without
// understanding it.
func (id ID) IsSafeToCopy() bool {
	return id.Bytes()[3]&0x20 != 0
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// Kind is the closed set of chunk types the parser understands. Every other
// tag maps to KindUnknown.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindHeader
	KindPalette
	KindData
	KindTrailer
	KindTransparency
	KindGamma
	KindChromaticity
	KindStandardRGB
	KindICCProfile
	KindText
	KindCompressedText
	KindInternationalText
	KindBackground
	KindPhysicalDimensions
	KindSignificantBits
	KindSuggestedPalette
	KindHistogram
	KindTime
)

// Kind classifies the tag.
func (id ID) Kind() Kind {
	switch id {
	case ChunkIHDR:
		return KindHeader
	case ChunkPLTE:
		return KindPalette
	case ChunkIDAT:
		return KindData
	case ChunkIEND:
		return KindTrailer
	case ChunktRNS:
		return KindTransparency
	case ChunkgAMA:
		return KindGamma
	case ChunkcHRM:
		return KindChromaticity
	case ChunksRGB:
		return KindStandardRGB
	case ChunkiCCP:
		return KindICCProfile
	case ChunktEXt:
		return KindText
	case ChunkzTXt:
		return KindCompressedText
	case ChunkiTXt:
		return KindInternationalText
	case ChunkbKGD:
		return KindBackground
	case ChunkpHYs:
		return KindPhysicalDimensions
	case ChunksBIT:
		return KindSignificantBits
	case ChunksPLT:
		return KindSuggestedPalette
	case ChunkhIST:
		return KindHistogram
	case ChunktIME:
		return KindTime
	}
	return KindUnknown
}

var kindNames = [...]string{
	KindUnknown:            "unknown",
	KindHeader:             "header",
	KindPalette:            "palette",
	KindData:               "image data",
	KindTrailer:            "trailer",
	KindTransparency:       "transparency",
	KindGamma:              "gamma",
	KindChromaticity:       "chromaticity",
	KindStandardRGB:        "standard RGB",
	KindICCProfile:         "ICC profile",
	KindText:               "text",
	KindCompressedText:     "compressed text",
	KindInternationalText:  "international text",
	KindBackground:         "background",
	KindPhysicalDimensions: "physical dimensions",
	KindSignificantBits:    "significant bits",
	KindSuggestedPalette:   "suggested palette",
	KindHistogram:          "histogram",
	KindTime:               "modification time",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}
