package avifio

import "github.com/goavif/avif/utils/bits/pio"

// AlphaURN identifies an auxiliary image or track as an alpha plane.
const AlphaURN = "urn:mpeg:mpegB:cicp:systems:auxiliary:alpha"

// Property is one entry of the ipco pool. The variant set is closed by the
// container specification (spatial extents, pixel information, AV1 codec
// configuration, auxiliary type, color descriptor) and does not grow at
// runtime; the unexported marker keeps it closed.
type Property interface {
	Atom
	property()
}

func (*ImageSpatialExtents) property() {}
func (*PixelInformation) property()    {}
func (*AV1CodecConfig) property()      {}
func (*AuxType) property()             {}
func (*ColorDescriptor) property()     {}

// ImageSpatialExtents is the ispe property: pixel width and height.
type ImageSpatialExtents struct {
	Width  uint32
	Height uint32
}

func (*ImageSpatialExtents) Tag() Tag {
	return ISPE
}

func (p *ImageSpatialExtents) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(ISPE))
	n += HeaderSize
	n += putVerFlags(b[n:], 0, 0)
	pio.PutU32BE(b[n:], p.Width)
	n += 4
	pio.PutU32BE(b[n:], p.Height)
	n += 4
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (p *ImageSpatialExtents) Len() int {
	return FullHeaderSize + 8
}

func (*ImageSpatialExtents) Children() []Atom {
	return nil
}

// PixelInformation is the pixi property: bit depth per channel.
type PixelInformation struct {
	Channels uint8
	Depth    uint8
}

func (*PixelInformation) Tag() Tag {
	return PIXI
}

func (p *PixelInformation) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(PIXI))
	n += HeaderSize
	n += putVerFlags(b[n:], 0, 0)
	pio.PutU8(b[n:], p.Channels)
	n++
	for i := uint8(0); i < p.Channels; i++ {
		pio.PutU8(b[n:], p.Depth)
		n++
	}
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (p *PixelInformation) Len() int {
	return FullHeaderSize + 1 + int(p.Channels)
}

func (*PixelInformation) Children() []Atom {
	return nil
}

// AV1CodecConfig is the av1C configuration record. The same record appears
// as an item property and inside the av01 sample entry of a track.
type AV1CodecConfig struct {
	SeqProfile           uint8
	SeqLevelIdx0         uint8
	SeqTier0             bool
	HighBitdepth         bool
	TwelveBit            bool
	Monochrome           bool
	ChromaSubsamplingX   bool
	ChromaSubsamplingY   bool
	ChromaSamplePosition uint8
}

// NewColorConfig derives the av1C record of a full-color image from its bit
// depth. The writer always emits 4:4:4 chroma.
func NewColorConfig(depth uint8) *AV1CodecConfig {
	cfg := &AV1CodecConfig{
		SeqProfile:   1,
		SeqLevelIdx0: 31,
		HighBitdepth: depth >= 10,
		TwelveBit:    depth >= 12,
	}
	if depth >= 12 {
		cfg.SeqProfile = 2
	}
	return cfg
}

// NewAlphaConfig derives the av1C record of a monochrome alpha plane.
func NewAlphaConfig(depth uint8) *AV1CodecConfig {
	cfg := &AV1CodecConfig{
		SeqProfile:         0,
		SeqLevelIdx0:       31,
		HighBitdepth:       depth >= 10,
		TwelveBit:          depth >= 12,
		Monochrome:         true,
		ChromaSubsamplingX: true,
		ChromaSubsamplingY: true,
	}
	if depth >= 12 {
		cfg.SeqProfile = 2
	}
	return cfg
}

func (*AV1CodecConfig) Tag() Tag {
	return AV1C
}

func b2u8(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}

func (c *AV1CodecConfig) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(AV1C))
	n += HeaderSize
	pio.PutU8(b[n:], 0x81) // marker and version
	n++
	pio.PutU8(b[n:], c.SeqProfile<<5|c.SeqLevelIdx0)
	n++
	flags := b2u8(c.SeqTier0)<<7 |
		b2u8(c.HighBitdepth)<<6 |
		b2u8(c.TwelveBit)<<5 |
		b2u8(c.Monochrome)<<4 |
		b2u8(c.ChromaSubsamplingX)<<3 |
		b2u8(c.ChromaSubsamplingY)<<2 |
		c.ChromaSamplePosition
	pio.PutU8(b[n:], flags)
	n++
	pio.PutU8(b[n:], 0)
	n++
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (*AV1CodecConfig) Len() int {
	return HeaderSize + 4
}

func (*AV1CodecConfig) Children() []Atom {
	return nil
}

// AuxType is the auxC property marking an item as an auxiliary plane.
type AuxType struct {
	URN string
}

func (*AuxType) Tag() Tag {
	return AUXC
}

func (p *AuxType) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(AUXC))
	n += HeaderSize
	n += putVerFlags(b[n:], 0, 0)
	n += copy(b[n:], p.URN)
	pio.PutU8(b[n:], 0)
	n++
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (p *AuxType) Len() int {
	return FullHeaderSize + len(p.URN) + 1
}

func (*AuxType) Children() []Atom {
	return nil
}

// ColorDescriptor is the colr property carrying CICP codes. The codes are
// opaque numbers here; the root package defines the known values.
type ColorDescriptor struct {
	Primaries uint16
	Transfer  uint16
	Matrix    uint16
	FullRange bool
}

func (*ColorDescriptor) Tag() Tag {
	return COLR
}

func (c *ColorDescriptor) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(COLR))
	n += HeaderSize
	pio.PutU32BE(b[n:], uint32(NCLX))
	n += 4
	pio.PutU16BE(b[n:], c.Primaries)
	n += 2
	pio.PutU16BE(b[n:], c.Transfer)
	n += 2
	pio.PutU16BE(b[n:], c.Matrix)
	n += 2
	var full uint8
	if c.FullRange {
		full = 1 << 7
	}
	pio.PutU8(b[n:], full)
	n++
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (*ColorDescriptor) Len() int {
	return HeaderSize + 4 + 2 + 2 + 2 + 1
}

func (*ColorDescriptor) Children() []Atom {
	return nil
}
