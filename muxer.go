// Package avif assembles standards-compliant AVIF still images and image
// sequences from already-encoded AV1 payloads. It is a pure muxer: the AV1
// bitstream is never inspected, and the output is written in a single pass
// with no seeking.
package avif

import (
	"bytes"
	"io"

	"github.com/goavif/avif/avifio"
	"github.com/goavif/avif/utils/logger"
)

const (
	colorItemID = 1
	alphaItemID = 2
)

// Image is the input of one muxing call.
//
// ColorData is required; AlphaData is optional and, when present, must share
// the color image's pixel dimensions and bit depth. Depth must be 8, 10 or
// 12. These are caller contracts, not validated here: the muxer has no view
// into the payload to check them against.
//
// A non-nil ColorFrames turns the file into an image sequence (brand avis)
// with one track per supplied frame list; Timescale is the number of
// duration units per second and is only meaningful then. A nil frame list
// and an explicitly empty one are different inputs: nil means a still
// image, empty builds a track with empty tables.
type Image struct {
	ColorData   []byte
	AlphaData   []byte
	Width       uint32
	Height      uint32
	Depth       uint8
	Timescale   uint32
	ColorFrames []FrameInfo
	AlphaFrames []FrameInfo
}

// Muxer carries the optional descriptor overrides of the produced files.
// The zero value writes no colr property; setters follow the builder
// pattern and return the muxer.
type Muxer struct {
	premultipliedAlpha bool
	primaries          ColorPrimaries
	transfer           TransferCharacteristics
	matrix             MatrixCoefficients
	fullRange          bool
}

func (mux *Muxer) String() string {
	return "AVIF_MUXER"
}

// NewMuxer returns a muxer with default color description: BT.709
// primaries, sRGB transfer, BT.601 matrix, full range. As long as the
// defaults stand, no colr property is written and readers fall back to the
// AV1 payload's own color info.
func NewMuxer() *Muxer {
	return &Muxer{
		primaries: ColorPrimariesBT709,
		transfer:  TransferSRGB,
		matrix:    MatrixBT601,
		fullRange: true,
	}
}

// PremultipliedAlpha declares that color channels were multiplied by their
// alpha value before encoding. This only sets the descriptor; the pixel
// data must have been premultiplied before compression.
func (mux *Muxer) PremultipliedAlpha(v bool) *Muxer {
	mux.premultipliedAlpha = v
	return mux
}

// ColorPrimaries overrides the CICP colour primaries. Must match the AV1
// payload; causes a colr property to be written.
func (mux *Muxer) ColorPrimaries(v ColorPrimaries) *Muxer {
	mux.primaries = v
	return mux
}

// TransferCharacteristics overrides the CICP transfer characteristics.
func (mux *Muxer) TransferCharacteristics(v TransferCharacteristics) *Muxer {
	mux.transfer = v
	return mux
}

// MatrixCoefficients overrides the CICP matrix coefficients.
func (mux *Muxer) MatrixCoefficients(v MatrixCoefficients) *Muxer {
	mux.matrix = v
	return mux
}

// FullColorRange overrides the full-range flag.
func (mux *Muxer) FullColorRange(v bool) *Muxer {
	mux.fullRange = v
	return mux
}

func (mux *Muxer) colrOverridden() bool {
	return mux.primaries != ColorPrimariesBT709 ||
		mux.transfer != TransferSRGB ||
		mux.matrix != MatrixBT601 ||
		!mux.fullRange
}

// Mux writes one complete AVIF file for img to w. The only error it returns
// is a failed write on w, propagated verbatim; img's payload buffers are
// borrowed for the duration of the call and not retained.
func (mux *Muxer) Mux(w io.Writer, img *Image) error {
	file := mux.assemble(img)
	file.ResolveOffsets()
	n, err := file.WriteTo(w)
	if err != nil {
		return err
	}
	logger.Debugf(mux, "muxed %s: %d header bytes, %d total", file.Ftyp.Tag(), file.HeaderLen(), n)
	return nil
}

// MuxBytes is Mux into a freshly allocated byte slice.
func (mux *Muxer) MuxBytes(img *Image) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, len(img.ColorData)+len(img.AlphaData)+512))
	// bytes.Buffer never fails
	_ = mux.Mux(buf, img)
	return buf.Bytes()
}

// Mux writes img to w with default descriptors.
func Mux(w io.Writer, img *Image) error {
	return NewMuxer().Mux(w, img)
}

// MuxBytes serializes img with default descriptors.
func MuxBytes(img *Image) []byte {
	return NewMuxer().MuxBytes(img)
}

// assemble builds the full box tree. Item extents are created relative to
// the mdat payload and stay relative until File.ResolveOffsets runs.
func (mux *Muxer) assemble(img *Image) *avifio.File {
	sequence := img.ColorFrames != nil
	hasAlpha := img.AlphaData != nil

	pool := &avifio.PropertyPool{}
	iinf := &avifio.ItemInfo{}
	iloc := &avifio.ItemLocation{}
	ipma := &avifio.PropertyAssociations{}
	var irefs []*avifio.ItemRef
	mdat := &avifio.MediaData{}

	colorConfig := avifio.NewColorConfig(img.Depth)
	alphaConfig := avifio.NewAlphaConfig(img.Depth)

	iinf.Items = append(iinf.Items, &avifio.ItemInfoEntry{
		ItemID:   colorItemID,
		ItemType: avifio.AV01,
		Name:     "Color",
	})
	ispeProp := pool.Push(&avifio.ImageSpatialExtents{Width: img.Width, Height: img.Height})
	colorPixiProp := pool.Push(&avifio.PixelInformation{Channels: 3, Depth: img.Depth})
	colorConfigProp := pool.Push(colorConfig)
	colorProps := []uint8{ispeProp, colorPixiProp, colorConfigProp | avifio.EssentialBit}
	if mux.colrOverridden() {
		colrProp := pool.Push(&avifio.ColorDescriptor{
			Primaries: uint16(mux.primaries),
			Transfer:  uint16(mux.transfer),
			Matrix:    uint16(mux.matrix),
			FullRange: mux.fullRange,
		})
		colorProps = append(colorProps, colrProp)
	}
	ipma.Entries = append(ipma.Entries, avifio.PropertyAssocEntry{
		ItemID:  colorItemID,
		PropIDs: colorProps,
	})

	if hasAlpha {
		iinf.Items = append(iinf.Items, &avifio.ItemInfoEntry{
			ItemID:   alphaItemID,
			ItemType: avifio.AV01,
			Name:     "Alpha",
		})
		alphaPixiProp := pool.Push(&avifio.PixelInformation{Channels: 1, Depth: img.Depth})
		alphaConfigProp := pool.Push(alphaConfig)
		auxProp := pool.Push(&avifio.AuxType{URN: avifio.AlphaURN})
		ipma.Entries = append(ipma.Entries, avifio.PropertyAssocEntry{
			ItemID:  alphaItemID,
			PropIDs: []uint8{ispeProp, alphaPixiProp, alphaConfigProp | avifio.EssentialBit, auxProp},
		})
		irefs = append(irefs, &avifio.ItemRef{
			RefType: avifio.AUXL,
			FromID:  alphaItemID,
			ToID:    colorItemID,
		})
		if mux.premultipliedAlpha {
			irefs = append(irefs, &avifio.ItemRef{
				RefType: avifio.PREM,
				FromID:  colorItemID,
				ToID:    alphaItemID,
			})
		}

		if sequence {
			// Sequence payload order is the track order: color first,
			// matching the chunk offset accumulation.
			iloc.Items = append(iloc.Items,
				avifio.LocatedItem{
					ItemID:  colorItemID,
					Extents: []avifio.Extent{avifio.RelativeExtent(0, uint32(len(img.ColorData)))},
				},
				avifio.LocatedItem{
					ItemID:  alphaItemID,
					Extents: []avifio.Extent{avifio.RelativeExtent(uint32(len(img.ColorData)), uint32(len(img.AlphaData)))},
				})
			mdat.Chunks = append(mdat.Chunks, img.ColorData, img.AlphaData)
		} else {
			// Alpha goes first in a still so a streaming reader can show a
			// complete, not yet composited image as early as possible.
			iloc.Items = append(iloc.Items,
				avifio.LocatedItem{
					ItemID:  colorItemID,
					Extents: []avifio.Extent{avifio.RelativeExtent(uint32(len(img.AlphaData)), uint32(len(img.ColorData)))},
				},
				avifio.LocatedItem{
					ItemID:  alphaItemID,
					Extents: []avifio.Extent{avifio.RelativeExtent(0, uint32(len(img.AlphaData)))},
				})
			mdat.Chunks = append(mdat.Chunks, img.AlphaData, img.ColorData)
		}
	} else {
		iloc.Items = append(iloc.Items, avifio.LocatedItem{
			ItemID:  colorItemID,
			Extents: []avifio.Extent{avifio.RelativeExtent(0, uint32(len(img.ColorData)))},
		})
		mdat.Chunks = append(mdat.Chunks, img.ColorData)
	}

	var moov *avifio.Movie
	if sequence {
		moov = &avifio.Movie{
			Header: &avifio.MovieHeader{
				TimeScale: img.Timescale,
				Duration:  avifio.DurationInfinite,
			},
		}
		moov.Tracks = append(moov.Tracks, newTrack(1, img, colorConfig, img.ColorFrames, false))
		if img.AlphaFrames != nil {
			moov.Tracks = append(moov.Tracks, newTrack(2, img, alphaConfig, img.AlphaFrames, true))
		}
		moov.Header.NextTrackID = uint32(len(moov.Tracks) + 1)
	}

	return &avifio.File{
		Ftyp: avifio.NewFileType(sequence),
		Meta: &avifio.Meta{
			Handler:      &avifio.HandlerRefer{HandlerType: avifio.HandlerPict, Name: avifio.HandlerName},
			PrimaryItem:  &avifio.PrimaryItem{ItemID: colorItemID},
			ItemLocation: iloc,
			ItemInfo:     iinf,
			ItemRefs:     irefs,
			Properties: &avifio.ItemProperties{
				Pool:  pool,
				Assoc: ipma,
			},
		},
		Moov: moov,
		Mdat: mdat,
	}
}
