package avif

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goavif/avif/avifio"
	"github.com/goavif/avif/utils/bits/pio"
)

// splitBoxes cuts a concatenated run of boxes into one slice per box.
func splitBoxes(b []byte) (r [][]byte) {
	for len(b) >= avifio.HeaderSize {
		size := int(pio.U32BE(b))
		r = append(r, b[:size:size])
		b = b[size:]
	}
	return
}

// boxBody returns the child region of a container box; meta is the only
// container that is also a full box.
func boxBody(box []byte) []byte {
	off := avifio.HeaderSize
	if string(box[4:8]) == "meta" {
		off = avifio.FullHeaderSize
	}
	return box[off:]
}

func findBoxes(siblings [][]byte, name string) (r [][]byte) {
	for _, box := range siblings {
		if string(box[4:8]) == name {
			r = append(r, box)
		}
	}
	return
}

func findBox(t *testing.T, siblings [][]byte, name string) []byte {
	t.Helper()
	found := findBoxes(siblings, name)
	require.Len(t, found, 1, "box %s", name)
	return found[0]
}

// parseIloc reads back the single-extent location of every item.
type extent struct {
	offset uint32
	length uint32
}

func parseIloc(t *testing.T, iloc []byte) map[uint16]extent {
	t.Helper()
	items := map[uint16]extent{}
	n := avifio.FullHeaderSize + 2 // sizes byte, reserved byte
	count := pio.U16BE(iloc[n:])
	n += 2
	for i := uint16(0); i < count; i++ {
		id := pio.U16BE(iloc[n:])
		n += 2 + 2 // skip data_reference_index
		require.Equal(t, uint16(1), pio.U16BE(iloc[n:]))
		n += 2
		items[id] = extent{offset: pio.U32BE(iloc[n:]), length: pio.U32BE(iloc[n+4:])}
		n += 8
	}
	return items
}

func TestMuxBytesStill(t *testing.T) {
	t.Parallel()

	color := []byte("av12356abc")
	alpha := []byte("alpha")
	out := MuxBytes(&Image{
		ColorData: color,
		AlphaData: alpha,
		Width:     10,
		Height:    20,
		Depth:     8,
	})

	top := splitBoxes(out)
	ftyp := findBox(t, top, "ftyp")
	require.Equal(t, "avif", string(ftyp[8:12]))

	meta := findBox(t, top, "meta")
	metaBoxes := splitBoxes(boxBody(meta))
	require.Empty(t, findBoxes(top, "moov"))

	// alpha payload precedes color, both extents absolute
	payloadStart := uint32(len(out) - len(color) - len(alpha))
	items := parseIloc(t, findBox(t, metaBoxes, "iloc"))
	require.Equal(t, extent{offset: payloadStart + uint32(len(alpha)), length: uint32(len(color))}, items[1])
	require.Equal(t, extent{offset: payloadStart, length: uint32(len(alpha))}, items[2])
	require.Equal(t, color, out[items[1].offset:items[1].offset+items[1].length])
	require.Equal(t, alpha, out[items[2].offset:items[2].offset+items[2].length])

	mdat := findBox(t, top, "mdat")
	require.Equal(t, append(append([]byte{}, alpha...), color...), boxBody(mdat))

	// single auxl edge alpha->color, no premultiplication
	irefs := findBoxes(metaBoxes, "iref")
	require.Len(t, irefs, 1)
	require.Equal(t, "auxl", string(irefs[0][16:20]))
	require.Equal(t, uint16(2), pio.U16BE(irefs[0][20:]))
	require.Equal(t, uint16(1), pio.U16BE(irefs[0][24:]))

	// default color description emits no colr property
	ipco := findBox(t, splitBoxes(boxBody(findBox(t, metaBoxes, "iprp"))), "ipco")
	require.Empty(t, findBoxes(splitBoxes(boxBody(ipco)), "colr"))
	require.Len(t, findBoxes(splitBoxes(boxBody(ipco)), "av1C"), 2)
}

func TestMuxBytesStillNoAlpha(t *testing.T) {
	t.Parallel()

	color := []byte("av12356abc")
	out := MuxBytes(&Image{ColorData: color, Width: 10, Height: 20, Depth: 8})

	top := splitBoxes(out)
	metaBoxes := splitBoxes(boxBody(findBox(t, top, "meta")))
	require.Empty(t, findBoxes(metaBoxes, "iref"))

	// the single extent points right past the mdat header
	ftypLen := len(findBox(t, top, "ftyp"))
	metaLen := len(findBox(t, top, "meta"))
	items := parseIloc(t, findBox(t, metaBoxes, "iloc"))
	require.Len(t, items, 1)
	require.Equal(t, uint32(ftypLen+metaLen+avifio.HeaderSize), items[1].offset)
	require.Equal(t, color, out[items[1].offset:items[1].offset+items[1].length])
	require.Equal(t, color, boxBody(findBox(t, top, "mdat")))
}

func TestMuxBytesPremultiplied(t *testing.T) {
	t.Parallel()

	out := NewMuxer().PremultipliedAlpha(true).MuxBytes(&Image{
		ColorData: []byte("color"),
		AlphaData: []byte("alpha"),
		Width:     1,
		Height:    1,
		Depth:     8,
	})

	metaBoxes := splitBoxes(boxBody(findBox(t, splitBoxes(out), "meta")))
	irefs := findBoxes(metaBoxes, "iref")
	require.Len(t, irefs, 2)
	require.Equal(t, "auxl", string(irefs[0][16:20]))
	require.Equal(t, "prem", string(irefs[1][16:20]))
	require.Equal(t, uint16(1), pio.U16BE(irefs[1][20:])) // from color
	require.Equal(t, uint16(2), pio.U16BE(irefs[1][24:])) // to alpha
}

func TestMuxBytesColorDescription(t *testing.T) {
	t.Parallel()

	out := NewMuxer().
		ColorPrimaries(ColorPrimariesBT2020).
		TransferCharacteristics(TransferSMPTE2084).
		MatrixCoefficients(MatrixBT2020NCL).
		FullColorRange(false).
		MuxBytes(&Image{ColorData: []byte("hdr"), Width: 1, Height: 1, Depth: 10})

	metaBoxes := splitBoxes(boxBody(findBox(t, splitBoxes(out), "meta")))
	ipco := findBox(t, splitBoxes(boxBody(findBox(t, metaBoxes, "iprp"))), "ipco")
	colr := findBox(t, splitBoxes(boxBody(ipco)), "colr")

	require.Equal(t, "nclx", string(colr[8:12]))
	require.Equal(t, uint16(9), pio.U16BE(colr[12:]))
	require.Equal(t, uint16(16), pio.U16BE(colr[14:]))
	require.Equal(t, uint16(9), pio.U16BE(colr[16:]))
	require.Equal(t, uint8(0), colr[18])
}

func TestMuxBytesSequence(t *testing.T) {
	t.Parallel()

	color := []byte("c1c2c3")
	alpha := []byte("a1a2")
	out := MuxBytes(&Image{
		ColorData: color,
		AlphaData: alpha,
		Width:     10,
		Height:    20,
		Depth:     8,
		Timescale: 30,
		ColorFrames: []FrameInfo{
			{Duration: 1, Sync: true, Size: 2},
			{Duration: 1, Sync: false, Size: 2},
			{Duration: 2, Sync: true, Size: 2},
		},
		AlphaFrames: []FrameInfo{
			{Duration: 2, Sync: true, Size: 2},
			{Duration: 2, Sync: true, Size: 2},
		},
	})

	top := splitBoxes(out)
	require.Equal(t, "avis", string(findBox(t, top, "ftyp")[8:12]))

	payloadStart := uint32(len(out) - len(color) - len(alpha))

	// items still cover the whole streams, color first
	metaBoxes := splitBoxes(boxBody(findBox(t, top, "meta")))
	items := parseIloc(t, findBox(t, metaBoxes, "iloc"))
	require.Equal(t, extent{offset: payloadStart, length: uint32(len(color))}, items[1])
	require.Equal(t, extent{offset: payloadStart + uint32(len(color)), length: uint32(len(alpha))}, items[2])

	mdat := findBox(t, top, "mdat")
	require.Equal(t, []byte("c1c2c3a1a2"), boxBody(mdat))

	moov := findBox(t, top, "moov")
	moovBoxes := splitBoxes(boxBody(moov))
	mvhd := findBox(t, moovBoxes, "mvhd")
	require.Equal(t, uint32(30), pio.U32BE(mvhd[28:]))
	require.Equal(t, uint64(avifio.DurationInfinite), pio.U64BE(mvhd[32:]))
	require.Equal(t, uint32(3), pio.U32BE(mvhd[116:])) // next_track_id

	traks := findBoxes(moovBoxes, "trak")
	require.Len(t, traks, 2)

	stblOf := func(trak []byte) [][]byte {
		mdia := findBox(t, splitBoxes(boxBody(trak)), "mdia")
		minf := findBox(t, splitBoxes(boxBody(mdia)), "minf")
		return splitBoxes(boxBody(findBox(t, splitBoxes(boxBody(minf)), "stbl")))
	}
	mdhdOf := func(trak []byte) []byte {
		mdia := findBox(t, splitBoxes(boxBody(trak)), "mdia")
		return findBox(t, splitBoxes(boxBody(mdia)), "mdhd")
	}

	colorStbl := stblOf(traks[0])
	alphaStbl := stblOf(traks[1])

	// chunk offsets accumulate in track order
	colorStco := findBox(t, colorStbl, "stco")
	alphaStco := findBox(t, alphaStbl, "stco")
	require.Equal(t, payloadStart, pio.U32BE(colorStco[16:]))
	require.Equal(t, payloadStart+uint32(len(color)), pio.U32BE(alphaStco[16:]))

	// run-length encoded durations
	colorStts := findBox(t, colorStbl, "stts")
	require.Equal(t, uint32(2), pio.U32BE(colorStts[12:]))
	require.Equal(t, uint32(2), pio.U32BE(colorStts[16:]))
	require.Equal(t, uint32(1), pio.U32BE(colorStts[20:]))
	require.Equal(t, uint32(1), pio.U32BE(colorStts[24:]))
	require.Equal(t, uint32(2), pio.U32BE(colorStts[28:]))

	// stss only where some frame is not a random-access point
	colorStss := findBox(t, colorStbl, "stss")
	require.Equal(t, uint32(2), pio.U32BE(colorStss[12:]))
	require.Equal(t, uint32(1), pio.U32BE(colorStss[16:]))
	require.Equal(t, uint32(3), pio.U32BE(colorStss[20:]))
	require.Empty(t, findBoxes(alphaStbl, "stss"))

	// per-track media duration in timescale units
	require.Equal(t, uint64(4), pio.U64BE(mdhdOf(traks[0])[32:]))
	require.Equal(t, uint64(4), pio.U64BE(mdhdOf(traks[1])[32:]))

	// alpha track is marked auxiliary
	require.True(t, bytes.Contains(findBox(t, alphaStbl, "stsd"), []byte(avifio.AlphaURN)))
	alphaTref := findBox(t, splitBoxes(boxBody(traks[1])), "tref")
	require.Equal(t, "auxl", string(alphaTref[12:16]))
	require.Equal(t, uint32(1), pio.U32BE(alphaTref[16:]))
}

func TestMuxWriterErrorPropagates(t *testing.T) {
	t.Parallel()

	err := Mux(failWriter{}, &Image{ColorData: []byte("x"), Width: 1, Height: 1, Depth: 8})
	require.ErrorIs(t, err, errPipeClosed)
}

var errPipeClosed = errors.New("pipe closed")

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errPipeClosed
}
