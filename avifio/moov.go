package avifio

import "github.com/goavif/avif/utils/bits/pio"

var unityMatrix = [9]uint32{0x00010000, 0, 0, 0, 0x00010000, 0, 0, 0, 0x40000000}

// DurationInfinite in mvhd/tkhd makes conforming players loop the sequence.
const DurationInfinite = ^uint64(0)

// Movie is the moov atom of an image sequence: movie header plus one track
// per elementary stream (color, then alpha).
type Movie struct {
	Header *MovieHeader
	Tracks []*Track
}

func (*Movie) Tag() Tag {
	return MOOV
}

func (m *Movie) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(MOOV))
	n += m.marshal(b[8:]) + HeaderSize
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (m *Movie) marshal(b []byte) (n int) {
	if m.Header != nil {
		n += m.Header.Marshal(b[n:])
	}
	for _, track := range m.Tracks {
		n += track.Marshal(b[n:])
	}
	return
}

func (m *Movie) Len() (n int) {
	n += HeaderSize
	if m.Header != nil {
		n += m.Header.Len()
	}
	for _, track := range m.Tracks {
		n += track.Len()
	}
	return
}

func (m *Movie) Children() (r []Atom) {
	if m.Header != nil {
		r = append(r, m.Header)
	}
	for _, track := range m.Tracks {
		r = append(r, track)
	}
	return
}

// MovieHeader is the mvhd atom, version 1 for 64-bit durations.
type MovieHeader struct {
	CreateTime  uint64
	ModifyTime  uint64
	TimeScale   uint32
	Duration    uint64
	NextTrackID uint32
}

func (*MovieHeader) Tag() Tag {
	return MVHD
}

func (h *MovieHeader) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(MVHD))
	n += h.marshal(b[8:]) + HeaderSize
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (h *MovieHeader) marshal(b []byte) (n int) {
	n += putVerFlags(b[n:], 1, 0)
	pio.PutU64BE(b[n:], h.CreateTime)
	n += 8
	pio.PutU64BE(b[n:], h.ModifyTime)
	n += 8
	pio.PutU32BE(b[n:], h.TimeScale)
	n += 4
	pio.PutU64BE(b[n:], h.Duration)
	n += 8
	pio.PutU32BE(b[n:], 0x00010000) // rate
	n += 4
	pio.PutU16BE(b[n:], 0x0100) // volume
	n += 2
	pio.PutU16BE(b[n:], 0) // reserved
	n += 2
	pio.PutU32BE(b[n:], 0) // reserved
	n += 4
	pio.PutU32BE(b[n:], 0) // reserved
	n += 4
	for _, v := range unityMatrix {
		pio.PutU32BE(b[n:], v)
		n += 4
	}
	for i := 0; i < 6; i++ { // pre_defined
		pio.PutU32BE(b[n:], 0)
		n += 4
	}
	pio.PutU32BE(b[n:], h.NextTrackID)
	n += 4
	return
}

func (*MovieHeader) Len() int {
	return FullHeaderSize + 108
}

func (*MovieHeader) Children() []Atom {
	return nil
}
