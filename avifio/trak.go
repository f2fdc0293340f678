package avifio

import "github.com/goavif/avif/utils/bits/pio"

// Track is one elementary stream of an image sequence.
type Track struct {
	Header *TrackHeader
	Ref    *TrackRef
	Media  *Media
}

func (*Track) Tag() Tag {
	return TRAK
}

func (t *Track) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(TRAK))
	n += t.marshal(b[8:]) + HeaderSize
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (t *Track) marshal(b []byte) (n int) {
	if t.Header != nil {
		n += t.Header.Marshal(b[n:])
	}
	if t.Ref != nil {
		n += t.Ref.Marshal(b[n:])
	}
	if t.Media != nil {
		n += t.Media.Marshal(b[n:])
	}
	return
}

func (t *Track) Len() (n int) {
	n += HeaderSize
	if t.Header != nil {
		n += t.Header.Len()
	}
	if t.Ref != nil {
		n += t.Ref.Len()
	}
	if t.Media != nil {
		n += t.Media.Len()
	}
	return
}

func (t *Track) Children() (r []Atom) {
	if t.Header != nil {
		r = append(r, t.Header)
	}
	if t.Ref != nil {
		r = append(r, t.Ref)
	}
	if t.Media != nil {
		r = append(r, t.Media)
	}
	return
}

// TrackHeader is the tkhd atom, version 1 with the track-enabled flag set.
// Width and height are 16.16 fixed point.
type TrackHeader struct {
	CreateTime uint64
	ModifyTime uint64
	TrackID    uint32
	Duration   uint64
	Width      uint32
	Height     uint32
}

func (*TrackHeader) Tag() Tag {
	return TKHD
}

func (h *TrackHeader) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(TKHD))
	n += h.marshal(b[8:]) + HeaderSize
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (h *TrackHeader) marshal(b []byte) (n int) {
	n += putVerFlags(b[n:], 1, 1)
	pio.PutU64BE(b[n:], h.CreateTime)
	n += 8
	pio.PutU64BE(b[n:], h.ModifyTime)
	n += 8
	pio.PutU32BE(b[n:], h.TrackID)
	n += 4
	pio.PutU32BE(b[n:], 0) // reserved
	n += 4
	pio.PutU64BE(b[n:], h.Duration)
	n += 8
	pio.PutU32BE(b[n:], 0) // reserved
	n += 4
	pio.PutU32BE(b[n:], 0) // reserved
	n += 4
	pio.PutU16BE(b[n:], 0) // layer
	n += 2
	pio.PutU16BE(b[n:], 0) // alternate_group
	n += 2
	pio.PutU16BE(b[n:], 0) // volume
	n += 2
	pio.PutU16BE(b[n:], 0) // reserved
	n += 2
	for _, v := range unityMatrix {
		pio.PutU32BE(b[n:], v)
		n += 4
	}
	pio.PutU32BE(b[n:], h.Width)
	n += 4
	pio.PutU32BE(b[n:], h.Height)
	n += 4
	return
}

func (*TrackHeader) Len() int {
	return FullHeaderSize + 92
}

func (*TrackHeader) Children() []Atom {
	return nil
}

// TrackRef is the tref atom; the alpha track carries a single auxl edge
// pointing at the color track.
type TrackRef struct {
	RefType Tag
	ToID    uint32
}

func (*TrackRef) Tag() Tag {
	return TREF
}

func (t *TrackRef) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(TREF))
	n += t.marshal(b[8:]) + HeaderSize
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (t *TrackRef) marshal(b []byte) (n int) {
	pio.PutU32BE(b[n:], uint32(HeaderSize+4))
	n += 4
	pio.PutU32BE(b[n:], uint32(t.RefType))
	n += 4
	pio.PutU32BE(b[n:], t.ToID)
	n += 4
	return
}

func (*TrackRef) Len() int {
	return HeaderSize + HeaderSize + 4
}

func (*TrackRef) Children() []Atom {
	return nil
}
