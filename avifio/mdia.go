package avifio

import "github.com/goavif/avif/utils/bits/pio"

// Media is the mdia atom: media header, handler and media information.
type Media struct {
	Header  *MediaHeader
	Handler *HandlerRefer
	Info    *MediaInfo
}

func (*Media) Tag() Tag {
	return MDIA
}

func (m *Media) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(MDIA))
	n += m.marshal(b[8:]) + HeaderSize
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (m *Media) marshal(b []byte) (n int) {
	if m.Header != nil {
		n += m.Header.Marshal(b[n:])
	}
	if m.Handler != nil {
		n += m.Handler.Marshal(b[n:])
	}
	if m.Info != nil {
		n += m.Info.Marshal(b[n:])
	}
	return
}

func (m *Media) Len() (n int) {
	n += HeaderSize
	if m.Header != nil {
		n += m.Header.Len()
	}
	if m.Handler != nil {
		n += m.Handler.Len()
	}
	if m.Info != nil {
		n += m.Info.Len()
	}
	return
}

func (m *Media) Children() (r []Atom) {
	if m.Header != nil {
		r = append(r, m.Header)
	}
	if m.Handler != nil {
		r = append(r, m.Handler)
	}
	if m.Info != nil {
		r = append(r, m.Info)
	}
	return
}

// languageUndetermined is the packed ISO-639-2 code "und".
const languageUndetermined = 21956

// MediaHeader is the mdhd atom, version 1. Duration is the sum of all frame
// durations in timescale units.
type MediaHeader struct {
	CreateTime uint64
	ModifyTime uint64
	TimeScale  uint32
	Duration   uint64
}

func (*MediaHeader) Tag() Tag {
	return MDHD
}

func (h *MediaHeader) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(MDHD))
	n += h.marshal(b[8:]) + HeaderSize
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (h *MediaHeader) marshal(b []byte) (n int) {
	n += putVerFlags(b[n:], 1, 0)
	pio.PutU64BE(b[n:], h.CreateTime)
	n += 8
	pio.PutU64BE(b[n:], h.ModifyTime)
	n += 8
	pio.PutU32BE(b[n:], h.TimeScale)
	n += 4
	pio.PutU64BE(b[n:], h.Duration)
	n += 8
	pio.PutU16BE(b[n:], languageUndetermined)
	n += 2
	pio.PutU16BE(b[n:], 0) // pre_defined
	n += 2
	return
}

func (*MediaHeader) Len() int {
	return FullHeaderSize + 32
}

func (*MediaHeader) Children() []Atom {
	return nil
}
