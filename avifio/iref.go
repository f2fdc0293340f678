package avifio

import "github.com/goavif/avif/utils/bits/pio"

// ItemRef is a directed, typed edge between two items: auxl marks the alpha
// item as auxiliary to the color item, prem marks the color item as
// premultiplied by the alpha item.
type ItemRef struct {
	RefType Tag
	FromID  uint16
	ToID    uint16
}

func (*ItemRef) Tag() Tag {
	return IREF
}

func (r *ItemRef) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(IREF))
	n += r.marshal(b[8:]) + HeaderSize
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (r *ItemRef) marshal(b []byte) (n int) {
	n += putVerFlags(b[n:], 0, 0)
	pio.PutU32BE(b[n:], uint32(HeaderSize+6))
	n += 4
	pio.PutU32BE(b[n:], uint32(r.RefType))
	n += 4
	pio.PutU16BE(b[n:], r.FromID)
	n += 2
	pio.PutU16BE(b[n:], 1) // reference_count
	n += 2
	pio.PutU16BE(b[n:], r.ToID)
	n += 2
	return
}

func (r *ItemRef) Len() int {
	return FullHeaderSize + HeaderSize + 6
}

func (*ItemRef) Children() []Atom {
	return nil
}
