package avifio

import "github.com/goavif/avif/utils/bits/pio"

// HandlerName is written into every hdlr atom this writer emits.
const HandlerName = "goavif"

// Handler types used by the AVIF brands.
var (
	HandlerPict = StringToTag("pict")
	HandlerAuxv = StringToTag("auxv")
)

type HandlerRefer struct {
	HandlerType Tag
	Name        string
}

func (*HandlerRefer) Tag() Tag {
	return HDLR
}

func (h *HandlerRefer) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(HDLR))
	n += h.marshal(b[8:]) + HeaderSize
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (h *HandlerRefer) marshal(b []byte) (n int) {
	n += putVerFlags(b[n:], 0, 0)
	pio.PutU32BE(b[n:], 0) // pre_defined
	n += 4
	pio.PutU32BE(b[n:], uint32(h.HandlerType))
	n += 4
	// three reserved words; some readers insist on zeros here
	pio.PutU32BE(b[n:], 0)
	n += 4
	pio.PutU32BE(b[n:], 0)
	n += 4
	pio.PutU32BE(b[n:], 0)
	n += 4
	n += copy(b[n:], h.Name)
	pio.PutU8(b[n:], 0)
	n++
	return
}

func (h *HandlerRefer) Len() (n int) {
	return FullHeaderSize + 20 + len(h.Name) + 1
}

func (*HandlerRefer) Children() []Atom {
	return nil
}
