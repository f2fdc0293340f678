package avifio

import "github.com/goavif/avif/utils/bits/pio"

// ItemInfo lists the coded items of the file (at most a color and an alpha
// image in this writer).
type ItemInfo struct {
	Items []*ItemInfoEntry
}

func (*ItemInfo) Tag() Tag {
	return IINF
}

func (i *ItemInfo) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(IINF))
	n += i.marshal(b[8:]) + HeaderSize
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (i *ItemInfo) marshal(b []byte) (n int) {
	n += putVerFlags(b[n:], 0, 0)
	pio.PutU16BE(b[n:], uint16(len(i.Items)))
	n += 2
	for _, item := range i.Items {
		n += item.Marshal(b[n:])
	}
	return
}

func (i *ItemInfo) Len() (n int) {
	n += FullHeaderSize + 2
	for _, item := range i.Items {
		n += item.Len()
	}
	return
}

func (i *ItemInfo) Children() (r []Atom) {
	for _, item := range i.Items {
		r = append(r, item)
	}
	return
}

// ItemInfoEntry declares one coded item: its id, coding fourcc (av01) and a
// human-readable name.
type ItemInfoEntry struct {
	ItemID   uint16
	ItemType Tag
	Name     string
}

func (*ItemInfoEntry) Tag() Tag {
	return INFE
}

func (e *ItemInfoEntry) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(INFE))
	n += e.marshal(b[8:]) + HeaderSize
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (e *ItemInfoEntry) marshal(b []byte) (n int) {
	n += putVerFlags(b[n:], 2, 0)
	pio.PutU16BE(b[n:], e.ItemID)
	n += 2
	pio.PutU16BE(b[n:], 0) // item_protection_index
	n += 2
	pio.PutU32BE(b[n:], uint32(e.ItemType))
	n += 4
	n += copy(b[n:], e.Name)
	pio.PutU8(b[n:], 0)
	n++
	return
}

func (e *ItemInfoEntry) Len() int {
	return FullHeaderSize + 2 + 2 + 4 + len(e.Name) + 1
}

func (*ItemInfoEntry) Children() []Atom {
	return nil
}
