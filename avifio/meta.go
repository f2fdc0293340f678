package avifio

import "github.com/goavif/avif/utils/bits/pio"

// Meta is the item catalog of the file: handler, primary item, item
// locations, item infos, item references and the property pool. Children
// are marshaled in the fixed order required by the HEIF brands.
type Meta struct {
	Handler      *HandlerRefer
	PrimaryItem  *PrimaryItem
	ItemLocation *ItemLocation
	ItemInfo     *ItemInfo
	ItemRefs     []*ItemRef
	Properties   *ItemProperties
}

func (*Meta) Tag() Tag {
	return META
}

func (m *Meta) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(META))
	n += m.marshal(b[8:]) + HeaderSize
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (m *Meta) marshal(b []byte) (n int) {
	n += putVerFlags(b[n:], 0, 0)
	if m.Handler != nil {
		n += m.Handler.Marshal(b[n:])
	}
	if m.PrimaryItem != nil {
		n += m.PrimaryItem.Marshal(b[n:])
	}
	if m.ItemLocation != nil {
		n += m.ItemLocation.Marshal(b[n:])
	}
	if m.ItemInfo != nil {
		n += m.ItemInfo.Marshal(b[n:])
	}
	for _, iref := range m.ItemRefs {
		n += iref.Marshal(b[n:])
	}
	if m.Properties != nil {
		n += m.Properties.Marshal(b[n:])
	}
	return
}

func (m *Meta) Len() (n int) {
	n += FullHeaderSize
	if m.Handler != nil {
		n += m.Handler.Len()
	}
	if m.PrimaryItem != nil {
		n += m.PrimaryItem.Len()
	}
	if m.ItemLocation != nil {
		n += m.ItemLocation.Len()
	}
	if m.ItemInfo != nil {
		n += m.ItemInfo.Len()
	}
	for _, iref := range m.ItemRefs {
		n += iref.Len()
	}
	if m.Properties != nil {
		n += m.Properties.Len()
	}
	return
}

func (m *Meta) Children() (r []Atom) {
	if m.Handler != nil {
		r = append(r, m.Handler)
	}
	if m.PrimaryItem != nil {
		r = append(r, m.PrimaryItem)
	}
	if m.ItemLocation != nil {
		r = append(r, m.ItemLocation)
	}
	if m.ItemInfo != nil {
		r = append(r, m.ItemInfo)
	}
	for _, iref := range m.ItemRefs {
		r = append(r, iref)
	}
	if m.Properties != nil {
		r = append(r, m.Properties)
	}
	return
}

// PrimaryItem names the item a reader should display, always the color item.
type PrimaryItem struct {
	ItemID uint16
}

func (*PrimaryItem) Tag() Tag {
	return PITM
}

func (p *PrimaryItem) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(PITM))
	n += p.marshal(b[8:]) + HeaderSize
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (p *PrimaryItem) marshal(b []byte) (n int) {
	n += putVerFlags(b[n:], 0, 0)
	pio.PutU16BE(b[n:], p.ItemID)
	n += 2
	return
}

func (p *PrimaryItem) Len() int {
	return FullHeaderSize + 2
}

func (*PrimaryItem) Children() []Atom {
	return nil
}
