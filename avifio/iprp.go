package avifio

import "github.com/goavif/avif/utils/bits/pio"

// EssentialBit marks a property association a reader must understand to
// decode the item (the av1C config is always essential).
const EssentialBit = 0x80

// ItemProperties is the iprp atom: the shared property pool followed by the
// per-item association lists.
type ItemProperties struct {
	Pool  *PropertyPool
	Assoc *PropertyAssociations
}

func (*ItemProperties) Tag() Tag {
	return IPRP
}

func (p *ItemProperties) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(IPRP))
	n += p.marshal(b[8:]) + HeaderSize
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (p *ItemProperties) marshal(b []byte) (n int) {
	if p.Pool != nil {
		n += p.Pool.Marshal(b[n:])
	}
	if p.Assoc != nil {
		n += p.Assoc.Marshal(b[n:])
	}
	return
}

func (p *ItemProperties) Len() (n int) {
	n += HeaderSize
	if p.Pool != nil {
		n += p.Pool.Len()
	}
	if p.Assoc != nil {
		n += p.Assoc.Len()
	}
	return
}

func (p *ItemProperties) Children() (r []Atom) {
	if p.Pool != nil {
		r = append(r, p.Pool)
	}
	if p.Assoc != nil {
		r = append(r, p.Assoc)
	}
	return
}

// PropertyPool is the ipco atom, an order-significant pool of properties.
// Items reference pool entries by 1-based index; the order is fixed once
// indices have been handed out, so the pool is append-only.
type PropertyPool struct {
	props []Property
}

// Push appends a property and returns its 1-based index, as the association
// table encodes it.
func (p *PropertyPool) Push(prop Property) uint8 {
	p.props = append(p.props, prop)
	return uint8(len(p.props))
}

func (*PropertyPool) Tag() Tag {
	return IPCO
}

func (p *PropertyPool) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(IPCO))
	n += p.marshal(b[8:]) + HeaderSize
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (p *PropertyPool) marshal(b []byte) (n int) {
	for _, prop := range p.props {
		n += prop.Marshal(b[n:])
	}
	return
}

func (p *PropertyPool) Len() (n int) {
	n += HeaderSize
	for _, prop := range p.props {
		n += prop.Len()
	}
	return
}

func (p *PropertyPool) Children() (r []Atom) {
	for _, prop := range p.props {
		r = append(r, prop)
	}
	return
}

type PropertyAssocEntry struct {
	ItemID  uint16
	PropIDs []uint8
}

// PropertyAssociations is the ipma atom binding items to pool indices.
type PropertyAssociations struct {
	Entries []PropertyAssocEntry
}

func (*PropertyAssociations) Tag() Tag {
	return IPMA
}

func (p *PropertyAssociations) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(IPMA))
	n += p.marshal(b[8:]) + HeaderSize
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (p *PropertyAssociations) marshal(b []byte) (n int) {
	n += putVerFlags(b[n:], 0, 0)
	pio.PutU32BE(b[n:], uint32(len(p.Entries)))
	n += 4
	for _, e := range p.Entries {
		pio.PutU16BE(b[n:], e.ItemID)
		n += 2
		pio.PutU8(b[n:], uint8(len(e.PropIDs)))
		n++
		for _, id := range e.PropIDs {
			pio.PutU8(b[n:], id)
			n++
		}
	}
	return
}

func (p *PropertyAssociations) Len() (n int) {
	n += FullHeaderSize + 4
	for _, e := range p.Entries {
		n += 2 + 1 + len(e.PropIDs)
	}
	return
}

func (*PropertyAssociations) Children() []Atom {
	return nil
}
