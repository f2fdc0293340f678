package avifio

import "github.com/goavif/avif/utils/bits/pio"

// Extent points at one item's payload inside the mdat atom. It is created
// with an offset relative to the start of the mdat payload; ResolveOffsets
// on the File rewrites it to an absolute file offset once every preceding
// atom's length is final. Marshaling an unresolved extent is an assembly
// bug, not an input condition, and panics.
type Extent struct {
	offset   uint32
	length   uint32
	absolute bool
}

// RelativeExtent describes a payload slice at offset bytes from the start of
// the mdat payload.
func RelativeExtent(offset, length uint32) Extent {
	return Extent{offset: offset, length: length}
}

// Resolve turns the relative offset into an absolute file offset. Calling it
// on an already-absolute extent is a no-op.
func (e *Extent) Resolve(base uint32) {
	if e.absolute {
		return
	}
	e.offset += base
	e.absolute = true
}

// Offset returns the absolute file offset of the extent. It panics if the
// extent has not been resolved.
func (e Extent) Offset() uint32 {
	if !e.absolute {
		panic("avifio: extent offset has not been resolved to an absolute position")
	}
	return e.offset
}

func (e Extent) Length() uint32 {
	return e.length
}

type LocatedItem struct {
	ItemID  uint16
	Extents []Extent
}

// ItemLocation is the iloc atom. Offset and length fields are fixed at four
// bytes so the atom's size never depends on the values it carries.
type ItemLocation struct {
	Items []LocatedItem
}

func (*ItemLocation) Tag() Tag {
	return ILOC
}

func (l *ItemLocation) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(ILOC))
	n += l.marshal(b[8:]) + HeaderSize
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (l *ItemLocation) marshal(b []byte) (n int) {
	n += putVerFlags(b[n:], 0, 0)
	pio.PutU8(b[n:], 4<<4|4) // offset_size, length_size
	n++
	pio.PutU8(b[n:], 0) // base_offset_size, reserved
	n++
	pio.PutU16BE(b[n:], uint16(len(l.Items)))
	n += 2
	for _, item := range l.Items {
		pio.PutU16BE(b[n:], item.ItemID)
		n += 2
		pio.PutU16BE(b[n:], 0) // data_reference_index
		n += 2
		pio.PutU16BE(b[n:], uint16(len(item.Extents)))
		n += 2
		for _, ex := range item.Extents {
			pio.PutU32BE(b[n:], ex.Offset())
			n += 4
			pio.PutU32BE(b[n:], ex.Length())
			n += 4
		}
	}
	return
}

func (l *ItemLocation) Len() (n int) {
	n += FullHeaderSize
	n += 1 + 1 + 2
	for _, item := range l.Items {
		n += 2 + 2 + 2
		n += 8 * len(item.Extents)
	}
	return
}

func (*ItemLocation) Children() []Atom {
	return nil
}
