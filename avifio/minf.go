package avifio

import "github.com/goavif/avif/utils/bits/pio"

// MediaInfo is the minf atom: video media header, data information and the
// sample table.
type MediaInfo struct {
	Video  *VideoMediaInfo
	Data   *DataInfo
	Sample *SampleTable
}

func (*MediaInfo) Tag() Tag {
	return MINF
}

func (m *MediaInfo) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(MINF))
	n += m.marshal(b[8:]) + HeaderSize
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (m *MediaInfo) marshal(b []byte) (n int) {
	if m.Video != nil {
		n += m.Video.Marshal(b[n:])
	}
	if m.Data != nil {
		n += m.Data.Marshal(b[n:])
	}
	if m.Sample != nil {
		n += m.Sample.Marshal(b[n:])
	}
	return
}

func (m *MediaInfo) Len() (n int) {
	n += HeaderSize
	if m.Video != nil {
		n += m.Video.Len()
	}
	if m.Data != nil {
		n += m.Data.Len()
	}
	if m.Sample != nil {
		n += m.Sample.Len()
	}
	return
}

func (m *MediaInfo) Children() (r []Atom) {
	if m.Video != nil {
		r = append(r, m.Video)
	}
	if m.Data != nil {
		r = append(r, m.Data)
	}
	if m.Sample != nil {
		r = append(r, m.Sample)
	}
	return
}

// VideoMediaInfo is the vmhd atom: all-zero graphics mode and opcolor.
type VideoMediaInfo struct{}

func (*VideoMediaInfo) Tag() Tag {
	return VMHD
}

func (v *VideoMediaInfo) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(VMHD))
	n += v.marshal(b[8:]) + HeaderSize
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (*VideoMediaInfo) marshal(b []byte) (n int) {
	n += putVerFlags(b[n:], 0, 1)
	pio.PutU16BE(b[n:], 0) // graphicsmode
	n += 2
	for i := 0; i < 3; i++ { // opcolor
		pio.PutU16BE(b[n:], 0)
		n += 2
	}
	return
}

func (*VideoMediaInfo) Len() int {
	return FullHeaderSize + 8
}

func (*VideoMediaInfo) Children() []Atom {
	return nil
}

// DataInfo is the dinf atom holding a single self-contained data reference.
type DataInfo struct {
	Refer *DataRefer
}

func (*DataInfo) Tag() Tag {
	return DINF
}

func (d *DataInfo) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(DINF))
	n += d.marshal(b[8:]) + HeaderSize
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (d *DataInfo) marshal(b []byte) (n int) {
	if d.Refer != nil {
		n += d.Refer.Marshal(b[n:])
	}
	return
}

func (d *DataInfo) Len() (n int) {
	n += HeaderSize
	if d.Refer != nil {
		n += d.Refer.Len()
	}
	return
}

func (d *DataInfo) Children() (r []Atom) {
	if d.Refer != nil {
		r = append(r, d.Refer)
	}
	return
}

// DataRefer is the dref atom with one url entry.
type DataRefer struct {
	Url *DataReferUrl
}

func (*DataRefer) Tag() Tag {
	return DREF
}

func (d *DataRefer) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(DREF))
	n += d.marshal(b[8:]) + HeaderSize
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (d *DataRefer) marshal(b []byte) (n int) {
	n += putVerFlags(b[n:], 0, 0)
	pio.PutU32BE(b[n:], 1) // entry_count
	n += 4
	if d.Url != nil {
		n += d.Url.Marshal(b[n:])
	}
	return
}

func (d *DataRefer) Len() (n int) {
	n += FullHeaderSize + 4
	if d.Url != nil {
		n += d.Url.Len()
	}
	return
}

func (d *DataRefer) Children() (r []Atom) {
	if d.Url != nil {
		r = append(r, d.Url)
	}
	return
}

// DataReferUrl is an empty url entry; flag 1 means the media data lives in
// this file.
type DataReferUrl struct{}

func (*DataReferUrl) Tag() Tag {
	return URL
}

func (u *DataReferUrl) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(URL))
	n += putVerFlags(b[8:], 0, 1) + HeaderSize
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (*DataReferUrl) Len() int {
	return FullHeaderSize
}

func (*DataReferUrl) Children() []Atom {
	return nil
}
