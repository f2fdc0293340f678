// Package avifio implements the ISOBMFF/HEIF box layer of the AVIF writer.
//
// Every atom knows its exact marshaled size before a single byte is written:
// box headers carry the total box length, and the item location and chunk
// offset atoms carry absolute file offsets into the trailing mdat, so the
// whole tree is sized bottom-up first, offsets are resolved second and bytes
// are emitted last.
package avifio

import (
	"github.com/goavif/avif/utils/bits/pio"
)

const (
	// HeaderSize is the size of a basic box header (u32 size + fourcc).
	HeaderSize = 8
	// FullHeaderSize adds the version byte and 24-bit flags of a full box.
	FullHeaderSize = HeaderSize + 4
)

// Tag is a big-endian fourcc box type.
type Tag uint32

func (t Tag) String() string {
	var b [4]byte
	pio.PutU32BE(b[:], uint32(t))
	for i := 0; i < 4; i++ {
		if b[i] == 0 {
			b[i] = ' '
		}
	}
	return string(b[:])
}

func StringToTag(tag string) Tag {
	var b [4]byte
	copy(b[:], tag)
	return Tag(pio.U32BE(b[:]))
}

const (
	FTYP = Tag(0x66747970)
	META = Tag(0x6d657461)
	HDLR = Tag(0x68646c72)
	PITM = Tag(0x7069746d)
	ILOC = Tag(0x696c6f63)
	IINF = Tag(0x69696e66)
	INFE = Tag(0x696e6665)
	IPRP = Tag(0x69707270)
	IPCO = Tag(0x6970636f)
	IPMA = Tag(0x69706d61)
	ISPE = Tag(0x69737065)
	PIXI = Tag(0x70697869)
	AV1C = Tag(0x61763143)
	AUXC = Tag(0x61757843)
	COLR = Tag(0x636f6c72)
	NCLX = Tag(0x6e636c78)
	IREF = Tag(0x69726566)
	AUXL = Tag(0x6175786c)
	PREM = Tag(0x7072656d)
	MOOV = Tag(0x6d6f6f76)
	MVHD = Tag(0x6d766864)
	TRAK = Tag(0x7472616b)
	TKHD = Tag(0x746b6864)
	TREF = Tag(0x74726566)
	MDIA = Tag(0x6d646961)
	MDHD = Tag(0x6d646864)
	MINF = Tag(0x6d696e66)
	VMHD = Tag(0x766d6864)
	DINF = Tag(0x64696e66)
	DREF = Tag(0x64726566)
	URL  = Tag(0x75726c20)
	STBL = Tag(0x7374626c)
	STSD = Tag(0x73747364)
	AV01 = Tag(0x61763031)
	STTS = Tag(0x73747473)
	STSC = Tag(0x73747363)
	STSZ = Tag(0x7374737a)
	STCO = Tag(0x7374636f)
	STSS = Tag(0x73747373)
	CCST = Tag(0x63637374)
	AUXI = Tag(0x61757869)
	MDAT = Tag(0x6d646174)
)

// Atom is a serializable box. Marshal must write exactly Len() bytes into b;
// Len is a pure function of the atom's fields and never performs I/O.
type Atom interface {
	Tag() Tag
	Marshal(b []byte) int
	Len() int
	Children() []Atom
}

// putVerFlags writes the version/flags word of a full box body.
func putVerFlags(b []byte, version uint8, flags uint32) int {
	pio.PutU8(b, version)
	pio.PutU24BE(b[1:], flags)
	return 4
}
