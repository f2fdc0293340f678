package avifio

import "github.com/goavif/avif/utils/bits/pio"

const (
	baseFtypSize  = 16
	bytesPerBrand = 4
)

// NewFileType builds the ftyp atom for a still image (brand avif) or an
// image sequence (brand avis).
func NewFileType(sequence bool) *FileType {
	f := &FileType{
		MajorBrand:   uint32(StringToTag("avif")),
		MinorVersion: 0,
		CompatibleBrands: []uint32{
			uint32(StringToTag("avif")),
		},
	}
	if sequence {
		f.MajorBrand = uint32(StringToTag("avis"))
		f.CompatibleBrands = append(f.CompatibleBrands, uint32(StringToTag("avis")))
	}
	f.CompatibleBrands = append(f.CompatibleBrands,
		uint32(StringToTag("mif1")),
		uint32(StringToTag("miaf")))
	return f
}

type FileType struct {
	MajorBrand       uint32
	MinorVersion     uint32
	CompatibleBrands []uint32
}

func (*FileType) Tag() Tag {
	return FTYP
}

func (f *FileType) Marshal(b []byte) (n int) {
	l := f.Len()
	pio.PutU32BE(b, uint32(l))
	pio.PutU32BE(b[4:], uint32(FTYP))
	pio.PutU32BE(b[8:], f.MajorBrand)
	pio.PutU32BE(b[12:], f.MinorVersion)
	for i, v := range f.CompatibleBrands {
		pio.PutU32BE(b[baseFtypSize+bytesPerBrand*i:], v)
	}
	return l
}

func (f *FileType) Len() int {
	return baseFtypSize + bytesPerBrand*len(f.CompatibleBrands)
}

func (*FileType) Children() []Atom {
	return nil
}
