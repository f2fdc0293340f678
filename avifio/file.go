package avifio

import "io"

// File is the fully assembled box tree of one AVIF file. Moov is nil for
// still images.
type File struct {
	Ftyp *FileType
	Meta *Meta
	Moov *Movie
	Mdat *MediaData
}

// HeaderLen is the size of everything before the mdat atom.
func (f *File) HeaderLen() (n int) {
	n += f.Ftyp.Len()
	n += f.Meta.Len()
	if f.Moov != nil {
		n += f.Moov.Len()
	}
	return
}

// PayloadStart is the absolute file offset of the first mdat payload byte.
// It is only valid once every header atom's length is final, which is why
// offset resolution runs strictly after assembly and strictly before
// writing.
func (f *File) PayloadStart() uint32 {
	return uint32(f.HeaderLen() + HeaderSize)
}

// ResolveOffsets rewrites every relative item extent to an absolute file
// offset and assigns each track its chunk offset. Tracks accumulate in the
// order they were added: the first track's samples start at PayloadStart,
// each following track starts after the previous track's total sample
// bytes. That order must match the order chunks are concatenated in mdat.
func (f *File) ResolveOffsets() {
	start := f.PayloadStart()

	if f.Meta.ItemLocation != nil {
		for _, item := range f.Meta.ItemLocation.Items {
			for i := range item.Extents {
				item.Extents[i].Resolve(start)
			}
		}
	}

	if f.Moov != nil {
		offset := start
		for _, track := range f.Moov.Tracks {
			sample := track.Media.Info.Sample
			sample.ChunkOffset.Resolve(offset)
			offset += sample.SampleSize.Total()
		}
	}
}

// WriteTo emits the file in two phases: the header region (ftyp, meta and
// moov) is marshaled into a single buffer sized by Len, then the mdat atom
// is streamed from the caller's payload buffers. ResolveOffsets must have
// run first; marshaling an unresolved offset panics.
func (f *File) WriteTo(w io.Writer) (n int64, err error) {
	b := make([]byte, f.HeaderLen())
	nn := f.Ftyp.Marshal(b)
	nn += f.Meta.Marshal(b[nn:])
	if f.Moov != nil {
		nn += f.Moov.Marshal(b[nn:])
	}
	nn, err = w.Write(b[:nn])
	n += int64(nn)
	if err != nil {
		return
	}

	var mn int64
	mn, err = f.Mdat.WriteTo(w)
	n += mn
	return
}
