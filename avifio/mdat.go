package avifio

import (
	"io"

	"github.com/goavif/avif/utils/bits/pio"
)

// MediaData is the mdat atom. Chunks are borrowed from the caller and are
// only referenced, never copied, until the file is written.
type MediaData struct {
	Chunks [][]byte
}

func (*MediaData) Tag() Tag {
	return MDAT
}

func (m *MediaData) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[0:], uint32(m.Len()))
	pio.PutU32BE(b[4:], uint32(MDAT))
	n += HeaderSize
	for _, ch := range m.Chunks {
		n += copy(b[n:], ch)
	}
	return
}

func (m *MediaData) Len() (n int) {
	n += HeaderSize
	for _, ch := range m.Chunks {
		n += len(ch)
	}
	return
}

func (*MediaData) Children() []Atom {
	return nil
}

// WriteTo streams the atom: header first, then each chunk straight from the
// caller's buffer.
func (m *MediaData) WriteTo(w io.Writer) (n int64, err error) {
	var hdr [HeaderSize]byte
	pio.PutU32BE(hdr[0:], uint32(m.Len()))
	pio.PutU32BE(hdr[4:], uint32(MDAT))
	nn, err := w.Write(hdr[:])
	n += int64(nn)
	if err != nil {
		return
	}
	for _, ch := range m.Chunks {
		nn, err = w.Write(ch)
		n += int64(nn)
		if err != nil {
			return
		}
	}
	return
}
