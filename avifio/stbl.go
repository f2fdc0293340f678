package avifio

import "github.com/goavif/avif/utils/bits/pio"

// SampleTable is the stbl atom. SyncSample is optional: a nil stss means
// every sample is a random-access point, and the atom then contributes zero
// bytes to both Len and Marshal.
type SampleTable struct {
	SampleDesc    *SampleDesc
	TimeToSample  *TimeToSample
	SampleToChunk *SampleToChunk
	SampleSize    *SampleSize
	ChunkOffset   *ChunkOffset
	SyncSample    *SyncSample
}

func (*SampleTable) Tag() Tag {
	return STBL
}

func (s *SampleTable) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(STBL))
	n += s.marshal(b[8:]) + HeaderSize
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (s *SampleTable) marshal(b []byte) (n int) {
	if s.SampleDesc != nil {
		n += s.SampleDesc.Marshal(b[n:])
	}
	if s.TimeToSample != nil {
		n += s.TimeToSample.Marshal(b[n:])
	}
	if s.SampleToChunk != nil {
		n += s.SampleToChunk.Marshal(b[n:])
	}
	if s.SampleSize != nil {
		n += s.SampleSize.Marshal(b[n:])
	}
	if s.ChunkOffset != nil {
		n += s.ChunkOffset.Marshal(b[n:])
	}
	if s.SyncSample != nil {
		n += s.SyncSample.Marshal(b[n:])
	}
	return
}

func (s *SampleTable) Len() (n int) {
	n += HeaderSize
	if s.SampleDesc != nil {
		n += s.SampleDesc.Len()
	}
	if s.TimeToSample != nil {
		n += s.TimeToSample.Len()
	}
	if s.SampleToChunk != nil {
		n += s.SampleToChunk.Len()
	}
	if s.SampleSize != nil {
		n += s.SampleSize.Len()
	}
	if s.ChunkOffset != nil {
		n += s.ChunkOffset.Len()
	}
	if s.SyncSample != nil {
		n += s.SyncSample.Len()
	}
	return
}

func (s *SampleTable) Children() (r []Atom) {
	if s.SampleDesc != nil {
		r = append(r, s.SampleDesc)
	}
	if s.TimeToSample != nil {
		r = append(r, s.TimeToSample)
	}
	if s.SampleToChunk != nil {
		r = append(r, s.SampleToChunk)
	}
	if s.SampleSize != nil {
		r = append(r, s.SampleSize)
	}
	if s.ChunkOffset != nil {
		r = append(r, s.ChunkOffset)
	}
	if s.SyncSample != nil {
		r = append(r, s.SyncSample)
	}
	return
}

// SampleDesc is the stsd atom with a single av01 visual sample entry.
type SampleDesc struct {
	AV01 *VisualSampleEntry
}

func (*SampleDesc) Tag() Tag {
	return STSD
}

func (s *SampleDesc) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(STSD))
	n += s.marshal(b[8:]) + HeaderSize
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (s *SampleDesc) marshal(b []byte) (n int) {
	n += putVerFlags(b[n:], 0, 0)
	pio.PutU32BE(b[n:], 1) // entry_count
	n += 4
	if s.AV01 != nil {
		n += s.AV01.Marshal(b[n:])
	}
	return
}

func (s *SampleDesc) Len() (n int) {
	n += FullHeaderSize + 4
	if s.AV01 != nil {
		n += s.AV01.Len()
	}
	return
}

func (s *SampleDesc) Children() (r []Atom) {
	if s.AV01 != nil {
		r = append(r, s.AV01)
	}
	return
}

// compressorName is the fixed 32-byte compressorname field: a length byte
// followed by "AOM" and zero padding.
var compressorName = [32]byte{3, 'A', 'O', 'M'}

// VisualSampleEntry is the av01 sample entry of a track: the 78-byte visual
// sample entry body followed by the codec config, the coding constraints
// and, on the alpha track, the auxiliary track type.
type VisualSampleEntry struct {
	Width  uint16
	Height uint16
	Config *AV1CodecConfig
	Ccst   *ConstraintInfo
	Auxi   *AuxTrackType
}

func (*VisualSampleEntry) Tag() Tag {
	return AV01
}

func (e *VisualSampleEntry) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(AV01))
	n += e.marshal(b[8:]) + HeaderSize
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (e *VisualSampleEntry) marshal(b []byte) (n int) {
	for i := 0; i < 6; i++ { // reserved
		pio.PutU8(b[n:], 0)
		n++
	}
	pio.PutU16BE(b[n:], 1) // data_reference_index
	n += 2
	pio.PutU16BE(b[n:], 0) // pre_defined
	n += 2
	pio.PutU16BE(b[n:], 0) // reserved
	n += 2
	for i := 0; i < 3; i++ { // pre_defined
		pio.PutU32BE(b[n:], 0)
		n += 4
	}
	pio.PutU16BE(b[n:], e.Width)
	n += 2
	pio.PutU16BE(b[n:], e.Height)
	n += 2
	pio.PutU32BE(b[n:], 0x00480000) // horiz_resolution
	n += 4
	pio.PutU32BE(b[n:], 0x00480000) // vert_resolution
	n += 4
	pio.PutU32BE(b[n:], 0) // reserved
	n += 4
	pio.PutU16BE(b[n:], 1) // frame_count
	n += 2
	n += copy(b[n:], compressorName[:])
	pio.PutU16BE(b[n:], 0x0018) // depth
	n += 2
	pio.PutU16BE(b[n:], 0xffff) // pre_defined
	n += 2
	if e.Config != nil {
		n += e.Config.Marshal(b[n:])
	}
	if e.Ccst != nil {
		n += e.Ccst.Marshal(b[n:])
	}
	if e.Auxi != nil {
		n += e.Auxi.Marshal(b[n:])
	}
	return
}

func (e *VisualSampleEntry) Len() (n int) {
	n += HeaderSize + 78
	if e.Config != nil {
		n += e.Config.Len()
	}
	if e.Ccst != nil {
		n += e.Ccst.Len()
	}
	if e.Auxi != nil {
		n += e.Auxi.Len()
	}
	return
}

func (e *VisualSampleEntry) Children() (r []Atom) {
	if e.Config != nil {
		r = append(r, e.Config)
	}
	if e.Ccst != nil {
		r = append(r, e.Ccst)
	}
	if e.Auxi != nil {
		r = append(r, e.Auxi)
	}
	return
}

// ConstraintInfo is the ccst atom: intra prediction used, up to 15 reference
// frames per picture, nothing else constrained.
type ConstraintInfo struct{}

func (*ConstraintInfo) Tag() Tag {
	return CCST
}

func (c *ConstraintInfo) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(CCST))
	n += HeaderSize
	n += putVerFlags(b[n:], 0, 0)
	pio.PutU32BE(b[n:], 1<<30|15<<26)
	n += 4
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (*ConstraintInfo) Len() int {
	return FullHeaderSize + 4
}

func (*ConstraintInfo) Children() []Atom {
	return nil
}

// AuxTrackType is the auxi atom marking a track as an auxiliary plane.
type AuxTrackType struct {
	URN string
}

func (*AuxTrackType) Tag() Tag {
	return AUXI
}

func (a *AuxTrackType) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(AUXI))
	n += HeaderSize
	n += putVerFlags(b[n:], 0, 0)
	n += copy(b[n:], a.URN)
	pio.PutU8(b[n:], 0)
	n++
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (a *AuxTrackType) Len() int {
	return FullHeaderSize + len(a.URN) + 1
}

func (*AuxTrackType) Children() []Atom {
	return nil
}

type TimeToSampleEntry struct {
	Count    uint32
	Duration uint32
}

// TimeToSample is the stts atom: run-length encoded sample durations.
type TimeToSample struct {
	Entries []TimeToSampleEntry
}

func (*TimeToSample) Tag() Tag {
	return STTS
}

func (s *TimeToSample) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(STTS))
	n += s.marshal(b[8:]) + HeaderSize
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (s *TimeToSample) marshal(b []byte) (n int) {
	n += putVerFlags(b[n:], 0, 0)
	pio.PutU32BE(b[n:], uint32(len(s.Entries)))
	n += 4
	for _, e := range s.Entries {
		pio.PutU32BE(b[n:], e.Count)
		n += 4
		pio.PutU32BE(b[n:], e.Duration)
		n += 4
	}
	return
}

func (s *TimeToSample) Len() int {
	return FullHeaderSize + 4 + 8*len(s.Entries)
}

func (*TimeToSample) Children() []Atom {
	return nil
}

// SampleToChunk is the stsc atom. Every sample of a track lives in a single
// chunk, so one entry covers the whole stream.
type SampleToChunk struct {
	SamplesPerChunk uint32
}

func (*SampleToChunk) Tag() Tag {
	return STSC
}

func (s *SampleToChunk) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(STSC))
	n += s.marshal(b[8:]) + HeaderSize
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (s *SampleToChunk) marshal(b []byte) (n int) {
	n += putVerFlags(b[n:], 0, 0)
	pio.PutU32BE(b[n:], 1) // entry_count
	n += 4
	pio.PutU32BE(b[n:], 1) // first_chunk
	n += 4
	pio.PutU32BE(b[n:], s.SamplesPerChunk)
	n += 4
	pio.PutU32BE(b[n:], 1) // sample_description_index
	n += 4
	return
}

func (*SampleToChunk) Len() int {
	return FullHeaderSize + 16
}

func (*SampleToChunk) Children() []Atom {
	return nil
}

// SampleSize is the stsz atom with one size entry per frame. The fixed-size
// optimization (sample_size != 0) is never used.
type SampleSize struct {
	Entries []uint32
}

func (*SampleSize) Tag() Tag {
	return STSZ
}

func (s *SampleSize) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(STSZ))
	n += s.marshal(b[8:]) + HeaderSize
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (s *SampleSize) marshal(b []byte) (n int) {
	n += putVerFlags(b[n:], 0, 0)
	pio.PutU32BE(b[n:], 0) // sample_size
	n += 4
	pio.PutU32BE(b[n:], uint32(len(s.Entries)))
	n += 4
	for _, e := range s.Entries {
		pio.PutU32BE(b[n:], e)
		n += 4
	}
	return
}

func (s *SampleSize) Len() int {
	return FullHeaderSize + 8 + 4*len(s.Entries)
}

// Total is the byte count of all samples, used to accumulate the chunk
// offset of the next track.
func (s *SampleSize) Total() (sum uint32) {
	for _, e := range s.Entries {
		sum += e
	}
	return
}

func (*SampleSize) Children() []Atom {
	return nil
}

// ChunkOffset is the stco atom with a single entry: the absolute file offset
// of the track's sample data. Like an item extent it is late-bound; the
// offset is assigned by offset resolution once the header region is sized,
// and marshaling before that is an assembly bug that panics.
type ChunkOffset struct {
	offset   uint32
	resolved bool
}

func (*ChunkOffset) Tag() Tag {
	return STCO
}

// Resolve assigns the absolute chunk offset.
func (c *ChunkOffset) Resolve(offset uint32) {
	c.offset = offset
	c.resolved = true
}

// Offset returns the absolute chunk offset and panics if it has not been
// resolved yet.
func (c *ChunkOffset) Offset() uint32 {
	if !c.resolved {
		panic("avifio: chunk offset has not been resolved to an absolute position")
	}
	return c.offset
}

func (c *ChunkOffset) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(STCO))
	n += c.marshal(b[8:]) + HeaderSize
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (c *ChunkOffset) marshal(b []byte) (n int) {
	n += putVerFlags(b[n:], 0, 0)
	pio.PutU32BE(b[n:], 1) // entry_count
	n += 4
	pio.PutU32BE(b[n:], c.Offset())
	n += 4
	return
}

func (*ChunkOffset) Len() int {
	return FullHeaderSize + 8
}

func (*ChunkOffset) Children() []Atom {
	return nil
}

// SyncSample is the stss atom listing the 1-based indices of sync frames.
// It is only present when at least one frame is not a sync frame.
type SyncSample struct {
	Entries []uint32
}

func (*SyncSample) Tag() Tag {
	return STSS
}

func (s *SyncSample) Marshal(b []byte) (n int) {
	pio.PutU32BE(b[4:], uint32(STSS))
	n += s.marshal(b[8:]) + HeaderSize
	pio.PutU32BE(b[0:], uint32(n))
	return
}

func (s *SyncSample) marshal(b []byte) (n int) {
	n += putVerFlags(b[n:], 0, 0)
	pio.PutU32BE(b[n:], uint32(len(s.Entries)))
	n += 4
	for _, e := range s.Entries {
		pio.PutU32BE(b[n:], e)
		n += 4
	}
	return
}

func (s *SyncSample) Len() int {
	return FullHeaderSize + 4 + 4*len(s.Entries)
}

func (*SyncSample) Children() []Atom {
	return nil
}
