package avif

import "github.com/goavif/avif/avifio"

// FrameInfo describes one already-encoded frame of an image sequence.
type FrameInfo struct {
	Duration uint64 // display duration in timescale units, must be positive
	Sync     bool   // frame is a random-access point
	Size     uint32 // encoded size in bytes
}

// buildDurations run-length encodes frame durations into stts entries:
// consecutive frames with equal durations merge into one (count, duration)
// pair, in input order.
func buildDurations(frames []FrameInfo) (entries []avifio.TimeToSampleEntry) {
	var count uint32
	for i := range frames {
		count++
		if i+1 < len(frames) && frames[i+1].Duration == frames[i].Duration {
			continue
		}
		entries = append(entries, avifio.TimeToSampleEntry{
			Count:    count,
			Duration: uint32(frames[i].Duration),
		})
		count = 0
	}
	return
}

// buildSyncSamples collects the 1-based indices of sync frames. A nil result
// means every frame is a sync frame and the stss atom is omitted entirely,
// which readers take as "all frames are random-access points".
func buildSyncSamples(frames []FrameInfo) *avifio.SyncSample {
	var entries []uint32
	for i := range frames {
		if frames[i].Sync {
			entries = append(entries, uint32(i+1))
		}
	}
	if len(entries) == len(frames) {
		return nil
	}
	return &avifio.SyncSample{Entries: entries}
}

// buildSizes is the flat stsz table, one entry per frame.
func buildSizes(frames []FrameInfo) []uint32 {
	sizes := make([]uint32, len(frames))
	for i := range frames {
		sizes[i] = frames[i].Size
	}
	return sizes
}

func totalDuration(frames []FrameInfo) (sum uint64) {
	for i := range frames {
		sum += frames[i].Duration
	}
	return
}

// newTrack builds one trak atom from the caller's frame descriptors. The
// chunk offset stays unresolved until the whole header region is sized.
func newTrack(trackID uint32, img *Image, config *avifio.AV1CodecConfig, frames []FrameInfo, aux bool) *avifio.Track {
	entry := &avifio.VisualSampleEntry{
		Width:  uint16(img.Width),
		Height: uint16(img.Height),
		Config: config,
		Ccst:   &avifio.ConstraintInfo{},
	}
	handler := avifio.HandlerPict
	var ref *avifio.TrackRef
	if aux {
		entry.Auxi = &avifio.AuxTrackType{URN: avifio.AlphaURN}
		handler = avifio.HandlerAuxv
		ref = &avifio.TrackRef{RefType: avifio.AUXL, ToID: 1}
	}

	return &avifio.Track{
		Header: &avifio.TrackHeader{
			TrackID:  trackID,
			Duration: avifio.DurationInfinite,
			Width:    img.Width << 16,
			Height:   img.Height << 16,
		},
		Ref: ref,
		Media: &avifio.Media{
			Header: &avifio.MediaHeader{
				TimeScale: img.Timescale,
				Duration:  totalDuration(frames),
			},
			Handler: &avifio.HandlerRefer{HandlerType: handler, Name: avifio.HandlerName},
			Info: &avifio.MediaInfo{
				Video: &avifio.VideoMediaInfo{},
				Data:  &avifio.DataInfo{Refer: &avifio.DataRefer{Url: &avifio.DataReferUrl{}}},
				Sample: &avifio.SampleTable{
					SampleDesc:    &avifio.SampleDesc{AV01: entry},
					TimeToSample:  &avifio.TimeToSample{Entries: buildDurations(frames)},
					SampleToChunk: &avifio.SampleToChunk{SamplesPerChunk: uint32(len(frames))},
					SampleSize:    &avifio.SampleSize{Entries: buildSizes(frames)},
					ChunkOffset:   &avifio.ChunkOffset{},
					SyncSample:    buildSyncSamples(frames),
				},
			},
		},
	}
}
