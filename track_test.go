package avif

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goavif/avif/avifio"
)

func frames(durations []uint64, sync []bool, sizes []uint32) []FrameInfo {
	r := make([]FrameInfo, len(durations))
	for i := range r {
		r[i] = FrameInfo{Duration: durations[i], Sync: sync[i], Size: sizes[i]}
	}
	return r
}

func TestBuildDurations(t *testing.T) {
	t.Parallel()

	t.Run("merges_equal_runs", func(t *testing.T) {
		t.Parallel()
		f := frames(
			[]uint64{1, 1, 1, 2, 2},
			[]bool{true, true, true, true, true},
			[]uint32{1, 1, 1, 1, 1})
		require.Equal(t, []avifio.TimeToSampleEntry{
			{Count: 3, Duration: 1},
			{Count: 2, Duration: 2},
		}, buildDurations(f))
	})

	t.Run("single_frame", func(t *testing.T) {
		t.Parallel()
		f := frames([]uint64{5}, []bool{true}, []uint32{1})
		require.Equal(t, []avifio.TimeToSampleEntry{{Count: 1, Duration: 5}}, buildDurations(f))
	})

	t.Run("alternating_durations_do_not_merge", func(t *testing.T) {
		t.Parallel()
		f := frames(
			[]uint64{1, 2, 1},
			[]bool{true, true, true},
			[]uint32{1, 1, 1})
		require.Equal(t, []avifio.TimeToSampleEntry{
			{Count: 1, Duration: 1},
			{Count: 1, Duration: 2},
			{Count: 1, Duration: 1},
		}, buildDurations(f))
	})

	t.Run("no_frames", func(t *testing.T) {
		t.Parallel()
		require.Empty(t, buildDurations(nil))
	})
}

func TestBuildSyncSamples(t *testing.T) {
	t.Parallel()

	t.Run("all_sync_omits_atom", func(t *testing.T) {
		t.Parallel()
		f := frames([]uint64{1, 1}, []bool{true, true}, []uint32{1, 1})
		require.Nil(t, buildSyncSamples(f))
	})

	t.Run("indices_are_one_based", func(t *testing.T) {
		t.Parallel()
		f := frames([]uint64{1, 1, 1}, []bool{true, false, true}, []uint32{1, 1, 1})
		ss := buildSyncSamples(f)
		require.NotNil(t, ss)
		require.Equal(t, []uint32{1, 3}, ss.Entries)
	})

	t.Run("no_sync_frames_keeps_empty_atom", func(t *testing.T) {
		t.Parallel()
		f := frames([]uint64{1, 1}, []bool{false, false}, []uint32{1, 1})
		ss := buildSyncSamples(f)
		require.NotNil(t, ss)
		require.Empty(t, ss.Entries)
	})
}

func TestNewTrack(t *testing.T) {
	t.Parallel()

	img := &Image{Width: 10, Height: 20, Depth: 8, Timescale: 30}
	f := frames([]uint64{1, 1, 2}, []bool{true, true, true}, []uint32{4, 4, 2})

	t.Run("color_track", func(t *testing.T) {
		t.Parallel()
		trk := newTrack(1, img, avifio.NewColorConfig(img.Depth), f, false)
		require.Equal(t, uint32(1), trk.Header.TrackID)
		require.Equal(t, avifio.DurationInfinite, trk.Header.Duration)
		require.Equal(t, uint32(10<<16), trk.Header.Width)
		require.Nil(t, trk.Ref)
		require.Equal(t, avifio.HandlerPict, trk.Media.Handler.HandlerType)
		require.Equal(t, uint64(4), trk.Media.Header.Duration)
		require.Equal(t, uint32(30), trk.Media.Header.TimeScale)

		sample := trk.Media.Info.Sample
		require.Equal(t, uint32(3), sample.SampleToChunk.SamplesPerChunk)
		require.Equal(t, []uint32{4, 4, 2}, sample.SampleSize.Entries)
		require.Equal(t, uint32(10), sample.SampleSize.Total())
		require.Nil(t, sample.SyncSample)
		require.Nil(t, sample.SampleDesc.AV01.Auxi)
		require.Panics(t, func() { sample.ChunkOffset.Offset() })
	})

	t.Run("alpha_track", func(t *testing.T) {
		t.Parallel()
		trk := newTrack(2, img, avifio.NewAlphaConfig(img.Depth), f, true)
		require.Equal(t, avifio.HandlerAuxv, trk.Media.Handler.HandlerType)
		require.NotNil(t, trk.Ref)
		require.Equal(t, avifio.AUXL, trk.Ref.RefType)
		require.Equal(t, uint32(1), trk.Ref.ToID)
		require.Equal(t, avifio.AlphaURN, trk.Media.Info.Sample.SampleDesc.AV01.Auxi.URN)
	})
}
