package audio

import (
	"math"
	"os"
	"testing"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func counting() beep.Streamer {
	next := 0.0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			next++
			samples[i] = [2]float64{next, -next}
		}
		return len(samples), true
	})
}

func TestLevelTap_RecentIsChronological(t *testing.T) {
	tap := newLevelTap(counting(), 8)
	assert.Empty(t, tap.recent(4))

	buf := make([][2]float64, 5)
	tap.Stream(buf)
	assert.Equal(t, [][2]float64{{4, -4}, {5, -5}}, tap.recent(2))
	assert.Len(t, tap.recent(100), 5)

	tap.Stream(buf) // 10 written, ring of 8 wraps
	got := tap.recent(8)
	require.Len(t, got, 8)
	for i, f := range got {
		assert.Equal(t, float64(i+3), f[0])
	}
}

func TestLevelTap_RMS(t *testing.T) {
	const amp = 0.25
	tap := newLevelTap(beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{amp, -amp}
		}
		return len(samples), true
	}), 64)
	assert.Zero(t, tap.rms(32))
	tap.Stream(make([][2]float64, 100))
	assert.InDelta(t, amp, tap.rms(32), 1e-12)
}

func TestExportWAV(t *testing.T) {
	dir := t.TempDir()
	const rate = beep.SampleRate(22050)
	paths, err := ExportWAV(dir, rate, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.Len(t, paths, len(Library()))

	for i, s := range Library() {
		f, err := os.Open(paths[i])
		require.NoError(t, err)
		st, format, err := wav.Decode(f)
		require.NoError(t, err)
		assert.Equal(t, rate, format.SampleRate)
		assert.Equal(t, 2, format.NumChannels)
		assert.Equal(t, rate.N(s.Duration), st.Len(), s.Name)

		buf := make([][2]float64, st.Len())
		n, _ := st.Stream(buf)
		loud := 0.0
		for _, fr := range buf[:n] {
			loud = math.Max(loud, math.Abs(fr[1]))
		}
		assert.Greater(t, loud, 0.0, s.Name)
		require.NoError(t, st.Close())
	}
}
