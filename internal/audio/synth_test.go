package audio

import (
	"math/rand"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRate = beep.SampleRate(44100)

// drain streams s to exhaustion in small chunks.
func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 300)
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("streamer never ended")
	return nil
}

func TestBuild_StopsAtDuration(t *testing.T) {
	for _, s := range Library() {
		t.Run(s.Name, func(t *testing.T) {
			frames := drain(t, Build(s, testRate))
			assert.Len(t, frames, testRate.N(s.Duration))
		})
	}
}

func TestBuild_ExhaustedVoiceStaysExhausted(t *testing.T) {
	st := Build(Click(0), testRate)
	drain(t, st)
	n, ok := st.Stream(make([][2]float64, 10))
	assert.Zero(t, n)
	assert.False(t, ok)
}

func TestBuild_GainEnvelopeBoundsOutput(t *testing.T) {
	frames := drain(t, Build(Click(0), testRate))
	assert.LessOrEqual(t, peak(frames), 0.06+1e-9)
	assert.Greater(t, peak(frames), 0.01)

	tick, ok := Ignition(4)
	require.True(t, ok)
	frames = drain(t, Build(tick, testRate))
	assert.LessOrEqual(t, peak(frames), 0.1+1e-9)
}

func TestBuild_PanFavoursOneSide(t *testing.T) {
	frames := drain(t, Build(Click(0.8), testRate))
	var left, right [][2]float64
	for _, f := range frames {
		left = append(left, [2]float64{f[0], f[0]})
		right = append(right, [2]float64{f[1], f[1]})
	}
	assert.Less(t, peak(left), peak(right))

	centred := drain(t, Build(Click(0), testRate))
	for i, f := range centred {
		require.Equal(t, f[0], f[1], "frame %d", i)
	}
}

func TestBuild_SeededNoiseIsRepeatable(t *testing.T) {
	a := drain(t, build(Swoosh(0), testRate, rand.New(rand.NewSource(9))))
	b := drain(t, build(Swoosh(0), testRate, rand.New(rand.NewSource(9))))
	assert.Equal(t, a, b)
	assert.Greater(t, peak(a), 0.0)
}

func TestOscillator_TriangleStartsAtZero(t *testing.T) {
	o := oscillator{wave: Triangle}
	const rate = 400.0
	var vals []float64
	for i := 0; i < 4; i++ {
		vals = append(vals, o.next(100, rate))
	}
	assert.InDeltaSlice(t, []float64{0, 1, 0, -1}, vals, 1e-12)
}

func TestBiquad_PassesDCBlocksNyquist(t *testing.T) {
	var f biquad
	f.setLowpass(1000, float64(testRate))
	var dc, alt float64
	for i := 0; i < 5000; i++ {
		dc = f.process(0, 1)
		x := 1.0
		if i%2 == 1 {
			x = -1
		}
		alt = f.process(1, x)
	}
	assert.InDelta(t, 1, dc, 1e-6)
	assert.InDelta(t, 0, alt, 1e-3)
}

func TestIgnition_UnknownPhase(t *testing.T) {
	_, ok := Ignition(0)
	assert.False(t, ok)
	_, ok = Ignition(5)
	assert.False(t, ok)
}

func TestLibrary(t *testing.T) {
	var names []string
	for _, s := range Library() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"click", "swoosh", "ignition-1", "ignition-2", "ignition-3", "ignition-4"}, names)

	s, _ := Ignition(1)
	assert.Equal(t, 2*time.Second, s.Duration)
}

func TestBuild_PanIsClamped(t *testing.T) {
	frames := drain(t, Build(Swoosh(3), testRate))
	for i, f := range frames {
		require.Zero(t, f[0], "frame %d", i)
	}
}
