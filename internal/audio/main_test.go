package audio

import (
	"errors"
	"testing"

	"github.com/faiface/beep"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeSink captures the played stream so tests can pull samples on demand.
type fakeSink struct {
	initErr error
	rate    beep.SampleRate
	buffer  int
	stream  beep.Streamer
	closed  int
}

func (s *fakeSink) Init(rate beep.SampleRate, bufferSize int) error {
	if s.initErr != nil {
		return s.initErr
	}
	s.rate, s.buffer = rate, bufferSize
	return nil
}

func (s *fakeSink) Play(st beep.Streamer) { s.stream = st }

func (s *fakeSink) Close() { s.closed++ }

// pull streams d seconds and returns the frames.
func (s *fakeSink) pull(seconds float64) [][2]float64 {
	n := int(seconds * float64(s.rate))
	out := make([][2]float64, n)
	const chunk = 512
	for off := 0; off < n; off += chunk {
		end := min(off+chunk, n)
		s.stream.Stream(out[off:end])
	}
	return out
}

var errNoDevice = errors.New("no device")

func peak(frames [][2]float64) float64 {
	p := 0.0
	for _, f := range frames {
		p = max(p, abs(f[0]), abs(f[1]))
	}
	return p
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
