package audio

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// levelTap passes a stream through unchanged and keeps the most recent frames in a ring so the
// HUD can show how loud the output is.
type levelTap struct {
	source beep.Streamer

	mu   sync.RWMutex
	ring [][2]float64
	head int // next write position
	full bool
}

func newLevelTap(src beep.Streamer, size int) *levelTap {
	return &levelTap{source: src, ring: make([][2]float64, size)}
}

func (t *levelTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.source.Stream(samples)
	if n == 0 {
		return n, ok
	}
	t.mu.Lock()
	for _, s := range samples[:n] {
		t.ring[t.head] = s
		t.head++
		if t.head == len(t.ring) {
			t.head = 0
			t.full = true
		}
	}
	t.mu.Unlock()
	return n, ok
}

func (t *levelTap) Err() error { return t.source.Err() }

// recent returns up to n of the latest frames, oldest first.
func (t *levelTap) recent(n int) [][2]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	stored := t.head
	if t.full {
		stored = len(t.ring)
	}
	n = min(n, stored)
	out := make([][2]float64, n)
	start := t.head - n
	if start >= 0 {
		copy(out, t.ring[start:t.head])
		return out
	}
	wrapped := copy(out, t.ring[len(t.ring)+start:])
	copy(out[wrapped:], t.ring[:t.head])
	return out
}

// rms is the root mean square over both channels of the latest n frames.
func (t *levelTap) rms(n int) float64 {
	frames := t.recent(n)
	if len(frames) == 0 {
		return 0
	}
	sum := 0.0
	for _, f := range frames {
		sum += f[0]*f[0] + f[1]*f[1]
	}
	return math.Sqrt(sum / float64(2*len(frames)))
}
