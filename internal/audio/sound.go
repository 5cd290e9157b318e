package audio

import (
	"fmt"
	"time"
)

type Wave int

const (
	Sine Wave = iota
	Triangle
	Noise
)

func (w Wave) String() string {
	switch w {
	case Sine:
		return "sine"
	case Triangle:
		return "triangle"
	case Noise:
		return "noise"
	default:
		return fmt.Sprintf("Wave(%d)", int(w))
	}
}

// Point schedules one automation step relative to the start of a sound.
type Point struct {
	At    time.Duration
	Value float64
	Curve Curve
}

// FilterSpec is a lowpass stage with an automated cutoff in Hz.
type FilterSpec struct {
	Cutoff []Point
}

// Sound describes a one-shot voice: one oscillator, an optional lowpass, a gain envelope and a
// fixed stereo position. A voice built from it stops by itself after Duration.
type Sound struct {
	Name     string
	Wave     Wave
	Duration time.Duration
	Freq     []Point
	Gain     []Point
	Filter   *FilterSpec
	Pan      float64
}

const ms = time.Millisecond

func Click(pan float64) Sound {
	return Sound{
		Name:     "click",
		Wave:     Sine,
		Duration: 50 * ms,
		Freq:     []Point{{0, 800, Set}, {40 * ms, 100, Exponential}},
		Gain:     []Point{{0, 0.06, Set}, {40 * ms, 0.001, Exponential}},
		Pan:      pan,
	}
}

func Swoosh(pan float64) Sound {
	return Sound{
		Name:     "swoosh",
		Wave:     Noise,
		Duration: 600 * ms,
		Filter: &FilterSpec{Cutoff: []Point{
			{0, 80, Set},
			{200 * ms, 1200, Exponential},
			{600 * ms, 80, Exponential},
		}},
		Gain: []Point{{0, 0, Set}, {100 * ms, 0.12, Linear}, {600 * ms, 0.001, Exponential}},
		Pan:  pan,
	}
}

// Ignition returns the voice for one phase of the start-up sequence: 1 spool, 2 hover chirp,
// 3 rev, 4 tick. Any other phase reports false.
func Ignition(phase int) (Sound, bool) {
	switch phase {
	case 1:
		return Sound{
			Name:     "ignition-1",
			Wave:     Sine,
			Duration: 2000 * ms,
			Freq:     []Point{{0, 110, Set}, {1500 * ms, 220, Linear}},
			Gain:     []Point{{0, 0, Set}, {800 * ms, 0.12, Linear}, {2000 * ms, 0, Linear}},
		}, true
	case 2:
		return Sound{
			Name:     "ignition-2",
			Wave:     Triangle,
			Duration: 600 * ms,
			Freq:     []Point{{0, 150, Set}},
			Gain:     []Point{{0, 0, Set}, {100 * ms, 0.08, Linear}, {600 * ms, 0.001, Exponential}},
		}, true
	case 3:
		return Sound{
			Name:     "ignition-3",
			Wave:     Sine,
			Duration: 800 * ms,
			Freq:     []Point{{0, 100, Set}, {800 * ms, 400, Exponential}},
			Gain:     []Point{{0, 0.18, Set}, {800 * ms, 0.001, Exponential}},
		}, true
	case 4:
		return Sound{
			Name:     "ignition-4",
			Wave:     Sine,
			Duration: 100 * ms,
			Freq:     []Point{{0, 1500, Set}},
			Gain:     []Point{{0, 0.1, Set}, {100 * ms, 0.001, Exponential}},
		}, true
	}
	return Sound{}, false
}

// Library lists every one-shot in export order.
func Library() []Sound {
	out := []Sound{Click(0), Swoosh(0)}
	for phase := 1; phase <= 4; phase++ {
		s, _ := Ignition(phase)
		out = append(out, s)
	}
	return out
}

func (s Sound) param(points []Point, fallback float64) *Param {
	p := NewParam(fallback)
	for _, pt := range points {
		at := pt.At.Seconds()
		switch pt.Curve {
		case Linear:
			p.LinearRampTo(pt.Value, at)
		case Exponential:
			p.ExponentialRampTo(pt.Value, at)
		default:
			p.SetValueAt(pt.Value, at)
		}
	}
	return p
}
