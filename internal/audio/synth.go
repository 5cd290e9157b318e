package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
)

// oscillator produces one waveform at a frequency that may change every sample.
type oscillator struct {
	wave  Wave
	phase float64 // [0, 1)
	rng   *rand.Rand
}

func (o *oscillator) next(freq, rate float64) float64 {
	var v float64
	switch o.wave {
	case Sine:
		v = math.Sin(2 * math.Pi * o.phase)
	case Triangle:
		x := o.phase + 0.25
		x -= math.Floor(x)
		v = 1 - 4*math.Abs(x-0.5)
	case Noise:
		v = o.rng.Float64()*2 - 1
	}
	o.phase += freq / rate
	o.phase -= math.Floor(o.phase)
	return v
}

// biquad is a two-pole lowpass with independent state per stereo channel.
type biquad struct {
	cutoff             float64
	b0, b1, b2, a1, a2 float64
	x1, x2, y1, y2     [2]float64
}

const filterQ = math.Sqrt2 / 2

func (f *biquad) setLowpass(cutoff, rate float64) {
	cutoff = math.Max(10, math.Min(cutoff, rate*0.45))
	if cutoff == f.cutoff {
		return
	}
	f.cutoff = cutoff
	w0 := 2 * math.Pi * cutoff / rate
	cos, sin := math.Cos(w0), math.Sin(w0)
	alpha := sin / (2 * filterQ)
	a0 := 1 + alpha
	f.b0 = (1 - cos) / 2 / a0
	f.b1 = (1 - cos) / a0
	f.b2 = (1 - cos) / 2 / a0
	f.a1 = -2 * cos / a0
	f.a2 = (1 - alpha) / a0
}

func (f *biquad) process(ch int, x float64) float64 {
	y := f.b0*x + f.b1*f.x1[ch] + f.b2*f.x2[ch] - f.a1*f.y1[ch] - f.a2*f.y2[ch]
	f.x2[ch], f.x1[ch] = f.x1[ch], x
	f.y2[ch], f.y1[ch] = f.y1[ch], y
	return y
}

// voice renders a Sound. It is single use: once Duration has played it reports exhaustion.
type voice struct {
	rate  float64
	pos   int
	total int

	osc    oscillator
	freq   *Param
	gain   *Param
	cutoff *Param
	lp     *biquad
}

func newVoice(s Sound, rate beep.SampleRate, rng *rand.Rand) *voice {
	v := &voice{
		rate:  float64(rate),
		total: rate.N(s.Duration),
		osc:   oscillator{wave: s.Wave, rng: rng},
		freq:  s.param(s.Freq, 440),
		gain:  s.param(s.Gain, 0),
	}
	if s.Filter != nil {
		v.cutoff = s.param(s.Filter.Cutoff, 350)
		v.lp = &biquad{}
	}
	return v
}

func (v *voice) Stream(samples [][2]float64) (n int, ok bool) {
	if v.pos >= v.total {
		return 0, false
	}
	for n < len(samples) && v.pos < v.total {
		t := float64(v.pos) / v.rate
		x := v.osc.next(v.freq.ValueAt(t), v.rate)
		if v.lp != nil {
			v.lp.setLowpass(v.cutoff.ValueAt(t), v.rate)
			x = v.lp.process(0, x)
		}
		x *= v.gain.ValueAt(t)
		samples[n] = [2]float64{x, x}
		v.pos++
		n++
	}
	return n, true
}

func (v *voice) Err() error { return nil }

// Build turns a description into a self-terminating stereo streamer.
func Build(s Sound, rate beep.SampleRate) beep.Streamer {
	return build(s, rate, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// Pan is clamped to [-1, 1]; page pans for the outer nav items fall outside it.
func build(s Sound, rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	pan := math.Max(-1, math.Min(1, s.Pan))
	return &effects.Pan{Streamer: newVoice(s, rate, rng), Pan: pan}
}
