package audio

import (
	"sync"

	"github.com/faiface/beep"

	"github.com/iburimskiy/racing-backdrop/internal/config"
)

// drone is the always-on engine hum: a sub sine and a vibrato triangle body.
type drone struct {
	sub, body, lfo oscillator
	bodyFreq       *Param
	gain           *Param
}

func newDrone() *drone {
	return &drone{
		sub:      oscillator{wave: Sine},
		body:     oscillator{wave: Triangle},
		lfo:      oscillator{wave: Sine},
		bodyFreq: NewParam(config.BodyFreq),
		gain:     NewParam(config.EngineGain),
	}
}

// render writes the drone into samples. start is the clock position of samples[0].
func (d *drone) render(samples [][2]float64, start int64, rate float64) {
	for i := range samples {
		t := float64(start+int64(i)) / rate
		vibrato := d.lfo.next(config.LFOFreq, rate) * config.LFODepth
		x := d.sub.next(config.SubFreq, rate)*config.SubGain +
			d.body.next(d.bodyFreq.ValueAt(t)+vibrato, rate)*config.BodyGain
		x *= d.gain.ValueAt(t)
		samples[i] = [2]float64{x, x}
	}
}

// graph is the whole output: drone plus one-shot voices, through the master lowpass and gain.
// Every field is guarded by mu; the output device pulls Stream from its own goroutine.
type graph struct {
	mu   sync.Mutex
	rate float64
	pos  int64

	drone   *drone
	voices  beep.Mixer
	scratch [][2]float64
	filter  biquad
	master  *Param
}

func newGraph(rate beep.SampleRate) *graph {
	g := &graph{
		rate:   float64(rate),
		drone:  newDrone(),
		master: NewParam(config.MasterStart),
	}
	g.filter.setLowpass(config.MasterCutoff, g.rate)
	return g
}

// do runs f with the graph locked. now is the audio clock in seconds.
func (g *graph) do(f func(now float64)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	f(float64(g.pos) / g.rate)
}

func (g *graph) Stream(samples [][2]float64) (n int, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if cap(g.scratch) < len(samples) {
		g.scratch = make([][2]float64, len(samples))
	}
	oneShots := g.scratch[:len(samples)]
	g.voices.Stream(oneShots)
	g.drone.render(samples, g.pos, g.rate)

	for i := range samples {
		t := float64(g.pos+int64(i)) / g.rate
		m := g.master.ValueAt(t)
		l := g.filter.process(0, samples[i][0]+oneShots[i][0])
		r := g.filter.process(1, samples[i][1]+oneShots[i][1])
		samples[i] = [2]float64{l * m, r * m}
	}

	g.pos += int64(len(samples))
	now := float64(g.pos) / g.rate
	g.master.Trim(now)
	g.drone.bodyFreq.Trim(now)
	g.drone.gain.Trim(now)
	return len(samples), true
}

func (g *graph) Err() error { return nil }
