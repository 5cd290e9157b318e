// Package audio synthesises the backdrop's sound: a continuous engine drone that follows scroll
// velocity, and short one-shot voices for clicks, page swooshes and the ignition sequence.
package audio

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"go.uber.org/zap"

	"github.com/iburimskiy/racing-backdrop/internal/config"
)

// ErrNoAudio means the output device could not be opened. The engine keeps working silently.
var ErrNoAudio = errors.New("audio: no output device")

// Sink is where the finished stream goes. The program wires the system speaker; tests use a
// fake so no device is needed.
type Sink interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Close()
}

type Engine struct {
	cfg    config.AudioSettings
	sink   Sink
	logger *zap.Logger

	rate  beep.SampleRate
	graph *graph
	tap   *levelTap
	rng   *rand.Rand // guarded by graph.mu

	running atomic.Bool
	silent  atomic.Bool
	muted   atomic.Bool

	startOnce sync.Once
	closeOnce sync.Once
	startErr  error
}

func New(cfg config.AudioSettings, sink Sink, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = config.SampleRate
	}
	if cfg.BufferMS <= 0 {
		cfg.BufferMS = config.BufferMS
	}
	rate := beep.SampleRate(cfg.SampleRate)
	g := newGraph(rate)
	e := &Engine{
		cfg:    cfg,
		sink:   sink,
		logger: logger.Named("audio"),
		rate:   rate,
		graph:  g,
		tap:    newLevelTap(g, config.TapRingSize),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	e.muted.Store(cfg.Muted)
	return e
}

// Start opens the sink and begins playback. When audio is disabled or the device cannot be
// opened the engine runs in silent mode: every call becomes a no-op. The device is never
// retried.
func (e *Engine) Start() error {
	e.startOnce.Do(func() {
		if !e.cfg.Enabled || e.sink == nil {
			e.silent.Store(true)
			e.logger.Info("audio disabled")
			return
		}
		buffer := e.rate.N(time.Duration(e.cfg.BufferMS) * time.Millisecond)
		if err := e.sink.Init(e.rate, buffer); err != nil {
			e.silent.Store(true)
			e.logger.Warn("audio unavailable, continuing silently", zap.Error(err))
			e.startErr = fmt.Errorf("%w: %v", ErrNoAudio, err)
			return
		}
		e.running.Store(true)
		e.applyMute(e.muted.Load())
		e.sink.Play(e.tap)
		e.logger.Debug("audio started",
			zap.Int("sample_rate", int(e.rate)),
			zap.Int("buffer", buffer),
			zap.Bool("muted", e.muted.Load()))
	})
	return e.startErr
}

// Close stops output and releases the device. Safe to call more than once.
func (e *Engine) Close() {
	e.closeOnce.Do(func() {
		if !e.running.Swap(false) {
			return
		}
		e.sink.Close()
		e.logger.Debug("audio closed")
	})
}

func (e *Engine) active() bool { return e.running.Load() && !e.silent.Load() }

func (e *Engine) Silent() bool { return e.silent.Load() }

func (e *Engine) Muted() bool { return e.muted.Load() }

// SetMuted glides the master gain to zero, or back to its nominal level.
func (e *Engine) SetMuted(muted bool) {
	e.muted.Store(muted)
	if !e.active() {
		return
	}
	e.applyMute(muted)
}

func (e *Engine) applyMute(muted bool) {
	level := config.MasterNominal
	if muted {
		level = 0
	}
	e.graph.do(func(now float64) {
		e.graph.master.SetTargetAt(level, now, config.MuteTau)
	})
}

// SetVelocity retunes the drone to a scroll velocity in px/s.
func (e *Engine) SetVelocity(v float64) {
	if !e.active() || e.muted.Load() {
		return
	}
	e.graph.do(func(now float64) {
		d := e.graph.drone
		d.bodyFreq.SetTargetAt(config.BodyFreq+v*config.RPMPerVel, now, config.VelocityTau)
		d.gain.SetTargetAt(config.EngineGain+v*config.GainPerVel, now, config.VelocityTau)
	})
}

func (e *Engine) PlayClick(pan float64) { e.play(Click(pan), nil) }

func (e *Engine) PlaySwoosh(pan float64) { e.play(Swoosh(pan), nil) }

// PlayIgnition plays one phase of the ignition sequence. Every phase ducks the drone; the first
// also lets it swell back up underneath.
func (e *Engine) PlayIgnition(phase int) {
	s, ok := Ignition(phase)
	if !ok {
		e.logger.Warn("unknown ignition phase", zap.Int("phase", phase))
		return
	}
	e.play(s, func(now float64) {
		gain := e.graph.drone.gain
		gain.SetTargetAt(config.IgnitionDuck, now, config.DuckTau)
		if phase == 1 {
			gain.SetTargetAt(config.IgnitionSwell, now, config.SwellTau)
		}
	})
}

func (e *Engine) play(s Sound, before func(now float64)) {
	if !e.active() || e.muted.Load() {
		return
	}
	e.graph.do(func(now float64) {
		if before != nil {
			before(now)
		}
		e.graph.voices.Add(build(s, e.rate, e.rng))
	})
}

// Voices returns the number of one-shots still sounding.
func (e *Engine) Voices() int {
	n := 0
	e.graph.do(func(float64) { n = e.graph.voices.Len() })
	return n
}

// Level is the RMS of the most recent output, 0 when silent.
func (e *Engine) Level() float64 {
	if !e.active() {
		return 0
	}
	return e.tap.rms(e.rate.N(config.LevelWindow))
}
