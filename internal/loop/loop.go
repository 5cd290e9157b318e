// Package loop paces per-frame updates against a drawing surface. The host (ebiten) supplies
// the ticks; the loop supplies frame numbering, timing and resize handling.
package loop

import (
	"errors"
	"image"
	"time"

	"go.uber.org/zap"
)

// ErrNoSurface is returned by Start when there is nothing to draw on.
var ErrNoSurface = errors.New("loop: no drawing surface")

// Surface is anything with pixel bounds. *ebiten.Image and image.Rectangle both qualify.
type Surface interface {
	Bounds() image.Rectangle
}

type Frame struct {
	Index uint64
	Time  time.Duration // since the first tick after Start
	Delta time.Duration
}

type Loop struct {
	init   func(w, h int)
	update func(Frame)
	logger *zap.Logger

	running bool
	ticked  bool
	start   time.Time
	last    time.Time
	index   uint64

	w, h        int
	pendingInit bool
}

// New returns a stopped loop. init runs once per surface size; update runs once per tick.
func New(init func(w, h int), update func(Frame), logger *zap.Logger) *Loop {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loop{init: init, update: update, logger: logger}
}

// Start arms the loop against surface. A nil or empty surface leaves the loop stopped.
func (l *Loop) Start(surface Surface) error {
	if surface == nil {
		return ErrNoSurface
	}
	b := surface.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return ErrNoSurface
	}
	l.running = true
	l.ticked = false
	l.index = 0
	l.Resize(b.Dx(), b.Dy())
	l.logger.Debug("loop started", zap.Int("width", b.Dx()), zap.Int("height", b.Dy()))
	return nil
}

// Stop cancels the loop. Later ticks are ignored until the next Start.
func (l *Loop) Stop() {
	if !l.running {
		return
	}
	l.running = false
	l.logger.Debug("loop stopped", zap.Uint64("frames", l.index))
}

func (l *Loop) Running() bool { return l.running }

// Resize records a new surface size. The init callback runs before the next update, and only
// when the size actually changed.
func (l *Loop) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if w == l.w && h == l.h {
		return
	}
	l.pendingInit = true
	l.w, l.h = w, h
}

func (l *Loop) Size() (int, int) { return l.w, l.h }

// Tick runs one frame. It reports whether update was called.
func (l *Loop) Tick(now time.Time) bool {
	if !l.running {
		return false
	}
	if l.pendingInit {
		l.pendingInit = false
		if l.init != nil {
			l.init(l.w, l.h)
		}
	}
	if !l.ticked {
		l.ticked = true
		l.start = now
		l.last = now
	}
	f := Frame{Index: l.index, Time: now.Sub(l.start), Delta: now.Sub(l.last)}
	l.last = now
	l.index++
	if l.update != nil {
		l.update(f)
	}
	return true
}
