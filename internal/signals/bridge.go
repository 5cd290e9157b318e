// Package signals publishes the input-derived values the scene and the audio engine consume:
// pointer position, scroll speed, mood, accent, mute and the hero trigger counter.
package signals

import (
	"math"
	"slices"
	"sync"
	"time"

	"github.com/iburimskiy/racing-backdrop/internal/config"
	"github.com/iburimskiy/racing-backdrop/internal/theme"
)

type Point struct {
	X, Y float64
}

// Snapshot is an immutable copy of every signal at one instant.
type Snapshot struct {
	Pointer Point
	Speed   float64
	Mood    theme.Mood
	Accent  theme.Accent
	Muted   bool
	Trigger uint64
}

// Bridge has a single writer (the input poller) and any number of readers.
type Bridge struct {
	mu    sync.RWMutex
	state Snapshot

	scrollOffset float64
	lastScroll   time.Time
	scrolled     bool

	nextID       int
	speedSubs    map[int]func(float64)
	downSubs     map[int]func(Point)
	triggerSubs  map[int]func(uint64)
	settleWindow time.Duration
}

func NewBridge(mood theme.Mood, accent theme.Accent, muted bool) *Bridge {
	return &Bridge{
		state: Snapshot{
			Mood:   mood,
			Accent: accent,
			Muted:  muted,
		},
		speedSubs:    map[int]func(float64){},
		downSubs:     map[int]func(Point){},
		triggerSubs:  map[int]func(uint64){},
		settleWindow: config.SpeedSettle,
	}
}

func (b *Bridge) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

func (b *Bridge) PointerMove(x, y float64) {
	b.mu.Lock()
	b.state.Pointer = Point{X: x, Y: y}
	b.mu.Unlock()
}

func (b *Bridge) PointerDown(x, y float64) {
	b.mu.Lock()
	p := Point{X: x, Y: y}
	b.state.Pointer = p
	subs := collect(b.downSubs)
	b.mu.Unlock()

	for _, f := range subs {
		f(p)
	}
}

// Scroll records a new vertical scroll offset. Speed is the absolute first derivative of the
// offset in px/s, computed once per event.
func (b *Bridge) Scroll(offset float64, at time.Time) {
	b.mu.Lock()
	speed := 0.0
	if b.scrolled {
		dt := at.Sub(b.lastScroll).Seconds()
		if dt > 0 {
			speed = math.Abs(offset-b.scrollOffset) / dt
		} else {
			speed = b.state.Speed
		}
	}
	b.scrollOffset = offset
	b.lastScroll = at
	b.scrolled = true
	changed := speed != b.state.Speed
	b.state.Speed = speed
	subs := collect(b.speedSubs)
	b.mu.Unlock()

	if changed {
		for _, f := range subs {
			f(speed)
		}
	}
}

// Settle publishes a zero speed once no scroll event arrived within the settle window.
// It is the synthetic "scroll stopped" event.
func (b *Bridge) Settle(at time.Time) {
	b.mu.Lock()
	if !b.scrolled || b.state.Speed == 0 || at.Sub(b.lastScroll) < b.settleWindow {
		b.mu.Unlock()
		return
	}
	b.state.Speed = 0
	subs := collect(b.speedSubs)
	b.mu.Unlock()

	for _, f := range subs {
		f(0)
	}
}

// JumpTo moves the scroll origin without producing a speed sample, e.g. on navigation.
func (b *Bridge) JumpTo(offset float64) {
	b.mu.Lock()
	b.scrollOffset = offset
	b.mu.Unlock()
}

func (b *Bridge) SetMood(m theme.Mood) {
	b.mu.Lock()
	b.state.Mood = m
	b.mu.Unlock()
}

func (b *Bridge) SetAccent(a theme.Accent) {
	b.mu.Lock()
	b.state.Accent = a
	b.mu.Unlock()
}

func (b *Bridge) SetMuted(muted bool) {
	b.mu.Lock()
	b.state.Muted = muted
	b.mu.Unlock()
}

// TriggerHero increments the hero counter and returns the new value.
func (b *Bridge) TriggerHero() uint64 {
	b.mu.Lock()
	b.state.Trigger++
	n := b.state.Trigger
	subs := collect(b.triggerSubs)
	b.mu.Unlock()

	for _, f := range subs {
		f(n)
	}
	return n
}

// OnSpeed registers f for speed changes. The returned func unsubscribes.
func (b *Bridge) OnSpeed(f func(float64)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.add()
	b.speedSubs[id] = f
	return func() { b.remove(func() { delete(b.speedSubs, id) }) }
}

func (b *Bridge) OnPointerDown(f func(Point)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.add()
	b.downSubs[id] = f
	return func() { b.remove(func() { delete(b.downSubs, id) }) }
}

func (b *Bridge) OnTrigger(f func(uint64)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.add()
	b.triggerSubs[id] = f
	return func() { b.remove(func() { delete(b.triggerSubs, id) }) }
}

// Close drops every listener.
func (b *Bridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.speedSubs)
	clear(b.downSubs)
	clear(b.triggerSubs)
}

func (b *Bridge) add() int {
	b.nextID++
	return b.nextID
}

func (b *Bridge) remove(f func()) {
	b.mu.Lock()
	f()
	b.mu.Unlock()
}

// collect copies listeners in registration order so they can run outside the lock.
func collect[T any](subs map[int]T) []T {
	if len(subs) == 0 {
		return nil
	}
	ids := make([]int, 0, len(subs))
	for id := range subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]T, len(ids))
	for i, id := range ids {
		out[i] = subs[id]
	}
	return out
}
