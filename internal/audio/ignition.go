package audio

import (
	"sync"
	"time"

	"github.com/iburimskiy/racing-backdrop/internal/clock"
	"github.com/iburimskiy/racing-backdrop/internal/config"
)

// PhaseOffsets are the start times of ignition phases 1 to 4.
var PhaseOffsets = [4]time.Duration{0, config.IgnitionPhase2, config.IgnitionPhase3, config.IgnitionPhase4}

// Sequence is one run of the ignition timeline.
type Sequence struct {
	mu        sync.Mutex
	timers    []clock.Timer
	cancelled bool
	done      bool
}

// StartIgnition schedules play for each phase and onComplete once the timeline ends.
// Callbacks run on the clock's goroutine.
func StartIgnition(c clock.Clock, play func(phase int), onComplete func()) *Sequence {
	s := &Sequence{}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, off := range PhaseOffsets {
		phase := i + 1
		s.timers = append(s.timers, c.AfterFunc(off, func() {
			if s.live() && play != nil {
				play(phase)
			}
		}))
	}
	s.timers = append(s.timers, c.AfterFunc(config.IgnitionComplete, func() {
		if !s.finish() {
			return
		}
		if onComplete != nil {
			onComplete()
		}
	}))
	return s
}

func (s *Sequence) live() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.cancelled
}

func (s *Sequence) finish() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelled {
		return false
	}
	s.done = true
	return true
}

// Cancel stops every pending phase. A completed sequence is unaffected.
func (s *Sequence) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelled || s.done {
		return
	}
	s.cancelled = true
	for _, t := range s.timers {
		t.Stop()
	}
}

// Done reports whether the sequence ran to completion.
func (s *Sequence) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}
