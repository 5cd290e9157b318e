// Package ui holds the interactive state around the backdrop: page navigation, the stealth
// theme controls, link chips, the start-up ignition and the virtual scroll position. It has
// no drawing code; the game package renders what it exposes.
package ui

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/iburimskiy/racing-backdrop/internal/audio"
	"github.com/iburimskiy/racing-backdrop/internal/clock"
	"github.com/iburimskiy/racing-backdrop/internal/config"
	"github.com/iburimskiy/racing-backdrop/internal/prefs"
	"github.com/iburimskiy/racing-backdrop/internal/signals"
	"github.com/iburimskiy/racing-backdrop/internal/theme"
)

type Page int

const (
	Home Page = iota
	About
	Skills
	Projects
	Experience
	Education
	Contact

	PageCount = 7
)

var pageNames = [PageCount]string{"HOME", "ABOUT", "SKILLS", "PROJECTS", "EXPERIENCE", "EDUCATION", "CONTACT"}

func (p Page) String() string {
	if p < 0 || int(p) >= PageCount {
		return fmt.Sprintf("Page(%d)", int(p))
	}
	return pageNames[p]
}

type Control int

const (
	ControlMood Control = iota
	ControlAccent
	ControlSound

	ControlCount = 3
)

type Link int

const (
	LinkGitHub Link = iota
	LinkLinkedIn

	LinkCount = 2
)

var linkNames = [LinkCount]string{"GITHUB", "LINKEDIN"}

func (l Link) String() string {
	if l < 0 || int(l) >= LinkCount {
		return fmt.Sprintf("Link(%d)", int(l))
	}
	return linkNames[l]
}

// Sounds is the part of the audio engine the shell drives.
type Sounds interface {
	PlayClick(pan float64)
	PlaySwoosh(pan float64)
	PlayIgnition(phase int)
	SetMuted(muted bool)
}

type quiet struct{}

func (quiet) PlayClick(float64)  {}
func (quiet) PlaySwoosh(float64) {}
func (quiet) PlayIgnition(int)   {}
func (quiet) SetMuted(bool)      {}

// ErrNoBridge is returned by New when Options carries no signal bridge.
var ErrNoBridge = errors.New("ui: no signal bridge")

type Options struct {
	Clock  clock.Clock
	Bridge *signals.Bridge
	Sounds Sounds
	Prefs  prefs.Store
	Logger *zap.Logger
}

// Shell is driven from the update goroutine. Timer callbacks never touch its state directly;
// they queue work that the next Tick runs.
type Shell struct {
	clock  clock.Clock
	bridge *signals.Bridge
	sounds Sounds
	prefs  prefs.Store
	logger *zap.Logger

	page      Page
	resolving bool
	ready     bool
	bootedAt  time.Time
	ignition  *audio.Sequence
	hover     Target
	scroll    float64
	closed    bool

	mu        sync.Mutex
	queue     []func()
	timers    map[uint64]clock.Timer // armed and not yet fired
	nextTimer uint64
}

func New(opts Options) (*Shell, error) {
	if opts.Bridge == nil {
		return nil, ErrNoBridge
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Prefs == nil {
		opts.Prefs = prefs.NewMemStore()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Sounds == nil {
		opts.Sounds = quiet{}
	}
	return &Shell{
		clock:  opts.Clock,
		bridge: opts.Bridge,
		sounds: opts.Sounds,
		prefs:  opts.Prefs,
		logger: opts.Logger.Named("ui"),
		timers: map[uint64]clock.Timer{},
	}, nil
}

// Boot runs the ignition sequence. Controls and navigation unlock when it completes.
func (s *Shell) Boot() {
	if s.ignition != nil || s.closed {
		return
	}
	s.bootedAt = s.clock.Now()
	s.ignition = audio.StartIgnition(s.clock, s.sounds.PlayIgnition, func() {
		s.post(func() {
			s.ready = true
			s.logger.Debug("ignition complete")
		})
	})
}

func (s *Shell) Ready() bool { return s.ready }

// BootProgress is how far through the ignition overlay we are, in [0, 1].
func (s *Shell) BootProgress(now time.Time) float64 {
	if s.ready {
		return 1
	}
	if s.ignition == nil {
		return 0
	}
	return clamp01(float64(now.Sub(s.bootedAt)) / float64(config.IgnitionComplete))
}

func (s *Shell) Page() Page      { return s.page }
func (s *Shell) Resolving() bool { return s.resolving }
func (s *Shell) Hovered() Target { return s.hover }
func (s *Shell) Scroll() float64 { return s.scroll }

// Press handles a stealth control: a click, then the control's action.
func (s *Shell) Press(c Control) {
	if !s.ready {
		return
	}
	s.sounds.PlayClick(config.ClickPan)
	snap := s.bridge.Snapshot()
	switch c {
	case ControlMood:
		next := theme.NextMood(snap.Mood)
		s.bridge.SetMood(next)
		s.remember(prefs.KeyMood, next.Name)
		s.logger.Debug("mood changed", zap.String("mood", next.Name))
	case ControlAccent:
		next := theme.NextAccent(snap.Accent)
		s.bridge.SetAccent(next)
		s.remember(prefs.KeyAccent, next.Key)
		s.logger.Debug("accent changed", zap.String("accent", next.Key))
	case ControlSound:
		muted := !snap.Muted
		s.bridge.SetMuted(muted)
		s.sounds.SetMuted(muted)
		s.logger.Debug("mute toggled", zap.Bool("muted", muted))
	}
}

func (s *Shell) remember(key, value string) {
	if err := s.prefs.Set(key, value); err != nil {
		s.logger.Warn("saving preference failed", zap.String("key", key), zap.Error(err))
	}
}

// Navigate switches page through a short resolving phase. It reports whether navigation
// started; the current page and a navigation already in flight are ignored.
func (s *Shell) Navigate(p Page) bool {
	if !s.ready || p == s.page || s.resolving || p < 0 || int(p) >= PageCount {
		return false
	}
	s.sounds.PlaySwoosh((float64(p) - 1.5) / 1.5)
	s.resolving = true
	s.after(config.NavDelay, func() {
		s.page = p
		s.bridge.TriggerHero()
		s.scrollTop()
	})
	s.after(config.NavDelay+config.ResolveDelay, func() { s.resolving = false })
	s.logger.Debug("navigate", zap.Stringer("page", p))
	return true
}

// Connect is the header call-to-action: a click, then the contact page.
func (s *Shell) Connect() {
	if !s.ready {
		return
	}
	s.sounds.PlayClick(0)
	s.Navigate(Contact)
}

// Click dispatches a pointer press on a widget.
func (s *Shell) Click(t Target) {
	switch t.Kind {
	case TargetLogo:
		s.Navigate(Home)
	case TargetNav:
		s.Navigate(Page(t.Index))
	case TargetConnect:
		s.Connect()
	case TargetControl:
		s.Press(Control(t.Index))
	case TargetLink:
		s.logger.Info("link selected", zap.Stringer("link", Link(t.Index)))
	}
}

// Hover tracks the widget under the pointer and plays the hover cue when a chip is entered.
func (s *Shell) Hover(t Target) {
	if t == s.hover {
		return
	}
	s.hover = t
	if !s.ready {
		return
	}
	switch t.Kind {
	case TargetLink:
		if !s.bridge.Snapshot().Muted {
			s.sounds.PlayIgnition(2)
		}
	case TargetConnect:
		s.sounds.PlayIgnition(4)
	}
}

// Wheel scrolls the virtual page by dy notches. viewH bounds the scroll range.
func (s *Shell) Wheel(dy float64, now time.Time, viewH float64) {
	limit := math.Max(0, viewH*(config.PageScreens-1))
	s.scroll = math.Max(0, math.Min(limit, s.scroll-dy*config.WheelStep))
	s.bridge.Scroll(s.scroll, now)
}

func (s *Shell) scrollTop() {
	s.scroll = 0
	s.bridge.JumpTo(0)
}

// ControlOpacity fades the stealth controls while the page is moving fast.
func ControlOpacity(speed float64) float64 {
	return 0.6 - 0.4*clamp01(speed/500)
}

// Tick runs queued timer work, then lets the scroll speed settle.
func (s *Shell) Tick(now time.Time) {
	s.mu.Lock()
	work := s.queue
	s.queue = nil
	s.mu.Unlock()
	for _, f := range work {
		f()
	}
	s.bridge.Settle(now)
}

func (s *Shell) after(d time.Duration, f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.nextTimer++
	id := s.nextTimer
	s.timers[id] = s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.timers, id)
		if !s.closed {
			s.queue = append(s.queue, f)
		}
	})
}

func (s *Shell) post(f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.queue = append(s.queue, f)
}

// Close cancels the ignition and every pending navigation timer.
func (s *Shell) Close() {
	if s.ignition != nil {
		s.ignition.Cancel()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for _, t := range s.timers {
		t.Stop()
	}
	clear(s.timers)
	s.queue = nil
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
