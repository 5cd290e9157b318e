package ui

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/iburimskiy/racing-backdrop/internal/clock"
	"github.com/iburimskiy/racing-backdrop/internal/config"
	"github.com/iburimskiy/racing-backdrop/internal/prefs"
	"github.com/iburimskiy/racing-backdrop/internal/signals"
	"github.com/iburimskiy/racing-backdrop/internal/theme"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type soundLog struct {
	calls []string
	muted bool
}

func (s *soundLog) PlayClick(pan float64)  { s.calls = append(s.calls, fmt.Sprintf("click %.1f", pan)) }
func (s *soundLog) PlaySwoosh(pan float64) { s.calls = append(s.calls, fmt.Sprintf("swoosh %.2f", pan)) }
func (s *soundLog) PlayIgnition(phase int) { s.calls = append(s.calls, fmt.Sprintf("ignition %d", phase)) }
func (s *soundLog) SetMuted(m bool)        { s.muted = m; s.calls = append(s.calls, fmt.Sprintf("muted %v", m)) }

type fixture struct {
	shell  *Shell
	clock  *clock.Fake
	bridge *signals.Bridge
	sounds *soundLog
	prefs  *prefs.MemStore
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		clock:  clock.NewFake(epoch),
		bridge: signals.NewBridge(theme.Aura, theme.Blue, false),
		sounds: &soundLog{},
		prefs:  prefs.NewMemStore(),
	}
	shell, err := New(Options{
		Clock:  f.clock,
		Bridge: f.bridge,
		Sounds: f.sounds,
		Prefs:  f.prefs,
		Logger: zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	f.shell = shell
	t.Cleanup(f.shell.Close)
	return f
}

// advance moves the clock and runs whatever the timers queued, like a frame would.
func (f *fixture) advance(d time.Duration) {
	f.clock.Advance(d)
	f.shell.Tick(f.clock.Now())
}

func (f *fixture) booted() *fixture {
	f.shell.Boot()
	f.advance(config.IgnitionComplete)
	f.sounds.calls = nil
	return f
}

func TestBoot_PlaysIgnitionThenUnlocks(t *testing.T) {
	f := newFixture(t)
	f.shell.Boot()
	f.shell.Boot()

	f.advance(0)
	assert.Equal(t, []string{"ignition 1"}, f.sounds.calls)
	assert.False(t, f.shell.Ready())

	f.shell.Press(ControlMood)
	assert.Equal(t, "AURA", f.bridge.Snapshot().Mood.Name, "controls are locked during ignition")

	f.advance(1400 * time.Millisecond)
	assert.InDelta(t, 0.5, f.shell.BootProgress(f.clock.Now()), 1e-9)

	f.advance(1400 * time.Millisecond)
	assert.True(t, f.shell.Ready())
	assert.Equal(t, []string{"ignition 1", "ignition 2", "ignition 3", "ignition 4"}, f.sounds.calls)
	assert.Equal(t, 1.0, f.shell.BootProgress(f.clock.Now()))
}

func TestPress_CyclesAndPersists(t *testing.T) {
	f := newFixture(t).booted()

	f.shell.Press(ControlMood)
	f.shell.Press(ControlAccent)
	snap := f.bridge.Snapshot()
	assert.Equal(t, "PULSE", snap.Mood.Name)
	assert.Equal(t, "PURPLE", snap.Accent.Key)

	mood, _ := f.prefs.Get(prefs.KeyMood)
	accent, _ := f.prefs.Get(prefs.KeyAccent)
	assert.Equal(t, "PULSE", mood)
	assert.Equal(t, "PURPLE", accent)

	f.shell.Press(ControlSound)
	assert.True(t, f.bridge.Snapshot().Muted)
	assert.True(t, f.sounds.muted)
	f.shell.Press(ControlSound)
	assert.False(t, f.bridge.Snapshot().Muted)

	assert.Equal(t, []string{
		"click 0.8", "click 0.8",
		"click 0.8", "muted true",
		"click 0.8", "muted false",
	}, f.sounds.calls)
}

type failingStore struct{ prefs.MemStore }

func (*failingStore) Set(string, string) error { return errors.New("read-only") }

func TestPress_PreferenceFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.shell.prefs = &failingStore{}
	f.booted()
	f.shell.Press(ControlMood)
	assert.Equal(t, "PULSE", f.bridge.Snapshot().Mood.Name)
}

func TestNavigate_ResolvingTimeline(t *testing.T) {
	f := newFixture(t).booted()
	var triggers []uint64
	f.bridge.OnTrigger(func(n uint64) { triggers = append(triggers, n) })

	f.shell.Wheel(-3, f.clock.Now(), 720)
	require.Equal(t, 360.0, f.shell.Scroll())

	require.True(t, f.shell.Navigate(Projects))
	assert.Equal(t, []string{"swoosh 1.00"}, f.sounds.calls)
	assert.True(t, f.shell.Resolving())
	assert.False(t, f.shell.Navigate(Skills), "ignored while resolving")

	f.advance(149 * time.Millisecond)
	assert.Equal(t, Home, f.shell.Page())

	f.advance(time.Millisecond)
	assert.Equal(t, Projects, f.shell.Page())
	assert.Equal(t, []uint64{1}, triggers)
	assert.Zero(t, f.shell.Scroll(), "navigation scrolls to the top")
	assert.True(t, f.shell.Resolving())

	f.advance(399 * time.Millisecond)
	assert.True(t, f.shell.Resolving())
	f.advance(time.Millisecond)
	assert.False(t, f.shell.Resolving())

	assert.False(t, f.shell.Navigate(Projects), "already on the page")
	assert.Len(t, f.sounds.calls, 1)
}

func TestNavigate_LateTickDoesNotStretchResolving(t *testing.T) {
	f := newFixture(t).booted()
	require.True(t, f.shell.Navigate(About))

	// One coarse frame well after both deadlines runs the switch and the unlock together.
	f.advance(time.Second)
	assert.Equal(t, About, f.shell.Page())
	assert.False(t, f.shell.Resolving())
	assert.True(t, f.shell.Navigate(Skills))
}

func TestNavigate_ResolvingEndsOnScheduleAfterSwitchTick(t *testing.T) {
	f := newFixture(t).booted()
	require.True(t, f.shell.Navigate(About))

	// The switch fires at 150 ms but the frame that runs it arrives at 500 ms.
	f.clock.Advance(500 * time.Millisecond)
	f.shell.Tick(f.clock.Now())
	assert.Equal(t, About, f.shell.Page())
	assert.True(t, f.shell.Resolving())

	f.advance(50 * time.Millisecond)
	assert.False(t, f.shell.Resolving(), "unlocks 550 ms after Navigate")
}

func TestAfter_ForgetsFiredTimers(t *testing.T) {
	f := newFixture(t).booted()
	for _, p := range []Page{About, Skills, Home} {
		require.True(t, f.shell.Navigate(p))
		f.advance(time.Second)
	}
	f.shell.mu.Lock()
	defer f.shell.mu.Unlock()
	assert.Empty(t, f.shell.timers)
}

func TestNew_RequiresBridge(t *testing.T) {
	s, err := New(Options{Clock: clock.NewFake(epoch)})
	assert.ErrorIs(t, err, ErrNoBridge)
	assert.Nil(t, s)
}

func TestNavigate_PanFollowsPageIndex(t *testing.T) {
	f := newFixture(t).booted()
	f.shell.Navigate(About)
	f.advance(time.Second)
	f.shell.Navigate(Home)
	f.advance(time.Second)
	f.shell.Navigate(Contact)
	assert.Equal(t, []string{"swoosh -0.33", "swoosh -1.00", "swoosh 3.00"}, f.sounds.calls)
}

func TestConnectAndClick(t *testing.T) {
	f := newFixture(t).booted()
	ws := Arrange(1280, 720)

	cx, cy := ws.Connect.Center()
	f.shell.Click(ws.Hit(cx, cy))
	assert.Equal(t, []string{"click 0.0", "swoosh 3.00"}, f.sounds.calls)
	f.advance(time.Second)
	assert.Equal(t, Contact, f.shell.Page())

	lx, ly := ws.Logo.Center()
	f.shell.Click(ws.Hit(lx, ly))
	f.advance(time.Second)
	assert.Equal(t, Home, f.shell.Page())

	nx, ny := ws.Nav[Skills].Center()
	f.shell.Click(ws.Hit(nx, ny))
	f.advance(time.Second)
	assert.Equal(t, Skills, f.shell.Page())
}

func TestHover_ChipsPlayOnEnter(t *testing.T) {
	f := newFixture(t).booted()
	link := Target{Kind: TargetLink, Index: int(LinkGitHub)}

	f.shell.Hover(link)
	f.shell.Hover(link)
	f.shell.Hover(Target{})
	f.shell.Hover(Target{Kind: TargetConnect})
	assert.Equal(t, []string{"ignition 2", "ignition 4"}, f.sounds.calls)

	f.bridge.SetMuted(true)
	f.shell.Hover(link)
	assert.Len(t, f.sounds.calls, 2, "link hover is silent while muted")
	assert.Equal(t, link, f.shell.Hovered())
}

func TestWheel_ClampsAndFeedsSpeed(t *testing.T) {
	f := newFixture(t)
	now := f.clock.Now()
	f.shell.Wheel(1, now, 720)
	assert.Zero(t, f.shell.Scroll())

	f.shell.Wheel(-1, now.Add(50*time.Millisecond), 720)
	assert.InDelta(t, 2400.0, f.bridge.Snapshot().Speed, 1e-9)

	f.shell.Wheel(-100, now.Add(100*time.Millisecond), 720)
	assert.Equal(t, 1440.0, f.shell.Scroll())

	f.clock.Advance(time.Second)
	f.shell.Tick(f.clock.Now())
	assert.Zero(t, f.bridge.Snapshot().Speed, "speed settles after the wheel stops")
}

func TestClose_CancelsPendingWork(t *testing.T) {
	f := newFixture(t).booted()
	f.shell.Navigate(About)
	f.shell.Close()
	f.advance(time.Second)
	assert.Equal(t, Home, f.shell.Page())
	assert.Zero(t, f.clock.Pending())
}

func TestControlOpacity(t *testing.T) {
	assert.InDelta(t, 0.6, ControlOpacity(0), 1e-12)
	assert.InDelta(t, 0.4, ControlOpacity(250), 1e-12)
	assert.InDelta(t, 0.2, ControlOpacity(5000), 1e-12)
}

func TestRestoreTheme(t *testing.T) {
	store := prefs.NewMemStore()
	fallback := config.ThemeSettings{Mood: "VOID", Accent: "RED"}

	mood, accent := RestoreTheme(store, fallback)
	assert.Equal(t, "VOID", mood.Name)
	assert.Equal(t, "RED", accent.Key)

	require.NoError(t, store.Set(prefs.KeyMood, "PULSE"))
	require.NoError(t, store.Set(prefs.KeyAccent, "nonsense"))
	mood, accent = RestoreTheme(store, fallback)
	assert.Equal(t, "PULSE", mood.Name)
	assert.Equal(t, "RED", accent.Key)

	mood, accent = RestoreTheme(nil, config.ThemeSettings{})
	assert.Equal(t, theme.DefaultMood().Name, mood.Name)
	assert.Equal(t, theme.DefaultAccent().Key, accent.Key)
}

func TestArrange_HitTargets(t *testing.T) {
	ws := Arrange(1280, 720)
	for i, c := range ws.Controls {
		assert.Equal(t, Target{Kind: TargetControl, Index: i}, ws.Hit(c.X, c.Y))
	}
	for i, r := range ws.Links {
		x, y := r.Center()
		assert.Equal(t, Target{Kind: TargetLink, Index: i}, ws.Hit(x, y))
	}
	assert.Equal(t, Target{}, ws.Hit(640, 360))
	assert.Equal(t, "EDUCATION", Education.String())
	assert.Equal(t, "LINKEDIN", LinkLinkedIn.String())
}
