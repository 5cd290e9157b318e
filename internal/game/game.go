// Package game hosts the backdrop in an ebiten window. It polls input into the signal bridge
// and the shell, steps the scene once per tick and draws the scene and its chrome.
package game

import (
	"errors"
	"image"
	"math/rand"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/iburimskiy/racing-backdrop/internal/audio"
	"github.com/iburimskiy/racing-backdrop/internal/clock"
	"github.com/iburimskiy/racing-backdrop/internal/loop"
	"github.com/iburimskiy/racing-backdrop/internal/scene"
	"github.com/iburimskiy/racing-backdrop/internal/signals"
	"github.com/iburimskiy/racing-backdrop/internal/ui"
)

var ErrMissingDependency = errors.New("game: missing dependency")

type Options struct {
	Bridge *signals.Bridge
	Shell  *ui.Shell
	Audio  *audio.Engine
	Clock  clock.Clock
	Logger *zap.Logger
	Rand   *rand.Rand
}

type Game struct {
	bridge *signals.Bridge
	shell  *ui.Shell
	audio  *audio.Engine
	clock  clock.Clock
	logger *zap.Logger
	rng    *rand.Rand

	loop    *loop.Loop
	scene   *scene.Scene
	frame   scene.Frame
	render  renderer
	hud     hud
	widgets ui.Widgets

	w, h     int
	started  bool
	showDbg  bool
	bootedAt time.Time

	unsubscribe []func()
	closeOnce   sync.Once
}

var pageKeys = [ui.PageCount]ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7,
}

var controlKeys = [ui.ControlCount]ebiten.Key{ebiten.KeyM, ebiten.KeyA, ebiten.KeyS}

func New(opts Options) (*Game, error) {
	if opts.Bridge == nil || opts.Shell == nil || opts.Audio == nil {
		return nil, ErrMissingDependency
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	fs, err := loadFaces()
	if err != nil {
		return nil, err
	}

	g := &Game{
		bridge: opts.Bridge,
		shell:  opts.Shell,
		audio:  opts.Audio,
		clock:  opts.Clock,
		logger: opts.Logger.Named("game"),
		rng:    opts.Rand,
	}
	g.render.mono = fs.small
	g.hud = hud{faces: fs, paint: &g.render.paint}
	g.loop = loop.New(g.resizeScene, g.step, g.logger)

	g.unsubscribe = append(g.unsubscribe,
		g.bridge.OnPointerDown(func(p signals.Point) {
			if g.scene != nil {
				g.scene.AddPulse(p.X, p.Y)
			}
		}),
		g.bridge.OnTrigger(func(uint64) {
			if g.scene != nil {
				g.scene.TriggerHero()
			}
		}),
		g.bridge.OnSpeed(g.audio.SetVelocity),
	)
	return g, nil
}

func (g *Game) resizeScene(w, h int) {
	if g.scene == nil {
		g.scene = scene.New(float64(w), float64(h), g.rng)
	} else {
		g.scene.Resize(float64(w), float64(h))
	}
	g.logger.Debug("scene sized", zap.Int("width", w), zap.Int("height", h))
}

func (g *Game) step(f loop.Frame) {
	g.frame = scene.NewFrame(g.bridge.Snapshot(), float64(g.w), float64(g.h), float64(f.Time)/float64(time.Millisecond))
	g.scene.Step(g.frame)
}

func (g *Game) Update() error {
	now := g.clock.Now()
	if !g.started {
		if err := g.loop.Start(image.Rect(0, 0, g.w, g.h)); err != nil {
			// Layout has not reported a size yet.
			return nil
		}
		g.started = true
		g.bootedAt = now
		g.shell.Boot()
	}

	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)
	g.bridge.PointerMove(x, y)
	g.shell.Hover(g.widgets.Hit(x, y))
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.bridge.PointerDown(x, y)
		g.shell.Click(g.widgets.Hit(x, y))
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.shell.Wheel(dy, now, float64(g.h))
	}

	for i, k := range controlKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.shell.Press(ui.Control(i))
		}
	}
	for i, k := range pageKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.shell.Navigate(ui.Page(i))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.showDbg = !g.showDbg
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.shell.Tick(now)
	g.loop.Tick(now)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.scene == nil {
		screen.Fill(backdrop)
		return
	}
	snap := g.bridge.Snapshot()
	g.render.draw(screen, g.scene, g.frame, snap)

	now := g.clock.Now()
	g.hud.draw(screen, hudState{
		widgets:  g.widgets,
		page:     g.shell.Page(),
		resolve:  g.shell.Resolving(),
		ready:    g.shell.Ready(),
		hover:    g.shell.Hovered(),
		progress: g.shell.BootProgress(now),
		snap:     snap,
		w:        float64(g.w),
		h:        float64(g.h),
	})
	if g.showDbg {
		debug(screen, g.scene, snap, g.audio.Level(), g.audio.Voices(), now.Sub(g.bootedAt))
	}
}

// Layout makes the surface track the window one to one.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		g.loop.Resize(g.w, g.h)
		g.widgets = ui.Arrange(float64(g.w), float64(g.h))
	}
	return outsideWidth, outsideHeight
}

// Close tears everything down. The audio engine and the bridge are closed here too, so the
// caller does not need to.
func (g *Game) Close() {
	g.closeOnce.Do(func() {
		g.loop.Stop()
		g.shell.Close()
		for _, f := range g.unsubscribe {
			f()
		}
		g.audio.Close()
		g.bridge.Close()
		g.logger.Debug("game closed")
	})
}
