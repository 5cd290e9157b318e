package game

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/iburimskiy/racing-backdrop/internal/scene"
	"github.com/iburimskiy/racing-backdrop/internal/signals"
	"github.com/iburimskiy/racing-backdrop/internal/ui"
)

type faces struct {
	small *text.GoTextFace
	label *text.GoTextFace
	title *text.GoTextFace
}

func loadFaces() (faces, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return faces{}, fmt.Errorf("load mono font: %w", err)
	}
	return faces{
		small: &text.GoTextFace{Source: src, Size: 9},
		label: &text.GoTextFace{Source: src, Size: 12},
		title: &text.GoTextFace{Source: src, Size: 48},
	}, nil
}

var chipFill = color.RGBA{R: 20, G: 20, B: 22, A: 255}

// hud draws the page chrome on top of the scene.
type hud struct {
	faces faces
	paint *painter
}

type hudState struct {
	widgets  ui.Widgets
	page     ui.Page
	resolve  bool
	ready    bool
	hover    ui.Target
	progress float64 // ignition overlay, 0..1
	snap     signals.Snapshot
	w, h     float64
}

func (h *hud) draw(dst *ebiten.Image, st hudState) {
	accent := st.snap.Accent.Color
	h.pageTitle(dst, st)
	h.navBar(dst, st, accent)
	h.links(dst, st, accent)
	if st.ready {
		h.controls(dst, st, accent)
	}
	if st.progress < 1 {
		h.ignition(dst, st, accent)
	}
}

func (h *hud) label(dst *ebiten.Image, s string, face *text.GoTextFace, cx, cy float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(c)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(dst, s, face, op)
}

func (h *hud) pageTitle(dst *ebiten.Image, st hudState) {
	a := 0.85
	if st.resolve {
		a = 0.15
	}
	h.label(dst, st.page.String(), h.faces.title, st.w/2, st.h/2, fade(white, a))
}

func (h *hud) chip(dst *ebiten.Image, r ui.Rect, s string, hovered, active bool, accent color.RGBA) {
	fillRect(dst, r.X, r.Y, r.W, r.H, fade(chipFill, 0.6))
	c := fade(white, 0.55)
	if hovered {
		c = fade(white, 0.95)
	}
	if active {
		c = fade(accent, 1)
		fillRect(dst, r.X+8, r.Y+r.H-2, r.W-16, 2, c)
	}
	cx, cy := r.Center()
	h.label(dst, s, h.faces.label, cx, cy, c)
}

func (h *hud) navBar(dst *ebiten.Image, st hudState, accent color.RGBA) {
	ws := st.widgets
	h.chip(dst, ws.Logo, "IB // RACING", st.hover.Kind == ui.TargetLogo, false, accent)
	for i, r := range ws.Nav {
		hovered := st.hover == ui.Target{Kind: ui.TargetNav, Index: i}
		h.chip(dst, r, ui.Page(i).String(), hovered, ui.Page(i) == st.page, accent)
	}
	h.chip(dst, ws.Connect, "CONNECT", st.hover.Kind == ui.TargetConnect, true, accent)
}

func (h *hud) links(dst *ebiten.Image, st hudState, accent color.RGBA) {
	for i, r := range st.widgets.Links {
		hovered := st.hover == ui.Target{Kind: ui.TargetLink, Index: i}
		h.chip(dst, r, ui.Link(i).String(), hovered, false, accent)
	}
}

var controlGlyphs = [ui.ControlCount]string{"M", "A", "S"}

func (h *hud) controls(dst *ebiten.Image, st hudState, accent color.RGBA) {
	base := ui.ControlOpacity(st.snap.Speed)
	for i, c := range st.widgets.Controls {
		a := base
		if st.hover == (ui.Target{Kind: ui.TargetControl, Index: i}) {
			a = math.Min(1, a+0.3)
		}
		fillCircle(dst, c.X, c.Y, c.R, fade(chipFill, a))
		ring := fade(white, a*0.5)
		glyph := controlGlyphs[i]
		switch ui.Control(i) {
		case ui.ControlAccent:
			ring = fade(accent, a)
		case ui.ControlSound:
			if st.snap.Muted {
				glyph = "-"
			}
		}
		strokeCircle(dst, c.X, c.Y, c.R, 1.5, ring)
		h.label(dst, glyph, h.faces.label, c.X, c.Y, fade(white, a))
	}
}

// ignition covers the screen while the start-up sequence runs: the accent glow fades out and
// a gauge sweeps to full.
func (h *hud) ignition(dst *ebiten.Image, st hudState, accent color.RGBA) {
	p := st.progress
	fillRect(dst, 0, 0, st.w, st.h, fade(backdrop, 1-p*p))
	cx, cy := st.w/2, st.h/2
	fillCircle(dst, cx, cy, 160, fade(accent, 0.25*(1-p)))
	start := math.Pi * 0.8
	h.paint.arc(dst, cx, cy, 90, start, start+math.Pi*1.4*p, 3, fade(accent, 1-p/2))
	h.label(dst, "IGNITION", h.faces.label, cx, cy+120, fade(white, 1-p))
}

// debug is the F3 overlay.
func debug(dst *ebiten.Image, s *scene.Scene, snap signals.Snapshot, level float64, voices int, uptime time.Duration) {
	lines := []string{
		fmt.Sprintf("FPS %0.1f  TPS %0.1f", ebiten.ActualFPS(), ebiten.ActualTPS()),
		fmt.Sprintf("speed %0.1f  trigger %d  mood %s  accent %s", snap.Speed, snap.Trigger, snap.Mood.Name, snap.Accent.Name),
		fmt.Sprintf("stars %d clouds %d lanes %d curbs %d", len(s.Stars), len(s.Clouds), len(s.Lanes), len(s.Curbs)),
		fmt.Sprintf("ambient %d mid %d smoke %d pulses %d hero %t", len(s.Ambient), len(s.Mid), len(s.Smoke), len(s.Pulses), s.Hero.Active),
		fmt.Sprintf("voices %d  level %0.3f  muted %t", voices, level, snap.Muted),
		"uptime " + formatDuration(uptime),
	}
	for i, l := range lines {
		ebitenutil.DebugPrintAt(dst, l, 12, 70+i*16)
	}
	fillRect(dst, 12, float64(70+len(lines)*16+4), 200*clamp01(level*8), 4, levelColor(level))
}
