package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/iburimskiy/racing-backdrop/internal/config"
	"github.com/iburimskiy/racing-backdrop/internal/scene"
	"github.com/iburimskiy/racing-backdrop/internal/signals"
	"github.com/iburimskiy/racing-backdrop/internal/theme"
)

var (
	backdrop  = color.RGBA{R: 2, G: 2, B: 2, A: 255}
	smokeGrey = color.RGBA{R: 180, G: 180, B: 180, A: 255}

	ambientBody = []scene.Vec{{X: 0, Y: 0}, {X: 120, Y: 0}, {X: 120, Y: 18}, {X: 0, Y: 18}}
	ambientTail = []scene.Vec{{X: -8, Y: 3}, {X: 2, Y: 3}, {X: 2, Y: 15}, {X: -8, Y: 15}}
	midBody     = []scene.Vec{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 110, Y: 15}, {X: -10, Y: 15}}
	heroBody    = []scene.Vec{{X: 0, Y: 0}, {X: 180, Y: 0}, {X: 200, Y: 30}, {X: -20, Y: 30}}
)

const (
	pathSegments = 64
	flareRings   = 14
)

// renderer draws a stepped scene, one pass per layer in scene.DrawOrder.
type renderer struct {
	paint    painter
	vignette *ebiten.Image
	vigSize  image.Point
	mono     *text.GoTextFace
}

func (r *renderer) draw(dst *ebiten.Image, s *scene.Scene, f scene.Frame, snap signals.Snapshot) {
	dst.Fill(backdrop)
	accent := snap.Accent.Color
	k := f.Mood.Intensity

	for _, l := range scene.DrawOrder() {
		switch l {
		case scene.LayerStars:
			r.stars(dst, s, f)
		case scene.LayerClouds:
			r.clouds(dst, s, f, k)
		case scene.LayerCurbs:
			r.curbs(dst, s, f, k)
		case scene.LayerLanes:
			r.lanes(dst, s, f, k, accent)
		case scene.LayerAmbient:
			r.ambient(dst, s, f, k, accent)
		case scene.LayerMid:
			r.mid(dst, s, f, k)
		case scene.LayerHero:
			r.hero(dst, s, f, k, accent)
		case scene.LayerSmoke:
			r.smoke(dst, s, f, k)
		case scene.LayerPulses:
			r.pulses(dst, s, k, accent)
		case scene.LayerReadouts:
			r.readouts(dst, s, f, k, accent)
		}
	}
	r.drawVignette(dst)
}

func (r *renderer) stars(dst *ebiten.Image, s *scene.Scene, f scene.Frame) {
	for _, st := range s.Stars {
		p := s.Project(st, f)
		if p.Alpha <= 0 {
			continue
		}
		fillRect(dst, p.X, p.Y, math.Max(st.Size, 0.5), p.Length, fade(white, p.Alpha))
	}
}

func (r *renderer) clouds(dst *ebiten.Image, s *scene.Scene, f scene.Frame, k float64) {
	c := fade(white, config.CloudAlpha*k)
	for _, cl := range s.Clouds {
		r.paint.ellipse(dst, cl.X+f.MouseX, cl.Y+f.MouseY, cl.W, cl.H, c)
	}
}

func (r *renderer) curbs(dst *ebiten.Image, s *scene.Scene, f scene.Frame, k float64) {
	a := config.CurbAlpha * k
	for _, c := range s.Curbs {
		pts := c.Path(s, f).Sample(pathSegments)
		for _, run := range scene.Dashes(pts, config.CurbDash, config.CurbDash, c.FlowOffset) {
			r.paint.polyline(dst, run, config.CurbWidth, fade(white, a))
		}
		for _, run := range scene.Dashes(pts, config.CurbDash, config.CurbDash, c.FlowOffset+config.CurbDash) {
			r.paint.polyline(dst, run, config.CurbWidth, fade(theme.CurbRed, a))
		}
	}
}

func (r *renderer) lanes(dst *ebiten.Image, s *scene.Scene, f scene.Frame, k float64, accent color.RGBA) {
	for _, l := range s.Lanes {
		c := white
		if l.ID%2 == 1 {
			c = accent
		}
		pts := l.Path(s, f).Sample(pathSegments)
		width := l.Width + f.VelocityScale*config.LaneWidthGrowth
		for _, run := range scene.Dashes(pts, config.LaneDash, config.LaneGap, l.FlowOffset) {
			r.paint.polyline(dst, run, width, fade(c, l.Opacity*k))
		}
		if l.HasMarker() {
			fillCircle(dst, s.W/2+l.Curvature/2+f.MouseX*5, s.H*0.65, config.LaneMarkerRadius,
				fade(accent, config.LaneMarkerAlpha*k))
		}
	}
}

func (r *renderer) ambient(dst *ebiten.Image, s *scene.Scene, f scene.Frame, k float64, accent color.RGBA) {
	for _, car := range s.Ambient {
		sc := car.Scale(s.H)
		y := car.Y + car.Bob(f.TimeMS) + f.MouseY
		r.paint.polygon(dst, place(ambientBody, car.X, y, sc, sc), fade(white, 0.12*k))
		r.paint.polygon(dst, place(ambientTail, car.X, y, sc, sc), fade(accent, 0.5*k))
	}
}

func (r *renderer) mid(dst *ebiten.Image, s *scene.Scene, f scene.Frame, k float64) {
	for _, car := range s.Mid {
		r.paint.polygon(dst, place(midBody, car.X, car.Y+f.MouseY*2, car.Scale, car.Scale),
			fade(white, car.Opacity*k))
	}
}

func (r *renderer) hero(dst *ebiten.Image, s *scene.Scene, f scene.Frame, k float64, accent color.RGBA) {
	h := s.Hero
	if !h.Active {
		return
	}
	const sc = config.HeroScale
	r.paint.polygon(dst, place(heroBody, h.X, h.Y, sc, sc), fade(white, 0.18*k))

	// Radial flare: stacked discs, densest at the headlight.
	cx, cy := h.X+200*sc, h.Y+15*sc
	total := f.Mood.FlareBrightness * k
	for i := flareRings; i >= 1; i-- {
		radius := config.HeroFlareRadius * sc * float64(i) / flareRings
		fillCircle(dst, cx, cy, radius, fade(accent, total/flareRings))
	}
}

func (r *renderer) smoke(dst *ebiten.Image, s *scene.Scene, f scene.Frame, k float64) {
	for _, p := range s.Smoke {
		fillCircle(dst, p.X, p.Y, p.Size, fade(smokeGrey, p.Life*f.Mood.SmokeAlpha*k))
	}
}

func (r *renderer) pulses(dst *ebiten.Image, s *scene.Scene, k float64, accent color.RGBA) {
	for _, p := range s.Pulses {
		strokeCircle(dst, p.X, p.Y, p.Radius, 3, fade(accent, p.Alpha*k))
	}
}

func (r *renderer) readouts(dst *ebiten.Image, s *scene.Scene, f scene.Frame, k float64, accent color.RGBA) {
	for _, m := range s.Readouts {
		x, y := m.X+f.MouseX, m.Y+f.MouseY
		switch m.Kind {
		case scene.ReadoutRPM:
			r.paint.arc(dst, x, y, m.Radius, math.Pi*config.RPMStart, math.Pi*config.RPMEnd, 1.5, fade(white, 0.12*k))
			r.paint.arc(dst, x, y, m.Radius, math.Pi*config.RPMStart, m.Sweep, 1.5, fade(accent, 1))
		case scene.ReadoutTelemetry:
			for i, line := range s.Telemetry {
				op := &text.DrawOptions{}
				op.GeoM.Translate(x-50, y+float64(i)*15-r.mono.Size)
				op.ColorScale.ScaleWithColor(fade(white, 0.3*k))
				text.Draw(dst, line, r.mono, op)
			}
		case scene.ReadoutEmblem:
			rad := m.Radius
			shape := []scene.Vec{{X: -rad, Y: 0}, {X: rad, Y: 0}, {X: rad * 1.1, Y: rad * 0.3}, {X: -rad * 1.1, Y: rad * 0.3}}
			r.paint.polygon(dst, place(shape, x, y, math.Cos(m.Rotation), 1), fade(white, 0.1*k))
		}
	}
}

// drawVignette darkens the edges: clear to 35% of the half-diagonal, half black at the corners.
func (r *renderer) drawVignette(dst *ebiten.Image) {
	const step = 4
	b := dst.Bounds()
	size := image.Pt(max(1, b.Dx()/step), max(1, b.Dy()/step))
	if r.vignette == nil || r.vigSize != size {
		if r.vignette != nil {
			r.vignette.Deallocate()
		}
		r.vignette = ebiten.NewImageFromImage(vignetteMask(size.X, size.Y))
		r.vigSize = size
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(b.Dx())/float64(size.X), float64(b.Dy())/float64(size.Y))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(r.vignette, op)
}

func vignetteMask(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	cx, cy := float64(w)/2, float64(h)/2
	reach := math.Hypot(cx, cy)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy) / reach
			a := clamp01((d-0.35)/0.65) * 0.5
			img.SetNRGBA(x, y, color.NRGBA{A: uint8(a * 255)})
		}
	}
	return img
}
