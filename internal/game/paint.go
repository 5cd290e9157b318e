package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/racing-backdrop/internal/scene"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// painter turns vector paths into triangles. The vertex and index buffers are reused between
// calls, so a painter belongs to one goroutine.
type painter struct {
	vs []ebiten.Vertex
	is []uint16
}

func (p *painter) fill(dst *ebiten.Image, path *vector.Path, c color.NRGBA) {
	p.vs, p.is = path.AppendVerticesAndIndicesForFilling(p.vs[:0], p.is[:0])
	p.draw(dst, c)
}

func (p *painter) stroke(dst *ebiten.Image, path *vector.Path, width float64, c color.NRGBA) {
	p.vs, p.is = path.AppendVerticesAndIndicesForStroke(p.vs[:0], p.is[:0], &vector.StrokeOptions{
		Width:    float32(width),
		LineJoin: vector.LineJoinRound,
	})
	p.draw(dst, c)
}

func (p *painter) draw(dst *ebiten.Image, c color.NRGBA) {
	if c.A == 0 || len(p.is) == 0 {
		return
	}
	r, g, b, a := float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255
	for i := range p.vs {
		v := &p.vs[i]
		v.SrcX, v.SrcY = 1, 1
		v.ColorR, v.ColorG, v.ColorB, v.ColorA = r, g, b, a
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	dst.DrawTriangles(p.vs, p.is, whiteSubImage, op)
}

// polygon fills the closed outline pts.
func (p *painter) polygon(dst *ebiten.Image, pts []scene.Vec, c color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, pt := range pts[1:] {
		path.LineTo(float32(pt.X), float32(pt.Y))
	}
	path.Close()
	p.fill(dst, &path, c)
}

func (p *painter) polyline(dst *ebiten.Image, pts []scene.Vec, width float64, c color.NRGBA) {
	if len(pts) < 2 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, pt := range pts[1:] {
		path.LineTo(float32(pt.X), float32(pt.Y))
	}
	p.stroke(dst, &path, width, c)
}

func (p *painter) ellipse(dst *ebiten.Image, cx, cy, rx, ry float64, c color.NRGBA) {
	const segments = 48
	pts := make([]scene.Vec, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / segments
		pts[i] = scene.Vec{X: cx + rx*math.Cos(a), Y: cy + ry*math.Sin(a)}
	}
	p.polygon(dst, pts, c)
}

// arc strokes the clockwise arc from start to end (radians).
func (p *painter) arc(dst *ebiten.Image, cx, cy, r, start, end, width float64, c color.NRGBA) {
	if end <= start {
		return
	}
	var path vector.Path
	path.MoveTo(float32(cx+r*math.Cos(start)), float32(cy+r*math.Sin(start)))
	path.Arc(float32(cx), float32(cy), float32(r), float32(start), float32(end), vector.Clockwise)
	p.stroke(dst, &path, width, c)
}

// place maps a shape in local units to screen space: scale first, then translate.
func place(pts []scene.Vec, dx, dy, sx, sy float64) []scene.Vec {
	out := make([]scene.Vec, len(pts))
	for i, pt := range pts {
		out[i] = scene.Vec{X: pt.X*sx + dx, Y: pt.Y*sy + dy}
	}
	return out
}

func fillCircle(dst *ebiten.Image, cx, cy, r float64, c color.Color) {
	vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(r), c, true)
}

func strokeCircle(dst *ebiten.Image, cx, cy, r, width float64, c color.Color) {
	vector.StrokeCircle(dst, float32(cx), float32(cy), float32(r), float32(width), c, true)
}

func fillRect(dst *ebiten.Image, x, y, w, h float64, c color.Color) {
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), c, false)
}
