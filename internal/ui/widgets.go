package ui

import "math"

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

func (r Rect) Center() (float64, float64) { return r.X + r.W/2, r.Y + r.H/2 }

type Circle struct {
	X, Y, R float64
}

func (c Circle) Contains(x, y float64) bool {
	return math.Hypot(x-c.X, y-c.Y) <= c.R
}

type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetLogo
	TargetNav
	TargetConnect
	TargetControl
	TargetLink
)

// Target is the widget under a point. Index selects the page, control or link.
type Target struct {
	Kind  TargetKind
	Index int
}

// Widgets is the screen geometry of everything clickable.
type Widgets struct {
	Logo     Rect
	Nav      [PageCount]Rect
	Connect  Rect
	Controls [ControlCount]Circle
	Links    [LinkCount]Rect
}

const (
	barHeight   = 56.0
	navItemW    = 118.0
	controlR    = 28.0
	controlGap  = 24.0
	chipW       = 120.0
	chipH       = 28.0
	edgeMargin  = 16.0
	connectW    = 140.0
	logoW       = 170.0
	itemPadding = 12.0
)

// Arrange lays the widgets out for a w×h viewport.
func Arrange(w, h float64) Widgets {
	var ws Widgets
	ws.Logo = Rect{X: edgeMargin, Y: itemPadding, W: logoW, H: barHeight - 2*itemPadding}

	left := w/2 - navItemW*PageCount/2
	for i := range ws.Nav {
		ws.Nav[i] = Rect{X: left + float64(i)*navItemW, Y: itemPadding, W: navItemW, H: barHeight - 2*itemPadding}
	}

	ws.Connect = Rect{X: w - connectW - edgeMargin, Y: itemPadding, W: connectW, H: barHeight - 2*itemPadding}

	for i := range ws.Controls {
		ws.Controls[i] = Circle{
			X: w - edgeMargin - controlR,
			Y: h/2 + float64(i-1)*(2*controlR+controlGap),
			R: controlR,
		}
	}

	chipsW := float64(LinkCount)*chipW + float64(LinkCount-1)*itemPadding
	for i := range ws.Links {
		ws.Links[i] = Rect{
			X: w/2 - chipsW/2 + float64(i)*(chipW+itemPadding),
			Y: h - edgeMargin - chipH,
			W: chipW,
			H: chipH,
		}
	}
	return ws
}

// Hit returns the topmost widget at (x, y).
func (ws Widgets) Hit(x, y float64) Target {
	for i, c := range ws.Controls {
		if c.Contains(x, y) {
			return Target{Kind: TargetControl, Index: i}
		}
	}
	if ws.Connect.Contains(x, y) {
		return Target{Kind: TargetConnect}
	}
	for i, r := range ws.Nav {
		if r.Contains(x, y) {
			return Target{Kind: TargetNav, Index: i}
		}
	}
	if ws.Logo.Contains(x, y) {
		return Target{Kind: TargetLogo}
	}
	for i, r := range ws.Links {
		if r.Contains(x, y) {
			return Target{Kind: TargetLink, Index: i}
		}
	}
	return Target{}
}
