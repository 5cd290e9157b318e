package scene

import (
	"math"

	"github.com/iburimskiy/racing-backdrop/internal/config"
)

type Vec struct {
	X, Y float64
}

// Bezier is a cubic curve.
type Bezier struct {
	P0, P1, P2, P3 Vec
}

func (b Bezier) At(t float64) Vec {
	u := 1 - t
	a := u * u * u
	c := 3 * u * u * t
	d := 3 * u * t * t
	e := t * t * t
	return Vec{
		X: a*b.P0.X + c*b.P1.X + d*b.P2.X + e*b.P3.X,
		Y: a*b.P0.Y + c*b.P1.Y + d*b.P2.Y + e*b.P3.Y,
	}
}

// Sample returns n+1 evenly parameterised points from P0 to P3.
func (b Bezier) Sample(n int) []Vec {
	if n < 1 {
		n = 1
	}
	pts := make([]Vec, n+1)
	for i := 0; i <= n; i++ {
		pts[i] = b.At(float64(i) / float64(n))
	}
	return pts
}

// TrackPath is the curve shared by curbs and lane lines: it starts at the horizon and
// fans out below the bottom edge.
func (s *Scene) TrackPath(f Frame, offsetX, curve, scale float64) Bezier {
	cx := s.W / 2
	steer := f.Steer()
	return Bezier{
		P0: Vec{cx + offsetX + steer + f.MouseX*2, s.H * config.HorizonFrac},
		P1: Vec{cx + offsetX + curve + f.MouseX*8, s.H * 0.55},
		P2: Vec{cx + offsetX - curve - f.MouseX*8, s.H * 0.85},
		P3: Vec{cx + offsetX*3.5*scale + steer*3 + f.MouseX*15, s.H + 200},
	}
}

func (c Curb) Path(s *Scene, f Frame) Bezier {
	return s.TrackPath(f, c.Side*config.CurbSideOffset, config.CurbCurve*c.Side, config.CurbScale)
}

func (l LaneLine) Path(s *Scene, f Frame) Bezier {
	return s.TrackPath(f, (float64(l.ID)-2.5)*config.LaneSpacing, l.Curvature, config.LaneScale)
}

// HasMarker reports whether the lane carries the accent marker dot.
func (l LaneLine) HasMarker() bool { return l.ID == 2 || l.ID == 4 }

// Dashes splits a polyline into the "on" runs of an on/off dash pattern. offset shifts the
// pattern the way a canvas line-dash offset does: decreasing it moves dashes forward.
func Dashes(pts []Vec, on, off, offset float64) [][]Vec {
	period := on + off
	if len(pts) < 2 || on <= 0 || period <= 0 {
		return nil
	}
	phase := math.Mod(offset, period)
	if phase < 0 {
		phase += period
	}

	var runs [][]Vec
	var cur []Vec
	inDash := phase < on
	if inDash {
		cur = []Vec{pts[0]}
	}

	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		seg := math.Hypot(b.X-a.X, b.Y-a.Y)
		done := 0.0
		for done < seg {
			var left float64
			if inDash {
				left = on - phase
			} else {
				left = period - phase
			}
			step := math.Min(left, seg-done)
			done += step
			phase += step
			p := lerp(a, b, done/seg)
			if inDash {
				cur = append(cur, p)
			}
			if phase >= period {
				phase -= period
			}
			nowDash := phase < on
			if nowDash != inDash {
				if inDash && len(cur) > 1 {
					runs = append(runs, cur)
				}
				cur = nil
				if nowDash {
					cur = []Vec{p}
				}
				inDash = nowDash
			}
		}
	}
	if inDash && len(cur) > 1 {
		runs = append(runs, cur)
	}
	return runs
}

func lerp(a, b Vec, t float64) Vec {
	return Vec{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// StarProjection is where a star lands on screen this frame.
type StarProjection struct {
	X, Y   float64
	Alpha  float64
	Length float64
}

// Project applies the perspective divide and pointer parallax to st.
func (s *Scene) Project(st Star, f Frame) StarProjection {
	k := config.StarMaxDepth / st.Z
	return StarProjection{
		X:      (st.X-s.W/2)*k + s.W/2 + f.MouseX*config.StarParallax,
		Y:      (st.Y-s.H/2)*k + s.H/2 + f.MouseY*config.StarParallax,
		Alpha:  math.Min(1, 1-st.Z/config.StarMaxDepth) * f.Mood.Intensity * config.StarAlpha,
		Length: st.Size + f.VelocityScale*config.StarStreak,
	}
}

// Scale is the perspective size of an ambient car, larger further down the screen.
func (c AmbientCar) Scale(viewH float64) float64 {
	return c.Z * (c.Y/viewH + 0.6)
}

// Bob is the vertical wobble of an ambient car at time t.
func (c AmbientCar) Bob(timeMS float64) float64 {
	return math.Sin(timeMS/config.AmbientBobMS+float64(c.Lane)) * config.AmbientBob
}
