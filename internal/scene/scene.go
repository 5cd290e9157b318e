// Package scene owns every animated pool of the backdrop and the per-frame rules that advance
// them. It never draws; the game package reads the pools after each Step.
package scene

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/iburimskiy/racing-backdrop/internal/config"
	"github.com/iburimskiy/racing-backdrop/internal/signals"
	"github.com/iburimskiy/racing-backdrop/internal/theme"
)

type Star struct {
	X, Y, Z float64
	Size    float64
}

type Cloud struct {
	X, Y  float64
	W, H  float64
	Speed float64
}

type LaneLine struct {
	ID         int
	FlowOffset float64
	Curvature  float64
	Width      float64
	Opacity    float64
}

type Curb struct {
	Side       float64
	FlowOffset float64
}

type AmbientCar struct {
	X, Y  float64
	Z     float64
	Speed float64
	Lane  int
}

type MidCar struct {
	X, Y    float64
	Speed   float64
	Scale   float64
	Opacity float64
}

type HeroCar struct {
	Active   bool
	X, Y     float64
	Velocity float64
}

type Smoke struct {
	X, Y   float64
	VX, VY float64
	Life   float64
	Size   float64
}

type Pulse struct {
	X, Y   float64
	Radius float64
	Alpha  float64
}

type ReadoutKind int

const (
	ReadoutRPM ReadoutKind = iota
	ReadoutTelemetry
	ReadoutEmblem
)

func (k ReadoutKind) String() string {
	switch k {
	case ReadoutRPM:
		return "RPM"
	case ReadoutTelemetry:
		return "TELEMETRY"
	case ReadoutEmblem:
		return "ROTATING_CAR"
	default:
		return fmt.Sprintf("ReadoutKind(%d)", int(k))
	}
}

type Readout struct {
	Kind     ReadoutKind
	X, Y     float64
	Radius   float64
	Sweep    float64 // RPM needle end angle, radians
	Rotation float64 // emblem spin phase, radians
}

// Frame carries the signals one Step consumes.
type Frame struct {
	VelocityScale float64
	MouseX        float64 // pointer offset from the viewport centre, already divided down
	MouseY        float64
	TimeMS        float64
	Mood          theme.Mood
}

// NewFrame derives the per-frame inputs from a bridge snapshot.
func NewFrame(s signals.Snapshot, width, height, timeMS float64) Frame {
	vs := s.Speed/config.SpeedDivisor + s.Mood.SpeedMult
	if vs < 0 || math.IsNaN(vs) {
		vs = 0
	}
	return Frame{
		VelocityScale: vs,
		MouseX:        (s.Pointer.X - width/2) / config.PointerDivisor,
		MouseY:        (s.Pointer.Y - height/2) / config.PointerDivisor,
		TimeMS:        timeMS,
		Mood:          s.Mood,
	}
}

// Steer is the slow lateral sway of the track.
func (f Frame) Steer() float64 {
	return math.Sin(f.TimeMS/config.SteerPeriodMS) * config.SteerAmplitude
}

type Scene struct {
	W, H float64
	rng  *rand.Rand

	Stars    []Star
	Clouds   []Cloud
	Lanes    []LaneLine
	Curbs    []Curb
	Ambient  []AmbientCar
	Mid      []MidCar
	Hero     HeroCar
	Smoke    []Smoke
	Pulses   []Pulse
	Readouts []Readout

	Telemetry [3]string
}

// New builds a scene for a w×h viewport. rng drives every random choice.
func New(w, h float64, rng *rand.Rand) *Scene {
	s := &Scene{rng: rng, Hero: HeroCar{X: config.HeroStartX}}
	s.Resize(w, h)
	return s
}

// Resize rebuilds the fixed pools for the new viewport. Smoke, pulses and the hero car are
// left alone so an effect in flight survives a resize.
func (s *Scene) Resize(w, h float64) {
	s.W, s.H = w, h
	r := s.rng

	s.Stars = make([]Star, config.StarCount)
	for i := range s.Stars {
		s.Stars[i] = Star{
			X:    r.Float64() * w,
			Y:    r.Float64() * h,
			Z:    (1 - r.Float64()) * config.StarMaxDepth,
			Size: r.Float64() * config.StarMaxSize,
		}
	}

	s.Clouds = make([]Cloud, config.CloudCount)
	for i := range s.Clouds {
		s.Clouds[i] = Cloud{
			X:     r.Float64() * w,
			Y:     r.Float64() * h * config.CloudBandFrac,
			W:     r.Float64()*600 + 300,
			H:     r.Float64()*150 + 50,
			Speed: r.Float64()*0.3 + 0.1,
		}
	}

	s.Lanes = make([]LaneLine, config.LaneLineCount)
	for i := range s.Lanes {
		s.Lanes[i] = LaneLine{
			ID:         i,
			FlowOffset: r.Float64() * 4000,
			Curvature:  (r.Float64() - 0.5) * 800,
			Width:      1.5 + float64(i)*2,
			Opacity:    0.08 + float64(i)*0.04,
		}
	}

	s.Curbs = make([]Curb, config.CurbCount)
	for i := range s.Curbs {
		side := 1.0
		if i == 0 {
			side = -1
		}
		s.Curbs[i] = Curb{Side: side}
	}

	s.Ambient = make([]AmbientCar, config.AmbientCarCount)
	for i := range s.Ambient {
		s.Ambient[i] = AmbientCar{
			X:     r.Float64() * w,
			Y:     h*0.15 + float64(i)*config.AmbientLaneGap,
			Z:     r.Float64()*0.4 + 0.1,
			Speed: 1.5 + r.Float64()*2.5,
			Lane:  i,
		}
	}

	s.Mid = make([]MidCar, config.MidCarCount)
	for i := range s.Mid {
		s.Mid[i] = MidCar{
			X:       -500 - float64(i)*config.MidCarStagger,
			Y:       h*0.5 + float64(i)*config.MidCarLaneGap,
			Speed:   15 + r.Float64()*10,
			Scale:   1.5,
			Opacity: 0.2,
		}
	}

	s.Readouts = []Readout{
		{Kind: ReadoutRPM, X: 150, Y: h - 150, Radius: config.RPMRadius},
		{Kind: ReadoutTelemetry, X: w - 150, Y: 150, Radius: 60},
		{Kind: ReadoutEmblem, X: 120, Y: h - 120, Radius: 45},
		{Kind: ReadoutEmblem, X: w - 120, Y: 120, Radius: 60},
	}
}

// TriggerHero (re)launches the single hero car and fires the launch pulse.
func (s *Scene) TriggerHero() {
	s.Hero = HeroCar{
		Active:   true,
		X:        config.HeroStartX,
		Y:        (s.rng.Float64()*0.5 + 0.25) * s.H,
		Velocity: config.HeroBaseVelocity + s.rng.Float64()*config.HeroVelocityJit,
	}
	s.Pulses = append(s.Pulses, Pulse{X: 0, Y: s.H / 2, Alpha: config.PulseHeroAlpha})
}

// AddPulse starts a pointer-down ripple at (x, y).
func (s *Scene) AddPulse(x, y float64) {
	s.Pulses = append(s.Pulses, Pulse{X: x, Y: y, Alpha: config.PulseClickAlpha})
}

// Step advances every pool by one frame, in draw order.
func (s *Scene) Step(f Frame) {
	vs := f.VelocityScale

	for i := range s.Stars {
		st := &s.Stars[i]
		st.Z -= vs * config.StarDepthStep
		if st.Z <= 0 {
			st.Z = config.StarMaxDepth
		}
	}

	for i := range s.Clouds {
		c := &s.Clouds[i]
		c.X += c.Speed + vs*config.CloudVelocityTerm
		if c.X > s.W+c.W {
			c.X = -c.W
		}
	}

	for i := range s.Curbs {
		s.Curbs[i].FlowOffset -= vs * config.CurbFlowStep
	}
	for i := range s.Lanes {
		s.Lanes[i].FlowOffset -= vs * config.LaneFlowStep
	}

	for i := range s.Ambient {
		car := &s.Ambient[i]
		car.X += car.Speed * vs * f.Mood.CarSpeed * config.AmbientCarFactor
		if car.X > s.W+config.AmbientWrap {
			car.X = -config.AmbientWrap
		}
	}

	for i := range s.Mid {
		car := &s.Mid[i]
		car.X += car.Speed * vs
		if car.X > s.W+config.MidCarWrap {
			car.X = -config.MidCarWrap
		}
	}

	s.stepHero()
	s.stepSmoke()
	s.stepPulses()
	s.stepReadouts(f)
}

func (s *Scene) stepHero() {
	h := &s.Hero
	if !h.Active {
		return
	}
	h.X += h.Velocity
	if s.rng.Float64() < config.SmokeEmitChance {
		s.Smoke = append(s.Smoke, Smoke{
			X:    h.X,
			Y:    h.Y + config.SmokeOffsetY,
			VX:   config.SmokeVX,
			VY:   config.SmokeVY,
			Life: config.SmokeLife,
			Size: config.SmokeSize,
		})
	}
	if h.X > s.W+config.HeroExitMargin {
		h.Active = false
	}
}

func (s *Scene) stepSmoke() {
	live := s.Smoke[:0]
	for _, p := range s.Smoke {
		p.X += p.VX
		p.Y += p.VY
		p.Life -= config.SmokeDecay
		p.Size += config.SmokeGrowth
		if p.Life <= 0 {
			continue
		}
		live = append(live, p)
	}
	clear(s.Smoke[len(live):])
	s.Smoke = live
}

func (s *Scene) stepPulses() {
	live := s.Pulses[:0]
	for _, p := range s.Pulses {
		p.Radius += config.PulseGrowth
		p.Alpha -= config.PulseDecay
		if p.Alpha <= 0 {
			continue
		}
		live = append(live, p)
	}
	clear(s.Pulses[len(live):])
	s.Pulses = live
}

func (s *Scene) stepReadouts(f Frame) {
	vs := f.VelocityScale
	for i := range s.Readouts {
		r := &s.Readouts[i]
		switch r.Kind {
		case ReadoutRPM:
			r.Sweep = RPMAngle(vs)
		case ReadoutEmblem:
			r.Rotation += config.EmblemSpin + vs*config.EmblemSpinPerVel
		}
	}
	s.Telemetry = [3]string{
		fmt.Sprintf("TELEMETRY: [%.2f, %.2f]", f.MouseX*10, f.MouseY*10),
		fmt.Sprintf("MGU-H: %.1f MJ", vs*config.TelemetryMGUPerVS),
		fmt.Sprintf("TIRE_TEMP: %.0f°C", config.TireTempBase+vs*config.TireTempPerVS),
	}
}

// RPMAngle maps a velocity scale onto the gauge arc, capped at the end stop.
func RPMAngle(vs float64) float64 {
	a := math.Pi*config.RPMStart + math.Pi*config.RPMSweep*(vs/config.RPMFullScale)
	return math.Min(a, math.Pi*config.RPMEnd)
}
