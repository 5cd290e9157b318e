package config

import "time"

const (
	WindowWidth  = 1280
	WindowHeight = 720
	WindowTitle  = "Racing Backdrop - M: mood, A: accent, S: sound, 1-7: pages, Esc/Q: quit"

	// Pool sizes
	StarCount       = 200
	CloudCount      = 6
	LaneLineCount   = 6
	CurbCount       = 2
	AmbientCarCount = 8
	MidCarCount     = 3
	ReadoutCount    = 4

	// Velocity scale = speed/SpeedDivisor + mood speed multiplier
	SpeedDivisor   = 400.0
	PointerDivisor = 60.0

	// Starfield
	StarMaxDepth   = 1000.0
	StarDepthStep  = 3.5
	StarParallax   = 0.3
	StarAlpha      = 0.9
	StarStreak     = 10.0
	StarMaxSize    = 2.0

	// Clouds
	CloudVelocityTerm = 0.15
	CloudAlpha        = 0.03
	CloudBandFrac     = 0.45

	// Track
	HorizonFrac      = 0.25
	SteerPeriodMS    = 800.0
	SteerAmplitude   = 5.0
	CurbFlowStep     = 20.0
	CurbDash         = 60.0
	CurbWidth        = 60.0
	CurbAlpha        = 0.07
	CurbSideOffset   = 400.0
	CurbCurve        = 300.0
	CurbScale        = 1.2
	LaneFlowStep     = 25.0
	LaneDash         = 200.0
	LaneGap          = 300.0
	LaneSpacing      = 110.0
	LaneScale        = 1.1
	LaneWidthGrowth  = 0.5
	LaneMarkerRadius = 12.0
	LaneMarkerAlpha  = 0.25

	// Ambient traffic
	AmbientCarFactor = 0.35
	AmbientWrap      = 300.0
	AmbientBobMS     = 500.0
	AmbientBob       = 8.0
	AmbientLaneGap   = 100.0
	MidCarWrap       = 600.0
	MidCarStagger    = 1000.0
	MidCarLaneGap    = 150.0

	// Hero car
	HeroStartX       = -1200.0
	HeroExitMargin   = 1500.0
	HeroBaseVelocity = 60.0
	HeroVelocityJit  = 30.0
	HeroScale        = 4.0
	HeroFlareRadius  = 120.0

	// Smoke. SmokeEmitChance is a hand-tuned Bernoulli rate per frame.
	SmokeEmitChance = 0.65
	SmokeOffsetY    = 80.0
	SmokeVX         = -3.0
	SmokeVY         = -1.5
	SmokeLife       = 1.2
	SmokeSize       = 15.0
	SmokeDecay      = 0.012
	SmokeGrowth     = 1.2

	// Energy pulses
	PulseClickAlpha = 0.5
	PulseHeroAlpha  = 1.0
	PulseGrowth     = 25.0
	PulseDecay      = 0.015

	// Readouts
	RPMRadius         = 80.0
	RPMStart          = 0.8 // x pi
	RPMSweep          = 1.4 // x pi
	RPMEnd            = 2.2 // x pi
	RPMFullScale      = 12.0
	EmblemSpin        = 0.005
	EmblemSpinPerVel  = 0.002
	TelemetryMGUPerVS = 18.5
	TireTempBase      = 80.0
	TireTempPerVS     = 4.0
)

// Input bridge
const (
	// SpeedSettle is how long after the last scroll event the speed drops back to zero.
	SpeedSettle  = 100 * time.Millisecond
	WheelStep    = 120.0
	PageScreens  = 3
	NavDelay     = 150 * time.Millisecond
	ResolveDelay = 400 * time.Millisecond
)

// Audio
const (
	SampleRate  = 44100
	BufferMS    = 50
	TapRingSize = 4096
	LevelWindow = 50 * time.Millisecond

	MasterCutoff  = 6000.0
	MasterStart   = 1.0
	MasterNominal = 0.6
	MuteTau       = 0.1

	EngineGain    = 0.07
	SubFreq       = 28.0
	SubGain       = 0.06
	BodyFreq      = 55.0
	BodyGain      = 0.04
	LFOFreq       = 0.6
	LFODepth      = 4.0
	VelocityTau   = 0.3
	RPMPerVel     = 1.0 / 15
	GainPerVel    = 1.0 / 5000
	IgnitionDuck  = 0.01
	DuckTau       = 0.2
	IgnitionSwell = 0.05
	SwellTau      = 1.5

	ClickPan = 0.8
)

// Ignition timings are fixed, not tunable.
const (
	IgnitionPhase2   = 600 * time.Millisecond
	IgnitionPhase3   = 1400 * time.Millisecond
	IgnitionPhase4   = 2200 * time.Millisecond
	IgnitionComplete = 2800 * time.Millisecond
)
