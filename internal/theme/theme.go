// Package theme holds the fixed mood and accent palettes the backdrop can be switched between.
package theme

import "image/color"

// Mood scales how busy and bright the backdrop is.
type Mood struct {
	Name       string
	Background color.RGBA
	Blur       string
	Glow       string

	Intensity       float64
	SpeedMult       float64
	StarDensity     float64
	LineSpeed       float64
	CarSpeed        float64
	FlareBrightness float64
	SmokeAlpha      float64
	IgnitionDelay   float64
}

// Accent is the highlight colour used for lane lines, gauges and pulses.
type Accent struct {
	Key    string
	Name   string
	Color  color.RGBA
	Glow   string
	Border string
}

var (
	Void = Mood{
		Name:            "VOID",
		Background:      color.RGBA{R: 9, G: 9, B: 11, A: 255},
		Blur:            "backdrop-blur-xl",
		Glow:            "0 0 30px rgba(255,255,255,0.05)",
		Intensity:       0.2,
		SpeedMult:       0.4,
		StarDensity:     0.5,
		LineSpeed:       1,
		CarSpeed:        1.5,
		FlareBrightness: 0.2,
		SmokeAlpha:      0.05,
		IgnitionDelay:   1.2,
	}
	Aura = Mood{
		Name:            "AURA",
		Background:      color.RGBA{R: 23, G: 23, B: 23, A: 255},
		Blur:            "backdrop-blur-lg",
		Glow:            "0 0 40px rgba(255,255,255,0.1)",
		Intensity:       0.5,
		SpeedMult:       1.0,
		StarDensity:     1.0,
		LineSpeed:       2.5,
		CarSpeed:        3,
		FlareBrightness: 0.5,
		SmokeAlpha:      0.15,
		IgnitionDelay:   1.0,
	}
	Pulse = Mood{
		Name:            "PULSE",
		Background:      color.RGBA{R: 2, G: 6, B: 23, A: 255},
		Blur:            "backdrop-blur-md",
		Glow:            "0 0 60px rgba(255,255,255,0.2)",
		Intensity:       1.2,
		SpeedMult:       2.5,
		StarDensity:     2.0,
		LineSpeed:       6,
		CarSpeed:        8,
		FlareBrightness: 1.0,
		SmokeAlpha:      0.4,
		IgnitionDelay:   0.8,
	}

	Red = Accent{
		Key:    "RED",
		Name:   "Racing Red",
		Color:  color.RGBA{R: 0xff, G: 0x18, B: 0x01, A: 0xff},
		Glow:   "shadow-red-500/50",
		Border: "border-red-500/30",
	}
	Blue = Accent{
		Key:    "BLUE",
		Name:   "Electric Blue",
		Color:  color.RGBA{R: 0x00, G: 0xd2, B: 0xff, A: 0xff},
		Glow:   "shadow-blue-500/50",
		Border: "border-blue-500/30",
	}
	Purple = Accent{
		Key:    "PURPLE",
		Name:   "Bright Purple",
		Color:  color.RGBA{R: 0x8f, G: 0x1f, B: 0xe3, A: 0xff},
		Glow:   "shadow-purple-500/50",
		Border: "border-purple-500/50",
	}
)

// CurbRed is the fixed red of the track curbs, independent of the accent.
var CurbRed = color.RGBA{R: 0xff, G: 0x18, B: 0x01, A: 0xff}

// Moods and Accents are in cycle order.
var (
	Moods   = []Mood{Void, Aura, Pulse}
	Accents = []Accent{Red, Blue, Purple}
)

func DefaultMood() Mood     { return Aura }
func DefaultAccent() Accent { return Blue }

func MoodByName(name string) (Mood, bool) {
	for _, m := range Moods {
		if m.Name == name {
			return m, true
		}
	}
	return Mood{}, false
}

func AccentByKey(key string) (Accent, bool) {
	for _, a := range Accents {
		if a.Key == key {
			return a, true
		}
	}
	return Accent{}, false
}

// NextMood returns the mood after m, wrapping. Unknown moods restart the cycle.
func NextMood(m Mood) Mood {
	for i, candidate := range Moods {
		if candidate.Name == m.Name {
			return Moods[(i+1)%len(Moods)]
		}
	}
	return Moods[0]
}

// NextAccent returns the accent after a, wrapping. Unknown accents restart the cycle.
func NextAccent(a Accent) Accent {
	for i, candidate := range Accents {
		if candidate.Key == a.Key {
			return Accents[(i+1)%len(Accents)]
		}
	}
	return Accents[0]
}
