package scene

import "fmt"

// Layer is one drawing pass over a pool.
type Layer int

const (
	LayerStars Layer = iota
	LayerClouds
	LayerCurbs
	LayerLanes
	LayerAmbient
	LayerMid
	LayerHero
	LayerSmoke
	LayerPulses
	LayerReadouts
)

var layerNames = [...]string{"stars", "clouds", "curbs", "lanes", "ambient", "mid", "hero", "smoke", "pulses", "readouts"}

func (l Layer) String() string {
	if l < 0 || int(l) >= len(layerNames) {
		return fmt.Sprintf("Layer(%d)", int(l))
	}
	return layerNames[l]
}

// DrawOrder lists the passes back to front. Later layers cover earlier ones.
func DrawOrder() []Layer {
	return []Layer{
		LayerStars,
		LayerClouds,
		LayerCurbs,
		LayerLanes,
		LayerAmbient,
		LayerMid,
		LayerHero,
		LayerSmoke,
		LayerPulses,
		LayerReadouts,
	}
}
