package audio

import (
	"math"
	"sort"
)

// Curve selects how a parameter reaches a scheduled value.
type Curve int

const (
	Set Curve = iota
	Linear
	Exponential
	curveTarget
)

type event struct {
	at    float64 // seconds on the owning clock
	value float64
	curve Curve
	tau   float64
}

// Param is an automatable value on an audio clock measured in seconds. Events apply in time
// order; events sharing a time apply in the order they were scheduled.
//
// A ramp runs from the previous event's time and value to its own. A target event decays
// exponentially toward its value, starting from whatever the parameter held at that moment,
// until the next event takes over.
type Param struct {
	events []event

	// state after every event trimmed so far
	v    float64
	vt   float64
	goal *event
}

func NewParam(initial float64) *Param {
	return &Param{v: initial}
}

func (p *Param) SetValueAt(v, at float64) { p.insert(event{at: at, value: v, curve: Set}) }

func (p *Param) LinearRampTo(v, at float64) { p.insert(event{at: at, value: v, curve: Linear}) }

// ExponentialRampTo needs strictly positive endpoints; otherwise the value holds until at.
func (p *Param) ExponentialRampTo(v, at float64) {
	p.insert(event{at: at, value: v, curve: Exponential})
}

// SetTargetAt starts an exponential approach to target at time at with time constant tau.
func (p *Param) SetTargetAt(target, at, tau float64) {
	if tau <= 0 {
		p.SetValueAt(target, at)
		return
	}
	p.insert(event{at: at, value: target, curve: curveTarget, tau: tau})
}

func (p *Param) insert(e event) {
	i := sort.Search(len(p.events), func(i int) bool { return p.events[i].at > e.at })
	p.events = append(p.events, event{})
	copy(p.events[i+1:], p.events[i:])
	p.events[i] = e
}

func (p *Param) apply(e event) {
	if e.curve == curveTarget {
		p.v = p.settled(e.at)
		p.vt = e.at
		g := e
		p.goal = &g
		return
	}
	p.v = e.value
	p.vt = e.at
	p.goal = nil
}

func (p *Param) settled(t float64) float64 {
	if p.goal == nil {
		return p.v
	}
	return approach(p.v, p.goal.value, t-p.vt, p.goal.tau)
}

func approach(from, to, dt, tau float64) float64 {
	if dt <= 0 {
		return from
	}
	return to + (from-to)*math.Exp(-dt/tau)
}

// ValueAt evaluates the parameter at t. Times earlier than the last Trim are not supported.
func (p *Param) ValueAt(t float64) float64 {
	v, vt, goal := p.v, p.vt, p.goal
	cur := func(x float64) float64 {
		if goal == nil {
			return v
		}
		return approach(v, goal.value, x-vt, goal.tau)
	}
	for i := range p.events {
		e := &p.events[i]
		if e.at > t {
			switch e.curve {
			case Linear:
				return rampLinear(v, vt, e.value, e.at, t)
			case Exponential:
				return rampExp(v, vt, e.value, e.at, t)
			}
			return cur(t)
		}
		if e.curve == curveTarget {
			v = cur(e.at)
			vt = e.at
			goal = e
			continue
		}
		v, vt, goal = e.value, e.at, nil
	}
	return cur(t)
}

// Trim folds every event at or before t into the parameter state.
func (p *Param) Trim(t float64) {
	n := 0
	for n < len(p.events) && p.events[n].at <= t {
		p.apply(p.events[n])
		n++
	}
	if n == 0 {
		return
	}
	p.events = append(p.events[:0], p.events[n:]...)
}

// Pending returns the number of events not yet folded by Trim.
func (p *Param) Pending() int { return len(p.events) }

func rampLinear(v0, t0, v1, t1, t float64) float64 {
	if t1 <= t0 {
		return v1
	}
	return v0 + (v1-v0)*(t-t0)/(t1-t0)
}

func rampExp(v0, t0, v1, t1, t float64) float64 {
	if t1 <= t0 {
		return v1
	}
	if v0 <= 0 || v1 <= 0 {
		return v0
	}
	return v0 * math.Pow(v1/v0, (t-t0)/(t1-t0))
}
