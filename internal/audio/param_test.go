package audio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParam_SetAndHold(t *testing.T) {
	p := NewParam(3)
	assert.Equal(t, 3.0, p.ValueAt(0))
	p.SetValueAt(5, 1)
	assert.Equal(t, 3.0, p.ValueAt(0.5))
	assert.Equal(t, 5.0, p.ValueAt(1))
	assert.Equal(t, 5.0, p.ValueAt(10))
}

func TestParam_LinearRamp(t *testing.T) {
	p := NewParam(0)
	p.SetValueAt(0, 0)
	p.LinearRampTo(0.12, 0.1)
	assert.InDelta(t, 0.06, p.ValueAt(0.05), 1e-12)
	assert.InDelta(t, 0.12, p.ValueAt(0.1), 1e-12)
	assert.InDelta(t, 0.12, p.ValueAt(0.3), 1e-12)
}

func TestParam_ExponentialRamp(t *testing.T) {
	p := NewParam(0)
	p.SetValueAt(800, 0)
	p.ExponentialRampTo(100, 0.04)
	assert.InDelta(t, 800, p.ValueAt(0), 1e-9)
	assert.InDelta(t, math.Sqrt(800*100), p.ValueAt(0.02), 1e-9, "geometric midpoint")
	assert.InDelta(t, 100, p.ValueAt(0.04), 1e-9)
}

func TestParam_ExponentialRampFromZeroHolds(t *testing.T) {
	p := NewParam(0)
	p.ExponentialRampTo(1, 1)
	assert.Equal(t, 0.0, p.ValueAt(0.5))
	assert.Equal(t, 1.0, p.ValueAt(1))
}

func TestParam_ChainedRamps(t *testing.T) {
	// Swoosh gain: 0, linear to 0.12 at 0.1, exponential to 0.001 at 0.6.
	p := NewParam(0)
	p.SetValueAt(0, 0)
	p.LinearRampTo(0.12, 0.1)
	p.ExponentialRampTo(0.001, 0.6)
	assert.InDelta(t, 0.12, p.ValueAt(0.1), 1e-12)
	assert.InDelta(t, 0.12*math.Pow(0.001/0.12, 0.5), p.ValueAt(0.35), 1e-12)
	assert.InDelta(t, 0.001, p.ValueAt(0.6), 1e-12)
}

func TestParam_SetTarget(t *testing.T) {
	p := NewParam(1)
	p.SetTargetAt(0, 0, 0.1)
	assert.InDelta(t, 1, p.ValueAt(0), 1e-12)
	assert.InDelta(t, math.Exp(-1), p.ValueAt(0.1), 1e-12)
	assert.InDelta(t, 0, p.ValueAt(2), 1e-8)

	// A new target starts from wherever the previous one had got to.
	p.SetTargetAt(0.6, 0.1, 0.1)
	assert.InDelta(t, math.Exp(-1), p.ValueAt(0.1), 1e-12)
	assert.InDelta(t, 0.6+(math.Exp(-1)-0.6)*math.Exp(-1), p.ValueAt(0.2), 1e-12)
}

func TestParam_SameTimeAppliesInOrder(t *testing.T) {
	p := NewParam(0.07)
	p.SetTargetAt(0.01, 1, 0.2)
	p.SetTargetAt(0.05, 1, 1.5)
	assert.InDelta(t, 0.07, p.ValueAt(1), 1e-12)
	assert.InDelta(t, 0.05+(0.07-0.05)*math.Exp(-1), p.ValueAt(2.5), 1e-12, "the later event wins")
}

func TestParam_TrimPreservesValues(t *testing.T) {
	build := func() *Param {
		p := NewParam(55)
		p.SetTargetAt(80, 0.1, 0.3)
		p.SetTargetAt(60, 0.5, 0.3)
		p.LinearRampTo(70, 1.0)
		p.SetTargetAt(40, 1.2, 0.3)
		return p
	}
	ref := build()
	trimmed := build()
	for _, at := range []float64{0.05, 0.3, 0.7, 1.1, 1.5} {
		trimmed.Trim(at)
		for _, q := range []float64{at, at + 0.01, at + 0.2, at + 1} {
			assert.InDelta(t, ref.ValueAt(q), trimmed.ValueAt(q), 1e-12, "trim %.2f query %.2f", at, q)
		}
	}
	assert.Equal(t, 0, trimmed.Pending())
}
