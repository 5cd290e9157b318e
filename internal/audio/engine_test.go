package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/iburimskiy/racing-backdrop/internal/config"
)

func audioSettings() config.AudioSettings {
	return config.AudioSettings{Enabled: true, SampleRate: 22050, BufferMS: 50}
}

func startedEngine(t *testing.T, cfg config.AudioSettings) (*Engine, *fakeSink) {
	t.Helper()
	sink := &fakeSink{}
	e := New(cfg, sink, zaptest.NewLogger(t))
	require.NoError(t, e.Start())
	require.NotNil(t, sink.stream)
	t.Cleanup(e.Close)
	return e, sink
}

func masterAt(e *Engine) float64 {
	var v float64
	e.graph.do(func(now float64) { v = e.graph.master.ValueAt(now) })
	return v
}

func TestEngine_SilentWhenDeviceMissing(t *testing.T) {
	sink := &fakeSink{initErr: errNoDevice}
	e := New(audioSettings(), sink, zaptest.NewLogger(t))

	err := e.Start()
	require.ErrorIs(t, err, ErrNoAudio)
	assert.True(t, e.Silent())
	assert.ErrorIs(t, e.Start(), ErrNoAudio, "no retry for the session")

	assert.NotPanics(t, func() {
		e.SetMuted(true)
		e.SetMuted(false)
		e.SetVelocity(900)
		e.PlayClick(0.8)
		e.PlaySwoosh(-1)
		e.PlayIgnition(1)
	})
	assert.Zero(t, e.Voices())
	assert.Zero(t, e.Level())
	assert.Nil(t, sink.stream)

	e.Close()
	assert.Zero(t, sink.closed)
}

func TestEngine_DisabledNeverTouchesDevice(t *testing.T) {
	sink := &fakeSink{initErr: errNoDevice}
	cfg := audioSettings()
	cfg.Enabled = false
	e := New(cfg, sink, nil)
	require.NoError(t, e.Start())
	assert.True(t, e.Silent())
	assert.Zero(t, sink.rate)
}

func TestEngine_StartOpensSink(t *testing.T) {
	_, sink := startedEngine(t, audioSettings())
	assert.EqualValues(t, 22050, sink.rate)
	assert.Equal(t, 1102, sink.buffer)
}

func TestEngine_MuteSilencesAndRestores(t *testing.T) {
	e, sink := startedEngine(t, audioSettings())

	sink.pull(1)
	assert.InDelta(t, config.MasterNominal, masterAt(e), 1e-3)
	assert.Greater(t, e.Level(), 0.0, "drone is audible")

	e.SetMuted(true)
	assert.True(t, e.Muted())
	out := sink.pull(2)
	assert.Less(t, peak(out[len(out)/2:]), 1e-6)
	assert.Less(t, e.Level(), 1e-6)

	e.PlayClick(0.8)
	e.PlaySwoosh(0)
	e.PlayIgnition(3)
	assert.Zero(t, e.Voices(), "one-shots are skipped while muted")

	e.SetVelocity(3000)
	e.graph.do(func(float64) {
		assert.Zero(t, e.graph.drone.bodyFreq.Pending(), "velocity is ignored while muted")
	})

	e.SetMuted(false)
	sink.pull(2)
	assert.InDelta(t, config.MasterNominal, masterAt(e), 1e-6)
}

func TestEngine_StartsMuted(t *testing.T) {
	cfg := audioSettings()
	cfg.Muted = true
	e, sink := startedEngine(t, cfg)
	out := sink.pull(2)
	assert.Less(t, peak(out[len(out)/2:]), 1e-6)
	assert.True(t, e.Muted())
}

func TestEngine_VelocityRetunesDrone(t *testing.T) {
	e, sink := startedEngine(t, audioSettings())
	e.SetVelocity(1500)
	sink.pull(4)

	e.graph.do(func(now float64) {
		d := e.graph.drone
		assert.InDelta(t, config.BodyFreq+1500.0/15, d.bodyFreq.ValueAt(now), 1e-3)
		assert.InDelta(t, config.EngineGain+1500.0/5000, d.gain.ValueAt(now), 1e-5)
	})
}

func TestEngine_OneShotsEndThemselves(t *testing.T) {
	e, sink := startedEngine(t, audioSettings())
	e.PlayClick(config.ClickPan)
	e.PlaySwoosh(-0.5)
	assert.Equal(t, 2, e.Voices())

	sink.pull(0.1)
	assert.Equal(t, 1, e.Voices(), "click is done after 50ms")
	sink.pull(0.6)
	assert.Zero(t, e.Voices())
}

func TestEngine_IgnitionDucksDrone(t *testing.T) {
	e, sink := startedEngine(t, audioSettings())

	e.PlayIgnition(2)
	sink.pull(1.5)
	e.graph.do(func(now float64) {
		assert.InDelta(t, config.IgnitionDuck, e.graph.drone.gain.ValueAt(now), 1e-4)
	})

	e.PlayIgnition(1)
	sink.pull(12)
	e.graph.do(func(now float64) {
		assert.InDelta(t, config.IgnitionSwell, e.graph.drone.gain.ValueAt(now), 1e-4)
	})
	assert.Zero(t, e.Voices())

	e.PlayIgnition(9)
	assert.Zero(t, e.Voices())
}

func TestEngine_CloseIsIdempotent(t *testing.T) {
	sink := &fakeSink{}
	e := New(audioSettings(), sink, zaptest.NewLogger(t))
	require.NoError(t, e.Start())
	e.Close()
	e.Close()
	assert.Equal(t, 1, sink.closed)

	e.PlayClick(0)
	assert.Zero(t, e.Voices())
	assert.Zero(t, e.Level())
}
