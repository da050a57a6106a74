package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"glitchfx/glitch"
)

func scenario() glitch.Config {
	cfg := glitch.DefaultConfig()
	cfg.GlitchDuration = 200 * time.Millisecond
	cfg.IdleInterval = 300 * time.Millisecond
	return cfg
}

func TestTraceTimeline(t *testing.T) {
	rep := trace(scenario(), glitch.TimingTimer, 1, options{
		duration: time.Second,
		tick:     10 * time.Millisecond,
		frameAt:  -1,
	})

	var marks []traceEvent
	samples := 0
	for _, ev := range rep.Events {
		if ev.Kind == "sample" {
			samples++
			continue
		}
		marks = append(marks, ev)
	}
	assert.Equal(t, []traceEvent{
		{AtMS: 0, Kind: "start"},
		{AtMS: 200, Kind: "end"},
		{AtMS: 500, Kind: "start"},
		{AtMS: 700, Kind: "end"},
	}, marks)
	assert.GreaterOrEqual(t, samples, 4)
	assert.Equal(t, 2, rep.Cycles)
	assert.Nil(t, rep.Frame)
}

func TestTraceBackendsMatch(t *testing.T) {
	opt := options{duration: 3 * time.Second, tick: 16 * time.Millisecond, frameAt: -1, samples: true}
	a := trace(scenario(), glitch.TimingTimer, 5, opt)
	b := trace(scenario(), glitch.TimingPhase, 5, opt)
	assert.Equal(t, a.Events, b.Events)
}

func TestTraceFrameAndYAML(t *testing.T) {
	rep := trace(scenario(), glitch.TimingPhase, 3, options{
		duration: time.Second,
		tick:     10 * time.Millisecond,
		frameAt:  50 * time.Millisecond,
		width:    200,
		height:   400,
		samples:  true,
	})
	require.NotNil(t, rep.Frame)
	assert.Equal(t, int64(50), rep.Frame.AtMS)
	assert.Equal(t, "glitching", rep.Frame.Phase)
	assert.Contains(t, rep.Frame.Ops, "layer 0.5")

	var buf bytes.Buffer
	require.NoError(t, write(&buf, rep))

	var back map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, "phase", back["timing"])
	assert.Contains(t, back, "events")
	assert.Contains(t, back, "frame")
}
