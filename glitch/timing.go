package glitch

import (
	"fmt"
	"time"
)

// Timing decides, for a time measured from the moment the effect becomes
// active, whether the cycle is in its glitching part.
//
// Two backends exist and they agree on every phase boundary: TimerTiming
// chains one-shot deadlines, PhaseTiming reads a repeating 0..1 progress ramp.
type Timing interface {
	Glitching(t time.Duration) bool
}

// TimingKind names a Timing backend.
type TimingKind string

const (
	TimingTimer TimingKind = "timer"
	TimingPhase TimingKind = "phase"
)

// ParseTimingKind accepts "timer", "phase" or the empty string (timer).
func ParseTimingKind(s string) (TimingKind, error) {
	switch TimingKind(s) {
	case "", TimingTimer:
		return TimingTimer, nil
	case TimingPhase:
		return TimingPhase, nil
	}
	return "", fmt.Errorf("glitch: unknown timing %q", s)
}

// NewTiming builds the backend of the given kind for cfg. Unknown kinds fall
// back to the timer backend.
func NewTiming(kind TimingKind, cfg Config) Timing {
	cfg = cfg.Normalize()
	if kind == TimingPhase {
		return NewPhaseTiming(cfg.GlitchDuration, cfg.IdleInterval)
	}
	return NewTimerTiming(cfg.GlitchDuration, cfg.IdleInterval)
}

// TimerTiming is the free-running backend. It behaves like a loop that
// glitches, waits glitch, idles, waits idle, and starts over.
type TimerTiming struct {
	glitch, idle time.Duration

	started   bool
	glitching bool
	deadline  time.Duration
}

func NewTimerTiming(glitch, idle time.Duration) *TimerTiming {
	return &TimerTiming{glitch: clampDuration(glitch), idle: clampDuration(idle)}
}

func (tt *TimerTiming) Glitching(t time.Duration) bool {
	if tt.glitch+tt.idle <= 0 {
		return false
	}
	if !tt.started {
		tt.started = true
		tt.glitching = true
		tt.deadline = tt.glitch
	}
	// Deadlines chain from the previous deadline, not from t, so late ticks
	// do not drift the cycle.
	for t >= tt.deadline {
		tt.glitching = !tt.glitching
		if tt.glitching {
			tt.deadline += tt.glitch
		} else {
			tt.deadline += tt.idle
		}
	}
	return tt.glitching
}

// PhaseTiming is the progress-driven backend. It is stateless.
type PhaseTiming struct {
	glitch, period time.Duration
}

func NewPhaseTiming(glitch, idle time.Duration) *PhaseTiming {
	glitch = clampDuration(glitch)
	return &PhaseTiming{glitch: glitch, period: glitch + clampDuration(idle)}
}

// Period is the length of one ramp.
func (pt *PhaseTiming) Period() time.Duration {
	return pt.period
}

// Progress returns the position of t inside the current ramp, in [0, 1).
func (pt *PhaseTiming) Progress(t time.Duration) float64 {
	if pt.period <= 0 || t < 0 {
		return 0
	}
	return float64(t%pt.period) / float64(pt.period)
}

func (pt *PhaseTiming) Glitching(t time.Duration) bool {
	if pt.period <= 0 {
		return false
	}
	return pt.Progress(t) < float64(pt.glitch)/float64(pt.period)
}
