package glitch

import "time"

// Default timings.
const (
	DefaultGlitchDuration = 500 * time.Millisecond
	DefaultIdleInterval   = 2000 * time.Millisecond
	DefaultResampleMin    = 30 * time.Millisecond
	DefaultResampleMax    = 100 * time.Millisecond
)

// Config describes one effect. It is fixed for the lifetime of a Controller.
type Config struct {
	// Enabled false keeps the effect idle forever.
	Enabled bool
	// InitialDelay is the time before the first burst may start.
	InitialDelay time.Duration
	// GlitchDuration is the length of each burst.
	GlitchDuration time.Duration
	// IdleInterval is the rest time between bursts.
	IdleInterval time.Duration
	// ResampleMin and ResampleMax bound the jittered spacing between samples
	// inside a burst. The upper bound is exclusive.
	ResampleMin time.Duration
	ResampleMax time.Duration
}

// DefaultConfig returns an enabled config with the default timings.
func DefaultConfig() Config {
	return Config{
		Enabled:        true,
		GlitchDuration: DefaultGlitchDuration,
		IdleInterval:   DefaultIdleInterval,
		ResampleMin:    DefaultResampleMin,
		ResampleMax:    DefaultResampleMax,
	}
}

// Normalize clamps negative durations to zero and an inverted resample range
// to its lower bound. It never fails.
func (c Config) Normalize() Config {
	c.InitialDelay = clampDuration(c.InitialDelay)
	c.GlitchDuration = clampDuration(c.GlitchDuration)
	c.IdleInterval = clampDuration(c.IdleInterval)
	c.ResampleMin = clampDuration(c.ResampleMin)
	c.ResampleMax = clampDuration(c.ResampleMax)
	if c.ResampleMax < c.ResampleMin {
		c.ResampleMax = c.ResampleMin
	}
	return c
}

// Period is the length of one full glitch cycle.
func (c Config) Period() time.Duration {
	n := c.Normalize()
	return n.GlitchDuration + n.IdleInterval
}

func clampDuration(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
