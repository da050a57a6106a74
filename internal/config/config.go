package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"glitchfx/glitch"
)

// Range is an inclusive-exclusive millisecond range.
type Range struct {
	Min int64 `yaml:"min"`
	Max int64 `yaml:"max"`
}

// File is the on-disk description of one effect. Pointer fields are optional
// and fall back to the glitch defaults when absent.
type File struct {
	Enabled          *bool  `yaml:"enabled,omitempty"`
	InitialDelayMS   int64  `yaml:"initial_delay_ms,omitempty"`
	GlitchDurationMS *int64 `yaml:"glitch_duration_ms,omitempty"`
	IdleIntervalMS   *int64 `yaml:"idle_interval_ms,omitempty"`
	ResampleMS       *Range `yaml:"resample_ms,omitempty"`
	Timing           string `yaml:"timing,omitempty"` // "timer" | "phase"
	Seed             uint64 `yaml:"seed,omitempty"`   // 0 = seed from the clock
}

func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func Parse(b []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	if _, err := glitch.ParseTimingKind(f.Timing); err != nil {
		return nil, err
	}
	return &f, nil
}

func Save(path string, f *File) error {
	b, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// FromEffect describes cfg as a File.
func FromEffect(cfg glitch.Config, kind glitch.TimingKind, seed uint64) *File {
	enabled := cfg.Enabled
	glitchMS := cfg.GlitchDuration.Milliseconds()
	idleMS := cfg.IdleInterval.Milliseconds()
	return &File{
		Enabled:          &enabled,
		InitialDelayMS:   cfg.InitialDelay.Milliseconds(),
		GlitchDurationMS: &glitchMS,
		IdleIntervalMS:   &idleMS,
		ResampleMS:       &Range{Min: cfg.ResampleMin.Milliseconds(), Max: cfg.ResampleMax.Milliseconds()},
		Timing:           string(kind),
		Seed:             seed,
	}
}

// Effect returns the glitch config described by f. Values are not clamped
// here; the controller normalizes them.
func (f *File) Effect() glitch.Config {
	cfg := glitch.DefaultConfig()
	if f == nil {
		return cfg
	}
	if f.Enabled != nil {
		cfg.Enabled = *f.Enabled
	}
	cfg.InitialDelay = ms(f.InitialDelayMS)
	if f.GlitchDurationMS != nil {
		cfg.GlitchDuration = ms(*f.GlitchDurationMS)
	}
	if f.IdleIntervalMS != nil {
		cfg.IdleInterval = ms(*f.IdleIntervalMS)
	}
	if f.ResampleMS != nil {
		cfg.ResampleMin = ms(f.ResampleMS.Min)
		cfg.ResampleMax = ms(f.ResampleMS.Max)
	}
	return cfg
}

// Kind returns the timing backend, defaulting to the timer.
func (f *File) Kind() glitch.TimingKind {
	if f == nil {
		return glitch.TimingTimer
	}
	k, err := glitch.ParseTimingKind(f.Timing)
	if err != nil {
		return glitch.TimingTimer
	}
	return k
}

// Options returns the controller options implied by f.
func (f *File) Options() []glitch.Option {
	opts := []glitch.Option{glitch.WithTiming(f.Kind())}
	if f != nil && f.Seed != 0 {
		opts = append(opts, glitch.WithSeed(f.Seed))
	}
	return opts
}

func ms(v int64) time.Duration {
	return time.Duration(v) * time.Millisecond
}
