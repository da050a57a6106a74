package glitch

import "time"

// Phase is the state of a glitch cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseGlitching
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseGlitching:
		return "glitching"
	}
	return "unknown"
}

// Event is what one scheduler tick decided.
type Event struct {
	Phase Phase
	// Started is set on the tick that entered Glitching.
	Started bool
	// Ended is set on the tick that returned to Idle.
	Ended bool
	// Resample asks for a fresh distortion sample.
	Resample bool
}

// Scheduler is the Idle/Glitching state machine. It is driven by elapsed
// time only and owns no goroutines.
type Scheduler struct {
	cfg    Config
	timing Timing
	rng    RandomStream

	phase        Phase
	open         bool
	nextResample time.Duration
	cycles       int
	resamples    int
}

// NewScheduler creates a scheduler. rng is only used for the resample jitter
// and is normally shared with the sampler.
func NewScheduler(cfg Config, timing Timing, rng RandomStream) *Scheduler {
	cfg = cfg.Normalize()
	if timing == nil {
		timing = NewTiming(TimingTimer, cfg)
	}
	return &Scheduler{cfg: cfg, timing: timing, rng: rng}
}

// Advance moves the state machine to now, measured from the scheduler's
// creation. Time must not go backwards.
func (s *Scheduler) Advance(now time.Duration) Event {
	if !s.cfg.Enabled || now < s.cfg.InitialDelay {
		return Event{Phase: s.phase}
	}
	s.open = true

	glitching := s.timing.Glitching(now - s.cfg.InitialDelay)
	ev := Event{}
	switch {
	case glitching && s.phase == PhaseIdle:
		s.phase = PhaseGlitching
		s.cycles++
		ev.Started = true
		ev.Resample = true
	case !glitching && s.phase == PhaseGlitching:
		s.phase = PhaseIdle
		ev.Ended = true
	case glitching && now >= s.nextResample:
		ev.Resample = true
	}
	if ev.Resample {
		s.resamples++
		s.nextResample = now + s.jitter()
	}
	ev.Phase = s.phase
	return ev
}

func (s *Scheduler) jitter() time.Duration {
	lo := int(s.cfg.ResampleMin / time.Millisecond)
	hi := int(s.cfg.ResampleMax / time.Millisecond)
	return time.Duration(s.rng.IntRange(lo, hi)) * time.Millisecond
}

// Phase returns the current phase.
func (s *Scheduler) Phase() Phase { return s.phase }

// Open reports whether the initial delay has passed.
func (s *Scheduler) Open() bool { return s.open }

// Cycles returns how many bursts have started.
func (s *Scheduler) Cycles() int { return s.cycles }

// Resamples returns how many resample events have fired.
func (s *Scheduler) Resamples() int { return s.resamples }
