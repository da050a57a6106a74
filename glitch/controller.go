package glitch

import (
	"time"

	"github.com/rs/zerolog"
)

// Controller is one glitch effect: a random stream, a scheduler and the
// current distortion sample. It is not safe for concurrent use; the host
// calls Advance (or Update) and Render from its frame loop.
type Controller struct {
	cfg    Config
	kind   TimingKind
	clock  Clock
	start  time.Time
	rng    RandomStream
	sched  *Scheduler
	params Parameters
	log    zerolog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithSeed seeds the controller's stream with a fixed value.
func WithSeed(seed uint64) Option {
	return func(c *Controller) { c.rng = NewRand(seed) }
}

// WithRandom replaces the controller's stream.
func WithRandom(rng RandomStream) Option {
	return func(c *Controller) { c.rng = rng }
}

// WithTiming selects the timing backend. The default is TimingTimer.
func WithTiming(kind TimingKind) Option {
	return func(c *Controller) { c.kind = kind }
}

// WithClock sets the clock read by Update. The default is SystemClock.
func WithClock(clock Clock) Option {
	return func(c *Controller) { c.clock = clock }
}

// WithLogger sets the logger used for phase changes and samples.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// NewController creates a controller for cfg. The clock's current time is
// the controller's time zero.
func NewController(cfg Config, opts ...Option) *Controller {
	c := &Controller{
		cfg:   cfg.Normalize(),
		kind:  TimingTimer,
		clock: SystemClock{},
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = NewRandFromTime()
	}
	c.start = c.clock.Now()
	c.sched = NewScheduler(c.cfg, NewTiming(c.kind, c.cfg), c.rng)
	return c
}

// Advance moves the effect to elapsed time since creation and returns the
// parameters to draw with.
func (c *Controller) Advance(elapsed time.Duration) Parameters {
	ev := c.sched.Advance(elapsed)
	if ev.Started {
		c.log.Debug().Dur("at", elapsed).Int("cycle", c.sched.Cycles()).Msg("glitch started")
	}
	switch {
	case ev.Ended:
		c.params = Parameters{}
		c.log.Debug().Dur("at", elapsed).Msg("glitch ended")
	case ev.Resample:
		c.params = Sample(c.rng)
		c.log.Debug().Dur("at", elapsed).Stringer("params", c.params).Msg("resampled")
	}
	return c.params
}

// Update advances the effect to the clock's current time.
func (c *Controller) Update() Parameters {
	return c.Advance(c.clock.Now().Sub(c.start))
}

// Render composites the content with the most recent sample.
func (c *Controller) Render(dst Surface, paint func()) {
	Composite(dst, c.params, paint)
}

// Parameters returns the current sample.
func (c *Controller) Parameters() Parameters { return c.params }

// Phase returns the scheduler's phase.
func (c *Controller) Phase() Phase { return c.sched.Phase() }

// Cycles returns how many bursts have started.
func (c *Controller) Cycles() int { return c.sched.Cycles() }

// Samples returns how many distortion samples have been drawn.
func (c *Controller) Samples() int { return c.sched.Resamples() }

// Config returns the normalized config.
func (c *Controller) Config() Config { return c.cfg }

// Timing returns the backend kind in use.
func (c *Controller) Timing() TimingKind { return c.kind }
