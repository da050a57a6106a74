package glitch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tick = 10 * time.Millisecond

type transition struct {
	at      time.Duration
	started bool
}

func runScheduler(s *Scheduler, until time.Duration) (trans []transition, resamples []time.Duration) {
	return runSchedulerFrom(s, 0, until)
}

func scenarioConfig() Config {
	cfg := DefaultConfig()
	cfg.GlitchDuration = 200 * time.Millisecond
	cfg.IdleInterval = 300 * time.Millisecond
	return cfg
}

func TestSchedulerCycleBoundaries(t *testing.T) {
	want := []transition{
		{at: 0, started: true},
		{at: 200 * time.Millisecond},
		{at: 500 * time.Millisecond, started: true},
		{at: 700 * time.Millisecond},
	}
	for _, kind := range []TimingKind{TimingTimer, TimingPhase} {
		t.Run(string(kind), func(t *testing.T) {
			cfg := scenarioConfig()
			s := NewScheduler(cfg, NewTiming(kind, cfg), NewRand(1))

			trans, _ := runScheduler(s, time.Second)

			assert.Equal(t, want, trans)
			assert.Equal(t, 2, s.Cycles())
		})
	}
}

func TestSchedulerBackendsAgree(t *testing.T) {
	cases := []Config{
		scenarioConfig(),
		{Enabled: true, InitialDelay: 35 * time.Millisecond, GlitchDuration: 70 * time.Millisecond, IdleInterval: 130 * time.Millisecond},
		{Enabled: true, GlitchDuration: 0, IdleInterval: 100 * time.Millisecond},
		{Enabled: true, GlitchDuration: 100 * time.Millisecond, IdleInterval: 0},
		{Enabled: true},
	}
	for i, cfg := range cases {
		timer := NewScheduler(cfg, NewTiming(TimingTimer, cfg), NewRand(9))
		phase := NewScheduler(cfg, NewTiming(TimingPhase, cfg), NewRand(9))
		for now := time.Duration(0); now < 3*time.Second; now += 5 * time.Millisecond {
			require.Equal(t, timer.Advance(now), phase.Advance(now), "case %d at %v", i, now)
		}
	}
}

func TestSchedulerInitialDelayGate(t *testing.T) {
	cfg := scenarioConfig()
	cfg.InitialDelay = 250 * time.Millisecond
	s := NewScheduler(cfg, nil, NewRand(2))

	for now := time.Duration(0); now < cfg.InitialDelay; now += tick {
		ev := s.Advance(now)
		require.Equal(t, Event{Phase: PhaseIdle}, ev, "at %v", now)
		require.False(t, s.Open())
	}

	ev := s.Advance(cfg.InitialDelay)
	assert.True(t, s.Open())
	assert.True(t, ev.Started)
	assert.True(t, ev.Resample)
	assert.Equal(t, PhaseGlitching, ev.Phase)

	trans, _ := runSchedulerFrom(s, cfg.InitialDelay+tick, cfg.InitialDelay+time.Second)
	assert.Equal(t, []transition{
		{at: cfg.InitialDelay + 200*time.Millisecond},
		{at: cfg.InitialDelay + 500*time.Millisecond, started: true},
		{at: cfg.InitialDelay + 700*time.Millisecond},
	}, trans)
}

func runSchedulerFrom(s *Scheduler, from, until time.Duration) (trans []transition, resamples []time.Duration) {
	for now := from; now < until; now += tick {
		ev := s.Advance(now)
		if ev.Started {
			trans = append(trans, transition{at: now, started: true})
		}
		if ev.Ended {
			trans = append(trans, transition{at: now})
		}
		if ev.Resample {
			resamples = append(resamples, now)
		}
	}
	return trans, resamples
}

func TestSchedulerDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	rng := &scripted{}
	s := NewScheduler(cfg, nil, rng)

	trans, resamples := runScheduler(s, 10*time.Second)

	assert.Empty(t, trans)
	assert.Empty(t, resamples)
	assert.Empty(t, rng.log, "disabled scheduler must not draw")
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.False(t, s.Open())
}

func TestSchedulerResampleJitter(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		cfg := scenarioConfig()
		s := NewScheduler(cfg, nil, NewRand(seed))

		_, resamples := runScheduler(s, cfg.GlitchDuration)

		require.GreaterOrEqual(t, len(resamples), 2, "seed %d", seed)
		require.LessOrEqual(t, len(resamples), 6, "seed %d", seed)
		assert.Equal(t, time.Duration(0), resamples[0])
		for i := 1; i < len(resamples); i++ {
			gap := resamples[i] - resamples[i-1]
			assert.GreaterOrEqual(t, gap, cfg.ResampleMin, "seed %d", seed)
			// one tick of lateness on top of the exclusive upper bound
			assert.LessOrEqual(t, gap, cfg.ResampleMax+tick, "seed %d", seed)
		}
	}
}

func TestSchedulerNoResampleWhileIdle(t *testing.T) {
	cfg := scenarioConfig()
	s := NewScheduler(cfg, nil, NewRand(4))

	_, resamples := runScheduler(s, time.Second)

	for _, at := range resamples {
		inBurst := at%cfg.Period() < cfg.GlitchDuration
		assert.True(t, inBurst, "resample at %v outside a burst", at)
	}
}

func TestSchedulerNegativeDurations(t *testing.T) {
	cfg := Config{
		Enabled:        true,
		InitialDelay:   -100 * time.Millisecond,
		GlitchDuration: -200 * time.Millisecond,
		IdleInterval:   -300 * time.Millisecond,
		ResampleMin:    -1,
		ResampleMax:    -1,
	}
	s := NewScheduler(cfg, nil, NewRand(1))

	assert.NotPanics(t, func() { runScheduler(s, time.Second) })
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.True(t, s.Open())
}

func TestConfigNormalize(t *testing.T) {
	cfg := Config{
		InitialDelay:   -time.Second,
		GlitchDuration: -time.Second,
		IdleInterval:   time.Second,
		ResampleMin:    80 * time.Millisecond,
		ResampleMax:    40 * time.Millisecond,
	}.Normalize()

	assert.Zero(t, cfg.InitialDelay)
	assert.Zero(t, cfg.GlitchDuration)
	assert.Equal(t, time.Second, cfg.IdleInterval)
	assert.Equal(t, 80*time.Millisecond, cfg.ResampleMax)
	assert.Equal(t, time.Second, cfg.Period())
}

func TestPhaseTimingProgress(t *testing.T) {
	pt := NewPhaseTiming(200*time.Millisecond, 300*time.Millisecond)

	assert.Equal(t, 500*time.Millisecond, pt.Period())
	assert.InDelta(t, 0.0, pt.Progress(0), 1e-12)
	assert.InDelta(t, 0.5, pt.Progress(250*time.Millisecond), 1e-12)
	assert.InDelta(t, 0.2, pt.Progress(600*time.Millisecond), 1e-12)
	assert.True(t, pt.Glitching(199*time.Millisecond))
	assert.False(t, pt.Glitching(200*time.Millisecond))
	assert.True(t, pt.Glitching(500*time.Millisecond))
}

func TestParseTimingKind(t *testing.T) {
	k, err := ParseTimingKind("")
	require.NoError(t, err)
	assert.Equal(t, TimingTimer, k)

	k, err = ParseTimingKind("phase")
	require.NoError(t, err)
	assert.Equal(t, TimingPhase, k)

	_, err = ParseTimingKind("animate")
	assert.Error(t, err)
}
