package glitch

import (
	"math/rand/v2"
	"time"
)

// RandomStream is the source of every random draw the effect makes.
//
// A controller owns exactly one stream and never reseeds it, so two
// controllers built with the same seed and driven with the same ticks
// produce the same distortion samples.
type RandomStream interface {
	// Float returns a value in [0, 1).
	Float() float64
	// FloatRange returns a value in [lo, hi).
	FloatRange(lo, hi float64) float64
	// IntRange returns a value in [lo, hi). It returns lo when hi <= lo.
	IntRange(lo, hi int) int
}

// Rand is the default RandomStream, a PCG generator.
type Rand struct {
	r    *rand.Rand
	seed uint64
}

// NewRand creates a deterministic stream for the given seed.
func NewRand(seed uint64) *Rand {
	return &Rand{
		r:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

// NewRandFromTime creates a stream seeded from the current time.
func NewRandFromTime() *Rand {
	return NewRand(uint64(time.Now().UnixNano()))
}

// Seed returns the seed the stream was created with.
func (r *Rand) Seed() uint64 {
	return r.seed
}

func (r *Rand) Float() float64 {
	return r.r.Float64()
}

func (r *Rand) FloatRange(lo, hi float64) float64 {
	return lo + r.r.Float64()*(hi-lo)
}

func (r *Rand) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.r.IntN(hi-lo)
}
