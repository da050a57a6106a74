// Package noise plays a short burst of static each time a glitch starts.
package noise

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"glitchfx/glitch"
)

const sampleRate = beep.SampleRate(44100)

// Static is crackling white noise with a fast decay. Each sample is held for
// a random number of frames so the noise sounds digital rather than hissy.
type Static struct {
	rng    glitch.RandomStream
	length int
	gain   float64
	pos    int
	hold   int
	value  float64
}

// NewStatic creates d worth of static at sample rate sr.
func NewStatic(sr beep.SampleRate, d time.Duration, gain float64, rng glitch.RandomStream) *Static {
	return &Static{rng: rng, length: sr.N(d), gain: gain}
}

func (s *Static) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= s.length {
		return 0, false
	}
	for i := range samples {
		if s.pos >= s.length {
			return i, true
		}
		if s.hold <= 0 {
			s.value = s.rng.FloatRange(-1, 1)
			s.hold = s.rng.IntRange(1, 24)
		}
		s.hold--

		envelope := math.Exp(-5 * float64(s.pos) / float64(s.length))
		v := s.value * envelope * s.gain
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
	}
	return len(samples), true
}

func (s *Static) Err() error {
	return nil
}

// Player owns the speaker and mixes bursts into it.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rng         glitch.RandomStream
	duration    time.Duration
	gain        float64
	initialized bool
}

func NewPlayer(rng glitch.RandomStream, duration time.Duration, gain float64) *Player {
	return &Player{
		mixer:    &beep.Mixer{},
		rng:      rng,
		duration: duration,
		gain:     gain,
	}
}

// Initialize opens the audio device.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Burst queues one burst of static. It does nothing before Initialize.
func (p *Player) Burst() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s := NewStatic(sampleRate, p.duration, p.gain, p.rng)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close releases the audio device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}
