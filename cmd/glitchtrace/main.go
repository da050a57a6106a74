// glitchtrace replays a glitch effect on a simulated clock and prints its
// timeline, plus the draw operations of one frame, as YAML.
package main

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"glitchfx/glitch"
	"glitchfx/internal/config"
)

type traceEvent struct {
	AtMS   int64              `yaml:"at_ms"`
	Kind   string             `yaml:"kind"`
	Params *glitch.Parameters `yaml:"params,omitempty"`
}

type frameDump struct {
	AtMS  int64              `yaml:"at_ms"`
	Phase string             `yaml:"phase"`
	Ops   []string           `yaml:"ops"`
	Calls []glitch.PaintCall `yaml:"calls"`
}

type report struct {
	Seed   uint64       `yaml:"seed"`
	Timing string       `yaml:"timing"`
	Effect *config.File `yaml:"effect"`
	Cycles int          `yaml:"cycles"`
	Events []traceEvent `yaml:"events"`
	Frame  *frameDump   `yaml:"frame,omitempty"`
}

type options struct {
	duration time.Duration
	tick     time.Duration
	frameAt  time.Duration
	width    float64
	height   float64
	samples  bool
}

func trace(cfg glitch.Config, kind glitch.TimingKind, seed uint64, opt options) report {
	ctrl := glitch.NewController(cfg,
		glitch.WithSeed(seed),
		glitch.WithTiming(kind),
		glitch.WithLogger(log.Logger),
	)
	rep := report{
		Seed:   seed,
		Timing: string(kind),
		Effect: config.FromEffect(ctrl.Config(), kind, seed),
	}

	prevPhase := ctrl.Phase()
	prevSamples := 0
	for now := time.Duration(0); now < opt.duration; now += opt.tick {
		p := ctrl.Advance(now)
		ms := now.Milliseconds()

		if ph := ctrl.Phase(); ph != prevPhase {
			what := "start"
			if ph == glitch.PhaseIdle {
				what = "end"
			}
			rep.Events = append(rep.Events, traceEvent{AtMS: ms, Kind: what})
			prevPhase = ph
		}
		if n := ctrl.Samples(); n != prevSamples {
			ev := traceEvent{AtMS: ms, Kind: "sample"}
			if opt.samples {
				c := p.Clone()
				ev.Params = &c
			}
			rep.Events = append(rep.Events, ev)
			prevSamples = n
		}

		if opt.frameAt >= 0 && rep.Frame == nil && now >= opt.frameAt {
			rec := glitch.NewRecorder(opt.width, opt.height)
			ctrl.Render(rec, rec.Paint)
			rep.Frame = &frameDump{AtMS: ms, Phase: ctrl.Phase().String(), Ops: rec.Ops(), Calls: rec.Calls()}
		}
	}
	rep.Cycles = ctrl.Cycles()
	return rep
}

func write(w io.Writer, rep report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return err
	}
	return enc.Close()
}

func main() {
	var (
		configPath = flag.String("config", "", "effect YAML file")
		seed       = flag.Uint64("seed", 1, "random seed (config seed wins when set)")
		timing     = flag.String("timing", "timer", "timing backend: timer | phase")
		duration   = flag.Duration("duration", 5*time.Second, "simulated time")
		tick       = flag.Duration("tick", 16*time.Millisecond, "simulated frame interval")
		frameAt    = flag.Duration("frame", -1, "dump the draw operations of the first frame at or after this time")
		width      = flag.Float64("width", 320, "surface width for -frame")
		height     = flag.Float64("height", 200, "surface height for -frame")
		samples    = flag.Bool("samples", false, "include every sample's parameters")
		debug      = flag.Bool("debug", false, "log controller transitions to stderr")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug || os.Getenv("DEBUG") == "1" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := glitch.DefaultConfig()
	kind, err := glitch.ParseTimingKind(*timing)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -timing")
	}
	if *configPath != "" {
		f, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("config load failed")
		}
		cfg = f.Effect()
		if f.Timing != "" {
			kind = f.Kind()
		}
		if f.Seed != 0 {
			*seed = f.Seed
		}
	}
	if *tick <= 0 {
		log.Fatal().Dur("tick", *tick).Msg("tick must be positive")
	}

	rep := trace(cfg, kind, *seed, options{
		duration: *duration,
		tick:     *tick,
		frameAt:  *frameAt,
		width:    *width,
		height:   *height,
		samples:  *samples,
	})
	log.Info().Int("cycles", rep.Cycles).Int("events", len(rep.Events)).Msg("trace done")

	if err := write(os.Stdout, rep); err != nil {
		log.Fatal().Err(err).Msg("write failed")
	}
}
