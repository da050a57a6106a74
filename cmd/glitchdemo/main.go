// glitchdemo shows the glitch effect in an ebiten window: a full-screen
// effect over a raster scene, plus two words comparing the timing backends.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"glitchfx/glitch"
	"glitchfx/internal/config"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML file for the full-screen effect")
		seed       = flag.Uint64("seed", 0, "random seed, 0 seeds from the clock")
		timing     = flag.String("timing", "timer", "timing backend of the full-screen effect: timer | phase")
		musicPath  = flag.String("music", "", "mp3 to loop in the background")
		logoPath   = flag.String("logo", "", "32x32 PNG for the sprites")
		backPath   = flag.String("back", "", "PNG tile for the background strip")
		debug      = flag.Bool("debug", false, "debug logging and overlay")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	*debug = *debug || os.Getenv("DEBUG") == "1"
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	kind, err := glitch.ParseTimingKind(*timing)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -timing")
	}
	full := glitch.DefaultConfig()
	full.InitialDelay = 1500 * time.Millisecond
	full.GlitchDuration = 300 * time.Millisecond
	full.IdleInterval = 1500 * time.Millisecond
	if *configPath != "" {
		f, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("config load failed")
		}
		full = f.Effect()
		if f.Timing != "" {
			kind = f.Kind()
		}
		if f.Seed != 0 {
			*seed = f.Seed
		}
	}

	word := glitch.DefaultConfig()
	word.InitialDelay = 500 * time.Millisecond
	word.GlitchDuration = 500 * time.Millisecond
	word.IdleInterval = 1000 * time.Millisecond

	back := rasterBack()
	if *backPath != "" {
		tile, err := loadPNG(*backPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *backPath).Msg("background load failed")
		}
		back = tileBack(tile)
	}
	logo := defaultLogo()
	if *logoPath != "" {
		if logo, err = loadPNG(*logoPath); err != nil {
			log.Fatal().Err(err).Str("path", *logoPath).Msg("logo load failed")
		}
		log.Debug().Stringer("size", logo.Bounds().Size()).Msg("logo loaded")
	}

	opts := []glitch.Option{
		glitch.WithTiming(kind),
		glitch.WithLogger(log.With().Str("effect", "screen").Logger()),
	}
	if *seed != 0 {
		opts = append(opts, glitch.WithSeed(*seed))
	}
	game := NewGame(glitch.NewController(full, opts...), word, *seed, back, logo)
	game.setDebug(*debug)

	if *musicPath != "" {
		game.audioContext = audio.NewContext(sampleRate)
		player, f, err := loadMusic(game.audioContext, *musicPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *musicPath).Msg("music load failed")
		}
		defer f.Close()
		game.player = player
		player.Play()
	}
	defer game.CloseAudio()

	log.Info().Str("timing", string(kind)).Uint64("seed", *seed).Msg("glitchdemo started")
	ebiten.SetWindowSize(screenWidth*zoom, screenHeight*zoom)
	ebiten.SetWindowTitle("GLITCH EFFECT - EBITEN")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}
