// glitchterm runs the glitch effect in a terminal: one full-screen effect
// over a banner plus two per-word effects comparing the timing backends.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"glitchfx/glitch"
	"glitchfx/internal/config"
	"glitchfx/internal/noise"
	"glitchfx/internal/termsurface"
)

var banner = []string{
	" ██████  ██      ██ ████████  ██████ ██   ██ ",
	"██       ██      ██    ██    ██      ██   ██ ",
	"██   ███ ██      ██    ██    ██      ███████ ",
	"██    ██ ██      ██    ██    ██      ██   ██ ",
	" ██████  ███████ ██    ██     ██████ ██   ██ ",
	"",
	"            E  F  F  E  C  T               ",
}

// effect is one controller and the content it distorts.
type effect struct {
	name    string
	ctrl    *glitch.Controller
	surface *termsurface.Surface
	grid    *termsurface.Grid
	phase   glitch.Phase
}

func (e *effect) draw() {
	e.ctrl.Render(e.surface, func() { e.surface.DrawGrid(e.grid, 0, 0) })
}

type app struct {
	screen  tcell.Screen
	clock   glitch.Clock
	effects []*effect
	player  *noise.Player
	paused  bool
}

func newApp(screen tcell.Screen, full glitch.Config, kind glitch.TimingKind, seed uint64, clock glitch.Clock) *app {
	a := &app{screen: screen, clock: clock}

	word := glitch.DefaultConfig()
	word.InitialDelay = 500 * time.Millisecond
	word.GlitchDuration = 500 * time.Millisecond
	word.IdleInterval = 1000 * time.Millisecond

	// words get their own streams derived from a fixed seed
	wordSeed := func(n uint64) uint64 {
		if seed == 0 {
			return 0
		}
		return seed + n
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	a.add("screen", full, kind, seed, termsurface.GridFromText(banner, style))
	a.add("timer", word, glitch.TimingTimer, wordSeed(1),
		termsurface.GridFromText([]string{"TIMER"}, tcell.StyleDefault.Foreground(tcell.ColorYellow)))
	a.add("phase", word, glitch.TimingPhase, wordSeed(2),
		termsurface.GridFromText([]string{"PHASE"}, tcell.StyleDefault.Foreground(tcell.ColorGreen)))

	w, h := screen.Size()
	a.layout(w, h)
	return a
}

func (a *app) add(name string, cfg glitch.Config, kind glitch.TimingKind, seed uint64, grid *termsurface.Grid) {
	opts := []glitch.Option{
		glitch.WithTiming(kind),
		glitch.WithClock(a.clock),
		glitch.WithLogger(log.With().Str("effect", name).Logger()),
	}
	if seed != 0 {
		opts = append(opts, glitch.WithSeed(seed))
	}
	surface := termsurface.New(a.screen, 0, 0, 1, 1)
	surface.GhostTint = [2]tcell.Color{tcell.ColorRed, tcell.ColorBlue}
	a.effects = append(a.effects, &effect{
		name:    name,
		ctrl:    glitch.NewController(cfg, opts...),
		surface: surface,
		grid:    grid,
	})
}

// layout centres the banner and puts the two words side by side under it.
// Each surface gets a margin so offsets have room to move.
func (a *app) layout(w, h int) {
	const margin = 3
	full := a.effects[0]
	bx := (w - full.grid.W) / 2
	by := (h-full.grid.H)/2 - 2
	full.surface.Reset(bx-margin, by-1, full.grid.W+2*margin, full.grid.H+2)

	wy := by + full.grid.H + 2
	for i, e := range a.effects[1:] {
		wx := w/2 - e.grid.W - 4
		if i == 1 {
			wx = w/2 + 4
		}
		e.surface.Reset(wx-margin, wy, e.grid.W+2*margin, 1)
	}
}

func (a *app) tick() {
	if a.paused {
		return
	}
	a.screen.Clear()
	for _, e := range a.effects {
		e.ctrl.Update()
		if ph := e.ctrl.Phase(); ph != e.phase {
			if ph == glitch.PhaseGlitching && a.player != nil && e == a.effects[0] {
				a.player.Burst()
			}
			e.phase = ph
		}
		e.draw()
	}
	a.status()
	a.screen.Show()
}

func (a *app) status() {
	_, h := a.screen.Size()
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	x := 0
	for _, e := range a.effects {
		text := fmt.Sprintf("%s:%s#%d  ", e.name, e.ctrl.Phase(), e.ctrl.Cycles())
		for _, r := range text {
			a.screen.SetContent(x, h-1, r, nil, style)
			x++
		}
	}
	for _, r := range "[space] pause  [q] quit" {
		a.screen.SetContent(x, h-1, r, nil, style)
		x++
	}
}

func (a *app) run() error {
	eventChan := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return nil
				}
				if ev.Rune() == ' ' {
					a.paused = !a.paused
					log.Debug().Bool("paused", a.paused).Msg("toggle pause")
				}
			case *tcell.EventResize:
				w, h := ev.Size()
				a.layout(w, h)
				a.screen.Sync()
			}
		case <-ticker.C:
			a.tick()
		}
	}
}

func main() {
	var (
		configPath = flag.String("config", "", "YAML file for the full-screen effect")
		seed       = flag.Uint64("seed", 0, "random seed, 0 seeds from the clock")
		sound      = flag.Bool("sound", false, "play static on each glitch")
		logPath    = flag.String("log", "", "write logs to this file")
		debug      = flag.Bool("debug", false, "debug logging")
	)
	flag.Parse()

	// The terminal is ours; logs go to a file or nowhere.
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = zerolog.Nop()
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug || os.Getenv("DEBUG") == "1" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	full := glitch.DefaultConfig()
	full.InitialDelay = 1500 * time.Millisecond
	full.GlitchDuration = 300 * time.Millisecond
	full.IdleInterval = 1500 * time.Millisecond
	kind := glitch.TimingTimer
	if *configPath != "" {
		f, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		full, kind = f.Effect(), f.Kind()
		if f.Seed != 0 {
			*seed = f.Seed
		}
	}

	screen, err := tcell.NewScreen()
	if err == nil {
		err = screen.Init()
	}
	if err != nil {
		log.Error().Err(err).Msg("screen init failed")
		fmt.Fprintf(os.Stderr, "screen: %v\n", err)
		os.Exit(1)
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset))
	screen.HideCursor()

	a := newApp(screen, full, kind, *seed, glitch.SystemClock{})
	if *sound {
		a.player = noise.NewPlayer(glitch.NewRandFromTime(), 120*time.Millisecond, 0.25)
		if err := a.player.Initialize(); err != nil {
			log.Warn().Err(err).Msg("audio unavailable")
			a.player = nil
		} else {
			defer a.player.Close()
		}
	}

	log.Info().Str("timing", string(kind)).Uint64("seed", *seed).Msg("glitchterm started")
	err = a.run()
	screen.Fini()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
