package main

import (
	"fmt"
	"image"
	"math"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"glitchfx/glitch"
	"glitchfx/internal/ebitensurface"
)

const (
	screenWidth  = 416
	screenHeight = 276
	zoom         = 2
	backHeight   = 64
	sampleRate   = 44100
	nbSprites    = 10
	titleScale   = 3
)

const title = "GLITCH EFFECT"

type Game struct {
	audioContext *audio.Context
	player       *audio.Player

	start     time.Time
	iteration float64
	ctrSprite float64
	sprites   []*Sprite
	debug     bool

	back  *ebiten.Image
	logo  *ebiten.Image
	title *ebiten.Image

	// content is drawn undistorted, then composited onto mainCanvas
	// through the full-screen effect.
	content    *ebiten.Image
	mainCanvas *ebiten.Image
	effect     *glitch.Controller
	surface    *ebitensurface.Surface
	words      []*widget
}

// NewGame builds the scene. full drives the whole screen; the two words
// below the title run the same config on each timing backend.
func NewGame(full *glitch.Controller, word glitch.Config, seed uint64, back, logo *ebiten.Image) *Game {
	g := &Game{
		start:      time.Now(),
		sprites:    newSprites(nbSprites),
		back:       back,
		logo:       logo,
		content:    ebiten.NewImage(screenWidth, screenHeight),
		mainCanvas: ebiten.NewImage(screenWidth, screenHeight),
		effect:     full,
	}
	g.surface = ebitensurface.New(g.mainCanvas)

	g.title = ebiten.NewImage(len(title)*charWidth, charHeight)
	ebitenutil.DebugPrint(g.title, title)

	y := float64(screenHeight)/2 + 24
	for i, kind := range []glitch.TimingKind{glitch.TimingTimer, glitch.TimingPhase} {
		opts := []glitch.Option{
			glitch.WithTiming(kind),
			glitch.WithLogger(log.With().Str("effect", string(kind)).Logger()),
		}
		if seed != 0 {
			opts = append(opts, glitch.WithSeed(seed+uint64(i)+1))
		}
		name := strings.ToUpper(string(kind))
		w := newWidget(string(kind), name, glitch.NewController(word, opts...), 0, y, 2)
		if i == 0 {
			w.x = screenWidth/2 - 16 - w.Width()
		} else {
			w.x = screenWidth/2 + 16
		}
		g.words = append(g.words, w)
	}
	return g
}

func (g *Game) setDebug(on bool) {
	g.debug = on
	level := zerolog.InfoLevel
	if on {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Info().Bool("debug", on).Msg("debug mode")
}

func (g *Game) Update() error {
	g.iteration = math.Floor(time.Since(g.start).Seconds() * 60)
	g.ctrSprite += 0.0253
	for _, s := range g.sprites {
		s.Update(g.ctrSprite)
	}

	g.effect.Update()
	for _, w := range g.words {
		w.ctrl.Update()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) && g.player != nil {
		if g.player.IsPlaying() {
			g.player.Pause()
		} else {
			g.player.Play()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.setDebug(!g.debug)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) drawContent() {
	g.content.Clear()

	// background lines bounce through the raster strip
	bounce := math.Floor(math.Abs(30.1 * math.Sin(toRadians(math.Mod(g.iteration, 42)*4.26))))
	for line := 0; line < screenHeight; line++ {
		y := int(math.Mod(float64(line)+bounce, backHeight))
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(0, float64(line))
		g.content.DrawImage(g.back.SubImage(image.Rect(0, y, screenWidth, y+1)).(*ebiten.Image), op)
	}

	for _, s := range g.sprites {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(s.X-spriteHalf, s.Y-spriteHalf)
		g.content.DrawImage(g.logo, op)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(titleScale, titleScale)
	op.GeoM.Translate(
		(screenWidth-float64(g.title.Bounds().Dx())*titleScale)/2,
		screenHeight/2-charHeight*titleScale,
	)
	g.content.DrawImage(g.title, op)

	for _, w := range g.words {
		w.draw(g.content)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawContent()

	g.mainCanvas.Clear()
	g.surface.Reset(g.mainCanvas)
	g.effect.Render(g.surface, func() { g.surface.DrawImage(g.content, nil) })

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(zoom, zoom)
	screen.DrawImage(g.mainCanvas, op)

	if g.debug {
		ebitenutil.DebugPrint(screen, g.status())
	}
}

func (g *Game) status() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "TPS %.0f\n", ebiten.ActualTPS())
	fmt.Fprintf(&sb, "screen %s #%d %s\n", g.effect.Phase(), g.effect.Cycles(), g.effect.Parameters())
	for _, w := range g.words {
		fmt.Fprintf(&sb, "%s %s #%d\n", w.name, w.ctrl.Phase(), w.ctrl.Cycles())
	}
	return sb.String()
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth * zoom, screenHeight * zoom
}

func (g *Game) CloseAudio() {
	if g.player != nil {
		g.player.Close()
	}
}
