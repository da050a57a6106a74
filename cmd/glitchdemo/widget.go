package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"glitchfx/glitch"
	"glitchfx/internal/ebitensurface"
)

// Debug font cell size.
const (
	charWidth  = 6
	charHeight = 16
)

// Room around widget content for offsets and ghosts.
const (
	padX = glitch.MaxOffsetX + max(glitch.MaxChromaticOffset, glitch.MaxSliceOffset)
	padY = glitch.MaxOffsetY + 2
)

// widget is a piece of text with its own glitch effect.
type widget struct {
	name    string
	ctrl    *glitch.Controller
	src     *ebiten.Image
	out     *ebiten.Image
	surface *ebitensurface.Surface
	x, y    float64
	scale   float64
}

func newWidget(name, text string, ctrl *glitch.Controller, x, y, scale float64) *widget {
	src := ebiten.NewImage(len(text)*charWidth, charHeight)
	ebitenutil.DebugPrint(src, text)
	out := ebiten.NewImage(src.Bounds().Dx()+2*padX, charHeight+2*padY)
	return &widget{
		name:    name,
		ctrl:    ctrl,
		src:     src,
		out:     out,
		surface: ebitensurface.New(out),
		x:       x,
		y:       y,
		scale:   scale,
	}
}

// Width is the on-screen width of the text.
func (w *widget) Width() float64 {
	return float64(w.src.Bounds().Dx()) * w.scale
}

func (w *widget) draw(dst *ebiten.Image) {
	w.out.Clear()
	w.surface.Reset(w.out)
	w.ctrl.Render(w.surface, func() {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(padX, padY)
		w.surface.DrawImage(w.src, op)
	})

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-padX, -padY)
	op.GeoM.Scale(w.scale, w.scale)
	op.GeoM.Translate(w.x, w.y)
	dst.DrawImage(w.out, op)
}
