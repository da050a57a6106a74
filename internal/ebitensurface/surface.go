// Package ebitensurface implements glitch.Surface on top of ebiten images.
//
// Translations accumulate in a GeoM, clips are applied with SubImage and
// opacity layers are rendered into pooled offscreen images that are drawn
// back with a scaled alpha.
package ebitensurface

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

type state struct {
	geom   ebiten.GeoM
	clip   image.Rectangle
	target *ebiten.Image
	alpha  float32 // alpha to composite target with on EndLayer
	layer  bool
}

// Surface draws onto one destination image. Call Reset at the start of
// every frame.
type Surface struct {
	dst    *ebiten.Image
	cur    state
	stack  []state
	layers []*ebiten.Image
	depth  int
}

func New(dst *ebiten.Image) *Surface {
	s := &Surface{}
	s.Reset(dst)
	return s
}

// Reset retargets the surface and clears its state stack.
func (s *Surface) Reset(dst *ebiten.Image) {
	s.dst = dst
	s.cur = state{clip: dst.Bounds(), target: dst, alpha: 1}
	s.stack = s.stack[:0]
	s.depth = 0
}

func (s *Surface) Size() (float64, float64) {
	b := s.dst.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (s *Surface) Save() {
	s.stack = append(s.stack, s.cur)
}

func (s *Surface) Restore() {
	n := len(s.stack)
	if n == 0 {
		return
	}
	s.cur = s.stack[n-1]
	s.stack = s.stack[:n-1]
}

func (s *Surface) Translate(dx, dy float64) {
	// content is translated before the existing transform
	var g ebiten.GeoM
	g.Translate(dx, dy)
	g.Concat(s.cur.geom)
	s.cur.geom = g
}

func (s *Surface) ClipRect(x0, y0, x1, y1 float64) {
	s.cur.clip = s.cur.clip.Intersect(DeviceRect(s.cur.geom, x0, y0, x1, y1))
}

func (s *Surface) BeginLayer(alpha float64) {
	s.Save()
	layer := s.layer(s.depth)
	layer.Clear()
	s.depth++
	s.cur.target = layer
	s.cur.alpha = float32(alpha)
	s.cur.layer = true
}

func (s *Surface) EndLayer() {
	if !s.cur.layer {
		return
	}
	layer, alpha := s.cur.target, s.cur.alpha
	s.Restore()
	s.depth--

	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(alpha)
	s.clipped().DrawImage(layer, op)
}

// DrawImage draws img with op under the current transform and clip. It is
// meant to be called from the content paint callback.
func (s *Surface) DrawImage(img *ebiten.Image, op *ebiten.DrawImageOptions) {
	if op == nil {
		op = &ebiten.DrawImageOptions{}
	}
	o := *op
	o.GeoM.Concat(s.cur.geom)
	s.clipped().DrawImage(img, &o)
}

// Target returns the image paint calls should go to and the transform to
// apply, for content that is not a single image.
func (s *Surface) Target() (*ebiten.Image, ebiten.GeoM) {
	return s.clipped(), s.cur.geom
}

func (s *Surface) clipped() *ebiten.Image {
	if s.cur.clip == s.cur.target.Bounds() {
		return s.cur.target
	}
	return s.cur.target.SubImage(s.cur.clip).(*ebiten.Image)
}

func (s *Surface) layer(depth int) *ebiten.Image {
	for len(s.layers) <= depth {
		s.layers = append(s.layers, nil)
	}
	b := s.dst.Bounds()
	if l := s.layers[depth]; l != nil && l.Bounds().Size() == b.Size() {
		return l
	}
	if old := s.layers[depth]; old != nil {
		old.Deallocate()
	}
	s.layers[depth] = ebiten.NewImage(b.Dx(), b.Dy())
	return s.layers[depth]
}

// DeviceRect maps a rectangle through g and returns the pixel rectangle
// covering it.
func DeviceRect(g ebiten.GeoM, x0, y0, x1, y1 float64) image.Rectangle {
	ax, ay := g.Apply(x0, y0)
	bx, by := g.Apply(x1, y1)
	return image.Rect(
		int(math.Floor(math.Min(ax, bx))),
		int(math.Floor(math.Min(ay, by))),
		int(math.Ceil(math.Max(ax, bx))),
		int(math.Ceil(math.Max(ay, by))),
	)
}
