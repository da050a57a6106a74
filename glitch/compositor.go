package glitch

import "math"

// GhostAlpha is the opacity of the two chromatic ghost copies.
const GhostAlpha = 0.5

// Surface is the drawing context the compositor works on. Any 2D API with a
// transform stack, rectangular clipping and opacity groups can implement it.
//
// Translate and ClipRect act on the current state and are undone by the
// matching Restore. ClipRect takes coordinates in the current (translated)
// space and intersects with the current clip. BeginLayer starts an opacity
// group that EndLayer composites onto the parent with the given alpha.
type Surface interface {
	Size() (width, height float64)
	Save()
	Restore()
	Translate(dx, dy float64)
	ClipRect(x0, y0, x1, y1 float64)
	BeginLayer(alpha float64)
	EndLayer()
}

// Composite draws one frame of the effect. paint must draw the content into
// dst exactly as it would look without the effect; it is called once for
// idle parameters, and otherwise once per ghost, once for the content itself
// and once per slice.
func Composite(dst Surface, p Parameters, paint func()) {
	if p.IsIdle() {
		paint()
		return
	}

	w, h := dst.Size()

	dst.Save()
	defer dst.Restore()
	dst.Translate(p.OffsetX, p.OffsetY)

	if p.ChromaticOffset != 0 {
		ghost(dst, p.ChromaticOffset, paint)
		ghost(dst, -p.ChromaticOffset, paint)
	}

	paint()

	for _, s := range p.Slices {
		top := clamp01(s.Top) * h
		bottom := clamp01(math.Max(s.Top, s.Bottom)) * h
		dst.Save()
		dst.ClipRect(0, top, w, bottom)
		dst.Translate(s.Offset, 0)
		paint()
		dst.Restore()
	}
}

func ghost(dst Surface, dx float64, paint func()) {
	dst.Save()
	defer dst.Restore()
	dst.Translate(dx, 0)
	dst.BeginLayer(GhostAlpha)
	paint()
	dst.EndLayer()
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
