package glitch

import (
	"fmt"
	"math"
	"strconv"
)

// Rect is an axis-aligned rectangle in device coordinates.
type Rect struct {
	X0 float64 `yaml:"x0"`
	Y0 float64 `yaml:"y0"`
	X1 float64 `yaml:"x1"`
	Y1 float64 `yaml:"y1"`
}

func (r Rect) intersect(o Rect) Rect {
	r = Rect{
		X0: math.Max(r.X0, o.X0),
		Y0: math.Max(r.Y0, o.Y0),
		X1: math.Min(r.X1, o.X1),
		Y1: math.Min(r.Y1, o.Y1),
	}
	if r.X1 < r.X0 {
		r.X1 = r.X0
	}
	if r.Y1 < r.Y0 {
		r.Y1 = r.Y0
	}
	return r
}

// PaintCall is the drawing state at one invocation of the paint callback.
type PaintCall struct {
	DX    float64 `yaml:"dx"`
	DY    float64 `yaml:"dy"`
	Alpha float64 `yaml:"alpha"`
	Clip  Rect    `yaml:"clip"`
	Layer int     `yaml:"layer"`
}

type recState struct {
	dx, dy float64
	alpha  float64
	clip   Rect
	layer  int
}

// Recorder is a Surface that draws nothing and remembers everything. Use
// Paint as the paint callback.
type Recorder struct {
	w, h  float64
	cur   recState
	stack []recState
	ops   []string
	calls []PaintCall
}

func NewRecorder(width, height float64) *Recorder {
	r := &Recorder{w: width, h: height}
	r.Reset()
	return r
}

// Reset forgets all recorded operations and state.
func (r *Recorder) Reset() {
	r.cur = recState{alpha: 1, clip: Rect{X1: r.w, Y1: r.h}}
	r.stack = r.stack[:0]
	r.ops = nil
	r.calls = nil
}

func (r *Recorder) Size() (float64, float64) { return r.w, r.h }

func (r *Recorder) Save() {
	r.stack = append(r.stack, r.cur)
	r.ops = append(r.ops, "save")
}

func (r *Recorder) Restore() {
	if n := len(r.stack); n > 0 {
		r.cur = r.stack[n-1]
		r.stack = r.stack[:n-1]
	}
	r.ops = append(r.ops, "restore")
}

func (r *Recorder) Translate(dx, dy float64) {
	r.cur.dx += dx
	r.cur.dy += dy
	r.ops = append(r.ops, "translate "+num(dx)+" "+num(dy))
}

func (r *Recorder) ClipRect(x0, y0, x1, y1 float64) {
	dev := Rect{X0: x0 + r.cur.dx, Y0: y0 + r.cur.dy, X1: x1 + r.cur.dx, Y1: y1 + r.cur.dy}
	r.cur.clip = r.cur.clip.intersect(dev)
	r.ops = append(r.ops, fmt.Sprintf("clip %s %s %s %s", num(x0), num(y0), num(x1), num(y1)))
}

func (r *Recorder) BeginLayer(alpha float64) {
	r.stack = append(r.stack, r.cur)
	r.cur.alpha *= alpha
	r.cur.layer++
	r.ops = append(r.ops, "layer "+num(alpha))
}

func (r *Recorder) EndLayer() {
	if n := len(r.stack); n > 0 {
		r.cur = r.stack[n-1]
		r.stack = r.stack[:n-1]
	}
	r.ops = append(r.ops, "endlayer")
}

// Paint records one content paint at the current state.
func (r *Recorder) Paint() {
	r.calls = append(r.calls, PaintCall{
		DX:    r.cur.dx,
		DY:    r.cur.dy,
		Alpha: r.cur.alpha,
		Clip:  r.cur.clip,
		Layer: r.cur.layer,
	})
	r.ops = append(r.ops, "paint")
}

// Ops returns the operation log.
func (r *Recorder) Ops() []string { return r.ops }

// Calls returns every recorded paint.
func (r *Recorder) Calls() []PaintCall { return r.calls }

// Depth returns the number of unbalanced Save/BeginLayer calls.
func (r *Recorder) Depth() int { return len(r.stack) }

func num(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}
