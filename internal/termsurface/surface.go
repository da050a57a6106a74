// Package termsurface implements glitch.Surface on a tcell screen.
//
// Effect coordinates are in device-independent pixels; every terminal cell
// counts as CellWidth x CellHeight of them. Opacity layers have no real
// blending in a terminal, so anything painted below full opacity is drawn
// dim, and its colour is tinted when a ghost tint is configured.
package termsurface

import (
	"math"

	"github.com/gdamore/tcell/v2"
)

// Default cell size in device-independent pixels.
const (
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0
)

// Screen is the part of tcell.Screen the surface needs.
type Screen interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

type rect struct{ x0, y0, x1, y1 int }

func (r rect) intersect(o rect) rect {
	r = rect{max(r.x0, o.x0), max(r.y0, o.y0), min(r.x1, o.x1), min(r.y1, o.y1)}
	if r.x1 < r.x0 {
		r.x1 = r.x0
	}
	if r.y1 < r.y0 {
		r.y1 = r.y0
	}
	return r
}

func (r rect) contains(x, y int) bool {
	return x >= r.x0 && x < r.x1 && y >= r.y0 && y < r.y1
}

type state struct {
	dx, dy float64 // pixels
	last   float64 // horizontal part of the latest Translate
	alpha  float64
	left   bool // painting the left-hand ghost
	clip   rect // cells, absolute
}

// Surface draws a region of a screen.
type Surface struct {
	CellWidth, CellHeight float64
	// GhostTint colours cells painted below full opacity. Ghosts shifted
	// right get the first colour, ghosts shifted left the second.
	// ColorDefault keeps the content's colour.
	GhostTint [2]tcell.Color

	screen Screen
	area   rect
	cur    state
	stack  []state
}

// New creates a surface covering w x h cells of screen starting at (x, y).
func New(screen Screen, x, y, w, h int) *Surface {
	s := &Surface{
		CellWidth:  DefaultCellWidth,
		CellHeight: DefaultCellHeight,
		GhostTint:  [2]tcell.Color{tcell.ColorDefault, tcell.ColorDefault},
		screen:     screen,
	}
	s.Reset(x, y, w, h)
	return s
}

// Reset moves the surface to a new area and clears its state.
func (s *Surface) Reset(x, y, w, h int) {
	s.area = rect{x, y, x + w, y + h}
	s.cur = state{alpha: 1, clip: s.area}
	s.stack = s.stack[:0]
}

func (s *Surface) Size() (float64, float64) {
	return float64(s.area.x1-s.area.x0) * s.CellWidth, float64(s.area.y1-s.area.y0) * s.CellHeight
}

func (s *Surface) Save() {
	s.stack = append(s.stack, s.cur)
}

func (s *Surface) Restore() {
	if n := len(s.stack); n > 0 {
		s.cur = s.stack[n-1]
		s.stack = s.stack[:n-1]
	}
}

func (s *Surface) Translate(dx, dy float64) {
	s.cur.dx += dx
	s.cur.dy += dy
	s.cur.last = dx
}

func (s *Surface) ClipRect(x0, y0, x1, y1 float64) {
	r := rect{
		x0: s.area.x0 + s.cellX(x0+s.cur.dx),
		y0: s.area.y0 + s.cellY(y0+s.cur.dy),
		x1: s.area.x0 + s.cellX(x1+s.cur.dx),
		y1: s.area.y0 + s.cellY(y1+s.cur.dy),
	}
	s.cur.clip = s.cur.clip.intersect(r)
}

func (s *Surface) BeginLayer(alpha float64) {
	s.Save()
	s.cur.alpha *= alpha
	s.cur.left = s.cur.last < 0
}

func (s *Surface) EndLayer() {
	s.Restore()
}

// DrawGrid paints g with its top-left corner at cell (x, y) of the surface,
// honouring the current translation, clip and opacity.
func (s *Surface) DrawGrid(g *Grid, x, y int) {
	ox := s.area.x0 + x + s.cellX(s.cur.dx)
	oy := s.area.y0 + y + s.cellY(s.cur.dy)
	for gy, row := range g.Cells {
		for gx, c := range row {
			if c.Rune == 0 {
				continue
			}
			sx, sy := ox+gx, oy+gy
			if !s.cur.clip.contains(sx, sy) {
				continue
			}
			s.screen.SetContent(sx, sy, c.Rune, nil, s.style(c.Style))
		}
	}
}

func (s *Surface) style(st tcell.Style) tcell.Style {
	if s.cur.alpha >= 1 {
		return st
	}
	tint := s.GhostTint[0]
	if s.cur.left {
		tint = s.GhostTint[1]
	}
	if tint != tcell.ColorDefault {
		st = st.Foreground(tint)
	}
	return st.Dim(true)
}

func (s *Surface) cellX(px float64) int {
	return int(math.Round(px / s.CellWidth))
}

func (s *Surface) cellY(px float64) int {
	return int(math.Round(px / s.CellHeight))
}
