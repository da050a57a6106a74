package termsurface

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Cell is one terminal cell of content. A zero Rune is transparent.
type Cell struct {
	Rune  rune
	Style tcell.Style
}

// Grid is a block of terminal content.
type Grid struct {
	W, H  int
	Cells [][]Cell
}

func NewGrid(w, h int) *Grid {
	g := &Grid{W: w, H: h, Cells: make([][]Cell, h)}
	for y := range g.Cells {
		g.Cells[y] = make([]Cell, w)
	}
	return g
}

// GridFromText lays out lines left-aligned. Wide runes take two columns;
// the second column is left transparent.
func GridFromText(lines []string, style tcell.Style) *Grid {
	w := 0
	for _, l := range lines {
		if n := runewidth.StringWidth(l); n > w {
			w = n
		}
	}
	g := NewGrid(w, len(lines))
	for y, l := range lines {
		x := 0
		for _, r := range l {
			rw := runewidth.RuneWidth(r)
			if rw == 0 {
				continue
			}
			if r != ' ' {
				g.Cells[y][x] = Cell{Rune: r, Style: style}
			}
			x += rw
		}
	}
	return g
}

// Fill sets every cell of the grid to r.
func (g *Grid) Fill(r rune, style tcell.Style) {
	for y := range g.Cells {
		for x := range g.Cells[y] {
			g.Cells[y][x] = Cell{Rune: r, Style: style}
		}
	}
}

// Blit copies src into g with its top-left corner at (x, y). Transparent
// cells of src leave g untouched.
func (g *Grid) Blit(src *Grid, x, y int) {
	for sy, row := range src.Cells {
		dy := y + sy
		if dy < 0 || dy >= g.H {
			continue
		}
		for sx, c := range row {
			dx := x + sx
			if dx < 0 || dx >= g.W || c.Rune == 0 {
				continue
			}
			g.Cells[dy][dx] = c
		}
	}
}
