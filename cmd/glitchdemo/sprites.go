package main

import "math"

const spriteHalf = 16

// Sprite follows a Lissajous path around the centre of the screen.
type Sprite struct {
	X, Y  float64
	index int
}

func newSprites(n int) []*Sprite {
	sprites := make([]*Sprite, n)
	for i := range sprites {
		sprites[i] = &Sprite{index: i}
	}
	return sprites
}

// Update places the sprite on its path at counter c. Sprites trail each
// other by a fixed phase and never leave the screen.
func (s *Sprite) Update(c float64) {
	c += float64(s.index) * 0.155
	cx, cy := float64(screenWidth)/2, float64(screenHeight)/2

	x := cx + 100*math.Sin(c*1.35+1.25) + 100*math.Sin(c*1.86+0.54)
	y := cy + 60*math.Cos(c*1.72+0.23) + 60*math.Cos(c*1.63+0.98)
	x += 20 * math.Sin(float64(s.index)*0.289+1.15)
	y += 20 * math.Cos(float64(s.index)*0.456+0.85)

	s.X = clamp(x, spriteHalf, screenWidth-spriteHalf)
	s.Y = clamp(y, spriteHalf, screenHeight-spriteHalf)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func toRadians(angle float64) float64 {
	return angle * (math.Pi / 180)
}
