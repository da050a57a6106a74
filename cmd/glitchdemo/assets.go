package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
)

func loadPNG(path string) (*ebiten.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// loadMusic opens an mp3 and returns a player looping it. The file stays open
// until the returned file is closed.
func loadMusic(ctx *audio.Context, path string) (*audio.Player, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	stream, err := mp3.DecodeWithSampleRate(sampleRate, f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("decode %s: %w", path, err)
	}
	player, err := ctx.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("player: %w", err)
	}
	return player, f, nil
}

// tileBack repeats a tile across a background strip.
func tileBack(tile *ebiten.Image) *ebiten.Image {
	back := ebiten.NewImage(screenWidth+8, backHeight)
	step := max(tile.Bounds().Dx(), 1)
	for i := 0; i < back.Bounds().Dx(); i += step {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(i), 0)
		back.DrawImage(tile, op)
	}
	return back
}

// rasterBack draws colour bars, one colour per line.
func rasterBack() *ebiten.Image {
	back := ebiten.NewImage(screenWidth+8, backHeight)
	for y := 0; y < backHeight; y++ {
		a := toRadians(float64(y) * 360 / backHeight)
		c := color.RGBA{
			R: uint8(40 + 30*math.Sin(a)),
			G: uint8(20 + 20*math.Sin(a+2)),
			B: uint8(90 + 60*math.Sin(a+4)),
			A: 0xff,
		}
		back.SubImage(image.Rect(0, y, back.Bounds().Dx(), y+1)).(*ebiten.Image).Fill(c)
	}
	return back
}

// defaultLogo is a framed square used when no logo file is given.
func defaultLogo() *ebiten.Image {
	logo := ebiten.NewImage(2*spriteHalf, 2*spriteHalf)
	logo.Fill(color.RGBA{0xff, 0x30, 0x80, 0xff})
	logo.SubImage(image.Rect(4, 4, 28, 28)).(*ebiten.Image).Fill(color.RGBA{0x20, 0xe0, 0xff, 0xff})
	logo.SubImage(image.Rect(10, 10, 22, 22)).(*ebiten.Image).Fill(color.RGBA{0x10, 0x10, 0x30, 0xff})
	return logo
}
