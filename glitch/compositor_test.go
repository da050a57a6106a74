package glitch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompositeIdlePaintsOnce(t *testing.T) {
	rec := NewRecorder(200, 400)

	Composite(rec, Parameters{}, rec.Paint)

	assert.Equal(t, []string{"paint"}, rec.Ops())
	require.Len(t, rec.Calls(), 1)
	assert.Equal(t, PaintCall{Alpha: 1, Clip: Rect{X1: 200, Y1: 400}}, rec.Calls()[0])
}

func TestCompositeChromaticGhosts(t *testing.T) {
	rec := NewRecorder(200, 400)
	p := Parameters{
		ChromaticOffset: 5,
		Slices:          []Slice{{Top: 0.5, Bottom: 0.6, Offset: -3}},
	}

	Composite(rec, p, rec.Paint)

	calls := rec.Calls()
	require.Len(t, calls, 4)
	assert.Equal(t, 5.0, calls[0].DX)
	assert.Equal(t, GhostAlpha, calls[0].Alpha)
	assert.Equal(t, 1, calls[0].Layer)
	assert.Equal(t, -5.0, calls[1].DX)
	assert.Equal(t, GhostAlpha, calls[1].Alpha)
	assert.Equal(t, 0.0, calls[2].DX)
	assert.Equal(t, 1.0, calls[2].Alpha)
	assert.Equal(t, 0, calls[2].Layer)
	assert.Equal(t, -3.0, calls[3].DX)
	assert.Equal(t, 0, rec.Depth(), "unbalanced save/restore")
}

func TestCompositeNoGhostsWithoutChroma(t *testing.T) {
	rec := NewRecorder(100, 100)
	p := Parameters{OffsetX: 2, Slices: []Slice{{Top: 0, Bottom: 0.1}, {Top: 0.2, Bottom: 0.3}}}

	Composite(rec, p, rec.Paint)

	assert.Len(t, rec.Calls(), 3)
	for _, c := range rec.Calls() {
		assert.Equal(t, 1.0, c.Alpha)
	}
	assert.NotContains(t, rec.Ops(), "layer 0.5")
}

func TestCompositeSliceBand(t *testing.T) {
	rec := NewRecorder(200, 400)
	p := Parameters{Slices: []Slice{{Top: 0.1, Bottom: 0.25, Offset: 15}}}

	Composite(rec, p, rec.Paint)

	calls := rec.Calls()
	require.Len(t, calls, 2)
	// the true layer is unclipped and unshifted
	assert.Equal(t, Rect{X1: 200, Y1: 400}, calls[0].Clip)
	assert.Equal(t, 0.0, calls[0].DX)

	band := calls[1]
	assert.Equal(t, 15.0, band.DX)
	assert.Equal(t, 0.0, band.DY)
	assert.InDelta(t, 0, band.Clip.X0, 1e-9)
	assert.InDelta(t, 40, band.Clip.Y0, 1e-9)
	assert.InDelta(t, 200, band.Clip.X1, 1e-9)
	assert.InDelta(t, 100, band.Clip.Y1, 1e-9)
}

func TestCompositeOrderAndTranslation(t *testing.T) {
	rec := NewRecorder(100, 50)
	p := Parameters{
		OffsetX:         -4,
		OffsetY:         1,
		ChromaticOffset: 2,
		Slices:          []Slice{{Top: 0.2, Bottom: 0.4, Offset: 10}},
	}

	Composite(rec, p, rec.Paint)

	assert.Equal(t, []string{
		"save", "translate -4 1",
		"save", "translate 2 0", "layer 0.5", "paint", "endlayer", "restore",
		"save", "translate -2 0", "layer 0.5", "paint", "endlayer", "restore",
		"paint",
		"save", "clip 0 10 100 20", "translate 10 0", "paint", "restore",
		"restore",
	}, rec.Ops())

	calls := rec.Calls()
	require.Len(t, calls, 4)
	assert.Equal(t, -2.0, calls[0].DX)
	assert.Equal(t, -6.0, calls[1].DX)
	assert.Equal(t, 1.0, calls[2].DY)
	// clip is given in the translated space and stays inside the surface
	assert.Equal(t, Rect{X0: 0, Y0: 11, X1: 96, Y1: 21}, calls[3].Clip)
	assert.Equal(t, 6.0, calls[3].DX)
}

func TestCompositeClampsSliceBounds(t *testing.T) {
	rec := NewRecorder(10, 100)
	p := Parameters{Slices: []Slice{{Top: -0.5, Bottom: 1.5}, {Top: 0.8, Bottom: 0.3}}}

	Composite(rec, p, rec.Paint)

	calls := rec.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, Rect{X1: 10, Y1: 100}, calls[1].Clip)
	assert.Equal(t, calls[2].Clip.Y0, calls[2].Clip.Y1, "inverted band is empty")
}

func TestCompositePaintPanicPropagates(t *testing.T) {
	rec := NewRecorder(10, 10)
	assert.PanicsWithValue(t, "boom", func() {
		Composite(rec, Sample(NewRand(1)), func() { panic("boom") })
	})
}

func TestCompositePaintCount(t *testing.T) {
	rng := NewRand(11)
	for i := 0; i < 100; i++ {
		p := Sample(rng)
		rec := NewRecorder(320, 240)
		n := 0
		Composite(rec, p, func() { n++ })
		want := 1 + len(p.Slices)
		if p.ChromaticOffset != 0 {
			want += 2
		}
		require.Equal(t, want, n)
		require.Zero(t, rec.Depth())
	}
}
