package glitch

import "math"

// Sampling ranges. Offsets are in device-independent pixels.
const (
	MaxOffsetX         = 10.0
	MaxOffsetY         = 2.0
	MaxChromaticOffset = 10.0
	MaxSliceOffset     = 20.0
	MaxSliceHeight     = 0.2
	MinSlices          = 3
	MaxSlices          = 7
)

// Sample draws a new set of distortion parameters from rng.
//
// The order of draws is part of the contract: whole-content offsets, slice
// count, then top, height and offset for every slice, and the chromatic
// offset last. Changing it changes every seeded sequence.
func Sample(rng RandomStream) Parameters {
	p := Parameters{
		OffsetX: rng.FloatRange(-MaxOffsetX, MaxOffsetX),
		OffsetY: rng.FloatRange(-MaxOffsetY, MaxOffsetY),
	}

	n := rng.IntRange(MinSlices, MaxSlices+1)
	p.Slices = make([]Slice, n)
	for i := range p.Slices {
		start := rng.Float()
		height := rng.FloatRange(0, MaxSliceHeight)
		p.Slices[i] = Slice{
			Top:    start,
			Bottom: math.Min(start+height, 1),
			Offset: rng.FloatRange(-MaxSliceOffset, MaxSliceOffset),
		}
	}

	p.ChromaticOffset = rng.FloatRange(0, MaxChromaticOffset)
	return p
}
