package glitch

import "fmt"

// Slice is a horizontal band of the surface that is displaced on its own.
// Top and Bottom are normalized to the surface height.
type Slice struct {
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
	Offset float64 `yaml:"offset"`
}

// Parameters is one distortion sample. The zero value is the idle sample:
// compositing it paints the content once, untouched.
type Parameters struct {
	OffsetX         float64 `yaml:"offset_x"`
	OffsetY         float64 `yaml:"offset_y"`
	ChromaticOffset float64 `yaml:"chromatic_offset"`
	Slices          []Slice `yaml:"slices,omitempty"`
}

// IsIdle reports whether p is the idle sample.
func (p Parameters) IsIdle() bool {
	return p.OffsetX == 0 && p.OffsetY == 0 && p.ChromaticOffset == 0 && len(p.Slices) == 0
}

// Clone returns a copy of p that shares no memory with it.
func (p Parameters) Clone() Parameters {
	if p.Slices != nil {
		p.Slices = append([]Slice(nil), p.Slices...)
	}
	return p
}

func (p Parameters) String() string {
	if p.IsIdle() {
		return "idle"
	}
	return fmt.Sprintf("offset=(%.2f,%.2f) chroma=%.2f slices=%d", p.OffsetX, p.OffsetY, p.ChromaticOffset, len(p.Slices))
}
