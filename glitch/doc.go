// Package glitch renders a periodic "glitch" distortion over content it does
// not know anything about.
//
// A Controller runs a repeating cycle: a short Glitching burst followed by a
// longer Idle rest. During a burst it draws a new set of Parameters every few
// tens of milliseconds: a small translation of the whole content, a chromatic
// ghost offset, and a handful of horizontal Slices that are shifted on their
// own. Composite turns a Parameters value into a sequence of calls on a
// Surface, invoking a caller supplied paint function once per layer.
//
// The package does no drawing itself and owns no goroutines. A host calls
//
//	ctrl.Update()             // or ctrl.Advance(elapsed)
//	ctrl.Render(surface, paint)
//
// once per frame. Surfaces for ebiten images and tcell screens live in the
// internal packages of this module; Recorder is a surface that only records.
//
// Randomness comes from an explicit RandomStream so runs with the same seed
// and the same ticks are identical.
package glitch
