// Package pipeline wires raster, components, targets, rectify, sheet
// and decode together into the two-pass detect -> warp -> re-detect ->
// decode orchestration, adapted from the teacher's pipeline.Config /
// Builder conventions (internal/pipeline/pipeline.go) with the OCR
// model configuration replaced by this system's own knobs.
package pipeline

// Config holds the tunables the orchestrator exposes to callers: the
// darkness threshold used at both detection passes, and the canonical
// warped frame size.
type Config struct {
	// DarkThreshold is the per-channel threshold below which a pixel is
	// considered dark (candidate-set), per spec.md §3.
	DarkThreshold uint8
	// CanonicalSize is the side length, in pixels, of the square the
	// page is rectified into before the second detection pass.
	CanonicalSize int
}

// DefaultConfig returns the contract values from spec.md: dark threshold
// 110, canonical frame 500x500.
func DefaultConfig() Config {
	return Config{
		DarkThreshold: 110,
		CanonicalSize: 500,
	}
}
