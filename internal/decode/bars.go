package decode

import (
	"math"

	"github.com/inkbar/formscan/internal/raster"
)

// BarsFound is the unordered set of detected bar-shaped target centroids
// in normalized canonical sheet coordinates, gathered by the
// orchestrator's second detection pass.
type BarsFound []raster.Point

// anyWithin reports whether any centroid in the set lies strictly closer
// than threshold to center, per spec.md §4.8's strict "<" contract.
func (found BarsFound) anyWithin(center raster.Point, threshold float64) bool {
	for _, p := range found {
		if math.Hypot(p.X-center.X, p.Y-center.Y) < threshold {
			return true
		}
	}
	return false
}
