package targets

import (
	"errors"
	"sort"

	"github.com/inkbar/formscan/internal/raster"
)

// ErrTooFewAligners is returned when fewer than 4 targets classify as
// Aligner. Fatal per spec.md §7 (AlignerCountError).
var ErrTooFewAligners = errors.New("targets: fewer than four aligners found")

// AlignerQuad holds the four corner aligners in canonical TL,TR,BR,BL
// order, each the centroid of one Aligner target, normalized coordinates.
type AlignerQuad [4]raster.Point

// SortAligners filters targets to kind Aligner, keeps the 4 largest by
// FractionOfImageFilled, and orders them TL->TR->BR->BL by their
// centroids, per spec.md §4.5. Ties are broken by "first point scanned
// wins" (a stable sort followed by first-index selection), matching the
// original implementation this spec was distilled from.
func SortAligners(all []Target) (AlignerQuad, error) {
	var aligners []Target
	for _, t := range all {
		if t.Kind == Aligner {
			aligners = append(aligners, t)
		}
	}

	// Stable descending sort by fraction filled; keeps first-scanned order
	// among ties, giving a deterministic "first encountered wins" truncation.
	sort.SliceStable(aligners, func(i, j int) bool {
		return aligners[i].FractionOfImageFilled > aligners[j].FractionOfImageFilled
	})

	if len(aligners) < 4 {
		return AlignerQuad{}, ErrTooFewAligners
	}
	aligners = aligners[:4]

	centers := make([]raster.Point, len(aligners))
	for i, a := range aligners {
		centers[i] = raster.Point{X: a.MeanX, Y: a.MeanY}
	}

	var quad AlignerQuad
	quad[0] = removeMaxBy(&centers, func(p raster.Point) float64 { return -(p.X + p.Y) }) // TL: argmin x+y
	quad[1] = removeMaxBy(&centers, func(p raster.Point) float64 { return p.X - p.Y })     // TR: argmax x-y
	quad[2] = removeMaxBy(&centers, func(p raster.Point) float64 { return p.X + p.Y })      // BR: argmax x+y
	quad[3] = removeMaxBy(&centers, func(p raster.Point) float64 { return -(p.X - p.Y) })  // BL: argmin x-y

	return quad, nil
}

// removeMaxBy removes and returns the element of *pts maximizing score,
// first-scanned wins on ties.
func removeMaxBy(pts *[]raster.Point, score func(raster.Point) float64) raster.Point {
	best := 0
	bestScore := score((*pts)[0])
	for i := 1; i < len(*pts); i++ {
		if s := score((*pts)[i]); s > bestScore {
			bestScore = s
			best = i
		}
	}
	p := (*pts)[best]
	*pts = append((*pts)[:best], (*pts)[best+1:]...)
	return p
}
