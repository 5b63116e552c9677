// Package rectify solves the perspective homography between a detected
// aligner quadrilateral and the canonical sheet frame, and warps an image
// through it. Adapted from the teacher's internal/rectify/homography.go,
// which solves the identical 8x8 system for a detector-found quad; here
// the quad comes from the four Aligner targets instead of a learned mask.
package rectify

import (
	"errors"

	"github.com/inkbar/formscan/internal/raster"
)

// ErrHomography is returned when the 8x8 system has no solution, i.e. the
// four source points are not in general position (three or more collinear).
var ErrHomography = errors.New("rectify: homography has no solution (degenerate aligner quad)")

// ComputeHomography builds the 3x3 projective matrix mapping src[i] -> dst[i]
// for i in 0..3, by solving the standard 8x8 linear system for the 8
// unknowns h00..h21 (h22 is fixed to 1).
func ComputeHomography(src, dst [4]raster.Point) (raster.Homography, error) {
	var a [8][8]float64
	var b [8]float64

	for i := range 4 {
		x, y := src[i].X, src[i].Y
		px, py := dst[i].X, dst[i].Y
		r := 2 * i

		// x' = (h00 x + h01 y + h02) / (h20 x + h21 y + 1)
		a[r][0] = x
		a[r][1] = y
		a[r][2] = 1
		a[r][6] = -x * px
		a[r][7] = -y * px
		b[r] = px

		// y' = (h10 x + h11 y + h12) / (h20 x + h21 y + 1)
		a[r+1][3] = x
		a[r+1][4] = y
		a[r+1][5] = 1
		a[r+1][6] = -x * py
		a[r+1][7] = -y * py
		b[r+1] = py
	}

	h, ok := solve8x8(a, b)
	if !ok {
		return raster.Homography{}, ErrHomography
	}

	return raster.Homography{h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7], 1}, nil
}

// solve8x8 solves a*x = b via Gaussian elimination with partial pivoting.
// The matrix is tiny (8x8), so a naive dense solve avoids pulling in a
// linear-algebra dependency, matching the teacher's rationale in
// internal/rectify/homography.go.
func solve8x8(a [8][8]float64, b [8]float64) ([8]float64, bool) {
	const n = 8

	for col := range n {
		pivot := col
		maxAbs := absf(a[col][col])
		for r := col + 1; r < n; r++ {
			if v := absf(a[r][col]); v > maxAbs {
				maxAbs = v
				pivot = r
			}
		}
		if maxAbs == 0 {
			return [8]float64{}, false
		}
		if pivot != col {
			a[col], a[pivot] = a[pivot], a[col]
			b[col], b[pivot] = b[pivot], b[col]
		}

		div := a[col][col]
		for c := col; c < n; c++ {
			a[col][c] /= div
		}
		b[col] /= div

		for r := range n {
			if r == col {
				continue
			}
			factor := a[r][col]
			if factor == 0 {
				continue
			}
			for c := col; c < n; c++ {
				a[r][c] -= factor * a[col][c]
			}
			b[r] -= factor * b[col]
		}
	}

	return b, true
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
