package raster

import "errors"

// ErrSingularHomography is returned when a 3x3 matrix has no inverse.
var ErrSingularHomography = errors.New("raster: singular homography")

// Homography is a 3x3 projective matrix, row-major. Applied to a
// destination pixel (x,y) it yields a source pixel (x',y') per spec.md
// §4.6:
//
//	src_x = (m00 x + m01 y + m02) / (m20 x + m21 y + m22)
//	src_y = (m10 x + m11 y + m12) / (m20 x + m21 y + m22)
type Homography [9]float64

// Apply maps (x,y) through h.
func (h Homography) Apply(x, y float64) (float64, float64) {
	denom := h[6]*x + h[7]*y + h[8]
	if denom == 0 {
		return -1, -1
	}
	sx := (h[0]*x + h[1]*y + h[2]) / denom
	sy := (h[3]*x + h[4]*y + h[5]) / denom
	return sx, sy
}

// Invert computes the inverse of the 3x3 matrix h, false if singular.
func (h Homography) Invert() (Homography, bool) {
	a, b, c := h[0], h[1], h[2]
	d, e, f := h[3], h[4], h[5]
	g, k, i := h[6], h[7], h[8]

	det := a*(e*i-f*k) - b*(d*i-f*g) + c*(d*k-e*g)
	if det == 0 {
		return Homography{}, false
	}
	invDet := 1 / det

	return Homography{
		(e*i - f*k) * invDet,
		(c*k - b*i) * invDet,
		(b*f - c*e) * invDet,
		(f*g - d*i) * invDet,
		(a*i - c*g) * invDet,
		(c*d - a*f) * invDet,
		(d*k - e*g) * invDet,
		(b*g - a*k) * invDet,
		(a*e - b*d) * invDet,
	}, true
}

// Warp produces a new newW x newH image where each destination pixel is
// sourced from img via inverse (a destination->source homography),
// nearest-neighbor, with out-of-bounds lookups filled magenta per spec.md
// §4.1/§4.6.
func (img Image) Warp(inverse Homography, newW, newH int) Image {
	return FromFn(newW, newH, func(x, y int) Color {
		sx, sy := inverse.Apply(float64(x), float64(y))
		c, ok := img.GetColorChecked(int(sx), int(sy))
		if !ok {
			return Magenta
		}
		return c
	})
}
