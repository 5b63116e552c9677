package rectify

import "github.com/inkbar/formscan/internal/raster"

// CanonicalSize is the side length, in pixels, of the square canonical
// frame the orchestrator warps into (S in spec.md §4.9 step 5).
const CanonicalSize = 500

// Warp computes the forward homography src->dst, inverts it, and resamples
// img into a newW x newH frame. src and dst are each 4 points ordered
// TL,TR,BR,BL, matching the AlignerQuad convention.
func Warp(img raster.Image, src, dst [4]raster.Point, newW, newH int) (raster.Image, error) {
	forward, err := ComputeHomography(src, dst)
	if err != nil {
		return raster.Image{}, err
	}
	inverse, ok := forward.Invert()
	if !ok {
		return raster.Image{}, ErrHomography
	}
	return img.Warp(inverse, newW, newH), nil
}
