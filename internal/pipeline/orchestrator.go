package pipeline

import (
	"fmt"

	"github.com/inkbar/formscan/internal/components"
	"github.com/inkbar/formscan/internal/decode"
	"github.com/inkbar/formscan/internal/raster"
	"github.com/inkbar/formscan/internal/rectify"
	"github.com/inkbar/formscan/internal/sheet"
	"github.com/inkbar/formscan/internal/targets"
)

// Scan runs the full two-pass pipeline described by spec.md §4.9 over a
// single already-decoded input raster: threshold, extract, classify,
// sort aligners, rectify to the canonical frame, re-threshold,
// re-extract, re-classify, then decode against layout.
func Scan(img raster.Image, layout sheet.Layout, cfg Config) (decode.LayoutResult, error) {
	if img.Width == 0 || img.Height == 0 {
		return nil, ErrUnexpectedImageDimensions
	}

	quad, err := firstPassAligners(img, cfg)
	if err != nil {
		return nil, err
	}

	warped, err := rectifyToCanonical(img, quad, cfg)
	if err != nil {
		return nil, err
	}

	found, err := secondPassBars(warped, cfg)
	if err != nil {
		return nil, err
	}

	result, err := decode.Decode(layout, found)
	if err != nil {
		return nil, fmt.Errorf("pipeline: decoding fields: %w", err)
	}
	return result, nil
}

// firstPassAligners thresholds the raw input, extracts and classifies
// its connected components, and orders the four largest aligners. The
// returned quad is in coordinates normalized to the input image.
func firstPassAligners(img raster.Image, cfg Config) (targets.AlignerQuad, error) {
	mask := raster.FromImage(img, cfg.DarkThreshold)
	defer mask.Release()

	seen := raster.AllFalse(img.Width, img.Height)
	defer seen.Release()

	blobs := components.Extract(mask, seen)
	all := targets.ClassifyAll(blobs, img.Width, img.Height)

	quad, err := targets.SortAligners(all)
	if err != nil {
		return targets.AlignerQuad{}, fmt.Errorf("pipeline: locating alignment marks: %w", err)
	}
	return quad, nil
}

// rectifyToCanonical rescales the normalized aligner quad to input-pixel
// coordinates, solves the homography against the canonical frame's inset
// corners, and warps the input image into a CanonicalSize x CanonicalSize
// square.
func rectifyToCanonical(img raster.Image, quad targets.AlignerQuad, cfg Config) (raster.Image, error) {
	src := [4]raster.Point{
		{X: quad[0].X * float64(img.Width), Y: quad[0].Y * float64(img.Height)},
		{X: quad[1].X * float64(img.Width), Y: quad[1].Y * float64(img.Height)},
		{X: quad[2].X * float64(img.Width), Y: quad[2].Y * float64(img.Height)},
		{X: quad[3].X * float64(img.Width), Y: quad[3].Y * float64(img.Height)},
	}

	dst := canonicalCorners(cfg.CanonicalSize)

	warped, err := rectify.Warp(img, src, dst, cfg.CanonicalSize, cfg.CanonicalSize)
	if err != nil {
		return raster.Image{}, fmt.Errorf("pipeline: rectifying page: %w", err)
	}
	return warped, nil
}

// canonicalCorners returns the TL, TR, BR, BL destination corners the
// aligners must land on in the canonical S x S frame: inset by
// ALIGNER_OUTER_RADIUS + ALIGNER_DISTANCE_FROM_CORNER, per spec.md §4.9
// step 5.
func canonicalCorners(size int) [4]raster.Point {
	s := float64(size)
	d := (sheet.AlignerOuterRadius + sheet.AlignerDistanceFromCorner) * s
	return [4]raster.Point{
		{X: d, Y: d},
		{X: s - d, Y: d},
		{X: s - d, Y: s - d},
		{X: d, Y: s - d},
	}
}

// secondPassBars re-thresholds and re-extracts components from the
// rectified canonical image, and collects the bounding-box centers of
// every bar-shaped target, normalized to the canonical [0,1]^2 sheet
// frame.
func secondPassBars(warped raster.Image, cfg Config) (decode.BarsFound, error) {
	mask := raster.FromImage(warped, cfg.DarkThreshold)
	defer mask.Release()

	seen := raster.AllFalse(warped.Width, warped.Height)
	defer seen.Release()

	blobs := components.Extract(mask, seen)
	all := targets.ClassifyAll(blobs, warped.Width, warped.Height)

	var found decode.BarsFound
	for _, t := range all {
		if !t.IsBar() {
			continue
		}
		x, y := t.BoundingBoxCenter()
		found = append(found, raster.Point{X: x, Y: y})
	}
	return found, nil
}
