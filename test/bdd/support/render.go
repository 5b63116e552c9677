// Package support provides godog step definitions and scenario state for
// the form-scanning behavior suite.
package support

import (
	"math"

	"github.com/inkbar/formscan/internal/raster"
	"github.com/inkbar/formscan/internal/sheet"
)

// canonicalSize is the synthetic sheet's side length in pixels. Rendering
// aligners at their nominal canonical-frame positions lets the
// orchestrator's rectification homography resolve to (near) identity,
// exercising the full decode path without needing an SVG rasterizer.
const canonicalSize = 500

// renderSheet draws layout's four aligners and the requested set of
// "inked" bars directly onto a canonicalSize x canonicalSize canvas, at
// their nominal positions.
func renderSheet(layout sheet.Layout, inkedBarIDs map[int]bool) raster.Image {
	grid := make([][]raster.Color, canonicalSize)
	for y := range grid {
		grid[y] = make([]raster.Color, canonicalSize)
		for x := range grid[y] {
			grid[y][x] = raster.Color{R: 0xff, G: 0xff, B: 0xff}
		}
	}

	s := float64(canonicalSize)
	for _, anchor := range layout.Aligners {
		cx := (anchor.X + sheet.AlignerOuterRadius) * s
		cy := (anchor.Y + sheet.AlignerOuterRadius) * s
		drawRing(grid, cx, cy, sheet.AlignerOuterRadius*s, sheet.AlignerInnerRadius*s)
	}

	for _, entry := range layout.Entries {
		var bars []sheet.Bar
		switch entry.Kind {
		case sheet.BooleanEntry:
			bars = append(bars, entry.Bar)
		case sheet.SevenSegmentEntry:
			for _, d := range entry.Digits {
				bars = append(bars, d[:]...)
			}
		}
		for _, b := range bars {
			if !inkedBarIDs[b.ID] {
				continue
			}
			w, h := sheet.BarLength, sheet.BarWidth
			if b.Orientation == sheet.Vertical {
				w, h = sheet.BarWidth, sheet.BarLength
			}
			drawRect(grid, b.X*s, b.Y*s, w*s, h*s)
		}
	}

	return raster.FromFn(canonicalSize, canonicalSize, func(x, y int) raster.Color { return grid[y][x] })
}

func drawRect(grid [][]raster.Color, x0, y0, w, h float64) {
	black := raster.Color{}
	x1, y1 := int(x0), int(y0)
	x2, y2 := int(x0+w), int(y0+h)
	for y := clamp0(y1); y < min(y2, canonicalSize); y++ {
		for x := clamp0(x1); x < min(x2, canonicalSize); x++ {
			grid[y][x] = black
		}
	}
}

func drawRing(grid [][]raster.Color, cx, cy, outerR, innerR float64) {
	black := raster.Color{}
	white := raster.Color{R: 0xff, G: 0xff, B: 0xff}
	x0, y0 := clamp0(int(cx-outerR)-1), clamp0(int(cy-outerR)-1)
	x1, y1 := min(int(cx+outerR)+1, canonicalSize), min(int(cy+outerR)+1, canonicalSize)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			dist := math.Hypot(float64(x)-cx, float64(y)-cy)
			switch {
			case dist < innerR:
				grid[y][x] = white
			case dist < outerR:
				grid[y][x] = black
			}
		}
	}
}

func clamp0(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
