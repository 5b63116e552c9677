// Package components implements 4-neighbor flood-fill connected-component
// extraction over a raster.Mask, adapted from the teacher's
// internal/detector/components.go BFS extractor. spec.md §4.3 calls for an
// explicit LIFO frontier rather than the teacher's queue, so the traversal
// here uses a plain slice as a stack instead of container/list.
package components

import "github.com/inkbar/formscan/internal/raster"

// Blob is the raw result of one flood fill: its tight bounding box
// (inclusive, pixel units), the count of pixels visited, and the integer
// (floor) mean of their coordinates.
type Blob struct {
	Left, Right, Top, Bottom int
	PixelsFilled             int
	MeanX, MeanY             int
}

// Extract scans candidates in row-major order and launches a flood fill
// from every candidate pixel not yet in seen, yielding each connected
// component exactly once. seen must share candidates' dimensions and is
// mutated: every visited pixel is marked seen.
func Extract(candidates, seen raster.Mask) []Blob {
	w, h := candidates.BaseHeight()
	var blobs []Blob

	for y := range h {
		for x := range w {
			if candidates.IsSet(x, y) && !seen.IsSet(x, y) {
				blobs = append(blobs, floodFill(candidates, seen, x, y))
			}
		}
	}

	return blobs
}

// floodFill visits the 4-connected candidate-set region containing (x,y)
// using an explicit LIFO frontier, re-testing seen on pop because a pixel
// may be pushed more than once before it is processed.
func floodFill(candidates, seen raster.Mask, startX, startY int) Blob {
	w, h := candidates.BaseHeight()

	type pixel struct{ x, y int }
	stack := []pixel{{startX, startY}}

	left, right, top, bottom := startX, startX, startY, startY
	var count, sumX, sumY int

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if seen.IsSet(p.x, p.y) {
			continue
		}
		seen.Set(p.x, p.y)

		count++
		sumX += p.x
		sumY += p.y
		if p.x < left {
			left = p.x
		}
		if p.x > right {
			right = p.x
		}
		if p.y < top {
			top = p.y
		}
		if p.y > bottom {
			bottom = p.y
		}

		if p.x > 0 && candidates.IsSet(p.x-1, p.y) && !seen.IsSet(p.x-1, p.y) {
			stack = append(stack, pixel{p.x - 1, p.y})
		}
		if p.x < w-1 && candidates.IsSet(p.x+1, p.y) && !seen.IsSet(p.x+1, p.y) {
			stack = append(stack, pixel{p.x + 1, p.y})
		}
		if p.y > 0 && candidates.IsSet(p.x, p.y-1) && !seen.IsSet(p.x, p.y-1) {
			stack = append(stack, pixel{p.x, p.y - 1})
		}
		if p.y < h-1 && candidates.IsSet(p.x, p.y+1) && !seen.IsSet(p.x, p.y+1) {
			stack = append(stack, pixel{p.x, p.y + 1})
		}
	}

	return Blob{
		Left: left, Right: right, Top: top, Bottom: bottom,
		PixelsFilled: count,
		MeanX:        sumX / count,
		MeanY:        sumY / count,
	}
}
