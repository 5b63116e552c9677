package raster

import "github.com/inkbar/formscan/internal/mempool"

// Mask is a (Width,Height) grid of booleans built monotonically: Set only
// ever turns a pixel on, never off. It backs both the dark-pixel candidate
// mask and the "seen" mask owned by the component extractor.
type Mask struct {
	data   []bool
	Width  int
	Height int
}

// AllFalse allocates a Mask of the given dimensions with every pixel clear.
// The backing buffer is drawn from mempool so repeated per-frame masks
// (threshold mask, seen mask) don't re-allocate on every pipeline pass.
func AllFalse(w, h int) Mask {
	return Mask{data: mempool.GetBool(w * h), Width: w, Height: h}
}

// Release returns the mask's backing buffer to the pool. Call once a mask
// is no longer needed; it is safe to skip for masks built once per process.
func (m Mask) Release() { mempool.PutBool(m.data) }

func (m Mask) index(x, y int) int { return y*m.Width + x }

// Set marks (x,y) as true.
func (m Mask) Set(x, y int) { m.data[m.index(x, y)] = true }

// IsSet reports whether (x,y) is true.
func (m Mask) IsSet(x, y int) bool { return m.data[m.index(x, y)] }

// BaseHeight returns (Width, Height), matching spec.md's (W,H) naming.
func (m Mask) BaseHeight() (int, int) { return m.Width, m.Height }

// FromImage sets every pixel whose color is dark under threshold.
func FromImage(img Image, threshold uint8) Mask {
	m := AllFalse(img.Width, img.Height)
	for y := range img.Height {
		for x := range img.Width {
			if img.GetColor(x, y).IsDark(threshold) {
				m.Set(x, y)
			}
		}
	}
	return m
}

// ToImage renders the mask as black-on-white RGB, used only by debug dumps.
func (m Mask) ToImage() Image {
	return FromFn(m.Width, m.Height, func(x, y int) Color {
		if m.IsSet(x, y) {
			return Color{}
		}
		return Color{R: 0xff, G: 0xff, B: 0xff}
	})
}
