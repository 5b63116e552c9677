package raster

import "fmt"

// Image is a tightly packed row-major RGB raster of fixed dimensions.
type Image struct {
	data   []byte
	Width  int
	Height int
}

// FromRaw builds an Image from packed RGB bytes. len(data) must equal 3*W*H.
func FromRaw(data []byte, w, h int) (Image, error) {
	if len(data) != 3*w*h {
		return Image{}, fmt.Errorf("raster: expected %d bytes for %dx%d image, got %d", 3*w*h, w, h, len(data))
	}
	return Image{data: data, Width: w, Height: h}, nil
}

// FromFn builds an Image by row-major evaluation of f at each pixel.
func FromFn(w, h int, f func(x, y int) Color) Image {
	img := Image{data: make([]byte, 3*w*h), Width: w, Height: h}
	for y := range h {
		for x := range w {
			img.SetColor(x, y, f(x, y))
		}
	}
	return img
}

func (img Image) index(x, y int) int {
	return 3 * (y*img.Width + x)
}

// GetColor returns the color at (x,y). The caller must ensure x<Width and y<Height.
func (img Image) GetColor(x, y int) Color {
	i := img.index(x, y)
	return Color{R: img.data[i], G: img.data[i+1], B: img.data[i+2]}
}

// GetColorChecked returns the color at (x,y), or false if out of bounds.
func (img Image) GetColorChecked(x, y int) (Color, bool) {
	if x < 0 || y < 0 || x >= img.Width || y >= img.Height {
		return Color{}, false
	}
	return img.GetColor(x, y), true
}

// SetColor writes the color at (x,y) in place.
func (img Image) SetColor(x, y int, c Color) {
	i := img.index(x, y)
	img.data[i] = c.R
	img.data[i+1] = c.G
	img.data[i+2] = c.B
}

// Raw exposes the packed backing bytes (used by PNG encoding at the boundary).
func (img Image) Raw() []byte { return img.data }
