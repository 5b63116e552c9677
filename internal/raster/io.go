package raster

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"io"

	_ "golang.org/x/image/bmp"
)

// ImageFormatError reports an input raster this system cannot consume:
// wrong color model or an unsupported bit depth. Fatal per spec.md §7.
type ImageFormatError struct {
	ColorModel string
}

func (e *ImageFormatError) Error() string {
	return fmt.Sprintf("raster: unsupported color type/bit depth: %s", e.ColorModel)
}

// Decode reads an 8-bit RGB raster from r. Byte-level format handling
// (PNG/JPEG/BMP) is an external collaborator per spec.md §1; this only
// adapts the decoded image.Image into the packed Image this system uses,
// rejecting anything that isn't effectively 8-bit RGB.
func Decode(r io.Reader) (Image, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return Image{}, fmt.Errorf("raster: decode: %w", err)
	}
	return FromStdImage(src)
}

// FromStdImage adapts an already-decoded image.Image (e.g. one produced by
// a PDF page/image extractor) into the packed Image this system uses,
// rejecting anything that isn't effectively 8-bit RGB.
func FromStdImage(src image.Image) (Image, error) {
	switch src.(type) {
	case *image.Gray, *image.Gray16, *image.Paletted, *image.CMYK, *image.RGBA64, *image.NRGBA64:
		return Image{}, &ImageFormatError{ColorModel: fmt.Sprintf("%T", src)}
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	return FromFn(w, h, func(x, y int) Color {
		r32, g32, b32, _ := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
		return Color{R: uint8(r32 >> 8), G: uint8(g32 >> 8), B: uint8(b32 >> 8)}
	}), nil
}

// Encode writes img as a PNG. Serialization bytes are an external
// collaborator per spec.md §1; stdlib image/png is the boundary adapter.
func Encode(w io.Writer, img Image) error {
	return png.Encode(w, toStdImage(img))
}

func toStdImage(img Image) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := range img.Height {
		for x := range img.Width {
			c := img.GetColor(x, y)
			dst.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
	return dst
}

// ToStdImage exposes the stdlib image.Image view of img, for callers (debug
// dumps, the preview renderer) that need to hand off to golang.org/x/image
// or image/draw.
func ToStdImage(img Image) image.Image { return toStdImage(img) }
