package testutil

import (
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// CreateTestImage creates a uniform-color image of the given size.
func CreateTestImage(width, height int, backgroundColor color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{backgroundColor}, image.Point{}, draw.Src)
	return img
}

// CreateTestImageWithLabel creates a test image with a single line of text
// centered on it, using the same basicfont face preview.go rasterizes
// field descriptors with.
func CreateTestImageWithLabel(label string, width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	face := basicfont.Face7x13
	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{color.Black},
		Face: face,
	}
	textWidth := font.MeasureString(face, label).Ceil()
	textHeight := face.Metrics().Height.Ceil()
	x := (width - textWidth) / 2
	y := (height + textHeight) / 2
	drawer.Dot = fixed.P(x, y)
	drawer.DrawString(label)

	return img
}

// SaveImage writes an image as PNG to path, creating parent directories as needed.
func SaveImage(t *testing.T, img image.Image, path string) {
	t.Helper()

	require.NoError(t, EnsureDir(filepath.Dir(path)))

	file, err := os.Create(path) //nolint:gosec // G304: test file creation with a controlled path
	require.NoError(t, err, "failed to create file %s", path)
	defer func() { require.NoError(t, file.Close()) }()

	require.NoError(t, png.Encode(file, img), "failed to encode PNG image")
}

// LoadImage reads and decodes a PNG/JPEG/BMP image from path.
func LoadImage(t *testing.T, path string) image.Image {
	t.Helper()

	file, err := os.Open(path) //nolint:gosec // G304: test file reading with a controlled path
	require.NoError(t, err, "failed to open image file %s", path)
	defer func() { _ = file.Close() }()

	img, _, err := image.Decode(file)
	require.NoError(t, err, "failed to decode image")
	return img
}
