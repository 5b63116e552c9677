// Package render produces raster views of a sheet.Layout: a printable
// preview PNG (preview.go) and pixel-level debug dumps of a scan in
// progress (debug.go). Both rasterize the normalized [0,1]^2 sheet
// frame sheet.WriteSVG already describes, the way the teacher's
// internal/rectify/debug.go rasterizes its own debug overlays directly
// onto an image.RGBA canvas rather than going through a vector format.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/inkbar/formscan/internal/sheet"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// previewFace is the fixed-width bitmap face field descriptors and the
// title are rasterized with, the same face internal/testutil labels
// synthetic fixtures with.
var previewFace = basicfont.Face7x13

// templateBlue adapts sheet.TemplateBlue (a raster.Color, which carries no
// RGBA method) into an image/color.Color for use with image.RGBA.Set.
var templateBlue = color.RGBA{R: sheet.TemplateBlue.R, G: sheet.TemplateBlue.G, B: sheet.TemplateBlue.B, A: 0xff}

// Preview rasterizes layout onto a size x size white canvas: aligner
// rings (a black disk with a white inner disk), filled mark-bar
// rectangles in sheet.TemplateBlue, and
// descriptor/title text. This is the printable form a user marks up by
// hand, not a decoding aid.
func Preview(layout sheet.Layout, size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	scale := float64(size)
	for _, el := range layout.Elements() {
		switch el.Kind {
		case sheet.AlignerElement:
			drawAligner(img, el, scale)
		case sheet.HorizontalBarElement:
			drawFilledRect(img, el.X*scale, el.Y*scale, sheet.BarLength*scale, sheet.BarWidth*scale, templateBlue)
		case sheet.VerticalBarElement:
			drawFilledRect(img, el.X*scale, el.Y*scale, sheet.BarWidth*scale, sheet.BarLength*scale, templateBlue)
		case sheet.FieldDescriptorElement:
			drawText(img, el.Text, el.X*scale, (el.Y+sheet.FieldFontSize)*scale)
		case sheet.TitleElement:
			drawText(img, el.Text, el.X*scale, (el.Y+sheet.TitleFontSize)*scale)
		}
	}

	return img
}

func drawAligner(img *image.RGBA, el sheet.Element, scale float64) {
	cx := (el.X + sheet.AlignerOuterRadius) * scale
	cy := (el.Y + sheet.AlignerOuterRadius) * scale
	outerR := sheet.AlignerOuterRadius * scale
	innerR := sheet.AlignerInnerRadius * scale
	drawFilledCircle(img, cx, cy, outerR, color.Black)
	drawFilledCircle(img, cx, cy, innerR, color.White)
}

func drawFilledRect(img *image.RGBA, x, y, w, h float64, col color.Color) {
	rect := image.Rect(int(x), int(y), int(x+w), int(y+h)).Intersect(img.Bounds())
	for py := rect.Min.Y; py < rect.Max.Y; py++ {
		for px := rect.Min.X; px < rect.Max.X; px++ {
			img.Set(px, py, col)
		}
	}
}

func drawFilledCircle(img *image.RGBA, cx, cy, r float64, col color.Color) {
	bounds := img.Bounds()
	minX, maxX := clampRange(int(cx-r), int(cx+r)+1, bounds.Min.X, bounds.Max.X)
	minY, maxY := clampRange(int(cy-r), int(cy+r)+1, bounds.Min.Y, bounds.Max.Y)
	r2 := r * r
	for py := minY; py < maxY; py++ {
		dy := float64(py) + 0.5 - cy
		for px := minX; px < maxX; px++ {
			dx := float64(px) + 0.5 - cx
			if dx*dx+dy*dy <= r2 {
				img.Set(px, py, col)
			}
		}
	}
}

func clampRange(lo, hi, boundLo, boundHi int) (int, int) {
	if lo < boundLo {
		lo = boundLo
	}
	if hi > boundHi {
		hi = boundHi
	}
	return lo, hi
}

func drawText(img *image.RGBA, text string, x, y float64) {
	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{color.Black},
		Face: previewFace,
		Dot:  fixed.P(int(x), int(y)),
	}
	drawer.DrawString(text)
}
