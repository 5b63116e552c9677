package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/inkbar/formscan/internal/raster"
	"github.com/inkbar/formscan/internal/utils"
)

// MaskOverlay visualizes the binary dark/light classification src would
// produce at darkThreshold: light pixels as grayscale, dark pixels
// tinted red, the way the teacher's rectify package dumps its
// thresholding mask for inspection.
func MaskOverlay(src image.Image, darkThreshold uint8) image.Image {
	b := src.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := src.At(x, y).RGBA()
			gray := uint8((r + g + bl) / 3 >> 8)
			if isDark(uint8(r>>8), uint8(g>>8), uint8(bl>>8), darkThreshold) {
				out.Set(x, y, color.RGBA{R: gray, G: 0, B: 0, A: 255})
			} else {
				out.Set(x, y, color.RGBA{R: gray, G: gray, B: gray, A: 255})
			}
		}
	}
	return out
}

func isDark(r, g, b, threshold uint8) bool {
	return raster.Color{R: r, G: g, B: b}.IsDark(threshold)
}

// AlignerOverlay draws the four detected aligner centers, in pixel
// coordinates, as a closed quadrilateral over src — the first-pass
// detection a reviewer checks before trusting a rectified scan.
func AlignerOverlay(src image.Image, quad [4]raster.Point) image.Image {
	b := src.Bounds()
	canvas := image.NewRGBA(b)
	draw.Draw(canvas, b, src, b.Min, draw.Src)

	pts := make([]utils.Point, len(quad))
	for i, p := range quad {
		pts[i] = utils.Point{X: p.X, Y: p.Y}
	}
	utils.DrawPolygon(canvas, pts, color.RGBA{R: 255, A: 255}, 2)
	return canvas
}

// CanonicalCompare places src (with its detected aligner quad overlaid)
// beside canonical, the rectified square it warped to, so a reviewer can
// check the homography visually in one image.
func CanonicalCompare(src image.Image, quad [4]raster.Point, canonical image.Image) image.Image {
	overlaid := AlignerOverlay(src, quad)
	sb := overlaid.Bounds()
	cb := canonical.Bounds()

	const gap = 10
	outW := sb.Dx() + gap + cb.Dx()
	outH := sb.Dy()
	if cb.Dy() > outH {
		outH = cb.Dy()
	}

	out := image.NewRGBA(image.Rect(0, 0, outW, outH))
	draw.Draw(out, image.Rect(0, 0, sb.Dx(), sb.Dy()), overlaid, sb.Min, draw.Src)

	xoff := sb.Dx() + gap
	dstRect := image.Rect(xoff, 0, xoff+cb.Dx(), cb.Dy())
	draw.Draw(out, dstRect, canonical, cb.Min, draw.Src)
	utils.DrawRect(out, dstRect, color.RGBA{G: 255, A: 255}, 2)

	return out
}
