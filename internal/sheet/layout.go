package sheet

import (
	"github.com/inkbar/formscan/internal/raster"
	"golang.org/x/text/width"
)

// Build lays out a PageDescription into a Layout, adapted from the
// original make/scan_sheet_layout.rs's vertical field stacking but using
// this package's own normalized constants throughout.
func Build(desc PageDescription) Layout {
	ids := barIDAllocator{}

	layout := Layout{
		Title:    desc.Title,
		Aligners: alignerAnchors(),
	}

	for i, field := range desc.Fields {
		y := VerticalFieldStart + float64(i)*VerticalFieldSpace
		fieldX := FieldStartX + TextWidthMultiplier*FieldFontSize*descriptorDisplayWidth(field.Descriptor) + TextGap

		layout.Descriptors = append(layout.Descriptors, Descriptor{
			X: FieldStartX, Y: y, Text: field.Descriptor,
		})

		switch field.Kind {
		case FieldBoolean:
			layout.Entries = append(layout.Entries, Entry{
				Kind: BooleanEntry,
				Bar:  newBar(&ids, fieldX, y+BarVerticalOffset, Horizontal),
			})
		case FieldSevenSegment:
			digits := make([]Digit, field.DigitCount)
			for d := 0; d < field.DigitCount; d++ {
				digitX := fieldX + float64(d)*digitStride
				digitY := y + BarVerticalOffset
				digits[d] = newDigit(&ids, digitX, digitY)
			}
			layout.Entries = append(layout.Entries, Entry{
				Kind:   SevenSegmentEntry,
				Digits: digits,
			})
		}
	}

	return layout
}

// descriptorDisplayWidth measures a field descriptor the way it will
// actually render: East-Asian wide/fullwidth runes occupy two character
// cells, everything else one, so a byte or rune count alone would place
// the field's bar too close to (or overlapping) a wide label.
func descriptorDisplayWidth(s string) float64 {
	var w float64
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			w += 2
		default:
			w++
		}
	}
	return w
}

// barIDAllocator hands out dense, monotonically increasing BarIds.
type barIDAllocator struct{ next int }

func (a *barIDAllocator) take() int {
	id := a.next
	a.next++
	return id
}

func newBar(ids *barIDAllocator, x, y float64, o Orientation) Bar {
	return Bar{X: x, Y: y, Orientation: o, ID: ids.take()}
}

// newDigit builds one seven-segment digit's bars at the segment offsets
// fixed in constants.go, anchored at (x,y).
func newDigit(ids *barIDAllocator, x, y float64) Digit {
	var d Digit
	for i, off := range sevenSegmentOffsets {
		o := Vertical
		if off.horizontal {
			o = Horizontal
		}
		d[i] = newBar(ids, x+off.dx, y+off.dy, o)
	}
	return d
}

// alignerAnchors returns the four corner aligners' top-left anchors in
// TL, TR, BR, BL order, each inset from its corner by
// ALIGNER_DISTANCE_FROM_CORNER per spec.md §4.7.
func alignerAnchors() [4]raster.Point {
	d := AlignerDistanceFromCorner
	span := 2 * AlignerOuterRadius
	return [4]raster.Point{
		{X: d, Y: d},                 // TL
		{X: 1 - d - span, Y: d},      // TR
		{X: 1 - d - span, Y: 1 - d - span}, // BR
		{X: d, Y: 1 - d - span},      // BL
	}
}
