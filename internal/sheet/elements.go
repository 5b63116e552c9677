package sheet

import "github.com/inkbar/formscan/internal/raster"

// ElementKind tags one drawable shape of the rendered sheet, per the
// element table of spec.md §6.
type ElementKind int

const (
	AlignerElement ElementKind = iota
	HorizontalBarElement
	VerticalBarElement
	FieldDescriptorElement
	TitleElement
)

// TemplateBlue is the fill color of mark bars: bright enough that every
// channel clears the dark threshold, so unfilled bars are invisible to
// the thresholder.
var TemplateBlue = raster.Color{R: 0xCF, G: 0xE2, B: 0xF3}

// Element is one shape to draw on the printed sheet. Interpretation of
// X, Y depends on Kind: for AlignerElement it's the top-left anchor (the
// disk center is anchor+(R,R)); for the bar kinds it's the rectangle's
// top-left; for the text kinds it's the baseline origin before the
// font-size offset described in spec.md §6.
type Element struct {
	Kind ElementKind
	X, Y float64
	Text string
}

// Elements renders the full ordered drawable list for the sheet: the
// four aligners, every field's bars, every descriptor label, and the
// title.
func (l Layout) Elements() []Element {
	var out []Element

	for _, anchor := range l.Aligners {
		out = append(out, Element{Kind: AlignerElement, X: anchor.X, Y: anchor.Y})
	}

	for _, entry := range l.Entries {
		switch entry.Kind {
		case BooleanEntry:
			out = append(out, barElement(entry.Bar))
		case SevenSegmentEntry:
			for _, digit := range entry.Digits {
				for _, b := range digit {
					out = append(out, barElement(b))
				}
			}
		}
	}

	for _, d := range l.Descriptors {
		out = append(out, Element{Kind: FieldDescriptorElement, X: d.X, Y: d.Y, Text: d.Text})
	}

	out = append(out, Element{Kind: TitleElement, X: titleX, Y: titleY, Text: l.Title})

	return out
}

func barElement(b Bar) Element {
	kind := HorizontalBarElement
	if b.Orientation == Vertical {
		kind = VerticalBarElement
	}
	return Element{Kind: kind, X: b.X, Y: b.Y}
}
