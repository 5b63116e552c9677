package sheet

import (
	"fmt"
	"strings"
)

// pageSize is the physical size, in SVG user units, that the normalized
// [0,1]^2 sheet frame is scaled to.
const pageSize = 1000.0

// WriteSVG renders a Layout's elements into a standalone SVG document.
// Shape geometry is in scope of the layout; the serialization itself is
// not governed by domain rules and is written directly with
// strings.Builder, matching this codebase's plain string-building style
// elsewhere (see internal/batch's text and CSV formatting).
func WriteSVG(l Layout) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`,
		pageSize, pageSize, pageSize, pageSize)
	b.WriteByte('\n')

	for _, el := range l.Elements() {
		switch el.Kind {
		case AlignerElement:
			writeAligner(&b, el)
		case HorizontalBarElement:
			writeBarRect(&b, el, BarLength, BarWidth)
		case VerticalBarElement:
			writeBarRect(&b, el, BarWidth, BarLength)
		case FieldDescriptorElement:
			writeText(&b, el, FieldFontSize)
		case TitleElement:
			writeText(&b, el, TitleFontSize)
		}
	}

	b.WriteString("</svg>\n")
	return b.String()
}

func writeAligner(b *strings.Builder, el Element) {
	cx := (el.X + AlignerOuterRadius) * pageSize
	cy := (el.Y + AlignerOuterRadius) * pageSize
	fmt.Fprintf(b, `<circle cx="%g" cy="%g" r="%g" fill="black"/>`+"\n", cx, cy, AlignerOuterRadius*pageSize)
	fmt.Fprintf(b, `<circle cx="%g" cy="%g" r="%g" fill="white"/>`+"\n", cx, cy, AlignerInnerRadius*pageSize)
}

func writeBarRect(b *strings.Builder, el Element, w, h float64) {
	fmt.Fprintf(b, `<rect x="%g" y="%g" width="%g" height="%g" fill="#CFE2F3"/>`+"\n",
		el.X*pageSize, el.Y*pageSize, w*pageSize, h*pageSize)
}

func writeText(b *strings.Builder, el Element, fontSize float64) {
	x := el.X * pageSize
	y := (el.Y + fontSize) * pageSize
	fmt.Fprintf(b, `<text x="%g" y="%g" font-family="monospace" font-size="%g">%s</text>`+"\n",
		x, y, fontSize*pageSize, escapeXML(el.Text))
}

func escapeXML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
