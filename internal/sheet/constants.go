// Package sheet builds the printable template layout from a high-level
// page description: where the four corner aligners, the per-field mark
// bars, and the label text sit in the normalized [0,1]^2 sheet frame.
// Grounded on the original Rust make/scan_sheet_layout.rs and
// make/scan_sheet_elements.rs this spec was distilled from; element-list
// construction follows the teacher's config-struct-of-constants style
// (internal/rectify/config.go).
package sheet

// Layout geometry constants, the contract values of spec.md §4.7.
const (
	AlignerOuterRadius         = 0.05 * 10 / 7
	AlignerInnerRadius         = 0.05
	AlignerDistanceFromCorner  = 0.05
	BarWidth                   = 0.01
	BarLength                  = 0.03
	BarSpace                   = 0.003
	FieldFontSize              = 0.05
	TitleFontSize              = 0.13
	TextWidthMultiplier        = 0.6
	TextGap                    = 0.02
	FieldStartX                = 0.2
	VerticalFieldStart         = 0.3
	VerticalFieldSpace         = 0.1
	BarVerticalOffset          = 0.03
	BarDistanceThreshold       = 0.01
	digitGap                   = BarLength
	titleX                     = 0.3
	titleY                     = 0.05
)

// segmentOffset describes one seven-segment bar's offset from its digit's
// top-left anchor, and whether it's drawn horizontal.
type segmentOffset struct {
	dx, dy     float64
	horizontal bool
}

// sevenSegmentOffsets gives segments a..g (index 0..6) per the Wikipedia
// seven-segment convention: a top, b/c right verticals, d bottom, e/f left
// verticals, g middle.
var sevenSegmentOffsets = [7]segmentOffset{
	{dx: BarWidth + BarSpace, dy: 0, horizontal: true}, // a: top
	{dx: BarWidth + BarLength + 2*BarSpace, dy: BarWidth + BarSpace, horizontal: false},                   // b: upper right
	{dx: BarWidth + BarLength + 2*BarSpace, dy: 2*BarWidth + BarLength + 3*BarSpace, horizontal: false},    // c: lower right
	{dx: BarWidth + BarSpace, dy: 2*BarWidth + 2*BarLength + 4*BarSpace, horizontal: true},                // d: bottom
	{dx: 0, dy: 2*BarWidth + BarLength + 3*BarSpace, horizontal: false},                                   // e: lower left
	{dx: 0, dy: BarWidth + BarSpace, horizontal: false},                                                   // f: upper left
	{dx: BarWidth + BarSpace, dy: BarWidth + BarLength + 2*BarSpace, horizontal: true},                    // g: middle
}

// digitStride is the horizontal distance between consecutive digits in a
// multi-digit seven-segment display.
const digitStride = 2*BarWidth + BarLength + digitGap
