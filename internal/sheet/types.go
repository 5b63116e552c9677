package sheet

import "github.com/inkbar/formscan/internal/raster"

// Orientation distinguishes a horizontal bar (wide) from a vertical one
// (tall).
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// Bar is a template mark: a rectangle the user overlays with dark pen to
// set it. (X,Y) is the top-left corner in normalized sheet coordinates.
// ID is dense and unique within one Layout.
type Bar struct {
	X, Y        float64
	Orientation Orientation
	ID          int
}

// Center returns the rectangle's center point, the coordinate a detected
// bar's centroid is compared against during decode, per spec.md §4.8.
func (b Bar) Center() raster.Point {
	if b.Orientation == Horizontal {
		return raster.Point{X: b.X + BarLength/2, Y: b.Y + BarWidth/2}
	}
	return raster.Point{X: b.X + BarWidth/2, Y: b.Y + BarLength/2}
}

// Digit is one seven-segment display unit, segments a..g in the
// Wikipedia convention (a top, b/c right verticals, d bottom, e/f left
// verticals, g middle).
type Digit [7]Bar

// EntryKind tags a LayoutEntry's variant.
type EntryKind int

const (
	BooleanEntry EntryKind = iota
	SevenSegmentEntry
)

// Entry is one field's rendered controls: either a single Bar (Boolean)
// or an ordered left-to-right run of Digits (SevenSegmentEntry).
type Entry struct {
	Kind   EntryKind
	Bar    Bar     // valid when Kind == BooleanEntry
	Digits []Digit // valid when Kind == SevenSegmentEntry, one per digit, most-significant first
}

// Descriptor is one field label's placement.
type Descriptor struct {
	X, Y float64
	Text string
}

// Layout is the immutable, built template: every field's controls, every
// label, and the four corner aligners, all in normalized [0,1]^2 sheet
// coordinates.
type Layout struct {
	Title       string
	Entries     []Entry
	Descriptors []Descriptor
	// Aligners holds each corner aligner's top-left anchor (not its
	// center), in TL, TR, BR, BL order, matching the Element table of
	// spec.md §6 ("center = top-left anchor + (R_outer, R_outer)").
	Aligners [4]raster.Point
}

// FieldKind tags a page-description field's requested control.
type FieldKind int

const (
	FieldBoolean FieldKind = iota
	FieldSevenSegment
)

// FieldDescription is one entry of a high-level page description: a
// human-readable label plus the kind of control it renders to.
type FieldDescription struct {
	Descriptor string
	Kind       FieldKind
	DigitCount int // valid when Kind == FieldSevenSegment, >= 1
}

// PageDescription is the full input to Build: a title and an ordered
// list of fields.
type PageDescription struct {
	Title  string
	Fields []FieldDescription
}
