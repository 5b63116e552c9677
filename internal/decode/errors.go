// Package decode matches detected mark bars against a sheet.Layout and
// turns them into field values: a boolean per checkbox, an integer per
// seven-segment display. Grounded on the original Rust
// parse/scan_sheet_layout.rs decode logic this system's spec was
// distilled from; unlike that source (whose already_found set is
// consulted for conflicts but never actually populated, so the check
// can thus never fire), this package records each successful match
// before the next field is decoded, so repeat-bar conflicts are caught
// as documented.
package decode

import (
	"errors"
	"fmt"
)

// ErrSevenSegmentEmpty is returned when a multi-digit number has no
// digits set at all, or has a non-leading gap (a set digit following an
// unset one in right-to-left reading order).
var ErrSevenSegmentEmpty = errors.New("decode: seven-segment field is empty")

// SevenSegmentInvalidError reports a segment bitmask that doesn't match
// any recognized digit.
type SevenSegmentInvalidError struct {
	Bits uint8
}

func (e *SevenSegmentInvalidError) Error() string {
	return fmt.Sprintf("decode: invalid seven-segment mask %07b", e.Bits)
}

// BarConflictError reports that a layout bar was matched a second time
// within a single decode.
type BarConflictError struct {
	BarID int
}

func (e *BarConflictError) Error() string {
	return fmt.Sprintf("decode: bar %d matched more than once", e.BarID)
}
