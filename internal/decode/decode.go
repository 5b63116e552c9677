package decode

import "github.com/inkbar/formscan/internal/sheet"

// ResultKind tags a FieldResult's variant.
type ResultKind int

const (
	BooleanResult ResultKind = iota
	NumberResult
)

// FieldResult is one field's decoded value, in layout declaration order.
type FieldResult struct {
	Kind    ResultKind
	Boolean bool
	Number  uint64
}

// LayoutResult is the full decode output, one FieldResult per layout
// entry, in order.
type LayoutResult []FieldResult

// Decode walks a layout's entries in order, matching each against found,
// and returns one FieldResult per entry. The first field-level error
// aborts the whole decode, per spec.md §4.8/§7: no partial result is
// returned alongside an error.
func Decode(layout sheet.Layout, found BarsFound) (LayoutResult, error) {
	alreadyFound := make(map[int]bool)
	results := make(LayoutResult, 0, len(layout.Entries))

	for _, entry := range layout.Entries {
		switch entry.Kind {
		case sheet.BooleanEntry:
			set, err := matchBar(entry.Bar, found, alreadyFound)
			if err != nil {
				return nil, err
			}
			results = append(results, FieldResult{Kind: BooleanResult, Boolean: set})

		case sheet.SevenSegmentEntry:
			n, err := decodeNumber(entry.Digits, found, alreadyFound)
			if err != nil {
				return nil, err
			}
			results = append(results, FieldResult{Kind: NumberResult, Number: n})
		}
	}

	return results, nil
}

// matchBar reports whether a layout bar is set (some detected centroid
// lies within sheet.BarDistanceThreshold of its center), raising
// BarConflictError if this bar's ID was already matched earlier in the
// same decode.
func matchBar(b sheet.Bar, found BarsFound, alreadyFound map[int]bool) (bool, error) {
	if !found.anyWithin(b.Center(), sheet.BarDistanceThreshold) {
		return false, nil
	}
	if alreadyFound[b.ID] {
		return false, &BarConflictError{BarID: b.ID}
	}
	alreadyFound[b.ID] = true
	return true, nil
}

// decodeDigit packs one digit's seven segments (a..g, a = bit 6) into a
// mask and maps it to a value, or reports Empty/Invalid.
func decodeDigit(d sheet.Digit, found BarsFound, alreadyFound map[int]bool) (value int, empty bool, err error) {
	var mask uint8
	for i, bar := range d {
		set, err := matchBar(bar, found, alreadyFound)
		if err != nil {
			return 0, false, err
		}
		if set {
			mask |= 1 << uint(6-i)
		}
	}

	if mask == emptyMask {
		return 0, true, nil
	}
	v, ok := digitsByMask[mask]
	if !ok {
		return 0, false, &SevenSegmentInvalidError{Bits: mask}
	}
	return v, false, nil
}

// decodeNumber walks digits right-to-left (least significant first),
// accumulating a decimal value. A digit gap (a set digit appearing after
// an unset one, reading right-to-left) or an all-empty number both
// report ErrSevenSegmentEmpty; a leading run of empty digits is allowed.
func decodeNumber(digits []sheet.Digit, found BarsFound, alreadyFound map[int]bool) (uint64, error) {
	var total uint64
	multiplier := uint64(1)
	trailingEmptySeen := false
	anyNonEmpty := false

	for i := len(digits) - 1; i >= 0; i-- {
		value, empty, err := decodeDigit(digits[i], found, alreadyFound)
		if err != nil {
			return 0, err
		}

		if empty {
			trailingEmptySeen = true
		} else {
			if trailingEmptySeen {
				return 0, ErrSevenSegmentEmpty
			}
			anyNonEmpty = true
			total += uint64(value) * multiplier
		}
		multiplier *= 10
	}

	if !anyNonEmpty {
		return 0, ErrSevenSegmentEmpty
	}
	return total, nil
}
