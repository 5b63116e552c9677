package decode

import (
	"errors"
	"testing"

	"github.com/inkbar/formscan/internal/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLayout() sheet.Layout {
	return sheet.Build(sheet.PageDescription{
		Title: "t",
		Fields: []sheet.FieldDescription{
			{Descriptor: "a", Kind: sheet.FieldBoolean},
			{Descriptor: "n", Kind: sheet.FieldSevenSegment, DigitCount: 2},
		},
	})
}

func TestDecode_BlankSheet(t *testing.T) {
	layout := testLayout()
	_, err := Decode(layout, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSevenSegmentEmpty)
}

func TestDecode_CheckedBoolean(t *testing.T) {
	layout := sheet.Build(sheet.PageDescription{
		Fields: []sheet.FieldDescription{{Descriptor: "a", Kind: sheet.FieldBoolean}},
	})
	bar := layout.Entries[0].Bar

	results, err := Decode(layout, BarsFound{bar.Center()})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, BooleanResult, results[0].Kind)
	assert.True(t, results[0].Boolean)
}

func TestDecode_UncheckedBooleanIsFalse(t *testing.T) {
	layout := sheet.Build(sheet.PageDescription{
		Fields: []sheet.FieldDescription{{Descriptor: "a", Kind: sheet.FieldBoolean}},
	})
	results, err := Decode(layout, nil)
	require.NoError(t, err)
	assert.False(t, results[0].Boolean)
}

// segmentsFor returns the centroids needed to light the given segment
// indices (0=a .. 6=g) of a digit.
func segmentsFor(d sheet.Digit, idx ...int) BarsFound {
	var found BarsFound
	for _, i := range idx {
		found = append(found, d[i].Center())
	}
	return found
}

func TestDecode_SingleDigitFive_LeadingEmptyAllowed(t *testing.T) {
	layout := testLayout()
	digits := layout.Entries[1].Digits
	rightDigit := digits[1]

	// '5' = a,c,d,f,g = indices 0,2,3,5,6.
	found := segmentsFor(rightDigit, 0, 2, 3, 5, 6)

	results, err := Decode(layout, found)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, NumberResult, results[1].Kind)
	assert.Equal(t, uint64(5), results[1].Number)
}

func TestDecode_GapInNumberIsEmptyError(t *testing.T) {
	layout := testLayout()
	digits := layout.Entries[1].Digits
	leftDigit := digits[0]

	// '2' on the left digit, nothing on the right: right-to-left walk
	// sees Empty first (right digit), then a non-empty digit (left) ->
	// gap error.
	found := segmentsFor(leftDigit, 0, 1, 3, 4, 6) // a,b,d,e,g = 2

	_, err := Decode(layout, found)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSevenSegmentEmpty)
}

func TestDecode_InvalidSegmentMask(t *testing.T) {
	layout := testLayout()
	digits := layout.Entries[1].Digits
	rightDigit := digits[1]

	// only a and g set: 0b1000001, not a recognized digit.
	found := segmentsFor(rightDigit, 0, 6)

	_, err := Decode(layout, found)
	require.Error(t, err)
	var invalid *SevenSegmentInvalidError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, uint8(0b1000001), invalid.Bits)
}

func TestMatchBar_ConflictWhenBarIDAlreadyFound(t *testing.T) {
	bar := sheet.Bar{X: 0.5, Y: 0.5, Orientation: sheet.Horizontal, ID: 7}
	alreadyFound := map[int]bool{7: true}
	found := BarsFound{bar.Center()}

	_, err := matchBar(bar, found, alreadyFound)
	require.Error(t, err)
	var conflict *BarConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, 7, conflict.BarID)
}

func TestDecode_TargetSideDuplicateIsNotAConflict(t *testing.T) {
	layout := sheet.Build(sheet.PageDescription{
		Fields: []sheet.FieldDescription{{Descriptor: "a", Kind: sheet.FieldBoolean}},
	})
	bar := layout.Entries[0].Bar

	// Two detected centroids both within threshold of the same bar: the
	// bar itself is only matched once per decode via its BarId, so this
	// does not conflict (target-side duplicates are not errors, only
	// layout-side ones are, per spec.md §4.8/§9).
	center := bar.Center()
	found := BarsFound{center, {X: center.X + 0.0001, Y: center.Y}}
	results, err := Decode(layout, found)
	require.NoError(t, err)
	assert.True(t, results[0].Boolean)
}

func TestDecode_BarDistanceThresholdIsStrict(t *testing.T) {
	layout := sheet.Build(sheet.PageDescription{
		Fields: []sheet.FieldDescription{{Descriptor: "a", Kind: sheet.FieldBoolean}},
	})
	bar := layout.Entries[0].Bar
	center := bar.Center()

	// Centroid at exactly the threshold distance must not match.
	found := BarsFound{{X: center.X + sheet.BarDistanceThreshold, Y: center.Y}}
	results, err := Decode(layout, found)
	require.NoError(t, err)
	assert.False(t, results[0].Boolean)
}

func TestDecode_Idempotent(t *testing.T) {
	layout := testLayout()
	digits := layout.Entries[1].Digits
	found := segmentsFor(digits[1], 0, 2, 3, 5, 6)

	r1, err1 := Decode(layout, found)
	r2, err2 := Decode(layout, found)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, r1, r2)
}
