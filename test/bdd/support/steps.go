package support

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"github.com/inkbar/formscan/internal/decode"
	"github.com/inkbar/formscan/internal/pipeline"
	"github.com/inkbar/formscan/internal/raster"
	"github.com/inkbar/formscan/internal/rectify"
	"github.com/inkbar/formscan/internal/sheet"
)

// RegisterSteps wires every step definition against a fresh ScenarioContext.
func RegisterSteps(sc *godog.ScenarioContext) {
	ctx := NewScenarioContext()

	sc.Step(`^a layout with one boolean field "([^"]*)" and one (\d+)-digit seven-segment field "([^"]*)"$`,
		func(boolName, digits, numName string) error {
			n, err := strconv.Atoi(digits)
			if err != nil {
				return fmt.Errorf("invalid digit count %q: %w", digits, err)
			}
			ctx.Layout = sheet.Build(sheet.PageDescription{
				Title: "scenario",
				Fields: []sheet.FieldDescription{
					{Descriptor: boolName, Kind: sheet.FieldBoolean},
					{Descriptor: numName, Kind: sheet.FieldSevenSegment, DigitCount: n},
				},
			})
			return nil
		})

	sc.Step(`^a layout with one (\d+)-digit seven-segment field "([^"]*)"$`,
		func(digits, numName string) error {
			n, err := strconv.Atoi(digits)
			if err != nil {
				return fmt.Errorf("invalid digit count %q: %w", digits, err)
			}
			ctx.Layout = sheet.Build(sheet.PageDescription{
				Title: "scenario",
				Fields: []sheet.FieldDescription{
					{Descriptor: numName, Kind: sheet.FieldSevenSegment, DigitCount: n},
				},
			})
			return nil
		})

	sc.Step(`^no bars are marked$`, func() error { return nil })

	sc.Step(`^I mark the boolean field "([^"]*)"$`, func(name string) error {
		entry, ok := ctx.findEntry(name)
		if !ok || entry.Kind != sheet.BooleanEntry {
			return fmt.Errorf("no boolean field %q in layout", name)
		}
		ctx.InkedBarIDs[entry.Bar.ID] = true
		return nil
	})

	sc.Step(`^I mark segments "([^"]*)" of the (left|right) digit of "([^"]*)"$`,
		func(segments, side, name string) error {
			entry, ok := ctx.findEntry(name)
			if !ok || entry.Kind != sheet.SevenSegmentEntry {
				return fmt.Errorf("no seven-segment field %q in layout", name)
			}
			digitIndex := len(entry.Digits) - 1
			if side == "left" {
				digitIndex = 0
			}
			digit := entry.Digits[digitIndex]
			for _, seg := range strings.Split(segments, ",") {
				idx, err := segmentIndex(strings.TrimSpace(seg))
				if err != nil {
					return err
				}
				ctx.InkedBarIDs[digit[idx].ID] = true
			}
			return nil
		})

	sc.Step(`^I warp the rendered sheet with a mild skew$`, func() error {
		ctx.Warped = true
		return nil
	})

	sc.Step(`^I scan the rendered sheet$`, func() error {
		img := renderSheet(ctx.Layout, ctx.InkedBarIDs)
		if ctx.Warped {
			img = applyMildSkew(img)
		}
		ctx.Result, ctx.Err = pipeline.Scan(img, ctx.Layout, pipeline.DefaultConfig())
		return nil
	})

	sc.Step(`^scanning fails with "([^"]*)"$`, func(wantSubstring string) error {
		if ctx.Err == nil {
			return fmt.Errorf("expected scan to fail with %q, but it succeeded", wantSubstring)
		}
		if !strings.Contains(strings.ToLower(ctx.Err.Error()), strings.ToLower(wantSubstring)) {
			return fmt.Errorf("expected error to contain %q, got %q", wantSubstring, ctx.Err.Error())
		}
		return nil
	})

	sc.Step(`^the boolean field "([^"]*)" decodes to (true|false)$`, func(name, want string) error {
		if ctx.Err != nil {
			return fmt.Errorf("scan failed: %w", ctx.Err)
		}
		field, err := fieldFor(ctx.Layout, ctx.Result, name)
		if err != nil {
			return err
		}
		if field.Kind != decode.BooleanResult {
			return fmt.Errorf("field %q is not a boolean result", name)
		}
		if want == "true" && !field.Boolean {
			return fmt.Errorf("expected %q to decode to true, got false", name)
		}
		if want == "false" && field.Boolean {
			return fmt.Errorf("expected %q to decode to false, got true", name)
		}
		return nil
	})

	sc.Step(`^the seven-segment field "([^"]*)" decodes to (\d+)$`, func(name, want string) error {
		if ctx.Err != nil {
			return fmt.Errorf("scan failed: %w", ctx.Err)
		}
		wantNum, err := strconv.ParseUint(want, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid expected number %q: %w", want, err)
		}
		field, err := fieldFor(ctx.Layout, ctx.Result, name)
		if err != nil {
			return err
		}
		if field.Kind != decode.NumberResult {
			return fmt.Errorf("field %q is not a number result", name)
		}
		if field.Number != wantNum {
			return fmt.Errorf("expected %q to decode to %d, got %d", name, wantNum, field.Number)
		}
		return nil
	})
}

// fieldFor returns the decoded result for the field at descriptor's index
// in layout, following the declaration-order contract LayoutResult makes.
func fieldFor(layout sheet.Layout, result decode.LayoutResult, descriptor string) (decode.FieldResult, error) {
	for i, d := range layout.Descriptors {
		if d.Text == descriptor {
			if i >= len(result) {
				return decode.FieldResult{}, fmt.Errorf("no decoded result for field %q", descriptor)
			}
			return result[i], nil
		}
	}
	return decode.FieldResult{}, fmt.Errorf("no field %q in layout", descriptor)
}

func segmentIndex(letter string) (int, error) {
	segments := "abcdefg"
	idx := strings.IndexByte(segments, letter[0])
	if len(letter) != 1 || idx < 0 {
		return 0, fmt.Errorf("unrecognized segment %q", letter)
	}
	return idx, nil
}

// applyMildSkew warps img as if the photographed sheet had been tilted:
// the aligner quad is displaced by a small, known offset before the
// orchestrator re-detects and rectifies it.
func applyMildSkew(img raster.Image) raster.Image {
	s := float64(canonicalSize)
	src := [4]raster.Point{
		{X: 0, Y: 0}, {X: s, Y: 0}, {X: s, Y: s}, {X: 0, Y: s},
	}
	shift := 0.04 * s
	dst := [4]raster.Point{
		{X: shift, Y: shift * 0.5},
		{X: s - shift*0.5, Y: shift},
		{X: s - shift, Y: s - shift*0.5},
		{X: shift * 0.5, Y: s - shift},
	}
	warped, err := rectify.Warp(img, src, dst, canonicalSize, canonicalSize)
	if err != nil {
		return img
	}
	return warped
}
