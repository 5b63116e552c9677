// Package targets classifies raw connected-component blobs into the
// kinds of printed mark spec.md §4.4 cares about (alignment rings,
// horizontal/vertical bars, unclassified debug blobs, or noise), and picks
// and orders the four alignment marks used to rectify the page. Grounded
// on the teacher's internal/detector confidence/classification conventions
// and, for the exact thresholds, on the original Rust target.rs this
// system's spec was distilled from.
package targets

import "github.com/inkbar/formscan/internal/components"

// Kind tags a classified Target.
type Kind int

const (
	// Aligner is a corner alignment ring.
	Aligner Kind = iota
	// HorizontalBar is a wide mark bar.
	HorizontalBar
	// VerticalBar is a tall mark bar.
	VerticalBar
	// Debug is an unclassified blob kept only for debug overlays.
	Debug
)

func (k Kind) String() string {
	switch k {
	case Aligner:
		return "Aligner"
	case HorizontalBar:
		return "HorizontalBar"
	case VerticalBar:
		return "VerticalBar"
	default:
		return "Debug"
	}
}

// Target is a classified blob with coordinates normalized to fractions of
// the image dimensions.
type Target struct {
	Kind                     Kind
	Top, Bottom, Left, Right float64 // in [0,1]
	MeanX, MeanY             float64 // in [0,1]
	FractionOfImageFilled    float64 // in (0,1]
}

// Classification thresholds, the contract values of spec.md §4.4.
const (
	noiseFullnessThreshold     = 0.1
	noiseImageFilledThreshold  = 0.0001
	maxSquareness              = 5.0
	alignerFullness            = 0.4
	fullnessTolerance          = 0.2
	alignerSquareTolerance     = 2.0
	barTargetAreaFraction      = 0.0003
	barTargetAreaFracTolerance = 0.0002
	barSquareness              = 3.0
	barSquarenessTolerance     = 2.0
)

// Classify maps a raw Blob, against the dimensions of the image it was
// extracted from, to a Target. It returns false if the blob is noise.
func Classify(b components.Blob, imgW, imgH int) (Target, bool) {
	targetBase := float64(b.Right - b.Left + 1)
	targetHeight := float64(b.Bottom - b.Top + 1)
	area := targetBase * targetHeight
	imgArea := float64(imgW * imgH)

	areaFraction := area / imgArea
	imageFilledFraction := float64(b.PixelsFilled) / imgArea
	fullness := float64(b.PixelsFilled) / area
	squareness := squarenessOf(targetBase, targetHeight)

	if fullness < noiseFullnessThreshold ||
		imageFilledFraction < noiseImageFilledThreshold ||
		squareness > maxSquareness {
		return Target{}, false
	}

	isAligner := squareness < alignerSquareTolerance && absf(fullness-alignerFullness) < fullnessTolerance
	isBar := absf(areaFraction-barTargetAreaFraction) < barTargetAreaFracTolerance &&
		absf(squareness-barSquareness) < barSquarenessTolerance

	var kind Kind
	switch {
	case isBar && isAligner:
		return Target{}, false // ambiguous, drop
	case !isBar && isAligner:
		kind = Aligner
	case isBar && !isAligner:
		if targetHeight <= targetBase {
			kind = HorizontalBar
		} else {
			kind = VerticalBar
		}
	default:
		kind = Debug
	}

	return Target{
		Kind:                  kind,
		Top:                   float64(b.Top) / float64(imgH),
		Bottom:                float64(b.Bottom) / float64(imgH),
		Left:                  float64(b.Left) / float64(imgW),
		Right:                 float64(b.Right) / float64(imgW),
		MeanX:                 float64(b.MeanX) / float64(imgW),
		MeanY:                 float64(b.MeanY) / float64(imgH),
		FractionOfImageFilled: imageFilledFraction,
	}, true
}

// squarenessOf returns max(base,height)/min(base,height), always >= 1.
func squarenessOf(base, height float64) float64 {
	if base > height {
		return base / height
	}
	return height / base
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// ClassifyAll classifies every blob, dropping noise.
func ClassifyAll(blobs []components.Blob, imgW, imgH int) []Target {
	out := make([]Target, 0, len(blobs))
	for _, b := range blobs {
		if t, ok := Classify(b, imgW, imgH); ok {
			out = append(out, t)
		}
	}
	return out
}

// BoundingBoxCenter returns the center of the target's bounding box
// (mean(left,right), mean(top,bottom)), used by the orchestrator's
// second pass per spec.md §4.9 step 8 to locate bar-shaped targets — as
// distinct from MeanX/MeanY, the pixel centroid used for aligners.
func (t Target) BoundingBoxCenter() (x, y float64) {
	return (t.Left + t.Right) / 2, (t.Top + t.Bottom) / 2
}

// IsBar reports whether the target is a HorizontalBar or VerticalBar.
func (t Target) IsBar() bool {
	return t.Kind == HorizontalBar || t.Kind == VerticalBar
}
