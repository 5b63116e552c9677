package pipeline

import "errors"

// ErrUnexpectedImageDimensions guards against a zero-sized input image,
// which would make every downstream fraction undefined.
var ErrUnexpectedImageDimensions = errors.New("pipeline: image has zero width or height")
