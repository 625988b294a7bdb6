// Package aspect classifies image dimensions as near-square or not.
//
// The classification drives the two processing paths: near-square images
// are stretched straight to the target square, everything else is
// proportionally scaled and composed over a generated backdrop.
package aspect

import (
	"errors"
	"fmt"
)

// DefaultTolerance is the default allowed deviation from a 1:1 ratio.
const DefaultTolerance = 0.05

// ErrInvalidDimensions is returned for zero or negative width/height.
var ErrInvalidDimensions = errors.New("invalid image dimensions")

// Classification is the result of comparing an image's aspect ratio
// against the square tolerance.
type Classification int

const (
	// NearSquare means the ratio deviates from 1:1 by at most the tolerance.
	NearSquare Classification = iota
	// NonSquare means the deviation exceeds the tolerance.
	NonSquare
)

// String returns a human-readable name for the classification.
func (c Classification) String() string {
	switch c {
	case NearSquare:
		return "near-square"
	case NonSquare:
		return "non-square"
	default:
		return "unknown"
	}
}

// Classify reports whether width x height counts as near-square.
// The deviation is |width-height| / max(width, height); a deviation
// exactly equal to the tolerance is still near-square.
func Classify(width, height int, tolerance float64) (Classification, error) {
	if width <= 0 || height <= 0 {
		return NonSquare, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	longest := width
	if height > longest {
		longest = height
	}

	diff := width - height
	if diff < 0 {
		diff = -diff
	}

	deviation := float64(diff) / float64(longest)
	if deviation <= tolerance {
		return NearSquare, nil
	}
	return NonSquare, nil
}
