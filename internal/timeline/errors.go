package timeline

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange indicates a frame index outside [0, len).
	ErrOutOfRange = errors.New("timeline: frame index out of range")

	// ErrLastFrame indicates an attempt to remove the only remaining frame.
	ErrLastFrame = errors.New("timeline: cannot remove the last frame")
)

// RangeError carries the offending index.
type RangeError struct {
	Index int
	Len   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%v: index %d, have %d frames", ErrOutOfRange, e.Index, e.Len)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}
