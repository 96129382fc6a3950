package hrr

import (
	"errors"
	"fmt"
)

var (
	// ErrZeroVector is returned when a zero-norm vector would have to be
	// normalized.
	ErrZeroVector = errors.New("vector has zero norm")

	// ErrNoVectors is returned when an operation requires at least one vector.
	ErrNoVectors = errors.New("at least one vector is required")
)

// ErrDimensionMismatch is a named error type for dimension mismatch.
type ErrDimensionMismatch struct {
	Expected int // Expected dimensions
	Actual   int // Actual dimensions
}

// Error returns the error message for dimension mismatch.
func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrInvalidDimension indicates an invalid configured dimension.
type ErrInvalidDimension struct {
	Dimension int
}

// Error returns the error message for an invalid dimension.
func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}
