package cleanup

import "errors"

var (
	// ErrNonPositiveIterations is returned when maxIterations is not positive.
	ErrNonPositiveIterations = errors.New("maxIterations must be positive")

	// ErrNonPositiveTolerance is returned when tolerance is not positive.
	ErrNonPositiveTolerance = errors.New("tolerance must be positive")

	// ErrNonPositiveSharpness is returned when the configured gain is not
	// positive.
	ErrNonPositiveSharpness = errors.New("sharpness must be positive")
)
