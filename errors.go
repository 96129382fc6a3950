package semgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/semgo/cleanup"
	"github.com/hupe1980/semgo/hrr"
	"github.com/hupe1980/semgo/neural"
	"github.com/hupe1980/semgo/vocab"
)

var (
	// ErrZeroVector is returned when an operation encounters a vector with
	// (near) zero norm that cannot be normalized.
	ErrZeroVector = errors.New("zero vector")

	// ErrEmptyVocabulary is returned when an operation requires at least
	// one stored concept.
	ErrEmptyVocabulary = errors.New("empty vocabulary")
)

// ErrDuplicateName indicates that an entry with the given name already exists.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDuplicateName struct {
	Name  string
	cause error
}

func (e *ErrDuplicateName) Error() string {
	return fmt.Sprintf("duplicate name: %q", e.Name)
}

func (e *ErrDuplicateName) Unwrap() error { return e.cause }

// ErrUnknownName indicates that no entry with the given name exists.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrUnknownName struct {
	Name  string
	cause error
}

func (e *ErrUnknownName) Error() string {
	return fmt.Sprintf("unknown name: %q", e.Name)
}

func (e *ErrUnknownName) Unwrap() error { return e.cause }

// ErrDimensionMismatch indicates a vector dimensionality mismatch.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrInvalidDimension indicates an invalid configured dimension.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidDimension struct {
	Dimension int
	cause     error
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

func (e *ErrInvalidDimension) Unwrap() error { return e.cause }

// ErrInvalidParameter indicates an out-of-range operation parameter.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidParameter struct {
	Param string
	cause error
}

func (e *ErrInvalidParameter) Error() string {
	return fmt.Sprintf("invalid parameter: %s", e.Param)
}

func (e *ErrInvalidParameter) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Name normalization.
	var dn *vocab.ErrDuplicateName
	if errors.As(err, &dn) {
		return &ErrDuplicateName{Name: dn.Name, cause: err}
	}
	var un *vocab.ErrUnknownName
	if errors.As(err, &un) {
		return &ErrUnknownName{Name: un.Name, cause: err}
	}

	// Dimension normalization.
	var dm *hrr.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Expected: dm.Expected, Actual: dm.Actual, cause: err}
	}
	var id *hrr.ErrInvalidDimension
	if errors.As(err, &id) {
		return &ErrInvalidDimension{Dimension: id.Dimension, cause: err}
	}

	// Degenerate vector unification.
	if errors.Is(err, hrr.ErrZeroVector) {
		return fmt.Errorf("%w: %w", ErrZeroVector, err)
	}
	if errors.Is(err, vocab.ErrEmptyVocabulary) {
		return fmt.Errorf("%w: %w", ErrEmptyVocabulary, err)
	}

	// Parameter normalization.
	if errors.Is(err, vocab.ErrNegativeSigma) {
		return &ErrInvalidParameter{Param: "sigma", cause: err}
	}
	if errors.Is(err, cleanup.ErrNonPositiveIterations) {
		return &ErrInvalidParameter{Param: "maxIterations", cause: err}
	}
	if errors.Is(err, cleanup.ErrNonPositiveTolerance) {
		return &ErrInvalidParameter{Param: "tolerance", cause: err}
	}
	if errors.Is(err, cleanup.ErrNonPositiveSharpness) {
		return &ErrInvalidParameter{Param: "sharpness", cause: err}
	}
	if errors.Is(err, neural.ErrNoNeurons) {
		return &ErrInvalidParameter{Param: "nNeurons", cause: err}
	}

	return err
}
