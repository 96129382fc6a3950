package vocab

import (
	"errors"
	"fmt"
)

var (
	// ErrNegativeSigma is returned when a noise standard deviation is negative.
	ErrNegativeSigma = errors.New("sigma must be non-negative")

	// ErrEmptyVocabulary is returned when an operation requires at least one
	// stored vector.
	ErrEmptyVocabulary = errors.New("vocabulary is empty")
)

// ErrDuplicateName indicates that a name is already taken.
type ErrDuplicateName struct {
	Name string
}

// Error returns the error message for a duplicate name.
func (e *ErrDuplicateName) Error() string {
	return fmt.Sprintf("name %q already exists", e.Name)
}

// ErrUnknownName indicates a lookup for a name that was never added.
type ErrUnknownName struct {
	Name string
}

// Error returns the error message for an unknown name.
func (e *ErrUnknownName) Error() string {
	return fmt.Sprintf("name %q not found", e.Name)
}
