package snapshot

import "errors"

var (
	// ErrInvalidMagic is returned when a file does not start with the
	// snapshot magic number.
	ErrInvalidMagic = errors.New("invalid magic number")

	// ErrInvalidVersion is returned for unsupported format versions.
	ErrInvalidVersion = errors.New("unsupported version")

	// ErrCorruptHeader is returned when header fields are implausible.
	ErrCorruptHeader = errors.New("corrupt header")

	// ErrUnknownCompression is returned for unrecognized compression codes.
	ErrUnknownCompression = errors.New("unknown compression type")
)
