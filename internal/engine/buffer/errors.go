package buffer

import "errors"

// Errors returned by buffer operations.
var (
	// ErrOutOfBounds indicates a position or line outside the document.
	ErrOutOfBounds = errors.New("position out of bounds")

	// ErrInvalidBoundary indicates a position inside a multi-byte character.
	ErrInvalidBoundary = errors.New("position splits a character")

	// ErrInvalidText indicates inserted text that is not valid UTF-8.
	ErrInvalidText = errors.New("text is not valid UTF-8")
)
