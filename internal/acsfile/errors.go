package acsfile

import "errors"

// Sentinel errors surfaced by archive parsing. The root acs package
// re-exports these under its own names so callers never import this
// internal package directly.
var (
	// ErrInvalidMagic is returned when the header signature does not
	// match 0xABCDABC3.
	ErrInvalidMagic = errors.New("acs: invalid file signature")

	// ErrInvalidUTF16 is returned when a length-prefixed string contains
	// an unpaired UTF-16 surrogate.
	ErrInvalidUTF16 = errors.New("acs: malformed UTF-16 string")

	// ErrIndexOutOfRange is returned when a frame references an image or
	// sound index past the end of the corresponding list.
	ErrIndexOutOfRange = errors.New("acs: index out of range")

	// ErrMalformedStructure is returned when a count or locator produces
	// a self-inconsistent layout.
	ErrMalformedStructure = errors.New("acs: malformed structure")
)
