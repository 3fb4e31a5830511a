package infopanel

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a payload or envelope failed validation.
	ErrValidation = errors.New("validation error")

	// ErrMissingStyle indicates the host omitted a declared style property.
	ErrMissingStyle = errors.New("missing style property")

	// ErrUnknownMessage indicates an envelope carried an unrecognized type.
	ErrUnknownMessage = errors.New("unknown message type")
)
