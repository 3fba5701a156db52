package header

import "errors"

var (
	// ErrMalformedPattern means a field pattern could not be built. With the fixed
	// default sets this is a programmer error.
	ErrMalformedPattern = errors.New("malformed header pattern")

	// ErrUnknownKind is returned for an artifact kind other than plugin or theme.
	ErrUnknownKind = errors.New("unknown artifact kind")
)
