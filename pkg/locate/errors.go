package locate

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is the normal negative result: no candidate carried a Name header.
	ErrNotFound = errors.New("artifact header not found")

	// ErrMissingName is returned when metadata is built from headers without a Name.
	ErrMissingName = errors.New("headers have no Name field")
)

// IOError reports that the workspace could not be examined, as opposed to
// examined and found empty.
type IOError struct {
	Op   string // "list" or "read"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is the not-found result.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsIOFailure reports whether err is an I/O failure from a scan.
func IsIOFailure(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr)
}
