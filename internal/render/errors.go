package render

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedEntry is reported for symlinks, devices, sockets and pipes.
	ErrUnsupportedEntry = errors.New("unsupported filesystem entry")
	// ErrNestedDestination is reported when a tree would be written into itself.
	ErrNestedDestination = errors.New("destination is inside source tree")
)

// IOError records a failed filesystem operation and the path it touched.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func ioErr(op, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: err}
}
