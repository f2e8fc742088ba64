package codec

import (
	"errors"
	"fmt"
)

// Error kinds shared by every layout. Wrapped errors carry the detail;
// callers test the kind with errors.Is.
var (
	// ErrFormat reports input shorter than a layout's header, or a field
	// value that cannot be represented in its slot.
	ErrFormat = errors.New("format error")

	// ErrIndex reports out-of-range record access.
	ErrIndex = errors.New("index out of range")
)

// IOError reports a file that could not be opened, read or written.
type IOError struct {
	Op   string // "open", "read", "write", "rename", ...
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func formatErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrFormat, fmt.Sprintf(format, args...))
}

// IndexError wraps ErrIndex with the offending index and the table length.
func IndexError(index, length int) error {
	return fmt.Errorf("%w: %d (have %d records)", ErrIndex, index, length)
}
