package medview

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidField is matched by every *InvalidFieldError.
	ErrInvalidField = errors.New("record field out of range")

	// ErrResource is matched by every *ResourceError.
	ErrResource = errors.New("output target failure")

	// ErrSessionClosed is returned when writing to a closed session.
	ErrSessionClosed = errors.New("session is closed")

	// ErrSessionBroken is returned when writing after a resource failure.
	ErrSessionBroken = errors.New("session is unusable after an I/O failure")

	// ErrSinkExhausted is returned by sinks that cannot produce another target.
	ErrSinkExhausted = errors.New("sink cannot open another target")

	// ErrBadHeader and ErrCorruptRecord are returned by Reader.
	ErrBadHeader     = errors.New("invalid DAT header")
	ErrCorruptRecord = errors.New("corrupt DAT record")
	ErrTruncated     = errors.New("DAT file shorter than its header count")
)

// InvalidFieldError names the record field that does not fit in a byte.
// For the year field, Value is the calendar year.
type InvalidFieldError struct {
	Field string
	Value int
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("%s: %s = %d", ErrInvalidField, e.Field, e.Value)
}

func (e *InvalidFieldError) Is(target error) bool {
	return target == ErrInvalidField
}

// ResourceError wraps an I/O failure on an output target.
type ResourceError struct {
	Op   string
	Name string
	Err  error
}

func (e *ResourceError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s: %s: %v", ErrResource, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s %s: %v", ErrResource, e.Op, e.Name, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

func (e *ResourceError) Is(target error) bool {
	return target == ErrResource
}
