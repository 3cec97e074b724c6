// Package oximeter decodes the CSV exports of consumer pulse oximeters into
// a stream of timestamped readings.
package oximeter

import (
	"errors"
	"fmt"
	"time"
)

// Reading is one sample. A nil measurement means the cell was empty or not
// a number; the timestamp is always present.
type Reading struct {
	Timestamp time.Time
	SpO2      *int
	PulseRate *int
}

// Complete reports whether both measurements are present.
func (r Reading) Complete() bool {
	return r.SpO2 != nil && r.PulseRate != nil
}

// Source yields readings in file order and returns io.EOF when done.
type Source interface {
	Next() (Reading, error)
}

// DateTimeParser turns the separate date and time cells of a row into one
// timestamp. *fuzzytime.Parser satisfies it.
type DateTimeParser interface {
	ParseDateTime(date, clock string) (time.Time, error)
}

var (
	// ErrBadHeader means the first row is not the vendor's header.
	ErrBadHeader = errors.New("file does not appear to be a valid export")

	// ErrMalformedRow is matched by every *MalformedRowError.
	ErrMalformedRow = errors.New("malformed row")
)

// MalformedRowError stops a Source. Line is 1-based and counts the header.
type MalformedRowError struct {
	Line   int
	Reason string
	Err    error
}

func (e *MalformedRowError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s on line %d: %s", ErrMalformedRow, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s on line %d: %s: %v", ErrMalformedRow, e.Line, e.Reason, e.Err)
}

func (e *MalformedRowError) Unwrap() error {
	return e.Err
}

func (e *MalformedRowError) Is(target error) bool {
	return target == ErrMalformedRow
}
