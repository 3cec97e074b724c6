package fuzzytime

import (
	"errors"
	"fmt"
)

var (
	// ErrFormatMismatch is matched by every *ParseError: no candidate
	// template, including a configured override, accepted the input.
	ErrFormatMismatch = errors.New("no candidate format matched")

	// ErrBadOverride reports a D_FMT / T_FMT value that cannot be turned
	// into a Go layout.
	ErrBadOverride = errors.New("invalid override format")
)

// Kind names the axis a ParseError was raised for.
type Kind string

const (
	KindDate Kind = "date"
	KindTime Kind = "time"
)

// ParseError carries the original text and its simplified form.
type ParseError struct {
	Kind       Kind
	Text       string
	Simplified string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%q (%s) could not be parsed as a %s", e.Text, e.Simplified, e.Kind)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrFormatMismatch
}
