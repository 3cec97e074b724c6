package fuzzytime

import (
	"fmt"
	"strings"
)

// directives maps strftime conversion characters to Go layout tokens.
// Numeric fields use the non-padded tokens, which accept one or two digits
// when parsing.
var directives = map[byte]string{
	'd': "2",
	'e': "_2",
	'm': "1",
	'y': "06",
	'Y': "2006",
	'H': "15",
	'I': "3",
	'M': "4",
	'S': "5",
	'p': "PM",
	'b': "Jan",
	'h': "Jan",
	'B': "January",
	'a': "Mon",
	'A': "Monday",
	'D': "1/2/06",
	'F': "2006-1-2",
	'T': "15:4:5",
	'R': "15:4",
	'%': "%",
}

// literalClashes are substrings that time.Parse would read as layout tokens
// if they appeared in literal text. Go layouts have no escape syntax, so
// formats carrying them cannot be expressed.
var literalClashes = []string{"Jan", "Mon", "MST", "PM", "pm", "Z07"}

// LayoutFromStrftime converts a strptime-style format (the D_FMT / T_FMT
// spelling, e.g. "%d.%m.%Y г.") into a Go layout suitable for time.Parse.
func LayoutFromStrftime(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: empty format", ErrBadOverride)
	}

	var b strings.Builder
	var literal strings.Builder

	flush := func() error {
		lit := literal.String()
		literal.Reset()
		if err := checkLiteral(lit); err != nil {
			return err
		}
		b.WriteString(lit)
		return nil
	}

	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			literal.WriteByte(c)
			continue
		}
		if i+1 >= len(format) {
			return "", fmt.Errorf("%w: trailing %% in %q", ErrBadOverride, format)
		}
		i++
		token, ok := directives[format[i]]
		if !ok {
			return "", fmt.Errorf("%w: unsupported directive %%%c in %q", ErrBadOverride, format[i], format)
		}
		if err := flush(); err != nil {
			return "", err
		}
		b.WriteString(token)
	}
	if err := flush(); err != nil {
		return "", err
	}
	return b.String(), nil
}

func checkLiteral(lit string) error {
	if strings.ContainsAny(lit, "0123456789") {
		return fmt.Errorf("%w: digits in literal text %q", ErrBadOverride, lit)
	}
	for _, clash := range literalClashes {
		if strings.Contains(lit, clash) {
			return fmt.Errorf("%w: literal text %q reads as a layout token", ErrBadOverride, lit)
		}
	}
	return nil
}
