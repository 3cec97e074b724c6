package fuzzytime

import (
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

var (
	nonDigits       = regexp.MustCompile(`[^0-9]+`)
	nonDigitsOrAMPM = regexp.MustCompile(`[^0-9AaPpMm]+`)
)

// SimplifyDate reduces a date string to its digit groups separated by single
// spaces. "2024. 05. 11", "11.5.2024 г." and "2024年05月11日" become
// "2024 05 11", "11 5 2024" and "2024 05 11".
//
// Full-width digits (as typed by CJK input methods) are folded to ASCII
// first; any other character counts as a separator.
func SimplifyDate(s string) string {
	s = width.Fold.String(s)
	return strings.TrimSpace(nonDigits.ReplaceAllString(s, " "))
}

// SimplifyTime is SimplifyDate for times, except that the letters A, P and M
// (any case) survive so a meridiem marker stays intact wherever it appears.
func SimplifyTime(s string) string {
	s = width.Fold.String(s)
	return strings.TrimSpace(nonDigitsOrAMPM.ReplaceAllString(s, " "))
}
