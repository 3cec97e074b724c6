package fuzzytime

import (
	"strings"

	"golang.org/x/text/language"
)

// POSIXDatePattern is the D_FMT of the C/POSIX locale.
const POSIXDatePattern = "%m/%d/%y"

const (
	monthFirstPattern = "%m/%d/%Y"
	yearFirstPattern  = "%Y-%m-%d"
	dayFirstPattern   = "%d/%m/%Y"
)

// Regions whose conventional short date is month/day/year.
var monthFirstRegions = map[string]bool{
	"US": true, "PH": true, "FM": true, "MH": true, "PW": true,
	"AS": true, "GU": true, "MP": true, "PR": true, "UM": true, "VI": true,
}

// Regions whose conventional short date is year-month-day.
var yearFirstRegions = map[string]bool{
	"CN": true, "JP": true, "KR": true, "KP": true, "TW": true, "HU": true,
	"LT": true, "MN": true, "SE": true, "IR": true, "CA": true, "BT": true,
}

// IsDayFirst scans a strftime date pattern left to right and reports whether
// a day marker (d or e) shows up before a month marker (m). A pattern with
// neither is treated as month-first.
func IsDayFirst(pattern string) bool {
	for _, ch := range pattern {
		switch ch {
		case 'd', 'e':
			return true
		case 'm':
			return false
		}
	}
	return false
}

// DatePatternForLocale approximates the platform D_FMT for a locale name
// such as "en-US", "de_DE.UTF-8" or "C". Unknown or POSIX locales get the
// C pattern.
func DatePatternForLocale(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.IndexAny(name, ".@"); i >= 0 {
		name = name[:i]
	}
	name = strings.ReplaceAll(name, "_", "-")
	if name == "" || strings.EqualFold(name, "C") || strings.EqualFold(name, "POSIX") {
		return POSIXDatePattern
	}

	tag, err := language.Parse(name)
	if err != nil {
		return POSIXDatePattern
	}
	region, confidence := tag.Region()
	if confidence == language.No {
		return POSIXDatePattern
	}

	code := region.String()
	switch {
	case monthFirstRegions[code]:
		return monthFirstPattern
	case yearFirstRegions[code]:
		return yearFirstPattern
	default:
		return dayFirstPattern
	}
}
