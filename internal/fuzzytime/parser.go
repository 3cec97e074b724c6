// Package fuzzytime turns the date and time strings written by oximeter
// vendor software into timestamps.
//
// Vendors localize their exports: the year, month and day can come in any
// order, separators vary with the language ("11.5.2024 г.", "2024年05月11日"),
// and clocks may be 12- or 24-hour with the meridiem before or after the
// digits. The Parser resolves this heuristically:
//
//  1. A user override format (D_FMT / T_FMT) is tried first, if configured.
//  2. The input is simplified to digit groups (plus AM/PM for times).
//  3. An ordered list of candidate templates is tried with strict matching.
//  4. The template that matched moves to the front of its list, so a file
//     written in one shape settles on the right template after one row.
package fuzzytime

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tartampluch/go-medview/internal/config"
)

// TimeOfDay is a wall-clock time with no date attached.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// On returns the instant at this time of day on day's calendar date, in
// day's location.
func (t TimeOfDay) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, t.Second, 0, day.Location())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// Options configures a Parser.
type Options struct {
	// DateOverride and TimeOverride are strftime formats tried verbatim
	// against the raw input before any simplification.
	DateOverride string
	TimeOverride string

	// DayFirst selects the date seed order; see DateSeed.
	DayFirst bool

	// DateSeed and TimeSeed replace the default seed lists when non-nil.
	DateSeed []Template
	TimeSeed []Template
}

// Parser owns its candidate lists. Each instance learns independently, so
// tests and concurrent conversions do not influence each other.
type Parser struct {
	dateOverride string
	timeOverride string
	dates        *Candidates
	times        *Candidates
}

// NewParser builds a Parser. An override that cannot be expressed as a Go
// layout is logged and left unset, so parsing goes straight to the
// candidate templates.
func NewParser(opts Options) *Parser {
	p := &Parser{
		dateOverride: overrideLayout(KindDate, opts.DateOverride),
		timeOverride: overrideLayout(KindTime, opts.TimeOverride),
	}

	dateSeed := opts.DateSeed
	if dateSeed == nil {
		dateSeed = DateSeed(opts.DayFirst)
	}
	timeSeed := opts.TimeSeed
	if timeSeed == nil {
		timeSeed = TimeSeed()
	}
	p.dates = NewCandidates(dateSeed)
	p.times = NewCandidates(timeSeed)

	return p
}

// overrideLayout converts format, returning "" when it is empty or unusable.
func overrideLayout(kind Kind, format string) string {
	if format == "" {
		return ""
	}
	layout, err := LayoutFromStrftime(format)
	if err != nil {
		slog.Warn(config.MsgOverrideSkip,
			config.LogKeyComponent, config.CompParser,
			config.LogKeyKind, string(kind),
			config.LogKeyError, err,
		)
		return ""
	}
	return layout
}

// DateCandidates returns the current date template order.
func (p *Parser) DateCandidates() []Template {
	return p.dates.Templates()
}

// TimeCandidates returns the current time template order.
func (p *Parser) TimeCandidates() []Template {
	return p.times.Templates()
}

// ParseDate returns midnight UTC of the date text represents.
func (p *Parser) ParseDate(text string) (time.Time, error) {
	if p.dateOverride != "" {
		if t, ok := strictParse(p.dateOverride, text); ok {
			return t, nil
		}
	}

	simplified := SimplifyDate(text)
	if t, ok := p.dates.Match(simplified, strictParse); ok {
		return t, nil
	}
	return time.Time{}, &ParseError{Kind: KindDate, Text: text, Simplified: simplified}
}

// ParseTime returns the time of day text represents.
func (p *Parser) ParseTime(text string) (TimeOfDay, error) {
	if p.timeOverride != "" {
		if t, ok := clockParse(p.timeOverride, text); ok {
			return clockOf(t), nil
		}
		// time.Parse only knows upper-case meridiem markers.
		if upper := strings.ToUpper(text); upper != text {
			if t, ok := clockParse(p.timeOverride, upper); ok {
				return clockOf(t), nil
			}
		}
	}

	simplified := SimplifyTime(text)
	if t, ok := p.times.Match(strings.ToUpper(simplified), clockParse); ok {
		return clockOf(t), nil
	}
	return TimeOfDay{}, &ParseError{Kind: KindTime, Text: text, Simplified: simplified}
}

// ParseDateTime combines ParseDate and ParseTime into one UTC timestamp.
func (p *Parser) ParseDateTime(date, clock string) (time.Time, error) {
	day, err := p.ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	tod, err := p.ParseTime(clock)
	if err != nil {
		return time.Time{}, err
	}
	return tod.On(day), nil
}

// strictParse accepts value only if layout consumes all of it.
func strictParse(layout, value string) (time.Time, bool) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// clockParse is strictParse for clock layouts. time.Parse takes hour 0 for
// the 12-hour token; a 12-hour clock runs 1..12, so that input is refused.
// The hour is the first number in both layout and value.
func clockParse(layout, value string) (time.Time, bool) {
	if i := strings.IndexAny(layout, "0123456789"); i >= 0 && layout[i] == '3' && leadingZeroNumber(value) {
		return time.Time{}, false
	}
	return strictParse(layout, value)
}

// leadingZeroNumber reports whether the first digit run of s is all zeros.
func leadingZeroNumber(s string) bool {
	start := strings.IndexAny(s, "0123456789")
	if start < 0 {
		return false
	}
	for _, c := range s[start:] {
		switch {
		case c == '0':
		case c >= '1' && c <= '9':
			return false
		default:
			return true
		}
	}
	return true
}

func clockOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}
