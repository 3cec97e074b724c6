package oximeter

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/tartampluch/go-medview/internal/config"
)

const (
	o2Time = iota
	o2SpO2
	o2Pulse
)

// O2InsightReader decodes the CSV exported by Wellue's O2 Insight Pro:
//
//	Time,SpO2(%),Pulse Rate(bpm),Motion,SpO2 Reminder,PR Reminder
//	09:10:35PM May 11, 2024,93,83,0,0,0
//
// The timestamp format does not depend on the PC's settings. Motion and
// reminder columns are ignored.
type O2InsightReader struct {
	rows RowReader
	done bool
}

// NewO2InsightReader consumes and checks the header row.
func NewO2InsightReader(rows RowReader) (*O2InsightReader, error) {
	if err := readHeader(rows, config.O2InsightHeader, true); err != nil {
		slog.Error(config.ErrInputUnreadable,
			config.LogKeyComponent, config.CompReader,
			config.LogKeyFormat, config.FormatO2Insight,
			config.LogKeyError, err)
		return nil, err
	}
	return &O2InsightReader{rows: rows}, nil
}

// Next returns the next reading. End-of-recording marker rows are skipped.
func (o *O2InsightReader) Next() (Reading, error) {
	for {
		if o.done {
			return Reading{}, io.EOF
		}

		row, err := o.rows.Read()
		if err != nil {
			o.done = true
			if errors.Is(err, io.EOF) {
				return Reading{}, io.EOF
			}
			return Reading{}, &MalformedRowError{Line: o.rows.Line() + 1, Reason: "unreadable row", Err: err}
		}
		line := o.rows.Line()

		if err := requireCells(row, o2Pulse+1, line, config.O2InsightHeader); err != nil {
			return Reading{}, o.stop(err)
		}

		ts, err := parseO2InsightTime(row[o2Time])
		if err != nil {
			return Reading{}, o.stop(&MalformedRowError{
				Line:   line,
				Reason: fmt.Sprintf("invalid date/time %q", row[o2Time]),
				Err:    err,
			})
		}

		r := Reading{
			Timestamp: ts,
			SpO2:      measurement(row[o2SpO2], config.O2InsightHeader[o2SpO2], line),
			PulseRate: measurement(row[o2Pulse], config.O2InsightHeader[o2Pulse], line),
		}
		if isEndMarker(r) {
			slog.Debug(config.MsgEndMarker,
				config.LogKeyComponent, config.CompReader,
				config.LogKeyLine, line)
			continue
		}
		return r, nil
	}
}

func (o *O2InsightReader) stop(err error) error {
	o.done = true
	slog.Error(config.MsgMalformedRow,
		config.LogKeyComponent, config.CompReader,
		config.LogKeyFormat, config.FormatO2Insight,
		config.LogKeyError, err)
	return err
}

func parseO2InsightTime(s string) (time.Time, error) {
	// Month names match in any case, the PM token only in upper case.
	s = strings.ToUpper(strings.TrimSpace(s))
	var firstErr error
	for _, layout := range config.O2InsightTimeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

func isEndMarker(r Reading) bool {
	return r.Complete() &&
		*r.SpO2 == config.O2InsightEndSpO2 &&
		*r.PulseRate == config.O2InsightEndPulse
}
