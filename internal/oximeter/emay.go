package oximeter

import (
	"errors"
	"io"
	"log/slog"

	"github.com/tartampluch/go-medview/internal/config"
)

const (
	emayDate = iota
	emayTime
	emaySpO2
	emayPulse
	emayColumns
)

// EmayReader decodes the CSV written by the EMAY oximeter software:
//
//	Date,Time,SpO2(%),PR(bpm)
//	2/26/2024,9:10:35 PM,93,83
//
// The date and time cells follow the PC's regional settings, so they are
// handed to a DateTimeParser rather than matched against one layout.
type EmayReader struct {
	rows   RowReader
	parser DateTimeParser
	done   bool
}

// NewEmayReader consumes and checks the header row.
func NewEmayReader(rows RowReader, parser DateTimeParser) (*EmayReader, error) {
	if err := readHeader(rows, config.EmayHeader, false); err != nil {
		slog.Error(config.ErrInputUnreadable,
			config.LogKeyComponent, config.CompReader,
			config.LogKeyFormat, config.FormatEmay,
			config.LogKeyError, err)
		return nil, err
	}
	return &EmayReader{rows: rows, parser: parser}, nil
}

// Next returns the next reading. A row without a usable timestamp or with
// missing columns returns a *MalformedRowError and ends the stream.
func (e *EmayReader) Next() (Reading, error) {
	if e.done {
		return Reading{}, io.EOF
	}

	row, err := e.rows.Read()
	if err != nil {
		e.done = true
		if errors.Is(err, io.EOF) {
			return Reading{}, io.EOF
		}
		return Reading{}, &MalformedRowError{Line: e.rows.Line() + 1, Reason: "unreadable row", Err: err}
	}
	line := e.rows.Line()

	if err := requireCells(row, emayColumns, line, config.EmayHeader); err != nil {
		return Reading{}, e.stop(err)
	}

	ts, err := e.parser.ParseDateTime(row[emayDate], row[emayTime])
	if err != nil {
		return Reading{}, e.stop(&MalformedRowError{
			Line:   line,
			Reason: "invalid date/time '" + row[emayDate] + " " + row[emayTime] + "'",
			Err:    err,
		})
	}

	return Reading{
		Timestamp: ts,
		SpO2:      measurement(row[emaySpO2], config.EmayHeader[emaySpO2], line),
		PulseRate: measurement(row[emayPulse], config.EmayHeader[emayPulse], line),
	}, nil
}

func (e *EmayReader) stop(err error) error {
	e.done = true
	slog.Error(config.MsgMalformedRow,
		config.LogKeyComponent, config.CompReader,
		config.LogKeyFormat, config.FormatEmay,
		config.LogKeyError, err)
	return err
}
