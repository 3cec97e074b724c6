// Package medview reads and writes MedView DAT files, the format produced by
// ChoiceMMed pulse oximeters and imported by OSCAR.
//
// A file is a 3-byte header followed by fixed 11-byte records:
//
//	header: [0x00, count lo, count hi]     count is little-endian uint16
//	record: [0x00, 0x00, 0x00, year-2000, month, day, hour, minute, second, SpO2, pulse]
//
// A file holds at most 65535 records. Longer sessions continue in
// "<base>_1.dat", "<base>_2.dat" and so on.
package medview

import (
	"time"
)

const (
	// HeaderSize is the length of the file header in bytes.
	HeaderSize = 3
	// RecordSize is the length of one record in bytes.
	RecordSize = 11
	// MaxRecords is the record capacity of a single file.
	MaxRecords = 65535

	// YearBase is subtracted from the calendar year before it is stored.
	YearBase = 2000

	headerID    = 0x00
	countOffset = 1
	maxByte     = 255
)

// Record is one decoded sample.
type Record struct {
	Timestamp time.Time
	SpO2      int
	PulseRate int
}

// Field names used in InvalidFieldError.
const (
	FieldYear      = "year"
	FieldMonth     = "month"
	FieldDay       = "day"
	FieldHour      = "hour"
	FieldMinute    = "minute"
	FieldSecond    = "second"
	FieldSpO2      = "spo2"
	FieldPulseRate = "pulse_rate"
)

// EncodeRecord validates every field and returns the on-disk bytes. Nothing
// is produced unless all fields fit in an unsigned byte.
func EncodeRecord(ts time.Time, spo2, pulseRate int) ([RecordSize]byte, error) {
	var rec [RecordSize]byte

	fields := []struct {
		name  string
		value int
	}{
		{FieldYear, ts.Year() - YearBase},
		{FieldMonth, int(ts.Month())},
		{FieldDay, ts.Day()},
		{FieldHour, ts.Hour()},
		{FieldMinute, ts.Minute()},
		{FieldSecond, ts.Second()},
		{FieldSpO2, spo2},
		{FieldPulseRate, pulseRate},
	}

	for i, f := range fields {
		if f.value < 0 || f.value > maxByte {
			value := f.value
			if f.name == FieldYear {
				value = ts.Year()
			}
			return [RecordSize]byte{}, &InvalidFieldError{Field: f.name, Value: value}
		}
		rec[3+i] = byte(f.value)
	}
	return rec, nil
}

// DecodeRecord is the inverse of EncodeRecord.
func DecodeRecord(b [RecordSize]byte) (Record, error) {
	year := YearBase + int(b[3])
	month := time.Month(b[4])
	day, hour, minute, second := int(b[5]), int(b[6]), int(b[7]), int(b[8])

	ts := time.Date(year, month, day, hour, minute, second, 0, time.UTC)
	// time.Date normalizes out-of-range fields; a mismatch means garbage.
	if ts.Month() != month || ts.Day() != day || ts.Hour() != hour ||
		ts.Minute() != minute || ts.Second() != second {
		return Record{}, ErrCorruptRecord
	}

	return Record{
		Timestamp: ts,
		SpO2:      int(b[9]),
		PulseRate: int(b[10]),
	}, nil
}
