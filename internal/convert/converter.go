// Package convert runs the oximeter export to MedView DAT pipeline.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/tartampluch/go-medview/internal/config"
	"github.com/tartampluch/go-medview/internal/medview"
	"github.com/tartampluch/go-medview/internal/oximeter"
)

// Job describes one conversion.
type Job struct {
	Input      string        // Local path or http(s) URL
	Output     string        // Base DAT path; derived from Input when empty
	Format     string        // config.FormatEmay or config.FormatO2Insight
	TimeOffset time.Duration // Added to every timestamp
	User       string        // HTTP basic auth, remote inputs only
	Pass       string
}

// Stats summarizes a conversion.
type Stats struct {
	Rows     int      // Readings returned by the source
	Written  int      // Records stored across all files
	Skipped  int      // Readings with a missing measurement
	Rejected int      // Readings with a field that does not fit the format
	Files    []string // Output files, in order
}

// Converter is the pipeline. The zero value converts local files with the
// default sink once Parser is set.
type Converter struct {
	Parser  oximeter.DateTimeParser
	Fetcher Fetcher

	// NewSink builds the output for a base path. Nil means medview.NewFileSink.
	NewSink func(base string) medview.Sink
}

// Run reads every reading of job.Input and writes the complete ones to DAT
// files. Output written before a failure is always finalized. A malformed
// row stops the conversion with an error wrapping oximeter.ErrMalformedRow.
func (c *Converter) Run(ctx context.Context, job Job) (stats Stats, err error) {
	start := time.Now()
	if job.Output == "" {
		job.Output = DefaultOutputPath(job.Input)
	}
	log := slog.With(
		config.LogKeyComponent, config.CompConvert,
		config.LogKeyInput, job.Input,
		config.LogKeyFormat, job.Format,
	)
	log.InfoContext(ctx, config.MsgConvertStarted,
		config.LogKeyOutput, job.Output,
		config.LogKeyOffset, job.TimeOffset.Seconds(),
	)

	if !slices.Contains(config.SupportedFormats, job.Format) {
		return stats, fmt.Errorf("%s: %q", config.ErrInputFormat, job.Format)
	}

	// 1. Acquire the input
	stream, err := c.acquireStream(ctx, job)
	if err != nil {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}
		return stats, err
	}
	defer func() { _ = stream.Close() }()

	// 2. Decode the container and check the header
	src, closeRows, err := c.openSource(stream, job)
	if err != nil {
		return stats, fmt.Errorf("%s: %w", config.ErrInputUnreadable, err)
	}
	defer func() { _ = closeRows() }()

	// 3. Open the output
	newSink := c.NewSink
	if newSink == nil {
		newSink = func(base string) medview.Sink { return medview.NewFileSink(base) }
	}
	session, err := medview.Open(newSink(job.Output))
	if err != nil {
		return stats, fmt.Errorf("%s: %w", config.ErrOutputOpen, err)
	}
	defer func() {
		cerr := session.Close()
		stats.Files = session.Names()
		if cerr != nil && err == nil {
			err = fmt.Errorf("%s: %w", config.ErrOutputFinalize, cerr)
		}
		if err == nil {
			c.logSuccess(stats, time.Since(start))
		}
	}()

	// 4. Copy readings
	err = c.copyReadings(ctx, src, session, job.TimeOffset, &stats)
	return stats, err
}

// acquireStream opens the local file or downloads the remote one.
func (c *Converter) acquireStream(ctx context.Context, job Job) (io.ReadCloser, error) {
	if IsRemote(job.Input) {
		if c.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return c.Fetcher.Fetch(ctx, job.Input, job.User, job.Pass)
	}

	f, err := os.Open(job.Input)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", config.ErrInputMissing, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInputOpen, err)
	}
	return f, nil
}

// openSource picks the row container from the input extension and the
// vendor reader from the job format.
func (c *Converter) openSource(r io.Reader, job Job) (oximeter.Source, func() error, error) {
	var rows oximeter.RowReader
	if strings.EqualFold(inputExt(job.Input), config.ExtXLSX) {
		xr, err := oximeter.NewXLSXRows(r)
		if err != nil {
			return nil, nil, err
		}
		rows = xr
	} else {
		rows = oximeter.NewCSVRows(r)
	}

	var (
		src oximeter.Source
		err error
	)
	switch job.Format {
	case config.FormatO2Insight:
		src, err = oximeter.NewO2InsightReader(rows)
	default:
		src, err = oximeter.NewEmayReader(rows, c.Parser)
	}
	if err != nil {
		_ = rows.Close()
		return nil, nil, err
	}
	return src, rows.Close, nil
}

// copyReadings drains src into session. Incomplete readings and readings
// the format cannot store are counted and skipped. Cancellation is checked
// between records.
func (c *Converter) copyReadings(ctx context.Context, src oximeter.Source, session *medview.Session, offset time.Duration, stats *Stats) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		r, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", config.ErrConversionHalted, err)
		}
		stats.Rows++

		if !r.Complete() {
			stats.Skipped++
			slog.Info(config.MsgSkipMissing,
				config.LogKeyComponent, config.CompConvert,
				config.LogKeyTimestamp, r.Timestamp)
			continue
		}

		ts := r.Timestamp.Add(offset)
		seq := session.Sequence()
		err = session.WriteRecord(ts, *r.SpO2, *r.PulseRate)
		if errors.Is(err, medview.ErrInvalidField) {
			stats.Rejected++
			var fieldErr *medview.InvalidFieldError
			field := ""
			if errors.As(err, &fieldErr) {
				field = fieldErr.Field
			}
			slog.Warn(config.MsgSkipInvalid,
				config.LogKeyComponent, config.CompConvert,
				config.LogKeyTimestamp, ts,
				config.LogKeyField, field,
				config.LogKeyError, err)
			continue
		}
		if err != nil {
			return fmt.Errorf("%s: %w", config.ErrOutputWrite, err)
		}
		if session.Sequence() != seq {
			slog.Info(config.MsgFileRollover,
				config.LogKeyComponent, config.CompConvert,
				config.LogKeyFile, session.Names()[session.Sequence()])
		}
		stats.Written++
	}
}

// logSuccess logs the final statistics of the conversion.
func (c *Converter) logSuccess(stats Stats, elapsed time.Duration) {
	slog.Info(config.MsgConvertDone,
		config.LogKeyComponent, config.CompConvert,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyRows, stats.Rows),
			slog.Int(config.LogKeyWritten, stats.Written),
			slog.Int(config.LogKeySkipped, stats.Skipped),
			slog.Int(config.LogKeyRejected, stats.Rejected),
			slog.Int(config.LogKeyFiles, len(stats.Files)),
		),
		config.LogKeyDuration, elapsed.Milliseconds(),
	)
}

// IsRemote reports whether input is an http(s) URL.
func IsRemote(input string) bool {
	lower := strings.ToLower(input)
	return strings.HasPrefix(lower, config.SchemeHTTP+config.SchemeSep) ||
		strings.HasPrefix(lower, config.SchemeHTTPS+config.SchemeSep)
}

// DefaultOutputPath swaps the input extension for .dat. Remote inputs are
// named after the last element of the URL path, in the working directory.
func DefaultOutputPath(input string) string {
	if IsRemote(input) {
		name := config.DefaultRemoteName
		if u, err := url.Parse(input); err == nil {
			if base := path.Base(u.Path); base != "." && base != "/" && base != "" {
				name = base
			}
		}
		return strings.TrimSuffix(name, path.Ext(name)) + config.ExtDAT
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + config.ExtDAT
}

func inputExt(input string) string {
	if IsRemote(input) {
		if u, err := url.Parse(input); err == nil {
			return path.Ext(u.Path)
		}
	}
	return filepath.Ext(input)
}
