package medview

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Target is one output file. The header is patched in place, so it must be
// seekable.
type Target interface {
	io.Writer
	io.Seeker
	io.Closer
}

// Sink produces the numbered targets of a session.
type Sink interface {
	// Name returns a human-readable name for target seq, used in errors
	// and statistics.
	Name(seq int) string
	// Create opens target seq for writing, truncating any previous content.
	Create(seq int) (Target, error)
}

// Ext is the extension given to every chunk after the first.
const Ext = ".dat"

// FileSink writes target 0 to Base and target n to "<Base without ext>_n.dat".
type FileSink struct {
	Base string
	Perm fs.FileMode
}

// NewFileSink returns a FileSink with 0644 permissions.
func NewFileSink(base string) *FileSink {
	return &FileSink{Base: base, Perm: 0o644}
}

// Name implements Sink.
func (s *FileSink) Name(seq int) string {
	if seq == 0 {
		return s.Base
	}
	stem := strings.TrimSuffix(s.Base, filepath.Ext(s.Base))
	return fmt.Sprintf("%s_%d%s", stem, seq, Ext)
}

// Create implements Sink.
func (s *FileSink) Create(seq int) (Target, error) {
	f, err := os.OpenFile(s.Name(seq), os.O_RDWR|os.O_CREATE|os.O_TRUNC, s.Perm)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// WriterSink adapts a single pre-opened destination. It can only produce
// target 0; a session that fills it fails with ErrSinkExhausted instead of
// rolling over. Closing the target does not close the destination.
type WriterSink struct {
	W     io.WriteSeeker
	Label string
}

// Name implements Sink.
func (s *WriterSink) Name(int) string {
	return s.Label
}

// Create implements Sink.
func (s *WriterSink) Create(seq int) (Target, error) {
	if seq != 0 {
		return nil, ErrSinkExhausted
	}
	return nopCloser{s.W}, nil
}

type nopCloser struct {
	io.WriteSeeker
}

func (nopCloser) Close() error { return nil }
