package medview

import (
	"bufio"
	"encoding/binary"
	"io"
	"time"
)

type sessionState int

const (
	stateOpen sessionState = iota
	stateBroken
	stateClosed
)

// Session writes records across one or more targets of a Sink.
//
// Each target starts with a provisional zero header. When a target fills up
// or the session is closed, the real record count is patched into bytes 1-2.
// Callers must Close the session (typically with defer) or the count of the
// last target is lost.
//
// A Session is not safe for concurrent use.
type Session struct {
	sink   Sink
	state  sessionState
	seq    int
	count  int
	total  int
	target Target
	buf    *bufio.Writer
	names  []string
}

// Open starts a session and writes the provisional header of target 0.
func Open(sink Sink) (*Session, error) {
	s := &Session{sink: sink}
	if err := s.openTarget(0); err != nil {
		return nil, s.fail(err)
	}
	return s, nil
}

// WriteRecord appends one record. An out-of-range field returns an
// *InvalidFieldError and leaves the output untouched. A full target is
// finalized and the next one opened before the record is written.
func (s *Session) WriteRecord(ts time.Time, spo2, pulseRate int) error {
	switch s.state {
	case stateClosed:
		return ErrSessionClosed
	case stateBroken:
		return ErrSessionBroken
	}

	rec, err := EncodeRecord(ts, spo2, pulseRate)
	if err != nil {
		return err
	}

	if s.count >= MaxRecords {
		if err := s.finalize(); err != nil {
			return s.fail(err)
		}
		if err := s.openTarget(s.seq + 1); err != nil {
			return s.fail(err)
		}
	}

	if _, err := s.buf.Write(rec[:]); err != nil {
		return s.fail(&ResourceError{Op: "write", Name: s.sink.Name(s.seq), Err: err})
	}
	s.count++
	s.total++
	return nil
}

// Close finalizes the current target. It is safe to call more than once.
func (s *Session) Close() error {
	if s.state != stateOpen {
		s.state = stateClosed
		return nil
	}
	s.state = stateClosed
	return s.finalize()
}

// Count is the number of records in the current target.
func (s *Session) Count() int { return s.count }

// Sequence is the number of the current target, starting at 0.
func (s *Session) Sequence() int { return s.seq }

// Total is the number of records written across all targets.
func (s *Session) Total() int { return s.total }

// Names lists every target opened so far, in order.
func (s *Session) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s *Session) openTarget(seq int) error {
	name := s.sink.Name(seq)
	target, err := s.sink.Create(seq)
	if err != nil {
		return &ResourceError{Op: "create", Name: name, Err: err}
	}

	s.seq = seq
	s.count = 0
	s.target = target
	s.buf = bufio.NewWriterSize(target, RecordSize*4096)
	s.names = append(s.names, name)

	header := [HeaderSize]byte{headerID, 0, 0}
	if _, err := s.buf.Write(header[:]); err != nil {
		return &ResourceError{Op: "write header", Name: name, Err: err}
	}
	return nil
}

// finalize flushes, patches the record count when there is one, and closes
// the target. The handle is released even when an earlier step fails.
func (s *Session) finalize() error {
	if s.target == nil {
		return nil
	}
	name := s.sink.Name(s.seq)
	target := s.target
	s.target = nil

	err := s.buf.Flush()
	if err != nil {
		err = &ResourceError{Op: "flush", Name: name, Err: err}
	} else if s.count > 0 {
		err = patchCount(target, s.count, name)
	}

	if cerr := target.Close(); cerr != nil && err == nil {
		err = &ResourceError{Op: "close", Name: name, Err: cerr}
	}
	return err
}

func patchCount(target Target, count int, name string) error {
	if _, err := target.Seek(countOffset, io.SeekStart); err != nil {
		return &ResourceError{Op: "seek", Name: name, Err: err}
	}
	var le [2]byte
	binary.LittleEndian.PutUint16(le[:], uint16(count))
	if _, err := target.Write(le[:]); err != nil {
		return &ResourceError{Op: "patch header", Name: name, Err: err}
	}
	return nil
}

// fail marks the session unusable and releases the current target.
func (s *Session) fail(err error) error {
	s.state = stateBroken
	if s.target != nil {
		_ = s.target.Close()
		s.target = nil
	}
	return err
}
