package medview

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Header is the decoded 3-byte file header.
type Header struct {
	ID    byte
	Count int
}

// Reader decodes one DAT file.
type Reader struct {
	r      *bufio.Reader
	header Header
	read   int
}

// NewReader reads and validates the header.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)

	var raw [HeaderSize]byte
	if _, err := io.ReadFull(br, raw[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadHeader, err)
	}
	if raw[0] != headerID {
		return nil, fmt.Errorf("%w: id byte 0x%02x", ErrBadHeader, raw[0])
	}

	return &Reader{
		r: br,
		header: Header{
			ID:    raw[0],
			Count: int(binary.LittleEndian.Uint16(raw[countOffset:])),
		},
	}, nil
}

// Header returns the decoded file header.
func (r *Reader) Header() Header {
	return r.header
}

// Next returns the next record, or io.EOF once Header().Count records have
// been read. Bytes past the declared count are ignored.
func (r *Reader) Next() (Record, error) {
	if r.read >= r.header.Count {
		return Record{}, io.EOF
	}

	var raw [RecordSize]byte
	if _, err := io.ReadFull(r.r, raw[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Record{}, fmt.Errorf("%w: record %d of %d", ErrTruncated, r.read+1, r.header.Count)
		}
		return Record{}, err
	}
	r.read++

	rec, err := DecodeRecord(raw)
	if err != nil {
		return Record{}, fmt.Errorf("record %d: %w", r.read, err)
	}
	return rec, nil
}

// ReadAll returns every remaining record.
func (r *Reader) ReadAll() ([]Record, error) {
	var out []Record
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}
