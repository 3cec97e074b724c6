package oximeter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tartampluch/go-medview/internal/config"
	"github.com/xuri/excelize/v2"
)

// RowReader yields the raw cells of a tabular export, header first.
type RowReader interface {
	// Read returns the next row or io.EOF.
	Read() ([]string, error)
	// Line is the 1-based line of the row last returned.
	Line() int
	Close() error
}

// -----------------------------------------------------------------------------
// CSV
// -----------------------------------------------------------------------------

type csvRows struct {
	r     *csv.Reader
	line  int
	first bool
}

// NewCSVRows reads comma separated rows. Rows may have any number of
// fields and a leading UTF-8 byte order mark is dropped.
func NewCSVRows(r io.Reader) RowReader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return &csvRows{r: cr, first: true}
}

func (c *csvRows) Read() ([]string, error) {
	row, err := c.r.Read()
	if err != nil {
		return nil, err
	}
	c.line, _ = c.r.FieldPos(0)
	if c.first {
		c.first = false
		if len(row) > 0 {
			row[0] = strings.TrimPrefix(row[0], config.UTF8BOM)
		}
	}
	return row, nil
}

func (c *csvRows) Line() int    { return c.line }
func (c *csvRows) Close() error { return nil }

// -----------------------------------------------------------------------------
// XLSX
// -----------------------------------------------------------------------------

type xlsxRows struct {
	file  *excelize.File
	rows  *excelize.Rows
	line  int
	width int
}

// NewXLSXRows reads the first worksheet of a workbook. Spreadsheet rows drop
// trailing empty cells, so every row is padded to the width of the header.
func NewXLSXRows(r io.Reader) (RowReader, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadHeader, err)
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		_ = f.Close()
		return nil, fmt.Errorf("%w: workbook has no sheet", ErrBadHeader)
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %w", ErrBadHeader, err)
	}
	return &xlsxRows{file: f, rows: rows}, nil
}

func (x *xlsxRows) Read() ([]string, error) {
	if !x.rows.Next() {
		if err := x.rows.Error(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	x.line++

	cells, err := x.rows.Columns()
	if err != nil {
		return nil, err
	}
	if x.line == 1 {
		x.width = len(cells)
	}
	for len(cells) < x.width {
		cells = append(cells, "")
	}
	return cells, nil
}

func (x *xlsxRows) Line() int { return x.line }

func (x *xlsxRows) Close() error {
	return errors.Join(x.rows.Close(), x.file.Close())
}
