package oximeter

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/tartampluch/go-medview/internal/config"
)

// readHeader consumes the first row and checks it against want. With prefix
// set, extra trailing columns are accepted.
func readHeader(rows RowReader, want []string, prefix bool) error {
	got, err := rows.Read()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadHeader, err)
	}
	for i := range got {
		got[i] = strings.TrimSpace(got[i])
	}
	if prefix && len(got) > len(want) {
		got = got[:len(want)]
	}
	if !slices.Equal(got, want) {
		return fmt.Errorf("%w: header %q", ErrBadHeader, got)
	}
	return nil
}

// measurement decodes an integer cell. Empty or non-numeric cells yield nil
// and a warning, never an error.
func measurement(cell, column string, line int) *int {
	v, err := strconv.Atoi(strings.TrimSpace(cell))
	if err != nil {
		slog.Warn(config.MsgEmptyValue,
			config.LogKeyComponent, config.CompReader,
			config.LogKeyColumn, column,
			config.LogKeyLine, line,
			config.LogKeyValue, cell)
		return nil
	}
	return &v
}

// requireCells reports a malformed row when fewer than n cells are present.
// An empty cell is present; a missing one is not.
func requireCells(row []string, n, line int, header []string) error {
	if len(row) >= n {
		return nil
	}
	return &MalformedRowError{
		Line:   line,
		Reason: fmt.Sprintf("missing %s value", header[len(row)]),
	}
}
