package cli_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-medview/internal/cli"
	"github.com/tartampluch/go-medview/internal/config"
	"github.com/tartampluch/go-medview/internal/medview"
)

func writeDAT(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "night.dat")
	s, err := medview.Open(medview.NewFileSink(path))
	require.NoError(t, err)
	require.NoError(t, s.WriteRecord(time.Date(2024, 2, 26, 21, 10, 35, 0, time.UTC), 93, 83))
	require.NoError(t, s.WriteRecord(time.Date(2024, 2, 26, 21, 10, 39, 0, time.UTC), 94, 92))
	require.NoError(t, s.Close())
	return path
}

func TestDumpCommand(t *testing.T) {
	path := writeDAT(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "default format",
			args: []string{path},
			want: path + ": 2 records\n" +
				"2024-02-26 21:10:35\t93\t83\n" +
				"2024-02-26 21:10:39\t94\t92\n",
		},
		{
			name: "custom format",
			args: []string{"--time-format", "%d/%m %H:%M", path},
			want: path + ": 2 records\n" +
				"26/02 21:10\t93\t83\n" +
				"26/02 21:10\t94\t92\n",
		},
		{
			name: "count only",
			args: []string{"--count", path, path},
			want: path + ": 2 records\n" + path + ": 2 records\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, "en-US")

			code := app.run(cli.NewDumpCommand, tt.args...)

			require.Equal(t, config.ExitCodeSuccess, code, app.errOut.String())
			assert.Equal(t, tt.want, app.out.String())
		})
	}
}

func TestDumpCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.dat")
	require.NoError(t, os.WriteFile(garbage, []byte{0x42}, 0o644))

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing file", []string{filepath.Join(dir, "absent.dat")}, config.ErrDumpOpen},
		{"not a DAT file", []string{garbage}, config.ErrDumpRead},
		{"no argument", nil, "requires at least 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, "en-US")

			code := app.run(cli.NewDumpCommand, tt.args...)

			assert.Equal(t, config.ExitCodeError, code)
			assert.Contains(t, app.errOut.String(), tt.want)
		})
	}
}
