package convert_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-medview/internal/config"
	"github.com/tartampluch/go-medview/internal/convert"
	"github.com/tartampluch/go-medview/internal/fuzzytime"
	"github.com/tartampluch/go-medview/internal/medview"
	"github.com/tartampluch/go-medview/internal/oximeter"
	"github.com/xuri/excelize/v2"
)

// -----------------------------------------------------------------------------
// Mocks & Helpers
// -----------------------------------------------------------------------------

// MockFetcher simulates the network layer.
type MockFetcher struct {
	mock.Mock
}

// Fetch implements the convert.Fetcher interface.
func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if r := args.Get(0); r != nil {
		return r.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

const emayHeader = "Date,Time,SpO2(%),PR(bpm)\n"

func newConverter(t *testing.T) *convert.Converter {
	t.Helper()
	return &convert.Converter{Parser: fuzzytime.NewParser(fuzzytime.Options{})}
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readRecords(t *testing.T, path string) (medview.Header, []medview.Record) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	r, err := medview.NewReader(f)
	require.NoError(t, err)
	recs, err := r.ReadAll()
	require.NoError(t, err)
	return r.Header(), recs
}

// -----------------------------------------------------------------------------
// Test Cases
// -----------------------------------------------------------------------------

func TestRun_Emay_Success(t *testing.T) {
	input := writeInput(t, "night.csv", emayHeader+
		"2/26/2024,9:10:35 PM,93,83\n"+
		"2/26/2024,9:10:39 PM,94,92\n")

	stats, err := newConverter(t).Run(context.Background(), convert.Job{
		Input:  input,
		Format: config.FormatEmay,
	})

	require.NoError(t, err)
	output := strings.TrimSuffix(input, ".csv") + ".dat"
	assert.Equal(t, convert.Stats{Rows: 2, Written: 2, Files: []string{output}}, stats)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0x00, 0x02, 0x00,
		0x00, 0x00, 0x00, 0x18, 0x02, 0x1a, 0x15, 0x0a, 0x23, 0x5d, 0x53,
		0x00, 0x00, 0x00, 0x18, 0x02, 0x1a, 0x15, 0x0a, 0x27, 0x5e, 0x5c,
	}, content)
}

func TestRun_SkipsAndRejects(t *testing.T) {
	input := writeInput(t, "night.csv", emayHeader+
		"2/26/2024,9:10:35 PM,93,\n"+
		"2/26/2024,9:10:36 PM,,\n"+
		"2/26/2024,9:10:37 PM,0,0\n"+
		"2/26/2024,9:10:38 PM,93,300\n"+
		"2/26/2024,9:10:39 PM,94,92\n")
	output := filepath.Join(t.TempDir(), "out.dat")

	stats, err := newConverter(t).Run(context.Background(), convert.Job{
		Input:  input,
		Output: output,
		Format: config.FormatEmay,
	})

	require.NoError(t, err)
	assert.Equal(t, 5, stats.Rows)
	assert.Equal(t, 2, stats.Written, "zero is a measurement, not a gap")
	assert.Equal(t, 2, stats.Skipped)
	assert.Equal(t, 1, stats.Rejected)

	header, recs := readRecords(t, output)
	assert.Equal(t, 2, header.Count)
	assert.Equal(t, 0, recs[0].SpO2)
	assert.Equal(t, 94, recs[1].SpO2)
}

func TestRun_TimeOffset(t *testing.T) {
	input := writeInput(t, "night.csv", emayHeader+"2/26/2024,11:30:00 PM,93,83\n")
	output := filepath.Join(t.TempDir(), "out.dat")

	_, err := newConverter(t).Run(context.Background(), convert.Job{
		Input:      input,
		Output:     output,
		Format:     config.FormatEmay,
		TimeOffset: 45 * time.Minute,
	})

	require.NoError(t, err)
	_, recs := readRecords(t, output)
	require.Len(t, recs, 1)
	assert.Equal(t, time.Date(2024, 2, 27, 0, 15, 0, 0, time.UTC), recs[0].Timestamp)
}

func TestRun_MalformedRowFinalizesOutput(t *testing.T) {
	input := writeInput(t, "night.csv", emayHeader+
		"2/26/2024,9:10:35 PM,93,83\n"+
		"2/30/2024,9:10:36 PM,93,83\n"+
		"2/26/2024,9:10:37 PM,93,83\n")
	output := filepath.Join(t.TempDir(), "out.dat")

	stats, err := newConverter(t).Run(context.Background(), convert.Job{
		Input:  input,
		Output: output,
		Format: config.FormatEmay,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, oximeter.ErrMalformedRow)
	assert.Contains(t, err.Error(), config.ErrConversionHalted)
	assert.Equal(t, 1, stats.Written)
	assert.Equal(t, []string{output}, stats.Files)

	header, _ := readRecords(t, output)
	assert.Equal(t, 1, header.Count, "records before the bad row are kept")
}

func TestRun_InputErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		job     convert.Job
		wantErr error
		wantMsg string
	}{
		{
			name:    "missing input",
			job:     convert.Job{Input: filepath.Join(dir, "absent.csv"), Format: config.FormatEmay},
			wantErr: fs.ErrNotExist,
			wantMsg: config.ErrInputMissing,
		},
		{
			name:    "bad header",
			job:     convert.Job{Input: writeInput(t, "o2.csv", emayHeader), Format: config.FormatO2Insight},
			wantErr: oximeter.ErrBadHeader,
			wantMsg: config.ErrInputUnreadable,
		},
		{
			name:    "unknown format",
			job:     convert.Job{Input: writeInput(t, "x.csv", emayHeader), Format: "contec"},
			wantMsg: config.ErrInputFormat,
		},
		{
			name:    "remote without fetcher",
			job:     convert.Job{Input: "https://example.com/night.csv", Format: config.FormatEmay},
			wantMsg: config.ErrFetcherMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newConverter(t).Run(context.Background(), tt.job)

			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Contains(t, err.Error(), tt.wantMsg)

			_, statErr := os.Stat(convert.DefaultOutputPath(tt.job.Input))
			assert.True(t, os.IsNotExist(statErr), "no output is created for unusable input")
		})
	}
}

func TestRun_Remote_O2Insight(t *testing.T) {
	body := "Time,SpO2(%),Pulse Rate(bpm),Motion,SpO2 Reminder,PR Reminder\n" +
		"\"09:10:35PM May 11, 2024\",93,83,0,0,0\n" +
		"\"09:10:39PM May 11, 2024\",255,65535,0,0,0\n"
	url := "https://example.com/exports/night.csv?token=secret"

	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, url, "alice", "pw").
		Return(io.NopCloser(strings.NewReader(body)), nil)

	c := newConverter(t)
	c.Fetcher = fetcher
	output := filepath.Join(t.TempDir(), "remote.dat")

	stats, err := c.Run(context.Background(), convert.Job{
		Input:  url,
		Output: output,
		Format: config.FormatO2Insight,
		User:   "alice",
		Pass:   "pw",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Written)
	_, recs := readRecords(t, output)
	assert.Equal(t, []medview.Record{
		{Timestamp: time.Date(2024, 5, 11, 21, 10, 35, 0, time.UTC), SpO2: 93, PulseRate: 83},
	}, recs)
	fetcher.AssertExpectations(t)
}

func TestRun_Remote_FetchFailure(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, mock.Anything, "", "").
		Return(nil, errors.New("server returned unexpected status: 404 Not Found"))

	c := newConverter(t)
	c.Fetcher = fetcher

	_, err := c.Run(context.Background(), convert.Job{
		Input:  "http://example.com/night.csv",
		Output: filepath.Join(t.TempDir(), "out.dat"),
		Format: config.FormatEmay,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestRun_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Date", "Time", "SpO2(%)", "PR(bpm)"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"26.02.2024", "21:10:35", 93, 83}))
	input := filepath.Join(t.TempDir(), "night.xlsx")
	require.NoError(t, f.SaveAs(input))
	require.NoError(t, f.Close())

	c := &convert.Converter{Parser: fuzzytime.NewParser(fuzzytime.Options{DayFirst: true})}

	stats, err := c.Run(context.Background(), convert.Job{Input: input, Format: config.FormatEmay})

	require.NoError(t, err)
	assert.Equal(t, []string{strings.TrimSuffix(input, ".xlsx") + ".dat"}, stats.Files)
	_, recs := readRecords(t, stats.Files[0])
	require.Len(t, recs, 1)
	assert.Equal(t, time.Date(2024, 2, 26, 21, 10, 35, 0, time.UTC), recs[0].Timestamp)
}

func TestRun_Rollover(t *testing.T) {
	var b strings.Builder
	b.WriteString(emayHeader)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for n := 0; n <= medview.MaxRecords; n++ {
		ts := start.Add(time.Duration(n) * time.Second)
		fmt.Fprintf(&b, "%s,%s,97,82\n", ts.Format("2006/01/02"), ts.Format("15:04:05"))
	}
	input := writeInput(t, "long.csv", b.String())

	stats, err := newConverter(t).Run(context.Background(), convert.Job{Input: input, Format: config.FormatEmay})

	require.NoError(t, err)
	base := strings.TrimSuffix(input, ".csv")
	assert.Equal(t, []string{base + ".dat", base + "_1.dat"}, stats.Files)
	assert.Equal(t, medview.MaxRecords+1, stats.Written)

	header, _ := readRecords(t, stats.Files[0])
	assert.Equal(t, medview.MaxRecords, header.Count)
	header, recs := readRecords(t, stats.Files[1])
	assert.Equal(t, 1, header.Count)
	assert.Equal(t, start.Add(time.Duration(medview.MaxRecords)*time.Second), recs[0].Timestamp)
}

func TestRun_CancelledStillFinalizes(t *testing.T) {
	input := writeInput(t, "night.csv", emayHeader+"2/26/2024,9:10:35 PM,93,83\n")
	output := filepath.Join(t.TempDir(), "out.dat")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newConverter(t).Run(ctx, convert.Job{Input: input, Output: output, Format: config.FormatEmay})

	assert.ErrorIs(t, err, context.Canceled)
	content, readErr := os.ReadFile(output)
	require.NoError(t, readErr)
	assert.Equal(t, []byte{0x00, 0x00, 0x00}, content)
}

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"night.csv", "night.dat"},
		{filepath.Join("data", "2024-05-11.CSV"), filepath.Join("data", "2024-05-11.dat")},
		{"export.xlsx", "export.dat"},
		{"noext", "noext.dat"},
		{"https://example.com/exports/night.csv?token=x", "night.dat"},
		{"http://example.com/", config.DefaultRemoteName + ".dat"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, convert.DefaultOutputPath(tt.input))
		})
	}
}

func TestIsRemote(t *testing.T) {
	assert.True(t, convert.IsRemote("https://example.com/a.csv"))
	assert.True(t, convert.IsRemote("HTTP://example.com/a.csv"))
	assert.False(t, convert.IsRemote("ftp://example.com/a.csv"))
	assert.False(t, convert.IsRemote(filepath.Join("http", "a.csv")))
}
