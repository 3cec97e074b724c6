package medview_test

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-medview/internal/medview"
)

func TestReader_RoundTrip(t *testing.T) {
	s, base := openFileSession(t)
	want := []medview.Record{
		{Timestamp: time.Date(2024, 2, 26, 21, 10, 35, 0, time.UTC), SpO2: 93, PulseRate: 83},
		{Timestamp: time.Date(2024, 2, 26, 21, 10, 39, 0, time.UTC), SpO2: 94, PulseRate: 92},
	}
	for _, rec := range want {
		require.NoError(t, s.WriteRecord(rec.Timestamp, rec.SpO2, rec.PulseRate))
	}
	require.NoError(t, s.Close())

	f, err := os.Open(base)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	r, err := medview.NewReader(f)
	require.NoError(t, err)
	assert.Equal(t, medview.Header{ID: 0, Count: 2}, r.Header())

	got, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReader_Errors(t *testing.T) {
	record := []byte{0, 0, 0, 0x18, 0x02, 0x1a, 0x15, 0x0a, 0x23, 93, 83}

	tests := []struct {
		name    string
		data    []byte
		wantErr error
		atOpen  bool
	}{
		{"short header", []byte{0x00, 0x01}, medview.ErrBadHeader, true},
		{"wrong id", []byte{0x07, 0x00, 0x00}, medview.ErrBadHeader, true},
		{"truncated body", append([]byte{0x00, 0x02, 0x00}, record...), medview.ErrTruncated, false},
		{"month 13", []byte{0x00, 0x01, 0x00, 0, 0, 0, 0x18, 13, 1, 0, 0, 0, 90, 60}, medview.ErrCorruptRecord, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := medview.NewReader(bytes.NewReader(tt.data))
			if tt.atOpen {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			_, err = r.ReadAll()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestReader_EmptyFile(t *testing.T) {
	r, err := medview.NewReader(bytes.NewReader([]byte{0, 0, 0}))
	require.NoError(t, err)

	got, err := r.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEncodeRecord_Emay(t *testing.T) {
	rec, err := medview.EncodeRecord(time.Date(2024, 2, 26, 21, 10, 39, 0, time.UTC), 94, 92)

	require.NoError(t, err)
	assert.Equal(t, byte(0x18), rec[3])
	assert.Equal(t, byte(0x02), rec[4])
	assert.Equal(t, byte(0x1a), rec[5])
	assert.Equal(t, [3]byte{}, [3]byte(rec[:3]))
}
