package market

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSanitize(t *testing.T) {
	points := []PricePoint{
		{Date: day("2026-08-26"), Close: 101},
		{Date: day("2026-08-24"), Close: 100},
		{Date: day("2026-08-25"), Close: 99},
		{Date: day("2026-08-25"), Close: 102}, // duplicate: later row wins
	}

	s := Sanitize(points)
	require.Len(t, s, 3)
	assert.Equal(t, day("2026-08-24"), s[0].Date)
	assert.Equal(t, day("2026-08-25"), s[1].Date)
	assert.Equal(t, 102.0, s[1].Close)
	assert.Equal(t, day("2026-08-26"), s[2].Date)
}

func TestSeries_Closes(t *testing.T) {
	s := Sanitize([]PricePoint{
		{Date: day("2026-08-24"), Close: 100},
		{Date: day("2026-08-25"), Close: 101.5},
	})
	assert.Equal(t, []float64{100, 101.5}, s.Closes())
}

func TestSeries_Last(t *testing.T) {
	_, ok := Series{}.Last()
	assert.False(t, ok)

	s := Sanitize([]PricePoint{
		{Date: day("2026-08-24"), Close: 100},
		{Date: day("2026-08-25"), Close: 101},
	})
	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, 101.0, last.Close)
}

func TestSeries_Merge(t *testing.T) {
	cached := Sanitize([]PricePoint{
		{Date: day("2026-08-24"), Close: 100},
		{Date: day("2026-08-25"), Close: 101},
	})
	fresh := []PricePoint{
		{Date: day("2026-08-25"), Close: 103}, // settled bar replaces cached one
		{Date: day("2026-08-26"), Close: 104},
	}

	merged := cached.Merge(fresh)
	require.Len(t, merged, 3)
	assert.Equal(t, 103.0, merged[1].Close)
	assert.Equal(t, 104.0, merged[2].Close)
}

func TestCSVRoundTrip(t *testing.T) {
	s := Sanitize([]PricePoint{
		{Date: day("2026-08-24"), Open: 99.5, High: 101, Low: 99, Close: 100.25, Volume: 350000},
		{Date: day("2026-08-25"), Open: 100.5, High: 102, Low: 100, Close: 101.75, Volume: 410000},
	})

	var buf bytes.Buffer
	require.NoError(t, s.WriteCSV(&buf))

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestReadCSV_BadRow(t *testing.T) {
	_, err := ReadCSV(bytes.NewBufferString("date,open,high,low,close,volume\nnot-a-date,1,2,3,4,5\n"))
	assert.Error(t, err)
}

func TestLoadFile_MissingIsEmpty(t *testing.T) {
	s, err := LoadFile(filepath.Join(t.TempDir(), "nope.csv"))
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestSaveAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.csv")
	s := Sanitize([]PricePoint{
		{Date: day("2026-08-24"), Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 10},
	})
	require.NoError(t, s.SaveFile(path))

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}
