package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(id string) SignalRecord {
	return SignalRecord{
		ID:              id,
		Time:            time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC),
		Action:          "BUY",
		AllocationPct:   80,
		Confidence:      "HIGH",
		TechnicalSignal: "BUY",
		TechnicalZScore: -2.3,
		CurrentPrice:    24900,
		MacroSentiment:  "BULLISH",
		MacroScore:      5,
		EntryPrice:      24900,
		StopLoss:        24651,
		Target:          25398,
	}
}

func TestCSVJournal_AppendsWithSingleHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signals.csv")

	j, err := NewCSV(path)
	require.NoError(t, err)
	require.NoError(t, j.RecordSignal(testRecord("01A")))
	require.NoError(t, j.Close())

	// reopening an existing journal must append, not rewrite the header
	j, err = NewCSV(path)
	require.NoError(t, err)
	require.NoError(t, j.RecordSignal(testRecord("01B")))
	require.NoError(t, j.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3) // header + two records
	assert.Equal(t, signalHeader, rows[0])
	assert.Equal(t, "01A", rows[1][0])
	assert.Equal(t, "01B", rows[2][0])
	assert.Equal(t, "BUY", rows[1][2])
	assert.Equal(t, "80.00", rows[1][3])
	assert.Equal(t, "-2.30", rows[1][6])
	assert.Equal(t, "5", rows[1][9])
}

func TestSQLiteJournal_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signals.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)
	defer j.Close()

	require.NoError(t, j.RecordSignal(testRecord("01C")))

	var action string
	var score int
	row := j.db.QueryRow(`SELECT action, macro_score FROM signals WHERE id = ?`, "01C")
	require.NoError(t, row.Scan(&action, &score))
	assert.Equal(t, "BUY", action)
	assert.Equal(t, 5, score)
}
