package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

var signalHeader = []string{
	"id", "time", "action", "allocation_pct", "confidence",
	"technical_signal", "technical_zscore", "current_price",
	"macro_sentiment", "macro_score", "entry_price", "stop_loss", "target",
}

// CSVJournal appends signal records to a single file, writing the header
// only when the file is created.
type CSVJournal struct {
	w    *csv.Writer
	file *os.File
}

func NewCSV(path string) (*CSVJournal, error) {
	info, err := os.Stat(path)
	fresh := os.IsNotExist(err) || (err == nil && info.Size() == 0)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(file)
	if fresh {
		if err := w.Write(signalHeader); err != nil {
			file.Close()
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			file.Close()
			return nil, err
		}
	}

	return &CSVJournal{w: w, file: file}, nil
}

func (j *CSVJournal) RecordSignal(r SignalRecord) error {
	err := j.w.Write([]string{
		r.ID,
		r.Time.Format(time.RFC3339),
		r.Action,
		f(r.AllocationPct),
		r.Confidence,
		r.TechnicalSignal,
		f(r.TechnicalZScore),
		f(r.CurrentPrice),
		r.MacroSentiment,
		strconv.Itoa(r.MacroScore),
		f(r.EntryPrice),
		f(r.StopLoss),
		f(r.Target),
	})
	if err != nil {
		return err
	}
	j.w.Flush()
	return j.w.Error()
}

func (j *CSVJournal) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		return err
	}
	return j.file.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
