// Package journal persists one signal record per pipeline run, to CSV or
// SQLite.
package journal

import "time"

// SignalRecord is the audit row for one run of the pipeline.
type SignalRecord struct {
	ID              string
	Time            time.Time
	Action          string
	AllocationPct   float64
	Confidence      string
	TechnicalSignal string
	TechnicalZScore float64
	CurrentPrice    float64
	MacroSentiment  string
	MacroScore      int
	EntryPrice      float64
	StopLoss        float64
	Target          float64
}

type Journal interface {
	RecordSignal(SignalRecord) error
	Close() error
}
