package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordSignal(r SignalRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO signals
		(id, time, action, allocation_pct, confidence,
		 technical_signal, technical_zscore, current_price,
		 macro_sentiment, macro_score, entry_price, stop_loss, target)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Time, r.Action, r.AllocationPct, r.Confidence,
		r.TechnicalSignal, r.TechnicalZScore, r.CurrentPrice,
		r.MacroSentiment, r.MacroScore, r.EntryPrice, r.StopLoss, r.Target,
	)
	return err
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
