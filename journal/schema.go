package journal

const Schema = `
CREATE TABLE IF NOT EXISTS signals (
	id TEXT PRIMARY KEY,
	time DATETIME NOT NULL,
	action TEXT NOT NULL,
	allocation_pct REAL NOT NULL,
	confidence TEXT NOT NULL,
	technical_signal TEXT NOT NULL,
	technical_zscore REAL NOT NULL,
	current_price REAL NOT NULL,
	macro_sentiment TEXT NOT NULL,
	macro_score INTEGER NOT NULL,
	entry_price REAL NOT NULL,
	stop_loss REAL NOT NULL,
	target REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_signals_time ON signals(time);
`
