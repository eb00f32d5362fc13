// Package market defines the daily price series the rest of the system
// consumes, plus the CSV codec used for the local data cache.
package market

import "time"

// PricePoint is one daily OHLCV bar.
type PricePoint struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// DateLayout is the on-disk date format for cached series.
const DateLayout = "2006-01-02"
