// Package indicators provides the rolling statistics behind the
// mean-reversion signal.
package indicators

import (
	"fmt"
	"math"
)

// WindowedStat holds the trailing-window statistics for one price point.
// Valid is false while the window has not filled, or when the window is
// flat (zero standard deviation); the numeric fields are meaningless then.
type WindowedStat struct {
	Mean         float64
	Std          float64
	ZScore       float64
	Deviation    float64
	DeviationPct float64
	Valid        bool
}

// RollingStats computes one WindowedStat per close price using a trailing
// window of lookback points (inclusive of the current one).
//
// The computation is deterministic: identical input yields bit-identical
// output. Std is the sample standard deviation (N-1 denominator).
func RollingStats(closes []float64, lookback int) ([]WindowedStat, error) {
	if lookback < 2 {
		return nil, fmt.Errorf("lookback must be >= 2, got %d", lookback)
	}

	stats := make([]WindowedStat, len(closes))
	for i := range closes {
		if i+1 < lookback {
			continue
		}
		window := closes[i+1-lookback : i+1]

		var sum float64
		for _, c := range window {
			sum += c
		}
		mean := sum / float64(lookback)

		var sq float64
		for _, c := range window {
			d := c - mean
			sq += d * d
		}
		std := math.Sqrt(sq / float64(lookback-1))

		if std == 0 {
			// flat window: zscore undefined, stat stays invalid
			continue
		}

		dev := closes[i] - mean
		stats[i] = WindowedStat{
			Mean:         mean,
			Std:          std,
			ZScore:       dev / std,
			Deviation:    dev,
			DeviationPct: dev / mean * 100,
			Valid:        true,
		}
	}
	return stats, nil
}

// Latest returns the stat for the most recent point. An empty input yields
// an invalid stat.
func Latest(stats []WindowedStat) WindowedStat {
	if len(stats) == 0 {
		return WindowedStat{}
	}
	return stats[len(stats)-1]
}
