// Package signal classifies the latest rolling statistics into a discrete
// technical signal.
package signal

import (
	"fmt"
	"math"

	"github.com/niftylabs/niftysignal/indicators"
)

// Kind is the discrete technical reading.
type Kind string

const (
	Buy     Kind = "BUY"
	Sell    Kind = "SELL"
	Neutral Kind = "NEUTRAL"
	NoData  Kind = "NO_DATA"
)

// Signal is the technical side of a trading decision. Numeric fields are
// rounded to 2 decimals for presentation; Valid is false for NoData, in
// which case only CurrentPrice and Reason carry information.
type Signal struct {
	Kind         Kind
	ZScore       float64
	CurrentPrice float64
	MeanPrice    float64
	Deviation    float64
	DeviationPct float64
	Valid        bool
	Reason       string
}

// Classify maps the most recent windowed stat to a Signal using a single
// symmetric z-score threshold: below -threshold is oversold (BUY), above
// +threshold is overbought (SELL). Comparison uses the unrounded z-score.
func Classify(stat indicators.WindowedStat, currentPrice, threshold float64) Signal {
	if !stat.Valid {
		return Signal{
			Kind:         NoData,
			CurrentPrice: round2(currentPrice),
			Reason:       "Insufficient data for calculation",
		}
	}

	sig := Signal{
		ZScore:       round2(stat.ZScore),
		CurrentPrice: round2(currentPrice),
		MeanPrice:    round2(stat.Mean),
		Deviation:    round2(stat.Deviation),
		DeviationPct: round2(stat.DeviationPct),
		Valid:        true,
	}

	switch {
	case stat.ZScore < -threshold:
		sig.Kind = Buy
		sig.Reason = fmt.Sprintf("Price is oversold (Z-score: %.2f). Price %.2f%% below mean.",
			stat.ZScore, math.Abs(stat.DeviationPct))
	case stat.ZScore > threshold:
		sig.Kind = Sell
		sig.Reason = fmt.Sprintf("Price is overbought (Z-score: %.2f). Price %.2f%% above mean.",
			stat.ZScore, stat.DeviationPct)
	default:
		sig.Kind = Neutral
		sig.Reason = fmt.Sprintf("Price is near equilibrium (Z-score: %.2f).", stat.ZScore)
	}
	return sig
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
