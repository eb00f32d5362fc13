// Package decision fuses the technical signal and macro sentiment into a
// final trading decision.
package decision

import (
	"fmt"

	"github.com/niftylabs/niftysignal/macro"
	"github.com/niftylabs/niftysignal/risk"
	"github.com/niftylabs/niftysignal/signal"
)

// Action is the final trade direction.
type Action string

const (
	Buy     Action = "BUY"
	Sell    Action = "SELL"
	NoTrade Action = "NO_TRADE"
)

// Confidence grades how strongly the two inputs agree.
type Confidence string

const (
	High   Confidence = "HIGH"
	Medium Confidence = "MEDIUM"
	Low    Confidence = "LOW"
	None   Confidence = "NONE"
)

// Tiers maps confidence to the percentage of the capital base to allocate.
// High >= Medium >= Low, all within [0, 100].
type Tiers struct {
	High   float64 `json:"high" yaml:"high"`
	Medium float64 `json:"medium" yaml:"medium"`
	Low    float64 `json:"low" yaml:"low"`
}

// Decision is the fused output of the pipeline. Risk is attached after the
// matrix runs; see risk.Calculate.
type Decision struct {
	Action        Action
	AllocationPct float64
	Confidence    Confidence
	Reasoning     []string
	Technical     signal.Signal
	Macro         macro.Sentiment
	Risk          risk.Metrics
}

// Decide applies the decision matrix. It is a pure function: identical
// inputs always produce identical outputs.
//
// A technical BUY trades with the macro wind (BULLISH=HIGH, NEUTRAL=MEDIUM,
// BEARISH=LOW) and a technical SELL mirrors it. A NEUTRAL or NO_DATA
// technical reading never trades, whatever the macro state.
func Decide(tech signal.Signal, sent macro.Sentiment, tiers Tiers) Decision {
	d := Decision{
		Action:     NoTrade,
		Confidence: None,
		Technical:  tech,
		Macro:      sent,
	}

	switch tech.Kind {
	case signal.Buy:
		d.Action = Buy
		d.Reasoning = append(d.Reasoning,
			fmt.Sprintf("Technical: Price oversold (Z-score: %.2f)", tech.ZScore))
		switch sent.Category {
		case macro.Bullish:
			d.AllocationPct = tiers.High
			d.Confidence = High
			d.Reasoning = append(d.Reasoning,
				fmt.Sprintf("Macro: Strong bullish sentiment (Score: %d)", sent.Score),
				"Both signals aligned - HIGH confidence trade")
		case macro.Bearish:
			d.AllocationPct = tiers.Low
			d.Confidence = Low
			d.Reasoning = append(d.Reasoning,
				fmt.Sprintf("Macro: Bearish sentiment (Score: %d)", sent.Score),
				"Conflicting signals - LOW confidence trade")
		default:
			d.AllocationPct = tiers.Medium
			d.Confidence = Medium
			d.Reasoning = append(d.Reasoning,
				fmt.Sprintf("Macro: Neutral sentiment (Score: %d)", sent.Score),
				"Mixed signals - MEDIUM confidence trade")
		}

	case signal.Sell:
		d.Action = Sell
		d.Reasoning = append(d.Reasoning,
			fmt.Sprintf("Technical: Price overbought (Z-score: %.2f)", tech.ZScore))
		switch sent.Category {
		case macro.Bearish:
			d.AllocationPct = tiers.High
			d.Confidence = High
			d.Reasoning = append(d.Reasoning,
				fmt.Sprintf("Macro: Strong bearish sentiment (Score: %d)", sent.Score),
				"Both signals aligned - HIGH confidence trade")
		case macro.Bullish:
			d.AllocationPct = tiers.Low
			d.Confidence = Low
			d.Reasoning = append(d.Reasoning,
				fmt.Sprintf("Macro: Bullish sentiment (Score: %d)", sent.Score),
				"Conflicting signals - LOW confidence trade")
		default:
			d.AllocationPct = tiers.Medium
			d.Confidence = Medium
			d.Reasoning = append(d.Reasoning,
				fmt.Sprintf("Macro: Neutral sentiment (Score: %d)", sent.Score),
				"Mixed signals - MEDIUM confidence trade")
		}

	default:
		// NEUTRAL and NO_DATA both sit out
		d.Reasoning = append(d.Reasoning,
			"Technical: Price near equilibrium - no clear signal",
			"No trade opportunity identified")
	}

	return d
}
