// Package risk derives stop-loss, target, and capital-at-risk figures for a
// trading decision.
package risk

import (
	"fmt"
	"math"
)

// Risk:reward is fixed at 1:2: the target sits twice as far from entry as
// the stop.
const rewardMultiple = 2

// Inputs for Calculate. Action uses the decision package's values
// ("BUY", "SELL", "NO_TRADE").
type Inputs struct {
	Action        string
	Price         float64 // current market price, entry for the trade
	AllocationPct float64 // percent of CapitalBase to deploy
	CapitalBase   float64
	StopLossPct   float64 // stop distance as a percent of entry
}

// Metrics are the computed risk figures, rounded to 2 decimals. The zero
// value (all fields zero) is the NO_TRADE result.
type Metrics struct {
	EntryPrice       float64
	StopLoss         float64
	Target           float64
	CapitalAllocated float64
	CapitalAtRisk    float64
	RiskReward       string
}

// Calculate computes risk metrics for a decision. NO_TRADE yields zero
// metrics and no error. For BUY the stop sits below entry and the target
// above; for SELL both are mirrored. Non-positive price or capital base is
// rejected at this boundary.
func Calculate(in Inputs) (Metrics, error) {
	if in.Action == "NO_TRADE" {
		return Metrics{}, nil
	}
	if in.Action != "BUY" && in.Action != "SELL" {
		return Metrics{}, fmt.Errorf("unknown action %q", in.Action)
	}
	if in.Price <= 0 {
		return Metrics{}, fmt.Errorf("price must be positive, got %v", in.Price)
	}
	if in.CapitalBase <= 0 {
		return Metrics{}, fmt.Errorf("capital base must be positive, got %v", in.CapitalBase)
	}
	if in.StopLossPct <= 0 {
		return Metrics{}, fmt.Errorf("stop loss percent must be positive, got %v", in.StopLossPct)
	}

	stopFrac := in.StopLossPct / 100

	var stop, target float64
	if in.Action == "BUY" {
		stop = in.Price * (1 - stopFrac)
		target = in.Price * (1 + rewardMultiple*stopFrac)
	} else {
		stop = in.Price * (1 + stopFrac)
		target = in.Price * (1 - rewardMultiple*stopFrac)
	}

	allocated := in.AllocationPct / 100 * in.CapitalBase

	return Metrics{
		EntryPrice:       round2(in.Price),
		StopLoss:         round2(stop),
		Target:           round2(target),
		CapitalAllocated: round2(allocated),
		CapitalAtRisk:    round2(allocated * stopFrac),
		RiskReward:       fmt.Sprintf("1:%d", rewardMultiple),
	}, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
