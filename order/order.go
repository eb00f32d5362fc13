// Package order turns a trading decision into an executable order payload.
package order

import (
	"time"

	"github.com/niftylabs/niftysignal/decision"
	"github.com/niftylabs/niftysignal/pkg/id"
)

// TypeMarket marks an order for execution at the prevailing price.
const TypeMarket = "MARKET"

// Order is the concrete payload handed to an execution collaborator. The
// zscore and macro score are echoed for audit.
type Order struct {
	ID              string
	Timestamp       time.Time
	Symbol          string
	Action          decision.Action
	Type            string
	Quantity        int
	EntryPrice      float64
	StopLoss        float64
	Target          float64
	ExitTime        string // time-of-day for the intraday exit, e.g. "15:15"
	Confidence      decision.Confidence
	TechnicalZScore float64
	MacroScore      int
}

// Build constructs the order for a decision. NO_TRADE yields nil: the
// absence of an order, not an error.
//
// Quantity is the floor of allocated capital over entry price. When the
// allocation is too small for a single unit the order is still returned with
// Quantity 0; discarding it is the caller's call.
func Build(d decision.Decision, symbol, exitTime string, now time.Time) *Order {
	if d.Action == decision.NoTrade {
		return nil
	}

	qty := 0
	if d.Risk.EntryPrice > 0 {
		qty = int(d.Risk.CapitalAllocated / d.Risk.EntryPrice)
	}

	return &Order{
		ID:              id.New(),
		Timestamp:       now,
		Symbol:          symbol,
		Action:          d.Action,
		Type:            TypeMarket,
		Quantity:        qty,
		EntryPrice:      d.Risk.EntryPrice,
		StopLoss:        d.Risk.StopLoss,
		Target:          d.Risk.Target,
		ExitTime:        exitTime,
		Confidence:      d.Confidence,
		TechnicalZScore: d.Technical.ZScore,
		MacroScore:      d.Macro.Score,
	}
}
