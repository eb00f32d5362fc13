// Package report renders a pipeline result for the console.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/niftylabs/niftysignal/decision"
	"github.com/niftylabs/niftysignal/engine"
	"github.com/niftylabs/niftysignal/macro"
	"github.com/niftylabs/niftysignal/signal"
)

const rule = "======================================================================"

// Write renders the full report: technical, macro breakdown, decision, and
// the order when one exists.
func Write(w io.Writer, res *engine.Result) {
	fmt.Fprintf(w, "%s\nHYBRID TRADING SIGNAL | %s\n%s\n",
		rule, res.Time.Format("2006-01-02 15:04:05"), rule)

	writeTechnical(w, res.Technical)
	writeMacro(w, res.Sentiment)
	writeDecision(w, res.Decision)

	if res.Order != nil {
		fmt.Fprintf(w, "\n--- Trade Order ---\n")
		fmt.Fprintf(w, "Order ID: %s\n", res.Order.ID)
		fmt.Fprintf(w, "Symbol: %s\n", res.Order.Symbol)
		fmt.Fprintf(w, "Action: %s (%s)\n", res.Order.Action, res.Order.Type)
		fmt.Fprintf(w, "Quantity: %d\n", res.Order.Quantity)
		fmt.Fprintf(w, "Entry: %.2f | Stop: %.2f | Target: %.2f\n",
			res.Order.EntryPrice, res.Order.StopLoss, res.Order.Target)
		fmt.Fprintf(w, "Exit Time: %s\n", res.Order.ExitTime)
		if res.Order.Quantity == 0 {
			fmt.Fprintf(w, "Note: allocation too small for one unit at this price\n")
		}
	}
	fmt.Fprintln(w, rule)
}

func writeTechnical(w io.Writer, sig signal.Signal) {
	fmt.Fprintf(w, "\n--- Technical (Mean Reversion) ---\n")
	fmt.Fprintf(w, "Signal: %s\n", sig.Kind)
	fmt.Fprintf(w, "Current Price: %.2f\n", sig.CurrentPrice)
	if sig.Valid {
		fmt.Fprintf(w, "Rolling Mean: %.2f\n", sig.MeanPrice)
		fmt.Fprintf(w, "Deviation: %.2f (%.2f%%)\n", sig.Deviation, sig.DeviationPct)
		fmt.Fprintf(w, "Z-Score: %.2f\n", sig.ZScore)
	}
	fmt.Fprintf(w, "Reason: %s\n", sig.Reason)
}

func writeMacro(w io.Writer, sent macro.Sentiment) {
	fmt.Fprintf(w, "\n--- Macro Sentiment ---\n")
	fmt.Fprintf(w, "Overall: %s (Score: %d)\n", sent.Category, sent.Score)
	for _, name := range macro.Names {
		b := sent.Breakdown[name]
		raw := "n/a"
		if b.HasRaw {
			raw = fmt.Sprintf("%.2f", b.Raw)
		}
		fmt.Fprintf(w, "  %-16s value=%-10s %-8s contribution=%+d\n",
			strings.ToUpper(name), raw, b.Polarity, b.Contribution)
	}
}

func writeDecision(w io.Writer, d decision.Decision) {
	fmt.Fprintf(w, "\n--- Decision ---\n")
	fmt.Fprintf(w, "Action: %s\n", d.Action)
	fmt.Fprintf(w, "Capital Allocation: %.0f%%\n", d.AllocationPct)
	fmt.Fprintf(w, "Confidence: %s\n", d.Confidence)
	for _, line := range d.Reasoning {
		fmt.Fprintf(w, "  - %s\n", line)
	}
	if d.Action != decision.NoTrade {
		fmt.Fprintf(w, "\n--- Risk ---\n")
		fmt.Fprintf(w, "Entry: %.2f | Stop: %.2f | Target: %.2f (%s)\n",
			d.Risk.EntryPrice, d.Risk.StopLoss, d.Risk.Target, d.Risk.RiskReward)
		fmt.Fprintf(w, "Capital Allocated: %.2f | Capital at Risk: %.2f\n",
			d.Risk.CapitalAllocated, d.Risk.CapitalAtRisk)
	}
}
