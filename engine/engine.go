// Package engine runs the full pipeline for one trading decision: rolling
// stats, technical signal, macro sentiment, decision matrix, risk metrics,
// and the final order.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/niftylabs/niftysignal/config"
	"github.com/niftylabs/niftysignal/decision"
	"github.com/niftylabs/niftysignal/indicators"
	"github.com/niftylabs/niftysignal/journal"
	"github.com/niftylabs/niftysignal/macro"
	"github.com/niftylabs/niftysignal/market"
	"github.com/niftylabs/niftysignal/order"
	"github.com/niftylabs/niftysignal/pkg/id"
	"github.com/niftylabs/niftysignal/risk"
	"github.com/niftylabs/niftysignal/signal"
)

// MacroInputs are the manually supplied factor values. PrevPolicyRate may
// be nil when there is no prior rate to compare against.
type MacroInputs struct {
	PolicyRate     float64
	PrevPolicyRate *float64
	CapitalFlow    float64
}

// Result bundles everything one run produces. Order is nil for NO_TRADE.
type Result struct {
	Time      time.Time
	Technical signal.Signal
	Sentiment macro.Sentiment
	Decision  decision.Decision
	Order     *order.Order
}

// Engine wires the stages together. Quotes may be nil to run offline, in
// which case the auto-fetched factors stay neutral.
type Engine struct {
	cfg    *config.Config
	quotes macro.QuoteSource
	log    zerolog.Logger
}

func New(cfg *config.Config, quotes macro.QuoteSource, log zerolog.Logger) *Engine {
	return &Engine{cfg: cfg, quotes: quotes, log: log}
}

// Run executes the stages in data-flow order. A fresh scorer is built per
// invocation, so concurrent runs share no mutable state. Fetch failures
// leave the affected factor neutral and never abort the run.
func (e *Engine) Run(ctx context.Context, series market.Series, in MacroInputs) (*Result, error) {
	last, ok := series.Last()
	if !ok {
		return nil, fmt.Errorf("empty price series")
	}

	// stage 1: technical
	stats, err := indicators.RollingStats(series.Closes(), e.cfg.Trading.LookbackPeriod)
	if err != nil {
		return nil, fmt.Errorf("rolling stats: %w", err)
	}
	tech := signal.Classify(indicators.Latest(stats), last.Close, e.cfg.Trading.ZScoreThreshold)
	e.log.Info().Str("signal", string(tech.Kind)).Float64("zscore", tech.ZScore).Msg("technical signal")

	// stage 2: macro
	scorer := macro.NewScorer(e.cfg.Macro.Weights, e.cfg.Macro.Thresholds)
	scorer.SetPolicyRate(in.PolicyRate, in.PrevPolicyRate)
	scorer.SetCapitalFlow(in.CapitalFlow)
	if e.quotes != nil {
		if err := scorer.FetchGlobalIndex(e.quotes, e.cfg.Macro.Symbols.GlobalIndex); err != nil {
			e.log.Warn().Err(err).Msg("global index unavailable, factor neutral")
		}
		if err := scorer.FetchFXRate(e.quotes, e.cfg.Macro.Symbols.FXRate); err != nil {
			e.log.Warn().Err(err).Msg("fx rate unavailable, factor neutral")
		}
		if err := scorer.FetchVolatilityIndex(e.quotes, e.cfg.Macro.Symbols.VolatilityIndex); err != nil {
			e.log.Warn().Err(err).Msg("volatility index unavailable, factor neutral")
		}
	} else {
		e.log.Info().Msg("no quote source, auto-fetched factors neutral")
	}
	sent := scorer.Sentiment()
	e.log.Info().Str("sentiment", string(sent.Category)).Int("score", sent.Score).Msg("macro sentiment")

	// stage 3: decision, then risk, then order, strictly in that order
	d := decision.Decide(tech, sent, e.cfg.Allocation)
	metrics, err := risk.Calculate(risk.Inputs{
		Action:        string(d.Action),
		Price:         last.Close,
		AllocationPct: d.AllocationPct,
		CapitalBase:   e.cfg.Trading.CapitalBase,
		StopLossPct:   e.cfg.Risk.StopLossPct,
	})
	if err != nil {
		return nil, fmt.Errorf("risk metrics: %w", err)
	}
	d.Risk = metrics

	res := &Result{
		Time:      time.Now(),
		Technical: tech,
		Sentiment: sent,
		Decision:  d,
		Order:     order.Build(d, e.cfg.Data.Symbol, e.cfg.Risk.ExitTime, time.Now()),
	}
	e.log.Info().
		Str("action", string(d.Action)).
		Float64("allocation_pct", d.AllocationPct).
		Str("confidence", string(d.Confidence)).
		Msg("decision")
	return res, nil
}

// SignalRecord flattens the result into the journal row for this run.
func (r *Result) SignalRecord() journal.SignalRecord {
	return journal.SignalRecord{
		ID:              id.New(),
		Time:            r.Time,
		Action:          string(r.Decision.Action),
		AllocationPct:   r.Decision.AllocationPct,
		Confidence:      string(r.Decision.Confidence),
		TechnicalSignal: string(r.Technical.Kind),
		TechnicalZScore: r.Technical.ZScore,
		CurrentPrice:    r.Technical.CurrentPrice,
		MacroSentiment:  string(r.Sentiment.Category),
		MacroScore:      r.Sentiment.Score,
		EntryPrice:      r.Decision.Risk.EntryPrice,
		StopLoss:        r.Decision.Risk.StopLoss,
		Target:          r.Decision.Risk.Target,
	}
}
