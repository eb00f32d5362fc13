// Package macro scores five fixed macro-economic factors into a single
// weighted sentiment reading.
package macro

import (
	"fmt"
	"math"
)

// Factor slot names, in reporting order.
const (
	PolicyRate      = "policy_rate"
	CapitalFlow     = "capital_flow"
	GlobalIndex     = "global_index"
	FXRate          = "fx_rate"
	VolatilityIndex = "volatility_index"
)

// Names lists the five factor slots in reporting order. The set is closed:
// the weighted sum always runs over exactly these factors.
var Names = []string{PolicyRate, CapitalFlow, GlobalIndex, FXRate, VolatilityIndex}

// Weights are the signed per-factor weights, fixed at construction.
type Weights struct {
	PolicyRate      int `json:"policy_rate" yaml:"policy_rate"`
	CapitalFlow     int `json:"capital_flow" yaml:"capital_flow"`
	GlobalIndex     int `json:"global_index" yaml:"global_index"`
	FXRate          int `json:"fx_rate" yaml:"fx_rate"`
	VolatilityIndex int `json:"volatility_index" yaml:"volatility_index"`
}

// Thresholds classify the weighted score. Bearish must be <= Bullish.
type Thresholds struct {
	Bullish int `json:"bullish" yaml:"bullish"`
	Bearish int `json:"bearish" yaml:"bearish"`
}

// QuoteSource supplies the external market deltas the auto-fetched factors
// depend on. PercentChange compares the two most recent daily closes.
type QuoteSource interface {
	PercentChange(symbol string) (pct float64, last float64, err error)
}

// factor is one slot: current raw value plus its directional vote.
type factor struct {
	raw    float64
	hasRaw bool
	dir    int // +1 bullish, -1 bearish, 0 neutral
}

// Scorer owns the five factor slots. Construct one per run; factors are
// mutated only through the named setters and fetchers below.
type Scorer struct {
	weights    Weights
	thresholds Thresholds

	policyRate      factor
	capitalFlow     factor
	globalIndex     factor
	fxRate          factor
	volatilityIndex factor
}

// NewScorer builds a scorer with all factors unset (neutral).
func NewScorer(weights Weights, thresholds Thresholds) *Scorer {
	return &Scorer{weights: weights, thresholds: thresholds}
}

// SetPolicyRate records the central-bank policy rate. A cut is bullish, a
// hike bearish. With no previous rate to compare against the vote is neutral.
func (s *Scorer) SetPolicyRate(current float64, previous *float64) {
	s.policyRate = factor{raw: current, hasRaw: true}
	if previous == nil {
		return
	}
	switch {
	case current < *previous:
		s.policyRate.dir = 1
	case current > *previous:
		s.policyRate.dir = -1
	}
}

// SetCapitalFlow records net institutional flow in currency units. Flows
// beyond +/-1000 vote bullish/bearish.
func (s *Scorer) SetCapitalFlow(net float64) {
	s.capitalFlow = factor{raw: net, hasRaw: true}
	switch {
	case net > 1000:
		s.capitalFlow.dir = 1
	case net < -1000:
		s.capitalFlow.dir = -1
	}
}

// FetchGlobalIndex reads the reference foreign index move. A session gain
// above 0.5% is bullish, a loss beyond 0.5% bearish. On fetch failure the
// factor stays neutral and the error is returned for logging only.
func (s *Scorer) FetchGlobalIndex(src QuoteSource, symbol string) error {
	pct, _, err := src.PercentChange(symbol)
	if err != nil {
		s.globalIndex = factor{}
		return fmt.Errorf("fetch global index %s: %w", symbol, err)
	}
	s.globalIndex = factor{raw: round2(pct), hasRaw: true}
	switch {
	case pct > 0.5:
		s.globalIndex.dir = 1
	case pct < -0.5:
		s.globalIndex.dir = -1
	}
	return nil
}

// FetchFXRate reads the domestic-currency quote move. The quote falling more
// than 0.3% (currency strengthening) is bullish; rising past 0.3% bearish.
func (s *Scorer) FetchFXRate(src QuoteSource, symbol string) error {
	pct, last, err := src.PercentChange(symbol)
	if err != nil {
		s.fxRate = factor{}
		return fmt.Errorf("fetch fx rate %s: %w", symbol, err)
	}
	s.fxRate = factor{raw: round2(last), hasRaw: true}
	switch {
	case pct < -0.3:
		s.fxRate.dir = 1
	case pct > 0.3:
		s.fxRate.dir = -1
	}
	return nil
}

// FetchVolatilityIndex reads the fear-gauge move. A drop beyond 5% is
// bullish (fear receding), a rise beyond 5% bearish.
func (s *Scorer) FetchVolatilityIndex(src QuoteSource, symbol string) error {
	pct, last, err := src.PercentChange(symbol)
	if err != nil {
		s.volatilityIndex = factor{}
		return fmt.Errorf("fetch volatility index %s: %w", symbol, err)
	}
	s.volatilityIndex = factor{raw: round2(last), hasRaw: true}
	switch {
	case pct < -5:
		s.volatilityIndex.dir = 1
	case pct > 5:
		s.volatilityIndex.dir = -1
	}
	return nil
}

// slots returns the factor slots paired with their weights, always all five.
func (s *Scorer) slots() []struct {
	name   string
	f      factor
	weight int
} {
	return []struct {
		name   string
		f      factor
		weight int
	}{
		{PolicyRate, s.policyRate, s.weights.PolicyRate},
		{CapitalFlow, s.capitalFlow, s.weights.CapitalFlow},
		{GlobalIndex, s.globalIndex, s.weights.GlobalIndex},
		{FXRate, s.fxRate, s.weights.FXRate},
		{VolatilityIndex, s.volatilityIndex, s.weights.VolatilityIndex},
	}
}

// Score is the weighted sum of directional votes over all five factors.
// It is recomputed in full on every call; unset factors contribute 0.
func (s *Scorer) Score() int {
	total := 0
	for _, slot := range s.slots() {
		total += slot.f.dir * slot.weight
	}
	return total
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
