package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niftylabs/niftysignal/config"
	"github.com/niftylabs/niftysignal/decision"
	"github.com/niftylabs/niftysignal/macro"
	"github.com/niftylabs/niftysignal/market"
	"github.com/niftylabs/niftysignal/signal"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Data.Symbol = "NIFTY50"
	return cfg
}

// crashSeries is 19 flat sessions then a collapse, driving the z-score to
// about -4.25 over a 20 day lookback.
func crashSeries() market.Series {
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	var points []market.PricePoint
	for i := 0; i < 19; i++ {
		points = append(points, market.PricePoint{Date: start.AddDate(0, 0, i), Close: 100})
	}
	points = append(points, market.PricePoint{Date: start.AddDate(0, 0, 19), Close: 70})
	return market.Sanitize(points)
}

type stubQuotes struct {
	pct map[string]float64
	err error
}

func (s stubQuotes) PercentChange(symbol string) (float64, float64, error) {
	if s.err != nil {
		return 0, 0, s.err
	}
	return s.pct[symbol], 1, nil
}

func ptr(f float64) *float64 { return &f }

func TestRun_BuyHighConfidence(t *testing.T) {
	quotes := stubQuotes{pct: map[string]float64{
		"^GSPC":     1.0,  // bullish
		"INR=X":     -0.4, // bullish
		"^INDIAVIX": -6,   // bullish
	}}
	eng := New(testConfig(), quotes, zerolog.Nop())

	res, err := eng.Run(context.Background(), crashSeries(), MacroInputs{
		PolicyRate:     6.25,
		PrevPolicyRate: ptr(6.5), // cut, bullish
		CapitalFlow:    1500,     // strong inflow, bullish
	})
	require.NoError(t, err)

	assert.Equal(t, signal.Buy, res.Technical.Kind)
	assert.InDelta(t, -4.25, res.Technical.ZScore, 0.01)

	assert.Equal(t, macro.Bullish, res.Sentiment.Category)
	assert.Equal(t, 9, res.Sentiment.Score)

	assert.Equal(t, decision.Buy, res.Decision.Action)
	assert.Equal(t, 80.0, res.Decision.AllocationPct)
	assert.Equal(t, decision.High, res.Decision.Confidence)

	assert.Equal(t, 70.0, res.Decision.Risk.EntryPrice)
	assert.Equal(t, 69.3, res.Decision.Risk.StopLoss)
	assert.Equal(t, 71.4, res.Decision.Risk.Target)
	assert.Equal(t, 80000.0, res.Decision.Risk.CapitalAllocated)

	require.NotNil(t, res.Order)
	assert.Equal(t, "NIFTY50", res.Order.Symbol)
	assert.Equal(t, 1142, res.Order.Quantity) // floor(80000 / 70)
	assert.Equal(t, "15:15", res.Order.ExitTime)
	assert.Equal(t, 9, res.Order.MacroScore)
}

func TestRun_ShortSeriesNoTrade(t *testing.T) {
	eng := New(testConfig(), nil, zerolog.Nop())

	series := crashSeries()[:5] // far fewer points than the lookback
	res, err := eng.Run(context.Background(), series, MacroInputs{})
	require.NoError(t, err)

	assert.Equal(t, signal.NoData, res.Technical.Kind)
	assert.Equal(t, decision.NoTrade, res.Decision.Action)
	assert.Zero(t, res.Decision.Risk.EntryPrice)
	assert.Nil(t, res.Order)
}

func TestRun_EmptySeriesFails(t *testing.T) {
	eng := New(testConfig(), nil, zerolog.Nop())
	_, err := eng.Run(context.Background(), market.Series{}, MacroInputs{})
	assert.Error(t, err)
}

func TestRun_FetchFailuresDoNotAbort(t *testing.T) {
	quotes := stubQuotes{err: errors.New("dns failure")}
	eng := New(testConfig(), quotes, zerolog.Nop())

	res, err := eng.Run(context.Background(), crashSeries(), MacroInputs{
		PolicyRate:     6.25,
		PrevPolicyRate: ptr(6.5),
		CapitalFlow:    1500,
	})
	require.NoError(t, err)

	// manual factors (+3, +2) survive; failed fetches stay neutral
	assert.Equal(t, 5, res.Sentiment.Score)
	assert.Equal(t, macro.Bullish, res.Sentiment.Category)
	assert.Equal(t, decision.Buy, res.Decision.Action)
}

func TestRun_NoQuoteSourceFactorsNeutral(t *testing.T) {
	eng := New(testConfig(), nil, zerolog.Nop())

	res, err := eng.Run(context.Background(), crashSeries(), MacroInputs{
		PolicyRate:     6.5,
		PrevPolicyRate: ptr(6.5),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, res.Sentiment.Score)
	assert.Equal(t, macro.Neutral, res.Sentiment.Category)
	// technical BUY with neutral macro trades at the medium tier
	assert.Equal(t, decision.Buy, res.Decision.Action)
	assert.Equal(t, decision.Medium, res.Decision.Confidence)
	assert.Equal(t, 50.0, res.Decision.AllocationPct)
}

func TestSignalRecord(t *testing.T) {
	eng := New(testConfig(), nil, zerolog.Nop())
	res, err := eng.Run(context.Background(), crashSeries(), MacroInputs{
		PolicyRate:     6.25,
		PrevPolicyRate: ptr(6.5),
		CapitalFlow:    1500,
	})
	require.NoError(t, err)

	rec := res.SignalRecord()
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "BUY", rec.Action)
	assert.Equal(t, "BUY", rec.TechnicalSignal)
	assert.Equal(t, res.Technical.ZScore, rec.TechnicalZScore)
	assert.Equal(t, 70.0, rec.CurrentPrice)
	assert.Equal(t, "BULLISH", rec.MacroSentiment)
	assert.Equal(t, 5, rec.MacroScore)
	assert.Equal(t, res.Decision.Risk.StopLoss, rec.StopLoss)
}
