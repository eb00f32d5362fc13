package decision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niftylabs/niftysignal/macro"
	"github.com/niftylabs/niftysignal/signal"
)

var testTiers = Tiers{High: 80, Medium: 50, Low: 20}

func tech(kind signal.Kind) signal.Signal {
	return signal.Signal{Kind: kind, ZScore: -2.3, CurrentPrice: 24900, Valid: kind != signal.NoData}
}

func sent(cat macro.Category) macro.Sentiment {
	return macro.Sentiment{Category: cat, Score: 4}
}

func TestDecide_Matrix(t *testing.T) {
	cases := []struct {
		tech       signal.Kind
		macro      macro.Category
		action     Action
		pct        float64
		confidence Confidence
	}{
		{signal.Buy, macro.Bullish, Buy, 80, High},
		{signal.Buy, macro.Neutral, Buy, 50, Medium},
		{signal.Buy, macro.Bearish, Buy, 20, Low},
		{signal.Sell, macro.Bearish, Sell, 80, High},
		{signal.Sell, macro.Neutral, Sell, 50, Medium},
		{signal.Sell, macro.Bullish, Sell, 20, Low},
		{signal.Neutral, macro.Bullish, NoTrade, 0, None},
		{signal.Neutral, macro.Neutral, NoTrade, 0, None},
		{signal.Neutral, macro.Bearish, NoTrade, 0, None},
		{signal.NoData, macro.Bullish, NoTrade, 0, None},
		{signal.NoData, macro.Neutral, NoTrade, 0, None},
		{signal.NoData, macro.Bearish, NoTrade, 0, None},
	}

	for _, tc := range cases {
		d := Decide(tech(tc.tech), sent(tc.macro), testTiers)
		assert.Equal(t, tc.action, d.Action, "%s/%s", tc.tech, tc.macro)
		assert.Equal(t, tc.pct, d.AllocationPct, "%s/%s", tc.tech, tc.macro)
		assert.Equal(t, tc.confidence, d.Confidence, "%s/%s", tc.tech, tc.macro)
	}
}

func TestDecide_Reasoning(t *testing.T) {
	d := Decide(tech(signal.Buy), sent(macro.Bullish), testTiers)
	require.Len(t, d.Reasoning, 3)
	assert.Contains(t, d.Reasoning[0], "oversold")
	assert.Contains(t, d.Reasoning[0], "-2.30")
	assert.Contains(t, d.Reasoning[1], "bullish")
	assert.Contains(t, d.Reasoning[1], "Score: 4")
	assert.Contains(t, d.Reasoning[2], "aligned")

	d = Decide(tech(signal.Sell), sent(macro.Bullish), testTiers)
	require.Len(t, d.Reasoning, 3)
	assert.Contains(t, d.Reasoning[0], "overbought")
	assert.Contains(t, d.Reasoning[2], "Conflicting")

	d = Decide(tech(signal.Neutral), sent(macro.Bearish), testTiers)
	require.Len(t, d.Reasoning, 2)
	assert.Contains(t, d.Reasoning[0], "no clear signal")
}

func TestDecide_EchoesInputs(t *testing.T) {
	in := tech(signal.Buy)
	s := sent(macro.Neutral)
	d := Decide(in, s, testTiers)
	assert.Equal(t, in, d.Technical)
	assert.Equal(t, s, d.Macro)
}

func TestDecide_Pure(t *testing.T) {
	a := Decide(tech(signal.Sell), sent(macro.Bearish), testTiers)
	b := Decide(tech(signal.Sell), sent(macro.Bearish), testTiers)
	assert.Equal(t, a, b)
}
