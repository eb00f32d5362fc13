package macro

// Category is the overall macro reading.
type Category string

const (
	Bullish Category = "BULLISH"
	Neutral Category = "NEUTRAL"
	Bearish Category = "BEARISH"
)

// FactorBreakdown reports one factor's inputs and its share of the score.
type FactorBreakdown struct {
	Raw          float64
	HasRaw       bool
	Polarity     string // Positive, Neutral, Negative
	Contribution int
}

// Sentiment is the immutable result of scoring all five factors.
type Sentiment struct {
	Category  Category
	Score     int
	Breakdown map[string]FactorBreakdown
}

// Sentiment classifies the current score against the configured thresholds
// and reports the per-factor breakdown.
func (s *Scorer) Sentiment() Sentiment {
	score := s.Score()

	category := Neutral
	switch {
	case score > s.thresholds.Bullish:
		category = Bullish
	case score < s.thresholds.Bearish:
		category = Bearish
	}

	breakdown := make(map[string]FactorBreakdown, len(Names))
	for _, slot := range s.slots() {
		breakdown[slot.name] = FactorBreakdown{
			Raw:          slot.f.raw,
			HasRaw:       slot.f.hasRaw,
			Polarity:     polarity(slot.f.dir),
			Contribution: slot.f.dir * slot.weight,
		}
	}

	return Sentiment{Category: category, Score: score, Breakdown: breakdown}
}

func polarity(dir int) string {
	switch {
	case dir > 0:
		return "Positive"
	case dir < 0:
		return "Negative"
	default:
		return "Neutral"
	}
}
