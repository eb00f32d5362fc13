package market

import (
	"sort"
	"time"
)

// Series is an ordered daily price sequence, strictly increasing by date.
// Build one with Sanitize to get the ordering guarantee.
type Series []PricePoint

// Sanitize sorts points ascending by date and collapses duplicate dates,
// keeping the last row seen for each date. Input order does not matter.
func Sanitize(points []PricePoint) Series {
	byDate := make(map[time.Time]PricePoint, len(points))
	for _, p := range points {
		day := p.Date.Truncate(24 * time.Hour)
		p.Date = day
		byDate[day] = p
	}

	out := make(Series, 0, len(byDate))
	for _, p := range byDate {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Closes returns the close prices in series order.
func (s Series) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, p := range s {
		closes[i] = p.Close
	}
	return closes
}

// Last returns the most recent point. ok is false for an empty series.
func (s Series) Last() (p PricePoint, ok bool) {
	if len(s) == 0 {
		return PricePoint{}, false
	}
	return s[len(s)-1], true
}

// Merge combines s with fresh points, later rows winning on duplicate dates.
func (s Series) Merge(fresh []PricePoint) Series {
	combined := make([]PricePoint, 0, len(s)+len(fresh))
	combined = append(combined, s...)
	combined = append(combined, fresh...)
	return Sanitize(combined)
}
