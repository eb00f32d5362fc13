// Package collector fetches daily OHLCV data and quote deltas from the
// Yahoo Finance chart API and maintains the local CSV cache.
package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/niftylabs/niftysignal/market"
)

const (
	baseURL   = "https://query1.finance.yahoo.com"
	chartPath = "/v8/finance/chart/{symbol}"
	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Client talks to the Yahoo chart endpoint. It satisfies macro.QuoteSource.
type Client struct {
	http *resty.Client
	log  zerolog.Logger
}

func NewClient(log zerolog.Logger) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("User-Agent", userAgent)

	return &Client{http: http, log: log}
}

// DailyHistory fetches daily bars for symbol from start through now.
func (c *Client) DailyHistory(ctx context.Context, symbol string, start time.Time) (market.Series, error) {
	body, err := c.chart(ctx, symbol, map[string]string{
		"interval": "1d",
		"period1":  fmt.Sprintf("%d", start.Unix()),
		"period2":  fmt.Sprintf("%d", time.Now().Unix()),
	})
	if err != nil {
		return nil, err
	}

	points, err := parseChart(body)
	if err != nil {
		return nil, fmt.Errorf("parse chart for %s: %w", symbol, err)
	}
	c.log.Debug().Str("symbol", symbol).Int("bars", len(points)).Msg("fetched daily history")
	return market.Sanitize(points), nil
}

// PercentChange returns the move of the most recent daily close against the
// prior session, plus the latest close itself.
func (c *Client) PercentChange(symbol string) (pct float64, last float64, err error) {
	body, err := c.chart(context.Background(), symbol, map[string]string{
		"interval": "1d",
		"range":    "5d",
	})
	if err != nil {
		return 0, 0, err
	}

	points, err := parseChart(body)
	if err != nil {
		return 0, 0, fmt.Errorf("parse chart for %s: %w", symbol, err)
	}
	series := market.Sanitize(points)
	if len(series) < 2 {
		return 0, 0, fmt.Errorf("%s: need 2 sessions, got %d", symbol, len(series))
	}

	prev := series[len(series)-2].Close
	last = series[len(series)-1].Close
	if prev == 0 {
		return 0, 0, fmt.Errorf("%s: prior close is zero", symbol)
	}
	return (last - prev) / prev * 100, last, nil
}

// UpdateCache loads the cached series, fetches bars since the last cached
// date (or start for an empty cache), merges, and rewrites the cache file.
func (c *Client) UpdateCache(ctx context.Context, symbol, cacheFile string, start time.Time) (market.Series, error) {
	cached, err := market.LoadFile(cacheFile)
	if err != nil {
		return nil, fmt.Errorf("load cache %s: %w", cacheFile, err)
	}

	from := start
	if latest, ok := cached.Last(); ok {
		// re-fetch the last couple of days so a partially formed final
		// bar gets replaced by the settled one
		from = latest.Date.AddDate(0, 0, -2)
	}

	fresh, err := c.DailyHistory(ctx, symbol, from)
	if err != nil {
		return nil, err
	}

	merged := cached.Merge(fresh)
	if err := merged.SaveFile(cacheFile); err != nil {
		return nil, fmt.Errorf("save cache %s: %w", cacheFile, err)
	}
	c.log.Info().Str("symbol", symbol).Int("bars", len(merged)).Str("cache", cacheFile).Msg("cache updated")
	return merged, nil
}

func (c *Client) chart(ctx context.Context, symbol string, params map[string]string) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol).
		SetQueryParams(params).
		Get(chartPath)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch %s: status %d", symbol, resp.StatusCode())
	}
	return resp.Body(), nil
}

// parseChart extracts daily bars from a Yahoo chart response. Sessions with
// a null close (holidays, in-flight bars) are skipped.
func parseChart(body []byte) ([]market.PricePoint, error) {
	if desc := gjson.GetBytes(body, "chart.error.description"); desc.Exists() && desc.String() != "" {
		return nil, fmt.Errorf("chart api: %s", desc.String())
	}

	result := gjson.GetBytes(body, "chart.result.0")
	if !result.Exists() {
		return nil, fmt.Errorf("chart api: empty result")
	}

	timestamps := result.Get("timestamp").Array()
	quote := result.Get("indicators.quote.0")
	opens := quote.Get("open").Array()
	highs := quote.Get("high").Array()
	lows := quote.Get("low").Array()
	closes := quote.Get("close").Array()
	volumes := quote.Get("volume").Array()

	var points []market.PricePoint
	for i, ts := range timestamps {
		if i >= len(closes) || closes[i].Type == gjson.Null {
			continue
		}
		p := market.PricePoint{
			Date:  time.Unix(ts.Int(), 0).UTC(),
			Close: closes[i].Float(),
		}
		if i < len(opens) {
			p.Open = opens[i].Float()
		}
		if i < len(highs) {
			p.High = highs[i].Float()
		}
		if i < len(lows) {
			p.Low = lows[i].Float()
		}
		if i < len(volumes) {
			p.Volume = volumes[i].Float()
		}
		points = append(points, p)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("chart api: no usable sessions")
	}
	return points, nil
}
