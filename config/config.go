// Package config holds the complete runtime configuration, loaded once at
// startup and passed into each component's constructor.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/niftylabs/niftysignal/decision"
	"github.com/niftylabs/niftysignal/macro"
)

// Config is the full configuration surface.
type Config struct {
	Data       DataConfig     `json:"data" yaml:"data"`
	Trading    TradingConfig  `json:"trading" yaml:"trading"`
	Macro      MacroConfig    `json:"macro" yaml:"macro"`
	Allocation decision.Tiers `json:"allocation" yaml:"allocation"`
	Risk       RiskConfig     `json:"risk" yaml:"risk"`
	Journal    JournalConfig  `json:"journal" yaml:"journal"`
	LogLevel   string         `json:"log_level" yaml:"log_level"`
}

// DataConfig names the traded instrument and its local cache.
type DataConfig struct {
	Symbol    string `json:"symbol" yaml:"symbol"`
	CacheFile string `json:"cache_file" yaml:"cache_file"`
	StartDate string `json:"start_date" yaml:"start_date"`
}

// TradingConfig holds the mean-reversion parameters.
type TradingConfig struct {
	LookbackPeriod  int     `json:"lookback_period" yaml:"lookback_period"`
	ZScoreThreshold float64 `json:"zscore_threshold" yaml:"zscore_threshold"`
	CapitalBase     float64 `json:"capital_base" yaml:"capital_base"`
}

// MacroConfig holds factor weights, classification thresholds, and the
// quote symbols behind the auto-fetched factors.
type MacroConfig struct {
	Weights    macro.Weights    `json:"weights" yaml:"weights"`
	Thresholds macro.Thresholds `json:"thresholds" yaml:"thresholds"`
	Symbols    MacroSymbols     `json:"symbols" yaml:"symbols"`
}

// MacroSymbols are the tickers for the externally fetched factors.
type MacroSymbols struct {
	GlobalIndex     string `json:"global_index" yaml:"global_index"`
	FXRate          string `json:"fx_rate" yaml:"fx_rate"`
	VolatilityIndex string `json:"volatility_index" yaml:"volatility_index"`
}

// RiskConfig holds the stop-loss distance and intraday exit time.
type RiskConfig struct {
	StopLossPct float64 `json:"stop_loss_pct" yaml:"stop_loss_pct"`
	ExitTime    string  `json:"exit_time" yaml:"exit_time"`
}

// JournalConfig selects where daily signal records go.
type JournalConfig struct {
	Type        string `json:"type" yaml:"type"` // "csv" or "sqlite"
	SignalsFile string `json:"signals_file,omitempty" yaml:"signals_file,omitempty"`
	DBPath      string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads and validates configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile writes the configuration, format chosen by extension.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate rejects invalid configuration before any computation begins.
func (c *Config) Validate() error {
	if c.Data.Symbol == "" {
		return fmt.Errorf("data.symbol is required")
	}
	if c.Data.CacheFile == "" {
		return fmt.Errorf("data.cache_file is required")
	}
	if c.Data.StartDate != "" {
		if _, err := time.Parse("2006-01-02", c.Data.StartDate); err != nil {
			return fmt.Errorf("data.start_date must be YYYY-MM-DD: %w", err)
		}
	}
	if c.Trading.LookbackPeriod < 2 {
		return fmt.Errorf("trading.lookback_period must be >= 2, got %d", c.Trading.LookbackPeriod)
	}
	if c.Trading.ZScoreThreshold <= 0 {
		return fmt.Errorf("trading.zscore_threshold must be positive, got %v", c.Trading.ZScoreThreshold)
	}
	if c.Trading.CapitalBase <= 0 {
		return fmt.Errorf("trading.capital_base must be positive, got %v", c.Trading.CapitalBase)
	}
	if c.Macro.Thresholds.Bearish > c.Macro.Thresholds.Bullish {
		return fmt.Errorf("macro.thresholds.bearish (%d) must be <= bullish (%d)",
			c.Macro.Thresholds.Bearish, c.Macro.Thresholds.Bullish)
	}
	for name, pct := range map[string]float64{
		"allocation.high":   c.Allocation.High,
		"allocation.medium": c.Allocation.Medium,
		"allocation.low":    c.Allocation.Low,
	} {
		if pct < 0 || pct > 100 {
			return fmt.Errorf("%s must be in [0,100], got %v", name, pct)
		}
	}
	if c.Allocation.High < c.Allocation.Medium || c.Allocation.Medium < c.Allocation.Low {
		return fmt.Errorf("allocation tiers must satisfy high >= medium >= low")
	}
	if c.Risk.StopLossPct <= 0 {
		return fmt.Errorf("risk.stop_loss_pct must be positive, got %v", c.Risk.StopLossPct)
	}
	if c.Risk.ExitTime != "" {
		if _, err := time.Parse("15:04", c.Risk.ExitTime); err != nil {
			return fmt.Errorf("risk.exit_time must be HH:MM: %w", err)
		}
	}
	if c.Journal.Type != "csv" && c.Journal.Type != "sqlite" {
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	if c.Journal.Type == "csv" && c.Journal.SignalsFile == "" {
		return fmt.Errorf("journal.signals_file required for CSV type")
	}
	if c.Journal.Type == "sqlite" && c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path required for SQLite type")
	}
	return nil
}

// Default returns the stock configuration for the Nifty 50 setup.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Symbol:    "^NSEI",
			CacheFile: "data/nifty50_daily.csv",
			StartDate: "2022-01-01",
		},
		Trading: TradingConfig{
			LookbackPeriod:  20,
			ZScoreThreshold: 2.0,
			CapitalBase:     100000,
		},
		Macro: MacroConfig{
			Weights: macro.Weights{
				PolicyRate:      3,
				CapitalFlow:     2,
				GlobalIndex:     2,
				FXRate:          1,
				VolatilityIndex: 1,
			},
			Thresholds: macro.Thresholds{Bullish: 3, Bearish: -3},
			Symbols: MacroSymbols{
				GlobalIndex:     "^GSPC",
				FXRate:          "INR=X",
				VolatilityIndex: "^INDIAVIX",
			},
		},
		Allocation: decision.Tiers{High: 80, Medium: 50, Low: 20},
		Risk: RiskConfig{
			StopLossPct: 1.0,
			ExitTime:    "15:15",
		},
		Journal: JournalConfig{
			Type:        "csv",
			SignalsFile: "data/signals/daily_signals.csv",
		},
		LogLevel: "info",
	}
}
