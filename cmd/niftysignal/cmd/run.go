package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/niftylabs/niftysignal/collector"
	"github.com/niftylabs/niftysignal/config"
	"github.com/niftylabs/niftysignal/engine"
	"github.com/niftylabs/niftysignal/journal"
	"github.com/niftylabs/niftysignal/macro"
	"github.com/niftylabs/niftysignal/market"
	"github.com/niftylabs/niftysignal/pkg/logx"
	"github.com/niftylabs/niftysignal/report"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline and print the trading decision",
	Long: `Run updates the local price cache, computes the technical signal and
macro sentiment, and prints the fused trading decision with risk metrics and
the order payload. The result is appended to the signal journal.

Policy rate and institutional flow are manual inputs; the remaining macro
factors are fetched unless --offline is set.

Example:
  niftysignal run -f config.yaml --policy-rate 6.5 --prev-policy-rate 6.5 --flow 1500`,
	RunE: runRun,
}

var (
	runPolicyRate     float64
	runPrevPolicyRate float64
	runFlow           float64
	runOffline        bool
	runNoJournal      bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Float64Var(&runPolicyRate, "policy-rate", 6.5, "current central bank policy rate (%)")
	runCmd.Flags().Float64Var(&runPrevPolicyRate, "prev-policy-rate", 6.5, "previous policy rate for comparison")
	runCmd.Flags().Float64Var(&runFlow, "flow", 0, "net institutional flow (currency units, + inflow / - outflow)")
	runCmd.Flags().BoolVar(&runOffline, "offline", false, "skip network fetches; cached data only, fetched factors neutral")
	runCmd.Flags().BoolVar(&runNoJournal, "no-journal", false, "do not record the signal")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logx.New(cfg.LogLevel)

	var series market.Series
	var quotes macro.QuoteSource
	if runOffline {
		series, err = market.LoadFile(cfg.Data.CacheFile)
		if err != nil {
			return fmt.Errorf("load cached series: %w", err)
		}
	} else {
		client := collector.NewClient(log)
		quotes = client
		series, err = client.UpdateCache(cmd.Context(), cfg.Data.Symbol, cfg.Data.CacheFile, startDate(cfg))
		if err != nil {
			return fmt.Errorf("update price data: %w", err)
		}
	}
	if len(series) < cfg.Trading.LookbackPeriod {
		log.Warn().
			Int("have", len(series)).
			Int("lookback", cfg.Trading.LookbackPeriod).
			Msg("series shorter than lookback, expect NO_DATA")
	}

	eng := engine.New(cfg, quotes, log)
	res, err := eng.Run(cmd.Context(), series, engine.MacroInputs{
		PolicyRate:     runPolicyRate,
		PrevPolicyRate: &runPrevPolicyRate,
		CapitalFlow:    runFlow,
	})
	if err != nil {
		return err
	}

	report.Write(cmd.OutOrStdout(), res)

	if runNoJournal {
		return nil
	}
	j, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()
	if err := j.RecordSignal(res.SignalRecord()); err != nil {
		return fmt.Errorf("record signal: %w", err)
	}
	log.Info().Str("type", cfg.Journal.Type).Msg("signal recorded")
	return nil
}

func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	if jc.Type == "sqlite" {
		if err := os.MkdirAll(filepath.Dir(jc.DBPath), 0755); err != nil {
			return nil, err
		}
		return journal.NewSQLite(jc.DBPath)
	}
	if err := os.MkdirAll(filepath.Dir(jc.SignalsFile), 0755); err != nil {
		return nil, err
	}
	return journal.NewCSV(jc.SignalsFile)
}

func startDate(cfg *config.Config) time.Time {
	if cfg.Data.StartDate != "" {
		if t, err := time.Parse("2006-01-02", cfg.Data.StartDate); err == nil {
			return t
		}
	}
	return time.Now().AddDate(-2, 0, 0)
}
