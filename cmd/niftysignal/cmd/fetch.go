package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/niftylabs/niftysignal/collector"
	"github.com/niftylabs/niftysignal/config"
	"github.com/niftylabs/niftysignal/pkg/logx"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Refresh the local price cache without running the pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFromFile(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		log := logx.New(cfg.LogLevel)

		client := collector.NewClient(log)
		series, err := client.UpdateCache(cmd.Context(), cfg.Data.Symbol, cfg.Data.CacheFile, startDate(cfg))
		if err != nil {
			return fmt.Errorf("update price data: %w", err)
		}

		last, _ := series.Last()
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d bars cached through %s (close %.2f)\n",
			cfg.Data.Symbol, len(series), last.Date.Format("2006-01-02"), last.Close)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
