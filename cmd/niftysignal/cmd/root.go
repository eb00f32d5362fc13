package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "niftysignal",
	Short: "Hybrid mean-reversion and macro-sentiment trading signals",
	Long: `niftysignal combines a rolling mean-reversion signal on a daily price
series with a weighted macro factor score to produce one discrete trading
decision per run: direction, capital allocation, confidence, stop-loss and
target prices, and an order quantity.

Run it once per day before market open:
  niftysignal run --config config.yaml`,
}

var cfgPath string

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "f", "config.yaml", "path to config file (YAML or JSON)")
}
