package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rustyeddy/futuresim/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "futuresim",
	Short: "A leveraged futures backtesting simulator",
	Long: `Futuresim is a bar-by-bar backtesting simulator for leveraged
perpetual futures written in Go.

It provides tools for:
  - Backtesting long/short strategies against historical OHLCV data
  - Tiered maintenance-margin and forced-liquidation modelling
  - Equity curves with and without trading costs, plus buy-and-hold
  - Parameter sweeps across leverage and strategy settings
  - Persisting runs, trades and equity curves to SQLite or CSV`,
	SilenceUsage: true,
}

var (
	logLevel    string
	logEncoding string

	log = logger.Nop()
)

// Execute runs the root command tree.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logEncoding, "log-format", "console", "log format (console, json)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		l, err := logger.New(logLevel, logEncoding)
		if err != nil {
			return err
		}
		log = l
		return nil
	}
}
