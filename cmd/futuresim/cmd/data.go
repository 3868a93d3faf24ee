package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/futuresim/market/data"
)

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Download historical kline archives",
	Long: `Data fetches monthly USD-M futures kline archives from the Binance
public data mirror. Archives stay zipped; the backtest command reads
them directly.

Example:
  futuresim data --symbol BTCUSDT --interval 1h --from 2023-01 --to 2024-12`,
	RunE: runDataCmd,
}

var (
	dataSymbol   string
	dataInterval string
	dataFrom     string
	dataTo       string
	dataOut      string
	dataWorkers  int
)

func init() {
	rootCmd.AddCommand(dataCmd)

	dataCmd.Flags().StringVarP(&dataSymbol, "symbol", "s", "BTCUSDT", "futures symbol")
	dataCmd.Flags().StringVarP(&dataInterval, "interval", "i", "1h", "kline interval (1m, 5m, 1h, 1d, ...)")
	dataCmd.Flags().StringVar(&dataFrom, "from", "", "first month, YYYY-MM (required)")
	dataCmd.Flags().StringVar(&dataTo, "to", "", "last month, YYYY-MM (required)")
	dataCmd.Flags().StringVarP(&dataOut, "out", "o", "./data", "output directory")
	dataCmd.Flags().IntVar(&dataWorkers, "workers", 0, "parallel downloads (0 = auto)")

	dataCmd.MarkFlagRequired("from")
	dataCmd.MarkFlagRequired("to")
}

func runDataCmd(cmd *cobra.Command, args []string) error {
	from, err := time.Parse("2006-01", dataFrom)
	if err != nil {
		return fmt.Errorf("bad --from: %w", err)
	}
	to, err := time.Parse("2006-01", dataTo)
	if err != nil {
		return fmt.Errorf("bad --to: %w", err)
	}

	var opts []data.Option
	if dataWorkers > 0 {
		opts = append(opts, data.WithWorkers(dataWorkers))
	}
	d := data.NewDownloader(opts...)

	log.Info("fetching klines",
		zap.String("symbol", dataSymbol),
		zap.String("interval", dataInterval),
		zap.String("from", dataFrom),
		zap.String("to", dataTo))

	rep, err := d.FetchKlines(cmd.Context(), dataSymbol, dataInterval, from, to, dataOut)
	if err != nil {
		return err
	}

	fmt.Printf("Done. ok=%d missing=%d failed=%d\n", rep.OK, rep.Missing, rep.Failed)
	if rep.Failed > 0 {
		return fmt.Errorf("%d archives failed to download", rep.Failed)
	}
	return nil
}
