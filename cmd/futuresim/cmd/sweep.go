package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/futuresim/backtest"
	"github.com/rustyeddy/futuresim/config"
	"github.com/rustyeddy/futuresim/market"
	"github.com/rustyeddy/futuresim/strategies"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the configured strategy across a range of leverages",
	Long: `Sweep runs one backtest per leverage value against the same dataset
and prints a comparison table. Runs execute concurrently; results keep
the input order.

Example:
  futuresim sweep -c simulation.yaml --leverages 1,2,5,10,20`,
	RunE: runSweepCmd,
}

var (
	swConfigPath string
	swLeverages  string
	swWorkers    int
)

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().StringVarP(&swConfigPath, "config", "c", "", "path to config file (required)")
	sweepCmd.Flags().StringVar(&swLeverages, "leverages", "1,2,5,10", "comma-separated leverage values")
	sweepCmd.Flags().IntVar(&swWorkers, "workers", 0, "concurrent runs (0 = GOMAXPROCS)")

	sweepCmd.MarkFlagRequired("config")
}

func runSweepCmd(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(swConfigPath)
	if err != nil {
		return err
	}

	levs, err := parseLeverages(swLeverages)
	if err != nil {
		return err
	}

	bars, err := market.LoadCSV(cfg.Market.Dataset)
	if err != nil {
		return err
	}
	model, err := cfg.MarginModel()
	if err != nil {
		return err
	}
	kind, err := strategies.ParseKind(cfg.Strategy.Kind)
	if err != nil {
		return err
	}

	cases := make([]backtest.SweepCase, len(levs))
	for i, lev := range levs {
		cases[i] = backtest.SweepCase{
			Name: fmt.Sprintf("%gx", lev),
			Cfg: backtest.Config{
				Symbol:        cfg.Market.Symbol,
				InitialEquity: cfg.Account.InitialEquity,
				Leverage:      lev,
				FeeBps:        cfg.Account.FeeBps,
				Model:         model,
			},
			Kind:   kind,
			Params: cfg.Strategy.Params,
		}
	}

	log.Info("starting sweep",
		zap.String("strategy", cfg.Strategy.Kind),
		zap.Int("cases", len(cases)),
		zap.Int("bars", len(bars)))

	out := backtest.Sweep(cmd.Context(), bars, cases, swWorkers, nil)
	printSweep(out)
	return nil
}

func parseLeverages(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("bad leverage %q", part)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no leverage values in %q", s)
	}
	return out, nil
}

func printSweep(out []backtest.SweepResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LEVERAGE\tSTATUS\tTRADES\tLIQS\tRETURN\tMAX DD\tSHARPE")

	for _, sr := range out {
		if sr.Err != nil {
			fmt.Fprintf(w, "%s\terror: %v\t\t\t\t\t\n", sr.Case.Name, sr.Err)
			continue
		}
		s := sr.Result.Summary
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.2f%%\t%.2f%%\t%.2f\n",
			sr.Case.Name, sr.Result.Status, s.Trades, s.Liquidations,
			s.ReturnPct, s.MaxDrawdownPct, s.Sharpe)
	}
	w.Flush()
}
