package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/futuresim/backtest"
	"github.com/rustyeddy/futuresim/config"
	"github.com/rustyeddy/futuresim/journal"
	"github.com/rustyeddy/futuresim/market"
	"github.com/rustyeddy/futuresim/strategies"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run a backtest from a configuration file",
	Long: `Backtest replays a historical OHLCV dataset through the configured
strategy, enforcing leverage, trading costs and forced liquidation.

Example:
  futuresim backtest -c simulation.yaml
  futuresim backtest -c simulation.yaml --dataset data/ethusdt-1h.csv.xz`,
	RunE: runBacktestCmd,
}

var (
	btConfigPath string
	btDataset    string
	btLeverage   float64
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVarP(&btConfigPath, "config", "c", "", "path to config file (required)")
	backtestCmd.Flags().StringVar(&btDataset, "dataset", "", "override the configured dataset path")
	backtestCmd.Flags().Float64Var(&btLeverage, "leverage", 0, "override the configured leverage")

	backtestCmd.MarkFlagRequired("config")
}

func runBacktestCmd(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(btConfigPath)
	if err != nil {
		return err
	}
	if btDataset != "" {
		cfg.Market.Dataset = btDataset
	}
	if btLeverage > 0 {
		cfg.Account.Leverage = btLeverage
	}

	res, err := executeRun(cmd, cfg)
	if err != nil {
		return err
	}

	backtest.PrintResult(os.Stdout, res)
	return nil
}

func executeRun(cmd *cobra.Command, cfg *config.Config) (backtest.Result, error) {
	bars, strat, rcfg, err := buildRun(cfg)
	if err != nil {
		return backtest.Result{}, err
	}

	jrn, err := openJournal(cfg.Journal)
	if err != nil {
		return backtest.Result{}, err
	}
	if jrn != nil {
		defer jrn.Close()
	}

	log.Info("starting backtest",
		zap.String("symbol", cfg.Market.Symbol),
		zap.String("strategy", strat.Name()),
		zap.Float64("leverage", cfg.Account.Leverage),
		zap.Int("bars", len(bars)))

	r := backtest.Runner{Cfg: rcfg, Journal: jrn}
	res, err := r.Run(cmd.Context(), bars, strat)
	if err != nil {
		return backtest.Result{}, err
	}

	if store, ok := jrn.(journal.RunStore); ok {
		if err := store.RecordRun(res.RunRecord(rcfg, cfg.Market.Dataset)); err != nil {
			log.Warn("record run", zap.Error(err))
		}
	}

	log.Info("backtest finished",
		zap.String("run_id", res.RunID),
		zap.String("status", string(res.Status)),
		zap.Int("trades", res.Summary.Trades),
		zap.Float64("return_pct", res.Summary.ReturnPct))

	return res, nil
}

func buildRun(cfg *config.Config) (bars market.Series, strat strategies.Strategy, rcfg backtest.Config, err error) {
	bars, err = market.LoadCSV(cfg.Market.Dataset)
	if err != nil {
		return nil, nil, backtest.Config{}, err
	}

	strat, err = cfg.BuildStrategy()
	if err != nil {
		return nil, nil, backtest.Config{}, err
	}

	model, err := cfg.MarginModel()
	if err != nil {
		return nil, nil, backtest.Config{}, err
	}

	rcfg = backtest.Config{
		Symbol:        cfg.Market.Symbol,
		InitialEquity: cfg.Account.InitialEquity,
		Leverage:      cfg.Account.Leverage,
		FeeBps:        cfg.Account.FeeBps,
		Model:         model,
	}
	return bars, strat, rcfg, nil
}

func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "", "none":
		return nil, nil
	case "csv":
		return journal.NewCSV(jc.TradesFile, jc.EquityFile)
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	default:
		return nil, fmt.Errorf("unknown journal type %q", jc.Type)
	}
}
