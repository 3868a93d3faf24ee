package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/futuresim/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query persisted backtest runs",
	Long: `Query and display backtest records from a SQLite journal.

Subcommands:
  runs   - List recent runs
  run    - Show one run's summary and trades

Examples:
  futuresim journal runs
  futuresim journal run <run-id>`,
}

var journalRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent runs",
	Args:  cobra.NoArgs,
	RunE:  runJournalRuns,
}

var journalRunCmd = &cobra.Command{
	Use:   "run <run-id>",
	Short: "Show one run's summary and trades",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalRun,
}

var (
	journalDBPath string
	journalLimit  int
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalRunsCmd)
	journalCmd.AddCommand(journalRunCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./futuresim.sqlite", "path to SQLite journal DB")
	journalRunsCmd.Flags().IntVarP(&journalLimit, "limit", "n", 20, "max runs to list")
}

func runJournalRuns(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	runs, err := j.ListRuns(journalLimit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tCREATED\tSYMBOL\tSTRATEGY\tSTATUS\tTRADES\tRETURN")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%.2f%%\n",
			r.RunID, r.Created.Format(time.RFC3339), r.Symbol, r.Strategy,
			r.Status, r.Trades, r.ReturnPct)
	}
	return w.Flush()
}

func runJournalRun(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	runID := args[0]
	r, err := j.GetRun(runID)
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}

	fmt.Printf("Run:       %s (%s)\n", r.RunID, r.Status)
	fmt.Printf("Symbol:    %s  Strategy: %s  Dataset: %s\n", r.Symbol, r.Strategy, r.Dataset)
	fmt.Printf("Leverage:  %gx  Fee: %.1f bps\n", r.Leverage, r.FeeBps)
	fmt.Printf("Period:    %s .. %s\n", r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339))
	fmt.Printf("Equity:    %.2f -> %.2f (%.2f%%)\n", r.StartEquity, r.EndEquity, r.ReturnPct)
	fmt.Printf("Trades:    %d (%d wins, %d losses, %d liquidations)\n",
		r.Trades, r.Wins, r.Losses, r.Liquidations)
	fmt.Printf("Max DD:    %.2f%%  Sharpe: %.2f\n", r.MaxDDPct, r.Sharpe)

	trades, err := j.ListTradesByRun(runID)
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}
	if len(trades) == 0 {
		return nil
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TRADE ID\tSIDE\tENTRY\tEXIT\tPROFIT\tPNL\tREASON")
	for _, t := range trades {
		side := "long"
		if t.Side < 0 {
			side = "short"
		}
		fmt.Fprintf(w, "%s\t%s\t%.4f\t%.4f\t%.2f\t%.4f\t%s\n",
			t.TradeID, side, t.EntryPrice, t.ExitPrice, t.Profit, t.PnL, t.Reason)
	}
	return w.Flush()
}
