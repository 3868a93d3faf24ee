package backtest

import (
	"fmt"
	"io"
	"time"
)

// PrintResult writes a human-readable run report to w.
func PrintResult(w io.Writer, r Result) {
	s := r.Summary

	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Backtest Result")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Run ID:         %s\n", r.RunID)
	fmt.Fprintf(w, "Symbol:         %s\n", r.Symbol)
	fmt.Fprintf(w, "Strategy:       %s\n", r.Strategy)
	fmt.Fprintf(w, "Status:         %s\n", r.Status)
	if r.Reason != "" {
		fmt.Fprintf(w, "Reason:         %s\n", r.Reason)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Period")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Start:          %s\n", r.Start.Format(time.RFC3339))
	fmt.Fprintf(w, "End:            %s\n", r.End.Format(time.RFC3339))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Trades:         %d\n", s.Trades)
	fmt.Fprintf(w, "Wins:           %d\n", s.Wins)
	fmt.Fprintf(w, "Losses:         %d\n", s.Losses)
	fmt.Fprintf(w, "Liquidations:   %d\n", s.Liquidations)
	fmt.Fprintf(w, "Win Rate:       %.2f%%\n", s.WinRatePct)
	if s.ProfitFactor > 0 {
		fmt.Fprintf(w, "Profit Factor:  %.2f\n", s.ProfitFactor)
	}
	if s.Trades > 0 {
		fmt.Fprintf(w, "Avg Win:        %.2f\n", s.AvgWin)
		fmt.Fprintf(w, "Avg Loss:       %.2f\n", s.AvgLoss)
		fmt.Fprintf(w, "Avg Hold:       %s\n", s.AvgHold)
		fmt.Fprintf(w, "Max Hold:       %s\n", s.MaxHold)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Account Performance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Start Equity:   %.2f\n", s.InitialEquity)
	fmt.Fprintf(w, "End Equity:     %.2f\n", s.FinalEquity)
	fmt.Fprintf(w, "Return:         %.2f%%\n", s.ReturnPct)
	fmt.Fprintf(w, "Annual Return:  %.2f%%\n", s.AnnualReturnPct)
	fmt.Fprintf(w, "Annual Vol:     %.2f%%\n", s.AnnualVolPct)
	fmt.Fprintf(w, "Sharpe:         %.2f\n", s.Sharpe)
	fmt.Fprintf(w, "Sortino:        %.2f\n", s.Sortino)
	fmt.Fprintf(w, "Calmar:         %.2f\n", s.Calmar)
	fmt.Fprintf(w, "Max Drawdown:   %.2f%%\n", s.MaxDrawdownPct)
	fmt.Fprintf(w, "Underwater:     %s\n", s.MaxDrawdownTime)

	if n := len(r.BuyHold); n > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Buy & Hold:     %.2f\n", r.BuyHold[n-1].Equity)
	}
}
