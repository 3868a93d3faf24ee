package backtest

import (
	"time"

	"github.com/rustyeddy/futuresim/journal"
	"github.com/rustyeddy/futuresim/ledger"
	"github.com/rustyeddy/futuresim/sim"
)

// Status is the terminal state of a run.
type Status string

const (
	// StatusCompleted means every bar was processed.
	StatusCompleted Status = "completed"
	// StatusAborted means the run stopped early: blown account or
	// external cancellation. Reason says which.
	StatusAborted Status = "aborted"
)

// Result is the value object a run produces. It is self-contained:
// reporting and export layers consume it without touching the engine.
type Result struct {
	RunID    string
	Symbol   string
	Strategy string

	Status Status
	Reason string

	Start time.Time
	End   time.Time

	Trades []sim.Trade

	EquityWithCosts    []ledger.Point
	EquityWithoutCosts []ledger.Point
	BuyHold            []ledger.Point

	Summary Summary
}

// Aborted reports whether the run ended before the series did.
func (r Result) Aborted() bool { return r.Status == StatusAborted }

// RunRecord converts the result into its persisted summary form.
func (r Result) RunRecord(cfg Config, dataset string) journal.RunRecord {
	return journal.RunRecord{
		RunID:        r.RunID,
		Created:      time.Now().UTC(),
		Symbol:       r.Symbol,
		Strategy:     r.Strategy,
		Dataset:      dataset,
		Leverage:     cfg.Leverage,
		FeeBps:       cfg.FeeBps,
		Start:        r.Start,
		End:          r.End,
		Status:       string(r.Status),
		StartEquity:  r.Summary.InitialEquity,
		EndEquity:    r.Summary.FinalEquity,
		Trades:       r.Summary.Trades,
		Wins:         r.Summary.Wins,
		Losses:       r.Summary.Losses,
		Liquidations: r.Summary.Liquidations,
		ReturnPct:    r.Summary.ReturnPct,
		MaxDDPct:     r.Summary.MaxDrawdownPct,
		Sharpe:       r.Summary.Sharpe,
	}
}
