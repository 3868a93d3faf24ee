// Package journal persists backtest runs: closed trades, per-bar equity
// snapshots, and run summaries. The simulator itself never depends on a
// journal; the driver forwards records to one when configured.
package journal

import "time"

// TradeRecord is the persisted form of a closed trade.
type TradeRecord struct {
	TradeID string
	RunID   string
	Symbol  string

	Side  int // +1 long, -1 short
	Units float64

	EntryPrice float64
	ExitPrice  float64
	OpenTime   time.Time
	CloseTime  time.Time

	Profit float64
	PnL    float64

	// LiquidationPrice is nil for signal-driven and final closes.
	LiquidationPrice *float64
	Reason           string
}

// EquitySnapshot is one per-bar equity sample of a run.
type EquitySnapshot struct {
	RunID string
	Time  time.Time

	Equity       float64 // with trading costs
	EquityNoCost float64
	BuyHold      float64
}

// RunRecord summarizes one completed (or aborted) backtest run.
type RunRecord struct {
	RunID   string
	Created time.Time

	Symbol   string
	Strategy string
	Dataset  string

	Leverage float64
	FeeBps   float64

	Start time.Time
	End   time.Time

	Status string

	StartEquity float64
	EndEquity   float64

	Trades       int
	Wins         int
	Losses       int
	Liquidations int

	ReturnPct float64
	MaxDDPct  float64
	Sharpe    float64
}

// Journal receives trade and equity records during a run.
type Journal interface {
	RecordTrade(TradeRecord) error
	RecordEquity(EquitySnapshot) error
	Close() error
}

// RunStore is the optional extension for sinks that also persist run
// summaries and support querying them back.
type RunStore interface {
	RecordRun(RunRecord) error
	GetRun(runID string) (RunRecord, error)
	ListRuns(limit int) ([]RunRecord, error)
	ListTradesByRun(runID string) ([]TradeRecord, error)
	ListEquityByRun(runID string) ([]EquitySnapshot, error)
}
