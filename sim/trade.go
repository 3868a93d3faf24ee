package sim

import "time"

// CloseReason records why a position was converted into a Trade.
type CloseReason string

const (
	// ReasonSignal is a normal strategy-driven close (reversal).
	ReasonSignal CloseReason = "Signal"
	// ReasonLiquidated is a forced close at the liquidation price.
	ReasonLiquidated CloseReason = "Liquidated"
	// ReasonFinal is the forced close at the end of the series.
	ReasonFinal CloseReason = "Final"
)

// Trade is an immutable record of a closed position.
type Trade struct {
	ID string

	Side  Side
	Units float64

	EntryTime  time.Time
	ExitTime   time.Time
	EntryPrice float64
	ExitPrice  float64

	// Amount is the equity committed at entry.
	Amount float64

	// Profit is the gross P&L in quote currency, before trading costs.
	Profit float64

	// PnL is the levered percentage return against the equity committed
	// at entry, as a fraction (0.05 = +5%).
	PnL float64

	// LiquidationPrice is nil unless the trade was force-liquidated, in
	// which case it carries the entry-time liquidation price.
	LiquidationPrice *float64

	Reason CloseReason
}

// Duration is the holding period of the trade.
func (t Trade) Duration() time.Duration {
	return t.ExitTime.Sub(t.EntryTime)
}

func (t Trade) Liquidated() bool { return t.Reason == ReasonLiquidated }
