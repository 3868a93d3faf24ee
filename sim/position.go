package sim

import "time"

// Position is the single open position owned by the engine. The invariant
// Units == 0 <=> Side == Flat holds at all times; EntryPrice is meaningless
// while flat.
type Position struct {
	Side       Side
	Units      float64
	EntryPrice float64
	Leverage   float64

	// Amount is the equity committed at entry (the unlevered stake).
	Amount float64

	OpenedAt time.Time

	// LiqPrice is the liquidation price computed from the entry-time
	// bracket. 0 is the "no finite liquidation price" sentinel.
	LiqPrice float64
}

func (p Position) Open() bool { return p.Side != Flat }

// Notional is the position's market-value exposure at the given mark.
func (p Position) Notional(mark float64) float64 {
	return p.Units * mark
}
