// Package market holds the bar-series data model consumed by the simulator.
package market

import "time"

// Bar is one OHLCV sample for a fixed interval. Bars are immutable once
// loaded; the engine never writes back into a series.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64

	// Exchange-provided aggregates, zero when the feed does not carry them.
	QuoteVolume float64
	TradeCount  int64
}

// Notional returns units * close, the market-value exposure of a position
// of the given size marked at this bar.
func (b Bar) Notional(units float64) float64 {
	return units * b.Close
}
