// Package indicators provides streaming technical indicators over closed
// bars. Indicators are deterministic and consume one bar at a time, so a
// strategy built on them can never read ahead of the bar it is handed.
package indicators

import "github.com/rustyeddy/futuresim/market"

// Indicator computes a single streaming value from closed bars.
type Indicator interface {
	// Name returns a stable identifier like "SMA(20)".
	Name() string

	// Warmup returns how many updates are needed before Ready() can be
	// true.
	Warmup() int

	// Reset clears all internal state.
	Reset()

	// Update consumes the next closed bar.
	Update(b market.Bar)

	// Ready reports whether Value() is meaningful.
	Ready() bool

	// Value returns the current indicator value. Callers must check
	// Ready() first; an unready indicator returns 0.
	Value() float64
}
