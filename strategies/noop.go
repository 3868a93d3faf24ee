package strategies

import "github.com/rustyeddy/futuresim/market"

// Noop never signals. Baseline for wiring tests: a run with it produces no
// trades and a flat equity curve.
type Noop struct{}

func (Noop) Name() string            { return "noop" }
func (Noop) Reset()                  {}
func (Noop) OnBar(market.Bar) Signal { return Hold }
