// Package ledger accumulates the closed trades and equity history of one
// backtest run. A Ledger is created per run and discarded with it; nothing
// here persists across runs.
package ledger

import (
	"time"

	"github.com/rustyeddy/futuresim/sim"
)

// Point is one equity-curve sample.
type Point struct {
	Time   time.Time
	Equity float64
}

// Ledger is append-only for the duration of a run. It keeps two parallel
// equity series, with and without trading costs, plus a buy-and-hold
// reference scaled from the first close it observes.
type Ledger struct {
	initial float64

	trades []sim.Trade

	withCosts    []Point
	withoutCosts []Point
	buyHold      []Point

	firstClose float64
}

func New(initialEquity float64) *Ledger {
	return &Ledger{initial: initialEquity}
}

// RecordTrade appends a closed trade. O(1), never fails.
func (l *Ledger) RecordTrade(t sim.Trade) {
	l.trades = append(l.trades, t)
}

// MarkBar records one equity sample per bar, alongside the buy-and-hold
// reference derived from the raw close.
func (l *Ledger) MarkBar(ts time.Time, equityWithCosts, equityWithoutCosts, close float64) {
	l.withCosts = append(l.withCosts, Point{Time: ts, Equity: equityWithCosts})
	l.withoutCosts = append(l.withoutCosts, Point{Time: ts, Equity: equityWithoutCosts})

	if l.firstClose == 0 {
		l.firstClose = close
	}
	ref := l.initial
	if l.firstClose != 0 {
		ref = l.initial * close / l.firstClose
	}
	l.buyHold = append(l.buyHold, Point{Time: ts, Equity: ref})
}

// CurrentEquity returns the latest equity sample, or the initial equity
// before any bar has been marked.
func (l *Ledger) CurrentEquity(withCosts bool) float64 {
	curve := l.withoutCosts
	if withCosts {
		curve = l.withCosts
	}
	if len(curve) == 0 {
		return l.initial
	}
	return curve[len(curve)-1].Equity
}

// EquityCurve returns the recorded per-bar equity series. The returned
// slice is owned by the ledger; callers must not mutate it.
func (l *Ledger) EquityCurve(withCosts bool) []Point {
	if withCosts {
		return l.withCosts
	}
	return l.withoutCosts
}

// BuyHoldCurve is the reference curve of simply holding the instrument
// from the first bar.
func (l *Ledger) BuyHoldCurve() []Point { return l.buyHold }

func (l *Ledger) Trades() []sim.Trade { return l.trades }

func (l *Ledger) InitialEquity() float64 { return l.initial }
