// Package sim implements the per-bar position state machine for a single
// leveraged instrument: entries and reversals on strategy signals, margin
// monitoring, and forced liquidation.
package sim

import (
	"fmt"
	"math"

	"github.com/rustyeddy/futuresim/internal/id"
	"github.com/rustyeddy/futuresim/margin"
	"github.com/rustyeddy/futuresim/market"
	"github.com/rustyeddy/futuresim/risk"
)

// Engine owns one Position and the equity it trades with. It is
// single-threaded: bars must be fed in chronological order, one Step per
// bar. Every run gets its own Engine; there is no shared state between
// runs.
type Engine struct {
	model    margin.Model
	leverage float64
	feeBps   float64

	pos Position

	equity       float64 // after trading costs
	equityNoCost float64 // same trades, costs ignored
}

// NewEngine validates its configuration up front. Anything rejected here
// is a configuration error in the taxonomy of the simulator: it can never
// surface mid-run.
func NewEngine(model margin.Model, initialEquity, leverage, feeBps float64) (*Engine, error) {
	if model == nil {
		return nil, fmt.Errorf("sim: margin model is required")
	}
	if initialEquity <= 0 {
		return nil, fmt.Errorf("sim: initial equity must be positive, got %v", initialEquity)
	}
	if leverage <= 0 {
		return nil, fmt.Errorf("sim: leverage must be positive, got %v", leverage)
	}
	if feeBps < 0 {
		return nil, fmt.Errorf("sim: trading cost must be non-negative, got %v bps", feeBps)
	}
	return &Engine{
		model:        model,
		leverage:     leverage,
		feeBps:       feeBps,
		equity:       initialEquity,
		equityNoCost: initialEquity,
	}, nil
}

// Equity returns the current account equity, with or without trading costs.
// It may be negative after a run of losing leveraged trades; the engine
// never clamps it.
func (e *Engine) Equity(withCosts bool) float64 {
	if withCosts {
		return e.equity
	}
	return e.equityNoCost
}

func (e *Engine) Position() Position { return e.pos }

// Step advances the state machine by one bar. The liquidation check runs
// first and pre-empts the bar's signal: a force-closed position performs no
// further transition until the next bar. Otherwise the signal drives the
// transition table:
//
//	flat  + long/short signal -> open
//	open  + opposite signal   -> close, then open the reverse
//	open  + 0 or same signal  -> hold
//
// At most one Trade is produced per bar.
func (e *Engine) Step(b market.Bar, signal Side) *Trade {
	if e.pos.Open() {
		if tr := e.checkLiquidation(b); tr != nil {
			return tr
		}
	}

	switch {
	case !e.pos.Open():
		if signal != Flat {
			e.open(b, signal)
		}
		return nil

	case signal != Flat && signal != e.pos.Side:
		tr := e.close(b.Close, b, ReasonSignal, nil)
		e.open(b, signal)
		return tr

	default:
		return nil
	}
}

// CloseFinal force-closes any open position at the bar's close. Used at
// series end; the trade is marked Final, not Liquidated.
func (e *Engine) CloseFinal(b market.Bar) *Trade {
	if !e.pos.Open() {
		return nil
	}
	return e.close(b.Close, b, ReasonFinal, nil)
}

func (e *Engine) open(b market.Bar, side Side) {
	entry := b.Close
	stake := risk.AllocatableEquity(e.equity, 0)
	units := risk.UnitsFor(stake, e.leverage, entry)
	if units <= 0 {
		// nothing allocatable; stay flat
		return
	}

	e.equity -= risk.FeeFor(units*entry, e.feeBps)

	rate, amount := e.model.MaintenanceMargin(units * entry)
	e.pos = Position{
		Side:       side,
		Units:      units,
		EntryPrice: entry,
		Leverage:   e.leverage,
		Amount:     stake,
		OpenedAt:   b.Time,
		LiqPrice:   margin.LiquidationPrice(units, entry, int(side), e.leverage, rate, amount),
	}
}

func (e *Engine) checkLiquidation(b market.Bar) *Trade {
	mark := b.Close
	rate, amount := e.model.MaintenanceMargin(e.pos.Notional(mark))
	ratio := margin.Ratio(e.leverage, e.pos.Units, int(e.pos.Side), e.pos.EntryPrice, mark, rate, amount)

	// ratio >= 1: the maintenance requirement has caught the margin
	// balance. A negative ratio with a positive requirement means the
	// balance itself has gone negative, which is past liquidation.
	maintenance := e.pos.Units*mark*rate - amount
	if ratio < 1 && !(ratio < 0 && maintenance > 0) {
		return nil
	}

	liq := e.pos.LiqPrice
	exit := liq
	if exit <= 0 {
		// 0 sentinel: no finite liquidation price, settle at the mark
		exit = mark
	}
	return e.close(exit, b, ReasonLiquidated, &liq)
}

func (e *Engine) close(exit float64, b market.Bar, reason CloseReason, liq *float64) *Trade {
	pos := e.pos

	// Continuously-compounded return convention so long and short are
	// symmetric under log-return reversal.
	profit := (math.Exp(math.Log(exit/pos.EntryPrice)*float64(pos.Side)) - 1) * pos.Units * pos.EntryPrice

	e.equity += profit - risk.FeeFor(pos.Units*exit, e.feeBps)
	e.equityNoCost += profit

	pnl := 0.0
	if notional := pos.Units * pos.EntryPrice; notional != 0 {
		pnl = profit / notional * pos.Leverage
	}

	e.pos = Position{}

	return &Trade{
		ID:               id.New(),
		Side:             pos.Side,
		Units:            pos.Units,
		EntryTime:        pos.OpenedAt,
		ExitTime:         b.Time,
		EntryPrice:       pos.EntryPrice,
		ExitPrice:        exit,
		Amount:           pos.Amount,
		Profit:           profit,
		PnL:              pnl,
		LiquidationPrice: liq,
		Reason:           reason,
	}
}
