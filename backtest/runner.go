// Package backtest drives the simulation loop: one strategy, one bar
// series, one engine, one ledger per run.
package backtest

import (
	"context"
	"fmt"
	"time"

	"github.com/rustyeddy/futuresim/internal/id"
	"github.com/rustyeddy/futuresim/journal"
	"github.com/rustyeddy/futuresim/ledger"
	"github.com/rustyeddy/futuresim/margin"
	"github.com/rustyeddy/futuresim/market"
	"github.com/rustyeddy/futuresim/sim"
	"github.com/rustyeddy/futuresim/strategies"
)

// Config is the per-run configuration. Everything here is validated
// before the first bar is touched.
type Config struct {
	Symbol        string
	InitialEquity float64
	Leverage      float64
	FeeBps        float64

	// Model is the exchange margin convention, built via margin.New.
	Model margin.Model
}

// Runner executes backtest runs. Journal is optional; when set, every
// closed trade and equity snapshot is forwarded to it.
type Runner struct {
	Cfg     Config
	Journal journal.Journal
}

// Run walks the bar series in order. For each bar the strategy is asked
// for a signal first, then the engine advances; the engine's liquidation
// check pre-empts the same bar's signal internally.
//
// Configuration problems surface as a returned error before any state
// exists. A strategy emitting a signal outside {-1,0,+1} is a contract
// violation and also returns an error, immediately. Everything else,
// including a blown account, is reported in the Result, so a parameter
// sweep never needs per-run error handling.
func (r *Runner) Run(ctx context.Context, bars market.Series, strat strategies.Strategy) (Result, error) {
	if strat == nil {
		return Result{}, fmt.Errorf("backtest: strategy is required")
	}
	if err := bars.Validate(); err != nil {
		return Result{}, err
	}

	eng, err := sim.NewEngine(r.Cfg.Model, r.Cfg.InitialEquity, r.Cfg.Leverage, r.Cfg.FeeBps)
	if err != nil {
		return Result{}, err
	}

	runID := id.New()
	led := ledger.New(r.Cfg.InitialEquity)
	strat.Reset()

	status := StatusCompleted
	reason := ""

	for i := range bars {
		select {
		case <-ctx.Done():
			status = StatusAborted
			reason = fmt.Sprintf("cancelled: %v", ctx.Err())
		default:
		}
		if status == StatusAborted {
			break
		}

		b := bars[i]

		sig := strat.OnBar(b)
		if !sig.Valid() {
			return Result{}, fmt.Errorf("backtest: strategy %s emitted signal %d on bar %d, outside {-1,0,+1}",
				strat.Name(), sig, i)
		}

		if tr := eng.Step(b, sim.Side(sig)); tr != nil {
			r.recordTrade(runID, led, *tr)
		}

		led.MarkBar(b.Time, eng.Equity(true), eng.Equity(false), b.Close)
		r.recordEquity(runID, led, b.Time)

		if eng.Equity(true) <= 0 {
			// blown account: a terminal state, not an error
			status = StatusAborted
			reason = "account equity exhausted"
			break
		}
	}

	if status == StatusCompleted {
		last := bars[len(bars)-1]
		if tr := eng.CloseFinal(last); tr != nil {
			r.recordTrade(runID, led, *tr)
			led.MarkBar(last.Time, eng.Equity(true), eng.Equity(false), last.Close)
			r.recordEquity(runID, led, last.Time)
		}
	}

	res := Result{
		RunID:              runID,
		Symbol:             r.Cfg.Symbol,
		Strategy:           strat.Name(),
		Status:             status,
		Reason:             reason,
		Start:              bars.Start(),
		End:                bars.End(),
		Trades:             led.Trades(),
		EquityWithCosts:    led.EquityCurve(true),
		EquityWithoutCosts: led.EquityCurve(false),
		BuyHold:            led.BuyHoldCurve(),
	}
	res.Summary = Summarize(r.Cfg.InitialEquity, res.EquityWithCosts, res.Trades, bars.BarsPerYear())

	return res, nil
}

func (r *Runner) recordTrade(runID string, led *ledger.Ledger, tr sim.Trade) {
	led.RecordTrade(tr)
	if r.Journal == nil {
		return
	}
	_ = r.Journal.RecordTrade(journal.TradeRecord{
		TradeID:          tr.ID,
		RunID:            runID,
		Symbol:           r.Cfg.Symbol,
		Side:             int(tr.Side),
		Units:            tr.Units,
		EntryPrice:       tr.EntryPrice,
		ExitPrice:        tr.ExitPrice,
		OpenTime:         tr.EntryTime,
		CloseTime:        tr.ExitTime,
		Profit:           tr.Profit,
		PnL:              tr.PnL,
		LiquidationPrice: tr.LiquidationPrice,
		Reason:           string(tr.Reason),
	})
}

func (r *Runner) recordEquity(runID string, led *ledger.Ledger, ts time.Time) {
	if r.Journal == nil {
		return
	}
	bh := led.BuyHoldCurve()
	_ = r.Journal.RecordEquity(journal.EquitySnapshot{
		RunID:        runID,
		Time:         ts,
		Equity:       led.CurrentEquity(true),
		EquityNoCost: led.CurrentEquity(false),
		BuyHold:      bh[len(bh)-1].Equity,
	})
}
