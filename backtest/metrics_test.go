package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/futuresim/ledger"
	"github.com/rustyeddy/futuresim/sim"
)

func curve(equities ...float64) []ledger.Point {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	out := make([]ledger.Point, len(equities))
	for i, e := range equities {
		out[i] = ledger.Point{Time: start.Add(time.Duration(i) * time.Hour), Equity: e}
	}
	return out
}

func TestSummarizeEmpty(t *testing.T) {
	t.Parallel()

	s := Summarize(1000, nil, nil, 8760)
	assert.Equal(t, 1000.0, s.InitialEquity)
	assert.Equal(t, 1000.0, s.FinalEquity)
	assert.Zero(t, s.ReturnPct)
	assert.Zero(t, s.Trades)
	assert.Zero(t, s.Sharpe)
}

func TestSummarizeReturnAndDrawdown(t *testing.T) {
	t.Parallel()

	// peak 1200, trough 900: 25% drawdown, 2h underwater
	c := curve(1000, 1200, 900, 1000, 1500)
	s := Summarize(1000, c, nil, 8760)

	assert.InDelta(t, 50.0, s.ReturnPct, 1e-9)
	assert.InDelta(t, 25.0, s.MaxDrawdownPct, 1e-9)
	assert.Equal(t, 2*time.Hour, s.MaxDrawdownTime)
	assert.Greater(t, s.Sharpe, 0.0)
	assert.Greater(t, s.Calmar, 0.0)
}

func TestSummarizeTradeStats(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	liq := 90.9
	trades := []sim.Trade{
		{Profit: 100, EntryTime: start, ExitTime: start.Add(2 * time.Hour)},
		{Profit: 300, EntryTime: start, ExitTime: start.Add(4 * time.Hour)},
		{Profit: -100, EntryTime: start, ExitTime: start.Add(6 * time.Hour),
			Reason: sim.ReasonLiquidated, LiquidationPrice: &liq},
	}

	s := Summarize(1000, nil, trades, 0)
	assert.Equal(t, 3, s.Trades)
	assert.Equal(t, 2, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.Equal(t, 1, s.Liquidations)
	assert.InDelta(t, 66.666, s.WinRatePct, 0.01)
	assert.InDelta(t, 4.0, s.ProfitFactor, 1e-9)
	assert.InDelta(t, 200.0, s.AvgWin, 1e-9)
	assert.InDelta(t, 100.0, s.AvgLoss, 1e-9)
	assert.Equal(t, 4*time.Hour, s.AvgHold)
	assert.Equal(t, 6*time.Hour, s.MaxHold)
}

func TestSummarizeStopsAtBlownEquity(t *testing.T) {
	t.Parallel()

	// returns past a non-positive sample are dropped
	c := curve(1000, 500, -100, 2000)
	s := Summarize(1000, c, nil, 8760)

	assert.InDelta(t, 100.0, s.ReturnPct, 1e-9)
	assert.NotZero(t, s.MaxDrawdownPct)
}
