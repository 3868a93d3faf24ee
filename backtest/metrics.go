package backtest

import (
	"math"
	"time"

	"github.com/rustyeddy/futuresim/ledger"
	"github.com/rustyeddy/futuresim/sim"
)

// Summary holds the derived statistics of a run. Everything here is a
// read-only view over the equity curve and trade list; nothing feeds back
// into the simulation.
type Summary struct {
	InitialEquity float64
	FinalEquity   float64
	ReturnPct     float64

	AnnualReturnPct float64
	AnnualVolPct    float64

	Sharpe  float64
	Sortino float64
	Calmar  float64

	MaxDrawdownPct  float64
	MaxDrawdownTime time.Duration

	Trades       int
	Wins         int
	Losses       int
	Liquidations int
	WinRatePct   float64
	ProfitFactor float64
	AvgWin       float64
	AvgLoss      float64

	AvgHold time.Duration
	MaxHold time.Duration
}

// Summarize computes run statistics from the with-costs equity curve and
// the closed trades. barsPerYear annualizes return and volatility; zero
// disables annualization (the annualized fields stay zero).
func Summarize(initial float64, curve []ledger.Point, trades []sim.Trade, barsPerYear float64) Summary {
	s := Summary{InitialEquity: initial, FinalEquity: initial}

	if len(curve) > 0 {
		s.FinalEquity = curve[len(curve)-1].Equity
	}
	if initial != 0 {
		s.ReturnPct = (s.FinalEquity/initial - 1) * 100
	}

	s.tradeStats(trades)
	s.drawdown(curve)
	s.riskAdjusted(curve, barsPerYear)

	return s
}

func (s *Summary) tradeStats(trades []sim.Trade) {
	var grossWin, grossLoss float64
	var totalHold time.Duration

	for _, t := range trades {
		s.Trades++
		if t.Liquidated() {
			s.Liquidations++
		}

		hold := t.Duration()
		totalHold += hold
		if hold > s.MaxHold {
			s.MaxHold = hold
		}

		switch {
		case t.Profit > 0:
			s.Wins++
			grossWin += t.Profit
		case t.Profit < 0:
			s.Losses++
			grossLoss -= t.Profit
		}
	}

	if s.Trades == 0 {
		return
	}

	s.WinRatePct = float64(s.Wins) / float64(s.Trades) * 100
	s.AvgHold = totalHold / time.Duration(s.Trades)
	if s.Wins > 0 {
		s.AvgWin = grossWin / float64(s.Wins)
	}
	if s.Losses > 0 {
		s.AvgLoss = grossLoss / float64(s.Losses)
	}
	if grossLoss > 0 {
		s.ProfitFactor = grossWin / grossLoss
	}
}

func (s *Summary) drawdown(curve []ledger.Point) {
	if len(curve) == 0 {
		return
	}

	peak := curve[0].Equity
	peakTime := curve[0].Time
	var maxDD float64
	var maxUnder time.Duration

	for _, p := range curve {
		if p.Equity >= peak {
			peak = p.Equity
			peakTime = p.Time
			continue
		}

		if under := p.Time.Sub(peakTime); under > maxUnder {
			maxUnder = under
		}
		if peak > 0 {
			if dd := (peak - p.Equity) / peak; dd > maxDD {
				maxDD = dd
			}
		}
	}

	s.MaxDrawdownPct = maxDD * 100
	s.MaxDrawdownTime = maxUnder
}

func (s *Summary) riskAdjusted(curve []ledger.Point, barsPerYear float64) {
	rets := barReturns(curve)
	if len(rets) == 0 || barsPerYear <= 0 {
		return
	}

	mean := 0.0
	for _, r := range rets {
		mean += r
	}
	mean /= float64(len(rets))

	var variance, downVar float64
	downN := 0
	for _, r := range rets {
		d := r - mean
		variance += d * d
		if r < 0 {
			downVar += r * r
			downN++
		}
	}
	variance /= float64(len(rets))
	std := math.Sqrt(variance)

	s.AnnualVolPct = std * math.Sqrt(barsPerYear) * 100

	if s.InitialEquity > 0 && s.FinalEquity > 0 {
		years := float64(len(rets)) / barsPerYear
		if years > 0 {
			s.AnnualReturnPct = (math.Pow(s.FinalEquity/s.InitialEquity, 1/years) - 1) * 100
		}
	} else if s.FinalEquity <= 0 {
		s.AnnualReturnPct = -100
	}

	if std > 0 {
		s.Sharpe = mean / std * math.Sqrt(barsPerYear)
	}
	if downN > 0 {
		if downStd := math.Sqrt(downVar / float64(len(rets))); downStd > 0 {
			s.Sortino = mean / downStd * math.Sqrt(barsPerYear)
		}
	}
	if s.MaxDrawdownPct > 0 {
		s.Calmar = s.AnnualReturnPct / s.MaxDrawdownPct
	}
}

// barReturns converts the equity curve into simple per-bar returns.
// Samples at or below zero equity terminate the series: returns against a
// non-positive base are meaningless.
func barReturns(curve []ledger.Point) []float64 {
	if len(curve) < 2 {
		return nil
	}
	rets := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		base := curve[i-1].Equity
		if base <= 0 {
			break
		}
		rets = append(rets, curve[i].Equity/base-1)
	}
	return rets
}
