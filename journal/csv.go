package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSV writes trades and equity snapshots to two flat files. Good enough
// for spreadsheet analysis; run summaries need the SQLite sink.
type CSV struct {
	trades *csv.Writer
	equity *csv.Writer
	tf, ef *os.File
}

func NewCSV(tradesPath, equityPath string) (*CSV, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	ef, err := os.Create(equityPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	ew := csv.NewWriter(ef)

	if err := tw.Write([]string{
		"trade_id", "run_id", "symbol", "side", "units", "entry_price", "exit_price",
		"open_time", "close_time", "profit", "pnl", "liquidation_price", "reason",
	}); err != nil {
		return nil, err
	}
	if err := ew.Write([]string{"run_id", "time", "equity", "equity_no_cost", "buy_hold"}); err != nil {
		return nil, err
	}

	tw.Flush()
	ew.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	if err := ew.Error(); err != nil {
		return nil, err
	}

	return &CSV{trades: tw, equity: ew, tf: tf, ef: ef}, nil
}

func (j *CSV) RecordTrade(t TradeRecord) error {
	liq := ""
	if t.LiquidationPrice != nil {
		liq = f(*t.LiquidationPrice)
	}

	err := j.trades.Write([]string{
		t.TradeID,
		t.RunID,
		t.Symbol,
		strconv.Itoa(t.Side),
		f(t.Units),
		f(t.EntryPrice),
		f(t.ExitPrice),
		t.OpenTime.Format(time.RFC3339),
		t.CloseTime.Format(time.RFC3339),
		f(t.Profit),
		f(t.PnL),
		liq,
		t.Reason,
	})
	if err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSV) RecordEquity(e EquitySnapshot) error {
	err := j.equity.Write([]string{
		e.RunID,
		e.Time.Format(time.RFC3339),
		f(e.Equity),
		f(e.EquityNoCost),
		f(e.BuyHold),
	})
	if err != nil {
		return err
	}
	j.equity.Flush()
	return j.equity.Error()
}

func (j *CSV) Close() error {
	j.trades.Flush()
	j.equity.Flush()
	if err := j.tf.Close(); err != nil {
		j.ef.Close()
		return err
	}
	return j.ef.Close()
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
