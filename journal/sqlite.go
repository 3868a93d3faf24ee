package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite persists records to a single-file database. It implements both
// Journal and RunStore.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create journal schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	liq := sql.NullFloat64{}
	if t.LiquidationPrice != nil {
		liq = sql.NullFloat64{Float64: *t.LiquidationPrice, Valid: true}
	}

	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, run_id, symbol, side, units, entry_price, exit_price,
		 open_time, close_time, profit, pnl, liquidation_price, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.RunID, t.Symbol, t.Side, t.Units, t.EntryPrice, t.ExitPrice,
		t.OpenTime, t.CloseTime, t.Profit, t.PnL, liq, t.Reason,
	)
	return err
}

func (j *SQLite) RecordEquity(e EquitySnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO equity (run_id, time, equity, equity_no_cost, buy_hold)
		VALUES (?, ?, ?, ?, ?)`,
		e.RunID, e.Time, e.Equity, e.EquityNoCost, e.BuyHold,
	)
	return err
}

func (j *SQLite) RecordRun(r RunRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, created, symbol, strategy, dataset, leverage, fee_bps,
		 start, end, status, start_equity, end_equity,
		 trades, wins, losses, liquidations, return_pct, max_dd_pct, sharpe)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Symbol, r.Strategy, r.Dataset, r.Leverage, r.FeeBps,
		r.Start, r.End, r.Status, r.StartEquity, r.EndEquity,
		r.Trades, r.Wins, r.Losses, r.Liquidations, r.ReturnPct, r.MaxDDPct, r.Sharpe,
	)
	return err
}

func (j *SQLite) GetRun(runID string) (RunRecord, error) {
	row := j.db.QueryRow(`
		SELECT run_id, created, symbol, strategy, dataset, leverage, fee_bps,
		       start, end, status, start_equity, end_equity,
		       trades, wins, losses, liquidations, return_pct, max_dd_pct, sharpe
		FROM runs WHERE run_id = ?`, runID)

	var r RunRecord
	err := row.Scan(
		&r.RunID, &r.Created, &r.Symbol, &r.Strategy, &r.Dataset, &r.Leverage, &r.FeeBps,
		&r.Start, &r.End, &r.Status, &r.StartEquity, &r.EndEquity,
		&r.Trades, &r.Wins, &r.Losses, &r.Liquidations, &r.ReturnPct, &r.MaxDDPct, &r.Sharpe,
	)
	if err != nil {
		return RunRecord{}, fmt.Errorf("get run %q: %w", runID, err)
	}
	return r, nil
}

// ListRuns returns the most recent runs, newest first. limit <= 0 means
// no limit.
func (j *SQLite) ListRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := j.db.Query(`
		SELECT run_id, created, symbol, strategy, dataset, leverage, fee_bps,
		       start, end, status, start_equity, end_equity,
		       trades, wins, losses, liquidations, return_pct, max_dd_pct, sharpe
		FROM runs ORDER BY created DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(
			&r.RunID, &r.Created, &r.Symbol, &r.Strategy, &r.Dataset, &r.Leverage, &r.FeeBps,
			&r.Start, &r.End, &r.Status, &r.StartEquity, &r.EndEquity,
			&r.Trades, &r.Wins, &r.Losses, &r.Liquidations, &r.ReturnPct, &r.MaxDDPct, &r.Sharpe,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (j *SQLite) ListTradesByRun(runID string) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, run_id, symbol, side, units, entry_price, exit_price,
		       open_time, close_time, profit, pnl, liquidation_price, reason
		FROM trades WHERE run_id = ? ORDER BY close_time, trade_id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var t TradeRecord
		var liq sql.NullFloat64
		if err := rows.Scan(
			&t.TradeID, &t.RunID, &t.Symbol, &t.Side, &t.Units, &t.EntryPrice, &t.ExitPrice,
			&t.OpenTime, &t.CloseTime, &t.Profit, &t.PnL, &liq, &t.Reason,
		); err != nil {
			return nil, err
		}
		if liq.Valid {
			v := liq.Float64
			t.LiquidationPrice = &v
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (j *SQLite) ListEquityByRun(runID string) ([]EquitySnapshot, error) {
	rows, err := j.db.Query(`
		SELECT run_id, time, equity, equity_no_cost, buy_hold
		FROM equity WHERE run_id = ? ORDER BY time`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EquitySnapshot
	for rows.Next() {
		var e EquitySnapshot
		if err := rows.Scan(&e.RunID, &e.Time, &e.Equity, &e.EquityNoCost, &e.BuyHold); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
