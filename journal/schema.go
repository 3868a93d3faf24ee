package journal

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	symbol TEXT NOT NULL,
	strategy TEXT NOT NULL,
	dataset TEXT NOT NULL,
	leverage REAL NOT NULL,
	fee_bps REAL NOT NULL,
	start DATETIME NOT NULL,
	end DATETIME NOT NULL,
	status TEXT NOT NULL,
	start_equity REAL NOT NULL,
	end_equity REAL NOT NULL,
	trades INTEGER NOT NULL,
	wins INTEGER NOT NULL,
	losses INTEGER NOT NULL,
	liquidations INTEGER NOT NULL,
	return_pct REAL NOT NULL,
	max_dd_pct REAL NOT NULL,
	sharpe REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	symbol TEXT NOT NULL,
	side INTEGER NOT NULL,
	units REAL NOT NULL,
	entry_price REAL NOT NULL,
	exit_price REAL NOT NULL,
	open_time DATETIME NOT NULL,
	close_time DATETIME NOT NULL,
	profit REAL NOT NULL,
	pnl REAL NOT NULL,
	liquidation_price REAL,
	reason TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS equity (
	run_id TEXT NOT NULL,
	time DATETIME NOT NULL,
	equity REAL NOT NULL,
	equity_no_cost REAL NOT NULL,
	buy_hold REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_run ON trades(run_id);
CREATE INDEX IF NOT EXISTS idx_equity_run_time ON equity(run_id, time);
`
