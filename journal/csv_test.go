package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVJournal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	equityPath := filepath.Join(dir, "equity.csv")

	j, err := NewCSV(tradesPath, equityPath)
	require.NoError(t, err)

	liq := 42.5
	require.NoError(t, j.RecordTrade(TradeRecord{
		TradeID:          "T1",
		RunID:            "R1",
		Symbol:           "BTCUSDT",
		Side:             -1,
		Units:            2,
		EntryPrice:       50,
		ExitPrice:        42.5,
		OpenTime:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		CloseTime:        time.Date(2025, 6, 1, 6, 0, 0, 0, time.UTC),
		Profit:           15,
		PnL:              0.15,
		LiquidationPrice: &liq,
		Reason:           "Liquidated",
	}))
	require.NoError(t, j.RecordEquity(EquitySnapshot{
		RunID:        "R1",
		Time:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Equity:       1015,
		EquityNoCost: 1020,
		BuyHold:      1000,
	}))
	require.NoError(t, j.Close())

	tf, err := os.Open(tradesPath)
	require.NoError(t, err)
	defer tf.Close()

	rows, err := csv.NewReader(tf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "trade_id", rows[0][0])
	assert.Equal(t, "T1", rows[1][0])
	assert.Equal(t, "-1", rows[1][3])
	assert.Equal(t, "42.5", rows[1][11])
	assert.Equal(t, "Liquidated", rows[1][12])

	ef, err := os.Open(equityPath)
	require.NoError(t, err)
	defer ef.Close()

	erows, err := csv.NewReader(ef).ReadAll()
	require.NoError(t, err)
	require.Len(t, erows, 2)
	assert.Equal(t, []string{"R1", "2025-06-01T00:00:00Z", "1015", "1020", "1000"}, erows[1])
}
