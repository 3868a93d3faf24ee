package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/futuresim/margin"
	"github.com/rustyeddy/futuresim/strategies"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()
	require.NoError(t, Default().Validate())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		errSub string
	}{
		{"zero equity", func(c *Config) { c.Account.InitialEquity = 0 }, "initial_equity"},
		{"zero leverage", func(c *Config) { c.Account.Leverage = 0 }, "leverage"},
		{"negative fee", func(c *Config) { c.Account.FeeBps = -1 }, "fee_bps"},
		{"missing symbol", func(c *Config) { c.Market.Symbol = "" }, "symbol"},
		{"unknown exchange", func(c *Config) { c.Margin.Exchange = "bitmex" }, "unsupported exchange"},
		{"empty brackets", func(c *Config) { c.Margin.Brackets = nil }, "bracket"},
		{"unsorted brackets", func(c *Config) {
			c.Margin.Brackets = []margin.Bracket{
				{NotionalFloor: 100, MaintMarginRate: 0.01},
				{NotionalFloor: 0, MaintMarginRate: 0.02},
			}
		}, "ascend"},
		{"unknown strategy", func(c *Config) { c.Strategy.Kind = "martingale" }, "unknown strategy"},
		{"bad strategy params", func(c *Config) { c.Strategy.Params = strategies.Params{Fast: 50, Slow: 20} }, "fast"},
		{"bad journal type", func(c *Config) { c.Journal.Type = "postgres" }, "journal.type"},
		{"csv without files", func(c *Config) { c.Journal = JournalConfig{Type: "csv"} }, "trades_file"},
		{"sqlite without path", func(c *Config) { c.Journal = JournalConfig{Type: "sqlite"} }, "db_path"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSub)
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	for _, ext := range []string{"yaml", "json"} {
		ext := ext
		t.Run(ext, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "config."+ext)

			want := Default()
			want.Market.Symbol = "ETHUSDT"
			want.Account.Leverage = 20
			require.NoError(t, want.SaveToFile(path))

			got, err := LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.Account.Leverage = -1
	require.NoError(t, cfg.SaveToFile(path))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestBuildersMatchConfig(t *testing.T) {
	t.Parallel()
	cfg := Default()

	m, err := cfg.MarginModel()
	require.NoError(t, err)
	rate, amount := m.MaintenanceMargin(10_000)
	assert.Equal(t, 0.004, rate)
	assert.Equal(t, 0.0, amount)

	s, err := cfg.BuildStrategy()
	require.NoError(t, err)
	assert.Equal(t, "sma-cross", s.Name())
}
