// Package config loads and validates run configuration. Every check is
// fail-fast: a config that passes Validate builds a runnable backtest
// without further surprises.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/futuresim/margin"
	"github.com/rustyeddy/futuresim/strategies"
)

// Config is the complete backtest configuration.
type Config struct {
	Account  AccountConfig  `json:"account" yaml:"account"`
	Market   MarketConfig   `json:"market" yaml:"market"`
	Margin   MarginConfig   `json:"margin" yaml:"margin"`
	Strategy StrategyConfig `json:"strategy" yaml:"strategy"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
}

// AccountConfig contains account initialization parameters.
type AccountConfig struct {
	InitialEquity float64 `json:"initial_equity" yaml:"initial_equity"`
	Leverage      float64 `json:"leverage" yaml:"leverage"`
	FeeBps        float64 `json:"fee_bps" yaml:"fee_bps"`
}

// MarketConfig names the instrument and its dataset.
type MarketConfig struct {
	Symbol  string `json:"symbol" yaml:"symbol"`
	Dataset string `json:"dataset" yaml:"dataset"`
}

// MarginConfig selects the exchange convention and its bracket table.
type MarginConfig struct {
	Exchange string           `json:"exchange" yaml:"exchange"`
	Brackets []margin.Bracket `json:"brackets" yaml:"brackets"`
}

// StrategyConfig selects the strategy variant and its parameters.
type StrategyConfig struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Params strategies.Params `json:"params" yaml:"params"`
}

// JournalConfig contains journaling parameters.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a YAML or JSON file and
// validates it.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration as YAML (.yaml/.yml extension) or
// indented JSON.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks every section. The margin table and strategy parameters
// are validated by constructing them, so a passing config cannot fail
// later at the same checks.
func (c *Config) Validate() error {
	if c.Account.InitialEquity <= 0 {
		return fmt.Errorf("account.initial_equity must be positive")
	}
	if c.Account.Leverage <= 0 {
		return fmt.Errorf("account.leverage must be positive")
	}
	if c.Account.FeeBps < 0 {
		return fmt.Errorf("account.fee_bps must be non-negative")
	}
	if c.Market.Symbol == "" {
		return fmt.Errorf("market.symbol is required")
	}

	if _, err := c.MarginModel(); err != nil {
		return err
	}
	if _, err := c.BuildStrategy(); err != nil {
		return err
	}

	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal trades_file and equity_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	return nil
}

// MarginModel builds the configured margin model.
func (c *Config) MarginModel() (margin.Model, error) {
	ex, err := margin.ParseExchange(c.Margin.Exchange)
	if err != nil {
		return nil, err
	}
	tbl, err := margin.NewBracketTable(c.Margin.Brackets)
	if err != nil {
		return nil, err
	}
	return margin.New(ex, tbl)
}

// BuildStrategy builds a fresh instance of the configured strategy.
func (c *Config) BuildStrategy() (strategies.Strategy, error) {
	kind, err := strategies.ParseKind(c.Strategy.Kind)
	if err != nil {
		return nil, err
	}
	return strategies.New(kind, c.Strategy.Params)
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			InitialEquity: 10000,
			Leverage:      5,
			FeeBps:        4,
		},
		Market: MarketConfig{
			Symbol:  "BTCUSDT",
			Dataset: "./data/btcusdt-1h.csv",
		},
		Margin: MarginConfig{
			Exchange: "binance",
			Brackets: []margin.Bracket{
				{NotionalFloor: 0, MaintMarginRate: 0.004, MaintAmount: 0},
				{NotionalFloor: 50_000, MaintMarginRate: 0.005, MaintAmount: 50},
				{NotionalFloor: 250_000, MaintMarginRate: 0.01, MaintAmount: 1300},
				{NotionalFloor: 1_000_000, MaintMarginRate: 0.025, MaintAmount: 16300},
			},
		},
		Strategy: StrategyConfig{
			Kind:   "sma-cross",
			Params: strategies.Params{Fast: 20, Slow: 50},
		},
		Journal: JournalConfig{
			Type:       "csv",
			TradesFile: "./trades.csv",
			EquityFile: "./equity.csv",
		},
	}
}
