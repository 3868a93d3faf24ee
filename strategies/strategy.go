// Package strategies defines the signal-source capability the backtest
// driver consumes, plus the built-in strategy variants. Strategies are
// streaming: they see one closed bar at a time and can never look ahead.
package strategies

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/futuresim/market"
)

// Signal is a per-bar directional instruction: +1 long, -1 short, 0 no
// change.
type Signal int8

const (
	Hold  Signal = 0
	Long  Signal = +1
	Short Signal = -1
)

// Valid reports whether the signal is inside the strategy contract.
func (s Signal) Valid() bool {
	return s == Hold || s == Long || s == Short
}

// Strategy is the capability a signal source provides to the driver. OnBar
// is called exactly once per bar, in chronological order; the only history
// available is what the strategy accumulated from earlier calls, which
// makes the no-lookahead property structural.
type Strategy interface {
	Name() string
	Reset()
	OnBar(b market.Bar) Signal
}

// Kind tags the built-in strategy variants.
type Kind int

const (
	KindNoop Kind = iota
	KindSMACross
	KindBollinger
	KindMomentum
	KindMACD
	KindModel
)

var kindNames = map[Kind]string{
	KindNoop:      "noop",
	KindSMACross:  "sma-cross",
	KindBollinger: "bollinger",
	KindMomentum:  "momentum",
	KindMACD:      "macd",
	KindModel:     "model",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

var ErrUnknownStrategy = errors.New("strategies: unknown strategy")

// ParseKind maps a config string to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, n := range kindNames {
		if n == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Params carries the union of all variant parameters. Each variant's
// schema declares which fields it reads; New validates them before any bar
// is processed.
type Params struct {
	// SMA-cross and MACD
	Fast int `yaml:"fast" json:"fast"`
	Slow int `yaml:"slow" json:"slow"`

	// MACD signal EMA
	SignalPeriod int `yaml:"signal_period" json:"signal_period"`

	// Bollinger
	Period int     `yaml:"period" json:"period"`
	Width  float64 `yaml:"width" json:"width"`

	// Momentum
	Lookback  int     `yaml:"lookback" json:"lookback"`
	Threshold float64 `yaml:"threshold" json:"threshold"`

	// Model: externally fitted per-bar signals
	Signals []Signal `yaml:"signals" json:"signals"`
}

type variant struct {
	validate func(Params) error
	build    func(Params) Strategy
}

// registry is static: one entry per Kind, resolved at construction time.
// No string-keyed dispatch happens after New returns.
var registry = map[Kind]variant{
	KindNoop: {
		validate: func(Params) error { return nil },
		build:    func(Params) Strategy { return Noop{} },
	},
	KindSMACross: {
		validate: func(p Params) error {
			if p.Fast <= 0 || p.Slow <= 0 {
				return fmt.Errorf("sma-cross: fast and slow periods must be positive")
			}
			if p.Fast >= p.Slow {
				return fmt.Errorf("sma-cross: fast period %d must be below slow period %d", p.Fast, p.Slow)
			}
			return nil
		},
		build: func(p Params) Strategy { return NewSMACross(p.Fast, p.Slow) },
	},
	KindBollinger: {
		validate: func(p Params) error {
			if p.Period <= 1 {
				return fmt.Errorf("bollinger: period must exceed 1")
			}
			if p.Width <= 0 {
				return fmt.Errorf("bollinger: band width must be positive")
			}
			return nil
		},
		build: func(p Params) Strategy { return NewBollinger(p.Period, p.Width) },
	},
	KindMomentum: {
		validate: func(p Params) error {
			if p.Lookback <= 0 {
				return fmt.Errorf("momentum: lookback must be positive")
			}
			if p.Threshold < 0 {
				return fmt.Errorf("momentum: threshold must be non-negative")
			}
			return nil
		},
		build: func(p Params) Strategy { return NewMomentum(p.Lookback, p.Threshold) },
	},
	KindMACD: {
		validate: func(p Params) error {
			if p.Fast <= 0 || p.Slow <= 0 || p.SignalPeriod <= 0 {
				return fmt.Errorf("macd: fast, slow and signal periods must be positive")
			}
			if p.Fast >= p.Slow {
				return fmt.Errorf("macd: fast period %d must be below slow period %d", p.Fast, p.Slow)
			}
			return nil
		},
		build: func(p Params) Strategy { return NewMACDCross(p.Fast, p.Slow, p.SignalPeriod) },
	},
	KindModel: {
		validate: func(p Params) error {
			if len(p.Signals) == 0 {
				return fmt.Errorf("model: signal vector is required")
			}
			for i, s := range p.Signals {
				if !s.Valid() {
					return fmt.Errorf("model: signal %d out of range: %d", i, s)
				}
			}
			return nil
		},
		build: func(p Params) Strategy { return NewModel(p.Signals) },
	},
}

// New builds a strategy variant, validating its parameters against the
// variant's schema. Bad parameters are configuration errors: they fail
// here, before any bar is processed.
func New(kind Kind, p Params) (Strategy, error) {
	sp, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, kind)
	}
	if err := sp.validate(p); err != nil {
		return nil, fmt.Errorf("strategies: %w", err)
	}
	return sp.build(p), nil
}
