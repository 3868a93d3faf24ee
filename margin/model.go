package margin

import (
	"errors"
	"fmt"
	"math"
)

// Exchange selects which margin-tier convention a Model implements.
type Exchange int

const (
	Binance Exchange = iota
)

func (e Exchange) String() string {
	switch e {
	case Binance:
		return "binance"
	default:
		return fmt.Sprintf("exchange(%d)", int(e))
	}
}

// ParseExchange maps a config string to an Exchange.
func ParseExchange(s string) (Exchange, error) {
	switch s {
	case "binance", "":
		return Binance, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedExchange, s)
	}
}

var ErrUnsupportedExchange = errors.New("margin: unsupported exchange")

// Model is the capability an exchange margin convention provides to the
// simulator. Implementations are pure and safe for concurrent use.
type Model interface {
	// MaintenanceMargin returns the maintenance rate and cumulative
	// adjustment amount for a position of the given notional value.
	MaintenanceMargin(notional float64) (rate, amount float64)
}

// New builds the Model for an exchange. Only the binance-style tiered
// bracket convention exists today; anything else fails here, at
// construction, never mid-run.
func New(ex Exchange, table BracketTable) (Model, error) {
	switch ex {
	case Binance:
		if table.Len() == 0 {
			return nil, ErrEmptyBrackets
		}
		return tieredModel{table: table}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExchange, ex)
	}
}

type tieredModel struct {
	table BracketTable
}

func (m tieredModel) MaintenanceMargin(notional float64) (float64, float64) {
	b := m.table.Lookup(notional)
	return b.MaintMarginRate, b.MaintAmount
}

// Ratio computes the maintenance-margin ratio of an open position marked at
// markPrice. A position is liquidatable once the ratio reaches 1.
//
//	initialMargin    = units*entry / leverage
//	marginBalance    = initialMargin + side*units*(mark-entry)
//	maintenanceMargin = units*mark*maintRate - maintAmount
//	ratio            = maintenanceMargin / marginBalance
//
// A zero margin balance yields +Inf rather than an error: the position is
// already degenerate and callers in the bar loop treat the sentinel as
// "liquidate now" without any error handling.
func Ratio(leverage, units float64, side int, entry, mark, maintRate, maintAmount float64) float64 {
	initial := units * entry / leverage
	balance := initial + float64(side)*units*(mark-entry)
	maintenance := units*mark*maintRate - maintAmount

	if balance == 0 {
		return math.Inf(1)
	}
	return maintenance / balance
}

// LiquidationPrice computes the mark price at which the maintenance
// requirement exhausts the margin balance.
//
//	wallet = units*entry / leverage
//	liq    = (wallet + maintAmount - side*units*entry) / (units*maintRate - side*units)
//
// A zero denominator yields the 0 sentinel, meaning the leverage/units
// combination has no finite liquidation price. Callers rely on 0, not an
// error, to keep the hot loop branch-only.
func LiquidationPrice(units, entry float64, side int, leverage, maintRate, maintAmount float64) float64 {
	denom := units*maintRate - float64(side)*units
	if denom == 0 {
		return 0
	}
	wallet := units * entry / leverage
	return (wallet + maintAmount - float64(side)*units*entry) / denom
}
