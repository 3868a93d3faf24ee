// Package margin implements exchange margin-tier math for leveraged
// positions: maintenance-margin lookup over notional brackets, margin
// ratio, and liquidation price.
package margin

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyBrackets    = errors.New("margin: empty bracket table")
	ErrUnsortedBrackets = errors.New("margin: bracket floors must ascend")
)

// Bracket is one maintenance-margin tier. A position whose notional value
// meets or exceeds NotionalFloor (equality counts) qualifies for the tier.
type Bracket struct {
	NotionalFloor   float64 `yaml:"notional_floor" json:"notional_floor"`
	MaintMarginRate float64 `yaml:"maint_margin_rate" json:"maint_margin_rate"`
	MaintAmount     float64 `yaml:"maint_amount" json:"maint_amount"`
}

// BracketTable is a floor-sorted tier table for one (exchange, symbol).
// Construct with NewBracketTable so ordering is checked once at load time;
// lookups never validate.
type BracketTable struct {
	tiers []Bracket
}

func NewBracketTable(tiers []Bracket) (BracketTable, error) {
	if len(tiers) == 0 {
		return BracketTable{}, ErrEmptyBrackets
	}
	for i := 1; i < len(tiers); i++ {
		if tiers[i].NotionalFloor <= tiers[i-1].NotionalFloor {
			return BracketTable{}, fmt.Errorf("%w: tier %d floor %.2f <= tier %d floor %.2f",
				ErrUnsortedBrackets, i, tiers[i].NotionalFloor, i-1, tiers[i-1].NotionalFloor)
		}
	}
	out := make([]Bracket, len(tiers))
	copy(out, tiers)
	return BracketTable{tiers: out}, nil
}

// Lookup returns the highest tier whose floor the notional value meets or
// exceeds. Values below the first floor map to the first tier.
func (t BracketTable) Lookup(notional float64) Bracket {
	sel := t.tiers[0]
	for _, tier := range t.tiers[1:] {
		if notional >= tier.NotionalFloor {
			sel = tier
		} else {
			break
		}
	}
	return sel
}

func (t BracketTable) Len() int { return len(t.tiers) }
