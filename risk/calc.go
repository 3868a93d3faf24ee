// Package risk holds position-sizing arithmetic for leveraged entries.
package risk

import "math"

// AllocatableEquity is the free equity available to commit to a new
// position: current equity minus margin already reserved by open positions.
// Never negative.
func AllocatableEquity(equity, reservedMargin float64) float64 {
	free := equity - reservedMargin
	if free < 0 {
		return 0
	}
	return free
}

// UnitsFor sizes an entry. The whole allocatable stake is deployed at the
// configured leverage:
//
//	units = stake * leverage / price
//
// Returns 0 for a non-positive price so a bad bar cannot produce an
// infinite position.
func UnitsFor(stake, leverage, price float64) float64 {
	if price <= 0 {
		return 0
	}
	return stake * leverage / price
}

// InitialMargin is the equity a position of the given size locks up.
func InitialMargin(units, entry, leverage float64) float64 {
	if leverage <= 0 {
		return math.Inf(1)
	}
	return units * entry / leverage
}

// FeeFor returns the trading cost of transacting the given notional at a
// basis-point fee rate.
func FeeFor(notional, feeBps float64) float64 {
	return math.Abs(notional) * feeBps / 10_000
}
