package risk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocatableEquity(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 900.0, AllocatableEquity(1000, 100))
	assert.Equal(t, 0.0, AllocatableEquity(100, 150), "reserved beyond equity clamps to zero")
	assert.Equal(t, 1000.0, AllocatableEquity(1000, 0))
}

func TestUnitsFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		stake, leverage float64
		price           float64
		want            float64
	}{
		{"unlevered", 1000, 1, 100, 10},
		{"ten_x", 1000, 10, 100, 100},
		{"fractional_units", 250, 5, 30_000, 250 * 5 / 30_000.0},
		{"zero_price", 1000, 10, 0, 0},
		{"negative_price", 1000, 10, -5, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, UnitsFor(tt.stake, tt.leverage, tt.price), 1e-12)
		})
	}
}

func TestInitialMargin(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 100.0, InitialMargin(10, 100, 10), 1e-12)
	assert.True(t, math.IsInf(InitialMargin(10, 100, 0), 1))
}

func TestFeeFor(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 4.0, FeeFor(10_000, 4), 1e-12)
	assert.InDelta(t, 4.0, FeeFor(-10_000, 4), 1e-12, "short notional charges the same fee")
	assert.Zero(t, FeeFor(10_000, 0))
}
