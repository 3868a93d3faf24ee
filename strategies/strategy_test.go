package strategies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/futuresim/market"
)

func run(s Strategy, closes ...float64) []Signal {
	out := make([]Signal, 0, len(closes))
	for _, c := range closes {
		out = append(out, s.OnBar(market.Bar{Close: c}))
	}
	return out
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"noop", "sma-cross", "bollinger", "momentum", "macd", "model"} {
		k, err := ParseKind(name)
		require.NoError(t, err)
		assert.Equal(t, name, k.String())
	}

	_, err := ParseKind("hodl")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestNewValidatesParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		kind    Kind
		params  Params
		wantErr bool
	}{
		{"noop_no_params", KindNoop, Params{}, false},
		{"sma_ok", KindSMACross, Params{Fast: 5, Slow: 20}, false},
		{"sma_missing", KindSMACross, Params{}, true},
		{"sma_inverted", KindSMACross, Params{Fast: 20, Slow: 5}, true},
		{"bollinger_ok", KindBollinger, Params{Period: 20, Width: 2}, false},
		{"bollinger_bad_width", KindBollinger, Params{Period: 20}, true},
		{"momentum_ok", KindMomentum, Params{Lookback: 12, Threshold: 0.01}, false},
		{"momentum_bad", KindMomentum, Params{Threshold: 0.01}, true},
		{"macd_ok", KindMACD, Params{Fast: 12, Slow: 26, SignalPeriod: 9}, false},
		{"macd_missing_signal", KindMACD, Params{Fast: 12, Slow: 26}, true},
		{"model_ok", KindModel, Params{Signals: []Signal{0, 1, -1}}, false},
		{"model_empty", KindModel, Params{}, true},
		{"model_out_of_range", KindModel, Params{Signals: []Signal{0, 2}}, true},
		{"unknown_kind", Kind(42), Params{}, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := New(tt.kind, tt.params)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, s)
		})
	}
}

func TestSignalValid(t *testing.T) {
	t.Parallel()

	assert.True(t, Hold.Valid())
	assert.True(t, Long.Valid())
	assert.True(t, Short.Valid())
	assert.False(t, Signal(2).Valid())
	assert.False(t, Signal(-2).Valid())
}

func TestNoop(t *testing.T) {
	t.Parallel()

	sigs := run(Noop{}, 100, 1, 1e9)
	for _, s := range sigs {
		assert.Equal(t, Hold, s)
	}
}

func TestSMACrossStance(t *testing.T) {
	t.Parallel()

	s := NewSMACross(2, 3)

	// warmup holds
	sigs := run(s, 100, 100)
	assert.Equal(t, []Signal{Hold, Hold}, sigs)

	// rising closes put the fast average on top
	assert.Equal(t, Long, s.OnBar(market.Bar{Close: 110}))

	// a slide flips the stance
	assert.Equal(t, Short, s.OnBar(market.Bar{Close: 80}))
}

func TestBollingerMeanReversion(t *testing.T) {
	t.Parallel()

	s := NewBollinger(4, 1)

	// flat series: zero band, close sits on the midline -> hold
	for i := 0; i < 4; i++ {
		assert.Equal(t, Hold, s.OnBar(market.Bar{Close: 100}))
	}

	// collapse below the lower band buys the dip:
	// window 100,100,100,80 -> mid 95, sd 8.66, lower 86.34
	assert.Equal(t, Long, s.OnBar(market.Bar{Close: 80}))

	// spike above the upper band sells it:
	// window 100,100,80,140 -> mid 105, sd 21.79, upper 126.79
	assert.Equal(t, Short, s.OnBar(market.Bar{Close: 140}))
}

func TestMomentumDeadBand(t *testing.T) {
	t.Parallel()

	s := NewMomentum(2, 0.05)

	run(s, 100, 100, 100) // warm, flat: inside dead band
	assert.Equal(t, Hold, s.OnBar(market.Bar{Close: 101}))
	assert.Equal(t, Long, s.OnBar(market.Bar{Close: 111}))
	assert.Equal(t, Short, s.OnBar(market.Bar{Close: 90}))
}

func TestModelReplaysVector(t *testing.T) {
	t.Parallel()

	s := NewModel([]Signal{0, 1, -1})

	assert.Equal(t, []Signal{0, 1, -1}, run(s, 1, 2, 3))
	assert.Equal(t, Hold, s.OnBar(market.Bar{Close: 4}), "exhausted vector holds")

	s.Reset()
	assert.Equal(t, Signal(0), s.OnBar(market.Bar{Close: 1}))
	assert.Equal(t, Long, s.OnBar(market.Bar{Close: 2}))
}

// Replaying a truncated prefix must reproduce the same signals the full
// series produced for those bars: signals depend only on bars at or before
// the current one.
func TestNoLookahead(t *testing.T) {
	t.Parallel()

	closes := []float64{100, 101, 99, 103, 98, 105, 104, 96, 107, 110, 92, 111}

	builders := map[string]func() Strategy{
		"sma-cross": func() Strategy { return NewSMACross(2, 4) },
		"bollinger": func() Strategy { return NewBollinger(4, 1.5) },
		"momentum":  func() Strategy { return NewMomentum(3, 0.01) },
		"macd":      func() Strategy { return NewMACDCross(2, 4, 2) },
	}

	for name, build := range builders {
		name, build := name, build
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			full := run(build(), closes...)

			for k := 1; k <= len(closes); k++ {
				prefix := run(build(), closes[:k]...)
				assert.Equal(t, full[:k], prefix, "prefix of length %d diverged", k)
			}
		})
	}
}
