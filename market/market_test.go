package market

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkSeries(times ...time.Time) Series {
	s := make(Series, len(times))
	for i, ts := range times {
		s[i] = Bar{Time: ts, Open: 1, High: 1, Low: 1, Close: 1}
	}
	return s
}

func TestSeriesValidate(t *testing.T) {
	t.Parallel()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Error(t, Series{}.Validate())
	assert.NoError(t, mkSeries(base).Validate())
	assert.NoError(t, mkSeries(base, base.Add(time.Hour), base.Add(3*time.Hour)).Validate())

	// duplicate timestamp
	assert.Error(t, mkSeries(base, base).Validate())
	// out of order
	assert.Error(t, mkSeries(base.Add(time.Hour), base).Validate())
}

func TestSeriesBounds(t *testing.T) {
	t.Parallel()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	s := mkSeries(base, base.Add(time.Hour), base.Add(2*time.Hour))

	assert.Equal(t, base, s.Start())
	assert.Equal(t, base.Add(2*time.Hour), s.End())
	assert.True(t, Series{}.Start().IsZero())
	assert.True(t, Series{}.End().IsZero())
}

func TestBarInterval(t *testing.T) {
	t.Parallel()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Zero(t, mkSeries(base).BarInterval())

	// uniform hourly
	s := mkSeries(base, base.Add(time.Hour), base.Add(2*time.Hour))
	assert.Equal(t, time.Hour, s.BarInterval())

	// one missing bar must not skew the estimate
	s = mkSeries(base, base.Add(time.Hour), base.Add(2*time.Hour),
		base.Add(5*time.Hour), base.Add(6*time.Hour))
	assert.Equal(t, time.Hour, s.BarInterval())

	assert.InDelta(t, 8760, s.BarsPerYear(), 1e-9)
	assert.Zero(t, mkSeries(base).BarsPerYear())
}

func TestReadBars(t *testing.T) {
	t.Parallel()

	in := strings.Join([]string{
		"time,open,high,low,close,volume",
		"2025-06-01T00:00:00Z,100,105,99,104,12.5",
		"2025-06-01T01:00:00Z,104,110,103,108,9.1",
	}, "\n")

	bars, err := ReadBars(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, bars, 2)

	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), bars[0].Time)
	assert.Equal(t, 100.0, bars[0].Open)
	assert.Equal(t, 105.0, bars[0].High)
	assert.Equal(t, 99.0, bars[0].Low)
	assert.Equal(t, 104.0, bars[0].Close)
	assert.Equal(t, 12.5, bars[0].Volume)
	assert.Equal(t, 108.0, bars[1].Close)
}

func TestReadBarsUnixTimestamps(t *testing.T) {
	t.Parallel()

	// seconds and milliseconds resolve to the same instants
	sec := "1748736000,100,105,99,104,1\n1748739600,104,110,103,108,1"
	ms := "1748736000000,100,105,99,104,1\n1748739600000,104,110,103,108,1"

	fromSec, err := ReadBars(strings.NewReader(sec))
	require.NoError(t, err)
	fromMS, err := ReadBars(strings.NewReader(ms))
	require.NoError(t, err)

	require.Len(t, fromSec, 2)
	assert.Equal(t, fromSec[0].Time, fromMS[0].Time)
	assert.Equal(t, fromSec[1].Time, fromMS[1].Time)
	assert.Equal(t, time.Hour, fromSec.BarInterval())
}

func TestReadBarsExchangeKlineLayout(t *testing.T) {
	t.Parallel()

	// open_time,open,high,low,close,volume,close_time,quote_volume,count,...
	in := "1748736000000,100,105,99,104,12.5,1748739599999,1300.25,42,6.2,645.1,0\n" +
		"1748739600000,104,110,103,108,9.1,1748743199999,982.40,31,4.4,475.3,0"

	bars, err := ReadBars(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, bars, 2)

	assert.Equal(t, 12.5, bars[0].Volume)
	assert.Equal(t, 1300.25, bars[0].QuoteVolume)
	assert.Equal(t, int64(42), bars[0].TradeCount)
}

func TestReadBarsErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"short row", "2025-06-01T00:00:00Z,100,105\n"},
		{"bad time", "yesterday,100,105,99,104,1\n"},
		{"bad number", "2025-06-01T00:00:00Z,100,x,99,104,1\n"},
		{"disorder", "2025-06-01T01:00:00Z,1,1,1,1,1\n2025-06-01T00:00:00Z,1,1,1,1,1\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ReadBars(strings.NewReader(tt.in))
			assert.Error(t, err)
		})
	}
}

func TestBarNotional(t *testing.T) {
	t.Parallel()
	b := Bar{Close: 50}
	assert.Equal(t, 100.0, b.Notional(2))
	assert.Equal(t, -100.0, b.Notional(-2))
}
