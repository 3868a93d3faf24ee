package indicators

import (
	"fmt"

	"github.com/rustyeddy/futuresim/market"
)

// SMA is a streaming simple moving average of closes.
type SMA struct {
	period int
	window []float64
	sum    float64
}

func NewSMA(period int) *SMA {
	return &SMA{
		period: period,
		window: make([]float64, 0, period),
	}
}

func (m *SMA) Name() string { return fmt.Sprintf("SMA(%d)", m.period) }
func (m *SMA) Warmup() int  { return m.period }

func (m *SMA) Reset() {
	m.window = m.window[:0]
	m.sum = 0
}

func (m *SMA) Update(b market.Bar) {
	m.window = append(m.window, b.Close)
	m.sum += b.Close
	if len(m.window) > m.period {
		m.sum -= m.window[0]
		m.window = m.window[1:]
	}
}

func (m *SMA) Ready() bool { return len(m.window) >= m.period }

func (m *SMA) Value() float64 {
	if !m.Ready() {
		return 0
	}
	return m.sum / float64(len(m.window))
}

// EMA is a streaming exponential moving average of closes, seeded with the
// SMA of the first period bars.
type EMA struct {
	period     int
	multiplier float64
	ema        float64
	count      int
	warmupSum  float64
}

func NewEMA(period int) *EMA {
	return &EMA{
		period:     period,
		multiplier: 2.0 / float64(period+1),
	}
}

func (e *EMA) Name() string { return fmt.Sprintf("EMA(%d)", e.period) }
func (e *EMA) Warmup() int  { return e.period }

func (e *EMA) Reset() {
	e.ema = 0
	e.count = 0
	e.warmupSum = 0
}

func (e *EMA) Update(b market.Bar) {
	if e.count < e.period {
		e.warmupSum += b.Close
		e.count++
		if e.count == e.period {
			e.ema = e.warmupSum / float64(e.period)
		}
		return
	}
	e.ema = (b.Close-e.ema)*e.multiplier + e.ema
}

func (e *EMA) Ready() bool { return e.count >= e.period }

func (e *EMA) Value() float64 {
	if !e.Ready() {
		return 0
	}
	return e.ema
}
