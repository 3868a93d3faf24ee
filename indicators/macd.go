package indicators

import (
	"fmt"

	"github.com/rustyeddy/futuresim/market"
)

// MACD tracks the difference between a fast and a slow EMA plus a signal
// EMA of that difference. Value() returns the histogram (line - signal);
// Line and SignalLine expose the components.
type MACD struct {
	fast, slow *EMA
	signal     *EMA
	sigCount   int
	sigPeriod  int
}

func NewMACD(fast, slow, signal int) *MACD {
	return &MACD{
		fast:      NewEMA(fast),
		slow:      NewEMA(slow),
		signal:    NewEMA(signal),
		sigPeriod: signal,
	}
}

func (m *MACD) Name() string {
	return fmt.Sprintf("MACD(%d,%d,%d)", m.fast.period, m.slow.period, m.sigPeriod)
}

func (m *MACD) Warmup() int { return m.slow.period + m.sigPeriod }

func (m *MACD) Reset() {
	m.fast.Reset()
	m.slow.Reset()
	m.signal.Reset()
	m.sigCount = 0
}

func (m *MACD) Update(b market.Bar) {
	m.fast.Update(b)
	m.slow.Update(b)
	if m.fast.Ready() && m.slow.Ready() {
		m.signal.Update(market.Bar{Close: m.fast.Value() - m.slow.Value()})
		m.sigCount++
	}
}

func (m *MACD) Ready() bool {
	return m.slow.Ready() && m.sigCount >= m.sigPeriod
}

// Line is fast EMA minus slow EMA.
func (m *MACD) Line() float64 {
	if !m.slow.Ready() {
		return 0
	}
	return m.fast.Value() - m.slow.Value()
}

// SignalLine is the EMA of the MACD line.
func (m *MACD) SignalLine() float64 {
	if !m.Ready() {
		return 0
	}
	return m.signal.Value()
}

// Value is the MACD histogram.
func (m *MACD) Value() float64 {
	if !m.Ready() {
		return 0
	}
	return m.Line() - m.SignalLine()
}
