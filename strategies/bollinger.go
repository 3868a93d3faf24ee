package strategies

import (
	"fmt"

	"github.com/rustyeddy/futuresim/indicators"
	"github.com/rustyeddy/futuresim/market"
)

// Bollinger is a mean-reversion variant: buy when the close drops below
// the lower band, sell when it rises above the upper band, otherwise leave
// the position alone.
type Bollinger struct {
	mid   *indicators.SMA
	dev   *indicators.StdDev
	width float64
}

func NewBollinger(period int, width float64) *Bollinger {
	return &Bollinger{
		mid:   indicators.NewSMA(period),
		dev:   indicators.NewStdDev(period),
		width: width,
	}
}

func (s *Bollinger) Name() string {
	return fmt.Sprintf("bollinger(%d,%.1f)", s.mid.Warmup(), s.width)
}

func (s *Bollinger) Reset() {
	s.mid.Reset()
	s.dev.Reset()
}

func (s *Bollinger) OnBar(b market.Bar) Signal {
	s.mid.Update(b)
	s.dev.Update(b)

	if !s.mid.Ready() || !s.dev.Ready() {
		return Hold
	}

	mid := s.mid.Value()
	band := s.width * s.dev.Value()

	switch {
	case b.Close < mid-band:
		return Long
	case b.Close > mid+band:
		return Short
	default:
		return Hold
	}
}
