package strategies

import (
	"fmt"

	"github.com/rustyeddy/futuresim/indicators"
	"github.com/rustyeddy/futuresim/market"
)

// SMACross holds a long stance while the fast SMA is above the slow one
// and a short stance while it is below. Until both averages are warm it
// holds.
type SMACross struct {
	fast *indicators.SMA
	slow *indicators.SMA
}

func NewSMACross(fast, slow int) *SMACross {
	return &SMACross{
		fast: indicators.NewSMA(fast),
		slow: indicators.NewSMA(slow),
	}
}

func (s *SMACross) Name() string {
	return fmt.Sprintf("sma-cross(%s/%s)", s.fast.Name(), s.slow.Name())
}

func (s *SMACross) Reset() {
	s.fast.Reset()
	s.slow.Reset()
}

func (s *SMACross) OnBar(b market.Bar) Signal {
	s.fast.Update(b)
	s.slow.Update(b)

	if !s.fast.Ready() || !s.slow.Ready() {
		return Hold
	}

	switch f, sl := s.fast.Value(), s.slow.Value(); {
	case f > sl:
		return Long
	case f < sl:
		return Short
	default:
		return Hold
	}
}
