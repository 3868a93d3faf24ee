package strategies

import (
	"github.com/rustyeddy/futuresim/indicators"
	"github.com/rustyeddy/futuresim/market"
)

// MACDCross takes the side of the MACD histogram: long while the MACD line
// is above its signal EMA, short while below.
type MACDCross struct {
	macd *indicators.MACD
}

func NewMACDCross(fast, slow, signal int) *MACDCross {
	return &MACDCross{macd: indicators.NewMACD(fast, slow, signal)}
}

func (s *MACDCross) Name() string { return s.macd.Name() }

func (s *MACDCross) Reset() { s.macd.Reset() }

func (s *MACDCross) OnBar(b market.Bar) Signal {
	s.macd.Update(b)
	if !s.macd.Ready() {
		return Hold
	}

	switch h := s.macd.Value(); {
	case h > 0:
		return Long
	case h < 0:
		return Short
	default:
		return Hold
	}
}
