package strategies

import (
	"fmt"

	"github.com/rustyeddy/futuresim/indicators"
	"github.com/rustyeddy/futuresim/market"
)

// Momentum follows the trend of the lookback return: long above the
// threshold, short below its negative, hold inside the dead band.
type Momentum struct {
	roc       *indicators.ROC
	threshold float64
}

func NewMomentum(lookback int, threshold float64) *Momentum {
	return &Momentum{
		roc:       indicators.NewROC(lookback),
		threshold: threshold,
	}
}

func (s *Momentum) Name() string {
	return fmt.Sprintf("momentum(%s,%.4f)", s.roc.Name(), s.threshold)
}

func (s *Momentum) Reset() {
	s.roc.Reset()
}

func (s *Momentum) OnBar(b market.Bar) Signal {
	s.roc.Update(b)
	if !s.roc.Ready() {
		return Hold
	}

	switch r := s.roc.Value(); {
	case r > s.threshold:
		return Long
	case r < -s.threshold:
		return Short
	default:
		return Hold
	}
}
