package indicators

import (
	"fmt"
	"math"

	"github.com/rustyeddy/futuresim/market"
)

// StdDev is the rolling population standard deviation of closes, the
// dispersion term of a Bollinger band.
type StdDev struct {
	period int
	window []float64
}

func NewStdDev(period int) *StdDev {
	return &StdDev{
		period: period,
		window: make([]float64, 0, period),
	}
}

func (s *StdDev) Name() string { return fmt.Sprintf("StdDev(%d)", s.period) }
func (s *StdDev) Warmup() int  { return s.period }

func (s *StdDev) Reset() {
	s.window = s.window[:0]
}

func (s *StdDev) Update(b market.Bar) {
	s.window = append(s.window, b.Close)
	if len(s.window) > s.period {
		s.window = s.window[1:]
	}
}

func (s *StdDev) Ready() bool { return len(s.window) >= s.period }

func (s *StdDev) Value() float64 {
	if !s.Ready() {
		return 0
	}
	mean := 0.0
	for _, v := range s.window {
		mean += v
	}
	mean /= float64(len(s.window))

	variance := 0.0
	for _, v := range s.window {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(s.window))

	return math.Sqrt(variance)
}
