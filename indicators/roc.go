package indicators

import (
	"fmt"

	"github.com/rustyeddy/futuresim/market"
)

// ROC is the rate of change of close over a lookback window, as a
// fraction. The momentum strategies key off its sign.
type ROC struct {
	period int
	window []float64
}

func NewROC(period int) *ROC {
	return &ROC{
		period: period,
		window: make([]float64, 0, period+1),
	}
}

func (r *ROC) Name() string { return fmt.Sprintf("ROC(%d)", r.period) }
func (r *ROC) Warmup() int  { return r.period + 1 }

func (r *ROC) Reset() {
	r.window = r.window[:0]
}

func (r *ROC) Update(b market.Bar) {
	r.window = append(r.window, b.Close)
	if len(r.window) > r.period+1 {
		r.window = r.window[1:]
	}
}

func (r *ROC) Ready() bool { return len(r.window) >= r.period+1 }

func (r *ROC) Value() float64 {
	if !r.Ready() {
		return 0
	}
	base := r.window[0]
	if base == 0 {
		return 0
	}
	return r.window[len(r.window)-1]/base - 1
}
