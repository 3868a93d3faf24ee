package market

import (
	"fmt"
	"time"
)

// Series is an ordered, gap-tolerant bar sequence. Gaps are fine, disorder
// is not: Validate rejects any series whose timestamps do not strictly
// increase, since every downstream margin check depends on chronological
// iteration.
type Series []Bar

func (s Series) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("market: empty bar series")
	}
	for i := 1; i < len(s); i++ {
		if !s[i].Time.After(s[i-1].Time) {
			return fmt.Errorf("market: bar %d (%s) not after bar %d (%s)",
				i, s[i].Time.Format(time.RFC3339), i-1, s[i-1].Time.Format(time.RFC3339))
		}
	}
	return nil
}

func (s Series) Start() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[0].Time
}

func (s Series) End() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[len(s)-1].Time
}

// BarInterval estimates the sampling interval from the median gap between
// consecutive bars. Robust to missing bars, which show up as outlier gaps.
func (s Series) BarInterval() time.Duration {
	if len(s) < 2 {
		return 0
	}
	gaps := make([]time.Duration, 0, len(s)-1)
	for i := 1; i < len(s); i++ {
		gaps = append(gaps, s[i].Time.Sub(s[i-1].Time))
	}
	// insertion sort; gap slices are small enough not to care
	for i := 1; i < len(gaps); i++ {
		for j := i; j > 0 && gaps[j] < gaps[j-1]; j-- {
			gaps[j], gaps[j-1] = gaps[j-1], gaps[j]
		}
	}
	return gaps[len(gaps)/2]
}

// BarsPerYear converts the inferred interval into an annualization factor
// for return and volatility statistics.
func (s Series) BarsPerYear() float64 {
	iv := s.BarInterval()
	if iv <= 0 {
		return 0
	}
	const year = 365 * 24 * time.Hour
	return float64(year) / float64(iv)
}
