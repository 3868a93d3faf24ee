package strategies

import "github.com/rustyeddy/futuresim/market"

// Model replays an externally fitted signal vector, one element per bar.
// This is the adapter for ML-derived signals: the fitting pipeline runs
// elsewhere and hands the simulator a finished vector aligned with the bar
// series. Past the end of the vector it holds.
type Model struct {
	signals []Signal
	next    int
}

func NewModel(signals []Signal) *Model {
	out := make([]Signal, len(signals))
	copy(out, signals)
	return &Model{signals: out}
}

func (s *Model) Name() string { return "model" }

func (s *Model) Reset() { s.next = 0 }

func (s *Model) OnBar(market.Bar) Signal {
	if s.next >= len(s.signals) {
		return Hold
	}
	sig := s.signals[s.next]
	s.next++
	return sig
}
