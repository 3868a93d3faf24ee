package backtest

import (
	"context"
	"runtime"
	"sync"

	"github.com/rustyeddy/futuresim/journal"
	"github.com/rustyeddy/futuresim/market"
	"github.com/rustyeddy/futuresim/strategies"
)

// SweepCase is one run of a parameter sweep. Each case gets its own
// strategy instance, so cases never share indicator state.
type SweepCase struct {
	Name   string
	Cfg    Config
	Kind   strategies.Kind
	Params strategies.Params
}

// SweepResult pairs a case with its outcome. Err covers construction
// and contract failures; aborted runs are not errors and land in Result.
type SweepResult struct {
	Case   SweepCase
	Result Result
	Err    error
}

// Sweep runs every case against the same bar series, workers at a time,
// and returns results in input order. workers <= 0 means GOMAXPROCS.
// The journal, when non-nil, is shared across runs; implementations are
// expected to be safe for concurrent use.
func Sweep(ctx context.Context, bars market.Series, cases []SweepCase, workers int, jrn journal.Journal) []SweepResult {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(cases) {
		workers = len(cases)
	}

	out := make([]SweepResult, len(cases))
	idx := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				out[i] = runCase(ctx, bars, cases[i], jrn)
			}
		}()
	}

	for i := range cases {
		idx <- i
	}
	close(idx)
	wg.Wait()

	return out
}

func runCase(ctx context.Context, bars market.Series, c SweepCase, jrn journal.Journal) SweepResult {
	sr := SweepResult{Case: c}

	strat, err := strategies.New(c.Kind, c.Params)
	if err != nil {
		sr.Err = err
		return sr
	}

	r := Runner{Cfg: c.Cfg, Journal: jrn}
	sr.Result, sr.Err = r.Run(ctx, bars, strat)
	return sr
}
