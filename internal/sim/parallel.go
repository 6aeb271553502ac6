package sim

import (
	"context"
	"math/rand"
	"sync"

	"github.com/san-kum/constellation/internal/constellation"
)

// Ensemble runs independent engines that share parameters and bounds but
// differ in seed.
type Ensemble struct {
	params     constellation.Params
	bounds     constellation.Bounds
	numRuns    int
	seedStart  int64
	newMetrics func() []Metric
}

func NewEnsemble(params constellation.Params, bounds constellation.Bounds, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{params: params, bounds: bounds, numRuns: numRuns, seedStart: seedStart}
}

// WithMetrics sets a factory so each run gets its own metric instances.
func (e *Ensemble) WithMetrics(fn func() []Metric) *Ensemble {
	e.newMetrics = fn
	return e
}

func (e *Ensemble) Run(ctx context.Context, cfg Config, input InputFunc) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			rng := rand.New(rand.NewSource(e.seedStart + int64(idx)))
			r := New(constellation.NewEngine(e.params, rng, e.bounds))
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					r.AddMetric(m)
				}
			}

			results[idx], errs[idx] = r.Run(ctx, cfg, input)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
