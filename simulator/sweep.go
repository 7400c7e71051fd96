package simulator

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sky-flux/sm2"
)

// Sweep runs one simulation per seed, at most workers at a time, and
// returns the results in seed order. workers ≤ 0 uses GOMAXPROCS.
// cfg.Seed is ignored. The observer, if any, is called from several
// goroutines.
func Sweep(ctx context.Context, cfg Config, s *sm2.Scheduler, obs Observer, seeds []int64, workers, deckSize int, start time.Time) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	sims := make([]*Simulator, len(seeds))
	for i, seed := range seeds {
		c := cfg
		c.Seed = seed
		sim, err := New(c, s, obs)
		if err != nil {
			return nil, err
		}
		sims[i] = sim
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	results := make([]Result, len(seeds))
	for i, sim := range sims {
		i, sim := i, sim
		g.Go(func() error {
			res, err := sim.Run(ctx, deckSize, start)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seeds[i], err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Mean averages the totals of several runs. Days and Items are left empty.
func Mean(results []Result) Result {
	if len(results) == 0 {
		return Result{}
	}
	var m Result
	for _, r := range results {
		m.Reviews += r.Reviews
		m.Lapses += r.Lapses
		m.Mastered += r.Mastered
		m.Time += r.Time
	}
	n := len(results)
	m.Reviews /= n
	m.Lapses /= n
	m.Mastered /= n
	m.Time /= time.Duration(n)
	return m
}
