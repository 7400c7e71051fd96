package simulator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sky-flux/sm2"
)

type syncCounter struct {
	mu sync.Mutex
	n  int
}

func (c *syncCounter) ObserveReview(sm2.Quality, sm2.UpdatedReviewState) {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

func TestSweepMatchesSequentialRuns(t *testing.T) {
	cfg := Config{Days: 20, NewPerDay: 5}
	seeds := []int64{1, 2, 3, 4}
	obs := &syncCounter{}

	got, err := Sweep(context.Background(), cfg, nil, obs, seeds, 2, 60, t0)
	require.NoError(t, err)
	require.Len(t, got, len(seeds))

	var total int
	for i, seed := range seeds {
		c := cfg
		c.Seed = seed
		want, err := mustSimulator(t, c, nil).Run(context.Background(), 60, t0)
		require.NoError(t, err)
		assert.Equal(t, want, got[i], "seed %d", seed)
		total += want.Reviews
	}
	assert.Equal(t, total, obs.n)
}

func TestSweepInvalidConfig(t *testing.T) {
	_, err := Sweep(context.Background(), Config{BatchSize: -1}, nil, nil, []int64{1}, 0, 10, t0)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSweepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Sweep(ctx, Config{}, nil, nil, []int64{1, 2}, 0, 10, t0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMean(t *testing.T) {
	assert.Equal(t, Result{}, Mean(nil))
	m := Mean([]Result{
		{Reviews: 10, Lapses: 2, Mastered: 1, Time: 10 * time.Second},
		{Reviews: 20, Lapses: 4, Mastered: 3, Time: 30 * time.Second},
	})
	assert.Equal(t, Result{Reviews: 15, Lapses: 3, Mastered: 2, Time: 20 * time.Second}, m)
}
