package simulator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/sky-flux/sm2"
)

// ErrInvalidConfig is returned for negative config values or a negative deck size.
var ErrInvalidConfig = errors.New("simulator: invalid config")

// Observer receives every simulated review. metrics.Recorder satisfies it.
type Observer interface {
	ObserveReview(q sm2.Quality, next sm2.UpdatedReviewState)
}

// Config configures a simulation run.
// Zero values are replaced with sensible defaults.
type Config struct {
	Days         int           `json:"days"`         // default 30
	NewPerDay    int           `json:"new_per_day"`  // default 10
	BatchSize    int           `json:"batch_size"`   // default 100
	Seed         int64         `json:"seed"`         // default 42
	Distribution *Distribution `json:"distribution"` // nil → DefaultDistribution
}

// DayResult is the outcome of one simulated day.
type DayResult struct {
	Date     time.Time     `json:"date"`
	New      int           `json:"new"`      // items introduced this day
	Reviewed int           `json:"reviewed"` // reviews answered, including first reviews
	Lapses   int           `json:"lapses"`   // reviews answered below sm2.PassingQuality
	Backlog  int           `json:"backlog"`  // items still due after the batch
	Mastered int           `json:"mastered"` // mastered items at the end of the day
	Time     time.Duration `json:"time"`     // estimated answering time
}

// Result aggregates a simulation run.
type Result struct {
	Days     []DayResult      `json:"days"`
	Reviews  int              `json:"reviews"`
	Lapses   int              `json:"lapses"`
	Mastered int              `json:"mastered"` // mastered items at the end of the run
	Time     time.Duration    `json:"time"`
	Items    []sm2.ReviewItem `json:"-"` // final deck state
}

// Simulator plays a deck forward in time.
type Simulator struct {
	days      int
	newPerDay int
	batchSize int
	seed      int64
	dist      Distribution
	scheduler *sm2.Scheduler
	observer  Observer
}

// New creates a Simulator. A nil scheduler uses sm2 defaults and a nil
// observer disables review callbacks.
func New(cfg Config, s *sm2.Scheduler, obs Observer) (*Simulator, error) {
	if cfg.Days < 0 || cfg.NewPerDay < 0 || cfg.BatchSize < 0 {
		return nil, fmt.Errorf("%w: days=%d new_per_day=%d batch_size=%d",
			ErrInvalidConfig, cfg.Days, cfg.NewPerDay, cfg.BatchSize)
	}

	sim := &Simulator{
		days:      cfg.Days,
		newPerDay: cfg.NewPerDay,
		batchSize: cfg.BatchSize,
		seed:      cfg.Seed,
		dist:      DefaultDistribution,
		scheduler: s,
		observer:  obs,
	}
	if sim.days == 0 {
		sim.days = 30
	}
	if sim.newPerDay == 0 {
		sim.newPerDay = 10
	}
	if sim.batchSize == 0 {
		sim.batchSize = 100
	}
	if sim.seed == 0 {
		sim.seed = 42
	}
	if cfg.Distribution != nil {
		if err := cfg.Distribution.Validate(); err != nil {
			return nil, err
		}
		sim.dist = *cfg.Distribution
	}
	if sim.scheduler == nil {
		var err error
		if sim.scheduler, err = sm2.NewScheduler(sm2.SchedulerConfig{}); err != nil {
			return nil, err
		}
	}
	return sim, nil
}

// Run simulates deckSize items introduced NewPerDay at a time from start.
// Each day selects at most BatchSize due items and answers them with
// qualities sampled from the distribution. The context is checked between
// days. On any error the days and items simulated so far are returned with it.
func (sim *Simulator) Run(ctx context.Context, deckSize int, start time.Time) (Result, error) {
	if deckSize < 0 {
		return Result{}, fmt.Errorf("%w: deck size %d", ErrInvalidConfig, deckSize)
	}

	rng := rand.New(rand.NewSource(sim.seed))
	items := make([]sm2.ReviewItem, 0, deckSize)
	res := Result{Days: make([]DayResult, 0, sim.days)}

	for day := 0; day < sim.days; day++ {
		if err := ctx.Err(); err != nil {
			res.Items = items
			return res, err
		}

		now := sm2.AddDays(start, day)
		dr := DayResult{Date: now}

		for n := 0; n < sim.newPerDay && len(items) < deckSize; n++ {
			items = append(items, sm2.NewItem(int64(len(items)+1), now))
			dr.New++
		}

		if len(items) > 0 {
			batch, err := sm2.SelectDueItems(items, now, sim.batchSize)
			if err != nil {
				res.Items = items
				return res, err
			}
			for _, i := range batch {
				row := sim.dist.Later
				if items[i].ReviewCount == 0 {
					row = sim.dist.First
				}
				q := sample(rng, row)

				next, _, err := sim.scheduler.Review(items[i], q, now)
				if err != nil {
					res.Items = items
					return res, err
				}
				items[i] = next

				dr.Reviewed++
				dr.Time += sim.dist.Costs[q]
				if !q.Passed() {
					dr.Lapses++
				}
				if sim.observer != nil {
					sim.observer.ObserveReview(q, next.State())
				}
			}
		}

		st := sm2.Summarize(items, now, 0)
		dr.Backlog = st.Due
		dr.Mastered = st.Mastered

		res.Days = append(res.Days, dr)
		res.Reviews += dr.Reviewed
		res.Lapses += dr.Lapses
		res.Time += dr.Time
		res.Mastered = dr.Mastered
	}

	res.Items = items
	return res, nil
}

// sample draws a quality from a probability row.
func sample(rng *rand.Rand, row [6]float64) sm2.Quality {
	p := rng.Float64()
	var acc float64
	for q, w := range row {
		acc += w
		if p < acc {
			return sm2.Quality(q)
		}
	}
	// Rounding can leave acc a hair below 1; fall back to the last non-zero entry.
	for q := len(row) - 1; q >= 0; q-- {
		if row[q] > 0 {
			return sm2.Quality(q)
		}
	}
	return sm2.Perfect
}
