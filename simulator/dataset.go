package simulator

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sky-flux/sm2"
)

var (
	// ErrEmptyLogs is returned when no review logs are provided.
	ErrEmptyLogs = errors.New("simulator: no review logs provided")

	// ErrInsufficientLogs is returned when fewer than MinLogs review logs are provided.
	ErrInsufficientLogs = errors.New("simulator: not enough review logs to estimate a distribution")

	// ErrInvalidDistribution is returned when probabilities are negative or do not sum to 1.
	ErrInvalidDistribution = errors.New("simulator: invalid quality distribution")
)

// MinLogs is the smallest log count EstimateDistribution accepts.
const MinLogs = 50

// Distribution describes how a learner answers.
// Probabilities are indexed by sm2.Quality and each row sums to 1.
type Distribution struct {
	First [6]float64       `json:"first"` // answers on an item's first review
	Later [6]float64       `json:"later"` // answers on every later review
	Costs [6]time.Duration `json:"costs"` // average time spent per answer
}

// DefaultDistribution models a typical learner: shaky on first sight,
// mostly confident afterwards.
var DefaultDistribution = Distribution{
	First: [6]float64{0.10, 0.10, 0.10, 0.25, 0.25, 0.20},
	Later: [6]float64{0.03, 0.03, 0.04, 0.20, 0.40, 0.30},
	Costs: [6]time.Duration{
		15 * time.Second, 12 * time.Second, 10 * time.Second,
		8 * time.Second, 6 * time.Second, 4 * time.Second,
	},
}

// Validate checks that both probability rows are well formed.
func (d Distribution) Validate() error {
	rows := []struct {
		name string
		p    [6]float64
	}{{"first", d.First}, {"later", d.Later}}
	for _, row := range rows {
		var sum float64
		for q, p := range row.p {
			if p < 0 || math.IsNaN(p) {
				return fmt.Errorf("%w: %s[%d] = %f", ErrInvalidDistribution, row.name, q, p)
			}
			sum += p
		}
		if math.Abs(sum-1) > 1e-6 {
			return fmt.Errorf("%w: %s sums to %f", ErrInvalidDistribution, row.name, sum)
		}
	}
	return nil
}

// formatLogs groups review logs by item ID and sorts each group by time.
func formatLogs(logs []sm2.ReviewLog) map[int64][]sm2.ReviewLog {
	if len(logs) == 0 {
		return nil
	}

	groups := make(map[int64][]sm2.ReviewLog)
	for _, log := range logs {
		groups[log.ItemID] = append(groups[log.ItemID], log)
	}
	for _, g := range groups {
		sort.SliceStable(g, func(i, j int) bool {
			return g[i].ReviewedAt.Before(g[j].ReviewedAt)
		})
	}
	return groups
}

// EstimateDistribution derives answer probabilities and costs from logs.
//
// The earliest log of each item counts towards First, all others towards
// Later. When the logs hold no later reviews, Later falls back to
// DefaultDistribution.Later. Costs average the logs that carry a Duration;
// qualities without any fall back to DefaultDistribution.Costs.
func EstimateDistribution(logs []sm2.ReviewLog) (Distribution, error) {
	if len(logs) == 0 {
		return Distribution{}, ErrEmptyLogs
	}
	if len(logs) < MinLogs {
		return Distribution{}, fmt.Errorf("%w: %d < %d", ErrInsufficientLogs, len(logs), MinLogs)
	}

	var (
		firstCount, laterCount [6]float64
		firstTotal, laterTotal float64
		durSum                 [6]time.Duration
		durCount               [6]int64
	)

	for _, g := range formatLogs(logs) {
		for i, log := range g {
			q := log.Quality
			if !q.IsValid() {
				return Distribution{}, fmt.Errorf("item %d: %w: %d", log.ItemID, sm2.ErrInvalidQuality, int(q))
			}
			if i == 0 {
				firstCount[q]++
				firstTotal++
			} else {
				laterCount[q]++
				laterTotal++
			}
			if log.Duration != nil {
				durSum[q] += *log.Duration
				durCount[q]++
			}
		}
	}

	d := DefaultDistribution
	for q := range firstCount {
		d.First[q] = firstCount[q] / firstTotal
	}
	if laterTotal > 0 {
		for q := range laterCount {
			d.Later[q] = laterCount[q] / laterTotal
		}
	}
	for q := range durCount {
		if durCount[q] > 0 {
			d.Costs[q] = durSum[q] / time.Duration(durCount[q])
		}
	}
	return d, nil
}
