package sm2

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

type fuzzEntry struct {
	start, end float64
	factor     float64
}

var fuzzRanges = []fuzzEntry{
	{2.5, 7.0, 0.15},
	{7.0, 20.0, 0.10},
	{20.0, math.Inf(1), 0.05},
}

// fuzzDelta computes the fuzz range delta for a given interval.
// delta = 1.0 + Σ(factor * max(min(interval, end) - start, 0))
func fuzzDelta(interval float64) float64 {
	delta := 1.0
	for _, r := range fuzzRanges {
		delta += r.factor * math.Max(math.Min(interval, r.end)-r.start, 0)
	}
	return delta
}

// fuzzUnit derives a value in [0, 1) from the item identity and review count.
// The same review of the same item always lands on the same value, which
// keeps fuzzed scheduling reproducible without any shared RNG state.
func fuzzUnit(itemID int64, reviewCount int) float64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(itemID))
	binary.LittleEndian.PutUint64(buf[8:], uint64(reviewCount))
	h := xxhash.Sum64(buf[:])
	return float64(h>>11) / (1 << 53)
}

// applyFuzz spreads an interval over [ivl-delta, ivl+delta] so items added
// together do not stay clustered on the same days.
// Intervals shorter than 3 days are returned unchanged.
func applyFuzz(interval, maxIvl int, u float64) int {
	if interval < 3 {
		return interval
	}

	ivl := float64(interval)
	delta := fuzzDelta(ivl)

	minIvl := max(2, int(math.Round(ivl-delta)))
	maxFuzzIvl := min(int(math.Round(ivl+delta)), maxIvl)
	minIvl = min(minIvl, maxFuzzIvl)

	fuzzed := minIvl + int(u*float64(maxFuzzIvl-minIvl+1))
	return min(fuzzed, maxFuzzIvl)
}
