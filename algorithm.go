package sm2

import "math"

// normalizeEase maps an absent ease (0) to DefaultEaseFactor and lifts any
// sub-floor value to MinimumEaseFactor. NaN and +Inf carry no usable ease
// and are treated as absent.
func normalizeEase(ef float64) float64 {
	if ef == 0 || math.IsNaN(ef) || math.IsInf(ef, 1) {
		return DefaultEaseFactor
	}
	return clampEase(ef)
}

// normalizeCount bounds a review count to [0, MaxReviewCount].
func normalizeCount(n int) int {
	return min(max(n, 0), MaxReviewCount)
}

// recallEase applies the SM-2 ease update for a passing quality.
// EF' = EF + (0.1 - (5-q) * (0.08 + (5-q) * 0.02)), floored at 1.3.
// Perfect adds 0.1, Hesitant keeps EF, Difficult subtracts 0.14.
func recallEase(ef float64, q Quality) float64 {
	d := float64(Perfect - q)
	return clampEase(ef + (0.1 - d*(0.08+d*0.02)))
}

// lapseEase applies the flat penalty for a failed recall.
func lapseEase(ef float64) float64 {
	return clampEase(ef - LapseEasePenalty)
}

// recallInterval computes the interval after a successful review.
// reviewCount is the count before this review; ease is the already updated
// ease factor, so growth reflects the latest recall immediately.
func recallInterval(reviewCount, intervalDays int, ease float64) int {
	switch reviewCount {
	case 0:
		return firstInterval
	case 1:
		return secondInterval
	default:
		// Capped before conversion so huge intervals cannot overflow int.
		return int(math.Min(math.Round(float64(intervalDays)*ease), math.MaxInt32))
	}
}

// recallMastery = min(100, (n+1)*15 + q*5) for pre-review count n.
func recallMastery(reviewCount int, q Quality) int {
	return clampMastery((reviewCount+1)*15 + int(q)*5)
}

// lapseMastery = max(0, n*10 - 10) for pre-review count n.
// The pre-review count is used as is; a first-ever lapse yields 0.
func lapseMastery(reviewCount int) int {
	return clampMastery(reviewCount*10 - 10)
}

// clampInterval bounds an interval to [1, maxIvl].
func clampInterval(days, maxIvl int) int {
	return min(max(days, 1), maxIvl)
}

// clampEase floors the ease factor at MinimumEaseFactor.
func clampEase(ef float64) float64 {
	return math.Max(ef, MinimumEaseFactor)
}

// clampMastery clamps mastery to [0, 100].
func clampMastery(m int) int {
	return min(max(m, 0), MaxMasteryLevel)
}
