package sm2

import (
	"encoding/json"
	"fmt"
	"time"
)

// SchedulerConfig configures a Scheduler.
// Zero values produce sensible defaults; see field comments.
type SchedulerConfig struct {
	MaximumInterval int  `json:"maximum_interval"` // zero → 36500
	EnableFuzz      bool `json:"enable_fuzz"`      // applies to Review only
}

// Scheduler computes SM-2 review updates.
// A Scheduler holds only its immutable config and is safe for concurrent use.
type Scheduler struct {
	maximumInterval int
	enableFuzz      bool
}

var defaultScheduler = &Scheduler{maximumInterval: DefaultMaximumInterval}

// NewScheduler creates a Scheduler from the given config.
// Zero-value fields are filled with defaults; invalid values return an error.
func NewScheduler(cfg SchedulerConfig) (*Scheduler, error) {
	if cfg.MaximumInterval == 0 {
		cfg.MaximumInterval = DefaultMaximumInterval
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return &Scheduler{
		maximumInterval: cfg.MaximumInterval,
		enableFuzz:      cfg.EnableFuzz,
	}, nil
}

// Config returns the effective configuration.
func (s *Scheduler) Config() SchedulerConfig {
	return SchedulerConfig{
		MaximumInterval: s.maximumInterval,
		EnableFuzz:      s.enableFuzz,
	}
}

// ComputeNextReview schedules one review using the default Scheduler.
// See (*Scheduler).ComputeNextReview.
func ComputeNextReview(reviewCount int, q Quality, easeFactor float64, intervalDays int, now time.Time) (UpdatedReviewState, error) {
	return defaultScheduler.ComputeNextReview(reviewCount, q, easeFactor, intervalDays, now)
}

// ComputeNextReview returns the scheduling state that follows a review of
// quality q, given the item's review count, ease factor and interval before
// the review.
//
// An easeFactor of 0, NaN or +Inf is treated as absent and replaced by
// DefaultEaseFactor; other values below MinimumEaseFactor are lifted to it.
// reviewCount is bounded to [0, MaxReviewCount]. A quality outside
// [Blackout, Perfect] returns ErrInvalidQuality.
func (s *Scheduler) ComputeNextReview(reviewCount int, q Quality, easeFactor float64, intervalDays int, now time.Time) (UpdatedReviewState, error) {
	if !q.IsValid() {
		return UpdatedReviewState{}, fmt.Errorf("%w: %d", ErrInvalidQuality, int(q))
	}
	ease := normalizeEase(easeFactor)
	reviewCount = normalizeCount(reviewCount)

	var out UpdatedReviewState
	out.ReviewCount = min(reviewCount+1, MaxReviewCount)

	if !q.Passed() {
		out.MasteryLevel = lapseMastery(reviewCount)
		out.EaseFactor = lapseEase(ease)
		out.IntervalDays = clampInterval(firstInterval, s.maximumInterval)
	} else {
		out.EaseFactor = recallEase(ease, q)
		out.IntervalDays = clampInterval(recallInterval(reviewCount, intervalDays, out.EaseFactor), s.maximumInterval)
		out.MasteryLevel = recallMastery(reviewCount, q)
	}

	out.NextReviewAt = AddDays(now, out.IntervalDays)
	return out, nil
}

// Review processes a review of the item at the given time.
// It returns the updated item and a review log. The input item is not mutated.
//
// With EnableFuzz set, intervals of three days or more are spread over a
// small window derived deterministically from the item ID and review count.
func (s *Scheduler) Review(item ReviewItem, q Quality, now time.Time) (ReviewItem, ReviewLog, error) {
	next, err := s.ComputeNextReview(item.ReviewCount, q, item.EaseFactor, item.IntervalDays, now)
	if err != nil {
		return ReviewItem{}, ReviewLog{}, err
	}

	if s.enableFuzz && q.Passed() {
		fuzzed := applyFuzz(next.IntervalDays, s.maximumInterval, fuzzUnit(item.ID, item.ReviewCount))
		if fuzzed != next.IntervalDays {
			next.IntervalDays = fuzzed
			next.NextReviewAt = AddDays(now, fuzzed)
		}
	}

	out := item.Apply(next)
	reviewed := now.UTC()
	out.LastReviewedAt = &reviewed

	log := ReviewLog{
		ItemID:     item.ID,
		Quality:    q,
		ReviewedAt: reviewed,
	}
	return out, log, nil
}

// Preview returns the result of reviewing the item with each possible quality.
func (s *Scheduler) Preview(item ReviewItem, now time.Time) map[Quality]UpdatedReviewState {
	result := make(map[Quality]UpdatedReviewState, len(Qualities))
	for _, q := range Qualities {
		c, _, _ := s.Review(item, q, now)
		result[q] = c.State()
	}
	return result
}

// Reschedule replays the given review logs in order to rebuild the item's
// scheduling state. Returns ErrItemIDMismatch if any log's ItemID does not
// match the item's ID, and ErrInvalidQuality for a log with a bad quality.
func (s *Scheduler) Reschedule(item ReviewItem, logs []ReviewLog) (ReviewItem, error) {
	it := item.clone()
	for i, log := range logs {
		if log.ItemID != it.ID {
			return ReviewItem{}, fmt.Errorf("%w: item %d, log %d", ErrItemIDMismatch, it.ID, log.ItemID)
		}
		var err error
		it, _, err = s.Review(it, log.Quality, log.ReviewedAt)
		if err != nil {
			return ReviewItem{}, fmt.Errorf("replay log %d: %w", i, err)
		}
	}
	return it, nil
}

// MarshalJSON implements json.Marshaler.
func (s *Scheduler) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Config())
}

// UnmarshalJSON implements json.Unmarshaler.
// The config is validated the same way NewScheduler validates it.
func (s *Scheduler) UnmarshalJSON(data []byte) error {
	var cfg SchedulerConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return err
	}
	rebuilt, err := NewScheduler(cfg)
	if err != nil {
		return err
	}
	*s = *rebuilt
	return nil
}
