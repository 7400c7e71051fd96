package sm2

import "fmt"

// SM-2 model constants.
const (
	DefaultEaseFactor = 2.5 // ease of a new item, and of an item whose ease is absent (0)
	MinimumEaseFactor = 1.3 // floor that no computed ease ever goes below
	LapseEasePenalty  = 0.2 // flat ease drop after a failed recall

	MaxMasteryLevel = 100 // mastery ceiling; items at it are never selected

	// DefaultMaximumInterval caps scheduled intervals at roughly 100 years.
	DefaultMaximumInterval = 36500

	// MaxReviewCount is where review counts saturate. Negative counts are
	// read as 0 and a count at the limit stays there after another review.
	MaxReviewCount = 1_000_000
)

// Interval steps applied to the first two successful reviews.
const (
	firstInterval  = 1
	secondInterval = 6
)

// validateConfig checks a config after defaults have been applied.
func validateConfig(cfg SchedulerConfig) error {
	if cfg.MaximumInterval < 1 {
		return fmt.Errorf("%w: maximum interval %d must be positive",
			ErrInvalidConfig, cfg.MaximumInterval)
	}
	return nil
}
