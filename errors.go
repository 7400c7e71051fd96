package sm2

import "errors"

// Sentinel errors for the sm2 package.
// Use errors.Is to check: errors.Is(err, sm2.ErrInvalidQuality)
var (
	ErrInvalidQuality      = errors.New("sm2: invalid quality")
	ErrInvalidBatchSize    = errors.New("sm2: batch size must be positive")
	ErrInvalidConfig       = errors.New("sm2: invalid scheduler config")
	ErrItemIDMismatch      = errors.New("sm2: item ID mismatch in review log")
	ErrInvalidForecastDays = errors.New("sm2: forecast days must be positive")
)
