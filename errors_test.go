package sm2

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		ErrInvalidQuality,
		ErrInvalidBatchSize,
		ErrInvalidConfig,
		ErrItemIDMismatch,
		ErrInvalidForecastDays,
	}
	for _, err := range sentinels {
		if err == nil {
			t.Fatal("sentinel error is nil")
		}
		if !strings.HasPrefix(err.Error(), "sm2: ") {
			t.Errorf("%q should start with %q", err, "sm2: ")
		}
	}
}

func TestSentinelErrorsIsCheck(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", ErrInvalidQuality)
	if !errors.Is(wrapped, ErrInvalidQuality) {
		t.Error("errors.Is(wrapped, ErrInvalidQuality) = false, want true")
	}
	if errors.Is(wrapped, ErrInvalidBatchSize) {
		t.Error("errors.Is(wrapped, ErrInvalidBatchSize) = true, want false")
	}
}
