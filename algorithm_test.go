package sm2

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertFloat(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %.6f, want %.6f (diff %.6f)", name, got, want, math.Abs(got-want))
	}
}

// --- ease ---

func TestNormalizeEase(t *testing.T) {
	assertFloat(t, "normalizeEase(0)", normalizeEase(0), DefaultEaseFactor)
	assertFloat(t, "normalizeEase(1.0)", normalizeEase(1.0), MinimumEaseFactor)
	assertFloat(t, "normalizeEase(-3)", normalizeEase(-3), MinimumEaseFactor)
	assertFloat(t, "normalizeEase(1.3)", normalizeEase(1.3), 1.3)
	assertFloat(t, "normalizeEase(2.8)", normalizeEase(2.8), 2.8)
	assertFloat(t, "normalizeEase(NaN)", normalizeEase(math.NaN()), DefaultEaseFactor)
	assertFloat(t, "normalizeEase(+Inf)", normalizeEase(math.Inf(1)), DefaultEaseFactor)
	assertFloat(t, "normalizeEase(-Inf)", normalizeEase(math.Inf(-1)), MinimumEaseFactor)
}

func TestNormalizeCount(t *testing.T) {
	tests := []struct{ in, want int }{
		{-1, 0},
		{math.MinInt, 0},
		{0, 0},
		{7, 7},
		{MaxReviewCount, MaxReviewCount},
		{math.MaxInt, MaxReviewCount},
	}
	for _, tt := range tests {
		if got := normalizeCount(tt.in); got != tt.want {
			t.Errorf("normalizeCount(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRecallEase(t *testing.T) {
	// d = 5 - q; delta = 0.1 - d*(0.08 + d*0.02)
	// Perfect: d=0 → +0.1, Hesitant: d=1 → 0, Difficult: d=2 → -0.14.
	assertFloat(t, "Perfect", recallEase(2.5, Perfect), 2.6)
	assertFloat(t, "Hesitant", recallEase(2.5, Hesitant), 2.5)
	assertFloat(t, "Difficult", recallEase(2.5, Difficult), 2.36)
}

func TestRecallEaseFloor(t *testing.T) {
	assertFloat(t, "Difficult at floor", recallEase(MinimumEaseFactor, Difficult), MinimumEaseFactor)
	assertFloat(t, "Difficult near floor", recallEase(1.4, Difficult), MinimumEaseFactor)
}

func TestLapseEase(t *testing.T) {
	assertFloat(t, "lapseEase(2.5)", lapseEase(2.5), 2.3)
	assertFloat(t, "lapseEase(1.4)", lapseEase(1.4), MinimumEaseFactor)
	assertFloat(t, "lapseEase(1.3)", lapseEase(1.3), MinimumEaseFactor)
}

// --- interval ---

func TestRecallInterval(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		interval int
		ease     float64
		want     int
	}{
		{"first review", 0, 0, 2.6, 1},
		{"first review ignores interval", 0, 40, 2.6, 1},
		{"second review", 1, 1, 2.7, 6},
		{"third review", 2, 6, 2.5, 15},
		{"rounds half up", 3, 5, 2.5, 13},
		{"rounds down", 3, 15, 2.36, 35},
		{"zero interval", 2, 0, 2.5, 0}, // floored later by clampInterval
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := recallInterval(tt.count, tt.interval, tt.ease); got != tt.want {
				t.Errorf("recallInterval(%d, %d, %v) = %d, want %d",
					tt.count, tt.interval, tt.ease, got, tt.want)
			}
		})
	}
}

func TestRecallIntervalNoOverflow(t *testing.T) {
	got := recallInterval(5, math.MaxInt32, 3.0)
	if got != math.MaxInt32 {
		t.Errorf("recallInterval(huge) = %d, want %d", got, math.MaxInt32)
	}
}

func TestClampInterval(t *testing.T) {
	if got := clampInterval(0, 100); got != 1 {
		t.Errorf("clampInterval(0) = %d, want 1", got)
	}
	if got := clampInterval(-4, 100); got != 1 {
		t.Errorf("clampInterval(-4) = %d, want 1", got)
	}
	if got := clampInterval(500, 100); got != 100 {
		t.Errorf("clampInterval(500, 100) = %d, want 100", got)
	}
	if got := clampInterval(42, 100); got != 42 {
		t.Errorf("clampInterval(42, 100) = %d, want 42", got)
	}
}

// --- mastery ---

func TestRecallMastery(t *testing.T) {
	tests := []struct {
		count int
		q     Quality
		want  int
	}{
		{0, Perfect, 40},
		{1, Perfect, 55},
		{0, Difficult, 30},
		{4, Hesitant, 95},
		{5, Difficult, 100}, // 105 capped
		{30, Perfect, 100},
	}
	for _, tt := range tests {
		if got := recallMastery(tt.count, tt.q); got != tt.want {
			t.Errorf("recallMastery(%d, %v) = %d, want %d", tt.count, tt.q, got, tt.want)
		}
	}
}

func TestLapseMastery(t *testing.T) {
	// Uses the pre-review count: n*10 - 10, clamped to [0, 100].
	tests := []struct {
		count int
		want  int
	}{
		{0, 0},
		{1, 0},
		{2, 10},
		{3, 20},
		{11, 100},
		{50, 100},
	}
	for _, tt := range tests {
		if got := lapseMastery(tt.count); got != tt.want {
			t.Errorf("lapseMastery(%d) = %d, want %d", tt.count, got, tt.want)
		}
	}
}
