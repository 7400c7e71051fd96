package sm2

import (
	"fmt"
	"time"
)

// StrugglingMastery is the mastery level below which a reviewed item is
// reported as struggling.
const StrugglingMastery = 30

// Stats summarizes a collection of items at a point in time.
type Stats struct {
	Total      int `json:"total"`
	Unreviewed int `json:"unreviewed"`
	Young      int `json:"young"`
	Mature     int `json:"mature"`
	Mastered   int `json:"mastered"`

	Due        int `json:"due"`      // selectable now
	DueSoon    int `json:"due_soon"` // selectable within the look-ahead window, excluding Due
	Struggling int `json:"struggling"`

	AverageEase     float64 `json:"average_ease"`
	AverageInterval float64 `json:"average_interval"`

	NextDue *time.Time `json:"next_due,omitempty"` // earliest NextReviewAt among non-mastered items
}

// Summarize computes deck statistics at now. soon is the look-ahead window
// for DueSoon. Averages cover reviewed items only and are zero when none
// were reviewed.
func Summarize(items []ReviewItem, now time.Time, soon time.Duration) Stats {
	var (
		st          Stats
		easeSum     float64
		intervalSum int
		reviewed    int
	)
	horizon := now.Add(soon)
	st.Total = len(items)

	for i := range items {
		it := &items[i]
		switch StageOf(*it) {
		case Unreviewed:
			st.Unreviewed++
		case Young:
			st.Young++
		case Mature:
			st.Mature++
		case Mastered:
			st.Mastered++
		}

		if it.ReviewCount > 0 {
			reviewed++
			easeSum += normalizeEase(it.EaseFactor)
			intervalSum += it.IntervalDays
			if it.MasteryLevel < StrugglingMastery {
				st.Struggling++
			}
		}

		if it.IsMastered() {
			continue
		}
		switch {
		case IsDue(*it, now):
			st.Due++
		case IsDue(*it, horizon):
			st.DueSoon++
		}
		if st.NextDue == nil || it.NextReviewAt.Before(*st.NextDue) {
			t := it.NextReviewAt
			st.NextDue = &t
		}
	}

	if reviewed > 0 {
		st.AverageEase = easeSum / float64(reviewed)
		st.AverageInterval = float64(intervalSum) / float64(reviewed)
	}
	return st
}

// Forecast counts the non-mastered items falling due on each of the next
// days UTC calendar days starting with the day of now. Overdue items are
// counted on day 0; items due after the window are not counted.
func Forecast(items []ReviewItem, now time.Time, days int) ([]int, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidForecastDays, days)
	}
	counts := make([]int, days)
	for i := range items {
		if items[i].IsMastered() {
			continue
		}
		d := max(DaysBetween(now, items[i].NextReviewAt), 0)
		if d < days {
			counts[d]++
		}
	}
	return counts, nil
}
