package sm2

import "time"

// ReviewItem holds the scheduling state of one vocabulary item.
// The caller owns ReviewItem values; this package only reads them and
// returns derived copies.
type ReviewItem struct {
	ID             int64      `json:"id" yaml:"id"`
	ReviewCount    int        `json:"review_count" yaml:"review_count"`
	MasteryLevel   int        `json:"mastery_level" yaml:"mastery_level"`
	EaseFactor     float64    `json:"ease_factor" yaml:"ease_factor"` // 0 means absent (DefaultEaseFactor).
	IntervalDays   int        `json:"interval_days" yaml:"interval_days"`
	NextReviewAt   time.Time  `json:"next_review_at" yaml:"next_review_at"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty" yaml:"last_reviewed_at,omitempty"` // nil before first review.
}

// UpdatedReviewState is the result of scheduling one review.
// It mirrors the mutable subset of ReviewItem.
type UpdatedReviewState struct {
	ReviewCount  int       `json:"review_count"`
	MasteryLevel int       `json:"mastery_level"`
	EaseFactor   float64   `json:"ease_factor"`
	IntervalDays int       `json:"interval_days"`
	NextReviewAt time.Time `json:"next_review_at"`
}

// NewItem creates an unreviewed item that is due immediately at now.
func NewItem(id int64, now time.Time) ReviewItem {
	return ReviewItem{
		ID:           id,
		EaseFactor:   DefaultEaseFactor,
		NextReviewAt: now.UTC(),
	}
}

// Apply returns a copy of the item with the scheduling result merged in.
// The receiver is not modified.
func (it ReviewItem) Apply(u UpdatedReviewState) ReviewItem {
	out := it.clone()
	out.ReviewCount = u.ReviewCount
	out.MasteryLevel = u.MasteryLevel
	out.EaseFactor = u.EaseFactor
	out.IntervalDays = u.IntervalDays
	out.NextReviewAt = u.NextReviewAt
	return out
}

// State returns the scheduling fields of the item.
func (it ReviewItem) State() UpdatedReviewState {
	return UpdatedReviewState{
		ReviewCount:  it.ReviewCount,
		MasteryLevel: it.MasteryLevel,
		EaseFactor:   it.EaseFactor,
		IntervalDays: it.IntervalDays,
		NextReviewAt: it.NextReviewAt,
	}
}

// IsMastered reports whether the item reached the mastery ceiling.
func (it ReviewItem) IsMastered() bool {
	return it.MasteryLevel >= MaxMasteryLevel
}

// clone returns a deep copy of the item.
func (it ReviewItem) clone() ReviewItem {
	out := it
	if it.LastReviewedAt != nil {
		v := *it.LastReviewedAt
		out.LastReviewedAt = &v
	}
	return out
}
