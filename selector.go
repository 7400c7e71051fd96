package sm2

import (
	"cmp"
	"fmt"
	"slices"
	"time"
)

// IsDue reports whether the item's review time has been reached at now.
func IsDue(item ReviewItem, now time.Time) bool {
	return !now.Before(item.NextReviewAt)
}

// SelectDueItems picks up to batchSize items that are due at now and returns
// their indices into items, in presentation order.
//
// Mastered items are skipped even when due. The rest are ordered by
// ascending mastery level, then by ascending NextReviewAt; remaining ties keep
// their input order. items is neither modified nor copied.
//
// A batchSize of zero or less returns ErrInvalidBatchSize.
func SelectDueItems(items []ReviewItem, now time.Time, batchSize int) ([]int, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBatchSize, batchSize)
	}

	idx := make([]int, 0, min(len(items), batchSize))
	for i := range items {
		if items[i].IsMastered() || !IsDue(items[i], now) {
			continue
		}
		idx = append(idx, i)
	}

	slices.SortStableFunc(idx, func(a, b int) int {
		if c := cmp.Compare(items[a].MasteryLevel, items[b].MasteryLevel); c != 0 {
			return c
		}
		return items[a].NextReviewAt.Compare(items[b].NextReviewAt)
	})

	if len(idx) > batchSize {
		idx = idx[:batchSize:batchSize]
	}
	return idx, nil
}
