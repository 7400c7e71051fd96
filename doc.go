// Package sm2 implements an SM-2 style spaced repetition scheduler for
// vocabulary review.
//
// sm2 provides two pure, stateless components:
//
//   - a Scheduler that turns one review outcome into the item's next ease
//     factor, interval, mastery level and due time;
//   - a selector (IsDue, SelectDueItems) that picks the items due now and
//     orders them so that struggling items come first.
//
// Nothing in this package reads the wall clock. Every operation takes the
// current time as an argument, and all produced timestamps are in UTC with
// a day being exactly 24 hours.
//
// Basic usage:
//
//	item := sm2.NewItem(1, now)
//	next, err := sm2.ComputeNextReview(item.ReviewCount, sm2.Hesitant,
//	    item.EaseFactor, item.IntervalDays, now)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	item = item.Apply(next)
//
//	batch, err := sm2.SelectDueItems(items, now, 20)
package sm2
