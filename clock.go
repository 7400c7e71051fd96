package sm2

import "time"

// Day is the unit of every scheduling interval. Days are fixed 24h spans
// measured in UTC, so results do not shift with local DST changes.
const Day = 24 * time.Hour

// Clock supplies the current time to outer callers such as review sessions.
// The scheduling functions themselves never consult a Clock.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock in UTC.
var SystemClock Clock = ClockFunc(func() time.Time { return time.Now().UTC() })

// FixedClock returns a Clock that always reports t.
func FixedClock(t time.Time) Clock {
	t = t.UTC()
	return ClockFunc(func() time.Time { return t })
}

// AddDays returns t moved n whole days forward, in UTC.
func AddDays(t time.Time, n int) time.Time {
	return t.UTC().Add(time.Duration(n) * Day)
}

// StartOfDay truncates t to UTC midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts UTC calendar days from a to b. It is negative when b
// falls on an earlier day than a.
func DaysBetween(a, b time.Time) int {
	return int(StartOfDay(b).Sub(StartOfDay(a)) / Day)
}
