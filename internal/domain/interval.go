package domain

import (
	"errors"
	"time"
)

var (
	ErrIntervalInverted  = errors.New("interval end before start")
	ErrIntervalBadTime   = errors.New("interval time bound is not HH:MM")
	ErrIntervalEmptyTime = errors.New("interval end time not after start time")
)

const minutesPerDay = 24 * 60

// TimeInterval is a day-granular rental window [StartAt..EndAt] with
// optional clock-time bounds for same-day precision. StartTime applies to
// the first day, EndTime to the last day, both as "15:04" strings.
type TimeInterval struct {
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	StartTime *string   `json:"start_time,omitempty"`
	EndTime   *string   `json:"end_time,omitempty"`
}

func (iv TimeInterval) StartDate() time.Time { return dateOnly(iv.StartAt) }
func (iv TimeInterval) EndDate() time.Time   { return dateOnly(iv.EndAt) }

func (iv TimeInterval) Validate() error {
	if iv.EndDate().Before(iv.StartDate()) {
		return ErrIntervalInverted
	}
	startMin, err := parseClock(iv.StartTime)
	if err != nil {
		return ErrIntervalBadTime
	}
	endMin, err := parseClock(iv.EndTime)
	if err != nil {
		return ErrIntervalBadTime
	}
	if iv.StartDate().Equal(iv.EndDate()) && startMin >= 0 && endMin >= 0 && endMin <= startMin {
		return ErrIntervalEmptyTime
	}
	return nil
}

// Overlaps reports whether two intervals conflict. Day ranges are compared
// first; when the ranges share more than one day the intervals always
// conflict. When exactly one day is shared, minute-of-day ranges on that
// day decide, with half-open semantics so back-to-back slots do not
// collide. A side missing the relevant time bound counts as occupying the
// whole day: false positives are preferred over a double-booking.
func (iv TimeInterval) Overlaps(other TimeInterval) bool {
	lo := maxDate(iv.StartDate(), other.StartDate())
	hi := minDate(iv.EndDate(), other.EndDate())
	if hi.Before(lo) {
		return false
	}
	if lo.Before(hi) {
		return true
	}

	aStart, aEnd := iv.minutesOn(lo)
	bStart, bEnd := other.minutesOn(lo)
	return aStart < bEnd && aEnd > bStart
}

// minutesOn returns the minute-of-day range the interval occupies on day d.
// Bounds only narrow the range on the interval's own first/last day.
func (iv TimeInterval) minutesOn(d time.Time) (int, int) {
	start, end := 0, minutesPerDay
	if d.Equal(iv.StartDate()) {
		if m, err := parseClock(iv.StartTime); err == nil && m >= 0 {
			start = m
		}
	}
	if d.Equal(iv.EndDate()) {
		if m, err := parseClock(iv.EndTime); err == nil && m >= 0 {
			end = m
		}
	}
	return start, end
}

// parseClock returns minutes since midnight, or -1 for an absent bound.
func parseClock(s *string) (int, error) {
	if s == nil || *s == "" {
		return -1, nil
	}
	t, err := time.Parse("15:04", *s)
	if err != nil {
		return -1, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
