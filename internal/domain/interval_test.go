package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func str(s string) *string { return &s }

func timed(start, end time.Time, from, to string) TimeInterval {
	return TimeInterval{StartAt: start, EndAt: end, StartTime: str(from), EndTime: str(to)}
}

func TestOverlaps_DisjointDateRanges(t *testing.T) {
	a := TimeInterval{StartAt: day(2026, 1, 10), EndAt: day(2026, 1, 12)}
	b := TimeInterval{StartAt: day(2026, 1, 13), EndAt: day(2026, 1, 15)}

	assert.False(t, a.Overlaps(b))
	assert.False(t, b.Overlaps(a))
}

func TestOverlaps_MultiDayIntersection(t *testing.T) {
	a := TimeInterval{StartAt: day(2026, 1, 10), EndAt: day(2026, 1, 14)}
	b := TimeInterval{StartAt: day(2026, 1, 13), EndAt: day(2026, 1, 20)}

	// Two shared days, no time bounds can narrow that.
	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
}

func TestOverlaps_SameDayFullDayIsConservative(t *testing.T) {
	full := TimeInterval{StartAt: day(2026, 1, 10), EndAt: day(2026, 1, 10)}
	slot := timed(day(2026, 1, 10), day(2026, 1, 10), "09:00", "13:00")

	assert.True(t, full.Overlaps(slot))
	assert.True(t, slot.Overlaps(full))
}

func TestOverlaps_SameDayBackToBackSlots(t *testing.T) {
	morning := timed(day(2026, 1, 10), day(2026, 1, 10), "09:00", "13:00")
	afternoon := timed(day(2026, 1, 10), day(2026, 1, 10), "13:00", "17:00")

	// Half-open: touching at 13:00 is not a conflict.
	assert.False(t, morning.Overlaps(afternoon))
	assert.False(t, afternoon.Overlaps(morning))
}

func TestOverlaps_SameDayOneMinuteIntersection(t *testing.T) {
	morning := timed(day(2026, 1, 10), day(2026, 1, 10), "09:00", "13:00")
	late := timed(day(2026, 1, 10), day(2026, 1, 10), "12:59", "14:00")

	assert.True(t, morning.Overlaps(late))
	assert.True(t, late.Overlaps(morning))
}

func TestOverlaps_SharedBoundaryDayWithTimes(t *testing.T) {
	// a vacates the shared day at 10:00, b arrives at 12:00.
	a := timed(day(2026, 1, 8), day(2026, 1, 10), "09:00", "10:00")
	b := timed(day(2026, 1, 10), day(2026, 1, 12), "12:00", "18:00")

	assert.False(t, a.Overlaps(b))
	assert.False(t, b.Overlaps(a))
}

func TestOverlaps_SharedBoundaryDayWithoutTimes(t *testing.T) {
	a := TimeInterval{StartAt: day(2026, 1, 8), EndAt: day(2026, 1, 10)}
	b := TimeInterval{StartAt: day(2026, 1, 10), EndAt: day(2026, 1, 12)}

	// Cannot narrow the shared day, so it counts as a conflict.
	assert.True(t, a.Overlaps(b))
}

func TestOverlaps_SharedBoundaryDayTimesCollide(t *testing.T) {
	a := timed(day(2026, 1, 8), day(2026, 1, 10), "09:00", "14:00")
	b := timed(day(2026, 1, 10), day(2026, 1, 12), "12:00", "18:00")

	assert.True(t, a.Overlaps(b))
}

func TestValidate_InvertedRange(t *testing.T) {
	iv := TimeInterval{StartAt: day(2026, 1, 12), EndAt: day(2026, 1, 10)}
	assert.ErrorIs(t, iv.Validate(), ErrIntervalInverted)
}

func TestValidate_SameDayEmptyTimeWindow(t *testing.T) {
	iv := timed(day(2026, 1, 10), day(2026, 1, 10), "13:00", "13:00")
	assert.ErrorIs(t, iv.Validate(), ErrIntervalEmptyTime)

	iv = timed(day(2026, 1, 10), day(2026, 1, 10), "14:00", "13:00")
	assert.ErrorIs(t, iv.Validate(), ErrIntervalEmptyTime)
}

func TestValidate_BadClockFormat(t *testing.T) {
	iv := TimeInterval{StartAt: day(2026, 1, 10), EndAt: day(2026, 1, 10), StartTime: str("9am")}
	assert.ErrorIs(t, iv.Validate(), ErrIntervalBadTime)
}

func TestValidate_MultiDayWithTimesOK(t *testing.T) {
	// End time before start time is fine across different days.
	iv := timed(day(2026, 1, 10), day(2026, 1, 12), "18:00", "09:00")
	assert.NoError(t, iv.Validate())
}
