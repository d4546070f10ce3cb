package services

import (
	"testing"
	"time"
)

func TestReminderWindow(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)

	t.Run("MidnightToMidnightInLocalZone", func(t *testing.T) {
		now := time.Date(2026, time.March, 14, 22, 30, 0, 0, ist)
		start, end := reminderWindow(now)

		wantStart := time.Date(2026, time.March, 15, 0, 0, 0, 0, ist)
		wantEnd := time.Date(2026, time.March, 16, 0, 0, 0, 0, ist)
		if !start.Equal(wantStart) {
			t.Errorf("start = %v, want %v", start, wantStart)
		}
		if !end.Equal(wantEnd) {
			t.Errorf("end = %v, want %v", end, wantEnd)
		}
	})

	// Late evening in a zone ahead of UTC is still "today" there even though
	// UTC has already rolled over; the window must follow the local calendar.
	t.Run("ZoneAheadOfUTCKeepsLocalDate", func(t *testing.T) {
		now := time.Date(2026, time.March, 14, 23, 0, 0, 0, ist) // 17:30 UTC
		start, _ := reminderWindow(now)

		if got := start.In(ist).Day(); got != 15 {
			t.Errorf("window starts on local day %d, want 15", got)
		}
		if start.Hour() != 0 || start.Minute() != 0 {
			t.Errorf("window start = %v, want local midnight", start)
		}
	})

	t.Run("MonthRollover", func(t *testing.T) {
		now := time.Date(2026, time.January, 31, 9, 0, 0, 0, time.UTC)
		start, end := reminderWindow(now)

		if !start.Equal(time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("start = %v, want Feb 1 midnight", start)
		}
		if !end.Equal(time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("end = %v, want Feb 2 midnight", end)
		}
	})
}
