package streak

import (
	"testing"
	"time"
)

var utc = time.UTC

func at(day string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", day)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAdvance_FirstSubmission(t *testing.T) {
	res := Advance(nil, at("2025-03-10 09:00"), 0, 0, utc)
	if res.CurrentStreak != 1 || !res.Maintained || !res.IsNewRecord || res.LongestStreak != 1 {
		t.Errorf("first submission: %+v", res)
	}
}

func TestAdvance_SameDay(t *testing.T) {
	last := at("2025-03-10 09:00")
	res := Advance(&last, at("2025-03-10 21:30"), 4, 6, utc)
	if res.CurrentStreak != 4 {
		t.Errorf("CurrentStreak = %d, want 4 (same day never increments)", res.CurrentStreak)
	}
	if !res.Maintained || res.IsNewRecord {
		t.Errorf("same day: %+v", res)
	}
}

func TestAdvance_NextDay(t *testing.T) {
	last := at("2025-03-10 23:50")
	res := Advance(&last, at("2025-03-11 00:10"), 4, 6, utc)
	if res.CurrentStreak != 5 || !res.Maintained {
		t.Errorf("next day: %+v", res)
	}
	if res.IsNewRecord || res.LongestStreak != 6 {
		t.Errorf("5 < record 6, got %+v", res)
	}
}

func TestAdvance_OneMissedDayBreaks(t *testing.T) {
	last := at("2025-03-10 12:00")
	res := Advance(&last, at("2025-03-12 12:00"), 9, 9, utc)
	if res.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1 after a missed day", res.CurrentStreak)
	}
	if res.Maintained {
		t.Error("Maintained = true, want false after a missed day")
	}
	if res.LongestStreak != 9 {
		t.Errorf("LongestStreak = %d, want 9 (record survives the break)", res.LongestStreak)
	}
}

func TestAdvance_NewRecord(t *testing.T) {
	last := at("2025-03-10 12:00")
	res := Advance(&last, at("2025-03-11 12:00"), 6, 6, utc)
	if !res.IsNewRecord || res.LongestStreak != 7 || res.CurrentStreak != 7 {
		t.Errorf("new record: %+v", res)
	}
}

func TestAdvance_EqualToRecordIsNotNewRecord(t *testing.T) {
	last := at("2025-03-10 12:00")
	res := Advance(&last, at("2025-03-11 12:00"), 5, 6, utc)
	if res.IsNewRecord {
		t.Errorf("streak 6 equals record 6, IsNewRecord must be false: %+v", res)
	}
}

func TestAdvance_CalendarDayNotDuration(t *testing.T) {
	// 23:59 to 00:01 is two minutes apart but crosses a day boundary.
	last := at("2025-03-10 23:59")
	res := Advance(&last, at("2025-03-11 00:01"), 2, 3, utc)
	if res.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3 (day boundary, not 24h window)", res.CurrentStreak)
	}
}

func TestAdvance_TimezoneDecidesTheDay(t *testing.T) {
	// 2025-03-11 03:00 UTC is still 2025-03-10 in UTC-5.
	ny := time.FixedZone("UTC-5", -5*3600)
	last := at("2025-03-10 22:00")
	res := Advance(&last, at("2025-03-11 03:00"), 4, 6, ny)
	if res.CurrentStreak != 4 {
		t.Errorf("CurrentStreak = %d, want 4 (same local day)", res.CurrentStreak)
	}
}

func TestDayNumber_Gap(t *testing.T) {
	a := DayNumber(at("2025-03-10 23:59"), utc)
	b := DayNumber(at("2025-03-12 00:01"), utc)
	if b-a != 2 {
		t.Errorf("day gap = %d, want 2", b-a)
	}
}

func TestDayKey(t *testing.T) {
	got := DayKey(at("2025-03-11 03:00"), time.FixedZone("UTC-5", -5*3600))
	if got != "2025-03-10" {
		t.Errorf("DayKey = %q, want 2025-03-10", got)
	}
}
