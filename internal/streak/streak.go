// Package streak implements the daily completion streak state machine. It
// owns the engine's notion of a calendar day; selection and snapshot keys
// are derived from the same helpers so "today" means the same thing
// everywhere.
package streak

import "time"

// Result is the outcome of advancing a streak by one submission.
type Result struct {
	CurrentStreak int
	LongestStreak int
	Maintained    bool
	IsNewRecord   bool
}

// Advance applies a submission happening at now to a streak whose previous
// submission happened at lastActive (nil when the user has never submitted).
// Timestamps are compared as calendar days in loc:
//
//	no prior submission      -> streak starts at 1
//	same day                 -> unchanged
//	previous day             -> streak + 1
//	two or more days ago     -> broken, restart at 1
//
// Maintained is false only on the broken transition. IsNewRecord reports a
// strictly higher current streak than the stored record; LongestStreak in
// the result already includes the update.
func Advance(lastActive *time.Time, now time.Time, currentStreak, longestStreak int, loc *time.Location) Result {
	res := Result{Maintained: true}

	switch {
	case lastActive == nil:
		res.CurrentStreak = 1
	default:
		delta := DayNumber(now, loc) - DayNumber(*lastActive, loc)
		switch {
		case delta <= 0:
			res.CurrentStreak = currentStreak
		case delta == 1:
			res.CurrentStreak = currentStreak + 1
		default:
			res.CurrentStreak = 1
			res.Maintained = false
		}
	}

	res.LongestStreak = longestStreak
	if res.CurrentStreak > longestStreak {
		res.LongestStreak = res.CurrentStreak
		res.IsNewRecord = true
	}
	return res
}

// DayNumber maps an instant to a whole day count since the Unix epoch, as
// observed in loc. Subtracting two day numbers gives the calendar-day gap
// regardless of DST transitions between them.
func DayNumber(t time.Time, loc *time.Location) int {
	y, m, d := t.In(loc).Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// DayKey formats an instant as its YYYY-MM-DD calendar day in loc. Daily
// selection and snapshot rows are keyed by this string.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}
