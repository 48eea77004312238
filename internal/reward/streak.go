package reward

import "time"

// utcDay collapses a timestamp to its UTC calendar day, "YYYY-MM-DD".
// Streak decisions compare these strings, never elapsed durations: a claim
// at 23:59:59Z followed by one at 00:00:00Z is a legitimate consecutive-day
// pair.
func utcDay(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// startOfNextUTCDay returns midnight UTC of the day after t, the earliest
// instant the next claim becomes eligible.
func startOfNextUTCDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day()+1, 0, 0, 0, 0, time.UTC)
}

// NextStreak decides the streak transition for a claim at now given the
// last claim timestamp (nil when the user has never claimed).
//
// Returns (newStreak, eligible):
//   - same UTC day as last claim: eligible=false, streak unchanged
//   - last claim was yesterday:   eligible=true, streak+1
//   - no prior claim or a gap:    eligible=true, streak resets to 1
func NextStreak(now time.Time, last *time.Time, streak int) (int, bool) {
	if last == nil {
		return 1, true
	}

	today := utcDay(now)
	lastDay := utcDay(*last)

	if lastDay == today {
		return streak, false
	}
	if lastDay == utcDay(now.UTC().AddDate(0, 0, -1)) {
		return streak + 1, true
	}
	return 1, true
}
