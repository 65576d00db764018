package depreciation

import "time"

// MonthStart returns midnight UTC on the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd returns midnight UTC on the last day of t's month.
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, -1)
}

// IsEndOfMonth reports whether t falls on the last day of its month.
func IsEndOfMonth(t time.Time) bool {
	return t.Day() == MonthEnd(t).Day()
}

// DaysInMonth returns the number of days in t's month.
func DaysInMonth(t time.Time) int {
	return MonthEnd(t).Day()
}

// ClampDay clamps a configured day-of-month (1-31) to the length of t's
// month, so a day-31 schedule fires on Feb 28/29.
func ClampDay(day int, t time.Time) int {
	if max := DaysInMonth(t); day > max {
		return max
	}
	if day < 1 {
		return 1
	}
	return day
}

// AddMonthClamped advances t by n calendar months, clamping the day to the
// target month's length instead of letting it roll over (Jan 31 + 1 month
// is Feb 28, not Mar 3).
func AddMonthClamped(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, n, 0)
	day := t.Day()
	if max := DaysInMonth(first); day > max {
		day = max
	}
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// MonthsBetween returns the number of full calendar months from a to b.
// A partial month (b's day-of-month before a's) does not count.
func MonthsBetween(a, b time.Time) int {
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if b.Day() < a.Day() && !IsEndOfMonth(b) {
		months--
	}
	return months
}
