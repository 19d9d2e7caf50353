package timeutil

import "time"

// DaysIn returns the number of days in the given month, accounting for
// leap years.
func DaysIn(year int, month time.Month) int {
	// Day zero of the following month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ValidDate reports whether year/month/day name a real calendar date.
func ValidDate(year int, month time.Month, day int) bool {
	if month < time.January || month > time.December {
		return false
	}
	return day >= 1 && day <= DaysIn(year, month)
}

// ValidTimeOfDay reports whether hour/minute/second name a real wall-clock
// time. Second 60 is rejected; the daytime source never emits one.
func ValidTimeOfDay(hour, minute, second int) bool {
	return hour >= 0 && hour <= 23 &&
		minute >= 0 && minute <= 59 &&
		second >= 0 && second <= 59
}
