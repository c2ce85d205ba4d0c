package analytics

import "time"

// DaysInMonth returns the number of days of month in year, or 0 for an invalid month.
func DaysInMonth(month, year int) int {
	if month < 1 || month > 12 {
		return 0
	}
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
