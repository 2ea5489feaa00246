package domain

import "time"

// DateFormat is the wire format for all dates in score, market data and
// dividend files.
const DateFormat = "2006-01-02"

// Day truncates a time to midnight UTC. All date math in the engine works
// on whole calendar days.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// DaysBetween returns the number of whole days from one date to another.
// Negative when `to` precedes `from`.
func DaysBetween(from, to time.Time) int {
	return int(Day(to).Sub(Day(from)).Hours() / 24)
}

// FormatDate renders a date in the YYYY-MM-DD wire format.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}
