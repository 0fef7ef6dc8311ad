package clock

import "time"

// Date is a civil calendar date with no time-of-day or zone attached
type Date struct {
	Year  int
	Month int
	Day   int
}

// DateOf extracts the civil date components from t (already projected into the
// desired zone by the caller)
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: int(m), Day: d}
}

// DayOfWeek returns the weekday of the date, independent of any clock/zone
func (d Date) DayOfWeek() time.Weekday {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

// IsWeekend reports whether the date falls on Saturday or Sunday
func (d Date) IsWeekend() bool {
	w := d.DayOfWeek()
	return w == time.Saturday || w == time.Sunday
}

// Equal reports whether two dates denote the same day
func (d Date) Equal(o Date) bool { return d == o }

// String renders the date as YYYY-MM-DD
func (d Date) String() string {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}
