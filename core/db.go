package core

import "time"

type DBOrdering struct {
	Field     string
	Ascending bool
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}

const dayFormat = "2006-01-02"

// DateWindow is an inclusive [From, To] calendar-day range.
// Repositories compare against its day-formatted bounds.
type DateWindow struct {
	From time.Time
	To   time.Time
}

func (w DateWindow) FromDay() string { return w.From.Format(dayFormat) }
func (w DateWindow) ToDay() string   { return w.To.Format(dayFormat) }

// Contains reports whether day t falls within the window, bounds included.
func (w DateWindow) Contains(t time.Time) bool {
	day := t.Format(dayFormat)
	return day >= w.FromDay() && day <= w.ToDay()
}

// FormatDay renders t as a calendar-day string, the storage format for dates.
func FormatDay(t time.Time) string {
	return t.Format(dayFormat)
}

// ParseDay parses a calendar-day string back into a time.Time (UTC, midnight).
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(dayFormat, s, time.UTC)
}
