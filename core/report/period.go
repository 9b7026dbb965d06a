package report

import (
	"time"

	"github.com/darasahq/darasa/core"
)

// Named reporting periods.
const (
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

// ResolveWindow computes the inclusive calendar-day window for a named
// period relative to ref. Weeks run Sunday through Saturday. Any
// unrecognized period falls back to the trailing 30 days ending at ref.
// The result depends on ref: two calls on different days may differ.
func ResolveWindow(period string, ref time.Time) core.DateWindow {
	switch period {
	case PeriodWeekly:
		weekStart := ref.AddDate(0, 0, -int(ref.Weekday()))
		return core.DateWindow{From: weekStart, To: weekStart.AddDate(0, 0, 6)}
	case PeriodMonthly:
		monthStart := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		return core.DateWindow{From: monthStart, To: monthStart.AddDate(0, 1, -1)}
	case PeriodYearly:
		return core.DateWindow{
			From: time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, ref.Location()),
			To:   time.Date(ref.Year(), time.December, 31, 0, 0, 0, 0, ref.Location()),
		}
	default:
		return core.DateWindow{From: ref.AddDate(0, 0, -30), To: ref}
	}
}
