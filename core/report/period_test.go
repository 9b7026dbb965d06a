package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveWindow(t *testing.T) {
	// Wednesday
	ref := time.Date(2024, time.January, 10, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name     string
		period   string
		ref      time.Time
		wantFrom string
		wantTo   string
	}{
		{name: "weekly starts Sunday", period: PeriodWeekly, ref: ref, wantFrom: "2024-01-07", wantTo: "2024-01-13"},
		{
			name: "weekly on a Sunday", period: PeriodWeekly,
			ref: time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC), wantFrom: "2024-01-07", wantTo: "2024-01-13",
		},
		{
			name: "monthly covers the calendar month", period: PeriodMonthly,
			ref: time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC), wantFrom: "2024-02-01", wantTo: "2024-02-29",
		},
		{
			name: "monthly non-leap", period: PeriodMonthly,
			ref: time.Date(2023, time.February, 15, 0, 0, 0, 0, time.UTC), wantFrom: "2023-02-01", wantTo: "2023-02-28",
		},
		{name: "yearly", period: PeriodYearly, ref: ref, wantFrom: "2024-01-01", wantTo: "2024-12-31"},
		{name: "unknown falls back to trailing 30 days", period: "lol", ref: ref, wantFrom: "2023-12-11", wantTo: "2024-01-10"},
		{name: "empty falls back to trailing 30 days", period: "", ref: ref, wantFrom: "2023-12-11", wantTo: "2024-01-10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := ResolveWindow(tt.period, tt.ref)
			assert.Equal(t, tt.wantFrom, window.FromDay())
			assert.Equal(t, tt.wantTo, window.ToDay())
		})
	}
}

func TestResolveWindowDependsOnRef(t *testing.T) {
	w1 := ResolveWindow(PeriodWeekly, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC))
	w2 := ResolveWindow(PeriodWeekly, time.Date(2024, time.January, 17, 0, 0, 0, 0, time.UTC))
	assert.NotEqual(t, w1.FromDay(), w2.FromDay())
}
