package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, _ := time.ParseInLocation("2006-01-02", s, time.UTC)
	return t
}

func record(date string, m, a, e bool) Record {
	return Record{StudentID: "std1", Date: day(date), Morning: m, Afternoon: a, Evening: e}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
		want    Summary
	}{
		{name: "no records", records: nil, want: Summary{}},
		{
			name:    "all present",
			records: []Record{record("2024-01-01", true, true, true)},
			want: Summary{
				Present: 3, Absent: 0, Percentage: 100,
				BySlot: BySlot{
					Morning:   SlotCount{Present: 1},
					Afternoon: SlotCount{Present: 1},
					Evening:   SlotCount{Present: 1},
				},
			},
		},
		{
			name:    "all absent",
			records: []Record{record("2024-01-01", false, false, false)},
			want: Summary{
				Present: 0, Absent: 3, Percentage: 0,
				BySlot: BySlot{
					Morning:   SlotCount{Absent: 1},
					Afternoon: SlotCount{Absent: 1},
					Evening:   SlotCount{Absent: 1},
				},
			},
		},
		{
			name: "mixed slots",
			records: []Record{
				record("2024-01-01", true, true, false),
				record("2024-01-02", true, false, false),
			},
			// 3 present of 6 slots
			want: Summary{
				Present: 3, Absent: 3, Percentage: 50,
				BySlot: BySlot{
					Morning:   SlotCount{Present: 2},
					Afternoon: SlotCount{Present: 1, Absent: 1},
					Evening:   SlotCount{Absent: 2},
				},
			},
		},
		{
			name: "rounding",
			records: []Record{
				record("2024-01-01", true, false, false),
				record("2024-01-02", true, false, false),
			},
			// 2/6 = 33.33.. -> 33
			want: Summary{
				Present: 2, Absent: 4, Percentage: 33,
				BySlot: BySlot{
					Morning:   SlotCount{Present: 2},
					Afternoon: SlotCount{Absent: 2},
					Evening:   SlotCount{Absent: 2},
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.records)
			assert.Equal(t, tt.want, got)

			// every slot is accounted for exactly once
			assert.Equal(t, len(tt.records)*slotsPerDay, got.Present+got.Absent)
			assert.GreaterOrEqual(t, got.Percentage, 0)
			assert.LessOrEqual(t, got.Percentage, 100)
		})
	}
}

func TestDaySummarize(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
		want    DaySummary
	}{
		{name: "no records", records: nil, want: DaySummary{}},
		{
			name:    "2 of 3 slots counts present",
			records: []Record{record("2024-01-01", true, true, false)},
			want:    DaySummary{PresentDays: 1, Rate: 100},
		},
		{
			name:    "1 of 3 slots counts absent",
			records: []Record{record("2024-01-01", true, false, false)},
			want:    DaySummary{AbsentDays: 1},
		},
		{
			name: "mixed days",
			records: []Record{
				record("2024-01-01", true, true, true),
				record("2024-01-02", false, true, true),
				record("2024-01-03", false, false, true),
			},
			// 2 of 3 days present -> 67%
			want: DaySummary{PresentDays: 2, AbsentDays: 1, Rate: 67},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaySummarize(tt.records))
		})
	}
}

// The two presence definitions disagree on purpose: a 1-of-3 day adds a
// present slot to the slot-sum Summary but counts fully absent day-level.
func TestSummarizeAndDaySummarizeDiffer(t *testing.T) {
	records := []Record{record("2024-01-01", true, false, false)}

	assert.Equal(t, 33, Summarize(records).Percentage)
	assert.Equal(t, 0, DaySummarize(records).Rate)
}

func TestRecordRate(t *testing.T) {
	got := RecordRate(record("2024-03-05", true, true, false))
	assert.Equal(t, DailyRate{Date: "2024-03-05", Present: 2, Absent: 1, Rate: 67}, got)
}

func TestByDate(t *testing.T) {
	records := []Record{
		record("2024-01-02", true, false, false),
		record("2024-01-01", true, true, true),
		{StudentID: "std2", Date: day("2024-01-02"), Morning: true, Afternoon: true},
	}

	got := ByDate(records)

	want := []DayStat{
		{Date: "2024-01-01", Present: 3, Absent: 0, Total: 3},
		{Date: "2024-01-02", Present: 3, Absent: 3, Total: 6},
	}
	assert.Equal(t, want, got)
}

func TestByDateEmpty(t *testing.T) {
	assert.Empty(t, ByDate(nil))
}
