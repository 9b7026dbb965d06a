package attendance

import (
	"sort"

	"github.com/darasahq/darasa/core"
)

// Two presence definitions coexist in this package and must stay separate:
// Summarize counts every slot independently (teacher-facing tallies), while
// DaySummarize counts a whole day present only on 2-of-3 slots
// (student-facing history). Merging them would silently change the meaning
// of one of the two views.

const slotsPerDay = 3

// Summarize reduces records to the slot-sum Summary.
// It never fails: an empty input yields a zero-valued Summary.
func Summarize(records []Record) Summary {
	var sum Summary
	for _, rec := range records {
		tally(&sum.BySlot.Morning, rec.Morning)
		tally(&sum.BySlot.Afternoon, rec.Afternoon)
		tally(&sum.BySlot.Evening, rec.Evening)
		sum.Present += rec.PresentSlots()
	}
	totalSlots := len(records) * slotsPerDay
	sum.Absent = totalSlots - sum.Present
	if totalSlots > 0 {
		sum.Percentage = core.Round(float64(sum.Present) / float64(totalSlots) * 100)
	}
	return sum
}

func tally(c *SlotCount, present bool) {
	if present {
		c.Present++
	} else {
		c.Absent++
	}
}

// DaySummarize reduces records to the day-level DaySummary: a day is
// present iff at least 2 of its 3 slots are present.
// It never fails: an empty input yields a zero-valued DaySummary.
func DaySummarize(records []Record) DaySummary {
	var sum DaySummary
	for _, rec := range records {
		if rec.PresentSlots() >= 2 {
			sum.PresentDays++
		} else {
			sum.AbsentDays++
		}
	}
	if len(records) > 0 {
		sum.Rate = core.Round(float64(sum.PresentDays) / float64(len(records)) * 100)
	}
	return sum
}

// RecordRate reduces one record to its own slot counts and rate.
func RecordRate(rec Record) DailyRate {
	present := rec.PresentSlots()
	return DailyRate{
		Date:    core.FormatDay(rec.Date),
		Present: present,
		Absent:  slotsPerDay - present,
		Rate:    core.Round(float64(present) / slotsPerDay * 100),
	}
}

// ByDate groups records into per-date slot tallies, ascending by date.
func ByDate(records []Record) []DayStat {
	byDay := make(map[string]*DayStat)
	for _, rec := range records {
		day := core.FormatDay(rec.Date)
		stat, ok := byDay[day]
		if !ok {
			stat = &DayStat{Date: day}
			byDay[day] = stat
		}
		stat.Total += slotsPerDay
		present := rec.PresentSlots()
		stat.Present += present
		stat.Absent += slotsPerDay - present
	}

	stats := make([]DayStat, 0, len(byDay))
	for _, stat := range byDay {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Date < stats[j].Date })
	return stats
}
