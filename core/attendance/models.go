package attendance

import (
	"time"
)

// Record is one student's attendance for one calendar day, split into
// three presence slots. At most one Record exists per (student, date);
// the storage layer upserts on that key.
type Record struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	Date      time.Time `json:"date"` // calendar day; time component is ignored
	Morning   bool      `json:"morning"`
	Afternoon bool      `json:"afternoon"`
	Evening   bool      `json:"evening"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

// PresentSlots counts the slots marked present on this record.
func (r Record) PresentSlots() int {
	var n int
	for _, present := range []bool{r.Morning, r.Afternoon, r.Evening} {
		if present {
			n++
		}
	}
	return n
}

type SlotCount struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
}

type BySlot struct {
	Morning   SlotCount `json:"morning"`
	Afternoon SlotCount `json:"afternoon"`
	Evening   SlotCount `json:"evening"`
}

// Summary is the slot-sum aggregate of a set of Records: every slot of
// every record counts as one present/absent observation.
type Summary struct {
	Present    int    `json:"present"`
	Absent     int    `json:"absent"`
	Percentage int    `json:"percentage"` // always in [0,100]; 0 when no records
	BySlot     BySlot `json:"bySlot"`
}

// DaySummary is the day-level aggregate of a set of Records: a day counts
// as present only when at least 2 of its 3 slots are present.
type DaySummary struct {
	PresentDays int `json:"present_days"`
	AbsentDays  int `json:"absent_days"`
	Rate        int `json:"rate"` // always in [0,100]; 0 when no records
}

// DailyRate is one record reduced to its own present/absent slot counts,
// for recent-history listings.
type DailyRate struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
	Rate    int    `json:"rate"`
}

// DayStat is the per-date slot tally used by report breakdowns.
type DayStat struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
	Total   int    `json:"total"`
}
