package report

import (
	"fmt"
	"strings"
	"time"
)

// Filename stamps a downloadable report name: <kind>_report_<period>_<YYYYMMDD>.csv
func Filename(kind, period string, now time.Time) string {
	return fmt.Sprintf("%s_report_%s_%s.csv", kind, period, now.Format("20060102"))
}

// CSV serializes the by-date attendance breakdown under a fixed header.
func (d AttendanceData) CSV() string {
	var b strings.Builder
	b.WriteString("Date,Present,Absent,Total\n")
	for _, day := range d.ByDate {
		fmt.Fprintf(&b, "%s,%d,%d,%d\n", day.Date, day.Present, day.Absent, day.Total)
	}
	return b.String()
}

// CSV serializes the by-subject marks breakdown under a fixed header.
func (d MarksData) CSV() string {
	var b strings.Builder
	b.WriteString("Subject,Average Marks\n")
	for _, subject := range d.BySubject {
		fmt.Fprintf(&b, "%s,%d\n", subject.Subject, subject.Average)
	}
	return b.String()
}
