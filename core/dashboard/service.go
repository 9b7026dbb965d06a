package dashboard

import (
	"context"
	"time"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/attendance"
	"github.com/darasahq/darasa/core/marks"
	"github.com/darasahq/darasa/core/report"
	"github.com/darasahq/darasa/core/student"
)

type (
	Stats struct {
		TotalStudents  int `json:"totalStudents"`
		AttendanceRate int `json:"attendanceRate"`
		AverageGrade   int `json:"averageGrade"`
	}

	// AttendanceRow is one recent attendance record joined with its
	// student's name, for the teacher's recent-records table.
	AttendanceRow struct {
		StudentName string `json:"studentName"`
		Class       string `json:"class"`
		Date        string `json:"date"`
		Present     int    `json:"present"`
		Absent      int    `json:"absent"`
		Rate        int    `json:"rate"`
	}

	TeacherData struct {
		Stats            Stats                `json:"stats"`
		RecentAttendance []AttendanceRow      `json:"recentAttendance"`
		RecentMarks      []marks.GroupAverage `json:"recentMarks"`
		BySlot           attendance.BySlot    `json:"attendanceBySlot"`
	}

	StudentData struct {
		Summary          attendance.Summary     `json:"attendanceSummary"`
		RecentAttendance []attendance.DailyRate `json:"recentAttendance"`
		RecentMarks      []marks.Mark           `json:"recentMarks"`
	}

	Service struct {
		students *student.Service
		att      *attendance.Service
		mks      *marks.Service
		conf     *core.Config

		nowFunc func() time.Time // mockable
	}
)

func NewService(students *student.Service, att *attendance.Service, mks *marks.Service, conf *core.Config) *Service {
	return &Service{students: students, att: att, mks: mks, conf: conf, nowFunc: time.Now}
}

// Teacher assembles the teacher dashboard: headline stats over the
// current calendar month, recent attendance joined with student names,
// and recent marks grouped by (subject, class, exam type). Any fetch
// failing fails the whole call; there is no partial dashboard.
func (svc *Service) Teacher(ctx context.Context) (TeacherData, error) {
	students, err := svc.students.QueryAll(ctx)
	if err != nil {
		return TeacherData{}, err
	}

	monthWindow := report.ResolveWindow(report.PeriodMonthly, svc.nowFunc())
	records, err := svc.att.QueryByWindow(ctx, monthWindow)
	if err != nil {
		return TeacherData{}, err
	}

	marksWindow := svc.conf.Dashboard.MarksGroupWindow
	if svc.conf.Dashboard.GradeWindow > marksWindow {
		marksWindow = svc.conf.Dashboard.GradeWindow
	}
	recentMarks, err := svc.mks.Recent(ctx, marksWindow)
	if err != nil {
		return TeacherData{}, err
	}

	summary := attendance.Summarize(records)
	data := TeacherData{
		Stats: Stats{
			TotalStudents:  len(students),
			AttendanceRate: summary.Percentage,
			AverageGrade:   marks.Average(recentMarks, svc.conf.Dashboard.GradeWindow),
		},
		BySlot:      summary.BySlot,
		RecentMarks: marks.GroupAverages(recentMarks, svc.conf.Dashboard.MarksGroupWindow, svc.conf.Dashboard.MarksGroupLimit),
	}

	byID := make(map[string]student.Student, len(students))
	for _, st := range students {
		byID[st.ID] = st
	}
	limit := svc.conf.Dashboard.RecentLimit
	if len(records) < limit {
		limit = len(records)
	}
	data.RecentAttendance = make([]AttendanceRow, 0, limit)
	for _, rec := range records[:limit] { // records come most recent first
		name, class := "Unknown", "Unknown"
		if st, ok := byID[rec.StudentID]; ok {
			name, class = st.Name, st.ClassID
		}
		rate := attendance.RecordRate(rec)
		data.RecentAttendance = append(data.RecentAttendance, AttendanceRow{
			StudentName: name,
			Class:       class,
			Date:        rate.Date,
			Present:     rate.Present,
			Absent:      rate.Absent,
			Rate:        rate.Rate,
		})
	}
	return data, nil
}

// Student assembles a student's own dashboard from their most recent
// attendance and marks.
func (svc *Service) Student(ctx context.Context, studentID string) (StudentData, error) {
	if _, err := svc.students.GetByID(ctx, studentID); err != nil {
		return StudentData{}, err
	}

	limit := svc.conf.Dashboard.RecentLimit
	records, err := svc.att.QueryByStudent(ctx, studentID, nil, limit)
	if err != nil {
		return StudentData{}, err
	}
	recentMarks, err := svc.mks.QueryByStudent(ctx, studentID, limit)
	if err != nil {
		return StudentData{}, err
	}

	data := StudentData{
		Summary:          attendance.Summarize(records),
		RecentAttendance: make([]attendance.DailyRate, 0, len(records)),
		RecentMarks:      recentMarks,
	}
	for _, rec := range records {
		data.RecentAttendance = append(data.RecentAttendance, attendance.RecordRate(rec))
	}
	return data, nil
}
