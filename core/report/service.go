package report

import (
	"context"
	"errors"
	"time"

	"github.com/darasahq/darasa/core/attendance"
	"github.com/darasahq/darasa/core/marks"
)

// Report kinds.
const (
	KindAttendance = "attendance"
	KindMarks      = "marks"
)

var ErrUnknownKind = errors.New("unknown report kind")

type (
	AttendanceData struct {
		Period  string               `json:"period"`
		From    string               `json:"from"`
		To      string               `json:"to"`
		Summary attendance.Summary   `json:"summary"`
		ByDate  []attendance.DayStat `json:"byDate"`
	}

	MarksData struct {
		Period     string                `json:"period"`
		From       string                `json:"from"`
		To         string                `json:"to"`
		BySubject  []marks.SubjectAverage `json:"bySubject"`
		ByExamType []marks.ExamTypeCount  `json:"byExamType"`
	}

	Service struct {
		att *attendance.Service
		mks *marks.Service

		nowFunc func() time.Time // mockable
	}
)

func NewService(att *attendance.Service, mks *marks.Service) *Service {
	return &Service{att: att, mks: mks, nowFunc: time.Now}
}

// Attendance builds the period's attendance report: resolve the window,
// fetch its records, aggregate. A fetch failure surfaces immediately;
// no partial report is produced.
func (svc *Service) Attendance(ctx context.Context, period string) (AttendanceData, error) {
	window := ResolveWindow(period, svc.nowFunc())
	records, err := svc.att.QueryByWindow(ctx, window)
	if err != nil {
		return AttendanceData{}, err
	}
	return AttendanceData{
		Period:  period,
		From:    window.FromDay(),
		To:      window.ToDay(),
		Summary: attendance.Summarize(records),
		ByDate:  attendance.ByDate(records),
	}, nil
}

// Marks builds the period's marks report, windowed on created_at.
func (svc *Service) Marks(ctx context.Context, period string) (MarksData, error) {
	window := ResolveWindow(period, svc.nowFunc())
	mks, err := svc.mks.QueryByWindow(ctx, window)
	if err != nil {
		return MarksData{}, err
	}
	return MarksData{
		Period:     period,
		From:       window.FromDay(),
		To:         window.ToDay(),
		BySubject:  marks.AveragesBySubject(mks),
		ByExamType: marks.CountByExamType(mks),
	}, nil
}
