package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/attendance"
	"github.com/darasahq/darasa/core/marks"
	"github.com/darasahq/darasa/core/student"
	inmemdb "github.com/darasahq/darasa/storage/database/inmem"
	testutil "github.com/darasahq/darasa/tests"
)

type deps struct {
	svc     *Service
	stdRepo student.Repository
	attRepo attendance.Repository
	mksRepo marks.Repository
}

func setup(t *testing.T) deps {
	db := testutil.OpenDB(t)
	stdRepo := inmemdb.NewStudentRepository(db)
	attRepo := inmemdb.NewAttendanceRepository(db)
	mksRepo := inmemdb.NewMarksRepository(db)

	stdSvc := student.NewService(stdRepo, nil)
	svc := NewService(
		stdSvc,
		attendance.NewService(attRepo),
		marks.NewService(mksRepo, stdSvc),
		testutil.NewConfig(),
	)
	svc.nowFunc = func() time.Time {
		return time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
	}
	return deps{svc: svc, stdRepo: stdRepo, attRepo: attRepo, mksRepo: mksRepo}
}

func TestService_Teacher(t *testing.T) {
	d := setup(t)
	ctx := context.Background()

	john := testutil.CreateStudent(t, d.stdRepo, "John Doe", "2024", "Class A", "CBSE")
	jane := testutil.CreateStudent(t, d.stdRepo, "Jane Roe", "2024", "Class B", "CBSE")

	// January records; the stats window is the current calendar month
	testutil.CreateAttendance(t, d.attRepo, john.ID, "2024-01-08", true, true, false)
	testutil.CreateAttendance(t, d.attRepo, jane.ID, "2024-01-09", true, false, false)
	testutil.CreateAttendance(t, d.attRepo, "ghost", "2024-01-10", false, false, false)
	// outside the month, must not count
	testutil.CreateAttendance(t, d.attRepo, john.ID, "2023-12-20", true, true, true)

	base := time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)
	testutil.CreateMark(t, d.mksRepo, john.ID, "Class A", "CBSE", "midterm", "math", 80, base)
	testutil.CreateMark(t, d.mksRepo, jane.ID, "Class A", "CBSE", "midterm", "math", 90, base.Add(time.Hour))
	testutil.CreateMark(t, d.mksRepo, john.ID, "Class A", "CBSE", "final", "science", 70, base.Add(2*time.Hour))

	data, err := d.svc.Teacher(ctx)
	require.NoError(t, err)

	assert.Equal(t, Stats{TotalStudents: 2, AttendanceRate: 33, AverageGrade: 80}, data.Stats)
	assert.Equal(t, attendance.BySlot{
		Morning:   attendance.SlotCount{Present: 2, Absent: 1},
		Afternoon: attendance.SlotCount{Present: 1, Absent: 2},
		Evening:   attendance.SlotCount{Present: 0, Absent: 3},
	}, data.BySlot)

	// most recent first, with the unknown student's record still listed
	require.Len(t, data.RecentAttendance, 3)
	assert.Equal(t, AttendanceRow{
		StudentName: "Unknown", Class: "Unknown",
		Date: "2024-01-10", Present: 0, Absent: 3, Rate: 0,
	}, data.RecentAttendance[0])
	assert.Equal(t, AttendanceRow{
		StudentName: "Jane Roe", Class: "Class B",
		Date: "2024-01-09", Present: 1, Absent: 2, Rate: 33,
	}, data.RecentAttendance[1])
	assert.Equal(t, AttendanceRow{
		StudentName: "John Doe", Class: "Class A",
		Date: "2024-01-08", Present: 2, Absent: 1, Rate: 67,
	}, data.RecentAttendance[2])

	// grouped by (subject, class, exam type) in recency order
	require.Len(t, data.RecentMarks, 2)
	assert.Equal(t, marks.GroupAverage{Subject: "science", Class: "Class A", ExamType: "final", Average: 70, Count: 1}, data.RecentMarks[0])
	assert.Equal(t, marks.GroupAverage{Subject: "math", Class: "Class A", ExamType: "midterm", Average: 85, Count: 2}, data.RecentMarks[1])
}

func TestService_TeacherEmpty(t *testing.T) {
	d := setup(t)

	data, err := d.svc.Teacher(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{}, data.Stats)
	assert.Empty(t, data.RecentAttendance)
	assert.Empty(t, data.RecentMarks)
}

func TestService_TeacherFetchFailure(t *testing.T) {
	d := setup(t)
	d.svc.att = attendance.NewService(failingAttendanceRepo{})

	_, err := d.svc.Teacher(context.Background())
	require.Error(t, err)
	assert.Equal(t, errBoom, errors.Cause(err))
}

func TestService_Student(t *testing.T) {
	d := setup(t)
	ctx := context.Background()

	john := testutil.CreateStudent(t, d.stdRepo, "John Doe", "2024", "Class A", "CBSE")
	testutil.CreateAttendance(t, d.attRepo, john.ID, "2024-01-08", true, true, false)
	testutil.CreateAttendance(t, d.attRepo, john.ID, "2024-01-05", false, false, false)
	testutil.CreateMark(t, d.mksRepo, john.ID, "Class A", "CBSE", "midterm", "math", 85)

	data, err := d.svc.Student(ctx, john.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, data.Summary.Present)
	assert.Equal(t, 4, data.Summary.Absent)
	assert.Equal(t, 33, data.Summary.Percentage)

	require.Len(t, data.RecentAttendance, 2)
	assert.Equal(t, attendance.DailyRate{Date: "2024-01-08", Present: 2, Absent: 1, Rate: 67}, data.RecentAttendance[0])
	assert.Equal(t, attendance.DailyRate{Date: "2024-01-05", Present: 0, Absent: 3, Rate: 0}, data.RecentAttendance[1])

	require.Len(t, data.RecentMarks, 1)
	assert.Equal(t, 85, data.RecentMarks[0].Score)
}

func TestService_StudentNotFound(t *testing.T) {
	d := setup(t)

	_, err := d.svc.Student(context.Background(), "nope")
	require.Error(t, err)
	assert.Equal(t, student.ErrNotFound, errors.Cause(err))
}

var errBoom = errors.New("boom")

type failingAttendanceRepo struct{}

var _ attendance.Repository = failingAttendanceRepo{}

func (failingAttendanceRepo) UpsertRecords(context.Context, []attendance.Record) error {
	return errBoom
}
func (failingAttendanceRepo) QueryByStudent(context.Context, string, *core.DateWindow, int) ([]attendance.Record, error) {
	return nil, errBoom
}
func (failingAttendanceRepo) QueryByWindow(context.Context, core.DateWindow) ([]attendance.Record, error) {
	return nil, errBoom
}
func (failingAttendanceRepo) QueryRecent(context.Context, int) ([]attendance.Record, error) {
	return nil, errBoom
}
