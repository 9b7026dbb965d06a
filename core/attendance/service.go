package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/darasahq/darasa/core"
)

var ErrNotFound = errors.New("attendance record not found")

type (
	// Entry is one day's attendance input for one student.
	Entry struct {
		StudentID string `json:"student_id" validate:"required"`
		Date      string `json:"date" validate:"required"` // calendar day, YYYY-MM-DD
		Morning   bool   `json:"morning"`
		Afternoon bool   `json:"afternoon"`
		Evening   bool   `json:"evening"`
	}

	Repository interface {
		// UpsertRecords inserts records, overwriting the slots of any existing
		// record with the same (student_id, date).
		UpsertRecords(ctx context.Context, records []Record) error
		// QueryByStudent returns a student's records, most recent date first.
		// A nil window means no date filtering; limit <= 0 means no limit.
		QueryByStudent(ctx context.Context, studentID string, window *core.DateWindow, limit int) ([]Record, error)
		QueryByWindow(ctx context.Context, window core.DateWindow) ([]Record, error)
		QueryRecent(ctx context.Context, limit int) ([]Record, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Mark writes one attendance entry per student for the given day.
// Existing records for the same (student, date) are overwritten, not duplicated.
func (svc *Service) Mark(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return core.NewValidationError(errors.New("no attendance entries provided"))
	}

	now := time.Now().UTC()
	records := make([]Record, 0, len(entries))
	for _, entry := range entries {
		if entry.StudentID == "" {
			return core.NewValidationError(nil, core.FieldError{Field: "student_id", Error: "this field is required"})
		}
		date, err := core.ParseDay(entry.Date)
		if err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "date", Error: "must be a YYYY-MM-DD calendar day"})
		}
		records = append(records, Record{
			ID:        uuid.New().String(),
			StudentID: entry.StudentID,
			Date:      date,
			Morning:   entry.Morning,
			Afternoon: entry.Afternoon,
			Evening:   entry.Evening,
			CreatedAt: now,
		})
	}
	return svc.repo.UpsertRecords(ctx, records)
}

func (svc *Service) QueryByStudent(ctx context.Context, studentID string, window *core.DateWindow, limit int) ([]Record, error) {
	return svc.repo.QueryByStudent(ctx, studentID, window, limit)
}

func (svc *Service) QueryByWindow(ctx context.Context, window core.DateWindow) ([]Record, error) {
	return svc.repo.QueryByWindow(ctx, window)
}

func (svc *Service) Recent(ctx context.Context, limit int) ([]Record, error) {
	return svc.repo.QueryRecent(ctx, limit)
}
