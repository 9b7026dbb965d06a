package marks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/darasahq/darasa/core"
)

var ErrNotFound = errors.New("mark not found")

const (
	MinScore = 0
	MaxScore = 100
)

type (
	// NewMark is the manual-entry payload.
	NewMark struct {
		StudentID string `json:"student_id" validate:"required"`
		ClassID   string `json:"class_id" validate:"required"`
		Board     string `json:"board" validate:"required"`
		ExamType  string `json:"exam_type" validate:"required"`
		SubjectID string `json:"subject_id" validate:"required"`
		Score     int    `json:"marks" validate:"min=0,max=100"`
	}

	Repository interface {
		CreateMark(ctx context.Context, m Mark) (Mark, error)
		UpdateMarkScore(ctx context.Context, id string, score int) (Mark, error)
		// GetMarkByKey returns ErrNotFound when no mark matches the key;
		// that is the expected insert path, not a store failure.
		GetMarkByKey(ctx context.Context, key Key) (Mark, error)
		// QueryByStudent returns a student's marks, most recent first.
		// limit <= 0 means no limit.
		QueryByStudent(ctx context.Context, studentID string, limit int) ([]Mark, error)
		QueryRecent(ctx context.Context, limit int) ([]Mark, error)
		// QueryByWindow filters on created_at against the window's day bounds.
		QueryByWindow(ctx context.Context, window core.DateWindow) ([]Mark, error)
	}

	// StudentDirectory resolves human-entered student names to stored IDs.
	StudentDirectory interface {
		// FindIDsByName does a case-insensitive partial-name match and
		// returns all matching student IDs.
		FindIDsByName(ctx context.Context, name string) ([]string, error)
	}

	Service struct {
		repo     Repository
		students StudentDirectory
	}
)

func NewService(repo Repository, students StudentDirectory) *Service {
	return &Service{repo: repo, students: students}
}

func (nm *NewMark) Validate() error {
	return core.Validate.Struct(nm)
}

func validateScore(score int) error {
	if score < MinScore || score > MaxScore {
		return core.NewValidationError(nil, core.FieldError{
			Field: "marks",
			Error: fmt.Sprintf("must be a number between %d and %d", MinScore, MaxScore),
		})
	}
	return nil
}

// Save records a mark, keeping at most one mark per
// (student, class, board, exam type, subject): an existing mark for the
// same combination has its score overwritten, otherwise a new mark is
// inserted. The score is validated before any store access.
func (svc *Service) Save(ctx context.Context, nm NewMark) (Mark, error) {
	if err := validateScore(nm.Score); err != nil {
		return Mark{}, err
	}

	key := Key{
		StudentID: nm.StudentID,
		ClassID:   nm.ClassID,
		Board:     nm.Board,
		ExamType:  nm.ExamType,
		SubjectID: nm.SubjectID,
	}
	existing, err := svc.repo.GetMarkByKey(ctx, key)
	if err == nil {
		return svc.repo.UpdateMarkScore(ctx, existing.ID, nm.Score)
	}
	if err != ErrNotFound {
		return Mark{}, err
	}

	return svc.repo.CreateMark(ctx, Mark{
		ID:        uuid.New().String(),
		StudentID: nm.StudentID,
		ClassID:   nm.ClassID,
		Board:     nm.Board,
		ExamType:  nm.ExamType,
		SubjectID: nm.SubjectID,
		Score:     nm.Score,
		CreatedAt: time.Now().UTC(),
	})
}

func (svc *Service) QueryByStudent(ctx context.Context, studentID string, limit int) ([]Mark, error) {
	return svc.repo.QueryByStudent(ctx, studentID, limit)
}

func (svc *Service) Recent(ctx context.Context, limit int) ([]Mark, error) {
	return svc.repo.QueryRecent(ctx, limit)
}

func (svc *Service) QueryByWindow(ctx context.Context, window core.DateWindow) ([]Mark, error) {
	return svc.repo.QueryByWindow(ctx, window)
}
