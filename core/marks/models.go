package marks

import "time"

// Mark is one student's score for one (class, board, exam type, subject)
// combination. At most one Mark exists per such combination per student;
// resubmitting the combination overwrites the score in place. The
// uniqueness is enforced by a check-then-write in the service, not by a
// storage constraint.
type Mark struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	ClassID   string    `json:"class_id"`
	Board     string    `json:"board"`
	ExamType  string    `json:"exam_type"`
	SubjectID string    `json:"subject_id"`
	Score     int       `json:"marks"` // integer in [0,100]
	CreatedAt time.Time `json:"created_at"`
}

// Key is the natural key a Mark is unique on.
type Key struct {
	StudentID string
	ClassID   string
	Board     string
	ExamType  string
	SubjectID string
}

func (m Mark) Key() Key {
	return Key{
		StudentID: m.StudentID,
		ClassID:   m.ClassID,
		Board:     m.Board,
		ExamType:  m.ExamType,
		SubjectID: m.SubjectID,
	}
}

type SubjectAverage struct {
	Subject string `json:"subject"`
	Average int    `json:"average"`
}

// GroupAverage is the dashboard summary row: scores averaged per
// (subject, class, exam type) over a bounded recent window.
type GroupAverage struct {
	Subject  string `json:"subject"`
	Class    string `json:"class"`
	ExamType string `json:"exam_type"`
	Average  int    `json:"avg_score"`
	Count    int    `json:"count"`
}

type ExamTypeCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// UploadedRecord is one row's outcome in a CSV upload ledger. It exists
// only for the duration of the upload and is never persisted.
type UploadedRecord struct {
	StudentName string `json:"student_name"`
	Score       string `json:"marks"`
	Status      string `json:"status"` // StatusSuccess or StatusError
	Error       string `json:"error,omitempty"`
}

type UploadResult struct {
	Succeeded int              `json:"successCount"`
	Failed    int              `json:"errorCount"`
	Ledger    []UploadedRecord `json:"records"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)
