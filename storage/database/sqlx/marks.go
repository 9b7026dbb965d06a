package sqlxrepos

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/marks"
)

func itoa(n int) string { return strconv.Itoa(n) }

type markRow struct {
	ID        string    `db:"id"`
	StudentID string    `db:"student_id"`
	ClassID   string    `db:"class_id"`
	Board     string    `db:"board"`
	ExamType  string    `db:"exam_type"`
	SubjectID string    `db:"subject_id"`
	Score     int       `db:"score"`
	CreatedAt time.Time `db:"created_at"`
}

func (r markRow) unrow() marks.Mark {
	return marks.Mark{
		ID:        r.ID,
		StudentID: r.StudentID,
		ClassID:   r.ClassID,
		Board:     r.Board,
		ExamType:  r.ExamType,
		SubjectID: r.SubjectID,
		Score:     r.Score,
		CreatedAt: r.CreatedAt,
	}
}

func unrowMarks(rows []markRow) []marks.Mark {
	mks := make([]marks.Mark, 0, len(rows))
	for _, r := range rows {
		mks = append(mks, r.unrow())
	}
	return mks
}

type marksRepository struct {
	db *sqlx.DB
}

var _ marks.Repository = (*marksRepository)(nil) // interface compliance check

func NewMarksRepository(db *sqlx.DB) *marksRepository {
	return &marksRepository{db: db}
}

func trapMarkNoRows(err error, msg string) error {
	if err == sql.ErrNoRows {
		return marks.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo marksRepository) CreateMark(ctx context.Context, m marks.Mark) (marks.Mark, error) {
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO mark (id, student_id, class_id, board, exam_type, subject_id, score, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, m.StudentID, m.ClassID, m.Board, m.ExamType, m.SubjectID, m.Score, m.CreatedAt,
	)
	if err != nil {
		return marks.Mark{}, errors.Wrap(err, "inserting mark")
	}
	return m, nil
}

func (repo marksRepository) UpdateMarkScore(ctx context.Context, id string, score int) (marks.Mark, error) {
	var row markRow
	err := repo.db.GetContext(ctx, &row,
		`UPDATE mark SET score = $2 WHERE id = $1 RETURNING *`, id, score)
	if err != nil {
		return marks.Mark{}, trapMarkNoRows(err, "updating mark score")
	}
	return row.unrow(), nil
}

func (repo marksRepository) GetMarkByKey(ctx context.Context, key marks.Key) (marks.Mark, error) {
	var row markRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT * FROM mark
		 WHERE student_id = $1 AND class_id = $2 AND board = $3 AND exam_type = $4 AND subject_id = $5`,
		key.StudentID, key.ClassID, key.Board, key.ExamType, key.SubjectID)
	if err != nil {
		return marks.Mark{}, trapMarkNoRows(err, "getting mark by key")
	}
	return row.unrow(), nil
}

func (repo marksRepository) QueryByStudent(ctx context.Context, studentID string, limit int) ([]marks.Mark, error) {
	query := `SELECT * FROM mark WHERE student_id = $1 ORDER BY created_at DESC`
	args := []interface{}{studentID}
	if limit > 0 {
		args = append(args, limit)
		query += ` LIMIT $` + itoa(len(args))
	}

	var rows []markRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying marks by student")
	}
	return unrowMarks(rows), nil
}

func (repo marksRepository) QueryRecent(ctx context.Context, limit int) ([]marks.Mark, error) {
	var rows []markRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM mark ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "querying recent marks")
	}
	return unrowMarks(rows), nil
}

func (repo marksRepository) QueryByWindow(ctx context.Context, window core.DateWindow) ([]marks.Mark, error) {
	var rows []markRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM mark WHERE created_at >= $1 AND created_at < ($2::date + 1) ORDER BY created_at DESC`,
		window.FromDay(), window.ToDay())
	if err != nil {
		return nil, errors.Wrap(err, "querying marks by window")
	}
	return unrowMarks(rows), nil
}
