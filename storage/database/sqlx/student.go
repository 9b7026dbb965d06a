package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/student"
)

type studentRow struct {
	ID        string      `db:"id"`
	UserID    null.String `db:"user_id"`
	Name      string      `db:"name"`
	Batch     string      `db:"batch"`
	ClassID   string      `db:"class_id"`
	Board     string      `db:"board"`
	CreatedAt time.Time   `db:"created_at"`
	UpdatedAt time.Time   `db:"updated_at"`
}

func (r studentRow) unrow() student.Student {
	return student.Student{
		ID:        r.ID,
		UserID:    r.UserID.String,
		Name:      r.Name,
		Batch:     r.Batch,
		ClassID:   r.ClassID,
		Board:     r.Board,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func unrowStudents(rows []studentRow) []student.Student {
	students := make([]student.Student, 0, len(rows))
	for _, r := range rows {
		students = append(students, r.unrow())
	}
	return students
}

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) *studentRepository {
	return &studentRepository{db: db}
}

func trapStudentNoRows(err error, msg string) error {
	if err == sql.ErrNoRows {
		return student.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo studentRepository) CreateStudent(ctx context.Context, st student.Student) (student.Student, error) {
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO student (id, user_id, name, batch, class_id, board, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		st.ID, null.NewString(st.UserID, st.UserID != ""), st.Name, st.Batch, st.ClassID, st.Board,
		st.CreatedAt, st.UpdatedAt,
	)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	return st, nil
}

func (repo studentRepository) GetStudentByID(ctx context.Context, id string) (student.Student, error) {
	var row studentRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM student WHERE id = $1`, id); err != nil {
		return student.Student{}, trapStudentNoRows(err, "getting student by id")
	}
	return row.unrow(), nil
}

func (repo studentRepository) GetStudentByUserID(ctx context.Context, userID string) (student.Student, error) {
	var row studentRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM student WHERE user_id = $1`, userID); err != nil {
		return student.Student{}, trapStudentNoRows(err, "getting student by user id")
	}
	return row.unrow(), nil
}

func (repo studentRepository) QueryStudents(ctx context.Context, ordering ...core.DBOrdering) ([]student.Student, error) {
	query := `SELECT * FROM student`
	if len(ordering) > 0 {
		clauses := make([]string, 0, len(ordering))
		for _, ord := range ordering {
			clauses = append(clauses, ord.String())
		}
		query += ` ORDER BY ` + strings.Join(clauses, ", ")
	}

	var rows []studentRow
	if err := repo.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return unrowStudents(rows), nil
}

func (repo studentRepository) SearchStudentsByName(ctx context.Context, name string) ([]student.Student, error) {
	var rows []studentRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM student WHERE name ILIKE $1 ORDER BY created_at`, "%"+name+"%")
	if err != nil {
		return nil, errors.Wrap(err, "searching students by name")
	}
	return unrowStudents(rows), nil
}

func (repo studentRepository) CountStudents(ctx context.Context) (int, error) {
	var count int
	if err := repo.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM student`); err != nil {
		return 0, errors.Wrap(err, "counting students")
	}
	return count, nil
}

func (repo studentRepository) UpdateStudent(ctx context.Context, st student.Student) (student.Student, error) {
	_, err := repo.db.ExecContext(ctx,
		`UPDATE student SET name=$2, batch=$3, class_id=$4, board=$5, updated_at=$6 WHERE id = $1`,
		st.ID, st.Name, st.Batch, st.ClassID, st.Board, st.UpdatedAt,
	)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	return st, nil
}

func (repo studentRepository) DeleteStudentsByID(ctx context.Context, ids ...string) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM student WHERE id = ANY($1)`, pq.Array(ids))
	return errors.Wrap(err, "deleting students")
}
