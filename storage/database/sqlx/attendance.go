package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/attendance"
)

type attendanceRow struct {
	ID        string    `db:"id"`
	StudentID string    `db:"student_id"`
	Date      time.Time `db:"date"`
	Morning   bool      `db:"morning"`
	Afternoon bool      `db:"afternoon"`
	Evening   bool      `db:"evening"`
	CreatedAt time.Time `db:"created_at"`
}

func (r attendanceRow) unrow() attendance.Record {
	return attendance.Record{
		ID:        r.ID,
		StudentID: r.StudentID,
		Date:      r.Date,
		Morning:   r.Morning,
		Afternoon: r.Afternoon,
		Evening:   r.Evening,
		CreatedAt: r.CreatedAt,
	}
}

func unrowRecords(rows []attendanceRow) []attendance.Record {
	records := make([]attendance.Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.unrow())
	}
	return records
}

type attendanceRepository struct {
	db *sqlx.DB
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *sqlx.DB) *attendanceRepository {
	return &attendanceRepository{db: db}
}

// UpsertRecords relies on the UNIQUE(student_id, date) constraint: a
// conflicting insert overwrites the existing record's slots instead of
// duplicating the day.
func (repo attendanceRepository) UpsertRecords(ctx context.Context, records []attendance.Record) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning attendance tx")
	}
	defer tx.Rollback()

	for _, rec := range records {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO attendance (id, student_id, date, morning, afternoon, evening, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (student_id, date)
			 DO UPDATE SET morning = EXCLUDED.morning, afternoon = EXCLUDED.afternoon, evening = EXCLUDED.evening`,
			rec.ID, rec.StudentID, rec.Date, rec.Morning, rec.Afternoon, rec.Evening, rec.CreatedAt,
		)
		if err != nil {
			return errors.Wrap(err, "upserting attendance record")
		}
	}
	return errors.Wrap(tx.Commit(), "committing attendance tx")
}

func (repo attendanceRepository) QueryByStudent(ctx context.Context, studentID string, window *core.DateWindow, limit int) ([]attendance.Record, error) {
	query := `SELECT * FROM attendance WHERE student_id = $1`
	args := []interface{}{studentID}
	if window != nil {
		query += ` AND date >= $2 AND date <= $3`
		args = append(args, window.FromDay(), window.ToDay())
	}
	query += ` ORDER BY date DESC`
	if limit > 0 {
		args = append(args, limit)
		query += ` LIMIT $` + itoa(len(args))
	}

	var rows []attendanceRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying attendance by student")
	}
	return unrowRecords(rows), nil
}

func (repo attendanceRepository) QueryByWindow(ctx context.Context, window core.DateWindow) ([]attendance.Record, error) {
	var rows []attendanceRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM attendance WHERE date >= $1 AND date <= $2 ORDER BY date DESC`,
		window.FromDay(), window.ToDay())
	if err != nil {
		return nil, errors.Wrap(err, "querying attendance by window")
	}
	return unrowRecords(rows), nil
}

func (repo attendanceRepository) QueryRecent(ctx context.Context, limit int) ([]attendance.Record, error) {
	var rows []attendanceRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM attendance ORDER BY date DESC, created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "querying recent attendance")
	}
	return unrowRecords(rows), nil
}
