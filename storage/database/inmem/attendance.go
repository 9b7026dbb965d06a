package inmemdb

import (
	"context"
	"sort"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/attendance"
)

type attendanceRepository struct {
	db *attendanceTable
}

var _ attendance.Repository = (*attendanceRepository)(nil)

func NewAttendanceRepository(db *DB) *attendanceRepository {
	return &attendanceRepository{db: db.attendance}
}

// upsertKey is the (student_id, date) natural key.
func upsertKey(studentID string, rec attendance.Record) string {
	return studentID + "|" + core.FormatDay(rec.Date)
}

func (r *attendanceRepository) query() []attendance.Record {
	res := make([]attendance.Record, 0, len(r.db.t))
	for _, rec := range r.db.t {
		res = append(res, *rec)
	}
	return res
}

func sortByDateDesc(records []attendance.Record) {
	sort.Slice(records, func(i, j int) bool { return records[i].Date.After(records[j].Date) })
}

func (r *attendanceRepository) UpsertRecords(ctx context.Context, records []attendance.Record) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	for _, rec := range records {
		key := upsertKey(rec.StudentID, rec)
		if existing, ok := r.db.t[key]; ok {
			existing.Morning = rec.Morning
			existing.Afternoon = rec.Afternoon
			existing.Evening = rec.Evening
			continue
		}
		rec := rec
		r.db.t[key] = &rec
	}
	return nil
}

func (r *attendanceRepository) QueryByStudent(ctx context.Context, studentID string, window *core.DateWindow, limit int) ([]attendance.Record, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	var records []attendance.Record
	for _, rec := range r.query() {
		if rec.StudentID != studentID {
			continue
		}
		if window != nil && !window.Contains(rec.Date) {
			continue
		}
		records = append(records, rec)
	}
	sortByDateDesc(records)
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (r *attendanceRepository) QueryByWindow(ctx context.Context, window core.DateWindow) ([]attendance.Record, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	var records []attendance.Record
	for _, rec := range r.query() {
		if window.Contains(rec.Date) {
			records = append(records, rec)
		}
	}
	sortByDateDesc(records)
	return records, nil
}

func (r *attendanceRepository) QueryRecent(ctx context.Context, limit int) ([]attendance.Record, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	records := r.query()
	sortByDateDesc(records)
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
