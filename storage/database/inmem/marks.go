package inmemdb

import (
	"context"
	"sort"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/marks"
)

type marksRepository struct {
	db *markTable
}

var _ marks.Repository = (*marksRepository)(nil)

func NewMarksRepository(db *DB) *marksRepository {
	return &marksRepository{db: db.mark}
}

// query returns marks in insertion order.
func (r *marksRepository) query() []marks.Mark {
	res := make([]marks.Mark, 0, len(r.db.seq))
	for _, id := range r.db.seq {
		if m, ok := r.db.t[id]; ok {
			res = append(res, *m)
		}
	}
	return res
}

func sortByCreatedDesc(mks []marks.Mark) {
	sort.SliceStable(mks, func(i, j int) bool { return mks[i].CreatedAt.After(mks[j].CreatedAt) })
}

func (r *marksRepository) CreateMark(ctx context.Context, m marks.Mark) (marks.Mark, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	r.db.t[m.ID] = &m
	r.db.seq = append(r.db.seq, m.ID)
	return m, nil
}

func (r *marksRepository) UpdateMarkScore(ctx context.Context, id string, score int) (marks.Mark, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	m, ok := r.db.t[id]
	if !ok {
		return marks.Mark{}, marks.ErrNotFound
	}
	m.Score = score
	return *m, nil
}

func (r *marksRepository) GetMarkByKey(ctx context.Context, key marks.Key) (marks.Mark, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	for _, m := range r.query() {
		if m.Key() == key {
			return m, nil
		}
	}
	return marks.Mark{}, marks.ErrNotFound
}

func (r *marksRepository) QueryByStudent(ctx context.Context, studentID string, limit int) ([]marks.Mark, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	var mks []marks.Mark
	for _, m := range r.query() {
		if m.StudentID == studentID {
			mks = append(mks, m)
		}
	}
	sortByCreatedDesc(mks)
	if limit > 0 && len(mks) > limit {
		mks = mks[:limit]
	}
	return mks, nil
}

func (r *marksRepository) QueryRecent(ctx context.Context, limit int) ([]marks.Mark, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	mks := r.query()
	sortByCreatedDesc(mks)
	if limit > 0 && len(mks) > limit {
		mks = mks[:limit]
	}
	return mks, nil
}

func (r *marksRepository) QueryByWindow(ctx context.Context, window core.DateWindow) ([]marks.Mark, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	var mks []marks.Mark
	for _, m := range r.query() {
		if window.Contains(m.CreatedAt) {
			mks = append(mks, m)
		}
	}
	sortByCreatedDesc(mks)
	return mks, nil
}
