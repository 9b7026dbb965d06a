package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/student"
)

type studentRepository struct {
	db *studentTable
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *DB) *studentRepository {
	return &studentRepository{db: db.student}
}

// query returns students in insertion order.
func (r *studentRepository) query() []student.Student {
	res := make([]student.Student, 0, len(r.db.seq))
	for _, id := range r.db.seq {
		if st, ok := r.db.t[id]; ok {
			res = append(res, *st)
		}
	}
	return res
}

func (r *studentRepository) CreateStudent(ctx context.Context, st student.Student) (student.Student, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	r.db.t[st.ID] = &st
	r.db.seq = append(r.db.seq, st.ID)
	return st, nil
}

func (r *studentRepository) GetStudentByID(ctx context.Context, id string) (student.Student, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	if st, ok := r.db.t[id]; ok {
		return *st, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (r *studentRepository) GetStudentByUserID(ctx context.Context, userID string) (student.Student, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	for _, st := range r.query() {
		if st.UserID == userID {
			return st, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (r *studentRepository) QueryStudents(ctx context.Context, ordering ...core.DBOrdering) ([]student.Student, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	students := r.query()
	for _, ord := range ordering {
		if ord.Field == "name" {
			sort.SliceStable(students, func(i, j int) bool {
				if ord.Ascending {
					return students[i].Name < students[j].Name
				}
				return students[i].Name > students[j].Name
			})
		}
	}
	return students, nil
}

func (r *studentRepository) SearchStudentsByName(ctx context.Context, name string) ([]student.Student, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	needle := strings.ToLower(name)
	var matches []student.Student
	for _, st := range r.query() {
		if strings.Contains(strings.ToLower(st.Name), needle) {
			matches = append(matches, st)
		}
	}
	return matches, nil
}

func (r *studentRepository) CountStudents(ctx context.Context) (int, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()
	return len(r.db.t), nil
}

func (r *studentRepository) UpdateStudent(ctx context.Context, st student.Student) (student.Student, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	if _, ok := r.db.t[st.ID]; !ok {
		return student.Student{}, student.ErrNotFound
	}
	r.db.t[st.ID] = &st
	return st, nil
}

func (r *studentRepository) DeleteStudentsByID(ctx context.Context, ids ...string) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	for _, id := range ids {
		delete(r.db.t, id)
	}
	return nil
}
