package student

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/user"
)

var ErrNotFound = errors.New("student not found")

type (
	Repository interface {
		CreateStudent(ctx context.Context, st Student) (Student, error)
		GetStudentByID(ctx context.Context, id string) (Student, error)
		GetStudentByUserID(ctx context.Context, userID string) (Student, error)
		QueryStudents(ctx context.Context, ordering ...core.DBOrdering) ([]Student, error)
		// SearchStudentsByName does a case-insensitive partial match on Name.
		SearchStudentsByName(ctx context.Context, name string) ([]Student, error)
		CountStudents(ctx context.Context) (int, error)
		UpdateStudent(ctx context.Context, st Student) (Student, error)
		DeleteStudentsByID(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo   Repository
		usrSvc *user.Service
	}
)

func NewService(repo Repository, usrSvc *user.Service) *Service {
	return &Service{repo: repo, usrSvc: usrSvc}
}

// Create registers a student. When the payload carries credentials, a
// student login account is created first and linked via UserID; the
// account creation failing fails the whole registration.
func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	now := time.Now().UTC()
	st := Student{
		ID:        uuid.New().String(),
		Name:      core.CleanString(ns.Name),
		Batch:     core.CleanString(ns.Batch),
		ClassID:   core.CleanString(ns.ClassID),
		Board:     core.CleanString(ns.Board),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if ns.Email != "" && ns.Password != "" {
		usr, err := svc.usrSvc.Create(ctx, user.NewUser{
			Name:     ns.Name,
			Username: ns.Email,
			Email:    ns.Email,
			Password: ns.Password,
			Roles:    []string{user.RoleStudent},
		})
		if err != nil {
			return Student{}, err
		}
		st.UserID = usr.ID
	}

	return svc.repo.CreateStudent(ctx, st)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

// GetByUserID resolves a logged-in student account to its registry entry.
func (svc *Service) GetByUserID(ctx context.Context, userID string) (Student, error) {
	return svc.repo.GetStudentByUserID(ctx, userID)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryStudents(ctx, core.DBOrdering{Field: "name", Ascending: true})
}

// Query lists students with a caller-supplied ordering.
func (svc *Service) Query(ctx context.Context, ordering ...core.DBOrdering) ([]Student, error) {
	return svc.repo.QueryStudents(ctx, ordering...)
}

func (svc *Service) Count(ctx context.Context) (int, error) {
	return svc.repo.CountStudents(ctx)
}

func (svc *Service) SearchByName(ctx context.Context, name string) ([]Student, error) {
	return svc.repo.SearchStudentsByName(ctx, core.CleanString(name))
}

// FindIDsByName satisfies marks.StudentDirectory: a case-insensitive
// partial-name search returning all matching IDs, in store order.
func (svc *Service) FindIDsByName(ctx context.Context, name string) ([]string, error) {
	students, err := svc.SearchByName(ctx, name)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(students))
	for _, st := range students {
		ids = append(ids, st.ID)
	}
	return ids, nil
}

func (svc *Service) Update(ctx context.Context, id string, us UpdateStudent) (Student, error) {
	st, err := svc.repo.GetStudentByID(ctx, id)
	if err != nil {
		return Student{}, err
	}
	st.Name = core.CleanString(us.Name)
	st.Batch = core.CleanString(us.Batch)
	st.ClassID = core.CleanString(us.ClassID)
	st.Board = core.CleanString(us.Board)
	st.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateStudent(ctx, st)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteStudentsByID(ctx, ids...)
}
