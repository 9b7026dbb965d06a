package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/darasahq/darasa/core/user"
)

type userRepository struct {
	db *userTable
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *DB) *userRepository {
	return &userRepository{db: db.user}
}

func (r *userRepository) query() []user.User {
	res := make([]user.User, 0, len(r.db.t))
	for _, u := range r.db.t {
		res = append(res, *u)
	}
	return res
}

func (r *userRepository) CheckUsernameUniqueness(ctx context.Context, username, email string, excludedUsers ...user.User) error {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	excluded := make(map[string]bool, len(excludedUsers))
	for _, u := range excludedUsers {
		excluded[u.ID] = true
	}
	for _, usr := range r.query() {
		if excluded[usr.ID] {
			continue
		}
		if usr.Username == username {
			return user.ErrUsernameExists
		}
		if usr.Email == email {
			return user.ErrEmailExists
		}
	}
	return nil
}

func (r *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	r.db.t[usr.ID] = &usr
	return usr, nil
}

func (r *userRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	users := r.query()
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	if usr, ok := r.db.t[id]; ok {
		return *usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (r *userRepository) GetUserByUsernameOrEmail(ctx context.Context, username string) (user.User, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	for _, usr := range r.query() {
		if usr.Username == username || usr.Email == username {
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *userRepository) UpdateUser(ctx context.Context, usr user.User, isActive *bool) (user.User, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	current, ok := r.db.t[usr.ID]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	if usr.Name != "" {
		current.Name = usr.Name
	}
	if usr.Username != "" {
		current.Username = usr.Username
	}
	if usr.Email != "" {
		current.Email = usr.Email
	}
	if usr.Roles != nil {
		current.Roles = usr.Roles
	}
	if len(usr.PasswordHash) > 0 {
		current.PasswordHash = usr.PasswordHash
	}
	if isActive != nil {
		current.IsActive = *isActive
	}
	current.UpdatedAt = usr.UpdatedAt
	return *current, nil
}

func (r *userRepository) SetLastLogin(ctx context.Context, usr user.User) (user.User, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	current, ok := r.db.t[usr.ID]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	current.LastLogin = time.Now().UTC()
	return *current, nil
}

func (r *userRepository) DeleteUsersByID(ctx context.Context, ids ...string) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	for _, id := range ids {
		delete(r.db.t, id)
	}
	return nil
}
