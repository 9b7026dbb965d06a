package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/user"
	emailsvc "github.com/darasahq/darasa/services/email"
	inmemdb "github.com/darasahq/darasa/storage/database/inmem"
	testutil "github.com/darasahq/darasa/tests"
)

func setup(t *testing.T) (*user.Service, user.Repository) {
	testutil.InitValidators()

	db := testutil.OpenDB(t)
	repo := inmemdb.NewUserRepository(db)
	conf := testutil.NewConfig()
	return user.NewService(repo, emailsvc.NewConsoleServiceMock(conf), conf), repo
}

func TestService_Create(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	emailsvc.SentMessages = nil
	usr, err := svc.Create(ctx, user.NewUser{
		Name:     "Hero Mav",
		Username: "Hero", // stored lowercased
		Email:    "HERO@test.cd",
		Password: "LePassword#123",
		Roles:    []string{user.RoleTeacher},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, usr.ID)
	assert.Equal(t, "hero", usr.Username)
	assert.Equal(t, "hero@test.cd", usr.Email)
	assert.True(t, usr.IsActive)
	assert.NoError(t, usr.CheckPassword("LePassword#123"))
	require.Len(t, emailsvc.SentMessages, 1)
	assert.Equal(t, usr.Email, emailsvc.SentMessages[0].To[0].Address)
}

func TestService_CreateUniqueness(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	testutil.CreateUser(t, repo, "Hero", "hero", "hero@test.cd", "", nil, true)

	_, err := svc.Create(ctx, user.NewUser{Name: "Copycat", Username: "hero", Email: "other@test.cd", Password: "LePassword#123"})
	vErr, ok := err.(*core.ValidationError)
	require.True(t, ok, "want *core.ValidationError, got %v", err)
	assert.Equal(t, "username", vErr.Fields[0].Field)

	_, err = svc.Create(ctx, user.NewUser{Name: "Copycat", Username: "other", Email: "hero@test.cd", Password: "LePassword#123"})
	vErr, ok = err.(*core.ValidationError)
	require.True(t, ok, "want *core.ValidationError, got %v", err)
	assert.Equal(t, "email", vErr.Fields[0].Field)
}

func TestService_Update(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	usr := testutil.CreateUser(t, repo, "Hero", "hero", "hero@test.cd", "mdr", []string{user.RoleTeacher}, true)
	other := testutil.CreateUser(t, repo, "Other", "other", "other@test.cd", "", nil, true)

	// taking another user's username is rejected
	_, err := svc.Update(ctx, usr.ID, user.UpdateUser{Username: other.Username})
	_, ok := err.(*core.ValidationError)
	require.True(t, ok, "want *core.ValidationError, got %v", err)

	// updating own username to itself is fine; the user is excluded from the check
	inactive := false
	updated, err := svc.Update(ctx, usr.ID, user.UpdateUser{
		Name:     "Hero Mav",
		Username: "hero",
		Password: "LePassword#456",
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Hero Mav", updated.Name)
	assert.False(t, updated.IsActive)
	assert.NoError(t, updated.CheckPassword("LePassword#456"))

	_, err = svc.Update(ctx, "nope", user.UpdateUser{Name: "Ghost"})
	assert.Equal(t, user.ErrNotFound, err)
}

func TestService_GetByUsernameOrEmail(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	usr := testutil.CreateUser(t, repo, "Hero", "hero", "hero@test.cd", "", nil, true)

	byUname, err := svc.GetByUsernameOrEmail(ctx, "HERO") // case-insensitive lookup
	require.NoError(t, err)
	assert.Equal(t, usr.ID, byUname.ID)

	byEmail, err := svc.GetByUsernameOrEmail(ctx, "hero@test.cd")
	require.NoError(t, err)
	assert.Equal(t, usr.ID, byEmail.ID)

	_, err = svc.GetByUsernameOrEmail(ctx, "lol")
	assert.Equal(t, user.ErrNotFound, err)
}

func TestService_Delete(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	usr1 := testutil.CreateUser(t, repo, "One", "one", "one@test.cd", "", nil, true)
	usr2 := testutil.CreateUser(t, repo, "Two", "two", "two@test.cd", "", nil, true)

	require.NoError(t, svc.Delete(ctx, usr1.ID, usr2.ID))

	users, err := svc.QueryAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}
