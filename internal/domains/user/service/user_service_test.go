package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"blog-backend/internal/domains/user"
	"blog-backend/pkg/jwt"
)

type fakeUserRepo struct {
	users       map[uuid.UUID]*user.User
	byEmail     map[string]*user.User
	updatedRole string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:   make(map[uuid.UUID]*user.User),
		byEmail: make(map[string]*user.User),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	f.users[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeUserRepo) List(_ context.Context, _, _ int) ([]user.User, int, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, id uuid.UUID, role string) error {
	if _, ok := f.users[id]; !ok {
		return user.ErrUserNotFound
	}
	f.users[id].Role = role
	f.updatedRole = role
	return nil
}

func newTestService(repo user.Repository) user.Service {
	return NewUserService(repo, jwt.NewManager("test-secret", 15, 72), 15)
}

func TestRegister_CreatesStaffWithHashedPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	resp, err := svc.Register(context.Background(), &user.RegisterRequest{
		Email:    "new@example.com",
		Password: "s3cretpass",
		FullName: "New User",
	})
	require.NoError(t, err)
	assert.Equal(t, user.RoleStaff, resp.Role)

	stored := repo.byEmail["new@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "s3cretpass", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cretpass")))
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), &user.RegisterRequest{
		Email: "dup@example.com", Password: "password1", FullName: "A",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &user.RegisterRequest{
		Email: "dup@example.com", Password: "password2", FullName: "B",
	})
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
}

func TestLogin_IssuesTokensWithRoleClaim(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	created, err := svc.Register(context.Background(), &user.RegisterRequest{
		Email: "u@example.com", Password: "password1", FullName: "U",
	})
	require.NoError(t, err)
	require.NoError(t, repo.UpdateRole(context.Background(), created.ID, user.RoleAdmin))

	resp, err := svc.Login(context.Background(), &user.LoginRequest{
		Email: "u@example.com", Password: "password1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)

	claims, err := jwt.NewManager("test-secret", 15, 72).ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, claims.Role)
	assert.Equal(t, created.ID.String(), claims.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), &user.RegisterRequest{
		Email: "u@example.com", Password: "password1", FullName: "U",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &user.LoginRequest{
		Email: "u@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailLooksLikeBadCredentials(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	_, err := svc.Login(context.Background(), &user.LoginRequest{
		Email: "nobody@example.com", Password: "whatever",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	created, err := svc.Register(context.Background(), &user.RegisterRequest{
		Email: "u@example.com", Password: "password1", FullName: "U",
	})
	require.NoError(t, err)
	repo.users[created.ID].IsActive = false

	_, err = svc.Login(context.Background(), &user.LoginRequest{
		Email: "u@example.com", Password: "password1",
	})
	assert.ErrorIs(t, err, user.ErrUserInactive)
}

func TestUpdateRole_RejectsUnknownRole(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	err := svc.UpdateRole(context.Background(), uuid.New(), "superhero")
	assert.ErrorIs(t, err, user.ErrInvalidRole)
}
