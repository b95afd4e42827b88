package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/sojith29034/menu-saas/internal/domain"
	"github.com/sojith29034/menu-saas/internal/repo"
)

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repo.ErrDuplicateEmail
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	c := *user
	r.users[user.ID] = &c
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	c := *user
	return &c, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			c := *user
			return &c, nil
		}
	}
	return nil, repo.ErrNotFound
}

func newTestUserService() (*UserService, *fakeUserRepo) {
	userRepo := newFakeUserRepo()
	return NewUserService(userRepo, zap.NewNop().Sugar()), userRepo
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterUserInput{
		Name:     "Maria",
		Email:    "maria@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "correct horse", user.Password, "password must be stored hashed")

	authed, err := svc.Authenticate(ctx, "maria@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterUserInput{
		Name:     "Maria",
		Email:    "maria@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "maria@example.com", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()

	input := RegisterUserInput{Name: "Maria", Email: "maria@example.com", Password: "correct horse"}

	_, err := svc.Register(ctx, input)
	require.NoError(t, err)

	_, err = svc.Register(ctx, input)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestEnsureAdmin(t *testing.T) {
	svc, userRepo := newTestUserService()
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "Admin", "admin@example.com", "admin-secret"))
	require.Len(t, userRepo.users, 1)

	admin, err := svc.Authenticate(ctx, "admin@example.com", "admin-secret")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)

	// idempotent on restart
	require.NoError(t, svc.EnsureAdmin(ctx, "Admin", "admin@example.com", "admin-secret"))
	assert.Len(t, userRepo.users, 1)
}
