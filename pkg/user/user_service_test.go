package user_test

import (
	"context"
	"errors"
	"testing"

	"recipe-hub/domain"
	"recipe-hub/internal/testutil"
	"recipe-hub/pkg/jwt"
	"recipe-hub/pkg/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (user.UserService, *testutil.Store, jwt.JWTService) {
	t.Helper()
	store := testutil.NewStore()
	jwtService := jwt.NewJWTServiceWithSecret("test-secret")
	return user.NewUserService(store.Users(), jwtService), store, jwtService
}

func register(handle, email string) domain.RegisterRequest {
	return domain.RegisterRequest{
		Handle:          handle,
		Email:           email,
		Password:        "password1",
		ConfirmPassword: "password1",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newService(t)

	require.NoError(t, svc.Register(ctx, register("Cook Lover", "cook@example.com")))

	u, err := store.Users().GetUserByEmail(ctx, "cook@example.com")
	require.NoError(t, err)
	assert.Equal(t, "cooklover", u.Handle)
	assert.Equal(t, "cooklover", u.Name)
	assert.NotEqual(t, "password1", u.Password)
}

func TestRegisterConflicts(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)
	require.NoError(t, svc.Register(ctx, register("alice", "alice@example.com")))

	tests := []struct {
		name string
		req  domain.RegisterRequest
		want error
	}{
		{"same email", register("bob", "alice@example.com"), domain.ErrEmailInUse},
		{"same handle after normalizing", register("A-lice", "other@example.com"), domain.ErrHandleInUse},
		{"handle without letters", register("!!!", "x@example.com"), domain.ErrInvalidHandle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, svc.Register(ctx, tt.req), tt.want)
		})
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, store, jwtService := newService(t)
	require.NoError(t, svc.Register(ctx, register("alice", "alice@example.com")))

	res, err := svc.Login(ctx, domain.LoginRequest{Email: "alice@example.com", Password: "password1"})
	require.NoError(t, err)

	claims, err := jwtService.ValidateTokenUser(res.Token)
	require.NoError(t, err)
	u, err := store.Users().GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.PrincipalID())
	assert.Equal(t, "alice", claims.Handle)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "alice@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "nobody@example.com", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newService(t)
	require.NoError(t, svc.Register(ctx, register("alice", "alice@example.com")))
	require.NoError(t, svc.Register(ctx, register("bob", "bob@example.com")))

	alice, err := store.Users().GetUserByHandle(ctx, "alice")
	require.NoError(t, err)

	changed, err := svc.UpdateProfile(ctx, alice, domain.UpdateProfileRequest{Handle: "alice", Name: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Zero(t, store.UserWrites())

	_, err = svc.UpdateProfile(ctx, alice, domain.UpdateProfileRequest{Handle: "Bob", Name: "Alice", Email: "alice@example.com"})
	assert.ErrorIs(t, err, domain.ErrHandleInUse)

	_, err = svc.UpdateProfile(ctx, alice, domain.UpdateProfileRequest{Handle: "alice", Name: "Alice", Email: "bob@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailInUse)
	assert.Equal(t, "alice@example.com", alice.Email)

	changed, err = svc.UpdateProfile(ctx, alice, domain.UpdateProfileRequest{Handle: "Alice Cooks", Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "alicecooks", alice.Handle)
	assert.Equal(t, 1, store.UserWrites())
}

func TestGetUserByID(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newService(t)
	require.NoError(t, svc.Register(ctx, register("alice", "alice@example.com")))
	alice, err := store.Users().GetUserByHandle(ctx, "alice")
	require.NoError(t, err)

	found, err := svc.GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.ToProfile(found).Handle)

	boom := errors.New("connection reset")
	store.FailWith(boom)
	_, err = svc.GetUserByID(ctx, alice.ID)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrUserNotFound)
}
