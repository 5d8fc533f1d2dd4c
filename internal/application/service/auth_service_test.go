package service

import (
	"context"
	"testing"
	"time"

	"github.com/marketpos/marketpos-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()

	userRepo := newFakeUserRepo()
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(userRepo, jwtManager), userRepo
}

// TestRegisterAndLogin registers a user and authenticates with the same
// credentials
func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthFixture(t)

	user, err := svc.Register(context.Background(), &RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "cashier", user.Role)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	out, err := svc.Login(context.Background(), &LoginInput{Email: "ada@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.NotNil(t, out.User.LastLoginAt)
}

// TestLoginWrongPassword rejects a bad password with the same error as an
// unknown email
func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), &RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "secret"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginInput{Email: "ada@example.com", Password: "wrong"})
	require.Error(t, err)

	_, err2 := svc.Login(context.Background(), &LoginInput{Email: "nobody@example.com", Password: "wrong"})
	require.Error(t, err2)
	assert.Equal(t, err.Error(), err2.Error())
}

// TestRegisterDuplicateEmail rejects a second account on the same email
func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), &RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "secret"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &RegisterInput{Name: "Eve", Email: "ada@example.com", Password: "other"})
	require.Error(t, err)
}

// TestRefreshToken exchanges a refresh token for fresh credentials
func TestRefreshToken(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), &RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "secret", Role: "manager"})
	require.NoError(t, err)

	login, err := svc.Login(context.Background(), &LoginInput{Email: "ada@example.com", Password: "secret"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, login.User.ID, refreshed.User.ID)

	_, err = svc.RefreshToken(context.Background(), "not-a-token")
	require.Error(t, err)
}

// TestChangePassword requires the current password and applies the new one
func TestChangePassword(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthFixture(t)

	user, err := svc.Register(context.Background(), &RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "old"})
	require.NoError(t, err)

	require.Error(t, svc.ChangePassword(context.Background(), user.ID, "wrong", "new"))
	require.NoError(t, svc.ChangePassword(context.Background(), user.ID, "old", "new"))

	_, err = svc.Login(context.Background(), &LoginInput{Email: "ada@example.com", Password: "new"})
	require.NoError(t, err)
}
