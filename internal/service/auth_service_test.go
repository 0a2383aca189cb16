package service

import (
	"context"
	"testing"
	"time"

	"fittrack/backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuthService(users *memUserRepo) AuthService {
	return NewAuthService(users, plainHasher{}, "test-secret", time.Hour, zap.NewNop().Sugar())
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	users := newMemUserRepo()
	svc := newTestAuthService(users)

	user, err := svc.Register(ctx, RegisterInput{
		Email:    "ada@example.com",
		Username: "ada",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.True(t, user.IsActive)
	assert.Equal(t, domain.GoalMaintain, user.Goal)
	assert.Equal(t, domain.ActivityModerate, user.ActivityLevel)
	assert.Equal(t, "hash:correct horse", user.HashedPassword)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(newMemUserRepo())

	_, err := svc.Register(ctx, RegisterInput{Email: "ada@example.com", Username: "ada", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "ada@example.com", Username: "other", Password: "pw"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(newMemUserRepo())

	_, err := svc.Register(ctx, RegisterInput{Email: "ada@example.com", Username: "ada", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "other@example.com", Username: "ada", Password: "pw"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

// When both email and username collide, the email error wins.
func TestRegisterDuplicateBothReportsEmail(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(newMemUserRepo())

	_, err := svc.Register(ctx, RegisterInput{Email: "ada@example.com", Username: "ada", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "ada@example.com", Username: "ada", Password: "pw"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterMissingFields(t *testing.T) {
	svc := newTestAuthService(newMemUserRepo())
	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.c"})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(newMemUserRepo())

	_, err := svc.Register(ctx, RegisterInput{Email: "ada@example.com", Username: "ada", Password: "pw"})
	require.NoError(t, err)

	token, user, err := svc.Login(ctx, "ada@example.com", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "ada", user.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(newMemUserRepo())

	_, err := svc.Register(ctx, RegisterInput{Email: "ada@example.com", Username: "ada", Password: "pw"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "ada@example.com", "nope")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

// An unknown email surfaces the same error as a wrong password.
func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestAuthService(newMemUserRepo())
	_, _, err := svc.Login(context.Background(), "ghost@example.com", "pw")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestUpdateProfilePartialPatch(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(newMemUserRepo())

	user, err := svc.Register(ctx, RegisterInput{Email: "ada@example.com", Username: "ada", Password: "pw", FullName: "Ada L."})
	require.NoError(t, err)

	goal := domain.GoalLose
	target := 65.0
	updated, err := svc.UpdateProfile(ctx, user.ID, ProfileUpdate{Goal: &goal, TargetWeight: &target})
	require.NoError(t, err)

	assert.Equal(t, domain.GoalLose, updated.Goal)
	require.NotNil(t, updated.TargetWeight)
	assert.Equal(t, 65.0, *updated.TargetWeight)
	// Untouched fields survive the patch.
	assert.Equal(t, "Ada L.", updated.FullName)
	assert.Equal(t, "ada@example.com", updated.Email)
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(newMemUserRepo())

	user, err := svc.Register(ctx, RegisterInput{Email: "ada@example.com", Username: "ada", Password: "pw"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(ctx, user.ID))
	_, err = svc.GetProfile(ctx, user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.ErrorIs(t, svc.DeleteAccount(ctx, user.ID), ErrUserNotFound)
}
