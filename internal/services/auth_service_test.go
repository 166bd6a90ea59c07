package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "taskdeck.app/taskdeck/internal/errors"
	"taskdeck.app/taskdeck/internal/storage"
)

func newAuthFixture(now time.Time) *AuthService {
	service := NewAuthService(storage.NewStore(storage.NewMemoryBlobStore()), "test-secret")
	service.now = func() time.Time { return now }
	return service
}

func TestSignUp_CreatesUserAndSession(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	service := newAuthFixture(now)
	ctx := context.Background()

	user, session, err := service.SignUp(ctx, "ana@example.com", "secret1", "Ana Souza")
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, "Ana Souza", user.FullName)
	assert.True(t, user.Preferences.Notifications)

	require.NotNil(t, session)
	assert.Equal(t, user.ID, session.UserID)
	assert.True(t, session.ExpiresAt.Equal(now.Add(7*24*time.Hour)))
	assert.NotEmpty(t, session.Token)
}

func TestSignUp_Validation(t *testing.T) {
	service := newAuthFixture(time.Now().UTC())
	ctx := context.Background()

	_, _, err := service.SignUp(ctx, "not-an-email", "secret1", "Ana")
	assert.ErrorIs(t, err, apperrors.ErrInvalidEmail)

	_, _, err = service.SignUp(ctx, "ana@example.com", "short", "Ana")
	assert.ErrorIs(t, err, apperrors.ErrPasswordTooShort)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	service := newAuthFixture(time.Now().UTC())
	ctx := context.Background()

	_, _, err := service.SignUp(ctx, "ana@example.com", "secret1", "Ana")
	require.NoError(t, err)

	_, _, err = service.SignUp(ctx, "ana@example.com", "secret2", "Other Ana")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateUser)
}

func TestSignIn_RoundTrip(t *testing.T) {
	service := newAuthFixture(time.Now().UTC())
	ctx := context.Background()

	user, _, err := service.SignUp(ctx, "ana@example.com", "secret1", "Ana")
	require.NoError(t, err)

	session, err := service.SignIn(ctx, "ana@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.UserID)

	resolved, err := service.CurrentUser(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestSignIn_BadCredentials(t *testing.T) {
	service := newAuthFixture(time.Now().UTC())
	ctx := context.Background()

	_, _, err := service.SignUp(ctx, "ana@example.com", "secret1", "Ana")
	require.NoError(t, err)

	_, err = service.SignIn(ctx, "ana@example.com", "wrong-password")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = service.SignIn(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestCurrentUser_ExpiredSession(t *testing.T) {
	issued := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	service := newAuthFixture(issued)
	ctx := context.Background()

	_, session, err := service.SignUp(ctx, "ana@example.com", "secret1", "Ana")
	require.NoError(t, err)

	// 7 days plus a minute later the token no longer resolves.
	service.now = func() time.Time { return issued.Add(7*24*time.Hour + time.Minute) }

	_, err = service.CurrentUser(ctx, session.Token)
	assert.ErrorIs(t, err, apperrors.ErrSessionExpired)
}

func TestCurrentUser_GarbageToken(t *testing.T) {
	service := newAuthFixture(time.Now().UTC())

	_, err := service.CurrentUser(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, apperrors.ErrSessionExpired)
}
