package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/helpdesk/internal/repo"
	"github.com/Skotchmaster/helpdesk/pkg/events"
	"github.com/Skotchmaster/helpdesk/pkg/tokens"
)

func newTestAuthService(r *repo.GormRepo, rec *events.Recorder) *AuthService {
	return &AuthService{
		Repo: r,
		Tokens: &tokens.Issuer{
			Key:      []byte("test-jwt-key-that-is-long-enough-32"),
			Issuer:   "helpdesk",
			Audience: "helpdesk-admin",
			TTL:      15 * time.Minute,
		},
		RefreshTTL: 24 * time.Hour,
		Events:     rec,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newTestAuthService(r, &events.Recorder{})
	ctx := context.Background()
	u := createUser(t, r, "ana@example.com", "senha-segura", false)

	res, err := svc.Login(ctx, "  ANA@example.com ", "senha-segura", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.Equal(t, u.ID, res.User.ID)

	claims, err := svc.Tokens.Parse(res.AccessToken)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)

	stored, err := r.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLoginAt)
	assert.Zero(t, stored.LoginAttempts)
}

func TestAuthService_Login_Validation(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newTestAuthService(r, &events.Recorder{})
	ctx := context.Background()
	createUser(t, r, "ana@example.com", "senha-segura", false)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "empty email", email: "", password: "senha-segura"},
		{name: "empty password", email: "ana@example.com", password: ""},
		{name: "unknown user", email: "bob@example.com", password: "senha-segura"},
	}

	for _, tt := range tests {
		res, err := svc.Login(ctx, tt.email, tt.password, "")
		assert.Nil(t, res, tt.name)
		assert.ErrorIs(t, err, ErrInvalidCredentials, tt.name)
	}
}

func TestAuthService_Login_LocksAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	rec := &events.Recorder{}
	svc := newTestAuthService(r, rec)
	ctx := context.Background()
	u := createUser(t, r, "ana@example.com", "senha-segura", false)

	for i := 0; i < MaxLoginAttempts-1; i++ {
		_, err := svc.Login(ctx, u.Email, "errada", "")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}
	stored, err := r.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
	assert.Equal(t, MaxLoginAttempts-1, stored.LoginAttempts)

	_, err = svc.Login(ctx, u.Email, "errada", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	stored, err = r.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	assert.Contains(t, rec.Types(), events.UserLocked)

	// the right password no longer helps
	_, err = svc.Login(ctx, u.Email, "senha-segura", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_SuccessResetsAttempts(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newTestAuthService(r, &events.Recorder{})
	ctx := context.Background()
	u := createUser(t, r, "ana@example.com", "senha-segura", false)

	for i := 0; i < MaxLoginAttempts-1; i++ {
		_, _ = svc.Login(ctx, u.Email, "errada", "")
	}
	_, err := svc.Login(ctx, u.Email, "senha-segura", "")
	require.NoError(t, err)

	_, err = svc.Login(ctx, u.Email, "errada", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	stored, err := r.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
	assert.Equal(t, 1, stored.LoginAttempts)
}

func TestAuthService_Refresh_IsSingleUse(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newTestAuthService(r, &events.Recorder{})
	ctx := context.Background()
	u := createUser(t, r, "ana@example.com", "senha-segura", false)

	res, err := svc.Login(ctx, u.Email, "senha-segura", "")
	require.NoError(t, err)

	pair, err := svc.Refresh(ctx, res.RefreshToken, "")
	require.NoError(t, err)
	assert.NotEqual(t, res.RefreshToken, pair.RefreshToken)

	_, err = svc.Refresh(ctx, res.RefreshToken, "")
	require.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, err = svc.Refresh(ctx, pair.RefreshToken, "")
	require.NoError(t, err)
}

func TestAuthService_Refresh_Rejects(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newTestAuthService(r, &events.Recorder{})
	ctx := context.Background()
	u := createUser(t, r, "ana@example.com", "senha-segura", false)

	_, err := svc.Refresh(ctx, "", "")
	require.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, err = svc.Refresh(ctx, "never-issued", "")
	require.ErrorIs(t, err, ErrInvalidRefreshToken)

	expired := newTestAuthService(r, &events.Recorder{})
	expired.Now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	old, err := expired.Login(ctx, u.Email, "senha-segura", "")
	require.NoError(t, err)
	_, err = svc.Refresh(ctx, old.RefreshToken, "")
	require.ErrorIs(t, err, ErrInvalidRefreshToken)

	res, err := svc.Login(ctx, u.Email, "senha-segura", "")
	require.NoError(t, err)
	require.NoError(t, r.DeactivateUser(ctx, u.ID))
	_, err = svc.Refresh(ctx, res.RefreshToken, "")
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestAuthService_Logout_RevokesAllSessions(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newTestAuthService(r, &events.Recorder{})
	ctx := context.Background()
	u := createUser(t, r, "ana@example.com", "senha-segura", false)

	first, err := svc.Login(ctx, u.Email, "senha-segura", "")
	require.NoError(t, err)
	second, err := svc.Login(ctx, u.Email, "senha-segura", "")
	require.NoError(t, err)

	n, err := svc.Logout(ctx, u.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	_, err = svc.Refresh(ctx, first.RefreshToken, "")
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
	_, err = svc.Refresh(ctx, second.RefreshToken, "")
	require.ErrorIs(t, err, ErrInvalidRefreshToken)

	n, err = svc.Logout(ctx, u.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}
