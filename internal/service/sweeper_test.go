package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/helpdesk/internal/models"
)

func TestSessionSweeper_Sweep(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	u := createUser(t, r, "ana@example.com", "senha-segura", false)

	now := time.Now().UTC()
	longAgo := now.Add(-30 * 24 * time.Hour)
	recently := now.Add(-time.Hour)
	tokens := []models.RefreshToken{
		{TokenHash: "expired-long-ago", UserID: u.ID, ExpiresAt: longAgo, CreatedAt: longAgo},
		{TokenHash: "revoked-long-ago", UserID: u.ID, ExpiresAt: now.Add(time.Hour), CreatedAt: longAgo, RevokedAt: &longAgo},
		{TokenHash: "revoked-recently", UserID: u.ID, ExpiresAt: now.Add(time.Hour), CreatedAt: longAgo, RevokedAt: &recently},
		{TokenHash: "active", UserID: u.ID, ExpiresAt: now.Add(time.Hour), CreatedAt: now},
	}
	for i := range tokens {
		require.NoError(t, r.CreateRefreshToken(ctx, &tokens[i]))
	}

	sw, err := NewSessionSweeper(r, "@hourly", 7*24*time.Hour, nil)
	require.NoError(t, err)
	sw.Now = func() time.Time { return now }

	n, err := sw.Sweep(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	var left []string
	require.NoError(t, r.DB.Model(&models.RefreshToken{}).Order("token").Pluck("token", &left).Error)
	assert.Equal(t, []string{"active", "revoked-recently"}, left)
}

func TestNewSessionSweeper_RejectsBadSchedule(t *testing.T) {
	t.Parallel()

	_, err := NewSessionSweeper(nil, "not a schedule", time.Hour, nil)
	require.Error(t, err)
}

func TestSessionSweeper_StartStop(t *testing.T) {
	t.Parallel()

	sw, err := NewSessionSweeper(newTestRepo(t), "@every 1h", time.Hour, nil)
	require.NoError(t, err)
	sw.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	sw.Stop(ctx)
}
