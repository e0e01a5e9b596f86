package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "file::memory:")
	t.Setenv("JWT_KEY", strings.Repeat("k", MinJWTKeyLength))
	t.Setenv("JWT_ISSUER", "helpdesk")
	t.Setenv("JWT_AUDIENCE", "helpdesk-admin")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_DRIVER", "")
	t.Setenv("ACCESS_TOKEN_TTL", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 8*time.Hour, cfg.JWT.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTTL)
	assert.Equal(t, "@hourly", cfg.SessionSweepSchedule)
	assert.Equal(t, "atendimentos", cfg.Elastic.Index)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("ACCESS_TOKEN_TTL", "30m")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("ADMIN_EMAIL", "  Admin@Example.COM ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "admin@example.com", cfg.AdminEmail)
}

func TestValidate_ReportsEveryMissingSetting(t *testing.T) {
	t.Parallel()

	err := Config{JWT: JWT{Key: []byte("short")}}.Validate()
	require.Error(t, err)
	for _, want := range []string{"DATABASE_URL", "JWT_KEY", "JWT_ISSUER", "JWT_AUDIENCE"} {
		assert.Contains(t, err.Error(), want)
	}
}
