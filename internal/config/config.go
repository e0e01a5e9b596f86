package config

import (
	"errors"
	"os"
	"strings"
	"time"

	pkgcfg "github.com/Skotchmaster/helpdesk/pkg/config"
)

const MinJWTKeyLength = 32

type JWT struct {
	Key        []byte
	Issuer     string
	Audience   string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type Kafka struct {
	Brokers []string
	Topic   string
}

type Elastic struct {
	URL      string
	User     string
	Password string
	Index    string
}

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	DBDriver    string
	DatabaseURL string

	JWT JWT

	CORSOrigins []string

	Kafka   Kafka
	Elastic Elastic

	SessionSweepSchedule string
	SessionRetention     time.Duration
	SettingsCacheTTL     time.Duration

	AdminEmail    string
	AdminPassword string
}

// Load reads the process environment. It fails when the JWT settings are
// missing or the signing key is shorter than MinJWTKeyLength.
func Load() (Config, error) {
	cfg := Config{
		ServiceName: pkgcfg.EnvDefault("SERVICE_NAME", "helpdesk"),
		ServerPort:  pkgcfg.EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    pkgcfg.EnvDefault("LOG_LEVEL", "info"),

		DBDriver:    strings.ToLower(pkgcfg.EnvDefault("DB_DRIVER", "postgres")),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWT: JWT{
			Key:        []byte(os.Getenv("JWT_KEY")),
			Issuer:     os.Getenv("JWT_ISSUER"),
			Audience:   os.Getenv("JWT_AUDIENCE"),
			AccessTTL:  pkgcfg.EnvDurationDefault("ACCESS_TOKEN_TTL", 8*time.Hour),
			RefreshTTL: pkgcfg.EnvDurationDefault("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		},

		CORSOrigins: pkgcfg.CSV(os.Getenv("CORS_ORIGINS")),

		Kafka: Kafka{
			Brokers: pkgcfg.CSV(os.Getenv("KAFKA_BROKERS")),
			Topic:   pkgcfg.EnvDefault("KAFKA_TOPIC", "helpdesk_events"),
		},
		Elastic: Elastic{
			URL:      os.Getenv("ELASTIC_URL"),
			User:     os.Getenv("ELASTIC_USER"),
			Password: os.Getenv("ELASTIC_PASSWORD"),
			Index:    pkgcfg.EnvDefault("ELASTIC_INDEX", "atendimentos"),
		},

		SessionSweepSchedule: pkgcfg.EnvDefault("SESSION_SWEEP_SCHEDULE", "@hourly"),
		SessionRetention:     pkgcfg.EnvDurationDefault("SESSION_RETENTION", 7*24*time.Hour),
		SettingsCacheTTL:     pkgcfg.EnvDurationDefault("SETTINGS_CACHE_TTL", 30*time.Second),

		AdminEmail:    strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	return errors.Join(
		pkgcfg.RequireNonEmpty(c.DatabaseURL, "DATABASE_URL"),
		pkgcfg.RequireNonEmpty(string(c.JWT.Key), "JWT_KEY"),
		pkgcfg.RequireMinLen(string(c.JWT.Key), "JWT_KEY", MinJWTKeyLength),
		pkgcfg.RequireNonEmpty(c.JWT.Issuer, "JWT_ISSUER"),
		pkgcfg.RequireNonEmpty(c.JWT.Audience, "JWT_AUDIENCE"),
	)
}
