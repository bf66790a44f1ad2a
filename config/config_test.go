package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SESSION_TTL", "")

	cfg := Load()

	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, FallbackJWTSecret, cfg.JWTSecret)
	assert.True(t, cfg.UsingFallbackJWT)
	assert.False(t, cfg.CookieSecure)
	assert.Contains(t, cfg.DSN, "sslmode=disable")
	assert.Empty(t, cfg.Redis.Address)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.Equal(t, 5*time.Second, cfg.Redis.DialTimeout)
	assert.Equal(t, 3*time.Second, cfg.Redis.ReadTimeout)
	require.NotNil(t, cfg.Logger)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "8081")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/placas")
	t.Setenv("SESSION_TTL", "48h")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_POOL_SIZE", "25")
	t.Setenv("REDIS_READ_TIMEOUT", "750ms")

	cfg := Load()

	assert.Equal(t, "8081", cfg.ServerPort)
	assert.Equal(t, "s3cr3t", cfg.JWTSecret)
	assert.False(t, cfg.UsingFallbackJWT)
	assert.Equal(t, "postgres://u:p@db:5432/placas", cfg.DSN)
	assert.Equal(t, 48*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, 25, cfg.Redis.PoolSize)
	assert.Equal(t, 750*time.Millisecond, cfg.Redis.ReadTimeout)
	assert.True(t, cfg.IsProduction())
	assert.NoError(t, cfg.Validate())
}

func TestValidate_FallbackSecretInProduction(t *testing.T) {
	cfg := AppConfig{Environment: EnvProduction, UsingFallbackJWT: true}
	assert.Error(t, cfg.Validate())

	cfg.Environment = "development"
	assert.NoError(t, cfg.Validate())
}
