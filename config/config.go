package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FallbackJWTSecret is used when JWT_SECRET is not set outside production.
const FallbackJWTSecret = "fallback_secret"

const EnvProduction = "production"

type AppConfig struct {
	Environment string
	ServerPort  string
	DSN         string
	Logger      *zap.SugaredLogger

	JWTSecret        string
	UsingFallbackJWT bool
	SessionTTL       time.Duration
	CookieSecure     bool

	Redis RedisConfig
}

type RedisConfig struct {
	Address      string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

var Config AppConfig

func init() {
	Config = Load()
}

// Load reads .env (if present) and the process environment.
func Load() AppConfig {
	godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SESSION_TTL", "168h")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("REDIS_MIN_IDLE_CONNS", 2)
	v.SetDefault("REDIS_DIAL_TIMEOUT", "5s")
	v.SetDefault("REDIS_READ_TIMEOUT", "3s")
	v.SetDefault("REDIS_WRITE_TIMEOUT", "3s")

	dsn := v.GetString("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%v user=%v password=%v dbname=%v port=%v sslmode=disable",
			v.GetString("DB_HOST"), v.GetString("DB_USER"), v.GetString("DB_PASSWORD"),
			v.GetString("DB_NAME"), v.GetString("DB_PORT"))
	}

	env := v.GetString("APP_ENV")
	secret := v.GetString("JWT_SECRET")
	fallback := secret == ""
	if fallback {
		secret = FallbackJWTSecret
	}

	ttl := v.GetDuration("SESSION_TTL")
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}

	return AppConfig{
		Environment:      env,
		ServerPort:       v.GetString("PORT"),
		DSN:              dsn,
		Logger:           newLogger(env, v.GetString("LOG_LEVEL")),
		JWTSecret:        secret,
		UsingFallbackJWT: fallback,
		SessionTTL:       ttl,
		CookieSecure:     v.GetBool("COOKIE_SECURE"),
		Redis: RedisConfig{
			Address:      v.GetString("REDIS_ADDR"),
			Password:     v.GetString("REDIS_PASSWORD"),
			DB:           v.GetInt("REDIS_DB"),
			PoolSize:     v.GetInt("REDIS_POOL_SIZE"),
			MinIdleConns: v.GetInt("REDIS_MIN_IDLE_CONNS"),
			DialTimeout:  v.GetDuration("REDIS_DIAL_TIMEOUT"),
			ReadTimeout:  v.GetDuration("REDIS_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("REDIS_WRITE_TIMEOUT"),
		},
	}
}

// Validate rejects settings that must never reach a production deployment.
func (c AppConfig) Validate() error {
	if c.Environment == EnvProduction && c.UsingFallbackJWT {
		return errors.New("JWT_SECRET must be set in production")
	}
	return nil
}

func (c AppConfig) IsProduction() bool {
	return c.Environment == EnvProduction
}

func newLogger(env, levelStr string) *zap.SugaredLogger {
	level := zapcore.InfoLevel
	switch levelStr {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	var cfg zap.Config
	if env == EnvProduction {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	return zap.Must(cfg.Build()).Sugar()
}
