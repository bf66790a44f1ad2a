package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"qrplacas/config"
)

const revokedKeyPrefix = "sessao:revogada:"

// Revoker remembers logged-out tokens until they expire.
type Revoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// NopRevoker is used when no Redis is configured; logout then only clears the
// browser cookie.
type NopRevoker struct{}

func (NopRevoker) Revoke(context.Context, string, time.Duration) error { return nil }

func (NopRevoker) IsRevoked(context.Context, string) (bool, error) { return false, nil }

type RedisRevoker struct {
	Client *redis.Client
}

// NewRedisRevoker builds the client from cfg. Zero pool and timeout values
// fall back to go-redis defaults.
func NewRedisRevoker(cfg config.RedisConfig) *RedisRevoker {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})
	return &RedisRevoker{Client: rdb}
}

func (r *RedisRevoker) Ping(ctx context.Context) error {
	if err := r.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisRevoker) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

func (r *RedisRevoker) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	return r.Client.Set(ctx, revokedKey(token), 1, ttl).Err()
}

func (r *RedisRevoker) IsRevoked(ctx context.Context, token string) (bool, error) {
	err := r.Client.Get(ctx, revokedKey(token)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Keys hold the SHA-256 of the token, never the token itself.
func revokedKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return revokedKeyPrefix + hex.EncodeToString(sum[:])
}
