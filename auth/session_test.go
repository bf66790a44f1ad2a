package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrplacas/config"
)

const testSecret = "test-secret"

func newRedisRevoker(t *testing.T) (*RedisRevoker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	r := NewRedisRevoker(config.RedisConfig{Address: mr.Addr()})
	t.Cleanup(func() { r.Close() })
	return r, mr
}

func TestSessionManager_IssueAndVerify(t *testing.T) {
	m := NewSessionManager(testSecret, 7*24*time.Hour, nil)

	s, err := m.Issue(42)
	require.NoError(t, err)
	assert.Equal(t, uint(42), s.FranquiaID)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), s.ExpiresAt, time.Minute)

	got, err := m.Verify(context.Background(), s.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), got.FranquiaID)
	assert.Equal(t, s.Token, got.Token)
}

func TestSessionManager_RejectsBadTokens(t *testing.T) {
	m := NewSessionManager(testSecret, time.Hour, nil)
	other := NewSessionManager("another-secret", time.Hour, nil)

	foreign, err := other.Issue(1)
	require.NoError(t, err)

	valid, err := m.Issue(1)
	require.NoError(t, err)
	parts := strings.Split(valid.Token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	expired, err := m.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }).Issue(1)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-jwt"},
		{name: "wrong secret", token: foreign.Token},
		{name: "tampered payload", token: tampered},
		{name: "expired", token: expired.Token},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Verify(context.Background(), tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestSessionManager_Revoke(t *testing.T) {
	revoker, mr := newRedisRevoker(t)
	m := NewSessionManager(testSecret, time.Hour, revoker)
	ctx := context.Background()

	s, err := m.Issue(7)
	require.NoError(t, err)

	_, err = m.Verify(ctx, s.Token)
	require.NoError(t, err)

	require.NoError(t, m.Revoke(ctx, s))

	_, err = m.Verify(ctx, s.Token)
	assert.ErrorIs(t, err, ErrRevokedToken)

	key := revokedKey(s.Token)
	assert.True(t, mr.Exists(key))
	assert.NotContains(t, key, s.Token)
	ttl := mr.TTL(key)
	assert.True(t, ttl > 59*time.Minute && ttl <= time.Hour, "unexpected ttl %s", ttl)
}

func TestSessionManager_RevocationStoreDown(t *testing.T) {
	revoker, mr := newRedisRevoker(t)
	m := NewSessionManager(testSecret, time.Hour, revoker)

	s, err := m.Issue(7)
	require.NoError(t, err)

	mr.Close()

	_, err = m.Verify(context.Background(), s.Token)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidToken)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("segredo123")
	require.NoError(t, err)
	assert.NotEqual(t, "segredo123", hash)

	assert.True(t, VerifyPassword(hash, "segredo123"))
	assert.False(t, VerifyPassword(hash, "segredo124"))
	assert.False(t, VerifyPassword("not-a-hash", "segredo123"))
}

func TestNewRedisRevoker_Options(t *testing.T) {
	r := NewRedisRevoker(config.RedisConfig{
		Address:      "cache:6379",
		Password:     "pw",
		DB:           2,
		PoolSize:     25,
		MinIdleConns: 3,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  750 * time.Millisecond,
		WriteTimeout: time.Second,
	})
	t.Cleanup(func() { r.Close() })

	opts := r.Client.Options()
	assert.Equal(t, "cache:6379", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 25, opts.PoolSize)
	assert.Equal(t, 3, opts.MinIdleConns)
	assert.Equal(t, 2*time.Second, opts.DialTimeout)
	assert.Equal(t, 750*time.Millisecond, opts.ReadTimeout)
	assert.Equal(t, time.Second, opts.WriteTimeout)
}
