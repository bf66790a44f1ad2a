package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

const CookieName = "auth-token"

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrRevokedToken = errors.New("session token revoked")
)

// Session identifies the authenticated franquia for the lifetime of a request.
type Session struct {
	FranquiaID uint
	Token      string
	ExpiresAt  time.Time
}

// SessionManager issues and verifies HS256 session tokens whose only
// application claim is the franquia id carried in "sub".
type SessionManager struct {
	secret  []byte
	ttl     time.Duration
	revoker Revoker
	now     func() time.Time
}

func NewSessionManager(secret string, ttl time.Duration, revoker Revoker) *SessionManager {
	if revoker == nil {
		revoker = NopRevoker{}
	}
	return &SessionManager{
		secret:  []byte(secret),
		ttl:     ttl,
		revoker: revoker,
		now:     time.Now,
	}
}

// WithClock returns a copy of the manager that stamps tokens using now.
func (m *SessionManager) WithClock(now func() time.Time) *SessionManager {
	cp := *m
	cp.now = now
	return &cp
}

func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

func (m *SessionManager) Issue(franquiaID uint) (*Session, error) {
	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.ttl)

	token, err := jwt.NewBuilder().
		Subject(strconv.FormatUint(uint64(franquiaID), 10)).
		IssuedAt(issuedAt).
		Expiration(expiresAt).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build session token: %w", err)
	}

	raw, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), m.secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &Session{
		FranquiaID: franquiaID,
		Token:      string(raw),
		ExpiresAt:  expiresAt,
	}, nil
}

// Verify checks signature, expiry and revocation. Any failure in the token
// itself is reported as ErrInvalidToken; revocation store errors are returned
// as-is.
func (m *SessionManager) Verify(ctx context.Context, raw string) (*Session, error) {
	if raw == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.HS256(), m.secret),
		jwt.WithValidate(true),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	sub, ok := token.Subject()
	if !ok {
		return nil, ErrInvalidToken
	}
	franquiaID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil || franquiaID == 0 {
		return nil, ErrInvalidToken
	}
	expiresAt, ok := token.Expiration()
	if !ok {
		return nil, ErrInvalidToken
	}

	revoked, err := m.revoker.IsRevoked(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, ErrRevokedToken
	}

	return &Session{
		FranquiaID: uint(franquiaID),
		Token:      raw,
		ExpiresAt:  expiresAt,
	}, nil
}

// Revoke blocks the session token until it would have expired anyway.
func (m *SessionManager) Revoke(ctx context.Context, s *Session) error {
	remaining := s.ExpiresAt.Sub(m.now())
	if remaining <= 0 {
		return nil
	}
	return m.revoker.Revoke(ctx, s.Token, remaining)
}
