package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"qrplacas/auth"
	"qrplacas/config"
	"qrplacas/helper"
)

// DefaultProtectedPrefixes are the paths that require a session cookie.
var DefaultProtectedPrefixes = []string{
	"/dashboard",
	"/api/placas",
	"/api/qrcode",
	"/api/auth/me",
}

const LoginPath = "/login"

type AuthMiddleware struct {
	Sessions          *auth.SessionManager
	ProtectedPrefixes []string
}

// SessionGate verifies the session cookie on protected paths. Page requests
// without a valid session are redirected to the login page, API requests get
// a 401. A failing revocation store answers 500. Valid sessions are stored in
// the request context.
func (am *AuthMiddleware) SessionGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !am.isProtected(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(auth.CookieName)
		if err != nil {
			am.deny(w, r)
			return
		}

		session, err := am.Sessions.Verify(r.Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrRevokedToken) {
				config.Config.Logger.Debugf("Rejected session on %s: %v", r.URL.Path, err)
				am.deny(w, r)
				return
			}
			// The token may still be good; sending the user to /login would
			// loop until the revocation store is back.
			config.Config.Logger.Errorf("Session verification failed on %s: %v", r.URL.Path, err)
			am.fail(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

// RequireSession rejects handler calls that reach it without a session in
// context, for routes mounted outside the gate's prefixes.
func RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if GetSessionFromContext(r.Context()) == nil {
			helper.WriteJsonError(w, http.StatusUnauthorized, helper.MsgUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	}
}

func (am *AuthMiddleware) isProtected(path string) bool {
	prefixes := am.ProtectedPrefixes
	if prefixes == nil {
		prefixes = DefaultProtectedPrefixes
	}
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

func (am *AuthMiddleware) deny(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		helper.WriteJsonError(w, http.StatusUnauthorized, helper.MsgUnauthorized)
		return
	}
	http.Redirect(w, r, LoginPath, http.StatusSeeOther)
}

func (am *AuthMiddleware) fail(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		helper.WriteJsonError(w, http.StatusInternalServerError, helper.MsgInternalError)
		return
	}
	http.Error(w, helper.MsgInternalError, http.StatusInternalServerError)
}

func WithSession(ctx context.Context, s *auth.Session) context.Context {
	return context.WithValue(ctx, SessionContextKey, s)
}

func GetSessionFromContext(ctx context.Context) *auth.Session {
	if s, ok := ctx.Value(SessionContextKey).(*auth.Session); ok {
		return s
	}
	return nil
}
