package middlewares

import "net/http"

type ContextKey string

const (
	SessionContextKey   ContextKey = "session"
	RequestIDContextKey ContextKey = "request_id"
)

// Middleware type - function that wraps http.HandlerFunc
type Middleware func(http.HandlerFunc) http.HandlerFunc

// MiddlewareFunc type - function that wraps http.Handler
type MiddlewareFunc func(http.Handler) http.Handler

func ChainMiddleware(middlewares ...Middleware) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}

// Chain wraps h so that the first MiddlewareFunc is the outermost.
func Chain(h http.Handler, middlewares ...MiddlewareFunc) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}
