package handlers

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"qrplacas/auth"
	"qrplacas/middlewares"
	"qrplacas/qrcode"
)

// NewRouter wires every route behind the request logger and session gate.
func NewRouter(db *gorm.DB, sessions *auth.SessionManager, generator *qrcode.Generator) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	SetupPageRoutes(mux, db)
	SetupAuthRoutes(mux, db, sessions)
	SetupPlacaRoutes(mux, db)
	SetupQRCodeRoutes(mux, db, generator)

	gate := middlewares.AuthMiddleware{
		Sessions:          sessions,
		ProtectedPrefixes: middlewares.DefaultProtectedPrefixes,
	}
	return middlewares.Chain(mux,
		middlewares.RequestLogger,
		middlewares.Metrics(mux),
		gate.SessionGate,
	)
}
