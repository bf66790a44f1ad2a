package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"qrplacas/config"
	"qrplacas/middlewares"
	"qrplacas/models"
	"qrplacas/web"
)

type PageHandler struct {
	db *gorm.DB
}

type dashboardPage struct {
	Franquia models.Franquia
	Placas   []models.Placa
}

func SetupPageRoutes(mux *http.ServeMux, db *gorm.DB) {
	handler := PageHandler{
		db: db,
	}
	mux.HandleFunc("GET /{$}", handler.page("cadastro.html"))
	mux.HandleFunc("GET /cadastro", handler.page("cadastro.html"))
	mux.HandleFunc("GET /login", handler.page("login.html"))
	mux.HandleFunc("GET /dashboard", handler.dashboard)
}

func (p *PageHandler) page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, name, nil)
	}
}

func (p *PageHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	session := middlewares.GetSessionFromContext(r.Context())
	if session == nil {
		http.Redirect(w, r, middlewares.LoginPath, http.StatusSeeOther)
		return
	}
	db := p.db.WithContext(r.Context())

	var data dashboardPage
	if err := db.First(&data.Franquia, session.FranquiaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Redirect(w, r, middlewares.LoginPath, http.StatusSeeOther)
			return
		}
		config.Config.Logger.Errorf("Database error loading franquia %d: %v", session.FranquiaID, err)
		http.Error(w, "Erro interno do servidor", http.StatusInternalServerError)
		return
	}

	err := scopedPlacas(db, session.FranquiaID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&data.Placas).Error
	if err != nil {
		config.Config.Logger.Errorf("Database error listing placas of franquia %d: %v", session.FranquiaID, err)
		http.Error(w, "Erro interno do servidor", http.StatusInternalServerError)
		return
	}

	render(w, "dashboard.html", data)
}

// render buffers the page so a template failure never leaves a partial
// response behind.
func render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := web.Render(&buf, name, data); err != nil {
		config.Config.Logger.Errorf("Error rendering %s: %v", name, err)
		http.Error(w, "Erro interno do servidor", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
