package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"qrplacas/auth"
	"qrplacas/config"
	"qrplacas/dto"
	"qrplacas/helper"
	"qrplacas/middlewares"
	"qrplacas/models"
)

type AuthHandler struct {
	db       *gorm.DB
	sessions *auth.SessionManager
}

func SetupAuthRoutes(mux *http.ServeMux, db *gorm.DB, sessions *auth.SessionManager) {
	handler := AuthHandler{
		db:       db,
		sessions: sessions,
	}
	mux.HandleFunc("POST /api/auth/cadastro", handler.register)
	mux.HandleFunc("POST /api/auth/login", handler.login)
	mux.HandleFunc("POST /api/auth/logout", handler.logout)
	mux.HandleFunc("GET /api/auth/me", middlewares.RequireSession(handler.self))
}

func (a *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var payload dto.RegisterFranquiaDto
	if !helper.ReadAndValidate(w, r, &payload) {
		return
	}
	email := normalizeEmail(payload.Email)
	cnpj := helper.FormatCNPJ(payload.CNPJ)

	config.Config.Logger.Info("New request to register franquia")

	db := a.db.WithContext(r.Context())

	var existing models.Franquia
	result := db.Where("cnpj = ? OR email = ?", cnpj, email).First(&existing)
	if result.Error == nil {
		helper.WriteJsonError(w, http.StatusBadRequest, helper.MsgDuplicate)
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		config.Config.Logger.Errorf("Database error checking franquia existence: %v", result.Error)
		helper.WriteJsonError(w, http.StatusInternalServerError, helper.MsgInternalError)
		return
	}

	hash, err := auth.HashPassword(payload.Senha)
	if err != nil {
		config.Config.Logger.Errorf("Password hashing error: %v", err)
		helper.WriteJsonError(w, http.StatusInternalServerError, helper.MsgInternalError)
		return
	}

	franquia := models.Franquia{
		Nome:     strings.TrimSpace(payload.Nome),
		CNPJ:     cnpj,
		Endereco: strings.TrimSpace(payload.Endereco),
		Email:    email,
		Senha:    hash,
		Whatsapp: strings.TrimSpace(payload.Whatsapp),
	}
	if err := db.Create(&franquia).Error; err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			helper.WriteJsonError(w, http.StatusBadRequest, helper.MsgDuplicate)
			return
		}
		config.Config.Logger.Errorf("Franquia creation error: %v", err)
		helper.WriteJsonError(w, http.StatusInternalServerError, helper.MsgInternalError)
		return
	}

	session, err := a.sessions.Issue(franquia.ID)
	if err != nil {
		config.Config.Logger.Errorf("Token generation error: %v", err)
		helper.WriteJsonError(w, http.StatusInternalServerError, helper.MsgInternalError)
		return
	}
	a.setSessionCookie(w, session)

	config.Config.Logger.Infof("Franquia registered successfully: %d", franquia.ID)
	helper.WriteJson(w, http.StatusCreated, map[string]interface{}{
		"message":    "Franquia cadastrada com sucesso",
		"franquiaId": franquia.ID,
		"franquia":   franquia.Summary(),
		"token":      session.Token,
	})
}

func (a *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var payload dto.LoginFranquiaDto
	if !helper.ReadAndValidate(w, r, &payload) {
		return
	}
	email := normalizeEmail(payload.Email)

	config.Config.Logger.Debug("New login request")

	var franquia models.Franquia
	result := a.db.WithContext(r.Context()).Where("email = ?", email).First(&franquia)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			auth.BurnPasswordCheck(payload.Senha)
			helper.WriteJsonError(w, http.StatusUnauthorized, helper.MsgBadCredentials)
			return
		}
		config.Config.Logger.Errorf("Database error during login: %v", result.Error)
		helper.WriteJsonError(w, http.StatusInternalServerError, helper.MsgInternalError)
		return
	}

	if !auth.VerifyPassword(franquia.Senha, payload.Senha) {
		helper.WriteJsonError(w, http.StatusUnauthorized, helper.MsgBadCredentials)
		return
	}

	session, err := a.sessions.Issue(franquia.ID)
	if err != nil {
		config.Config.Logger.Errorf("Token generation error: %v", err)
		helper.WriteJsonError(w, http.StatusInternalServerError, helper.MsgInternalError)
		return
	}
	a.setSessionCookie(w, session)

	config.Config.Logger.Infof("Franquia logged in successfully: %d", franquia.ID)
	helper.WriteJson(w, http.StatusOK, map[string]interface{}{
		"message":  "Login realizado com sucesso",
		"franquia": franquia.Summary(),
	})
}

func (a *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.CookieName); err == nil {
		if session, err := a.sessions.Verify(r.Context(), cookie.Value); err == nil {
			if err := a.sessions.Revoke(r.Context(), session); err != nil {
				config.Config.Logger.Errorf("Error revoking session of franquia %d: %v", session.FranquiaID, err)
			}
		}
	}

	a.clearSessionCookie(w)
	helper.WriteJson(w, http.StatusOK, map[string]string{"message": "Logout realizado com sucesso"})
}

func (a *AuthHandler) self(w http.ResponseWriter, r *http.Request) {
	session := middlewares.GetSessionFromContext(r.Context())

	var franquia models.Franquia
	result := a.db.WithContext(r.Context()).First(&franquia, session.FranquiaID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			helper.WriteJsonError(w, http.StatusUnauthorized, helper.MsgFranquiaMissing)
			return
		}
		config.Config.Logger.Errorf("Database error loading franquia %d: %v", session.FranquiaID, result.Error)
		helper.WriteJsonError(w, http.StatusInternalServerError, helper.MsgInternalError)
		return
	}
	helper.WriteJson(w, http.StatusOK, franquia)
}

func (a *AuthHandler) setSessionCookie(w http.ResponseWriter, session *auth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    session.Token,
		Expires:  session.ExpiresAt,
		MaxAge:   int(a.sessions.TTL() / time.Second),
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
		Secure:   config.Config.CookieSecure,
	})
}

func (a *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   config.Config.CookieSecure,
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
