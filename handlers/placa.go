package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"qrplacas/config"
	"qrplacas/dto"
	"qrplacas/helper"
	"qrplacas/middlewares"
	"qrplacas/models"
)

type PlacaHandler struct {
	db *gorm.DB
}

func SetupPlacaRoutes(mux *http.ServeMux, db *gorm.DB) {
	handler := PlacaHandler{
		db: db,
	}
	protected := middlewares.ChainMiddleware(middlewares.RequireSession)
	mux.HandleFunc("GET /api/placas", protected(handler.list))
	mux.HandleFunc("POST /api/placas", protected(handler.create))
	mux.HandleFunc("PUT /api/placas", protected(handler.update))
	mux.HandleFunc("GET /api/placas/{id}", protected(handler.getOne))
}

// scopedPlacas restricts every placa query to the caller's franquia.
func scopedPlacas(db *gorm.DB, franquiaID uint) *gorm.DB {
	return db.Model(&models.Placa{}).Where("franquia_id = ?", franquiaID)
}

func (p *PlacaHandler) list(w http.ResponseWriter, r *http.Request) {
	session := middlewares.GetSessionFromContext(r.Context())

	placas := []models.Placa{}
	result := scopedPlacas(p.db.WithContext(r.Context()), session.FranquiaID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&placas)
	if result.Error != nil {
		config.Config.Logger.Errorf("Database error listing placas of franquia %d: %v", session.FranquiaID, result.Error)
		helper.WriteJsonError(w, http.StatusInternalServerError, helper.MsgInternalError)
		return
	}
	helper.WriteJson(w, http.StatusOK, placas)
}

func (p *PlacaHandler) getOne(w http.ResponseWriter, r *http.Request) {
	session := middlewares.GetSessionFromContext(r.Context())

	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		helper.WriteJsonError(w, http.StatusBadRequest, helper.MsgInvalidRequest)
		return
	}

	placa, ok := findOwnedPlaca(p.db, w, r, uint(id), session.FranquiaID)
	if !ok {
		return
	}
	helper.WriteJson(w, http.StatusOK, placa)
}

func (p *PlacaHandler) create(w http.ResponseWriter, r *http.Request) {
	session := middlewares.GetSessionFromContext(r.Context())

	var payload dto.CreatePlacaDto
	if !helper.ReadAndValidate(w, r, &payload) {
		return
	}

	placa := models.Placa{
		FranquiaID:  session.FranquiaID,
		NomeEmpresa: strings.TrimSpace(payload.NomeEmpresa),
		CNPJ:        helper.FormatCNPJ(payload.CNPJ),
		Endereco:    strings.TrimSpace(payload.Endereco),
		Email:       normalizeEmail(payload.Email),
		Whatsapp:    strings.TrimSpace(payload.Whatsapp),
	}
	if err := p.db.WithContext(r.Context()).Create(&placa).Error; err != nil {
		config.Config.Logger.Errorf("Placa creation error for franquia %d: %v", session.FranquiaID, err)
		helper.WriteJsonError(w, http.StatusInternalServerError, helper.MsgInternalError)
		return
	}

	config.Config.Logger.Infof("Placa %d created by franquia %d", placa.ID, session.FranquiaID)
	helper.WriteJson(w, http.StatusCreated, map[string]interface{}{
		"message": "Placa cadastrada com sucesso",
		"placa":   placa,
	})
}

func (p *PlacaHandler) update(w http.ResponseWriter, r *http.Request) {
	session := middlewares.GetSessionFromContext(r.Context())

	var payload dto.UpdatePlacaDto
	if !helper.ReadAndValidate(w, r, &payload) {
		return
	}

	db := p.db.WithContext(r.Context())
	result := scopedPlacas(db, session.FranquiaID).
		Where("id = ?", payload.ID).
		Updates(map[string]interface{}{
			"nome_empresa": strings.TrimSpace(payload.NomeEmpresa),
			"cnpj":         helper.FormatCNPJ(payload.CNPJ),
			"endereco":     strings.TrimSpace(payload.Endereco),
			"email":        normalizeEmail(payload.Email),
			"whatsapp":     strings.TrimSpace(payload.Whatsapp),
		})
	if result.Error != nil {
		config.Config.Logger.Errorf("Placa update error for franquia %d: %v", session.FranquiaID, result.Error)
		helper.WriteJsonError(w, http.StatusInternalServerError, helper.MsgInternalError)
		return
	}
	if result.RowsAffected == 0 {
		helper.WriteJsonError(w, http.StatusNotFound, helper.MsgPlacaNotFound)
		return
	}

	placa, ok := findOwnedPlaca(p.db, w, r, payload.ID, session.FranquiaID)
	if !ok {
		return
	}
	helper.WriteJson(w, http.StatusOK, map[string]interface{}{
		"message": "Placa editada com sucesso",
		"placa":   placa,
	})
}

// findOwnedPlaca loads a placa of the given franquia. It writes 404 or 500
// and returns false when the placa cannot be returned.
func findOwnedPlaca(db *gorm.DB, w http.ResponseWriter, r *http.Request, id, franquiaID uint) (*models.Placa, bool) {
	var placa models.Placa
	err := scopedPlacas(db.WithContext(r.Context()), franquiaID).Where("id = ?", id).First(&placa).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helper.WriteJsonError(w, http.StatusNotFound, helper.MsgPlacaNotFound)
			return nil, false
		}
		config.Config.Logger.Errorf("Database error loading placa %d: %v", id, err)
		helper.WriteJsonError(w, http.StatusInternalServerError, helper.MsgInternalError)
		return nil, false
	}
	return &placa, true
}
