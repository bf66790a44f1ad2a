package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"qrplacas/config"
	"qrplacas/dto"
	"qrplacas/helper"
	"qrplacas/middlewares"
	"qrplacas/qrcode"
)

type QRCodeHandler struct {
	db        *gorm.DB
	generator *qrcode.Generator
}

func SetupQRCodeRoutes(mux *http.ServeMux, db *gorm.DB, generator *qrcode.Generator) {
	handler := QRCodeHandler{
		db:        db,
		generator: generator,
	}
	mux.HandleFunc("POST /api/qrcode", middlewares.RequireSession(handler.generate))
}

// generate renders a QR code for the given URL. With a placaId the placa must
// belong to the caller and the image is stored on it; without one the image
// is only returned.
func (q *QRCodeHandler) generate(w http.ResponseWriter, r *http.Request) {
	session := middlewares.GetSessionFromContext(r.Context())

	var payload dto.GenerateQRCodeDto
	if !helper.ReadAndValidate(w, r, &payload) {
		return
	}

	if payload.PlacaID == nil {
		dataURI, err := q.generator.DataURI(payload.URL)
		if err != nil {
			config.Config.Logger.Errorf("QR code generation error: %v", err)
			helper.WriteJsonError(w, http.StatusInternalServerError, helper.MsgInternalError)
			return
		}
		helper.WriteJson(w, http.StatusOK, map[string]interface{}{
			"message": "QR Code gerado com sucesso",
			"qrCode":  dataURI,
		})
		return
	}

	placaID := *payload.PlacaID
	if _, ok := findOwnedPlaca(q.db, w, r, placaID, session.FranquiaID); !ok {
		return
	}

	dataURI, err := q.generator.DataURI(payload.URL)
	if err != nil {
		config.Config.Logger.Errorf("QR code generation error for placa %d: %v", placaID, err)
		helper.WriteJsonError(w, http.StatusInternalServerError, helper.MsgInternalError)
		return
	}

	result := scopedPlacas(q.db.WithContext(r.Context()), session.FranquiaID).
		Where("id = ?", placaID).
		Updates(map[string]interface{}{
			"qr_code_url":  payload.URL,
			"qr_code_data": dataURI,
		})
	if result.Error != nil {
		config.Config.Logger.Errorf("Error storing QR code on placa %d: %v", placaID, result.Error)
		helper.WriteJsonError(w, http.StatusInternalServerError, helper.MsgInternalError)
		return
	}

	placa, ok := findOwnedPlaca(q.db, w, r, placaID, session.FranquiaID)
	if !ok {
		return
	}

	config.Config.Logger.Infof("QR code stored on placa %d by franquia %d", placaID, session.FranquiaID)
	helper.WriteJson(w, http.StatusOK, map[string]interface{}{
		"message": "QR Code gerado com sucesso",
		"qrCode":  dataURI,
		"placa":   placa,
	})
}
