package dto

// GenerateQRCodeDto carries an optional PlacaID; nil means a general QR code
// that is returned but not stored.
type GenerateQRCodeDto struct {
	URL     string `json:"url" validate:"required,url,max=2048"`
	PlacaID *uint  `json:"placaId"`
}
