package models

import "time"

type Placa struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FranquiaID  uint      `gorm:"index;not null;<-:create" json:"franquiaId"`
	NomeEmpresa string    `gorm:"not null" json:"nomeEmpresa"`
	CNPJ        string    `gorm:"not null" json:"cnpj"`
	Endereco    string    `gorm:"not null" json:"endereco"`
	Email       string    `gorm:"not null" json:"email"`
	Whatsapp    string    `gorm:"not null" json:"whatsapp"`
	QRCodeURL   *string   `json:"qrCodeUrl"`
	QRCodeData  *string   `gorm:"type:text" json:"qrCodeData"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
