package models

import "time"

type Franquia struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nome      string    `gorm:"not null" json:"nome"`
	CNPJ      string    `gorm:"uniqueIndex;not null" json:"cnpj"`
	Endereco  string    `gorm:"not null" json:"endereco"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Senha     string    `gorm:"not null" json:"-"`
	Whatsapp  string    `gorm:"not null" json:"whatsapp"`
	Placas    []Placa   `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName keeps the plural form; the default inflector leaves "franquia"
// unchanged.
func (Franquia) TableName() string {
	return "franquias"
}

// FranquiaSummary is the public view returned after login and registration.
type FranquiaSummary struct {
	ID    uint   `json:"id"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
}

func (f Franquia) Summary() FranquiaSummary {
	return FranquiaSummary{ID: f.ID, Nome: f.Nome, Email: f.Email}
}
