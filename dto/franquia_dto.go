package dto

type RegisterFranquiaDto struct {
	Nome     string `json:"nome" validate:"required,max=150"`
	CNPJ     string `json:"cnpj" validate:"required,cnpj"`
	Endereco string `json:"endereco" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Senha    string `json:"senha" validate:"required,min=6,max=72"`
	Whatsapp string `json:"whatsapp" validate:"required,max=30"`
}

type LoginFranquiaDto struct {
	Email string `json:"email" validate:"required"`
	Senha string `json:"senha" validate:"required"`
}
