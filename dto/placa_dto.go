package dto

type CreatePlacaDto struct {
	NomeEmpresa string `json:"nomeEmpresa" validate:"required,max=150"`
	CNPJ        string `json:"cnpj" validate:"required,cnpj"`
	Endereco    string `json:"endereco" validate:"required,max=255"`
	Email       string `json:"email" validate:"required,email"`
	Whatsapp    string `json:"whatsapp" validate:"required,max=30"`
}

type UpdatePlacaDto struct {
	ID          uint   `json:"id" validate:"required"`
	NomeEmpresa string `json:"nomeEmpresa" validate:"required,max=150"`
	CNPJ        string `json:"cnpj" validate:"required,cnpj"`
	Endereco    string `json:"endereco" validate:"required,max=255"`
	Email       string `json:"email" validate:"required,email"`
	Whatsapp    string `json:"whatsapp" validate:"required,max=30"`
}
