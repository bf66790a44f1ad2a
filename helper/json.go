package helper

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

const (
	MsgInvalidRequest  = "Requisição inválida"
	MsgRequiredFields  = "Todos os campos são obrigatórios"
	MsgInvalidFields   = "Dados inválidos"
	MsgInternalError   = "Erro interno do servidor"
	MsgUnauthorized    = "Não autorizado"
	MsgPlacaNotFound   = "Placa não encontrada"
	MsgDuplicate       = "CNPJ ou email já cadastrado"
	MsgBadCredentials  = "Email ou senha inválidos"
	MsgFranquiaMissing = "Franquia não encontrada"
)

var Validator *validator.Validate

func init() {
	Validator = validator.New(validator.WithRequiredStructEnabled())
	Validator.RegisterValidation("cnpj", validateCNPJ)
}

func WriteJson(w http.ResponseWriter, status int, payload any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(payload)
}

func ReadJson(w http.ResponseWriter, r *http.Request, payload any) error {
	maxBytes := 1_048_578
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(payload)
}

func WriteJsonError(w http.ResponseWriter, status int, message string) error {
	type envelop struct {
		Error string `json:"error"`
	}
	return WriteJson(w, status, envelop{Error: message})
}

// ReadAndValidate decodes the body into payload and runs struct validation.
// On failure it has already written a 400 response and returns false.
func ReadAndValidate(w http.ResponseWriter, r *http.Request, payload any) bool {
	if err := ReadJson(w, r, payload); err != nil {
		WriteJsonError(w, http.StatusBadRequest, MsgInvalidRequest)
		return false
	}
	if err := Validator.Struct(payload); err != nil {
		WriteJsonError(w, http.StatusBadRequest, ValidationMessage(err))
		return false
	}
	return true
}

// ValidationMessage collapses validator errors into a message that does not
// name the offending field.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				return MsgRequiredFields
			}
		}
	}
	return MsgInvalidFields
}

// validateCNPJ accepts masked or bare tax IDs with exactly 14 digits.
func validateCNPJ(fl validator.FieldLevel) bool {
	digits := 0
	for _, c := range fl.Field().String() {
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.' || c == '/' || c == '-' || c == ' ':
		default:
			return false
		}
	}
	return digits == 14
}

// FormatCNPJ renders a tax ID as XX.XXX.XXX/XXXX-XX. Input that does not hold
// exactly 14 digits is returned unchanged.
func FormatCNPJ(s string) string {
	d := make([]byte, 0, 14)
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			d = append(d, s[i])
		}
	}
	if len(d) != 14 {
		return s
	}
	return string(d[0:2]) + "." + string(d[2:5]) + "." + string(d[5:8]) + "/" + string(d[8:12]) + "-" + string(d[12:14])
}
