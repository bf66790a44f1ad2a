package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"qrplacas/auth"
	"qrplacas/config"
	"qrplacas/models"
	"qrplacas/qrcode"
)

func init() {
	config.Config.Logger = zap.NewNop().Sugar()
}

type testEnv struct {
	db       *gorm.DB
	sessions *auth.SessionManager
	router   http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithRevoker(t, nil)
}

func newTestEnvWithRevoker(t *testing.T, revoker auth.Revoker) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Discard,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every pooled connection would otherwise get its own empty database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, models.Migrate(db))

	sessions := auth.NewSessionManager("handler-test-secret", 7*24*time.Hour, revoker)
	return &testEnv{
		db:       db,
		sessions: sessions,
		router:   NewRouter(db, sessions, qrcode.NewGenerator(qrcode.DefaultOptions)),
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func registerBody(cnpj, email string) map[string]string {
	return map[string]string{
		"nome":     "Franquia " + email,
		"cnpj":     cnpj,
		"endereco": "Rua das Flores, 100",
		"email":    email,
		"senha":    "segredo123",
		"whatsapp": "(11) 99999-0000",
	}
}

// register creates a franquia and returns its id and session cookie.
func (e *testEnv) register(t *testing.T, cnpj, email string) (uint, *http.Cookie) {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/auth/cadastro", registerBody(cnpj, email), nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		FranquiaID uint `json:"franquiaId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.FranquiaID, sessionCookie(t, w)
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	t.Fatalf("response did not set %s cookie", auth.CookieName)
	return nil
}

func placaBody(nome string) map[string]any {
	return map[string]any{
		"nomeEmpresa": nome,
		"cnpj":        "98.765.432/0001-10",
		"endereco":    "Av. Paulista, 1000",
		"email":       "contato@" + nome + ".com.br",
		"whatsapp":    "(11) 98888-7777",
	}
}

func (e *testEnv) createPlaca(t *testing.T, cookie *http.Cookie, nome string) models.Placa {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/placas", placaBody(nome), cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Placa models.Placa `json:"placa"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Placa
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp["error"]
}
