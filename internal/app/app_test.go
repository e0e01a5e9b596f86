package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/helpdesk/internal/migrate"
	"github.com/Skotchmaster/helpdesk/internal/models"
	"github.com/Skotchmaster/helpdesk/internal/transport"
	pkgdb "github.com/Skotchmaster/helpdesk/pkg/db"
	"github.com/Skotchmaster/helpdesk/pkg/events"
	"github.com/Skotchmaster/helpdesk/pkg/hash"
	"github.com/Skotchmaster/helpdesk/pkg/logging"
	"github.com/Skotchmaster/helpdesk/pkg/tokens"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin-senha-123"
)

func TestMain(m *testing.M) {
	hash.SetCost(bcrypt.MinCost)
	os.Exit(m.Run())
}

type testEnv struct {
	t      *testing.T
	app    *App
	events *events.Recorder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctx := context.Background()
	db, err := pkgdb.Open(ctx, pkgdb.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { pkgdb.Close(db) })

	require.NoError(t, migrate.AutoMigrate(ctx, db))
	require.NoError(t, migrate.Seed(ctx, db, migrate.Options{AdminEmail: adminEmail, AdminPassword: adminPassword}))

	rec := &events.Recorder{}
	a := New(Options{
		DB: db,
		Tokens: &tokens.Issuer{
			Key:      []byte("test-jwt-key-that-is-long-enough-32"),
			Issuer:   "helpdesk",
			Audience: "helpdesk-admin",
			TTL:      15 * time.Minute,
		},
		RefreshTTL:       time.Hour,
		SettingsCacheTTL: time.Minute,
		Events:           rec,
		Logger:           logging.NewWithWriter(io.Discard, "error"),
	})
	return &testEnv{t: t, app: a, events: rec}
}

func (env *testEnv) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	env.t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(env.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.app.Echo.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (env *testEnv) login(email, password string) transport.LoginResponse {
	env.t.Helper()
	rec := env.do(http.MethodPost, "/api/Usuario/login", transport.LoginRequest{Email: email, Password: password}, "")
	require.Equal(env.t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[transport.LoginResponse](env.t, rec)
}

func (env *testEnv) createUser(adminToken, email string) string {
	env.t.Helper()
	rec := env.do(http.MethodPost, "/api/Usuario", transport.CreateUserRequest{
		Name:     "Usuário " + email,
		Email:    email,
		Password: "senha-segura",
	}, adminToken)
	require.Equal(env.t, http.StatusCreated, rec.Code, rec.Body.String())
	return env.login(email, "senha-segura").Token
}

func path(base string, id uint) string {
	return base + "/" + strconv.FormatUint(uint64(id), 10)
}

func TestHealthAndMetrics(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/health/live", nil, "").Code)
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/health/ready", nil, "").Code)

	env.do(http.MethodGet, "/api/Configuration/public", nil, "")
	rec := env.do(http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "helpdesk_http_requests_total")
}

func TestLoginRefreshLogout(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/Usuario/login", transport.LoginRequest{Email: adminEmail, Password: "errada"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")

	res := env.login(adminEmail, adminPassword)
	assert.True(t, res.User.IsAdmin)

	me := env.do(http.MethodGet, "/api/Usuario/me", nil, res.Token)
	require.Equal(t, http.StatusOK, me.Code)
	assert.Equal(t, adminEmail, decode[transport.UserResponse](t, me).Email)

	rec = env.do(http.MethodPost, "/api/Usuario/refresh", transport.RefreshRequest{RefreshToken: res.RefreshToken}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	refreshed := decode[transport.RefreshResponse](t, rec)

	rec = env.do(http.MethodPost, "/api/Usuario/refresh", transport.RefreshRequest{RefreshToken: res.RefreshToken}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodPost, "/api/Usuario/logout", nil, refreshed.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode[transport.LogoutResponse](t, rec).RevokedTokens)

	rec = env.do(http.MethodPost, "/api/Usuario/refresh", transport.RefreshRequest{RefreshToken: refreshed.RefreshToken}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoutes(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login(adminEmail, adminPassword).Token
	user := env.createUser(admin, "ana@example.com")

	assert.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, "/api/Usuario", nil, "").Code)
	assert.Equal(t, http.StatusForbidden, env.do(http.MethodGet, "/api/Usuario", nil, user).Code)
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/api/Usuario", nil, admin).Code)

	assert.Equal(t, http.StatusForbidden, env.do(http.MethodPost, "/api/Modulo", transport.ModuleRequest{Name: "X"}, user).Code)
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/api/Modulo", nil, user).Code)

	rec := env.do(http.MethodPost, "/api/Ca", map[string]any{"nomeCa": "Sem código"}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodGet, "/api/Modulo/abc", nil, user)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTicketFlow(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login(adminEmail, adminPassword).Token
	ana := env.createUser(admin, "ana@example.com")
	bob := env.createUser(admin, "bob@example.com")

	rec := env.do(http.MethodPost, "/api/Ca", transport.ServiceCenterRequest{Code: "0099", Name: "Centro"}, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	ca := decode[transport.ServiceCenterResponse](t, rec)

	rec = env.do(http.MethodPost, "/api/Cliente", transport.CustomerRequest{Code: "000099", ServiceCenterID: ca.ID, Name: "Padaria"}, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	cust := decode[transport.CustomerResponse](t, rec)

	rec = env.do(http.MethodPost, "/api/Cliente", transport.CustomerRequest{Code: "000099", ServiceCenterID: ca.ID, Name: "Outra"}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/api/Cliente", transport.CustomerRequest{Code: "000001", ServiceCenterID: ca.ID, Name: "Mercado"}, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(http.MethodGet, path("/api/Ca", ca.ID)+"/clientes", nil, ana)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	caCustomers := decode[[]transport.CustomerResponse](t, rec)
	require.Len(t, caCustomers, 2)
	assert.Equal(t, "000001", caCustomers[0].Code)
	assert.Equal(t, "000099", caCustomers[1].Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/api/Ca/9999/clientes", nil, ana).Code)

	var (
		mod  models.Module
		subj models.Subject
		typ  models.TicketType
	)
	db := env.app.Repo.DB
	require.NoError(t, db.First(&mod).Error)
	require.NoError(t, db.Where("modulo_id = ?", mod.ID).First(&subj).Error)
	require.NoError(t, db.First(&typ).Error)

	rec = env.do(http.MethodPost, "/api/Atendimento", transport.CreateTicketRequest{
		ServiceCenterID: ca.ID,
		CustomerID:      cust.ID,
		ModuleID:        mod.ID,
		SubjectID:       subj.ID,
		TypeID:          typ.ID,
		Title:           "Impressora fiscal",
		Description:     "Não imprime cupom",
	}, ana)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	ticket := decode[transport.TicketResponse](t, rec)
	assert.Regexp(t, `^ATD\d{6}$`, ticket.Number)
	assert.Equal(t, "000099", ticket.Customer.Code)
	assert.Contains(t, env.events.Types(), events.TicketCreated)

	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, path("/api/Atendimento", ticket.ID), nil, ana).Code)
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, path("/api/Atendimento", ticket.ID), nil, admin).Code)
	assert.Equal(t, http.StatusForbidden, env.do(http.MethodGet, path("/api/Atendimento", ticket.ID), nil, bob).Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/api/Atendimento/9999", nil, ana).Code)

	rec = env.do(http.MethodGet, "/api/Atendimento?pageSize=1000", nil, bob)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[map[string]any](t, rec)
	assert.EqualValues(t, 0, page["totalRegistros"])
	assert.EqualValues(t, 100, page["tamanhoPagina"])

	rec = env.do(http.MethodDelete, path("/api/Ca", ca.ID), nil, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "clientes ativos")

	rec = env.do(http.MethodPut, path("/api/Atendimento", ticket.ID), transport.UpdateTicketRequest{StatusID: ptr(models.StatusResolved)}, ana)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = env.do(http.MethodDelete, path("/api/Atendimento", ticket.ID), nil, ana)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, path("/api/Atendimento", ticket.ID), nil, ana).Code)
}

func TestSuggestionReadFlag(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login(adminEmail, adminPassword).Token
	ana := env.createUser(admin, "ana@example.com")

	rec := env.do(http.MethodPost, "/api/Sugestao", transport.CreateSuggestionRequest{Title: "Atalhos", Content: "Teclas de atalho"}, ana)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sug := decode[transport.SuggestionResponse](t, rec)
	readPath := path("/api/Sugestao", sug.ID) + "/read"

	isRead := func() bool {
		rec := env.do(http.MethodGet, path("/api/Sugestao", sug.ID), nil, ana)
		require.Equal(t, http.StatusOK, rec.Code)
		return decode[transport.SuggestionResponse](t, rec).IsRead
	}

	assert.Equal(t, http.StatusForbidden, env.do(http.MethodPatch, readPath, nil, ana).Code)

	assert.Equal(t, http.StatusNoContent, env.do(http.MethodPatch, readPath, nil, admin).Code)
	assert.True(t, isRead())

	assert.Equal(t, http.StatusNoContent, env.do(http.MethodPatch, readPath, "false", admin).Code)
	assert.False(t, isRead())

	assert.Equal(t, http.StatusNoContent, env.do(http.MethodPatch, readPath, map[string]bool{"isRead": true}, admin).Code)
	assert.True(t, isRead())

	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodPatch, readPath, `"talvez"`, admin).Code)
}

func TestSettingsEndpoints(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login(adminEmail, adminPassword).Token
	user := env.createUser(admin, "ana@example.com")

	rec := env.do(http.MethodPut, "/api/Configuration/TICKET_PREFIXO", `"SUP"`, admin)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = env.do(http.MethodPut, "/api/Configuration/SESSAO_TIMEOUT_MINUTOS", `{"valor": 60}`, admin)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = env.do(http.MethodPut, "/api/Configuration/SESSAO_TIMEOUT_MINUTOS", `{"valor": "muito"}`, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPut, "/api/Configuration/TICKET_PREFIXO", `"X"`, user)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(http.MethodGet, "/api/Configuration/public", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	pub := decode[map[string]string](t, rec)
	assert.Equal(t, "SUP", pub["TICKET_PREFIXO"])
	assert.Equal(t, "60", pub["SESSAO_TIMEOUT_MINUTOS"])

	assert.Equal(t, http.StatusForbidden, env.do(http.MethodGet, "/api/Configuration/MAX_TENTATIVAS_LOGIN", nil, user).Code)
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/api/Configuration/MAX_TENTATIVAS_LOGIN", nil, admin).Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, "/api/Configuration/TICKET_PREFIXO", nil, "").Code)

	rec = env.do(http.MethodGet, "/api/Configuration/system-info", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	info := decode[transport.SystemInfo](t, rec)
	assert.EqualValues(t, 2, info.Statistics.ActiveUsers)
}

func ptr[T any](v T) *T { return &v }
