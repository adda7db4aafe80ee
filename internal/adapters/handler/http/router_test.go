package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-fit/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-fit/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-fit/internal/core/services"
)

type testAPI struct {
	router *gin.Engine
}

func newTestAPI(t *testing.T, limit RateLimit) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger, _ := test.NewNullLogger()

	accounts := repository.NewInMemoryAccountRepository()
	ledger := repository.NewInMemoryLedgerRepository()
	tokens := services.NewTokenService("handler-test-secret", "kanso-test", time.Hour, accounts, cache.NewMemoryRevocationStore())

	router := NewRouter(RouterDependencies{
		AuthHandler:    NewAuthHandler(services.NewAuthService(accounts), tokens),
		AccountHandler: NewAccountHandler(services.NewAccountService(accounts)),
		LedgerHandler:  NewLedgerHandler(services.NewLedgerService(accounts, ledger, nil)),
		StatsHandler:   NewStatsHandler(services.NewStatsService(accounts, ledger)),
		Sessions:       tokens,
		Log:            logger,
		RateLimit:      limit,
		StartTime:      time.Now(),
	})

	return &testAPI{router: router}
}

func (a *testAPI) do(method, path, token string, body any, headers ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// signup registers and logs in, returning the bearer token.
func (a *testAPI) signup(t *testing.T, username string) string {
	t.Helper()

	w := a.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{"username": username, "password": "Password123!"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": username, "password": "Password123!"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp loginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func noLimit() RateLimit {
	return RateLimit{Requests: 10000, Window: time.Minute}
}

func TestRouter_Health(t *testing.T) {
	api := newTestAPI(t, noLimit())

	w := api.do(http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]string](t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "disabled", body["database"])
	assert.Equal(t, "disabled", body["redis"])
}

func TestRouter_MetricsAndDocs(t *testing.T) {
	api := newTestAPI(t, noLimit())
	api.do(http.MethodGet, "/health", "", nil)

	w := api.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "kanso_fit_http_requests_total")

	w = api.do(http.MethodGet, "/swagger/doc.json", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Kanso Fit API")
}

func TestRouter_CORSPreflight(t *testing.T) {
	api := newTestAPI(t, noLimit())

	w := api.do(http.MethodOptions, "/api/v1/ledger/calories", "", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Idempotency-Key")
}

func TestRouter_LocalRateLimit(t *testing.T) {
	api := newTestAPI(t, RateLimit{Requests: 2, Window: time.Minute})

	for i := 0; i < 2; i++ {
		w := api.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "nobody", "password": "x"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := api.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "nobody", "password": "x"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/health", "", nil).Code, "health is not rate limited")
}
