package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/agentdesk/internal/desk/i18n"
	"github.com/aussiebroadwan/agentdesk/internal/desk/metrics"
	"github.com/aussiebroadwan/agentdesk/internal/desk/service"
	"github.com/aussiebroadwan/agentdesk/internal/desk/store/drivers/sqlite"
	"github.com/aussiebroadwan/agentdesk/pkg/desksdk"
	"github.com/aussiebroadwan/agentdesk/pkg/jwtx"
	"github.com/aussiebroadwan/agentdesk/pkg/keylock"
	"github.com/stretchr/testify/require"
)

const (
	testBootstrapToken = "bootstrap-secret"
	testPassword       = "correct horse"
)

var testNow = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

type testEnv struct {
	t      *testing.T
	router *Router

	adminToken string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.GenerateSigner()
	require.NoError(t, err)
	tokens := jwtx.NewIssuer("agentdesk-test", signer)

	tr, err := i18n.New("ar")
	require.NoError(t, err)

	m := metrics.New()
	clock := service.Clock{NowFunc: func() time.Time { return testNow }}
	locks := keylock.NewMemory()

	r := NewRouter(st, tokens, tr, m, clock, "test", slog.New(slog.DiscardHandler))
	r.AuthService = &service.AuthService{Store: st, Tokens: tokens, Metrics: m}
	r.AgentService = &service.AgentService{Store: st, Locks: locks, Metrics: m}
	r.ClientService = &service.ClientService{Store: st, Locks: locks, Clock: clock}
	r.MFAService = &service.MFAService{Store: st, Issuer: "AgentDesk"}
	r.BootstrapService = &service.BootstrapService{Store: st, Token: testBootstrapToken}
	r.DashboardService = &service.DashboardService{Store: st, Clock: clock}
	r.ApplyRoutes()

	return &testEnv{t: t, router: r}
}

type request struct {
	method  string
	path    string
	token   string
	body    any
	headers map[string]string
}

func (e *testEnv) do(req request) *httptest.ResponseRecorder {
	e.t.Helper()

	var body bytes.Buffer
	if req.body != nil {
		require.NoError(e.t, json.NewEncoder(&body).Encode(req.body))
	}

	r := httptest.NewRequest(req.method, req.path, &body)
	r.Header.Set("Content-Type", "application/json")
	if req.token != "" {
		r.Header.Set("Authorization", "Bearer "+req.token)
	}
	for k, v := range req.headers {
		r.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, r)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// requireError asserts the status and machine-readable code of an error response.
func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) desksdk.ErrorResponse {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	body := decode[desksdk.ErrorResponse](t, rec)
	require.Equal(t, code, body.Error)
	require.NotEmpty(t, body.ErrorDescription)
	return body
}

// bootstrap creates the first admin over HTTP and logs in as it.
func (e *testEnv) bootstrap() {
	e.t.Helper()

	rec := e.do(request{
		method:  http.MethodPost,
		path:    "/v1/bootstrap",
		headers: map[string]string{HeaderBootstrapToken: testBootstrapToken},
		body: desksdk.BootstrapRequest{
			AdminName:     "Admin",
			AdminEmail:    "admin@example.com",
			AdminPassword: testPassword,
		},
	})
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())

	e.adminToken = e.login("admin@example.com")
}

func (e *testEnv) login(email string) string {
	e.t.Helper()

	rec := e.do(request{
		method: http.MethodPost,
		path:   "/v1/auth/login",
		body:   desksdk.LoginRequest{Email: email, Password: testPassword},
	})
	require.Equal(e.t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[desksdk.LoginResponse](e.t, rec).AccessToken
}

// agent creates an approved agent as the admin and returns its id and token.
func (e *testEnv) agent(name string) (string, string) {
	e.t.Helper()

	email := name + "@example.com"
	rec := e.do(request{
		method: http.MethodPost,
		path:   "/v1/agents",
		token:  e.adminToken,
		body: desksdk.CreateAgentRequest{
			RegisterRequest: desksdk.RegisterRequest{Name: name, Email: email, Password: testPassword},
		},
	})
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[desksdk.AgentResponse](e.t, rec).ID, e.login(email)
}

func (e *testEnv) client(token, name, start, plan string) desksdk.ClientResponse {
	e.t.Helper()

	rec := e.do(request{
		method: http.MethodPost,
		path:   "/v1/clients",
		token:  token,
		body: desksdk.CreateClientRequest{
			ClientName:      name,
			DeviceCount:     1,
			SoftwareVersion: "computer",
			Plan:            plan,
			Start:           start,
		},
	})
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[desksdk.ClientResponse](e.t, rec)
}
