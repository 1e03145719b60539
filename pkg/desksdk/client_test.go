package desksdk_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/agentdesk/pkg/desksdk"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, mux *http.ServeMux) *desksdk.Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return desksdk.NewClient(srv.URL + "/")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLoginAndSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req desksdk.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "sara@example.com", req.Email)

		writeJSON(w, http.StatusOK, desksdk.LoginResponse{
			AccessToken: "tok",
			TokenType:   "Bearer",
			ExpiresIn:   3600,
			Agent:       desksdk.AgentResponse{ID: "a1", Role: "agent"},
		})
	})
	mux.HandleFunc("GET /v1/clients", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.Equal(t, "expired", r.URL.Query().Get("status"))
		require.Equal(t, "10", r.URL.Query().Get("limit"))
		require.False(t, r.URL.Query().Has("agent_id"))

		writeJSON(w, http.StatusOK, desksdk.ClientList{Total: 1, Clients: []desksdk.ClientResponse{{ID: "c1"}}})
	})
	mux.HandleFunc("DELETE /v1/clients/{id}", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "c1", r.PathValue("id"))
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /v1/clients/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, desksdk.StatusResponse{ClientID: r.PathValue("id"), Status: "active", AsOf: r.URL.Query().Get("as_of")})
	})

	c := newServer(t, mux)
	ctx := t.Context()

	s, err := c.Login(ctx, "sara@example.com", "pw", "")
	require.NoError(t, err)
	require.Equal(t, "a1", s.Agent().ID)
	require.WithinDuration(t, time.Now().Add(time.Hour), s.ExpiresAt(), time.Minute)

	list, err := s.ListClients(ctx, desksdk.ClientFilter{Status: "expired", Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)

	require.NoError(t, s.DeleteClient(ctx, "c1"))

	st, err := s.SubscriptionStatus(ctx, "c1", time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, "2025-04-02", st.AsOf)
}

func TestAPIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "en", r.Header.Get("Accept-Language"))
		writeJSON(w, http.StatusForbidden, desksdk.ErrorResponse{
			Error:            desksdk.ErrorCodeApprovalPending,
			ErrorDescription: "Your account is awaiting administrator approval.",
		})
	})
	mux.HandleFunc("DELETE /v1/agents/{id}", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "cascade", r.URL.Query().Get("disposition"))
		writeJSON(w, http.StatusInternalServerError, desksdk.ErrorResponse{
			Error:   desksdk.ErrorCodePartialFailure,
			Details: map[string]any{"agent_id": r.PathValue("id"), "disposed": 3},
		})
	})
	mux.HandleFunc("GET /livez", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	c := newServer(t, mux)
	c.Lang = "en"
	ctx := t.Context()

	_, err := c.Login(ctx, "sara@example.com", "pw", "")
	require.True(t, desksdk.IsCode(err, desksdk.ErrorCodeApprovalPending))

	var apiErr *desksdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	require.Equal(t, "Your account is awaiting administrator approval.", apiErr.Description)

	s := c.NewSessionFromToken("tok", 60)
	_, err = s.DeleteAgent(ctx, "a1", desksdk.DeleteAgentRequest{Disposition: "cascade"})
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, desksdk.ErrorCodePartialFailure, apiErr.Code)
	require.EqualValues(t, 3, apiErr.Details["disposed"])

	_, err = c.GetLiveness(ctx)
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, desksdk.ErrorCodeInternal, apiErr.Code)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestExpiredSession(t *testing.T) {
	called := false
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { called = true })

	s := newServer(t, mux).NewSessionFromToken("tok", -1)
	_, err := s.Me(t.Context())
	require.ErrorIs(t, err, desksdk.ErrSessionExpired)
	require.False(t, called)
}
