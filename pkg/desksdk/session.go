package desksdk

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Session is an authenticated connection. It is safe for concurrent use.
type Session struct {
	client *Client

	mu          sync.RWMutex
	accessToken string
	expiresAt   time.Time
	agent       AgentResponse
}

func newSession(c *Client, lr *LoginResponse) *Session {
	return &Session{
		client:      c,
		accessToken: lr.AccessToken,
		expiresAt:   time.Now().Add(time.Duration(lr.ExpiresIn) * time.Second),
		agent:       lr.Agent,
	}
}

// Agent is the account as returned at login.
func (s *Session) Agent() AgentResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.agent
}

func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

func (s *Session) token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.expiresAt.IsZero() && time.Now().After(s.expiresAt) {
		return "", ErrSessionExpired
	}
	return s.accessToken, nil
}

// call sends an authenticated request. A nil out expects 204 No Content.
func (s *Session) call(ctx context.Context, method, path string, body, out any, expectedStatus int) error {
	token, err := s.token()
	if err != nil {
		return err
	}

	resp, err := s.client.doRequest(ctx, method, path, token, body, nil)
	if err != nil {
		return err
	}
	if out == nil {
		return checkStatusNoContent(resp)
	}
	return decodeJSON(resp, out, expectedStatus)
}

// Me returns the caller's account.
func (s *Session) Me(ctx context.Context) (*AgentResponse, error) {
	var out AgentResponse
	if err := s.call(ctx, http.MethodGet, "/v1/me", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.agent = out
	s.mu.Unlock()
	return &out, nil
}

func (s *Session) UpdateMe(ctx context.Context, req UpdateAgentRequest) (*AgentResponse, error) {
	var out AgentResponse
	if err := s.call(ctx, http.MethodPatch, "/v1/me", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ChangePassword(ctx context.Context, current, next string) error {
	return s.call(ctx, http.MethodPut, "/v1/me/password", ChangePasswordRequest{
		CurrentPassword: current,
		NewPassword:     next,
	}, nil, http.StatusNoContent)
}

// EnrollTOTP starts MFA enrollment. MFA is enabled once VerifyTOTP succeeds.
func (s *Session) EnrollTOTP(ctx context.Context) (*MFAEnrollResponse, error) {
	var out MFAEnrollResponse
	if err := s.call(ctx, http.MethodPost, "/v1/mfa/totp/enroll", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) VerifyTOTP(ctx context.Context, code string) error {
	return s.call(ctx, http.MethodPost, "/v1/mfa/totp/verify", MFACodeRequest{Code: code}, nil, http.StatusNoContent)
}

func (s *Session) DisableTOTP(ctx context.Context, code string) error {
	return s.call(ctx, http.MethodDelete, "/v1/mfa/totp", MFACodeRequest{Code: code}, nil, http.StatusNoContent)
}

func (s *Session) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	var out DashboardResponse
	if err := s.call(ctx, http.MethodGet, "/v1/dashboard", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
