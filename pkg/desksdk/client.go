package desksdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// HeaderBootstrapToken carries the bootstrap token.
const HeaderBootstrapToken = "X-Bootstrap-Token"

// Client calls the AgentDesk API. It is safe for concurrent use.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Lang is sent as Accept-Language; the server default applies when empty.
	Lang string
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Bootstrap creates the first admin account.
func (c *Client) Bootstrap(ctx context.Context, token string, req BootstrapRequest) (*BootstrapResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/bootstrap", "", req, map[string]string{
		HeaderBootstrapToken: token,
	})
	if err != nil {
		return nil, err
	}

	var out BootstrapResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an agent account awaiting approval.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AgentResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/register", "", req, nil)
	if err != nil {
		return nil, err
	}

	var out AgentResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and returns a Session. totpCode is required once the
// account has MFA enabled.
func (c *Client) Login(ctx context.Context, email, password, totpCode string) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/login", "", LoginRequest{
		Email:    email,
		Password: password,
		TOTPCode: totpCode,
	}, nil)
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return newSession(c, &out), nil
}

// NewSessionFromToken wraps a token obtained earlier.
func (c *Client) NewSessionFromToken(accessToken string, expiresIn int) *Session {
	return &Session{
		client:      c,
		accessToken: accessToken,
		expiresAt:   time.Now().Add(time.Duration(expiresIn) * time.Second),
	}
}

func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness returns the readiness report. A degraded service answers
// 503 with the report, which is returned as an *APIError.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *Client) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, "", nil, nil)
	if err != nil {
		return nil, err
	}

	var out HealthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetJWKS returns the public keys that verify session tokens.
func (c *Client) GetJWKS(ctx context.Context) (*JWKS, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/.well-known/jwks.json", "", nil, nil)
	if err != nil {
		return nil, err
	}

	var out JWKS
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
