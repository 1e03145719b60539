package desksdk

import "time"

// Dates are exchanged as calendar dates in DateLayout.
const DateLayout = "2006-01-02"

// ============================================================================
// Errors and health
// ============================================================================

// ErrorResponse is the body of every non-2xx response. ErrorDescription is
// localized to the request language.
type ErrorResponse struct {
	Error            string         `json:"error"`
	ErrorDescription string         `json:"error_description"`
	Details          map[string]any `json:"details,omitempty"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Uptime    string            `json:"uptime"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ============================================================================
// Bootstrap and authentication
// ============================================================================

type BootstrapRequest struct {
	AdminName     string `json:"admin_name"`
	AdminEmail    string `json:"admin_email"`
	AdminPassword string `json:"admin_password"`
}

type BootstrapResponse struct {
	AdminID string `json:"admin_id"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TOTPCode string `json:"totp_code,omitempty"`
}

// LoginResponse carries the bearer token of a new session.
type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresIn   int           `json:"expires_in"`
	Agent       AgentResponse `json:"agent"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type MFAEnrollResponse struct {
	Secret  string `json:"secret"`
	URL     string `json:"otpauth_url"`
	Issuer  string `json:"issuer"`
	Account string `json:"account"`
}

type MFACodeRequest struct {
	Code string `json:"code"`
}

// ============================================================================
// Agents
// ============================================================================

type AgentResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	Address        string    `json:"address,omitempty"`
	Role           string    `json:"role"`
	ApprovalStatus string    `json:"approval_status"`
	IsActive       bool      `json:"is_active"`
	MFAEnabled     bool      `json:"mfa_enabled"`
	CreatedBy      string    `json:"created_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type CreateAgentRequest struct {
	RegisterRequest
	Role           string `json:"role,omitempty"`
	ApprovalStatus string `json:"approval_status,omitempty"`
}

// UpdateAgentRequest changes only the fields that are present.
type UpdateAgentRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type AgentList struct {
	Agents []AgentResponse `json:"agents"`
	Total  int             `json:"total"`
}

// DeleteAgentRequest chooses what happens to the agent's clients. An empty
// Disposition refuses to delete an agent that still has clients.
type DeleteAgentRequest struct {
	Disposition   string `json:"disposition,omitempty"` // "", "transfer" or "cascade"
	TargetAgentID string `json:"target_agent_id,omitempty"`
}

type DeleteAgentResponse struct {
	AgentID     string `json:"agent_id"`
	Disposition string `json:"disposition"`
	Clients     int    `json:"clients"`
}

// ============================================================================
// Clients and subscriptions
// ============================================================================

type SubscriptionResponse struct {
	Plan   string `json:"plan"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Status string `json:"status"`
}

type ClientResponse struct {
	ID               string               `json:"id"`
	ClientName       string               `json:"client_name"`
	OrganizationName string               `json:"organization_name,omitempty"`
	ActivityType     string               `json:"activity_type,omitempty"`
	Phone            string               `json:"phone,omitempty"`
	Address          string               `json:"address,omitempty"`
	ActivationCode   string               `json:"activation_code"`
	DeviceCount      int                  `json:"device_count"`
	SoftwareVersion  string               `json:"software_version"`
	Subscription     SubscriptionResponse `json:"subscription"`
	Notes            string               `json:"notes,omitempty"`
	AgentID          string               `json:"agent_id"`
	CreatedBy        string               `json:"created_by"`
	CreatedAt        time.Time            `json:"created_at"`
}

type CreateClientRequest struct {
	ClientName       string `json:"client_name"`
	OrganizationName string `json:"organization_name,omitempty"`
	ActivityType     string `json:"activity_type,omitempty"`
	Phone            string `json:"phone,omitempty"`
	Address          string `json:"address,omitempty"`
	ActivationCode   string `json:"activation_code,omitempty"`
	DeviceCount      int    `json:"device_count"`
	SoftwareVersion  string `json:"software_version"`
	Plan             string `json:"plan"`
	// Start is a d/m/yyyy date; today when empty.
	Start   string `json:"start,omitempty"`
	Notes   string `json:"notes,omitempty"`
	AgentID string `json:"agent_id,omitempty"`
}

type UpdateClientRequest struct {
	ClientName       *string `json:"client_name,omitempty"`
	OrganizationName *string `json:"organization_name,omitempty"`
	ActivityType     *string `json:"activity_type,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	Address          *string `json:"address,omitempty"`
	ActivationCode   *string `json:"activation_code,omitempty"`
	DeviceCount      *int    `json:"device_count,omitempty"`
	SoftwareVersion  *string `json:"software_version,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

type ClientList struct {
	Clients []ClientResponse `json:"clients"`
	Total   int              `json:"total"`
}

type RenewRequest struct {
	Plan          string `json:"plan"`
	EffectiveFrom string `json:"effective_from"` // "today" or "current_end"
}

type StatusResponse struct {
	ClientID string `json:"client_id"`
	Status   string `json:"status"`
	AsOf     string `json:"as_of"`
}

type TransferClientRequest struct {
	TargetAgentID string `json:"target_agent_id"`
}

// ============================================================================
// Date helpers and dashboard
// ============================================================================

type ValidateDateRequest struct {
	Date string `json:"date"`
}

type ValidateDateResponse struct {
	Date string `json:"date"`
}

type EndDateRequest struct {
	Start string `json:"start"` // DateLayout
	Plan  string `json:"plan"`
}

type EndDateResponse struct {
	Start string `json:"start"`
	Plan  string `json:"plan"`
	End   string `json:"end"`
}

type DashboardResponse struct {
	TotalClients   int              `json:"total_clients"`
	ActiveClients  int              `json:"active_clients"`
	ExpiredClients int              `json:"expired_clients"`
	TotalAgents    int              `json:"total_agents,omitempty"`
	PendingAgents  int              `json:"pending_agents,omitempty"`
	RecentClients  []ClientResponse `json:"recent_clients"`
}

// JWK is a public key of the session token signer.
type JWK struct {
	Kty string `json:"kty"`
	Use string `json:"use,omitempty"`
	Alg string `json:"alg,omitempty"`
	Kid string `json:"kid"`
	Crv string `json:"crv"`
	X   string `json:"x"`
}

type JWKS struct {
	Keys []JWK `json:"keys"`
}
