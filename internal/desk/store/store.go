package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/agentdesk/internal/desk/domain"
)

var (
	// ErrNotFound is domain.ErrNotFound so callers above the store can
	// match it without importing this package.
	ErrNotFound      = domain.ErrNotFound
	ErrAlreadyExists = errors.New("store: already exists")
)

// MissingApprovalStatus is the status reported for agent rows whose
// approval_status column is NULL after migrations have run. Legacy rows are
// backfilled to approved by migration 000002; anything NULL after that was
// written outside the application and is treated as awaiting review.
const MissingApprovalStatus = domain.ApprovalPending

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this and expose one sub-repository per table.
type Store interface {
	Agents() Agents
	Clients() Clients

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// AgentFilter narrows agent queries. Zero fields do not filter.
type AgentFilter struct {
	Role           domain.Role
	ApprovalStatus domain.ApprovalStatus
	Search         string // case-insensitive match on name or email
	Limit          int
	Offset         int
}

// ClientFilter narrows client queries. Zero fields do not filter.
type ClientFilter struct {
	AgentID string
	Search  string // case-insensitive match on client or organization name
	Plan    domain.PlanType

	// ActiveOn keeps clients whose subscription_end is on or after the date.
	ActiveOn *time.Time
	// ExpiredOn keeps clients whose subscription_end is before the date.
	ExpiredOn *time.Time
	// EndsBefore keeps clients whose subscription_end is on or before the date.
	// Combined with ActiveOn it selects an expiry window.
	EndsBefore *time.Time

	Limit  int
	Offset int
}

// AgentProfile holds the mutable descriptive fields of an agent.
type AgentProfile struct {
	Name     string
	Email    string
	Phone    string
	Address  string
	IsActive bool
}

// ClientDetails holds the mutable descriptive fields of a client.
type ClientDetails struct {
	ClientName       string
	OrganizationName string
	ActivityType     string
	Phone            string
	Address          string
	ActivationCode   string
	DeviceCount      int
	SoftwareVersion  domain.SoftwareVersion
	Notes            string
}

type Agents interface {
	// CreateAgent inserts a new agent (id is provided by the app via ULID).
	CreateAgent(ctx context.Context, a domain.Agent) error

	// GetAgentByID returns an agent by id.
	GetAgentByID(ctx context.Context, id string) (domain.Agent, error)

	// GetAgentByEmail is used during login; the match is case-insensitive.
	GetAgentByEmail(ctx context.Context, email string) (domain.Agent, error)

	// ListAgents returns agents matching the filter, newest first.
	ListAgents(ctx context.Context, f AgentFilter) ([]domain.Agent, error)

	// CountAgents counts agents matching the filter (limit/offset ignored).
	CountAgents(ctx context.Context, f AgentFilter) (int, error)

	// UpdateAgentProfile mutates descriptive fields and bumps updated_at.
	UpdateAgentProfile(ctx context.Context, id string, p AgentProfile) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, id string, hash string) error

	// SetApprovalStatus persists an approval decision.
	SetApprovalStatus(ctx context.Context, id string, status domain.ApprovalStatus) error

	// BackfillApprovalStatus sets status on every row where it is NULL and
	// returns the number of rows changed.
	BackfillApprovalStatus(ctx context.Context, status domain.ApprovalStatus) (int, error)

	// UpdateMFASecret stores a TOTP secret without enabling MFA.
	UpdateMFASecret(ctx context.Context, id string, secret string) error

	// EnableMFA marks MFA as enabled (sets mfa_enabled timestamp).
	EnableMFA(ctx context.Context, id string) error

	// DisableMFA clears mfa_enabled and mfa_secret.
	DisableMFA(ctx context.Context, id string) error

	// DeleteAgent removes an agent. It fails while clients still reference it.
	DeleteAgent(ctx context.Context, id string) error
}

type Clients interface {
	// CreateClient inserts a new client (id is provided by the app via ULID).
	CreateClient(ctx context.Context, c domain.Client) error

	// GetClientByID returns a client by id.
	GetClientByID(ctx context.Context, id string) (domain.Client, error)

	// ListClients returns clients matching the filter, newest first.
	ListClients(ctx context.Context, f ClientFilter) ([]domain.Client, error)

	// CountClients counts clients matching the filter (limit/offset ignored).
	CountClients(ctx context.Context, f ClientFilter) (int, error)

	// UpdateClient mutates descriptive fields and bumps updated_at.
	UpdateClient(ctx context.Context, id string, d ClientDetails) error

	// UpdateSubscription replaces the plan and period of a client.
	UpdateSubscription(ctx context.Context, id string, s domain.Subscription) error

	// ReassignClient moves a single client to another agent.
	ReassignClient(ctx context.Context, id string, agentID string) error

	// ReassignClients moves every client of fromAgentID to toAgentID and
	// returns the number moved.
	ReassignClients(ctx context.Context, fromAgentID, toAgentID string) (int, error)

	// DeleteClientsByAgent deletes every client of agentID and returns the number deleted.
	DeleteClientsByAgent(ctx context.Context, agentID string) (int, error)

	// DeleteClient removes a client.
	DeleteClient(ctx context.Context, id string) error
}
