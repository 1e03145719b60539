package domain

import (
	"strings"
	"time"
)

// Role is the role of an account.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleAgent Role = "agent"
)

// ParseRole parses the wire form of a role.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleAgent:
		return r, nil
	}
	return "", ErrInvalidRole
}

// ApprovalStatus gates whether an agent may sign in.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// ParseApprovalStatus parses the wire form of an approval status. An empty
// string is not a status; callers decide the default explicitly.
func ParseApprovalStatus(s string) (ApprovalStatus, error) {
	switch a := ApprovalStatus(strings.ToLower(strings.TrimSpace(s))); a {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return a, nil
	}
	return "", ErrInvalidApprovalStatus
}

// Agent is an account of the system. Admins and sales agents share the table.
type Agent struct {
	ID             string
	Name           string
	Email          string
	Phone          string
	Address        string
	Role           Role
	ApprovalStatus ApprovalStatus
	IsActive       bool
	CreatedBy      *string
	PasswordHash   string
	MFAEnabled     *time.Time
	MFASecret      *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (a Agent) IsAdmin() bool { return a.Role == RoleAdmin }

// MinPasswordLength is the shortest password accepted at registration or
// password change.
const MinPasswordLength = 8

// ValidatePassword enforces MinPasswordLength, counted in characters.
func ValidatePassword(pw string) error {
	if len([]rune(pw)) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// ApprovalError returns the sign-in error for an account that fails
// CanAuthenticate, or nil.
func ApprovalError(a Agent) error {
	if CanAuthenticate(a) {
		return nil
	}
	switch a.ApprovalStatus {
	case ApprovalRejected:
		return ErrApprovalRejected
	case ApprovalPending:
		return ErrApprovalPending
	}
	return ErrUnauthorized
}

// CanAuthenticate reports whether the account may sign in. Admins are
// implicitly approved. It must be evaluated against freshly loaded state on
// every attempt.
func CanAuthenticate(a Agent) bool {
	switch a.Role {
	case RoleAdmin:
		return true
	case RoleAgent:
		return a.ApprovalStatus == ApprovalApproved
	default:
		return false
	}
}

// approvalTransitions lists the allowed approval moves. Re-invoking a
// decision on a resolved agent is allowed, as is sending it back to review.
var approvalTransitions = map[ApprovalStatus][]ApprovalStatus{
	ApprovalPending:  {ApprovalPending, ApprovalApproved, ApprovalRejected},
	ApprovalApproved: {ApprovalPending, ApprovalApproved, ApprovalRejected},
	ApprovalRejected: {ApprovalPending, ApprovalApproved, ApprovalRejected},
}

// CanTransition reports whether an agent in status from may move to to.
func CanTransition(from, to ApprovalStatus) bool {
	for _, allowed := range approvalTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// TransitionApproval returns the agent with its approval status set to to.
func TransitionApproval(a Agent, to ApprovalStatus) (Agent, error) {
	if a.Role != RoleAgent {
		return a, ErrNotApprovable
	}
	if !CanTransition(a.ApprovalStatus, to) {
		return a, ErrInvalidApprovalStatus
	}
	a.ApprovalStatus = to
	return a, nil
}

// AuthSession identifies the actor of an operation. It is built per request
// from freshly loaded account state and passed explicitly.
type AuthSession struct {
	AgentID string
	Role    Role
	Name    string
}

// NewAuthSession builds the session of an account that passed CanAuthenticate.
func NewAuthSession(a Agent) AuthSession {
	return AuthSession{AgentID: a.ID, Role: a.Role, Name: a.Name}
}

func (s AuthSession) IsAdmin() bool { return s.Role == RoleAdmin }

// CanAccess reports whether the actor may see records owned by agentID.
func (s AuthSession) CanAccess(agentID string) bool {
	return s.IsAdmin() || (s.AgentID != "" && s.AgentID == agentID)
}
