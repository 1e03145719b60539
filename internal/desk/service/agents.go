package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/agentdesk/internal/desk/domain"
	"github.com/aussiebroadwan/agentdesk/internal/desk/metrics"
	"github.com/aussiebroadwan/agentdesk/internal/desk/store"
	"github.com/aussiebroadwan/agentdesk/pkg/cryptox"
	"github.com/aussiebroadwan/agentdesk/pkg/idx"
	"github.com/aussiebroadwan/agentdesk/pkg/keylock"
	"github.com/aussiebroadwan/agentdesk/pkg/slogx"
)

type AgentService struct {
	Store   store.Store
	Locks   keylock.Locker
	Metrics *metrics.Metrics
}

// RegisterRequest is a self-registration. The account starts pending.
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
}

// CreateAgentRequest is an account created by an admin. Role defaults to
// agent and ApprovalStatus to approved.
type CreateAgentRequest struct {
	RegisterRequest
	Role           domain.Role
	ApprovalStatus domain.ApprovalStatus
}

type UpdateAgentRequest struct {
	Name     *string
	Email    *string
	Phone    *string
	Address  *string
	IsActive *bool // admin only
}

type AgentQuery struct {
	Role           domain.Role
	ApprovalStatus domain.ApprovalStatus
	Search         string
	Page
}

// DeleteResult reports what happened to the clients of a deleted agent.
type DeleteResult struct {
	AgentID     string
	Disposition domain.DispositionKind
	Clients     int
}

// RegisterAgent creates a self-registered agent awaiting approval.
func (s *AgentService) RegisterAgent(ctx context.Context, req RegisterRequest) (domain.Agent, error) {
	l := slogx.FromContext(ctx)

	a, err := buildAgent(req)
	if err != nil {
		l.Warn("rejected registration", slog.Any("error", err))
		return domain.Agent{}, err
	}
	a.Role = domain.RoleAgent
	a.ApprovalStatus = domain.ApprovalPending

	if err := s.insert(ctx, a); err != nil {
		return domain.Agent{}, err
	}

	l.Info("agent registered", slog.String("agent_id", a.ID))
	return s.Store.Agents().GetAgentByID(ctx, a.ID)
}

// CreateAgent creates an account on behalf of an admin.
func (s *AgentService) CreateAgent(ctx context.Context, session domain.AuthSession, req CreateAgentRequest) (domain.Agent, error) {
	l := slogx.FromContext(ctx)

	// 1. Only admins create accounts
	if err := requireAdmin(session); err != nil {
		l.Warn("non-admin attempted to create agent", slog.String("actor_id", session.AgentID))
		return domain.Agent{}, err
	}

	// 2. Validate input
	a, err := buildAgent(req.RegisterRequest)
	if err != nil {
		return domain.Agent{}, err
	}

	a.Role = req.Role
	if a.Role == "" {
		a.Role = domain.RoleAgent
	}
	if _, err := domain.ParseRole(string(a.Role)); err != nil {
		return domain.Agent{}, err
	}

	// 3. Admins are always approved; agents default to approved unless the
	// admin asks for another status
	a.ApprovalStatus = domain.ApprovalApproved
	if a.Role == domain.RoleAgent && req.ApprovalStatus != "" {
		status, err := domain.ParseApprovalStatus(string(req.ApprovalStatus))
		if err != nil {
			return domain.Agent{}, err
		}
		a.ApprovalStatus = status
	}

	createdBy := session.AgentID
	a.CreatedBy = &createdBy

	// 4. Persist
	if err := s.insert(ctx, a); err != nil {
		return domain.Agent{}, err
	}

	l.Info("agent created",
		slog.String("agent_id", a.ID),
		slog.String("role", string(a.Role)),
		slog.String("approval_status", string(a.ApprovalStatus)),
		slog.String("created_by", createdBy),
	)
	return s.Store.Agents().GetAgentByID(ctx, a.ID)
}

func (s *AgentService) GetAgent(ctx context.Context, session domain.AuthSession, agentID string) (domain.Agent, error) {
	if err := requireSession(session); err != nil {
		return domain.Agent{}, err
	}
	if !session.CanAccess(agentID) {
		return domain.Agent{}, domain.ErrUnauthorized
	}
	return s.Store.Agents().GetAgentByID(ctx, agentID)
}

// ListAgents returns one page of accounts and the total matching count.
func (s *AgentService) ListAgents(ctx context.Context, session domain.AuthSession, q AgentQuery) ([]domain.Agent, int, error) {
	if err := requireAdmin(session); err != nil {
		return nil, 0, err
	}

	p := q.Page.normalise()
	f := store.AgentFilter{
		Role:           q.Role,
		ApprovalStatus: q.ApprovalStatus,
		Search:         q.Search,
		Limit:          p.Limit,
		Offset:         p.Offset,
	}

	agents, err := s.Store.Agents().ListAgents(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("list agents: %w", err)
	}
	total, err := s.Store.Agents().CountAgents(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("count agents: %w", err)
	}
	return agents, total, nil
}

// ListPendingAgents returns every agent awaiting review, newest first.
func (s *AgentService) ListPendingAgents(ctx context.Context, session domain.AuthSession) ([]domain.Agent, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}
	return s.Store.Agents().ListAgents(ctx, store.AgentFilter{
		Role:           domain.RoleAgent,
		ApprovalStatus: domain.ApprovalPending,
	})
}

// UpdateAgent changes profile fields. Agents may edit their own profile;
// only admins may activate or deactivate an account.
func (s *AgentService) UpdateAgent(ctx context.Context, session domain.AuthSession, agentID string, req UpdateAgentRequest) (domain.Agent, error) {
	if err := requireSession(session); err != nil {
		return domain.Agent{}, err
	}
	if !session.CanAccess(agentID) {
		return domain.Agent{}, domain.ErrUnauthorized
	}
	if req.IsActive != nil && !session.IsAdmin() {
		return domain.Agent{}, domain.ErrUnauthorized
	}

	a, err := s.Store.Agents().GetAgentByID(ctx, agentID)
	if err != nil {
		return domain.Agent{}, err
	}

	p := store.AgentProfile{
		Name:     a.Name,
		Email:    a.Email,
		Phone:    a.Phone,
		Address:  a.Address,
		IsActive: a.IsActive,
	}
	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		p.Email = normaliseEmail(*req.Email)
	}
	if req.Phone != nil {
		p.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		p.Address = strings.TrimSpace(*req.Address)
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if p.Name == "" || !validEmail(p.Email) {
		return domain.Agent{}, domain.ErrInvalidInput
	}

	err = s.Store.Agents().UpdateAgentProfile(ctx, agentID, p)
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.Agent{}, domain.ErrEmailTaken
	}
	if err != nil {
		return domain.Agent{}, fmt.Errorf("update agent: %w", err)
	}
	return s.Store.Agents().GetAgentByID(ctx, agentID)
}

func (s *AgentService) Approve(ctx context.Context, session domain.AuthSession, agentID string) (domain.Agent, error) {
	return s.setApproval(ctx, session, agentID, domain.ApprovalApproved)
}

func (s *AgentService) Reject(ctx context.Context, session domain.AuthSession, agentID string) (domain.Agent, error) {
	return s.setApproval(ctx, session, agentID, domain.ApprovalRejected)
}

// Reopen sends a resolved agent back to review.
func (s *AgentService) Reopen(ctx context.Context, session domain.AuthSession, agentID string) (domain.Agent, error) {
	return s.setApproval(ctx, session, agentID, domain.ApprovalPending)
}

func (s *AgentService) setApproval(ctx context.Context, session domain.AuthSession, agentID string, to domain.ApprovalStatus) (domain.Agent, error) {
	l := slogx.FromContext(ctx).With(slog.String("agent_id", agentID), slog.String("to", string(to)))

	// 1. Only admins decide approvals
	if err := requireAdmin(session); err != nil {
		l.Warn("non-admin attempted approval decision", slog.String("actor_id", session.AgentID))
		return domain.Agent{}, err
	}

	// 2. Serialise with deletion and other decisions on the same agent
	unlock, err := lockAgents(ctx, s.Locks, agentID)
	if err != nil {
		return domain.Agent{}, err
	}
	defer unlock()

	// 3. Apply the transition to fresh state
	a, err := s.Store.Agents().GetAgentByID(ctx, agentID)
	if err != nil {
		return domain.Agent{}, err
	}
	from := a.ApprovalStatus
	a, err = domain.TransitionApproval(a, to)
	if err != nil {
		return domain.Agent{}, err
	}

	// 4. Persist
	if err := s.Store.Agents().SetApprovalStatus(ctx, agentID, a.ApprovalStatus); err != nil {
		l.Error("failed to persist approval decision", slog.Any("error", err))
		return domain.Agent{}, fmt.Errorf("set approval status: %w", err)
	}

	l.Info("approval status changed",
		slog.String("from", string(from)),
		slog.String("actor_id", session.AgentID),
	)
	return s.Store.Agents().GetAgentByID(ctx, agentID)
}

// DeleteAgent deletes an agent and disposes of its clients as the caller
// chose. Clients are transferred or deleted in one transaction, then the
// agent row is deleted. When the second step fails the returned error is a
// *domain.PartialFailureError and a retry with no disposition completes the
// deletion.
func (s *AgentService) DeleteAgent(ctx context.Context, session domain.AuthSession, agentID string, d domain.Disposition) (DeleteResult, error) {
	l := slogx.FromContext(ctx).With(
		slog.String("agent_id", agentID),
		slog.String("disposition", string(d.Kind)),
	)
	res := DeleteResult{AgentID: agentID, Disposition: d.Kind}

	fail := func(err error) (DeleteResult, error) {
		s.Metrics.AgentDeleted(string(d.Kind), outcomeOf(err))
		return res, err
	}

	// 1. Only admins delete agents, and never themselves
	if err := requireAdmin(session); err != nil {
		l.Warn("non-admin attempted to delete agent", slog.String("actor_id", session.AgentID))
		return fail(err)
	}
	if agentID == session.AgentID {
		return fail(domain.ErrSelfDelete)
	}
	switch d.Kind {
	case domain.DispositionNone, domain.DispositionCascade:
	case domain.DispositionTransfer:
		if d.TargetAgentID == "" || d.TargetAgentID == agentID {
			return fail(domain.ErrTargetAgentNotFound)
		}
	default:
		return fail(domain.ErrInvalidDisposition)
	}

	// 2. Serialise with approvals, client creation and transfers touching
	// either agent
	unlock, err := lockAgents(ctx, s.Locks, agentID, d.TargetAgentID)
	if err != nil {
		return fail(err)
	}
	defer unlock()

	// 3. Dispose of the clients atomically
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Agents().GetAgentByID(ctx, agentID); err != nil {
			return err
		}

		if d.Kind == domain.DispositionTransfer {
			_, err := tx.Agents().GetAgentByID(ctx, d.TargetAgentID)
			if errors.Is(err, store.ErrNotFound) {
				return domain.ErrTargetAgentNotFound
			}
			if err != nil {
				return err
			}
		}

		owned, err := tx.Clients().CountClients(ctx, store.ClientFilter{AgentID: agentID})
		if err != nil {
			return fmt.Errorf("count clients: %w", err)
		}
		if owned == 0 {
			return nil
		}

		switch d.Kind {
		case domain.DispositionTransfer:
			res.Clients, err = tx.Clients().ReassignClients(ctx, agentID, d.TargetAgentID)
		case domain.DispositionCascade:
			res.Clients, err = tx.Clients().DeleteClientsByAgent(ctx, agentID)
		default:
			return domain.ErrAgentHasClients
		}
		return err
	})
	if err != nil {
		res.Clients = 0
		if !errors.Is(err, domain.ErrAgentHasClients) && !errors.Is(err, store.ErrNotFound) &&
			!errors.Is(err, domain.ErrTargetAgentNotFound) {
			l.Error("failed to dispose of agent clients", slog.Any("error", err))
		}
		return fail(err)
	}

	// 4. Delete the agent
	if err := s.Store.Agents().DeleteAgent(ctx, agentID); err != nil {
		if res.Clients == 0 {
			l.Error("failed to delete agent", slog.Any("error", err))
			return fail(fmt.Errorf("delete agent: %w", err))
		}
		l.Error("clients disposed but agent deletion failed",
			slog.Int("clients", res.Clients),
			slog.Any("error", err),
		)
		return fail(&domain.PartialFailureError{AgentID: agentID, Disposed: res.Clients, Err: err})
	}

	s.Metrics.AgentDeleted(string(d.Kind), "ok")
	l.Info("agent deleted",
		slog.Int("clients", res.Clients),
		slog.String("target_agent_id", d.TargetAgentID),
		slog.String("actor_id", session.AgentID),
	)
	return res, nil
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrPartialFailure):
		return "partial_failure"
	case errors.Is(err, domain.ErrAgentHasClients):
		return "has_clients"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	default:
		return "error"
	}
}

func buildAgent(req RegisterRequest) (domain.Agent, error) {
	name := strings.TrimSpace(req.Name)
	email := normaliseEmail(req.Email)
	if name == "" || !validEmail(email) {
		return domain.Agent{}, domain.ErrInvalidInput
	}
	if err := domain.ValidatePassword(req.Password); err != nil {
		return domain.Agent{}, err
	}

	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		return domain.Agent{}, fmt.Errorf("hash password: %w", err)
	}

	return domain.Agent{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		Address:      strings.TrimSpace(req.Address),
		IsActive:     true,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

func (s *AgentService) insert(ctx context.Context, a domain.Agent) error {
	err := s.Store.Agents().CreateAgent(ctx, a)
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.ErrEmailTaken
	}
	if err != nil {
		slogx.FromContext(ctx).Error("failed to create agent", slog.Any("error", err))
		return fmt.Errorf("create agent: %w", err)
	}
	return nil
}
