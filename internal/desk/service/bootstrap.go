package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/agentdesk/internal/desk/domain"
	"github.com/aussiebroadwan/agentdesk/internal/desk/store"
	"github.com/aussiebroadwan/agentdesk/pkg/slogx"
)

type BootstrapService struct {
	Store store.Store
	Token string // BOOTSTRAP_TOKEN; bootstrap over HTTP is disabled when empty
}

// IsBootstrapped reports whether any admin account exists.
func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	n, err := s.Store.Agents().CountAgents(ctx, store.AgentFilter{Role: domain.RoleAdmin})
	if err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	return n > 0, nil
}

// Bootstrap creates the first admin when the token matches and no admin
// exists yet.
func (s *BootstrapService) Bootstrap(ctx context.Context, token string, req domain.BootstrapData) (domain.Agent, error) {
	l := slogx.FromContext(ctx)

	// 1. Check if already bootstrapped
	done, err := s.IsBootstrapped(ctx)
	if err != nil {
		return domain.Agent{}, err
	}
	if done {
		l.Warn("attempted bootstrap on already-bootstrapped system")
		return domain.Agent{}, domain.ErrBootstrapAlready
	}

	// 2. Validate provided token
	if s.Token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(s.Token)) != 1 {
		l.Warn("unauthorized bootstrap attempt")
		return domain.Agent{}, domain.ErrBootstrapUnauthorized
	}

	// 3. Create the admin
	a, err := s.CreateAdmin(ctx, req)
	if err != nil {
		return domain.Agent{}, err
	}

	l.Info("successfully bootstrapped system", slog.String("admin_id", a.ID))
	return a, nil
}

// CreateAdmin creates an admin account without any token check. It backs
// the create-admin command.
func (s *BootstrapService) CreateAdmin(ctx context.Context, req domain.BootstrapData) (domain.Agent, error) {
	a, err := buildAgent(RegisterRequest{
		Name:     req.AdminName,
		Email:    req.AdminEmail,
		Password: req.AdminPassword,
	})
	if err != nil {
		return domain.Agent{}, err
	}
	a.Role = domain.RoleAdmin
	a.ApprovalStatus = domain.ApprovalApproved

	agents := &AgentService{Store: s.Store}
	if err := agents.insert(ctx, a); err != nil {
		return domain.Agent{}, err
	}
	return s.Store.Agents().GetAgentByID(ctx, a.ID)
}
