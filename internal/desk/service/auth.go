package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/agentdesk/internal/desk/domain"
	"github.com/aussiebroadwan/agentdesk/internal/desk/metrics"
	"github.com/aussiebroadwan/agentdesk/internal/desk/store"
	"github.com/aussiebroadwan/agentdesk/pkg/cryptox"
	"github.com/aussiebroadwan/agentdesk/pkg/jwtx"
	"github.com/aussiebroadwan/agentdesk/pkg/slogx"
	"github.com/pquerna/otp/totp"
)

type AuthService struct {
	Store   store.Store
	Tokens  *jwtx.Issuer
	Metrics *metrics.Metrics
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	Session     domain.AuthSession
}

// Login checks credentials and the approval gate and issues a session
// token. Nothing is issued on any failure.
func (s *AuthService) Login(ctx context.Context, email, password, totpCode string) (LoginResult, error) {
	l := slogx.FromContext(ctx)

	res, err := s.login(ctx, email, password, totpCode)
	switch {
	case err == nil:
		s.Metrics.LoginAttempt("success")
		l.Info("agent logged in", slog.String("agent_id", res.Session.AgentID))
	case errors.Is(err, domain.ErrInvalidCredentials):
		s.Metrics.LoginAttempt("invalid_credentials")
		l.Warn("login rejected: invalid credentials")
	case errors.Is(err, domain.ErrApprovalPending), errors.Is(err, domain.ErrApprovalRejected):
		s.Metrics.LoginAttempt("not_approved")
		l.Warn("login rejected: account not approved", slog.Any("error", err))
	case errors.Is(err, domain.ErrMFARequired), errors.Is(err, domain.ErrInvalidTOTPCode):
		s.Metrics.LoginAttempt("mfa")
		l.Warn("login rejected: mfa", slog.Any("error", err))
	default:
		s.Metrics.LoginAttempt("error")
		l.Error("login failed", slog.Any("error", err))
	}
	return res, err
}

func (s *AuthService) login(ctx context.Context, email, password, totpCode string) (LoginResult, error) {
	// 1. Load the account
	a, err := s.Store.Agents().GetAgentByEmail(ctx, normaliseEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return LoginResult{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, fmt.Errorf("load agent: %w", err)
	}

	// 2. Verify the password
	if err := cryptox.VerifyPassword(password, a.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			return LoginResult{}, domain.ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("verify password: %w", err)
	}
	if !a.IsActive {
		return LoginResult{}, domain.ErrInvalidCredentials
	}

	// 3. Approval gate
	if err := domain.ApprovalError(a); err != nil {
		return LoginResult{}, err
	}

	// 4. Second factor
	amr := []string{jwtx.AMRPassword}
	if a.MFAEnabled != nil {
		if totpCode == "" {
			return LoginResult{}, domain.ErrMFARequired
		}
		if a.MFASecret == nil || !totp.Validate(totpCode, *a.MFASecret) {
			return LoginResult{}, domain.ErrInvalidTOTPCode
		}
		amr = append(amr, jwtx.AMROTP)
	}

	// 5. Upgrade hashes produced with older parameters
	if cryptox.NeedsRehash(a.PasswordHash) {
		if hash, err := cryptox.HashPassword(password); err == nil {
			if err := s.Store.Agents().UpdatePasswordHash(ctx, a.ID, hash); err != nil {
				slogx.FromContext(ctx).Warn("failed to rehash password", slog.Any("error", err))
			}
		}
	}

	// 6. Issue the token
	token, exp, err := s.Tokens.Issue(a.ID, string(a.Role), a.Name, amr)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		AccessToken: token,
		ExpiresAt:   exp,
		Session:     domain.NewAuthSession(a),
	}, nil
}

// Authenticate verifies a bearer token and resolves the session behind it.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.AuthSession, error) {
	claims, err := s.Tokens.Verify(token)
	if err != nil {
		slogx.FromContext(ctx).Debug("token rejected", slog.Any("error", err))
		return domain.AuthSession{}, domain.ErrUnauthenticated
	}
	return s.Resolve(ctx, claims.Subject)
}

// Resolve reloads the account and re-applies the approval gate, so a
// revoked approval takes effect on the next request.
func (s *AuthService) Resolve(ctx context.Context, agentID string) (domain.AuthSession, error) {
	a, err := s.Store.Agents().GetAgentByID(ctx, agentID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.AuthSession{}, domain.ErrUnauthenticated
	}
	if err != nil {
		return domain.AuthSession{}, fmt.Errorf("load agent: %w", err)
	}
	if !a.IsActive {
		return domain.AuthSession{}, domain.ErrUnauthenticated
	}
	if err := domain.ApprovalError(a); err != nil {
		return domain.AuthSession{}, err
	}
	return domain.NewAuthSession(a), nil
}

// ChangePassword replaces the actor's password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, session domain.AuthSession, current, next string) error {
	if err := requireSession(session); err != nil {
		return err
	}
	l := slogx.FromContext(ctx).With(slog.String("agent_id", session.AgentID))

	a, err := s.Store.Agents().GetAgentByID(ctx, session.AgentID)
	if err != nil {
		return err
	}
	if err := cryptox.VerifyPassword(current, a.PasswordHash); err != nil {
		l.Warn("password change rejected")
		return domain.ErrInvalidCredentials
	}
	if err := domain.ValidatePassword(next); err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.Store.Agents().UpdatePasswordHash(ctx, a.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	l.Info("password changed")
	return nil
}
