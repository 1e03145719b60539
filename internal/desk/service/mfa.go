package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/agentdesk/internal/desk/domain"
	"github.com/aussiebroadwan/agentdesk/internal/desk/store"
	"github.com/aussiebroadwan/agentdesk/pkg/slogx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

type MFAService struct {
	Store  store.Store
	Issuer string // shown in authenticator apps
}

// Enroll generates a TOTP secret for the actor. MFA is not enabled until
// Verify succeeds; enrolling again replaces an unverified secret.
func (s *MFAService) Enroll(ctx context.Context, session domain.AuthSession) (domain.MFAEnrollResponse, error) {
	if err := requireSession(session); err != nil {
		return domain.MFAEnrollResponse{}, err
	}
	a, err := s.Store.Agents().GetAgentByID(ctx, session.AgentID)
	if err != nil {
		return domain.MFAEnrollResponse{}, err
	}
	if a.MFAEnabled != nil {
		return domain.MFAEnrollResponse{}, domain.ErrMFAAlreadyEnabled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: a.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return domain.MFAEnrollResponse{}, fmt.Errorf("generate totp key: %w", err)
	}

	if err := s.Store.Agents().UpdateMFASecret(ctx, a.ID, key.Secret()); err != nil {
		return domain.MFAEnrollResponse{}, fmt.Errorf("store mfa secret: %w", err)
	}

	return domain.MFAEnrollResponse{
		Secret:  key.Secret(),
		URL:     key.URL(),
		Issuer:  s.Issuer,
		Account: a.Email,
	}, nil
}

// Verify checks a code against the enrolled secret and enables MFA.
func (s *MFAService) Verify(ctx context.Context, session domain.AuthSession, code string) error {
	if err := requireSession(session); err != nil {
		return err
	}
	a, err := s.Store.Agents().GetAgentByID(ctx, session.AgentID)
	if err != nil {
		return err
	}
	if a.MFAEnabled != nil {
		return domain.ErrMFAAlreadyEnabled
	}
	if a.MFASecret == nil || *a.MFASecret == "" {
		return domain.ErrMFANotEnrolled
	}
	if !totp.Validate(code, *a.MFASecret) {
		slogx.FromContext(ctx).Warn("invalid totp code during enrollment", slog.String("agent_id", a.ID))
		return domain.ErrInvalidTOTPCode
	}

	if err := s.Store.Agents().EnableMFA(ctx, a.ID); err != nil {
		return fmt.Errorf("enable mfa: %w", err)
	}
	slogx.FromContext(ctx).Info("mfa enabled", slog.String("agent_id", a.ID))
	return nil
}

// Disable removes MFA after checking a current code.
func (s *MFAService) Disable(ctx context.Context, session domain.AuthSession, code string) error {
	if err := requireSession(session); err != nil {
		return err
	}
	a, err := s.Store.Agents().GetAgentByID(ctx, session.AgentID)
	if err != nil {
		return err
	}
	if a.MFAEnabled == nil || a.MFASecret == nil {
		return domain.ErrMFANotEnabled
	}
	if !totp.Validate(code, *a.MFASecret) {
		slogx.FromContext(ctx).Warn("invalid totp code during disable", slog.String("agent_id", a.ID))
		return domain.ErrInvalidTOTPCode
	}

	if err := s.Store.Agents().DisableMFA(ctx, a.ID); err != nil {
		return fmt.Errorf("disable mfa: %w", err)
	}
	slogx.FromContext(ctx).Info("mfa disabled", slog.String("agent_id", a.ID))
	return nil
}
