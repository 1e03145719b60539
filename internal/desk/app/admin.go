package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/agentdesk/internal/desk/domain"
	"github.com/aussiebroadwan/agentdesk/internal/desk/service"
	"github.com/aussiebroadwan/agentdesk/pkg/cryptox"
	"github.com/aussiebroadwan/agentdesk/pkg/slogx"
)

// Migrate opens the configured database, applies pending migrations and
// closes it again.
func Migrate(ctx context.Context, cfg Config, logger *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	db, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	return db.Close()
}

// CreateAdmin creates an admin account directly in the database. Unlike
// the bootstrap endpoint it works when admins already exist.
func CreateAdmin(ctx context.Context, cfg Config, logger *slog.Logger, data domain.BootstrapData) (domain.Agent, error) {
	if err := cfg.Validate(); err != nil {
		return domain.Agent{}, err
	}
	if err := cryptox.LoadPepper(cfg.PepperFile); err != nil {
		return domain.Agent{}, fmt.Errorf("failed to load pepper: %w", err)
	}

	db, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return domain.Agent{}, err
	}
	defer db.Close()

	svc := &service.BootstrapService{Store: db}
	a, err := svc.CreateAdmin(slogx.WithContext(ctx, logger), data)
	if err != nil {
		return domain.Agent{}, err
	}

	logger.Info("admin created", slog.String("admin_id", a.ID), slog.String("email", a.Email))
	return a, nil
}

// BackfillApproval sets status on every agent whose approval status is
// missing and returns how many rows changed.
func BackfillApproval(ctx context.Context, cfg Config, logger *slog.Logger, status domain.ApprovalStatus) (int, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}

	db, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	n, err := db.Agents().BackfillApprovalStatus(ctx, status)
	if err != nil {
		return 0, fmt.Errorf("backfill approval status: %w", err)
	}

	logger.Info("approval status backfilled", slog.String("status", string(status)), slog.Int("rows", n))
	return n, nil
}
