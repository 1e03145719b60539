package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/agentdesk/internal/desk/domain"
	"github.com/aussiebroadwan/agentdesk/internal/desk/store"
	"github.com/aussiebroadwan/agentdesk/pkg/idx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgres starts a throwaway PostgreSQL container and returns a
// migrated store connected to it.
func setupPostgres(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "desk",
			"POSTGRES_PASSWORD": "desk",
			"POSTGRES_DB":       "desk",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://desk:desk@%s:%s/desk?sslmode=disable", host, port.Port())
	s, err := NewStore(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestPostgresStore(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	agent := domain.Agent{
		ID:             idx.New().String(),
		Name:           "Huda",
		Email:          "huda@example.com",
		Role:           domain.RoleAgent,
		ApprovalStatus: domain.ApprovalPending,
		IsActive:       true,
		PasswordHash:   "hash",
	}
	require.NoError(t, s.Agents().CreateAgent(ctx, agent))

	dup := agent
	dup.ID = idx.New().String()
	dup.Email = "HUDA@example.com"
	require.ErrorIs(t, s.Agents().CreateAgent(ctx, dup), store.ErrAlreadyExists)

	start := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	sub, err := domain.NewSubscription(domain.PlanMonthly, start)
	require.NoError(t, err)

	client := domain.Client{
		ID:              idx.New().String(),
		ClientName:      "Pharmacy",
		ActivationCode:  "Q1W2E3",
		DeviceCount:     2,
		SoftwareVersion: domain.SoftwareAndroid,
		Subscription:    sub,
		AgentID:         agent.ID,
		CreatedBy:       agent.ID,
	}
	require.NoError(t, s.Clients().CreateClient(ctx, client))

	got, err := s.Clients().GetClientByID(ctx, client.ID)
	require.NoError(t, err)
	require.Equal(t, sub, got.Subscription)

	_, err = s.db.ExecContext(ctx, `UPDATE agents SET approval_status = NULL WHERE id = $1`, agent.ID)
	require.NoError(t, err)
	a, err := s.Agents().GetAgentByID(ctx, agent.ID)
	require.NoError(t, err)
	require.Equal(t, store.MissingApprovalStatus, a.ApprovalStatus)

	err = s.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Clients().DeleteClientsByAgent(ctx, agent.ID); err != nil {
			return err
		}
		return tx.Agents().DeleteAgent(ctx, agent.ID)
	})
	require.NoError(t, err)

	_, err = s.Agents().GetAgentByID(ctx, agent.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}
