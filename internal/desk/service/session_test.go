package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/agentdesk/internal/desk/domain"
	"github.com/stretchr/testify/require"
)

// TestZeroSessionRejected checks that an empty session never falls through
// to an unscoped query.
func TestZeroSessionRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sara, omar := f.agent(t, "sara"), f.agent(t, "omar")
	c := f.client(t, sara, "Corner Shop", domain.PlanMonthly)
	f.client(t, omar, "Bakery", domain.PlanAnnual)

	var zero domain.AuthSession
	dash := &DashboardService{Store: f.store, Clock: f.clock}
	mfa := &MFAService{Store: f.store, Issuer: "AgentDesk"}
	name := "renamed"

	list, total, err := f.clients.ListClients(ctx, zero, ClientQuery{})
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
	require.Empty(t, list)
	require.Zero(t, total)

	sum, err := dash.Summary(ctx, zero)
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
	require.Zero(t, sum.TotalClients)

	tests := []struct {
		name string
		call func() error
	}{
		{"get agent", func() error {
			_, err := f.agents.GetAgent(ctx, zero, sara.AgentID)
			return err
		}},
		{"list agents", func() error {
			_, _, err := f.agents.ListAgents(ctx, zero, AgentQuery{})
			return err
		}},
		{"update agent", func() error {
			_, err := f.agents.UpdateAgent(ctx, zero, sara.AgentID, UpdateAgentRequest{Name: &name})
			return err
		}},
		{"approve agent", func() error {
			_, err := f.agents.Approve(ctx, zero, sara.AgentID)
			return err
		}},
		{"delete agent", func() error {
			_, err := f.agents.DeleteAgent(ctx, zero, sara.AgentID, domain.Disposition{Kind: domain.DispositionCascade})
			return err
		}},
		{"change password", func() error {
			return f.auth.ChangePassword(ctx, zero, testPassword, "another password")
		}},
		{"create client", func() error {
			_, err := f.clients.CreateClient(ctx, zero, CreateClientRequest{
				AgentID:         sara.AgentID,
				ClientName:      "Stray",
				DeviceCount:     1,
				SoftwareVersion: domain.SoftwareComputer,
				Plan:            domain.PlanMonthly,
			})
			return err
		}},
		{"get client", func() error {
			_, err := f.clients.GetClient(ctx, zero, c.ID)
			return err
		}},
		{"update client", func() error {
			_, err := f.clients.UpdateClient(ctx, zero, c.ID, UpdateClientRequest{ClientName: &name})
			return err
		}},
		{"delete client", func() error {
			return f.clients.DeleteClient(ctx, zero, c.ID)
		}},
		{"renew subscription", func() error {
			_, err := f.clients.RenewSubscription(ctx, zero, c.ID, domain.PlanAnnual, domain.EffectiveFromCurrentEnd)
			return err
		}},
		{"reassign client", func() error {
			_, err := f.clients.ReassignClient(ctx, zero, c.ID, omar.AgentID)
			return err
		}},
		{"enroll mfa", func() error {
			_, err := mfa.Enroll(ctx, zero)
			return err
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.call(), domain.ErrUnauthenticated)
		})
	}

	// Nothing changed
	require.Equal(t, 1, f.clientsOf(t, sara.AgentID))
	require.Equal(t, 1, f.clientsOf(t, omar.AgentID))
}
