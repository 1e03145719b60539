package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/agentdesk/internal/desk/domain"
	"github.com/stretchr/testify/require"
)

func TestDashboardSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sara, omar := f.agent(t, "sara"), f.agent(t, "omar")

	_, err := f.agents.RegisterAgent(ctx, RegisterRequest{Name: "new", Email: "new@example.com", Password: testPassword})
	require.NoError(t, err)

	for range 6 {
		f.client(t, sara, "active", domain.PlanAnnual)
	}
	_, err = f.clients.CreateClient(ctx, omar, CreateClientRequest{
		ClientName:      "lapsed",
		DeviceCount:     1,
		SoftwareVersion: domain.SoftwareComputer,
		Plan:            domain.PlanMonthly,
		Start:           day(2023, time.June, 1),
	})
	require.NoError(t, err)

	dash := &DashboardService{Store: f.store, Clock: f.clock}

	all, err := dash.Summary(ctx, f.admin)
	require.NoError(t, err)
	require.Equal(t, 7, all.TotalClients)
	require.Equal(t, 6, all.ActiveClients)
	require.Equal(t, 1, all.ExpiredClients)
	require.Equal(t, 3, all.TotalAgents)
	require.Equal(t, 1, all.PendingAgents)
	require.Len(t, all.RecentClients, recentClientsLimit)

	mine, err := dash.Summary(ctx, omar)
	require.NoError(t, err)
	require.Equal(t, 1, mine.TotalClients)
	require.Equal(t, 0, mine.ActiveClients)
	require.Equal(t, 1, mine.ExpiredClients)
	require.Zero(t, mine.TotalAgents)
	require.Len(t, mine.RecentClients, 1)
}
