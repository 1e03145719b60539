package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aussiebroadwan/agentdesk/internal/desk/domain"
	"github.com/aussiebroadwan/agentdesk/internal/desk/metrics"
	"github.com/stretchr/testify/require"
)

func TestHousekeepingSweep(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sara := f.agent(t, "sara")

	create := func(name string, plan domain.PlanType, start time.Time) {
		_, err := f.clients.CreateClient(ctx, sara, CreateClientRequest{
			ClientName:      name,
			DeviceCount:     1,
			SoftwareVersion: domain.SoftwareAndroid,
			Plan:            plan,
			Start:           start,
		})
		require.NoError(t, err)
	}
	create("ends in 3 days", domain.PlanMonthly, day(2024, time.February, 18))
	create("ends today", domain.PlanMonthly, day(2024, time.February, 15))
	create("ends next month", domain.PlanMonthly, day(2024, time.March, 10))
	create("expired", domain.PlanMonthly, day(2024, time.January, 1))
	create("permanent", domain.PlanPermanent, day(2024, time.January, 1))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hk := NewHousekeepingService(f.store, logger, metrics.New(), f.clock, time.Hour, 7*24*time.Hour)

	res := hk.Sweep(ctx)
	require.Equal(t, 4, res.Active)
	require.Equal(t, 1, res.Expired)
	require.Zero(t, res.PendingAgents)

	var names []string
	for _, c := range res.ExpiringSoon {
		names = append(names, c.ClientName)
	}
	require.ElementsMatch(t, []string{"ends in 3 days", "ends today"}, names)
}

func TestHousekeepingStartStop(t *testing.T) {
	f := newFixture(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	hk := NewHousekeepingService(f.store, logger, nil, f.clock, 0, 0)
	require.Equal(t, time.Hour, hk.Interval)
	require.Equal(t, 7*24*time.Hour, hk.Window)

	hk.Start()
	hk.Stop()
}
