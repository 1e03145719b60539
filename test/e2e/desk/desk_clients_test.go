package desk_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/aussiebroadwan/agentdesk/pkg/desksdk"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestSubscriptionLifecycle creates, renews and classifies a subscription.
func TestSubscriptionLifecycle(t *testing.T) {
	client := setupDeskContainer(t)
	admin := bootstrapAdmin(t, client)
	agent := approvedAgent(t, client, admin, "Omar", "omar@example.com")
	ctx := t.Context()

	c := newClient(t, agent, "Corner Shop", "01/03/2024", "monthly")
	require.Equal(t, "2024-03-01", c.Subscription.Start)
	require.Equal(t, "2024-04-01", c.Subscription.End)
	require.Equal(t, agent.Agent().ID, c.AgentID)
	require.NotEmpty(t, c.ActivationCode)

	t.Run("rejects bad input", func(t *testing.T) {
		_, err := agent.CreateClient(ctx, desksdk.CreateClientRequest{
			ClientName: "Bad", DeviceCount: 1, SoftwareVersion: "computer", Plan: "weekly",
		})
		requireCode(t, err, http.StatusBadRequest, desksdk.ErrorCodeInvalidPlanType)

		_, err = agent.CreateClient(ctx, desksdk.CreateClientRequest{
			ClientName: "Bad", DeviceCount: 1, SoftwareVersion: "computer", Plan: "monthly",
			Start: time.Now().AddDate(0, 0, 3).Format("02/01/2006"),
		})
		requireCode(t, err, http.StatusBadRequest, desksdk.ErrorCodeFutureDate)

		_, err = agent.CreateClient(ctx, desksdk.CreateClientRequest{
			ClientName: "Bad", DeviceCount: 1, SoftwareVersion: "computer", Plan: "monthly",
			Start: "31/02/2024",
		})
		requireCode(t, err, http.StatusBadRequest, desksdk.ErrorCodeInvalidDate)
	})

	t.Run("renews from current end", func(t *testing.T) {
		renewed, err := agent.RenewSubscription(ctx, c.ID, desksdk.RenewRequest{
			Plan:          "annual",
			EffectiveFrom: "current_end",
		})
		require.NoError(t, err)
		require.Equal(t, "2024-04-01", renewed.Subscription.Start)
		require.Equal(t, "2025-04-01", renewed.Subscription.End)
	})

	t.Run("status is inclusive of the end date", func(t *testing.T) {
		st, err := agent.SubscriptionStatus(ctx, c.ID, date(2025, time.April, 1))
		require.NoError(t, err)
		require.Equal(t, "active", st.Status)

		st, err = agent.SubscriptionStatus(ctx, c.ID, date(2025, time.April, 2))
		require.NoError(t, err)
		require.Equal(t, "expired", st.Status)
	})

	t.Run("end date helper", func(t *testing.T) {
		tests := []struct {
			start time.Time
			plan  string
			want  string
		}{
			{date(2024, time.January, 31), "monthly", "2024-03-02"},
			{date(2024, time.August, 31), "semi_annual", "2025-03-03"},
			{date(2024, time.February, 29), "annual", "2025-03-01"},
			{date(2024, time.May, 5), "permanent", "2099-12-31"},
		}
		for _, tc := range tests {
			resp, err := agent.EndDate(ctx, tc.start, tc.plan)
			require.NoError(t, err)
			require.Equal(t, tc.want, resp.End, "%s %s", tc.start.Format(time.DateOnly), tc.plan)
		}

		normalised, err := agent.ValidateDate(ctx, "5/3/2024")
		require.NoError(t, err)
		require.Equal(t, "2024-03-05", normalised)
	})

	t.Run("other agents cannot see the client", func(t *testing.T) {
		other := approvedAgent(t, client, admin, "Layla", "layla@example.com")
		_, err := other.GetClient(ctx, c.ID)
		requireCode(t, err, http.StatusForbidden, desksdk.ErrorCodeForbidden)

		list, err := other.ListClients(ctx, desksdk.ClientFilter{})
		require.NoError(t, err)
		require.Empty(t, list.Clients)
	})

	t.Run("dashboard", func(t *testing.T) {
		dash, err := agent.Dashboard(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, dash.TotalClients)
		require.Len(t, dash.RecentClients, 1)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, agent.DeleteClient(ctx, c.ID))
		_, err := agent.GetClient(ctx, c.ID)
		requireCode(t, err, http.StatusNotFound, desksdk.ErrorCodeNotFound)
	})
}

// TestDeleteAgentDispositions covers refusing, transferring and cascading.
func TestDeleteAgentDispositions(t *testing.T) {
	client := setupDeskContainer(t)
	admin := bootstrapAdmin(t, client)
	ctx := t.Context()

	from := approvedAgent(t, client, admin, "Khalid", "khalid@example.com")
	to := approvedAgent(t, client, admin, "Noura", "noura@example.com")
	newClient(t, from, "Bakery", "10/01/2024", "annual")
	newClient(t, from, "Pharmacy", "15/02/2024", "monthly")
	fromID, toID := from.Agent().ID, to.Agent().ID

	_, err := admin.DeleteAgent(ctx, fromID, desksdk.DeleteAgentRequest{})
	apiErr := requireCode(t, err, http.StatusConflict, desksdk.ErrorCodeAgentHasClients)
	require.NotEmpty(t, apiErr.Description)

	_, err = admin.DeleteAgent(ctx, fromID, desksdk.DeleteAgentRequest{
		Disposition:   "transfer",
		TargetAgentID: "01ARZ3NDEKTSV4RRFFQ69G5FAV",
	})
	requireCode(t, err, http.StatusUnprocessableEntity, desksdk.ErrorCodeTargetAgentNotFound)

	res, err := admin.DeleteAgent(ctx, fromID, desksdk.DeleteAgentRequest{
		Disposition:   "transfer",
		TargetAgentID: toID,
	})
	require.NoError(t, err)
	require.Equal(t, "transfer", res.Disposition)
	require.Equal(t, 2, res.Clients)

	moved, err := to.ListClients(ctx, desksdk.ClientFilter{})
	require.NoError(t, err)
	require.Len(t, moved.Clients, 2)

	// The deleted agent's session is no longer accepted
	_, err = from.Me(ctx)
	requireCode(t, err, http.StatusUnauthorized, desksdk.ErrorCodeUnauthenticated)

	res, err = admin.DeleteAgent(ctx, toID, desksdk.DeleteAgentRequest{Disposition: "cascade"})
	require.NoError(t, err)
	require.Equal(t, 2, res.Clients)

	all, err := admin.ListClients(ctx, desksdk.ClientFilter{})
	require.NoError(t, err)
	require.Empty(t, all.Clients)
}
