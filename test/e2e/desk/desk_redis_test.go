package desk_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/agentdesk/pkg/desksdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedis starts redis on a fresh network reachable as "redis".
func setupRedis(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	nw, err := network.New(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = nw.Remove(context.Background()) })

	redis, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:          "redis:7-alpine",
			ExposedPorts:   []string{"6379/tcp"},
			Networks:       []string{nw.Name},
			NetworkAliases: map[string][]string{nw.Name: {"redis"}},
			WaitingFor:     wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = redis.Terminate(context.Background()) })

	return nw.Name
}

// TestCrossTransferWithRedisLocks deletes two agents into each other at the
// same time. Both deletions lock both agents, so exactly one wins and every
// client ends up with the survivor.
func TestCrossTransferWithRedisLocks(t *testing.T) {
	nw := setupRedis(t)
	client := setupDeskContainer(t, withNetwork(nw), withEnv(map[string]string{
		"LOCK_BACKEND": "redis",
		"REDIS_ADDR":   "redis:6379",
	}))

	admin := bootstrapAdmin(t, client)
	ctx := t.Context()

	a := approvedAgent(t, client, admin, "Ali", "ali@example.com")
	b := approvedAgent(t, client, admin, "Badr", "badr@example.com")
	for _, name := range []string{"A1", "A2", "A3"} {
		newClient(t, a, name, "01/02/2024", "monthly")
	}
	for _, name := range []string{"B1", "B2"} {
		newClient(t, b, name, "01/02/2024", "annual")
	}
	aID, bID := a.Agent().ID, b.Agent().ID

	type outcome struct {
		res *desksdk.DeleteAgentResponse
		err error
	}
	results := make(chan outcome, 2)
	for _, pair := range [][2]string{{aID, bID}, {bID, aID}} {
		go func() {
			res, err := admin.DeleteAgent(ctx, pair[0], desksdk.DeleteAgentRequest{
				Disposition:   "transfer",
				TargetAgentID: pair[1],
			})
			results <- outcome{res, err}
		}()
	}

	var won *desksdk.DeleteAgentResponse
	for range 2 {
		o := <-results
		if o.err == nil {
			require.Nil(t, won, "only one deletion may succeed")
			won = o.res
			continue
		}

		var apiErr *desksdk.APIError
		require.ErrorAs(t, o.err, &apiErr)
		require.Contains(t, []int{http.StatusNotFound, http.StatusUnprocessableEntity}, apiErr.StatusCode, apiErr.Error())
	}
	require.NotNil(t, won)

	survivor := aID
	if won.AgentID == aID {
		survivor = bID
	}

	all, err := admin.ListClients(ctx, desksdk.ClientFilter{})
	require.NoError(t, err)
	require.Len(t, all.Clients, 5)
	for _, c := range all.Clients {
		require.Equal(t, survivor, c.AgentID, c.ClientName)
	}
}
