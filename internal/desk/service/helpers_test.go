package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/agentdesk/internal/desk/domain"
	"github.com/aussiebroadwan/agentdesk/internal/desk/store"
	"github.com/aussiebroadwan/agentdesk/internal/desk/store/drivers/sqlite"
	"github.com/aussiebroadwan/agentdesk/pkg/jwtx"
	"github.com/aussiebroadwan/agentdesk/pkg/keylock"
	"github.com/stretchr/testify/require"
)

const testPassword = "correct horse"

var testNow = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

type fixture struct {
	store   store.Store
	clock   Clock
	agents  *AgentService
	clients *ClientService
	auth    *AuthService
	admin   domain.AuthSession
}

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s := newTestStore(t)
	locks := keylock.NewMemory()
	clock := Clock{NowFunc: func() time.Time { return testNow }}

	signer, err := jwtx.GenerateSigner()
	require.NoError(t, err)

	f := &fixture{
		store:   s,
		clock:   clock,
		agents:  &AgentService{Store: s, Locks: locks},
		clients: &ClientService{Store: s, Locks: locks, Clock: clock},
		auth:    &AuthService{Store: s, Tokens: jwtx.NewIssuer("agentdesk-test", signer)},
	}

	boot := &BootstrapService{Store: s}
	admin, err := boot.CreateAdmin(context.Background(), domain.BootstrapData{
		AdminName:     "Admin",
		AdminEmail:    "admin@example.com",
		AdminPassword: testPassword,
	})
	require.NoError(t, err)
	f.admin = domain.NewAuthSession(admin)
	return f
}

// agent creates an approved agent and returns its session.
func (f *fixture) agent(t *testing.T, name string) domain.AuthSession {
	t.Helper()
	a, err := f.agents.CreateAgent(context.Background(), f.admin, CreateAgentRequest{
		RegisterRequest: RegisterRequest{
			Name:     name,
			Email:    name + "@example.com",
			Password: testPassword,
		},
	})
	require.NoError(t, err)
	return domain.NewAuthSession(a)
}

func (f *fixture) client(t *testing.T, owner domain.AuthSession, name string, plan domain.PlanType) domain.Client {
	t.Helper()
	c, err := f.clients.CreateClient(context.Background(), owner, CreateClientRequest{
		ClientName:      name,
		DeviceCount:     1,
		SoftwareVersion: domain.SoftwareComputer,
		Plan:            plan,
	})
	require.NoError(t, err)
	return c
}

func (f *fixture) clientsOf(t *testing.T, agentID string) int {
	t.Helper()
	n, err := f.store.Clients().CountClients(context.Background(), store.ClientFilter{AgentID: agentID})
	require.NoError(t, err)
	return n
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
