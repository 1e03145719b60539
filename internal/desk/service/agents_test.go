package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aussiebroadwan/agentdesk/internal/desk/domain"
	"github.com/aussiebroadwan/agentdesk/internal/desk/store"
	"github.com/stretchr/testify/require"
)

func TestRegisterAgentStartsPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.agents.RegisterAgent(ctx, RegisterRequest{
		Name:     "Omar",
		Email:    " Omar@Example.com ",
		Password: testPassword,
	})
	require.NoError(t, err)
	require.Equal(t, domain.RoleAgent, a.Role)
	require.Equal(t, domain.ApprovalPending, a.ApprovalStatus)
	require.Equal(t, "omar@example.com", a.Email)
	require.Nil(t, a.CreatedBy)

	_, err = f.agents.RegisterAgent(ctx, RegisterRequest{Name: "Omar 2", Email: "OMAR@example.com", Password: testPassword})
	require.ErrorIs(t, err, domain.ErrEmailTaken)

	_, err = f.agents.RegisterAgent(ctx, RegisterRequest{Name: "Short", Email: "s@example.com", Password: "short"})
	require.ErrorIs(t, err, domain.ErrWeakPassword)

	_, err = f.agents.RegisterAgent(ctx, RegisterRequest{Name: "", Email: "x@example.com", Password: testPassword})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.agents.RegisterAgent(ctx, RegisterRequest{Name: "Bad", Email: "not-an-email", Password: testPassword})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateAgent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("defaults to approved agent", func(t *testing.T) {
		s := f.agent(t, "sara")
		a, err := f.agents.GetAgent(ctx, f.admin, s.AgentID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleAgent, a.Role)
		require.Equal(t, domain.ApprovalApproved, a.ApprovalStatus)
		require.NotNil(t, a.CreatedBy)
		require.Equal(t, f.admin.AgentID, *a.CreatedBy)
	})

	t.Run("explicit status", func(t *testing.T) {
		a, err := f.agents.CreateAgent(ctx, f.admin, CreateAgentRequest{
			RegisterRequest: RegisterRequest{Name: "Huda", Email: "huda@example.com", Password: testPassword},
			ApprovalStatus:  domain.ApprovalPending,
		})
		require.NoError(t, err)
		require.Equal(t, domain.ApprovalPending, a.ApprovalStatus)
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := f.agents.CreateAgent(ctx, f.admin, CreateAgentRequest{
			RegisterRequest: RegisterRequest{Name: "X", Email: "x@example.com", Password: testPassword},
			Role:            domain.Role("owner"),
		})
		require.ErrorIs(t, err, domain.ErrInvalidRole)
	})

	t.Run("agents cannot create accounts", func(t *testing.T) {
		s := f.agent(t, "nour")
		_, err := f.agents.CreateAgent(ctx, s, CreateAgentRequest{
			RegisterRequest: RegisterRequest{Name: "Y", Email: "y@example.com", Password: testPassword},
		})
		require.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestApprovalWorkflow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.agents.RegisterAgent(ctx, RegisterRequest{Name: "Ali", Email: "ali@example.com", Password: testPassword})
	require.NoError(t, err)

	_, err = f.auth.Login(ctx, "ali@example.com", testPassword, "")
	require.ErrorIs(t, err, domain.ErrApprovalPending)

	pending, err := f.agents.ListPendingAgents(ctx, f.admin)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, a.ID, pending[0].ID)

	approved, err := f.agents.Approve(ctx, f.admin, a.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ApprovalApproved, approved.ApprovalStatus)

	res, err := f.auth.Login(ctx, "ali@example.com", testPassword, "")
	require.NoError(t, err)
	require.Equal(t, a.ID, res.Session.AgentID)

	_, err = f.agents.Reject(ctx, f.admin, a.ID)
	require.NoError(t, err)
	_, err = f.auth.Resolve(ctx, a.ID)
	require.ErrorIs(t, err, domain.ErrApprovalRejected)

	reopened, err := f.agents.Reopen(ctx, f.admin, a.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ApprovalPending, reopened.ApprovalStatus)

	_, err = f.agents.Approve(ctx, f.admin, f.admin.AgentID)
	require.ErrorIs(t, err, domain.ErrNotApprovable)

	_, err = f.agents.Approve(ctx, res.Session, a.ID)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.agents.Approve(ctx, f.admin, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestListAndUpdateAgents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sara := f.agent(t, "sara")
	f.agent(t, "salem")
	f.agent(t, "omar")

	list, total, err := f.agents.ListAgents(ctx, f.admin, AgentQuery{Role: domain.RoleAgent, Search: "SA"})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Len(t, list, 2)

	_, _, err = f.agents.ListAgents(ctx, sara, AgentQuery{})
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	name := "Sara K"
	updated, err := f.agents.UpdateAgent(ctx, sara, sara.AgentID, UpdateAgentRequest{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Sara K", updated.Name)

	inactive := false
	_, err = f.agents.UpdateAgent(ctx, sara, sara.AgentID, UpdateAgentRequest{IsActive: &inactive})
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	taken := "omar@example.com"
	_, err = f.agents.UpdateAgent(ctx, sara, sara.AgentID, UpdateAgentRequest{Email: &taken})
	require.ErrorIs(t, err, domain.ErrEmailTaken)

	_, err = f.agents.GetAgent(ctx, sara, f.admin.AgentID)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	updated, err = f.agents.UpdateAgent(ctx, f.admin, sara.AgentID, UpdateAgentRequest{IsActive: &inactive})
	require.NoError(t, err)
	require.False(t, updated.IsActive)

	_, err = f.auth.Resolve(ctx, sara.AgentID)
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestDeleteAgent(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses without disposition", func(t *testing.T) {
		f := newFixture(t)
		a := f.agent(t, "a")
		f.client(t, a, "c1", domain.PlanMonthly)

		_, err := f.agents.DeleteAgent(ctx, f.admin, a.AgentID, domain.Disposition{})
		require.ErrorIs(t, err, domain.ErrAgentHasClients)
		require.Equal(t, 1, f.clientsOf(t, a.AgentID))

		_, err = f.agents.GetAgent(ctx, f.admin, a.AgentID)
		require.NoError(t, err)
	})

	t.Run("agent without clients needs no disposition", func(t *testing.T) {
		f := newFixture(t)
		a := f.agent(t, "a")

		res, err := f.agents.DeleteAgent(ctx, f.admin, a.AgentID, domain.Disposition{})
		require.NoError(t, err)
		require.Zero(t, res.Clients)

		_, err = f.agents.GetAgent(ctx, f.admin, a.AgentID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("transfer moves every client", func(t *testing.T) {
		f := newFixture(t)
		a, b := f.agent(t, "a"), f.agent(t, "b")
		for _, name := range []string{"c1", "c2", "c3"} {
			f.client(t, a, name, domain.PlanAnnual)
		}
		f.client(t, b, "b1", domain.PlanAnnual)

		res, err := f.agents.DeleteAgent(ctx, f.admin, a.AgentID, domain.Transfer(b.AgentID))
		require.NoError(t, err)
		require.Equal(t, 3, res.Clients)
		require.Equal(t, 0, f.clientsOf(t, a.AgentID))
		require.Equal(t, 4, f.clientsOf(t, b.AgentID))
	})

	t.Run("cascade deletes every client", func(t *testing.T) {
		f := newFixture(t)
		a, b := f.agent(t, "a"), f.agent(t, "b")
		f.client(t, a, "c1", domain.PlanMonthly)
		f.client(t, a, "c2", domain.PlanPermanent)
		f.client(t, b, "b1", domain.PlanMonthly)

		res, err := f.agents.DeleteAgent(ctx, f.admin, a.AgentID, domain.CascadeDelete())
		require.NoError(t, err)
		require.Equal(t, 2, res.Clients)
		require.Equal(t, 0, f.clientsOf(t, a.AgentID))
		require.Equal(t, 1, f.clientsOf(t, b.AgentID))
	})

	t.Run("transfer target must exist", func(t *testing.T) {
		f := newFixture(t)
		a := f.agent(t, "a")
		f.client(t, a, "c1", domain.PlanMonthly)

		_, err := f.agents.DeleteAgent(ctx, f.admin, a.AgentID, domain.Transfer("missing"))
		require.ErrorIs(t, err, domain.ErrTargetAgentNotFound)

		_, err = f.agents.DeleteAgent(ctx, f.admin, a.AgentID, domain.Transfer(a.AgentID))
		require.ErrorIs(t, err, domain.ErrTargetAgentNotFound)

		_, err = f.agents.DeleteAgent(ctx, f.admin, a.AgentID, domain.Transfer(""))
		require.ErrorIs(t, err, domain.ErrTargetAgentNotFound)

		require.Equal(t, 1, f.clientsOf(t, a.AgentID))
	})

	t.Run("guards", func(t *testing.T) {
		f := newFixture(t)
		a := f.agent(t, "a")

		_, err := f.agents.DeleteAgent(ctx, a, f.admin.AgentID, domain.CascadeDelete())
		require.ErrorIs(t, err, domain.ErrUnauthorized)

		_, err = f.agents.DeleteAgent(ctx, f.admin, f.admin.AgentID, domain.CascadeDelete())
		require.ErrorIs(t, err, domain.ErrSelfDelete)

		_, err = f.agents.DeleteAgent(ctx, f.admin, "missing", domain.CascadeDelete())
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = f.agents.DeleteAgent(ctx, f.admin, a.AgentID, domain.Disposition{Kind: "archive"})
		require.ErrorIs(t, err, domain.ErrInvalidDisposition)
	})

	t.Run("partial failure is reported and retryable", func(t *testing.T) {
		f := newFixture(t)
		a, b := f.agent(t, "a"), f.agent(t, "b")
		f.client(t, a, "c1", domain.PlanMonthly)
		f.client(t, a, "c2", domain.PlanMonthly)

		cause := errors.New("database is locked")
		broken := *f.agents
		broken.Store = failingDeleteStore{Store: f.store, err: cause}

		_, err := broken.DeleteAgent(ctx, f.admin, a.AgentID, domain.Transfer(b.AgentID))
		require.ErrorIs(t, err, domain.ErrPartialFailure)
		require.ErrorIs(t, err, cause)

		var pf *domain.PartialFailureError
		require.ErrorAs(t, err, &pf)
		require.Equal(t, a.AgentID, pf.AgentID)
		require.Equal(t, 2, pf.Disposed)

		// Step one committed.
		require.Equal(t, 0, f.clientsOf(t, a.AgentID))
		require.Equal(t, 2, f.clientsOf(t, b.AgentID))

		_, err = f.agents.DeleteAgent(ctx, f.admin, a.AgentID, domain.Disposition{})
		require.NoError(t, err)
	})

	t.Run("concurrent deletions are serialised", func(t *testing.T) {
		f := newFixture(t)
		a := f.agent(t, "a")
		f.client(t, a, "c1", domain.PlanMonthly)

		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			errs []error
		)
		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.agents.DeleteAgent(ctx, f.admin, a.AgentID, domain.CascadeDelete())
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}()
		}
		wg.Wait()

		var ok, missing int
		for _, err := range errs {
			switch {
			case err == nil:
				ok++
			case errors.Is(err, store.ErrNotFound):
				missing++
			}
		}
		require.Equal(t, 1, ok)
		require.Equal(t, 3, missing)
	})
}

type failingDeleteStore struct {
	store.Store
	err error
}

func (s failingDeleteStore) Agents() store.Agents {
	return failingAgents{Agents: s.Store.Agents(), err: s.err}
}

type failingAgents struct {
	store.Agents
	err error
}

func (a failingAgents) DeleteAgent(context.Context, string) error { return a.err }
