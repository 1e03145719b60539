package service

import (
	"context"

	"github.com/aussiebroadwan/agentdesk/internal/desk/domain"
	"github.com/aussiebroadwan/agentdesk/internal/desk/store"
	"golang.org/x/sync/errgroup"
)

const recentClientsLimit = 5

type DashboardService struct {
	Store store.Store
	Clock Clock
}

// Summary counts clients and agents visible to the actor. Agents see only
// their own clients and no agent counts.
func (s *DashboardService) Summary(ctx context.Context, session domain.AuthSession) (domain.DashboardSummary, error) {
	if err := requireSession(session); err != nil {
		return domain.DashboardSummary{}, err
	}
	var (
		out   domain.DashboardSummary
		today = s.Clock.Today()
		scope = store.ClientFilter{}
	)
	if !session.IsAdmin() {
		scope.AgentID = session.AgentID
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		out.TotalClients, err = s.Store.Clients().CountClients(ctx, scope)
		return err
	})
	g.Go(func() (err error) {
		f := scope
		f.ActiveOn = &today
		out.ActiveClients, err = s.Store.Clients().CountClients(ctx, f)
		return err
	})
	g.Go(func() (err error) {
		f := scope
		f.ExpiredOn = &today
		out.ExpiredClients, err = s.Store.Clients().CountClients(ctx, f)
		return err
	})
	g.Go(func() (err error) {
		f := scope
		f.Limit = recentClientsLimit
		out.RecentClients, err = s.Store.Clients().ListClients(ctx, f)
		return err
	})
	if session.IsAdmin() {
		g.Go(func() (err error) {
			out.TotalAgents, err = s.Store.Agents().CountAgents(ctx, store.AgentFilter{Role: domain.RoleAgent})
			return err
		})
		g.Go(func() (err error) {
			out.PendingAgents, err = s.Store.Agents().CountAgents(ctx, store.AgentFilter{
				Role:           domain.RoleAgent,
				ApprovalStatus: domain.ApprovalPending,
			})
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return domain.DashboardSummary{}, err
	}
	return out, nil
}
