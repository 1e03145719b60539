package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/agentdesk/internal/desk/domain"
	"github.com/aussiebroadwan/agentdesk/internal/desk/metrics"
	"github.com/aussiebroadwan/agentdesk/internal/desk/store"
)

var sweptPlans = []domain.PlanType{
	domain.PlanMonthly,
	domain.PlanSemiAnnual,
	domain.PlanAnnual,
	domain.PlanPermanent,
}

// HousekeepingService periodically sweeps subscriptions: it refreshes the
// subscription gauges and logs clients whose subscription ends within
// Window.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Clock    Clock
	Interval time.Duration
	Window   time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService defaults interval to 1 hour and window to 7 days.
func NewHousekeepingService(s store.Store, logger *slog.Logger, m *metrics.Metrics, clock Clock, interval, window time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	if window <= 0 {
		window = 7 * 24 * time.Hour
	}

	return &HousekeepingService{
		Store:    s,
		Logger:   logger,
		Metrics:  m,
		Clock:    clock,
		Interval: interval,
		Window:   window,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the sweep immediately and then every Interval until Stop.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval, "window", s.Window)
}

// Stop blocks until an in-progress sweep has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Sweep(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// SweepResult summarises one sweep.
type SweepResult struct {
	Active        int
	Expired       int
	PendingAgents int
	ExpiringSoon  []domain.Client
}

// Sweep performs one pass. Each step is independent; a failing step is
// logged and the others still run.
func (s *HousekeepingService) Sweep(ctx context.Context) SweepResult {
	var res SweepResult
	today := s.Clock.Today()

	for _, plan := range sweptPlans {
		active, err := s.Store.Clients().CountClients(ctx, store.ClientFilter{Plan: plan, ActiveOn: &today})
		if err != nil {
			s.Logger.Error("failed to count active subscriptions", "plan", plan, "error", err)
			continue
		}
		expired, err := s.Store.Clients().CountClients(ctx, store.ClientFilter{Plan: plan, ExpiredOn: &today})
		if err != nil {
			s.Logger.Error("failed to count expired subscriptions", "plan", plan, "error", err)
			continue
		}
		s.Metrics.SetSubscriptions(string(plan), string(domain.SubscriptionActive), active)
		s.Metrics.SetSubscriptions(string(plan), string(domain.SubscriptionExpired), expired)
		res.Active += active
		res.Expired += expired
	}

	pending, err := s.Store.Agents().CountAgents(ctx, store.AgentFilter{
		Role:           domain.RoleAgent,
		ApprovalStatus: domain.ApprovalPending,
	})
	if err != nil {
		s.Logger.Error("failed to count pending agents", "error", err)
	} else {
		s.Metrics.SetPendingAgents(pending)
		res.PendingAgents = pending
	}

	horizon := domain.DateOf(today.Add(s.Window))
	soon, err := s.Store.Clients().ListClients(ctx, store.ClientFilter{ActiveOn: &today, EndsBefore: &horizon})
	if err != nil {
		s.Logger.Error("failed to list expiring subscriptions", "error", err)
	} else {
		s.Metrics.SetExpiringSoon(len(soon))
		res.ExpiringSoon = soon
		for _, c := range soon {
			s.Logger.Info("subscription expiring soon",
				"client_id", c.ID,
				"agent_id", c.AgentID,
				"plan", c.Subscription.Plan,
				"end", c.Subscription.End.Format(time.DateOnly),
			)
		}
	}

	s.Logger.Info("housekeeping sweep completed",
		"active", res.Active,
		"expired", res.Expired,
		"pending_agents", res.PendingAgents,
		"expiring_soon", len(res.ExpiringSoon),
	)
	return res
}
