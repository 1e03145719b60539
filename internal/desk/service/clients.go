package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/agentdesk/internal/desk/domain"
	"github.com/aussiebroadwan/agentdesk/internal/desk/store"
	"github.com/aussiebroadwan/agentdesk/pkg/idx"
	"github.com/aussiebroadwan/agentdesk/pkg/keylock"
	"github.com/aussiebroadwan/agentdesk/pkg/slogx"
)

type ClientService struct {
	Store store.Store
	Locks keylock.Locker
	Clock Clock
}

type CreateClientRequest struct {
	ClientName       string
	OrganizationName string
	ActivityType     string
	Phone            string
	Address          string
	ActivationCode   string // generated when empty
	DeviceCount      int
	SoftwareVersion  domain.SoftwareVersion
	Plan             domain.PlanType
	Start            time.Time // today when zero
	Notes            string

	// AgentID is the owner. Admins must set it; agents always own what
	// they create.
	AgentID string
}

type UpdateClientRequest struct {
	ClientName       *string
	OrganizationName *string
	ActivityType     *string
	Phone            *string
	Address          *string
	ActivationCode   *string
	DeviceCount      *int
	SoftwareVersion  *domain.SoftwareVersion
	Notes            *string
}

// ClientQuery filters client listings. Status is evaluated against today.
type ClientQuery struct {
	AgentID string
	Search  string
	Plan    domain.PlanType
	Status  domain.SubscriptionStatus
	Page
}

func (s *ClientService) CreateClient(ctx context.Context, session domain.AuthSession, req CreateClientRequest) (domain.Client, error) {
	if err := requireSession(session); err != nil {
		return domain.Client{}, err
	}
	l := slogx.FromContext(ctx)

	// 1. Resolve the owner
	owner := req.AgentID
	if !session.IsAdmin() {
		if owner != "" && owner != session.AgentID {
			return domain.Client{}, domain.ErrUnauthorized
		}
		owner = session.AgentID
	}
	if owner == "" {
		return domain.Client{}, domain.ErrInvalidInput
	}

	// 2. Validate and derive the subscription
	c := domain.Client{
		ID:               idx.New().String(),
		ClientName:       strings.TrimSpace(req.ClientName),
		OrganizationName: strings.TrimSpace(req.OrganizationName),
		ActivityType:     strings.TrimSpace(req.ActivityType),
		Phone:            strings.TrimSpace(req.Phone),
		Address:          strings.TrimSpace(req.Address),
		ActivationCode:   strings.ToUpper(strings.TrimSpace(req.ActivationCode)),
		DeviceCount:      req.DeviceCount,
		SoftwareVersion:  req.SoftwareVersion,
		Notes:            strings.TrimSpace(req.Notes),
		AgentID:          owner,
		CreatedBy:        session.AgentID,
		CreatedAt:        time.Now().UTC(),
	}
	d, err := validateDetails(clientDetails(c))
	if err != nil {
		return domain.Client{}, err
	}
	c.SoftwareVersion = d.SoftwareVersion

	start := s.Clock.Today()
	if !req.Start.IsZero() {
		start = domain.DateOf(req.Start)
		if start.After(s.Clock.Today()) {
			return domain.Client{}, domain.ErrFutureDate
		}
	}
	sub, err := domain.NewSubscription(req.Plan, start)
	if err != nil {
		return domain.Client{}, err
	}
	c.Subscription = sub

	if c.ActivationCode == "" {
		if c.ActivationCode, err = domain.GenerateActivationCode(); err != nil {
			return domain.Client{}, fmt.Errorf("generate activation code: %w", err)
		}
	}

	// 3. Hold the owner so it cannot be deleted underneath the insert
	unlock, err := lockAgents(ctx, s.Locks, owner)
	if err != nil {
		return domain.Client{}, err
	}
	defer unlock()

	if _, err := s.Store.Agents().GetAgentByID(ctx, owner); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Client{}, domain.ErrTargetAgentNotFound
		}
		return domain.Client{}, err
	}

	// 4. Persist
	if err := s.Store.Clients().CreateClient(ctx, c); err != nil {
		l.Error("failed to create client", slog.Any("error", err))
		return domain.Client{}, fmt.Errorf("create client: %w", err)
	}

	l.Info("client created",
		slog.String("client_id", c.ID),
		slog.String("agent_id", owner),
		slog.String("plan", string(sub.Plan)),
	)
	return s.Store.Clients().GetClientByID(ctx, c.ID)
}

func (s *ClientService) GetClient(ctx context.Context, session domain.AuthSession, clientID string) (domain.Client, error) {
	if err := requireSession(session); err != nil {
		return domain.Client{}, err
	}
	c, err := s.Store.Clients().GetClientByID(ctx, clientID)
	if err != nil {
		return domain.Client{}, err
	}
	if !session.CanAccess(c.AgentID) {
		return domain.Client{}, domain.ErrUnauthorized
	}
	return c, nil
}

// ListClients returns one page of clients and the total matching count.
// Agents only ever see their own clients.
func (s *ClientService) ListClients(ctx context.Context, session domain.AuthSession, q ClientQuery) ([]domain.Client, int, error) {
	if err := requireSession(session); err != nil {
		return nil, 0, err
	}
	if !session.IsAdmin() {
		if q.AgentID != "" && q.AgentID != session.AgentID {
			return nil, 0, domain.ErrUnauthorized
		}
		q.AgentID = session.AgentID
	}
	if q.Plan != "" && !q.Plan.Valid() {
		return nil, 0, domain.ErrInvalidPlanType
	}

	p := q.Page.normalise()
	f := store.ClientFilter{
		AgentID: q.AgentID,
		Search:  q.Search,
		Plan:    q.Plan,
		Limit:   p.Limit,
		Offset:  p.Offset,
	}

	today := s.Clock.Today()
	switch q.Status {
	case "":
	case domain.SubscriptionActive:
		f.ActiveOn = &today
	case domain.SubscriptionExpired:
		f.ExpiredOn = &today
	default:
		return nil, 0, domain.ErrInvalidInput
	}

	clients, err := s.Store.Clients().ListClients(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("list clients: %w", err)
	}
	total, err := s.Store.Clients().CountClients(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}
	return clients, total, nil
}

func (s *ClientService) UpdateClient(ctx context.Context, session domain.AuthSession, clientID string, req UpdateClientRequest) (domain.Client, error) {
	c, err := s.GetClient(ctx, session, clientID)
	if err != nil {
		return domain.Client{}, err
	}

	d := clientDetails(c)
	if req.ClientName != nil {
		d.ClientName = strings.TrimSpace(*req.ClientName)
	}
	if req.OrganizationName != nil {
		d.OrganizationName = strings.TrimSpace(*req.OrganizationName)
	}
	if req.ActivityType != nil {
		d.ActivityType = strings.TrimSpace(*req.ActivityType)
	}
	if req.Phone != nil {
		d.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		d.Address = strings.TrimSpace(*req.Address)
	}
	if req.ActivationCode != nil {
		d.ActivationCode = strings.ToUpper(strings.TrimSpace(*req.ActivationCode))
	}
	if req.DeviceCount != nil {
		d.DeviceCount = *req.DeviceCount
	}
	if req.SoftwareVersion != nil {
		d.SoftwareVersion = *req.SoftwareVersion
	}
	if req.Notes != nil {
		d.Notes = strings.TrimSpace(*req.Notes)
	}
	d, err = validateDetails(d)
	if err != nil {
		return domain.Client{}, err
	}
	if d.ActivationCode == "" {
		return domain.Client{}, domain.ErrInvalidInput
	}

	if err := s.Store.Clients().UpdateClient(ctx, clientID, d); err != nil {
		return domain.Client{}, fmt.Errorf("update client: %w", err)
	}
	return s.Store.Clients().GetClientByID(ctx, clientID)
}

func (s *ClientService) DeleteClient(ctx context.Context, session domain.AuthSession, clientID string) error {
	c, err := s.GetClient(ctx, session, clientID)
	if err != nil {
		return err
	}
	if err := s.Store.Clients().DeleteClient(ctx, clientID); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	slogx.FromContext(ctx).Info("client deleted",
		slog.String("client_id", clientID),
		slog.String("agent_id", c.AgentID),
		slog.String("actor_id", session.AgentID),
	)
	return nil
}

// ClassifySubscription reports whether the client's subscription is active at now.
func (s *ClientService) ClassifySubscription(ctx context.Context, session domain.AuthSession, clientID string, now time.Time) (domain.SubscriptionStatus, error) {
	c, err := s.GetClient(ctx, session, clientID)
	if err != nil {
		return "", err
	}
	if c.Subscription.End.Before(c.Subscription.Start) {
		return "", domain.ErrInconsistentSubscription
	}
	return domain.Classify(now, c.Subscription.End), nil
}

// RenewSubscription replaces the client's plan and period. Inconsistent
// stored dates are reported, never repaired.
func (s *ClientService) RenewSubscription(ctx context.Context, session domain.AuthSession, clientID string, plan domain.PlanType, from domain.EffectiveFrom) (domain.Client, error) {
	l := slogx.FromContext(ctx).With(slog.String("client_id", clientID))

	c, err := s.GetClient(ctx, session, clientID)
	if err != nil {
		return domain.Client{}, err
	}

	renewed, err := domain.Renew(c.Subscription, plan, from, s.Clock.Today())
	if err != nil {
		if errors.Is(err, domain.ErrInconsistentSubscription) {
			l.Warn("refusing to renew inconsistent subscription",
				slog.Time("start", c.Subscription.Start),
				slog.Time("end", c.Subscription.End),
			)
		}
		return domain.Client{}, err
	}

	if err := s.Store.Clients().UpdateSubscription(ctx, clientID, renewed); err != nil {
		return domain.Client{}, fmt.Errorf("update subscription: %w", err)
	}

	l.Info("subscription renewed",
		slog.String("plan", string(plan)),
		slog.String("effective_from", string(from)),
		slog.Time("end", renewed.End),
	)
	return s.Store.Clients().GetClientByID(ctx, clientID)
}

// ReassignClient moves a single client to another agent.
func (s *ClientService) ReassignClient(ctx context.Context, session domain.AuthSession, clientID, targetAgentID string) (domain.Client, error) {
	if err := requireAdmin(session); err != nil {
		return domain.Client{}, err
	}
	if targetAgentID == "" {
		return domain.Client{}, domain.ErrTargetAgentNotFound
	}

	c, err := s.Store.Clients().GetClientByID(ctx, clientID)
	if err != nil {
		return domain.Client{}, err
	}
	if c.AgentID == targetAgentID {
		return c, nil
	}

	unlock, err := lockAgents(ctx, s.Locks, c.AgentID, targetAgentID)
	if err != nil {
		return domain.Client{}, err
	}
	defer unlock()

	if _, err := s.Store.Agents().GetAgentByID(ctx, targetAgentID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Client{}, domain.ErrTargetAgentNotFound
		}
		return domain.Client{}, err
	}
	if err := s.Store.Clients().ReassignClient(ctx, clientID, targetAgentID); err != nil {
		return domain.Client{}, fmt.Errorf("reassign client: %w", err)
	}

	slogx.FromContext(ctx).Info("client reassigned",
		slog.String("client_id", clientID),
		slog.String("from_agent_id", c.AgentID),
		slog.String("to_agent_id", targetAgentID),
	)
	return s.Store.Clients().GetClientByID(ctx, clientID)
}

// ValidateAndParseDate parses a d/m/yyyy date and rejects dates after today.
func (s *ClientService) ValidateAndParseDate(raw string) (time.Time, error) {
	return domain.ValidateDateInput(raw, s.Clock.Now())
}

func clientDetails(c domain.Client) store.ClientDetails {
	return store.ClientDetails{
		ClientName:       c.ClientName,
		OrganizationName: c.OrganizationName,
		ActivityType:     c.ActivityType,
		Phone:            c.Phone,
		Address:          c.Address,
		ActivationCode:   c.ActivationCode,
		DeviceCount:      c.DeviceCount,
		SoftwareVersion:  c.SoftwareVersion,
		Notes:            c.Notes,
	}
}

// validateDetails checks d and returns it with the software version in
// canonical form.
func validateDetails(d store.ClientDetails) (store.ClientDetails, error) {
	if d.ClientName == "" {
		return d, domain.ErrInvalidInput
	}
	if d.DeviceCount < 1 {
		return d, domain.ErrInvalidDeviceCount
	}
	v, err := domain.ParseSoftwareVersion(string(d.SoftwareVersion))
	if err != nil {
		return d, err
	}
	d.SoftwareVersion = v
	return d, nil
}
