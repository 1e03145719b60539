package desksdk

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// ClientFilter narrows ListClients. Zero fields are not applied.
type ClientFilter struct {
	AgentID string
	Plan    string
	Status  string // "active" or "expired"
	Search  string
	Limit   int
	Offset  int
}

func (f ClientFilter) query() string {
	q := url.Values{}
	setIf(q, "agent_id", f.AgentID)
	setIf(q, "plan", f.Plan)
	setIf(q, "status", f.Status)
	setIf(q, "q", f.Search)
	setPage(q, f.Limit, f.Offset)
	return encodeQuery(q)
}

func clientPath(id string) string { return "/v1/clients/" + url.PathEscape(id) }

func (s *Session) ListClients(ctx context.Context, f ClientFilter) (*ClientList, error) {
	var out ClientList
	if err := s.call(ctx, http.MethodGet, "/v1/clients"+f.query(), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) CreateClient(ctx context.Context, req CreateClientRequest) (*ClientResponse, error) {
	var out ClientResponse
	if err := s.call(ctx, http.MethodPost, "/v1/clients", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) GetClient(ctx context.Context, id string) (*ClientResponse, error) {
	var out ClientResponse
	if err := s.call(ctx, http.MethodGet, clientPath(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateClient(ctx context.Context, id string, req UpdateClientRequest) (*ClientResponse, error) {
	var out ClientResponse
	if err := s.call(ctx, http.MethodPatch, clientPath(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteClient(ctx context.Context, id string) error {
	return s.call(ctx, http.MethodDelete, clientPath(id), nil, nil, http.StatusNoContent)
}

func (s *Session) RenewSubscription(ctx context.Context, id string, req RenewRequest) (*ClientResponse, error) {
	var out ClientResponse
	if err := s.call(ctx, http.MethodPost, clientPath(id)+"/renew", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubscriptionStatus classifies a subscription at asOf, or today when asOf
// is zero.
func (s *Session) SubscriptionStatus(ctx context.Context, id string, asOf time.Time) (*StatusResponse, error) {
	q := url.Values{}
	if !asOf.IsZero() {
		q.Set("as_of", asOf.Format(DateLayout))
	}

	var out StatusResponse
	if err := s.call(ctx, http.MethodGet, clientPath(id)+"/status"+encodeQuery(q), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) TransferClient(ctx context.Context, id, targetAgentID string) (*ClientResponse, error) {
	var out ClientResponse
	if err := s.call(ctx, http.MethodPost, clientPath(id)+"/transfer", TransferClientRequest{TargetAgentID: targetAgentID}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ValidateDate checks a day/month/year date and returns it in DateLayout.
func (s *Session) ValidateDate(ctx context.Context, raw string) (string, error) {
	var out ValidateDateResponse
	if err := s.call(ctx, http.MethodPost, "/v1/dates/validate", ValidateDateRequest{Date: raw}, &out, http.StatusOK); err != nil {
		return "", err
	}
	return out.Date, nil
}

func (s *Session) EndDate(ctx context.Context, start time.Time, plan string) (*EndDateResponse, error) {
	var out EndDateResponse
	req := EndDateRequest{Start: start.Format(DateLayout), Plan: plan}
	if err := s.call(ctx, http.MethodPost, "/v1/plans/end-date", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
