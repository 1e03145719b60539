package desksdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// AgentFilter narrows ListAgents. Zero fields are not applied.
type AgentFilter struct {
	Role           string
	ApprovalStatus string
	Search         string
	Limit          int
	Offset         int
}

func (f AgentFilter) query() string {
	q := url.Values{}
	setIf(q, "role", f.Role)
	setIf(q, "approval_status", f.ApprovalStatus)
	setIf(q, "q", f.Search)
	setPage(q, f.Limit, f.Offset)
	return encodeQuery(q)
}

func (s *Session) ListAgents(ctx context.Context, f AgentFilter) (*AgentList, error) {
	var out AgentList
	if err := s.call(ctx, http.MethodGet, "/v1/agents"+f.query(), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListPendingAgents(ctx context.Context) (*AgentList, error) {
	var out AgentList
	if err := s.call(ctx, http.MethodGet, "/v1/agents/pending", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) CreateAgent(ctx context.Context, req CreateAgentRequest) (*AgentResponse, error) {
	var out AgentResponse
	if err := s.call(ctx, http.MethodPost, "/v1/agents", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) GetAgent(ctx context.Context, id string) (*AgentResponse, error) {
	var out AgentResponse
	if err := s.call(ctx, http.MethodGet, "/v1/agents/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateAgent(ctx context.Context, id string, req UpdateAgentRequest) (*AgentResponse, error) {
	var out AgentResponse
	if err := s.call(ctx, http.MethodPatch, "/v1/agents/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAgent deletes an agent. An agent that owns clients needs a
// disposition; see DeleteAgentRequest. A partial_failure error means the
// clients were disposed of and retrying with no disposition finishes the
// deletion.
func (s *Session) DeleteAgent(ctx context.Context, id string, req DeleteAgentRequest) (*DeleteAgentResponse, error) {
	q := url.Values{}
	setIf(q, "disposition", req.Disposition)
	setIf(q, "target_agent_id", req.TargetAgentID)

	var out DeleteAgentResponse
	if err := s.call(ctx, http.MethodDelete, "/v1/agents/"+url.PathEscape(id)+encodeQuery(q), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ApproveAgent(ctx context.Context, id string) (*AgentResponse, error) {
	return s.approval(ctx, id, "approve")
}

func (s *Session) RejectAgent(ctx context.Context, id string) (*AgentResponse, error) {
	return s.approval(ctx, id, "reject")
}

func (s *Session) ReopenAgent(ctx context.Context, id string) (*AgentResponse, error) {
	return s.approval(ctx, id, "reopen")
}

func (s *Session) approval(ctx context.Context, id, action string) (*AgentResponse, error) {
	var out AgentResponse
	if err := s.call(ctx, http.MethodPost, "/v1/agents/"+url.PathEscape(id)+"/"+action, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func setPage(q url.Values, limit, offset int) {
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
}

func encodeQuery(q url.Values) string {
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}
