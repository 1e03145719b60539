package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/agentdesk/internal/desk/domain"
	"github.com/aussiebroadwan/agentdesk/internal/desk/service"
	"github.com/aussiebroadwan/agentdesk/pkg/desksdk"
	"github.com/aussiebroadwan/agentdesk/pkg/httpx"
)

// AgentsHandler serves the admin agent management endpoints.
type AgentsHandler struct {
	AgentService *service.AgentService

	resp *responder
}

// HandleList handles GET /v1/agents
//
//	@Summary		List accounts
//	@Tags			Agents
//	@Security		BearerAuth
//	@Produce		json
//	@Param			role			query		string	false	"admin or agent"
//	@Param			approval_status	query		string	false	"pending, approved or rejected"
//	@Param			q				query		string	false	"Search name, e-mail or phone"
//	@Param			limit			query		int		false	"Page size"
//	@Param			offset			query		int		false	"Page offset"
//	@Success		200				{object}	desksdk.AgentList
//	@Failure		400				{object}	desksdk.ErrorResponse	"Invalid filter"
//	@Failure		403				{object}	desksdk.ErrorResponse	"Admin role required"
//	@Router			/v1/agents [get].
func (h *AgentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	// 1. Parse filters
	var query service.AgentQuery
	if raw := q.Get("role"); raw != "" {
		role, err := domain.ParseRole(raw)
		if err != nil {
			h.resp.fail(w, r, err)
			return
		}
		query.Role = role
	}
	if raw := q.Get("approval_status"); raw != "" {
		status, err := domain.ParseApprovalStatus(raw)
		if err != nil {
			h.resp.fail(w, r, err)
			return
		}
		query.ApprovalStatus = status
	}
	query.Search = strings.TrimSpace(q.Get("q"))

	p, err := page(r)
	if err != nil {
		h.resp.fail(w, r, err)
		return
	}
	query.Page = p

	// 2. Query
	agents, total, err := h.AgentService.ListAgents(r.Context(), sessionFrom(r.Context()), query)
	if err != nil {
		h.resp.fail(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, desksdk.AgentList{Agents: toAgentResponses(agents), Total: total})
}

// HandleCreate handles POST /v1/agents
//
//	@Summary		Create an account
//	@Description	Admin-created agents are approved unless approval_status says otherwise. Admins are always approved.
//	@Tags			Agents
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		desksdk.CreateAgentRequest	true	"Account"
//	@Success		201		{object}	desksdk.AgentResponse
//	@Failure		400		{object}	desksdk.ErrorResponse	"Invalid input"
//	@Failure		403		{object}	desksdk.ErrorResponse	"Admin role required"
//	@Failure		409		{object}	desksdk.ErrorResponse	"E-mail already registered"
//	@Router			/v1/agents [post].
func (h *AgentsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req desksdk.CreateAgentRequest
	if !h.resp.decode(w, r, &req) {
		return
	}

	a, err := h.AgentService.CreateAgent(r.Context(), sessionFrom(r.Context()), service.CreateAgentRequest{
		RegisterRequest: service.RegisterRequest{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Phone:    req.Phone,
			Address:  req.Address,
		},
		Role:           domain.Role(strings.ToLower(strings.TrimSpace(req.Role))),
		ApprovalStatus: domain.ApprovalStatus(req.ApprovalStatus),
	})
	if err != nil {
		h.resp.fail(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toAgentResponse(a))
}

// HandlePending handles GET /v1/agents/pending
//
//	@Summary		Agents awaiting approval
//	@Tags			Agents
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	desksdk.AgentList
//	@Failure		403	{object}	desksdk.ErrorResponse	"Admin role required"
//	@Router			/v1/agents/pending [get].
func (h *AgentsHandler) HandlePending(w http.ResponseWriter, r *http.Request) {
	agents, err := h.AgentService.ListPendingAgents(r.Context(), sessionFrom(r.Context()))
	if err != nil {
		h.resp.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, desksdk.AgentList{Agents: toAgentResponses(agents), Total: len(agents)})
}

// HandleGet handles GET /v1/agents/{id}
//
//	@Summary	Get an account
//	@Tags		Agents
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Agent ID"
//	@Success	200	{object}	desksdk.AgentResponse
//	@Failure	404	{object}	desksdk.ErrorResponse	"Not found"
//	@Router		/v1/agents/{id} [get].
func (h *AgentsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	a, err := h.AgentService.GetAgent(r.Context(), sessionFrom(r.Context()), r.PathValue("id"))
	if err != nil {
		h.resp.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAgentResponse(a))
}

// HandleUpdate handles PATCH /v1/agents/{id}
//
//	@Summary	Update an account
//	@Tags		Agents
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Agent ID"
//	@Param		request	body		desksdk.UpdateAgentRequest	true	"Fields to change"
//	@Success	200		{object}	desksdk.AgentResponse
//	@Failure	400		{object}	desksdk.ErrorResponse	"Invalid input"
//	@Failure	404		{object}	desksdk.ErrorResponse	"Not found"
//	@Failure	409		{object}	desksdk.ErrorResponse	"E-mail already registered"
//	@Router		/v1/agents/{id} [patch].
func (h *AgentsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req desksdk.UpdateAgentRequest
	if !h.resp.decode(w, r, &req) {
		return
	}

	a, err := h.AgentService.UpdateAgent(r.Context(), sessionFrom(r.Context()), r.PathValue("id"), updateAgentRequest(req))
	if err != nil {
		h.resp.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAgentResponse(a))
}

// HandleDelete handles DELETE /v1/agents/{id}
//
//	@Summary		Delete an agent
//	@Description	Deleting an agent that owns clients requires a disposition: transfer them to target_agent_id or cascade-delete them.
//	@Description	When the clients were disposed but the agent could not be removed the response is 500 partial_failure; retrying completes the deletion.
//	@Tags			Agents
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id				path		string	true	"Agent ID"
//	@Param			disposition		query		string	false	"transfer or cascade"
//	@Param			target_agent_id	query		string	false	"Transfer target"
//	@Success		200				{object}	desksdk.DeleteAgentResponse
//	@Failure		400				{object}	desksdk.ErrorResponse	"Invalid disposition"
//	@Failure		403				{object}	desksdk.ErrorResponse	"Admin role required"
//	@Failure		404				{object}	desksdk.ErrorResponse	"Not found"
//	@Failure		409				{object}	desksdk.ErrorResponse	"Agent still owns clients or self-delete"
//	@Failure		422				{object}	desksdk.ErrorResponse	"Transfer target not found"
//	@Failure		500				{object}	desksdk.ErrorResponse	"Partial failure"
//	@Router			/v1/agents/{id} [delete].
func (h *AgentsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	// 1. Parse the disposition
	d, err := domain.ParseDisposition(q.Get("disposition"), q.Get("target_agent_id"))
	if err != nil {
		h.resp.fail(w, r, err)
		return
	}

	// 2. Delete
	res, err := h.AgentService.DeleteAgent(r.Context(), sessionFrom(r.Context()), r.PathValue("id"), d)
	if err != nil {
		h.resp.fail(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, desksdk.DeleteAgentResponse{
		AgentID:     res.AgentID,
		Disposition: string(res.Disposition),
		Clients:     res.Clients,
	})
}

// HandleApprove handles POST /v1/agents/{id}/approve
//
//	@Summary	Approve a pending agent
//	@Tags		Agents
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Agent ID"
//	@Success	200	{object}	desksdk.AgentResponse
//	@Failure	409	{object}	desksdk.ErrorResponse	"Admin accounts are not subject to approval"
//	@Failure	404	{object}	desksdk.ErrorResponse	"Not found"
//	@Router		/v1/agents/{id}/approve [post].
func (h *AgentsHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.AgentService.Approve)
}

// HandleReject handles POST /v1/agents/{id}/reject
//
//	@Summary	Reject a pending agent
//	@Tags		Agents
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Agent ID"
//	@Success	200	{object}	desksdk.AgentResponse
//	@Failure	409	{object}	desksdk.ErrorResponse	"Admin accounts are not subject to approval"
//	@Failure	404	{object}	desksdk.ErrorResponse	"Not found"
//	@Router		/v1/agents/{id}/reject [post].
func (h *AgentsHandler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.AgentService.Reject)
}

// HandleReopen handles POST /v1/agents/{id}/reopen
//
//	@Summary	Return a rejected agent to pending
//	@Tags		Agents
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Agent ID"
//	@Success	200	{object}	desksdk.AgentResponse
//	@Failure	409	{object}	desksdk.ErrorResponse	"Admin accounts are not subject to approval"
//	@Failure	404	{object}	desksdk.ErrorResponse	"Not found"
//	@Router		/v1/agents/{id}/reopen [post].
func (h *AgentsHandler) HandleReopen(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.AgentService.Reopen)
}

type approvalFunc func(ctx context.Context, s domain.AuthSession, agentID string) (domain.Agent, error)

func (h *AgentsHandler) transition(w http.ResponseWriter, r *http.Request, fn approvalFunc) {
	a, err := fn(r.Context(), sessionFrom(r.Context()), r.PathValue("id"))
	if err != nil {
		h.resp.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAgentResponse(a))
}
