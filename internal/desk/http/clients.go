package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/agentdesk/internal/desk/domain"
	"github.com/aussiebroadwan/agentdesk/internal/desk/service"
	"github.com/aussiebroadwan/agentdesk/pkg/desksdk"
	"github.com/aussiebroadwan/agentdesk/pkg/httpx"
)

// ClientsHandler serves client records and their subscriptions. Agents see
// only their own clients; admins see every client.
type ClientsHandler struct {
	ClientService *service.ClientService

	resp *responder
}

// HandleList handles GET /v1/clients
//
//	@Summary	List clients
//	@Tags		Clients
//	@Security	BearerAuth
//	@Produce	json
//	@Param		agent_id	query		string	false	"Owner (admins only)"
//	@Param		plan		query		string	false	"monthly, semi_annual, annual or permanent"
//	@Param		status		query		string	false	"active or expired"
//	@Param		q			query		string	false	"Search name, organization, phone or activation code"
//	@Param		limit		query		int		false	"Page size"
//	@Param		offset		query		int		false	"Page offset"
//	@Success	200			{object}	desksdk.ClientList
//	@Failure	400			{object}	desksdk.ErrorResponse	"Invalid filter"
//	@Failure	403			{object}	desksdk.ErrorResponse	"Not allowed"
//	@Router		/v1/clients [get].
func (h *ClientsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	// 1. Parse filters
	query := service.ClientQuery{
		AgentID: strings.TrimSpace(q.Get("agent_id")),
		Search:  strings.TrimSpace(q.Get("q")),
		Status:  domain.SubscriptionStatus(strings.ToLower(strings.TrimSpace(q.Get("status")))),
	}
	if raw := q.Get("plan"); raw != "" {
		plan, err := domain.ParsePlanType(raw)
		if err != nil {
			h.resp.fail(w, r, err)
			return
		}
		query.Plan = plan
	}

	p, err := page(r)
	if err != nil {
		h.resp.fail(w, r, err)
		return
	}
	query.Page = p

	// 2. Query
	clients, total, err := h.ClientService.ListClients(r.Context(), sessionFrom(r.Context()), query)
	if err != nil {
		h.resp.fail(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, desksdk.ClientList{
		Clients: toClientResponses(clients, h.ClientService.Clock.Now()),
		Total:   total,
	})
}

// HandleCreate handles POST /v1/clients
//
//	@Summary		Create a client
//	@Description	The start date is entered as day/month/year and may not be in the future. The end date is computed from the plan.
//	@Tags			Clients
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		desksdk.CreateClientRequest	true	"Client"
//	@Success		201		{object}	desksdk.ClientResponse
//	@Failure		400		{object}	desksdk.ErrorResponse	"Invalid input, plan or date"
//	@Failure		403		{object}	desksdk.ErrorResponse	"Not allowed"
//	@Failure		409		{object}	desksdk.ErrorResponse	"Activation code already in use"
//	@Router			/v1/clients [post].
func (h *ClientsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req desksdk.CreateClientRequest
	if !h.resp.decode(w, r, &req) {
		return
	}

	// 1. Parse enumerations and the start date
	plan, err := domain.ParsePlanType(req.Plan)
	if err != nil {
		h.resp.fail(w, r, err)
		return
	}
	version, err := domain.ParseSoftwareVersion(req.SoftwareVersion)
	if err != nil {
		h.resp.fail(w, r, err)
		return
	}
	var start time.Time
	if strings.TrimSpace(req.Start) != "" {
		if start, err = h.ClientService.ValidateAndParseDate(req.Start); err != nil {
			h.resp.fail(w, r, err)
			return
		}
	}

	// 2. Create
	c, err := h.ClientService.CreateClient(r.Context(), sessionFrom(r.Context()), service.CreateClientRequest{
		ClientName:       req.ClientName,
		OrganizationName: req.OrganizationName,
		ActivityType:     req.ActivityType,
		Phone:            req.Phone,
		Address:          req.Address,
		ActivationCode:   req.ActivationCode,
		DeviceCount:      req.DeviceCount,
		SoftwareVersion:  version,
		Plan:             plan,
		Start:            start,
		Notes:            req.Notes,
		AgentID:          strings.TrimSpace(req.AgentID),
	})
	if err != nil {
		h.resp.fail(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toClientResponse(c, h.ClientService.Clock.Now()))
}

// HandleGet handles GET /v1/clients/{id}
//
//	@Summary	Get a client
//	@Tags		Clients
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Client ID"
//	@Success	200	{object}	desksdk.ClientResponse
//	@Failure	403	{object}	desksdk.ErrorResponse	"Not allowed"
//	@Failure	404	{object}	desksdk.ErrorResponse	"Not found"
//	@Router		/v1/clients/{id} [get].
func (h *ClientsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.ClientService.GetClient(r.Context(), sessionFrom(r.Context()), r.PathValue("id"))
	if err != nil {
		h.resp.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toClientResponse(c, h.ClientService.Clock.Now()))
}

// HandleUpdate handles PATCH /v1/clients/{id}
//
//	@Summary		Update client details
//	@Description	Subscription fields change only through renewal.
//	@Tags			Clients
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Client ID"
//	@Param			request	body		desksdk.UpdateClientRequest	true	"Fields to change"
//	@Success		200		{object}	desksdk.ClientResponse
//	@Failure		400		{object}	desksdk.ErrorResponse	"Invalid input"
//	@Failure		403		{object}	desksdk.ErrorResponse	"Not allowed"
//	@Failure		404		{object}	desksdk.ErrorResponse	"Not found"
//	@Router			/v1/clients/{id} [patch].
func (h *ClientsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req desksdk.UpdateClientRequest
	if !h.resp.decode(w, r, &req) {
		return
	}

	upd := service.UpdateClientRequest{
		ClientName:       req.ClientName,
		OrganizationName: req.OrganizationName,
		ActivityType:     req.ActivityType,
		Phone:            req.Phone,
		Address:          req.Address,
		ActivationCode:   req.ActivationCode,
		DeviceCount:      req.DeviceCount,
		Notes:            req.Notes,
	}
	if req.SoftwareVersion != nil {
		v, err := domain.ParseSoftwareVersion(*req.SoftwareVersion)
		if err != nil {
			h.resp.fail(w, r, err)
			return
		}
		upd.SoftwareVersion = &v
	}

	c, err := h.ClientService.UpdateClient(r.Context(), sessionFrom(r.Context()), r.PathValue("id"), upd)
	if err != nil {
		h.resp.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toClientResponse(c, h.ClientService.Clock.Now()))
}

// HandleDelete handles DELETE /v1/clients/{id}
//
//	@Summary	Delete a client
//	@Tags		Clients
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Client ID"
//	@Success	204
//	@Failure	403	{object}	desksdk.ErrorResponse	"Not allowed"
//	@Failure	404	{object}	desksdk.ErrorResponse	"Not found"
//	@Router		/v1/clients/{id} [delete].
func (h *ClientsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.ClientService.DeleteClient(r.Context(), sessionFrom(r.Context()), r.PathValue("id")); err != nil {
		h.resp.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRenew handles POST /v1/clients/{id}/renew
//
//	@Summary		Renew a subscription
//	@Description	effective_from "today" restarts the period today; "current_end" extends from the current end date.
//	@Tags			Clients
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Client ID"
//	@Param			request	body		desksdk.RenewRequest	true	"Plan and policy"
//	@Success		200		{object}	desksdk.ClientResponse
//	@Failure		400		{object}	desksdk.ErrorResponse	"Invalid plan or policy"
//	@Failure		404		{object}	desksdk.ErrorResponse	"Not found"
//	@Failure		409		{object}	desksdk.ErrorResponse	"Stored subscription is inconsistent"
//	@Router			/v1/clients/{id}/renew [post].
func (h *ClientsHandler) HandleRenew(w http.ResponseWriter, r *http.Request) {
	var req desksdk.RenewRequest
	if !h.resp.decode(w, r, &req) {
		return
	}

	plan, err := domain.ParsePlanType(req.Plan)
	if err != nil {
		h.resp.fail(w, r, err)
		return
	}
	from, err := domain.ParseEffectiveFrom(req.EffectiveFrom)
	if err != nil {
		h.resp.fail(w, r, err)
		return
	}

	c, err := h.ClientService.RenewSubscription(r.Context(), sessionFrom(r.Context()), r.PathValue("id"), plan, from)
	if err != nil {
		h.resp.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toClientResponse(c, h.ClientService.Clock.Now()))
}

// HandleStatus handles GET /v1/clients/{id}/status
//
//	@Summary	Classify a subscription
//	@Tags		Clients
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id		path		string	true	"Client ID"
//	@Param		as_of	query		string	false	"Date to classify at (YYYY-MM-DD), today when empty"
//	@Success	200		{object}	desksdk.StatusResponse
//	@Failure	400		{object}	desksdk.ErrorResponse	"Invalid date"
//	@Failure	404		{object}	desksdk.ErrorResponse	"Not found"
//	@Failure	409		{object}	desksdk.ErrorResponse	"Stored subscription is inconsistent"
//	@Router		/v1/clients/{id}/status [get].
func (h *ClientsHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	now := h.ClientService.Clock.Now()
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		t, err := time.Parse(desksdk.DateLayout, raw)
		if err != nil {
			h.resp.fail(w, r, domain.ErrInvalidDate)
			return
		}
		now = t
	}

	id := r.PathValue("id")
	status, err := h.ClientService.ClassifySubscription(r.Context(), sessionFrom(r.Context()), id, now)
	if err != nil {
		h.resp.fail(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, desksdk.StatusResponse{
		ClientID: id,
		Status:   string(status),
		AsOf:     now.Format(desksdk.DateLayout),
	})
}

// HandleTransfer handles POST /v1/clients/{id}/transfer
//
//	@Summary	Reassign a client to another agent
//	@Tags		Clients
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"Client ID"
//	@Param		request	body		desksdk.TransferClientRequest	true	"Target agent"
//	@Success	200		{object}	desksdk.ClientResponse
//	@Failure	403		{object}	desksdk.ErrorResponse	"Admin role required"
//	@Failure	404		{object}	desksdk.ErrorResponse	"Not found"
//	@Failure	422		{object}	desksdk.ErrorResponse	"Target agent not found"
//	@Router		/v1/clients/{id}/transfer [post].
func (h *ClientsHandler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	var req desksdk.TransferClientRequest
	if !h.resp.decode(w, r, &req) {
		return
	}

	c, err := h.ClientService.ReassignClient(r.Context(), sessionFrom(r.Context()), r.PathValue("id"), strings.TrimSpace(req.TargetAgentID))
	if err != nil {
		h.resp.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toClientResponse(c, h.ClientService.Clock.Now()))
}
