package http

import (
	"net/http"

	"github.com/aussiebroadwan/agentdesk/internal/desk/service"
	"github.com/aussiebroadwan/agentdesk/pkg/desksdk"
	"github.com/aussiebroadwan/agentdesk/pkg/httpx"
)

type DashboardHandler struct {
	DashboardService *service.DashboardService

	clock service.Clock
	resp  *responder
}

// ServeHTTP handles GET /v1/dashboard
//
//	@Summary		Dashboard summary
//	@Description	Client counts scoped to the caller. Admins also get agent counts.
//	@Tags			Dashboard
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	desksdk.DashboardResponse
//	@Failure		401	{object}	desksdk.ErrorResponse	"Invalid or missing session token"
//	@Router			/v1/dashboard [get].
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sum, err := h.DashboardService.Summary(r.Context(), sessionFrom(r.Context()))
	if err != nil {
		h.resp.fail(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, desksdk.DashboardResponse{
		TotalClients:   sum.TotalClients,
		ActiveClients:  sum.ActiveClients,
		ExpiredClients: sum.ExpiredClients,
		TotalAgents:    sum.TotalAgents,
		PendingAgents:  sum.PendingAgents,
		RecentClients:  toClientResponses(sum.RecentClients, h.clock.Now()),
	})
}
