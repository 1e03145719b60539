package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/agentdesk/internal/desk/domain"
	"github.com/aussiebroadwan/agentdesk/internal/desk/service"
	"github.com/aussiebroadwan/agentdesk/pkg/desksdk"
	"github.com/aussiebroadwan/agentdesk/pkg/httpx"
)

// DatesHandler exposes the date helpers used by client entry forms.
type DatesHandler struct {
	ClientService *service.ClientService

	resp *responder
}

// HandleValidate handles POST /v1/dates/validate
//
//	@Summary		Validate a start date
//	@Description	Parses a day/month/year date (separators / . or -) and rejects dates after today.
//	@Tags			Dates
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		desksdk.ValidateDateRequest	true	"Raw date"
//	@Success		200		{object}	desksdk.ValidateDateResponse
//	@Failure		400		{object}	desksdk.ErrorResponse	"Invalid or future date"
//	@Router			/v1/dates/validate [post].
func (h *DatesHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	var req desksdk.ValidateDateRequest
	if !h.resp.decode(w, r, &req) {
		return
	}

	t, err := h.ClientService.ValidateAndParseDate(req.Date)
	if err != nil {
		h.resp.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, desksdk.ValidateDateResponse{Date: t.Format(desksdk.DateLayout)})
}

// HandleEndDate handles POST /v1/plans/end-date
//
//	@Summary	Compute a subscription end date
//	@Tags		Dates
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		desksdk.EndDateRequest	true	"Start date (YYYY-MM-DD) and plan"
//	@Success	200		{object}	desksdk.EndDateResponse
//	@Failure	400		{object}	desksdk.ErrorResponse	"Invalid date or plan"
//	@Router		/v1/plans/end-date [post].
func (h *DatesHandler) HandleEndDate(w http.ResponseWriter, r *http.Request) {
	var req desksdk.EndDateRequest
	if !h.resp.decode(w, r, &req) {
		return
	}

	start, err := time.Parse(desksdk.DateLayout, req.Start)
	if err != nil {
		h.resp.fail(w, r, domain.ErrInvalidDate)
		return
	}
	plan, err := domain.ParsePlanType(req.Plan)
	if err != nil {
		h.resp.fail(w, r, err)
		return
	}

	end, err := domain.ComputeEndDate(start, plan)
	if err != nil {
		h.resp.fail(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, desksdk.EndDateResponse{
		Start: start.Format(desksdk.DateLayout),
		Plan:  string(plan),
		End:   end.Format(desksdk.DateLayout),
	})
}
