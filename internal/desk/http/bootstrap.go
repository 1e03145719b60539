package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/agentdesk/internal/desk/domain"
	"github.com/aussiebroadwan/agentdesk/internal/desk/service"
	"github.com/aussiebroadwan/agentdesk/pkg/desksdk"
	"github.com/aussiebroadwan/agentdesk/pkg/httpx"
)

// HeaderBootstrapToken carries BOOTSTRAP_TOKEN on POST /v1/bootstrap.
const HeaderBootstrapToken = "X-Bootstrap-Token"

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService

	resp *responder
}

// ServeHTTP creates the first admin account.
//
//	@Summary		Bootstrap the first admin
//	@Description	Creates the first admin account. Only available when a bootstrap token is configured and no admin exists.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			X-Bootstrap-Token	header		string						true	"Bootstrap token"
//	@Param			request				body		desksdk.BootstrapRequest	true	"Admin account"
//	@Success		201					{object}	desksdk.BootstrapResponse
//	@Failure		400					{object}	desksdk.ErrorResponse	"Invalid request body or weak password"
//	@Failure		401					{object}	desksdk.ErrorResponse	"Missing or invalid bootstrap token"
//	@Failure		404					{object}	desksdk.ErrorResponse	"Bootstrap not enabled"
//	@Failure		409					{object}	desksdk.ErrorResponse	"Already bootstrapped"
//	@Router			/v1/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// 1. Check if enabled
	if h.BootstrapService.Token == "" {
		h.resp.fail(w, r, domain.ErrNotFound)
		return
	}

	// 2. Parse request body
	var req desksdk.BootstrapRequest
	if !h.resp.decode(w, r, &req) {
		return
	}

	// 3. Perform bootstrap
	admin, err := h.BootstrapService.Bootstrap(r.Context(), r.Header.Get(HeaderBootstrapToken), domain.BootstrapData{
		AdminName:     strings.TrimSpace(req.AdminName),
		AdminEmail:    strings.TrimSpace(req.AdminEmail),
		AdminPassword: req.AdminPassword,
	})
	if err != nil {
		h.resp.fail(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, desksdk.BootstrapResponse{AdminID: admin.ID})
}
