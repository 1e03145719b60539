package http

import (
	"net/http"

	"github.com/aussiebroadwan/agentdesk/internal/desk/service"
	"github.com/aussiebroadwan/agentdesk/pkg/desksdk"
	"github.com/aussiebroadwan/agentdesk/pkg/httpx"
)

// MFAHandler handles all MFA-related endpoints.
type MFAHandler struct {
	MFAService *service.MFAService

	resp *responder
}

// HandleEnroll handles POST /v1/mfa/totp/enroll
//
//	@Summary		Enroll in TOTP MFA
//	@Description	Generates a TOTP secret for the caller. MFA is enabled once a code is verified.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	desksdk.MFAEnrollResponse	"TOTP secret and otpauth URL"
//	@Failure		401	{object}	desksdk.ErrorResponse		"Invalid or missing session token"
//	@Failure		409	{object}	desksdk.ErrorResponse		"MFA already enabled"
//	@Router			/v1/mfa/totp/enroll [post].
func (h *MFAHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	res, err := h.MFAService.Enroll(r.Context(), sessionFrom(r.Context()))
	if err != nil {
		h.resp.fail(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, desksdk.MFAEnrollResponse{
		Secret:  res.Secret,
		URL:     res.URL,
		Issuer:  res.Issuer,
		Account: res.Account,
	})
}

// HandleVerify handles POST /v1/mfa/totp/verify
//
//	@Summary		Verify TOTP code and enable MFA
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Param			request	body	desksdk.MFACodeRequest	true	"TOTP code"
//	@Success		204
//	@Failure		401	{object}	desksdk.ErrorResponse	"Invalid TOTP code"
//	@Failure		409	{object}	desksdk.ErrorResponse	"Not enrolled or already enabled"
//	@Router			/v1/mfa/totp/verify [post].
func (h *MFAHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req desksdk.MFACodeRequest
	if !h.resp.decode(w, r, &req) {
		return
	}

	if err := h.MFAService.Verify(r.Context(), sessionFrom(r.Context()), req.Code); err != nil {
		h.resp.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDisable handles DELETE /v1/mfa/totp
//
//	@Summary		Disable TOTP MFA
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Param			request	body	desksdk.MFACodeRequest	true	"Current TOTP code"
//	@Success		204
//	@Failure		401	{object}	desksdk.ErrorResponse	"Invalid TOTP code"
//	@Failure		409	{object}	desksdk.ErrorResponse	"MFA not enabled"
//	@Router			/v1/mfa/totp [delete].
func (h *MFAHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	var req desksdk.MFACodeRequest
	if !h.resp.decode(w, r, &req) {
		return
	}

	if err := h.MFAService.Disable(r.Context(), sessionFrom(r.Context()), req.Code); err != nil {
		h.resp.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
