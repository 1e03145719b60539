package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/agentdesk/internal/desk/service"
	"github.com/aussiebroadwan/agentdesk/pkg/desksdk"
	"github.com/aussiebroadwan/agentdesk/pkg/httpx"
)

// AuthHandler serves registration, login and the caller's own profile.
type AuthHandler struct {
	AuthService  *service.AuthService
	AgentService *service.AgentService

	resp *responder
}

// HandleRegister handles POST /v1/auth/register
//
//	@Summary		Register as an agent
//	@Description	Creates an agent account awaiting admin approval. The account cannot log in until approved.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		desksdk.RegisterRequest	true	"Account details"
//	@Success		201		{object}	desksdk.AgentResponse
//	@Failure		400		{object}	desksdk.ErrorResponse	"Invalid input or weak password"
//	@Failure		409		{object}	desksdk.ErrorResponse	"E-mail already registered"
//	@Failure		429		{object}	desksdk.ErrorResponse	"Too many requests"
//	@Router			/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req desksdk.RegisterRequest
	if !h.resp.decode(w, r, &req) {
		return
	}

	a, err := h.AgentService.RegisterAgent(r.Context(), service.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		h.resp.fail(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toAgentResponse(a))
}

// HandleLogin handles POST /v1/auth/login
//
//	@Summary		Log in
//	@Description	Checks credentials and the approval status and returns a session token. Pending and rejected agents get distinct errors.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		desksdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	desksdk.LoginResponse
//	@Failure		401		{object}	desksdk.ErrorResponse	"Invalid credentials or TOTP code required"
//	@Failure		403		{object}	desksdk.ErrorResponse	"Account pending or rejected"
//	@Failure		429		{object}	desksdk.ErrorResponse	"Too many requests"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req desksdk.LoginRequest
	if !h.resp.decode(w, r, &req) {
		return
	}

	res, err := h.AuthService.Login(ctx, req.Email, req.Password, req.TOTPCode)
	if err != nil {
		h.resp.fail(w, r, err)
		return
	}

	a, err := h.AgentService.GetAgent(ctx, res.Session, res.Session.AgentID)
	if err != nil {
		h.resp.fail(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, desksdk.LoginResponse{
		AccessToken: res.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(time.Until(res.ExpiresAt).Seconds()),
		Agent:       toAgentResponse(a),
	})
}

// HandleMe handles GET /v1/me
//
//	@Summary		Current account
//	@Tags			Me
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	desksdk.AgentResponse
//	@Failure		401	{object}	desksdk.ErrorResponse	"Invalid or missing session token"
//	@Router			/v1/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r.Context())

	a, err := h.AgentService.GetAgent(r.Context(), s, s.AgentID)
	if err != nil {
		h.resp.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAgentResponse(a))
}

// HandleUpdateMe handles PATCH /v1/me
//
//	@Summary		Update own profile
//	@Description	Updates name, e-mail, phone or address. Activation is admin-only.
//	@Tags			Me
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		desksdk.UpdateAgentRequest	true	"Fields to change"
//	@Success		200		{object}	desksdk.AgentResponse
//	@Failure		400		{object}	desksdk.ErrorResponse	"Invalid input"
//	@Failure		403		{object}	desksdk.ErrorResponse	"Not allowed"
//	@Failure		409		{object}	desksdk.ErrorResponse	"E-mail already registered"
//	@Router			/v1/me [patch].
func (h *AuthHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r.Context())

	var req desksdk.UpdateAgentRequest
	if !h.resp.decode(w, r, &req) {
		return
	}

	a, err := h.AgentService.UpdateAgent(r.Context(), s, s.AgentID, updateAgentRequest(req))
	if err != nil {
		h.resp.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAgentResponse(a))
}

// HandleChangePassword handles PUT /v1/me/password
//
//	@Summary		Change password
//	@Tags			Me
//	@Security		BearerAuth
//	@Accept			json
//	@Param			request	body	desksdk.ChangePasswordRequest	true	"Current and new password"
//	@Success		204
//	@Failure		400	{object}	desksdk.ErrorResponse	"Weak password"
//	@Failure		401	{object}	desksdk.ErrorResponse	"Current password is wrong"
//	@Router			/v1/me/password [put].
func (h *AuthHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req desksdk.ChangePasswordRequest
	if !h.resp.decode(w, r, &req) {
		return
	}

	if err := h.AuthService.ChangePassword(r.Context(), sessionFrom(r.Context()), req.CurrentPassword, req.NewPassword); err != nil {
		h.resp.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func updateAgentRequest(req desksdk.UpdateAgentRequest) service.UpdateAgentRequest {
	return service.UpdateAgentRequest{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		IsActive: req.IsActive,
	}
}
