package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/agentdesk/internal/desk/domain"
	"github.com/aussiebroadwan/agentdesk/internal/desk/i18n"
	"github.com/aussiebroadwan/agentdesk/internal/desk/service"
	"github.com/aussiebroadwan/agentdesk/pkg/desksdk"
	"github.com/aussiebroadwan/agentdesk/pkg/httpx"
	"github.com/aussiebroadwan/agentdesk/pkg/slogx"
)

// responder renders errors as localized JSON bodies.
type responder struct {
	tr *i18n.Translator
}

// fail maps err onto its status and localized message. It is also the
// httpx.ErrorWriter of the authn, role and rate limit middleware.
func (p *responder) fail(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	switch {
	case errors.Is(err, httpx.ErrMissingBearer):
		err = domain.ErrUnauthenticated
	case errors.Is(err, httpx.ErrForbiddenRole):
		err = domain.ErrUnauthorized
	case errors.Is(err, httpx.ErrBadJSON):
		err = fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	msg := i18n.MessageFor(err)
	if errors.Is(err, httpx.ErrRateLimited) {
		msg = i18n.RateLimited()
	}

	lang := p.tr.LanguageFromRequest(r)
	body := desksdk.ErrorResponse{
		Error:            msg.Code,
		ErrorDescription: p.tr.Localize(lang, msg.ID, msg.Data),
	}

	var pf *domain.PartialFailureError
	if errors.As(err, &pf) {
		body.Details = map[string]any{"agent_id": pf.AgentID, "disposed": pf.Disposed}
	}

	if msg.Status >= http.StatusInternalServerError {
		log.Error("request failed", "status", msg.Status, "err", err)
	} else {
		log.Debug("request rejected", "status", msg.Status, "code", msg.Code, "err", err)
	}

	w.Header().Set("Content-Language", lang)
	httpx.WriteJSON(w, msg.Status, body)
}

// decode reads a JSON body, writing the error response itself on failure.
func (p *responder) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := httpx.DecodeJSON(w, r, v); err != nil {
		p.fail(w, r, err)
		return false
	}
	return true
}

// page reads limit and offset query parameters.
func page(r *http.Request) (service.Page, error) {
	var p service.Page
	q := r.URL.Query()
	for name, dst := range map[string]*int{"limit": &p.Limit, "offset": &p.Offset} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return p, fmt.Errorf("%w: %s", domain.ErrInvalidInput, name)
		}
		*dst = n
	}
	return p, nil
}
