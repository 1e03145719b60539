package http

import (
	"context"

	"github.com/aussiebroadwan/agentdesk/internal/desk/domain"
	"github.com/aussiebroadwan/agentdesk/pkg/httpx"
	"github.com/aussiebroadwan/agentdesk/pkg/slogx"
)

type sessionKey struct{}

// authenticate resolves a bearer token into an AuthSession built from the
// account's current state and attaches it to the request context.
func (r *Router) authenticate(ctx context.Context, token string) (context.Context, error) {
	s, err := r.AuthService.Authenticate(ctx, token)
	if err != nil {
		return ctx, err
	}

	ctx = context.WithValue(ctx, sessionKey{}, s)
	ctx = httpx.WithIdentity(ctx, s.AgentID, string(s.Role))
	ctx = slogx.WithContext(ctx, slogx.FromContext(ctx).With("agent_id", s.AgentID))
	return ctx, nil
}

// sessionFrom returns the caller's session. Handlers behind the authn
// middleware always have one; elsewhere it is the zero value, which every
// service rejects.
func sessionFrom(ctx context.Context) domain.AuthSession {
	s, _ := ctx.Value(sessionKey{}).(domain.AuthSession)
	return s
}
