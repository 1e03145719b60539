package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/agentdesk/pkg/slogx"
)

// ErrMissingBearer is passed to the ErrorWriter when a request carries no
// bearer token.
var ErrMissingBearer = errors.New("httpx: missing bearer token")

// Authenticator validates a raw bearer token and returns the context to
// serve the request with. It must attach the caller with WithIdentity.
type Authenticator func(ctx context.Context, token string) (context.Context, error)

// ErrorWriter renders a failed request. It is responsible for the status
// code and body.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// AuthnMiddleware requires a valid bearer token on every request.
func AuthnMiddleware(authn Authenticator, onErr ErrorWriter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := BearerToken(r)
			if !ok {
				setBearerChallenge(w, "invalid_request", "missing bearer token")
				onErr(w, r, ErrMissingBearer)
				return
			}

			ctx, err := authn(ctx, raw)
			if err != nil {
				log.Warn("bearer authentication failed", "err", err)
				setBearerChallenge(w, "invalid_token", "token rejected")
				onErr(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token of an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(h[7:])
	return raw, raw != ""
}

// RFC 6750 challenge for bearer auth.
func setBearerChallenge(w http.ResponseWriter, code, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="`+code+`", error_description="`+desc+`"`)
}
