package httpx

import (
	"errors"
	"net/http"
)

// ErrForbiddenRole is passed to the ErrorWriter when the caller's role is
// not among the allowed ones.
var ErrForbiddenRole = errors.New("httpx: role not allowed")

// RequireRole lets the request through only when the caller's role, as set
// by WithIdentity, is one of roles.
func RequireRole(onErr ErrorWriter, roles ...string) Middleware {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := allowed[roleFromCtx(r.Context())]; !ok {
				setBearerChallenge(w, "insufficient_scope", "role not allowed")
				onErr(w, r, ErrForbiddenRole)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
