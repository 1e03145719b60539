package desk_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/agentdesk/pkg/desksdk"
	"github.com/stretchr/testify/require"
)

// TestLoginRateLimit runs with production limits and checks that repeated
// failed logins for one e-mail are throttled.
func TestLoginRateLimit(t *testing.T) {
	client := setupDeskContainer(t, withDefaultRateLimits())
	ctx := t.Context()

	var limited bool
	for i := range 10 {
		_, err := client.Login(ctx, "nobody@example.com", "wrong-password", "")
		require.Error(t, err)

		if desksdk.IsCode(err, desksdk.ErrorCodeRateLimited) {
			var apiErr *desksdk.APIError
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
			t.Logf("rate limited after %d attempts", i)
			limited = true
			break
		}
		requireCode(t, err, http.StatusUnauthorized, desksdk.ErrorCodeInvalidCredentials)
	}
	require.True(t, limited, "login should be rate limited")
}
