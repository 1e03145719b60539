package desksdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned in ErrorResponse.Error.
const (
	ErrorCodeInvalidRequest        = "invalid_request"
	ErrorCodeInvalidPlanType       = "invalid_plan_type"
	ErrorCodeInvalidDate           = "invalid_date"
	ErrorCodeFutureDate            = "future_date"
	ErrorCodeAgentHasClients       = "agent_has_clients"
	ErrorCodeTargetAgentNotFound   = "target_agent_not_found"
	ErrorCodePartialFailure        = "partial_failure"
	ErrorCodeForbidden             = "forbidden"
	ErrorCodeNotFound              = "not_found"
	ErrorCodeInvalidCredentials    = "invalid_credentials"
	ErrorCodeApprovalPending       = "approval_pending"
	ErrorCodeApprovalRejected      = "approval_rejected"
	ErrorCodeUnauthenticated       = "unauthenticated"
	ErrorCodeMFARequired           = "mfa_required"
	ErrorCodeRateLimited           = "rate_limited"
	ErrorCodeAlreadyBootstrapped   = "already_bootstrapped"
	ErrorCodeInvalidBootstrapToken = "invalid_bootstrap_token"
	ErrorCodeInternal              = "internal_error"
)

// ErrSessionExpired is returned by Session methods once the token has expired.
var ErrSessionExpired = errors.New("desksdk: session expired")

// APIError is a non-2xx response.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
	Details     map[string]any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.StatusCode, e.Description)
}

// IsCode reports whether err is an *APIError with the given code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// parseErrorResponse turns an error body into an *APIError. Bodies that are
// not an ErrorResponse fall back to the status text.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
			Details:     errResp.Details,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeInternal,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
