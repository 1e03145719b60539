package i18n

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/agentdesk/internal/desk/domain"
	"github.com/aussiebroadwan/agentdesk/internal/desk/store"
)

// Message describes how an error is presented to a user.
type Message struct {
	Code   string // stable machine-readable code
	ID     string // message id in the locale catalogs
	Status int    // HTTP status
	Data   map[string]any
}

var (
	msgInternal    = Message{Code: "internal_error", ID: "ErrorInternal", Status: http.StatusInternalServerError}
	msgRateLimited = Message{Code: "rate_limited", ID: "ErrorRateLimited", Status: http.StatusTooManyRequests}
)

// catalog is ordered: the first entry whose error matches wins.
var catalog = []struct {
	err error
	msg Message
}{
	{domain.ErrInvalidPlanType, Message{"invalid_plan_type", "ErrorInvalidPlanType", http.StatusBadRequest, nil}},
	{domain.ErrInvalidDate, Message{"invalid_date", "ErrorInvalidDate", http.StatusBadRequest, nil}},
	{domain.ErrFutureDate, Message{"future_date", "ErrorFutureDate", http.StatusBadRequest, nil}},
	{domain.ErrAgentHasClients, Message{"agent_has_clients", "ErrorAgentHasClients", http.StatusConflict, nil}},
	{domain.ErrTargetAgentNotFound, Message{"target_agent_not_found", "ErrorTargetAgentNotFound", http.StatusUnprocessableEntity, nil}},
	{domain.ErrPartialFailure, Message{"partial_failure", "ErrorPartialFailure", http.StatusInternalServerError, nil}},
	{domain.ErrUnauthorized, Message{"forbidden", "ErrorUnauthorized", http.StatusForbidden, nil}},
	{domain.ErrNotFound, Message{"not_found", "ErrorNotFound", http.StatusNotFound, nil}},

	{domain.ErrInconsistentSubscription, Message{"inconsistent_subscription", "ErrorInconsistentSubscription", http.StatusConflict, nil}},
	{domain.ErrNotApprovable, Message{"not_approvable", "ErrorNotApprovable", http.StatusConflict, nil}},
	{domain.ErrInvalidApprovalStatus, Message{"invalid_approval_status", "ErrorInvalidApprovalStatus", http.StatusBadRequest, nil}},
	{domain.ErrInvalidRole, Message{"invalid_role", "ErrorInvalidRole", http.StatusBadRequest, nil}},
	{domain.ErrInvalidSoftwareVersion, Message{"invalid_software_version", "ErrorInvalidSoftwareVersion", http.StatusBadRequest, nil}},
	{domain.ErrInvalidDeviceCount, Message{"invalid_device_count", "ErrorInvalidDeviceCount", http.StatusBadRequest, nil}},
	{domain.ErrInvalidEffectiveFrom, Message{"invalid_effective_from", "ErrorInvalidEffectiveFrom", http.StatusBadRequest, nil}},
	{domain.ErrInvalidDisposition, Message{"invalid_disposition", "ErrorInvalidDisposition", http.StatusBadRequest, nil}},
	{domain.ErrInvalidInput, Message{"invalid_request", "ErrorInvalidInput", http.StatusBadRequest, nil}},
	{domain.ErrSelfDelete, Message{"self_delete", "ErrorSelfDelete", http.StatusConflict, nil}},

	{domain.ErrInvalidCredentials, Message{"invalid_credentials", "ErrorInvalidCredentials", http.StatusUnauthorized, nil}},
	{domain.ErrApprovalPending, Message{"approval_pending", "ErrorAccountPending", http.StatusForbidden, nil}},
	{domain.ErrApprovalRejected, Message{"approval_rejected", "ErrorAccountRejected", http.StatusForbidden, nil}},
	{domain.ErrUnauthenticated, Message{"unauthenticated", "ErrorUnauthenticated", http.StatusUnauthorized, nil}},
	{domain.ErrEmailTaken, Message{"email_taken", "ErrorEmailTaken", http.StatusConflict, nil}},
	{domain.ErrWeakPassword, Message{"weak_password", "ErrorWeakPassword", http.StatusBadRequest,
		map[string]any{"Min": domain.MinPasswordLength}}},
	{store.ErrAlreadyExists, Message{"already_exists", "ErrorAlreadyExists", http.StatusConflict, nil}},

	{domain.ErrMFARequired, Message{"mfa_required", "ErrorMFARequired", http.StatusUnauthorized, nil}},
	{domain.ErrInvalidTOTPCode, Message{"invalid_mfa_code", "ErrorInvalidMFACode", http.StatusUnauthorized, nil}},
	{domain.ErrMFANotEnrolled, Message{"mfa_not_enrolled", "ErrorMFANotEnrolled", http.StatusConflict, nil}},
	{domain.ErrMFANotEnabled, Message{"mfa_not_enabled", "ErrorMFANotEnabled", http.StatusConflict, nil}},
	{domain.ErrMFAAlreadyEnabled, Message{"mfa_already_enabled", "ErrorMFAAlreadyEnabled", http.StatusConflict, nil}},

	{domain.ErrBootstrapAlready, Message{"already_bootstrapped", "ErrorBootstrapAlready", http.StatusConflict, nil}},
	{domain.ErrBootstrapUnauthorized, Message{"invalid_bootstrap_token", "ErrorBootstrapUnauthorized", http.StatusUnauthorized, nil}},
}

// MessageFor maps err onto its user-facing message. Unknown errors map to
// a generic internal error.
func MessageFor(err error) Message {
	for _, e := range catalog {
		if errors.Is(err, e.err) {
			return e.msg
		}
	}
	return msgInternal
}

// RateLimited is the message for throttled requests.
func RateLimited() Message { return msgRateLimited }

// Errors lists every error with a catalog entry.
func Errors() []error {
	out := make([]error, len(catalog))
	for i, e := range catalog {
		out[i] = e.err
	}
	return out
}
