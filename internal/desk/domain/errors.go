package domain

import "errors"

// Error taxonomy. Every error here has a localized message in
// internal/desk/i18n and an HTTP mapping.
var (
	ErrInvalidPlanType     = errors.New("invalid subscription plan type")
	ErrInvalidDate         = errors.New("invalid date")
	ErrFutureDate          = errors.New("date is in the future")
	ErrAgentHasClients     = errors.New("agent still owns clients")
	ErrTargetAgentNotFound = errors.New("transfer target agent not found")
	ErrPartialFailure      = errors.New("clients were disposed but the agent was not deleted")
	ErrUnauthorized        = errors.New("actor is not allowed to perform this operation")
	ErrNotFound            = errors.New("not found")

	ErrInconsistentSubscription = errors.New("subscription dates are inconsistent")
	ErrNotApprovable            = errors.New("admin accounts are not subject to approval")
	ErrInvalidApprovalStatus    = errors.New("invalid approval status")
	ErrInvalidRole              = errors.New("invalid role")
	ErrInvalidSoftwareVersion   = errors.New("invalid software version")
	ErrInvalidDeviceCount       = errors.New("device count must be at least 1")
	ErrInvalidEffectiveFrom     = errors.New("invalid renewal policy")
	ErrInvalidDisposition       = errors.New("invalid client disposition")
	ErrInvalidInput             = errors.New("invalid input")
	ErrSelfDelete               = errors.New("an admin cannot delete their own account")
)

// Authentication errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrApprovalPending    = errors.New("account awaiting approval")
	ErrApprovalRejected   = errors.New("account was rejected")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrEmailTaken         = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password too short")

	ErrMFARequired       = errors.New("mfa code required")
	ErrInvalidTOTPCode   = errors.New("invalid TOTP code")
	ErrMFANotEnrolled    = errors.New("mfa not enrolled")
	ErrMFANotEnabled     = errors.New("mfa not enabled")
	ErrMFAAlreadyEnabled = errors.New("mfa already enabled")

	ErrBootstrapAlready      = errors.New("system already bootstrapped")
	ErrBootstrapUnauthorized = errors.New("unauthorized bootstrap attempt")
)

// PartialFailureError reports a deleteAgent whose client disposition
// committed but whose final agent deletion did not. Retrying the deletion
// with no disposition completes it.
type PartialFailureError struct {
	AgentID  string
	Disposed int // clients transferred or deleted
	Err      error
}

func (e *PartialFailureError) Error() string {
	return ErrPartialFailure.Error() + ": agent " + e.AgentID + ": " + e.Err.Error()
}

func (e *PartialFailureError) Is(target error) bool { return target == ErrPartialFailure }

func (e *PartialFailureError) Unwrap() error { return e.Err }
