package domain

import (
	"regexp"
	"strings"
	"time"
)

// SubscriptionStatus is the classification of a subscription at a point in time.
type SubscriptionStatus string

const (
	SubscriptionActive  SubscriptionStatus = "active"
	SubscriptionExpired SubscriptionStatus = "expired"
)

// EffectiveFrom selects the anchor date of a renewal.
type EffectiveFrom string

const (
	EffectiveFromToday      EffectiveFrom = "today"
	EffectiveFromCurrentEnd EffectiveFrom = "current_end"
)

// ParseEffectiveFrom parses the wire form of a renewal policy.
func ParseEffectiveFrom(s string) (EffectiveFrom, error) {
	switch EffectiveFrom(strings.ToLower(strings.TrimSpace(s))) {
	case EffectiveFromToday:
		return EffectiveFromToday, nil
	case EffectiveFromCurrentEnd, "currentend":
		return EffectiveFromCurrentEnd, nil
	}
	return "", ErrInvalidEffectiveFrom
}

// Subscription is the plan and period of a client.
type Subscription struct {
	Plan  PlanType
	Start time.Time
	End   time.Time
}

// NewSubscription builds a subscription starting on start.
func NewSubscription(plan PlanType, start time.Time) (Subscription, error) {
	end, err := ComputeEndDate(start, plan)
	if err != nil {
		return Subscription{}, err
	}
	return Subscription{Plan: plan, Start: DateOf(start), End: end}, nil
}

// Permanent reports whether the subscription never expires.
func (s Subscription) Permanent() bool {
	return s.End.Equal(PermanentEndDate)
}

// Classify reports whether a subscription ending on end is active at now.
// The end date itself is still active.
func Classify(now, end time.Time) SubscriptionStatus {
	if DateOf(now).After(DateOf(end)) {
		return SubscriptionExpired
	}
	return SubscriptionActive
}

// Renew recomputes a subscription for plan. With EffectiveFromToday the
// period restarts today; with EffectiveFromCurrentEnd the new period is
// appended to the current end date and the start is kept.
//
// Successive renewals from the current end are additive only when the end
// day exists in every month crossed. Each step overflows from its own end,
// so a monthly plan ending 2023-01-31 renewed twice ends 2023-04-03, while a
// single two-month span from the same date ends 2023-03-31.
func Renew(current Subscription, plan PlanType, from EffectiveFrom, today time.Time) (Subscription, error) {
	if !plan.Valid() {
		return Subscription{}, ErrInvalidPlanType
	}
	if current.End.Before(current.Start) {
		return Subscription{}, ErrInconsistentSubscription
	}

	switch from {
	case EffectiveFromToday:
		return NewSubscription(plan, today)

	case EffectiveFromCurrentEnd:
		if plan != PlanPermanent && current.Permanent() {
			return Subscription{}, ErrInconsistentSubscription
		}
		end, err := ComputeEndDate(current.End, plan)
		if err != nil {
			return Subscription{}, err
		}
		return Subscription{Plan: plan, Start: DateOf(current.Start), End: end}, nil

	default:
		return Subscription{}, ErrInvalidEffectiveFrom
	}
}

var dateInputPattern = regexp.MustCompile(`^(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{4})$`)

// ValidateDateInput parses a day/month/year date such as "15/01/2024" and
// rejects dates after the calendar date of now.
func ValidateDateInput(raw string, now time.Time) (time.Time, error) {
	m := dateInputPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return time.Time{}, ErrInvalidDate
	}

	t, err := time.Parse("2/1/2006", m[1]+"/"+m[2]+"/"+m[3])
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}

	t = DateOf(t)
	if t.After(DateOf(now)) {
		return time.Time{}, ErrFutureDate
	}
	return t, nil
}
