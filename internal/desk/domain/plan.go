package domain

import (
	"strings"
	"time"
)

// PlanType is the subscription plan of a client.
type PlanType string

const (
	PlanMonthly    PlanType = "monthly"
	PlanSemiAnnual PlanType = "semi_annual"
	PlanAnnual     PlanType = "annual"
	PlanPermanent  PlanType = "permanent"
)

// PermanentEndDate is the end date stored for permanent subscriptions.
var PermanentEndDate = time.Date(2099, time.December, 31, 0, 0, 0, 0, time.UTC)

// ParsePlanType parses the wire form of a plan type.
func ParsePlanType(s string) (PlanType, error) {
	p := PlanType(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", ErrInvalidPlanType
	}
	return p, nil
}

func (p PlanType) Valid() bool {
	switch p {
	case PlanMonthly, PlanSemiAnnual, PlanAnnual, PlanPermanent:
		return true
	}
	return false
}

func (p PlanType) String() string { return string(p) }

// DateOf truncates t to its calendar date at midnight UTC. The calendar
// date is taken in t's own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ComputeEndDate returns the end date of a subscription of the given plan
// starting on start.
//
// Month arithmetic uses time.Time.AddDate, so overflowing days roll into
// the next month: 2023-01-31 plus one month is 2023-03-03 and 2024-01-31
// plus one month is 2024-03-02.
func ComputeEndDate(start time.Time, plan PlanType) (time.Time, error) {
	start = DateOf(start)

	switch plan {
	case PlanMonthly:
		return start.AddDate(0, 1, 0), nil
	case PlanSemiAnnual:
		return start.AddDate(0, 6, 0), nil
	case PlanAnnual:
		return start.AddDate(1, 0, 0), nil
	case PlanPermanent:
		return PermanentEndDate, nil
	default:
		return time.Time{}, ErrInvalidPlanType
	}
}
