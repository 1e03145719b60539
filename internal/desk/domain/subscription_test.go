package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeEndDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		start time.Time
		plan  PlanType
		want  time.Time
	}{
		{"monthly", date(2024, 1, 15), PlanMonthly, date(2024, 2, 15)},
		{"semi annual", date(2024, 1, 15), PlanSemiAnnual, date(2024, 7, 15)},
		{"annual", date(2024, 1, 15), PlanAnnual, date(2025, 1, 15)},
		{"annual from leap day", date(2024, 2, 29), PlanAnnual, date(2025, 3, 1)},
		{"month overflow", date(2023, 1, 31), PlanMonthly, date(2023, 3, 3)},
		{"month overflow in leap year", date(2024, 1, 31), PlanMonthly, date(2024, 3, 2)},
		{"semi annual overflow", date(2024, 8, 31), PlanSemiAnnual, date(2025, 3, 3)},
		{"permanent", date(2024, 1, 15), PlanPermanent, PermanentEndDate},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ComputeEndDate(tc.start, tc.plan)
			require.NoError(t, err)
			require.True(t, tc.want.Equal(got), "want %s got %s", tc.want, got)
		})
	}

	t.Run("ignores time of day", func(t *testing.T) {
		got, err := ComputeEndDate(time.Date(2024, 1, 15, 23, 59, 0, 0, time.UTC), PlanMonthly)
		require.NoError(t, err)
		require.Equal(t, date(2024, 2, 15), got)
	})

	t.Run("rejects unknown plans", func(t *testing.T) {
		_, err := ComputeEndDate(date(2024, 1, 15), PlanType("weekly"))
		require.ErrorIs(t, err, ErrInvalidPlanType)

		_, err = ParsePlanType("quarterly")
		require.ErrorIs(t, err, ErrInvalidPlanType)
	})

	t.Run("finite plans always end after start", func(t *testing.T) {
		start := date(2020, 1, 1)
		for day := range 366 * 2 {
			d := start.AddDate(0, 0, day)
			for _, p := range []PlanType{PlanMonthly, PlanSemiAnnual, PlanAnnual} {
				end, err := ComputeEndDate(d, p)
				require.NoError(t, err)
				require.True(t, end.After(d), "%s %s", p, d)
			}
		}
	})

	t.Run("permanent ignores start", func(t *testing.T) {
		for _, d := range []time.Time{date(1999, 5, 1), date(2024, 1, 31), date(2099, 12, 31)} {
			end, err := ComputeEndDate(d, PlanPermanent)
			require.NoError(t, err)
			require.Equal(t, PermanentEndDate, end)
		}
	})
}

func TestClassify(t *testing.T) {
	t.Parallel()

	end, err := ComputeEndDate(date(2024, 1, 15), PlanMonthly)
	require.NoError(t, err)
	require.Equal(t, date(2024, 2, 15), end)

	require.Equal(t, SubscriptionActive, Classify(date(2024, 2, 14), end))
	require.Equal(t, SubscriptionActive, Classify(date(2024, 2, 15), end))
	require.Equal(t, SubscriptionActive, Classify(time.Date(2024, 2, 15, 23, 59, 59, 0, time.UTC), end))
	require.Equal(t, SubscriptionExpired, Classify(date(2024, 2, 16), end))
	require.Equal(t, SubscriptionActive, Classify(date(2098, 1, 1), PermanentEndDate))
}

func TestRenew(t *testing.T) {
	t.Parallel()

	today := date(2024, 6, 10)
	current := Subscription{Plan: PlanMonthly, Start: date(2024, 1, 15), End: date(2024, 2, 15)}

	t.Run("from today restarts the period", func(t *testing.T) {
		got, err := Renew(current, PlanAnnual, EffectiveFromToday, today)
		require.NoError(t, err)
		require.Equal(t, today, got.Start)
		require.Equal(t, date(2025, 6, 10), got.End)
		require.Equal(t, PlanAnnual, got.Plan)
	})

	t.Run("from current end keeps start", func(t *testing.T) {
		got, err := Renew(current, PlanMonthly, EffectiveFromCurrentEnd, today)
		require.NoError(t, err)
		require.Equal(t, current.Start, got.Start)
		require.Equal(t, date(2024, 3, 15), got.End)
	})

	t.Run("two renewals equal one combined renewal", func(t *testing.T) {
		once, err := Renew(current, PlanMonthly, EffectiveFromCurrentEnd, today)
		require.NoError(t, err)
		twice, err := Renew(once, PlanMonthly, EffectiveFromCurrentEnd, today)
		require.NoError(t, err)
		require.Equal(t, current.End.AddDate(0, 2, 0), twice.End)

		annual := Subscription{Plan: PlanAnnual, Start: date(2024, 1, 15), End: date(2025, 1, 15)}
		once, err = Renew(annual, PlanAnnual, EffectiveFromCurrentEnd, today)
		require.NoError(t, err)
		twice, err = Renew(once, PlanAnnual, EffectiveFromCurrentEnd, today)
		require.NoError(t, err)
		require.Equal(t, date(2027, 1, 15), twice.End)
	})

	t.Run("month-end renewals overflow step by step", func(t *testing.T) {
		endOfJan := Subscription{Plan: PlanMonthly, Start: date(2022, 12, 31), End: date(2023, 1, 31)}
		once, err := Renew(endOfJan, PlanMonthly, EffectiveFromCurrentEnd, today)
		require.NoError(t, err)
		require.Equal(t, date(2023, 3, 3), once.End)

		twice, err := Renew(once, PlanMonthly, EffectiveFromCurrentEnd, today)
		require.NoError(t, err)
		require.Equal(t, date(2023, 4, 3), twice.End)
		require.NotEqual(t, endOfJan.End.AddDate(0, 2, 0), twice.End)
		require.Equal(t, date(2023, 3, 31), endOfJan.End.AddDate(0, 2, 0))
	})

	t.Run("permanent renewal is idempotent", func(t *testing.T) {
		once, err := Renew(current, PlanPermanent, EffectiveFromCurrentEnd, today)
		require.NoError(t, err)
		require.Equal(t, PermanentEndDate, once.End)

		twice, err := Renew(once, PlanPermanent, EffectiveFromCurrentEnd, today)
		require.NoError(t, err)
		require.Equal(t, once, twice)
	})

	t.Run("finite plan cannot extend a permanent end", func(t *testing.T) {
		perm := Subscription{Plan: PlanPermanent, Start: date(2024, 1, 1), End: PermanentEndDate}
		_, err := Renew(perm, PlanMonthly, EffectiveFromCurrentEnd, today)
		require.ErrorIs(t, err, ErrInconsistentSubscription)

		got, err := Renew(perm, PlanMonthly, EffectiveFromToday, today)
		require.NoError(t, err)
		require.Equal(t, date(2024, 7, 10), got.End)
	})

	t.Run("reports inconsistent input", func(t *testing.T) {
		broken := Subscription{Plan: PlanMonthly, Start: date(2024, 3, 1), End: date(2024, 2, 1)}
		_, err := Renew(broken, PlanMonthly, EffectiveFromCurrentEnd, today)
		require.ErrorIs(t, err, ErrInconsistentSubscription)
	})

	t.Run("rejects unknown policy and plan", func(t *testing.T) {
		_, err := Renew(current, PlanMonthly, EffectiveFrom("yesterday"), today)
		require.ErrorIs(t, err, ErrInvalidEffectiveFrom)

		_, err = Renew(current, PlanType("weekly"), EffectiveFromToday, today)
		require.ErrorIs(t, err, ErrInvalidPlanType)
	})
}

func TestValidateDateInput(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)

	t.Run("accepts day month year", func(t *testing.T) {
		for raw, want := range map[string]time.Time{
			"15/01/2024": date(2024, 1, 15),
			"5/1/2024":   date(2024, 1, 5),
			"05-01-2024": date(2024, 1, 5),
			"29.02.2024": date(2024, 2, 29),
			" 10/06/2024 ": date(2024, 6, 10),
		} {
			got, err := ValidateDateInput(raw, now)
			require.NoError(t, err, raw)
			require.Equal(t, want, got, raw)
		}
	})

	t.Run("today is not in the future", func(t *testing.T) {
		got, err := ValidateDateInput("10/06/2024", now)
		require.NoError(t, err)
		require.Equal(t, DateOf(now), got)
	})

	t.Run("rejects future dates", func(t *testing.T) {
		for _, raw := range []string{"11/06/2024", "01/01/2025"} {
			_, err := ValidateDateInput(raw, now)
			require.ErrorIs(t, err, ErrFutureDate, raw)
		}
	})

	t.Run("rejects unparsable input", func(t *testing.T) {
		for _, raw := range []string{"", "2024-01-15", "31/02/2024", "15/13/2024", "aa/bb/cccc", "15/01/24"} {
			_, err := ValidateDateInput(raw, now)
			require.ErrorIs(t, err, ErrInvalidDate, raw)
		}
	})
}

func TestParseEffectiveFrom(t *testing.T) {
	t.Parallel()

	got, err := ParseEffectiveFrom("today")
	require.NoError(t, err)
	require.Equal(t, EffectiveFromToday, got)

	got, err = ParseEffectiveFrom("currentEnd")
	require.NoError(t, err)
	require.Equal(t, EffectiveFromCurrentEnd, got)

	_, err = ParseEffectiveFrom("later")
	require.ErrorIs(t, err, ErrInvalidEffectiveFrom)
}
