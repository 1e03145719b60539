package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanAuthenticate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		agent Agent
		want  bool
	}{
		{"approved agent", Agent{Role: RoleAgent, ApprovalStatus: ApprovalApproved}, true},
		{"pending agent", Agent{Role: RoleAgent, ApprovalStatus: ApprovalPending}, false},
		{"rejected agent", Agent{Role: RoleAgent, ApprovalStatus: ApprovalRejected}, false},
		{"agent without status", Agent{Role: RoleAgent}, false},
		{"admin", Agent{Role: RoleAdmin}, true},
		{"admin marked pending", Agent{Role: RoleAdmin, ApprovalStatus: ApprovalPending}, true},
		{"unknown role", Agent{Role: Role("owner"), ApprovalStatus: ApprovalApproved}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, CanAuthenticate(tc.agent))
		})
	}
}

func TestTransitionApproval(t *testing.T) {
	t.Parallel()

	t.Run("pending agent can be approved then signs in", func(t *testing.T) {
		a := Agent{ID: "a1", Role: RoleAgent, ApprovalStatus: ApprovalPending}
		require.False(t, CanAuthenticate(a))

		a, err := TransitionApproval(a, ApprovalApproved)
		require.NoError(t, err)
		require.True(t, CanAuthenticate(a))
	})

	t.Run("resolved agents may be overwritten", func(t *testing.T) {
		for _, from := range []ApprovalStatus{ApprovalPending, ApprovalApproved, ApprovalRejected} {
			for _, to := range []ApprovalStatus{ApprovalPending, ApprovalApproved, ApprovalRejected} {
				require.True(t, CanTransition(from, to), "%s -> %s", from, to)
			}
		}

		a := Agent{Role: RoleAgent, ApprovalStatus: ApprovalApproved}
		a, err := TransitionApproval(a, ApprovalRejected)
		require.NoError(t, err)
		require.Equal(t, ApprovalRejected, a.ApprovalStatus)
		require.False(t, CanAuthenticate(a))
	})

	t.Run("admins are not approvable", func(t *testing.T) {
		_, err := TransitionApproval(Agent{Role: RoleAdmin}, ApprovalRejected)
		require.ErrorIs(t, err, ErrNotApprovable)
	})

	t.Run("unknown target status", func(t *testing.T) {
		_, err := TransitionApproval(Agent{Role: RoleAgent, ApprovalStatus: ApprovalPending}, ApprovalStatus("banned"))
		require.ErrorIs(t, err, ErrInvalidApprovalStatus)
	})
}

func TestParseApprovalStatus(t *testing.T) {
	t.Parallel()

	s, err := ParseApprovalStatus(" Approved ")
	require.NoError(t, err)
	require.Equal(t, ApprovalApproved, s)

	_, err = ParseApprovalStatus("")
	require.ErrorIs(t, err, ErrInvalidApprovalStatus)
}

func TestAuthSession(t *testing.T) {
	t.Parallel()

	admin := NewAuthSession(Agent{ID: "adm", Role: RoleAdmin})
	agent := NewAuthSession(Agent{ID: "ag1", Role: RoleAgent})

	require.True(t, admin.IsAdmin())
	require.True(t, admin.CanAccess("anyone"))
	require.False(t, agent.IsAdmin())
	require.True(t, agent.CanAccess("ag1"))
	require.False(t, agent.CanAccess("ag2"))
	require.False(t, AuthSession{}.CanAccess(""))
}

func TestActivationCode(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for range 50 {
		code, err := GenerateActivationCode()
		require.NoError(t, err)
		require.Len(t, code, ActivationCodeLength)
		require.Regexp(t, `^[0-9A-Z]{6}$`, code)
		seen[code] = struct{}{}
	}
	require.Greater(t, len(seen), 1)
}

func TestParseDisposition(t *testing.T) {
	t.Parallel()

	d, err := ParseDisposition("", "")
	require.NoError(t, err)
	require.Equal(t, DispositionNone, d.Kind)

	d, err = ParseDisposition("Transfer", " b ")
	require.NoError(t, err)
	require.Equal(t, Transfer("b"), d)

	d, err = ParseDisposition("cascade", "ignored")
	require.NoError(t, err)
	require.Equal(t, CascadeDelete(), d)

	_, err = ParseDisposition("archive", "")
	require.ErrorIs(t, err, ErrInvalidDisposition)
}

func TestApprovalError(t *testing.T) {
	t.Parallel()

	require.NoError(t, ApprovalError(Agent{Role: RoleAdmin}))
	require.NoError(t, ApprovalError(Agent{Role: RoleAgent, ApprovalStatus: ApprovalApproved}))
	require.ErrorIs(t, ApprovalError(Agent{Role: RoleAgent, ApprovalStatus: ApprovalPending}), ErrApprovalPending)
	require.ErrorIs(t, ApprovalError(Agent{Role: RoleAgent, ApprovalStatus: ApprovalRejected}), ErrApprovalRejected)
	require.ErrorIs(t, ApprovalError(Agent{Role: Role("owner")}), ErrUnauthorized)
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, ValidatePassword("short"), ErrWeakPassword)
	require.NoError(t, ValidatePassword("long enough"))
	require.NoError(t, ValidatePassword("كلمةمرور"))
}

func TestPartialFailureError(t *testing.T) {
	t.Parallel()

	cause := errors.New("locked")
	err := error(&PartialFailureError{AgentID: "a1", Disposed: 3, Err: cause})
	require.ErrorIs(t, err, ErrPartialFailure)
	require.ErrorIs(t, err, cause)

	var pf *PartialFailureError
	require.ErrorAs(t, err, &pf)
	require.Equal(t, "a1", pf.AgentID)
	require.Contains(t, err.Error(), "a1")
}
