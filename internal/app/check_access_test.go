package app

import (
	"context"
	"testing"

	"github.com/courselight/courselight/internal/domain"
	"github.com/stretchr/testify/require"
)

type mockAccessChecker struct {
	t      *testing.T
	called bool
	state  domain.AccessState
	err    error
}

func (m *mockAccessChecker) CheckAccess(ctx context.Context, userID string, courseID string) (domain.AccessState, error) {
	m.t.Helper()
	m.called = true
	return m.state, m.err
}

func TestBuildCheckAccess(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("unauthenticated is none without asking upstream", func(t *testing.T) {
		t.Parallel()

		checker := &mockAccessChecker{t: t, state: domain.AccessActive}
		checkAccess := BuildCheckAccess(checker)

		state, err := checkAccess(ctx, domain.Session{}, "10")
		require.NoError(t, err)
		require.Equal(t, domain.AccessNone, state)
		require.False(t, checker.called)
	})

	t.Run("authenticated callers get the upstream answer", func(t *testing.T) {
		t.Parallel()

		for _, state := range []domain.AccessState{domain.AccessNone, domain.AccessPending, domain.AccessActive} {
			t.Run(string(state), func(t *testing.T) {
				t.Parallel()

				checker := &mockAccessChecker{t: t, state: state}
				checkAccess := BuildCheckAccess(checker)

				got, err := checkAccess(ctx, domain.Session{UserID: "u1", Role: domain.RoleStudent}, "10")
				require.NoError(t, err)
				require.Equal(t, state, got)
				require.True(t, checker.called)
			})
		}
	})

	t.Run("errors propagate", func(t *testing.T) {
		t.Parallel()

		checker := &mockAccessChecker{t: t, err: domain.ErrTemporarilyUnavailable}
		checkAccess := BuildCheckAccess(checker)

		_, err := checkAccess(ctx, domain.Session{UserID: "u1"}, "10")
		require.ErrorIs(t, err, domain.ErrTemporarilyUnavailable)
	})
}
