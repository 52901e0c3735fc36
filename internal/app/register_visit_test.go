package app

import (
	"context"
	"testing"
	"time"

	"github.com/courselight/courselight/internal/domain"
	"github.com/stretchr/testify/require"
)

type mockVisitStore struct {
	t      *testing.T
	stored []domain.Visit
}

func (m *mockVisitStore) StoreVisit(ctx context.Context, visit domain.Visit) error {
	m.t.Helper()
	m.stored = append(m.stored, visit)
	return nil
}

func TestBuildRegisterVisit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	t.Run("records authenticated visits", func(t *testing.T) {
		t.Parallel()

		store := &mockVisitStore{t: t}
		registerVisit := BuildRegisterVisit(store, func() time.Time { return now })

		err := registerVisit(ctx, domain.Session{UserID: "u1", Role: domain.RoleStudent}, "10")
		require.NoError(t, err)

		require.Len(t, store.stored, 1)
		require.Equal(t, "u1", store.stored[0].UserID)
		require.Equal(t, "10", store.stored[0].CourseID)
		require.Equal(t, now, store.stored[0].SeenAt)
	})

	t.Run("drops anonymous visits", func(t *testing.T) {
		t.Parallel()

		store := &mockVisitStore{t: t}
		registerVisit := BuildRegisterVisit(store, func() time.Time { return now })

		err := registerVisit(ctx, domain.Session{}, "10")
		require.NoError(t, err)
		require.Empty(t, store.stored)
	})
}
