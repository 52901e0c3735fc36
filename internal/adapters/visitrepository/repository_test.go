package visitrepository

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/courselight/courselight/internal/adapters/database"
	"github.com/courselight/courselight/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *PostgresVisitRepository {
	t.Helper()

	db, err := database.NewPostgresDatabase(database.LOCAL_CONNECTION_STRING)
	require.NoError(t, err)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	migrator := database.NewDatabaseMigrator(db, logger)
	require.NoError(t, migrator.Migrate(t.Context(), database.TESTING_SCHEMA))

	repository := NewPostgresVisitRepository(db, database.TESTING_SCHEMA)

	t.Cleanup(func() {
		db.MustExec("DELETE FROM " + repository.table())
		db.Close()
	})

	return repository
}

func TestPostgresVisitRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping db tests in short mode.")
	}
	t.Parallel()

	t.Run("store and aggregate visits", func(t *testing.T) {
		repository := newTestRepository(t)
		ctx := t.Context()

		now := time.Now().Truncate(time.Second)

		visits := []domain.Visit{
			{UserID: "u1", CourseID: "10", SeenAt: now.Add(-1 * time.Hour)},
			{UserID: "u1", CourseID: "11", SeenAt: now.Add(-30 * time.Minute)},
			{UserID: "u2", CourseID: "10", SeenAt: now.Add(-10 * time.Minute)},
			// Outside the window
			{UserID: "u3", CourseID: "10", SeenAt: now.Add(-48 * time.Hour)},
		}
		for _, visit := range visits {
			require.NoError(t, repository.StoreVisit(ctx, visit))
		}

		stats, err := repository.GetVisitStats(ctx, now.Add(-24*time.Hour))
		require.NoError(t, err)
		require.Equal(t, int64(3), stats.TotalVisits)
		require.Equal(t, int64(2), stats.UniqueVisitors)
	})

	t.Run("store with explicit id", func(t *testing.T) {
		repository := newTestRepository(t)
		ctx := t.Context()

		visitID := uuid.New().String()
		require.NoError(t, repository.StoreVisit(ctx, domain.Visit{
			VisitID:  visitID,
			UserID:   "u1",
			CourseID: "10",
			SeenAt:   time.Now(),
		}))

		// Same id again violates the primary key
		err := repository.StoreVisit(ctx, domain.Visit{
			VisitID:  visitID,
			UserID:   "u1",
			CourseID: "10",
			SeenAt:   time.Now(),
		})
		require.Error(t, err)
	})

	t.Run("rejects malformed ids and missing users", func(t *testing.T) {
		repository := newTestRepository(t)
		ctx := t.Context()

		err := repository.StoreVisit(ctx, domain.Visit{VisitID: "not-a-uuid", UserID: "u1"})
		require.Error(t, err)

		err = repository.StoreVisit(ctx, domain.Visit{})
		require.Error(t, err)
	})
}
