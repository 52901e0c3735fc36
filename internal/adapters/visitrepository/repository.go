package visitrepository

import (
	"context"
	"fmt"
	"time"

	"github.com/courselight/courselight/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PostgresVisitRepository struct {
	db     *sqlx.DB
	schema string
}

func NewPostgresVisitRepository(db *sqlx.DB, schema string) *PostgresVisitRepository {
	return &PostgresVisitRepository{db: db, schema: schema}
}

type dbVisit struct {
	ID       string    `db:"id"`
	UserID   string    `db:"user_id"`
	CourseID string    `db:"course_id"`
	SeenAt   time.Time `db:"seen_at"`
}

func (r *PostgresVisitRepository) table() string {
	return fmt.Sprintf("%s.visits", pq.QuoteIdentifier(r.schema))
}

func (r *PostgresVisitRepository) StoreVisit(ctx context.Context, visit domain.Visit) error {
	visitID := visit.VisitID
	if visitID == "" {
		visitID = uuid.New().String()
	} else if _, err := uuid.Parse(visitID); err != nil {
		return fmt.Errorf("StoreVisit: invalid visit id %q: %w", visitID, err)
	}

	if visit.UserID == "" {
		return fmt.Errorf("StoreVisit: visit is missing a user id")
	}

	seenAt := visit.SeenAt
	if seenAt.IsZero() {
		seenAt = time.Now()
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (id, user_id, course_id, seen_at) VALUES (:id, :user_id, :course_id, :seen_at)",
		r.table(),
	)
	_, err := r.db.NamedExecContext(ctx, query, dbVisit{
		ID:       visitID,
		UserID:   visit.UserID,
		CourseID: visit.CourseID,
		SeenAt:   seenAt,
	})
	if err != nil {
		return fmt.Errorf("StoreVisit: failed to insert visit: %w", err)
	}

	return nil
}

func (r *PostgresVisitRepository) GetVisitStats(ctx context.Context, since time.Time) (domain.VisitStats, error) {
	query := fmt.Sprintf(
		"SELECT COUNT(*) AS total_visits, COUNT(DISTINCT user_id) AS unique_visitors FROM %s WHERE seen_at >= $1",
		r.table(),
	)

	var result struct {
		TotalVisits    int64 `db:"total_visits"`
		UniqueVisitors int64 `db:"unique_visitors"`
	}
	if err := r.db.GetContext(ctx, &result, query, since); err != nil {
		return domain.VisitStats{}, fmt.Errorf("GetVisitStats: failed to query visits: %w", err)
	}

	return domain.VisitStats{
		UniqueVisitors: result.UniqueVisitors,
		TotalVisits:    result.TotalVisits,
		Since:          since,
	}, nil
}
