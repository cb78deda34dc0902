// internal/repositories/activity_repository.go
package repositories

import (
	"context"
	"fmt"
	"time"

	"notehub/internal/database"

	"go.uber.org/zap"
)

// activityRepository implements ActivityRepository over the activity
// ledger. The ledger is written by the request handlers that record
// engagement; this engine only reads it.
type activityRepository struct {
	*BaseRepository
}

// NewActivityRepository creates a new instance of ActivityRepository
func NewActivityRepository(db *database.Manager, logger *zap.Logger) ActivityRepository {
	return &activityRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// HasActivity reports whether any activity type was logged for the user
// on the given calendar day. The day is truncated to its date component.
func (r *activityRepository) HasActivity(ctx context.Context, userID int64, day time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM activity_log
			WHERE user_id = $1 AND activity_date = $2
		)`

	var exists bool
	date := day.Format("2006-01-02")
	if err := r.QueryRowContext(ctx, query, userID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check activity for day %s: %w", date, err)
	}
	return exists, nil
}
