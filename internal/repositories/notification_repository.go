// internal/repositories/notification_repository.go
package repositories

import (
	"context"
	"fmt"

	"notehub/internal/database"
	"notehub/internal/models"

	"go.uber.org/zap"
)

// notificationRepository implements NotificationRepository
type notificationRepository struct {
	*BaseRepository
}

// NewNotificationRepository creates a new instance of NotificationRepository
func NewNotificationRepository(db *database.Manager, logger *zap.Logger) NotificationRepository {
	return &notificationRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// Create inserts a notification row.
func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	query := `
		INSERT INTO notifications (
			user_id, type, title, content,
			related_note_id, related_badge_id, actor_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, is_read, created_at`

	err := r.QueryRowContext(
		ctx, query,
		notification.UserID, notification.Type, notification.Title, notification.Content,
		notification.RelatedNoteID, notification.RelatedBadgeID, notification.ActorID,
	).Scan(&notification.ID, &notification.IsRead, &notification.CreatedAt)

	if err != nil {
		r.GetLogger().Error("Failed to create notification",
			zap.Error(err),
			zap.Int64("user_id", notification.UserID),
			zap.String("type", notification.Type),
		)
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}
