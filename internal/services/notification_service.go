// ===============================
// FILE: internal/services/notification_service.go
// ===============================

package services

import (
	"context"
	"fmt"

	"notehub/internal/events"
	"notehub/internal/models"
	"notehub/internal/repositories"

	"go.uber.org/zap"
)

// notificationService implements NotificationService. It persists the
// notification row and publishes the matching event for any listeners
// (websocket fan-out, digest emails) downstream.
type notificationService struct {
	notificationRepo repositories.NotificationRepository
	events           events.EventBus
	logger           *zap.Logger
}

// NewNotificationService creates a new notification service.
func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	eventBus events.EventBus,
	logger *zap.Logger,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		events:           eventBus,
		logger:           logger,
	}
}

// NotifyBadgeAwarded records a badge notification for the recipient.
func (s *notificationService) NotifyBadgeAwarded(ctx context.Context, userID int64, badge *models.Badge) error {
	content := badge.Description
	notification := &models.Notification{
		UserID:         userID,
		Type:           models.NotificationTypeBadge,
		Title:          fmt.Sprintf("You earned the %q badge!", badge.Name),
		Content:        &content,
		RelatedBadgeID: &badge.ID,
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Error("failed to create badge notification",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("badge_slug", badge.Slug))
		return NewInternalError("failed to create notification", err)
	}

	if err := s.events.PublishAsync(ctx, events.NewBadgeAwardedEvent(
		userID, badge.ID, badge.Slug, badge.Name, badge.Tier, notification.CreatedAt,
	)); err != nil {
		s.logger.Warn("failed to publish badge awarded event", zap.Error(err))
	}

	s.logger.Info("badge notification created",
		zap.Int64("user_id", userID),
		zap.String("badge_slug", badge.Slug))
	return nil
}

// NotifyEngagement records a like/bookmark/comment notification for a
// note owner. Self-engagement never reaches this path.
func (s *notificationService) NotifyEngagement(ctx context.Context, notificationType string, ownerID, actorID, noteID int64) error {
	var title string
	switch notificationType {
	case models.NotificationTypeLike:
		title = "Someone liked your note"
	case models.NotificationTypeComment:
		title = "Someone commented on your note"
	case models.NotificationTypeBookmark:
		title = "Someone bookmarked your note"
	default:
		return NewValidationError(fmt.Sprintf("unknown notification type: %s", notificationType), nil)
	}

	notification := &models.Notification{
		UserID:        ownerID,
		Type:          notificationType,
		Title:         title,
		RelatedNoteID: &noteID,
		ActorID:       &actorID,
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Error("failed to create engagement notification",
			zap.Error(err),
			zap.Int64("owner_id", ownerID),
			zap.String("type", notificationType))
		return NewInternalError("failed to create notification", err)
	}

	if err := s.events.PublishAsync(ctx, events.NewEngagementReceivedEvent(
		ownerID, actorID, noteID, notificationType,
	)); err != nil {
		s.logger.Warn("failed to publish engagement event", zap.Error(err))
	}
	return nil
}
