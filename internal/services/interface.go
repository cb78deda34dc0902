// file: internal/services/interface.go
package services

import (
	"context"
	"notehub/internal/models"
)

// ===============================
// CORE SERVICE INTERFACES
// ===============================

// MetricService exposes per-user engagement metrics. Self-engagement is
// never counted and only published public notes contribute.
type MetricService interface {
	NotesCreated(ctx context.Context, userID int64) (int, error)
	LikesReceived(ctx context.Context, userID int64) (int, error)
	BookmarksReceived(ctx context.Context, userID int64) (int, error)
	CommentsReceived(ctx context.Context, userID int64) (int, error)
	CommentsWritten(ctx context.Context, userID int64) (int, error)
	SingleNoteLikes(ctx context.Context, userID int64) (int, error)
	TotalEngagement(ctx context.Context, userID int64) (int, error)
	AccountAgeDays(ctx context.Context, userID int64) (int, error)

	// MetricFor resolves a single requirement type to its current value.
	MetricFor(ctx context.Context, userID int64, requirementType string) (int, error)
}

// RankingService computes leaderboards and individual ranks by scope.
type RankingService interface {
	GetLeaderboard(ctx context.Context, req *LeaderboardRequest) ([]*models.LeaderboardEntry, error)
	GetRank(ctx context.Context, userID int64, scope models.RankScope) (*int, error)
	InvalidateScope(ctx context.Context, scope models.RankScope, scopeID *int64) error
}

// StreakService computes consecutive-day activity streaks.
type StreakService interface {
	CurrentStreak(ctx context.Context, userID int64) (int, error)
}

// BadgeService owns the badge catalog and the award lifecycle.
type BadgeService interface {
	// EvaluateAndAward checks the groups mapped to the trigger and awards
	// any newly earned badges, returning the new awards in catalog order.
	EvaluateAndAward(ctx context.Context, userID int64, trigger Trigger) ([]*models.UserBadge, error)

	GetCatalog(ctx context.Context) ([]*models.Badge, error)
	GetUserBadges(ctx context.Context, userID int64) ([]*models.UserBadge, error)
	GetUserStats(ctx context.Context, userID int64) (*UserStatsResponse, error)
}

// NotificationService delivers user-facing notifications.
type NotificationService interface {
	NotifyBadgeAwarded(ctx context.Context, userID int64, badge *models.Badge) error
	NotifyEngagement(ctx context.Context, notificationType string, ownerID, actorID, noteID int64) error
}
