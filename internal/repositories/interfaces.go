// file: internal/repositories/interfaces.go
package repositories

import (
	"context"
	"time"

	"notehub/internal/models"
)

// ===============================
// CORE REPOSITORY INTERFACES
// ===============================

// UserRepository defines the contract for user data operations
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// EngagementRepository reads engagement metrics from the content store.
// All "received" counts exclude self-engagement (actor == note owner)
// and only consider published, public notes.
type EngagementRepository interface {
	CountPublishedNotes(ctx context.Context, userID int64) (int, error)
	CountLikesReceived(ctx context.Context, userID int64) (int, error)
	CountBookmarksReceived(ctx context.Context, userID int64) (int, error)
	CountCommentsReceived(ctx context.Context, userID int64) (int, error)
	CountCommentsWritten(ctx context.Context, userID int64) (int, error)
	MaxLikesOnSingleNote(ctx context.Context, userID int64) (int, error)

	// Ranked listings over the point formula
	// points = likes_received + 2 * bookmarks_received.
	// scopeID filters by institution or program; nil means global.
	// Rank is 1-based; 0 means the user is absent from the ranking.
	Leaderboard(ctx context.Context, scope models.RankScope, scopeID *int64, limit int) ([]*models.LeaderboardEntry, error)
	Rank(ctx context.Context, userID int64, scope models.RankScope, scopeID *int64) (int, error)
}

// ActivityRepository reads the append-only activity ledger.
type ActivityRepository interface {
	// HasActivity reports whether the user logged any activity type on
	// the given calendar day.
	HasActivity(ctx context.Context, userID int64, day time.Time) (bool, error)
}

// BadgeRepository manages the badge catalog and awards.
type BadgeRepository interface {
	// Catalog
	ListActive(ctx context.Context) ([]*models.Badge, error)
	GetBySlug(ctx context.Context, slug string) (*models.Badge, error)

	// Awards
	ListUserBadges(ctx context.Context, userID int64) ([]*models.UserBadge, error)
	HeldBadgeIDs(ctx context.Context, userID int64) (map[int64]bool, error)
	CountUserBadges(ctx context.Context, userID int64) (int, error)

	// Award grants a badge atomically; returns nil when already held.
	Award(ctx context.Context, userID, badgeID int64) (*models.UserBadge, error)
}

// NotificationRepository writes user notifications.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
}
