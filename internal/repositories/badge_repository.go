// internal/repositories/badge_repository.go
package repositories

import (
	"context"
	"errors"
	"fmt"

	"notehub/internal/database"
	"notehub/internal/models"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// badgeRepository implements BadgeRepository
type badgeRepository struct {
	*BaseRepository
}

// NewBadgeRepository creates a new instance of BadgeRepository
func NewBadgeRepository(db *database.Manager, logger *zap.Logger) BadgeRepository {
	return &badgeRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// ===============================
// CATALOG
// ===============================

// ListActive retrieves all active badge definitions, ordered so tiered
// ladders come out lowest threshold first.
func (r *badgeRepository) ListActive(ctx context.Context) ([]*models.Badge, error) {
	query := `
		SELECT id, slug, name, description, icon, category, tier,
		       requirement_type, requirement_value, is_active, created_at, updated_at
		FROM badges
		WHERE is_active = true
		ORDER BY requirement_type, requirement_value ASC`

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list badges: %w", err)
	}
	defer rows.Close()

	var badges []*models.Badge
	for rows.Next() {
		var badge models.Badge
		err := rows.Scan(
			&badge.ID, &badge.Slug, &badge.Name, &badge.Description, &badge.Icon,
			&badge.Category, &badge.Tier, &badge.RequirementType, &badge.RequirementValue,
			&badge.IsActive, &badge.CreatedAt, &badge.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan badge: %w", err)
		}
		badges = append(badges, &badge)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating badge rows: %w", err)
	}

	return badges, nil
}

// GetBySlug retrieves a badge definition by its unique slug. Returns nil
// when no such badge exists.
func (r *badgeRepository) GetBySlug(ctx context.Context, slug string) (*models.Badge, error) {
	query := `
		SELECT id, slug, name, description, icon, category, tier,
		       requirement_type, requirement_value, is_active, created_at, updated_at
		FROM badges
		WHERE slug = $1`

	var badge models.Badge
	err := r.QueryRowContext(ctx, query, slug).Scan(
		&badge.ID, &badge.Slug, &badge.Name, &badge.Description, &badge.Icon,
		&badge.Category, &badge.Tier, &badge.RequirementType, &badge.RequirementValue,
		&badge.IsActive, &badge.CreatedAt, &badge.UpdatedAt,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get badge by slug: %w", err)
	}

	return &badge, nil
}

// ===============================
// AWARDS
// ===============================

// ListUserBadges retrieves the user's held badges joined with their
// definitions, newest first.
func (r *badgeRepository) ListUserBadges(ctx context.Context, userID int64) ([]*models.UserBadge, error) {
	query := `
		SELECT ub.id, ub.user_id, ub.badge_id, ub.awarded_at,
		       b.id, b.slug, b.name, b.description, b.icon, b.category, b.tier,
		       b.requirement_type, b.requirement_value, b.is_active, b.created_at, b.updated_at
		FROM user_badges ub
		INNER JOIN badges b ON ub.badge_id = b.id
		WHERE ub.user_id = $1
		ORDER BY ub.awarded_at DESC`

	rows, err := r.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user badges: %w", err)
	}
	defer rows.Close()

	var awards []*models.UserBadge
	for rows.Next() {
		var award models.UserBadge
		var badge models.Badge
		err := rows.Scan(
			&award.ID, &award.UserID, &award.BadgeID, &award.AwardedAt,
			&badge.ID, &badge.Slug, &badge.Name, &badge.Description, &badge.Icon,
			&badge.Category, &badge.Tier, &badge.RequirementType, &badge.RequirementValue,
			&badge.IsActive, &badge.CreatedAt, &badge.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user badge: %w", err)
		}
		award.Badge = &badge
		awards = append(awards, &award)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user badge rows: %w", err)
	}

	return awards, nil
}

// HeldBadgeIDs returns the set of badge ids the user already holds.
func (r *badgeRepository) HeldBadgeIDs(ctx context.Context, userID int64) (map[int64]bool, error) {
	query := `SELECT badge_id FROM user_badges WHERE user_id = $1`

	rows, err := r.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get held badge ids: %w", err)
	}
	defer rows.Close()

	held := make(map[int64]bool)
	for rows.Next() {
		var badgeID int64
		if err := rows.Scan(&badgeID); err != nil {
			return nil, fmt.Errorf("failed to scan badge id: %w", err)
		}
		held[badgeID] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating held badge rows: %w", err)
	}

	return held, nil
}

// CountUserBadges counts the badges the user holds.
func (r *badgeRepository) CountUserBadges(ctx context.Context, userID int64) (int, error) {
	query := `SELECT COUNT(*) FROM user_badges WHERE user_id = $1`

	var count int
	if err := r.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count user badges: %w", err)
	}
	return count, nil
}

// Award grants a badge exactly once. The insert relies on the unique
// constraint on (user_id, badge_id): a conflicting concurrent insert
// produces zero returned rows, which is reported as nil without error
// so callers can skip the notification.
func (r *badgeRepository) Award(ctx context.Context, userID, badgeID int64) (*models.UserBadge, error) {
	query := `
		INSERT INTO user_badges (user_id, badge_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, badge_id) DO NOTHING
		RETURNING id, user_id, badge_id, awarded_at`

	var award models.UserBadge
	err := r.QueryRowContext(ctx, query, userID, badgeID).Scan(
		&award.ID, &award.UserID, &award.BadgeID, &award.AwardedAt,
	)
	if err != nil {
		if r.IsNotFound(err) {
			// Conflict path: the badge is already held.
			return nil, nil
		}
		if isUniqueViolation(err) {
			return nil, nil
		}
		r.GetLogger().Error("Failed to award badge",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64("badge_id", badgeID),
		)
		return nil, fmt.Errorf("failed to award badge: %w", err)
	}

	r.GetLogger().Info("Badge awarded",
		zap.Int64("user_id", userID),
		zap.Int64("badge_id", badgeID),
	)

	return &award, nil
}

// isUniqueViolation reports whether the error is a Postgres
// unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
