// ===============================
// FILE: internal/services/badge_service.go
// ===============================

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"notehub/internal/cache"
	"notehub/internal/config"
	"notehub/internal/models"
	"notehub/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const badgeCatalogCacheKey = "badges:catalog:active"

// badgeService implements BadgeService. Award decisions are computed
// from live metrics against the active catalog; the actual insert is
// idempotent at the database level, so concurrent evaluations of the
// same user award each badge at most once.
type badgeService struct {
	badgeRepo           repositories.BadgeRepository
	userRepo            repositories.UserRepository
	metricService       MetricService
	rankingService      RankingService
	streakService       StreakService
	notificationService NotificationService
	cache               cache.Cache
	validate            *validator.Validate
	config              *config.GamificationConfig
	cacheTTL            time.Duration
	logger              *zap.Logger
}

// NewBadgeService creates a new badge service.
func NewBadgeService(
	badgeRepo repositories.BadgeRepository,
	userRepo repositories.UserRepository,
	metricService MetricService,
	rankingService RankingService,
	streakService StreakService,
	notificationService NotificationService,
	c cache.Cache,
	gamCfg *config.GamificationConfig,
	cacheCfg *config.CacheConfig,
	logger *zap.Logger,
) BadgeService {
	return &badgeService{
		badgeRepo:           badgeRepo,
		userRepo:            userRepo,
		metricService:       metricService,
		rankingService:      rankingService,
		streakService:       streakService,
		notificationService: notificationService,
		cache:               c,
		validate:            validator.New(),
		config:              gamCfg,
		cacheTTL:            cacheCfg.DefaultTTL,
		logger:              logger,
	}
}

// ===============================
// CATALOG
// ===============================

// GetCatalog returns the active badge catalog, validated and ordered by
// requirement type then ascending threshold.
func (s *badgeService) GetCatalog(ctx context.Context) ([]*models.Badge, error) {
	if data, found := s.cache.Get(ctx, badgeCatalogCacheKey); found {
		var badges []*models.Badge
		if err := json.Unmarshal(data, &badges); err == nil {
			return badges, nil
		}
		_ = s.cache.Delete(ctx, badgeCatalogCacheKey)
	}

	badges, err := s.badgeRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("failed to load badge catalog", zap.Error(err))
		return nil, NewInternalError("failed to load badge catalog", err)
	}

	valid := badges[:0]
	for _, badge := range badges {
		if err := s.validateBadge(badge); err != nil {
			// A malformed catalog row is a deployment problem, not a
			// user error. Skip it rather than blocking evaluation.
			s.logger.Error("skipping invalid badge definition",
				zap.Error(err),
				zap.String("badge_slug", badge.Slug))
			continue
		}
		valid = append(valid, badge)
	}

	if data, err := json.Marshal(valid); err == nil {
		if err := s.cache.Set(ctx, badgeCatalogCacheKey, data, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache badge catalog", zap.Error(err))
		}
	}
	return valid, nil
}

// validateBadge checks a catalog row against the struct rules.
func (s *badgeService) validateBadge(badge *models.Badge) error {
	if err := s.validate.Struct(badge); err != nil {
		return fmt.Errorf("badge %q failed validation: %w", badge.Slug, err)
	}
	return nil
}

// rankGateFor returns the evaluation window for a rank requirement.
// Rank badges are only checked while the user's rank is within the
// window; deeper ranks skip the comparison entirely.
func (s *badgeService) rankGateFor(requirementType string) int {
	switch requirementType {
	case models.RequirementLeaderboardRank:
		return s.config.GlobalRankGate
	case models.RequirementInstitutionRank:
		return s.config.InstitutionRankGate
	case models.RequirementProgramRank:
		return s.config.ProgramRankGate
	}
	return 0
}

// ===============================
// EVALUATION & AWARDING
// ===============================

// EvaluateAndAward evaluates the requirement groups mapped to the
// trigger and awards every newly earned badge, creating a notification
// per award. New awards are returned in catalog order.
//
// A full sweep logs and skips groups whose metric cannot be computed;
// a single-action trigger propagates the failure to the caller.
func (s *badgeService) EvaluateAndAward(ctx context.Context, userID int64, trigger Trigger) ([]*models.UserBadge, error) {
	if !trigger.Valid() {
		return nil, NewValidationError(fmt.Sprintf("invalid trigger: %s", trigger), nil)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load user for evaluation", zap.Error(err), zap.Int64("user_id", userID))
		return nil, NewInternalError("failed to load user", err)
	}
	if user == nil {
		return nil, NewNotFoundError("user not found")
	}

	catalog, err := s.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}
	held, err := s.badgeRepo.HeldBadgeIDs(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load held badges", zap.Error(err), zap.Int64("user_id", userID))
		return nil, NewInternalError("failed to load held badges", err)
	}

	groups := trigger.RequirementTypes()
	inScope := make(map[string]bool, len(groups))
	for _, g := range groups {
		inScope[g] = true
	}

	// Metrics are shared across every badge in a group, so compute each
	// at most once per evaluation.
	metrics := make(map[string]int, len(groups))
	failed := make(map[string]bool)

	var awarded []*models.UserBadge
	for _, badge := range catalog {
		if !inScope[badge.RequirementType] || held[badge.ID] {
			continue
		}
		if failed[badge.RequirementType] {
			continue
		}

		value, ok := metrics[badge.RequirementType]
		if !ok {
			value, err = s.metricService.MetricFor(ctx, userID, badge.RequirementType)
			if err != nil {
				if trigger != TriggerFullSweep {
					return awarded, err
				}
				s.logger.Warn("skipping requirement group during full sweep",
					zap.Error(err),
					zap.Int64("user_id", userID),
					zap.String("requirement_type", badge.RequirementType))
				failed[badge.RequirementType] = true
				continue
			}
			metrics[badge.RequirementType] = value
		}

		if !s.earned(badge, value) {
			continue
		}

		grant, err := s.badgeRepo.Award(ctx, userID, badge.ID)
		if err != nil {
			s.logger.Error("failed to award badge",
				zap.Error(err),
				zap.Int64("user_id", userID),
				zap.String("badge_slug", badge.Slug))
			if trigger != TriggerFullSweep {
				return awarded, NewInternalError("failed to award badge", err)
			}
			continue
		}
		if grant == nil {
			// Another evaluation won the race; the first writer already
			// notified.
			continue
		}

		s.logger.Info("badge awarded",
			zap.Int64("user_id", userID),
			zap.String("badge_slug", badge.Slug),
			zap.String("trigger", string(trigger)))
		grant.Badge = badge
		awarded = append(awarded, grant)

		if err := s.notificationService.NotifyBadgeAwarded(ctx, userID, badge); err != nil {
			// The award stands; notification delivery is best effort.
			s.logger.Warn("failed to notify badge award",
				zap.Error(err),
				zap.Int64("user_id", userID),
				zap.String("badge_slug", badge.Slug))
		}
	}

	return awarded, nil
}

// earned reports whether a metric value satisfies a badge requirement.
// Count requirements are at-least comparisons. Rank requirements are
// at-most, with non-positive values meaning unranked, and are only
// considered while the rank sits inside the scope's gate window.
func (s *badgeService) earned(badge *models.Badge, value int) bool {
	if IsRankRequirement(badge.RequirementType) {
		if value <= 0 || value > s.rankGateFor(badge.RequirementType) {
			return false
		}
		return value <= badge.RequirementValue
	}
	return value >= badge.RequirementValue
}

// ===============================
// USER-FACING READS
// ===============================

// GetUserBadges returns the user's awarded badges, newest first.
func (s *badgeService) GetUserBadges(ctx context.Context, userID int64) ([]*models.UserBadge, error) {
	badges, err := s.badgeRepo.ListUserBadges(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list user badges", zap.Error(err), zap.Int64("user_id", userID))
		return nil, NewInternalError("failed to list user badges", err)
	}
	return badges, nil
}

// GetUserStats assembles the profile summary: metrics, points, streak,
// ranks per scope and badge count.
func (s *badgeService) GetUserStats(ctx context.Context, userID int64) (*UserStatsResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, NewInternalError("failed to load user", err)
	}
	if user == nil {
		return nil, NewNotFoundError("user not found")
	}

	stats := &UserStatsResponse{
		UserID:      userID,
		MemberSince: user.CreatedAt,
	}

	if stats.NotesCreated, err = s.metricService.NotesCreated(ctx, userID); err != nil {
		return nil, err
	}
	if stats.LikesReceived, err = s.metricService.LikesReceived(ctx, userID); err != nil {
		return nil, err
	}
	if stats.BookmarksReceived, err = s.metricService.BookmarksReceived(ctx, userID); err != nil {
		return nil, err
	}
	if stats.CommentsReceived, err = s.metricService.CommentsReceived(ctx, userID); err != nil {
		return nil, err
	}
	if stats.CommentsWritten, err = s.metricService.CommentsWritten(ctx, userID); err != nil {
		return nil, err
	}
	if stats.SingleNoteLikes, err = s.metricService.SingleNoteLikes(ctx, userID); err != nil {
		return nil, err
	}
	stats.TotalEngagement = stats.LikesReceived + stats.BookmarksReceived
	stats.Points = stats.LikesReceived + 2*stats.BookmarksReceived

	if stats.CurrentStreak, err = s.streakService.CurrentStreak(ctx, userID); err != nil {
		return nil, err
	}
	if stats.GlobalRank, err = s.rankingService.GetRank(ctx, userID, models.RankScopeGlobal); err != nil {
		return nil, err
	}
	if stats.InstitutionRank, err = s.rankingService.GetRank(ctx, userID, models.RankScopeInstitution); err != nil {
		return nil, err
	}
	if stats.ProgramRank, err = s.rankingService.GetRank(ctx, userID, models.RankScopeProgram); err != nil {
		return nil, err
	}
	if stats.BadgeCount, err = s.badgeRepo.CountUserBadges(ctx, userID); err != nil {
		s.logger.Error("failed to count user badges", zap.Error(err), zap.Int64("user_id", userID))
		return nil, NewInternalError("failed to count user badges", err)
	}

	return stats, nil
}
