// ===============================
// FILE: internal/services/ranking_service.go
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

	"go.uber.org/zap"
)

// rankingService implements RankingService with a short-lived cache in
// front of the leaderboard queries. Rank lookups always hit the
// database so badge evaluation sees fresh positions.
type rankingService struct {
	engagementRepo repositories.EngagementRepository
	userRepo       repositories.UserRepository
	cache          cache.Cache
	cacheTTL       time.Duration
	defaultLimit   int
	logger         *zap.Logger
}

// NewRankingService creates a new ranking service.
func NewRankingService(
	engagementRepo repositories.EngagementRepository,
	userRepo repositories.UserRepository,
	c cache.Cache,
	cacheCfg *config.CacheConfig,
	gamCfg *config.GamificationConfig,
	logger *zap.Logger,
) RankingService {
	return &rankingService{
		engagementRepo: engagementRepo,
		userRepo:       userRepo,
		cache:          c,
		cacheTTL:       cacheCfg.LeaderboardTTL,
		defaultLimit:   gamCfg.LeaderboardLimit,
		logger:         logger,
	}
}

// GetLeaderboard returns the top users of a scope ordered by points,
// ties broken by user id so pagination stays stable.
func (s *rankingService) GetLeaderboard(ctx context.Context, req *LeaderboardRequest) ([]*models.LeaderboardEntry, error) {
	if !req.Scope.Valid() {
		return nil, NewValidationError(fmt.Sprintf("invalid rank scope: %s", req.Scope), nil)
	}
	if req.Scope != models.RankScopeGlobal && req.ScopeID == nil {
		return nil, NewValidationError(fmt.Sprintf("scope %s requires a scope id", req.Scope), nil)
	}
	limit := req.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}

	key := leaderboardCacheKey(req.Scope, req.ScopeID, limit)
	if data, found := s.cache.Get(ctx, key); found {
		var entries []*models.LeaderboardEntry
		if err := json.Unmarshal(data, &entries); err == nil {
			return entries, nil
		}
		// Corrupt entry, fall through to the database.
		_ = s.cache.Delete(ctx, key)
	}

	entries, err := s.engagementRepo.Leaderboard(ctx, req.Scope, req.ScopeID, limit)
	if err != nil {
		s.logger.Error("failed to load leaderboard",
			zap.Error(err),
			zap.String("scope", string(req.Scope)))
		return nil, NewInternalError("failed to load leaderboard", err)
	}

	if data, err := json.Marshal(entries); err == nil {
		if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache leaderboard", zap.Error(err), zap.String("key", key))
		}
	}
	return entries, nil
}

// GetRank returns the user's 1-based position in the scope. Nil means
// the user has no position: either they are absent from the ranking or
// they lack the affiliation the scope filters on.
func (s *rankingService) GetRank(ctx context.Context, userID int64, scope models.RankScope) (*int, error) {
	if !scope.Valid() {
		return nil, NewValidationError(fmt.Sprintf("invalid rank scope: %s", scope), nil)
	}

	var scopeID *int64
	if scope != models.RankScopeGlobal {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			s.logger.Error("failed to load user for rank", zap.Error(err), zap.Int64("user_id", userID))
			return nil, NewInternalError("failed to load user", err)
		}
		if user == nil {
			return nil, NewNotFoundError("user not found")
		}
		switch scope {
		case models.RankScopeInstitution:
			scopeID = user.InstitutionID
		case models.RankScopeProgram:
			scopeID = user.ProgramID
		}
		if scopeID == nil {
			// No affiliation, no rank in this scope.
			return nil, nil
		}
	}

	rank, err := s.engagementRepo.Rank(ctx, userID, scope, scopeID)
	if err != nil {
		s.logger.Error("failed to compute rank",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("scope", string(scope)))
		return nil, NewInternalError("failed to compute rank", err)
	}
	if rank == 0 {
		return nil, nil
	}
	return &rank, nil
}

// InvalidateScope drops cached leaderboard pages for a scope.
func (s *rankingService) InvalidateScope(ctx context.Context, scope models.RankScope, scopeID *int64) error {
	pattern := fmt.Sprintf("leaderboard:%s:*", scope)
	if scopeID != nil {
		pattern = fmt.Sprintf("leaderboard:%s:%d:*", scope, *scopeID)
	}
	if err := s.cache.DeletePattern(ctx, pattern); err != nil {
		s.logger.Warn("failed to invalidate leaderboard cache", zap.Error(err), zap.String("pattern", pattern))
		return err
	}
	return nil
}

func leaderboardCacheKey(scope models.RankScope, scopeID *int64, limit int) string {
	if scopeID != nil {
		return fmt.Sprintf("leaderboard:%s:%d:%d", scope, *scopeID, limit)
	}
	return fmt.Sprintf("leaderboard:%s:all:%d", scope, limit)
}
