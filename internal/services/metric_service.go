// ===============================
// FILE: internal/services/metric_service.go
// ===============================

package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"notehub/internal/models"
	"notehub/internal/repositories"

	"go.uber.org/zap"
)

// metricService implements MetricService on top of the engagement
// repository. Every aggregate already excludes self-engagement and
// unpublished or private notes at the SQL level.
type metricService struct {
	engagementRepo repositories.EngagementRepository
	userRepo       repositories.UserRepository
	streakService  StreakService
	rankingService RankingService
	logger         *zap.Logger
	now            func() time.Time
}

// NewMetricService creates a new metric service.
func NewMetricService(
	engagementRepo repositories.EngagementRepository,
	userRepo repositories.UserRepository,
	streakService StreakService,
	rankingService RankingService,
	logger *zap.Logger,
) MetricService {
	return &metricService{
		engagementRepo: engagementRepo,
		userRepo:       userRepo,
		streakService:  streakService,
		rankingService: rankingService,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *metricService) NotesCreated(ctx context.Context, userID int64) (int, error) {
	n, err := s.engagementRepo.CountPublishedNotes(ctx, userID)
	if err != nil {
		s.logger.Error("failed to count published notes", zap.Error(err), zap.Int64("user_id", userID))
		return 0, NewInternalError("failed to count notes", err)
	}
	return n, nil
}

func (s *metricService) LikesReceived(ctx context.Context, userID int64) (int, error) {
	n, err := s.engagementRepo.CountLikesReceived(ctx, userID)
	if err != nil {
		s.logger.Error("failed to count likes received", zap.Error(err), zap.Int64("user_id", userID))
		return 0, NewInternalError("failed to count likes", err)
	}
	return n, nil
}

func (s *metricService) BookmarksReceived(ctx context.Context, userID int64) (int, error) {
	n, err := s.engagementRepo.CountBookmarksReceived(ctx, userID)
	if err != nil {
		s.logger.Error("failed to count bookmarks received", zap.Error(err), zap.Int64("user_id", userID))
		return 0, NewInternalError("failed to count bookmarks", err)
	}
	return n, nil
}

func (s *metricService) CommentsReceived(ctx context.Context, userID int64) (int, error) {
	n, err := s.engagementRepo.CountCommentsReceived(ctx, userID)
	if err != nil {
		s.logger.Error("failed to count comments received", zap.Error(err), zap.Int64("user_id", userID))
		return 0, NewInternalError("failed to count comments received", err)
	}
	return n, nil
}

func (s *metricService) CommentsWritten(ctx context.Context, userID int64) (int, error) {
	n, err := s.engagementRepo.CountCommentsWritten(ctx, userID)
	if err != nil {
		s.logger.Error("failed to count comments written", zap.Error(err), zap.Int64("user_id", userID))
		return 0, NewInternalError("failed to count comments written", err)
	}
	return n, nil
}

func (s *metricService) SingleNoteLikes(ctx context.Context, userID int64) (int, error) {
	n, err := s.engagementRepo.MaxLikesOnSingleNote(ctx, userID)
	if err != nil {
		s.logger.Error("failed to compute max likes on a note", zap.Error(err), zap.Int64("user_id", userID))
		return 0, NewInternalError("failed to compute single note likes", err)
	}
	return n, nil
}

// TotalEngagement is the sum of likes and bookmarks received, both
// weighted equally (unlike the ranking point formula).
func (s *metricService) TotalEngagement(ctx context.Context, userID int64) (int, error) {
	likes, err := s.LikesReceived(ctx, userID)
	if err != nil {
		return 0, err
	}
	bookmarks, err := s.BookmarksReceived(ctx, userID)
	if err != nil {
		return 0, err
	}
	return likes + bookmarks, nil
}

func (s *metricService) AccountAgeDays(ctx context.Context, userID int64) (int, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load user for account age", zap.Error(err), zap.Int64("user_id", userID))
		return 0, NewInternalError("failed to load user", err)
	}
	if user == nil {
		return 0, NewNotFoundError("user not found")
	}
	age := s.now().Sub(user.CreatedAt)
	if age < 0 {
		return 0, nil
	}
	return int(math.Floor(age.Hours() / 24)), nil
}

// MetricFor resolves a single requirement type to its current value.
// Rank requirements return the rank number, or -1 when the user is
// unranked or has no affiliation for the scope.
func (s *metricService) MetricFor(ctx context.Context, userID int64, requirementType string) (int, error) {
	switch requirementType {
	case models.RequirementNotesCreated:
		return s.NotesCreated(ctx, userID)
	case models.RequirementLikesReceived:
		return s.LikesReceived(ctx, userID)
	case models.RequirementBookmarksReceived:
		return s.BookmarksReceived(ctx, userID)
	case models.RequirementCommentsReceived:
		return s.CommentsReceived(ctx, userID)
	case models.RequirementCommentsWritten:
		return s.CommentsWritten(ctx, userID)
	case models.RequirementSingleNoteLikes:
		return s.SingleNoteLikes(ctx, userID)
	case models.RequirementTotalEngagement:
		return s.TotalEngagement(ctx, userID)
	case models.RequirementAccountAge:
		return s.AccountAgeDays(ctx, userID)
	case models.RequirementStreakDays:
		return s.streakService.CurrentStreak(ctx, userID)
	case models.RequirementLeaderboardRank:
		return s.rankFor(ctx, userID, models.RankScopeGlobal)
	case models.RequirementInstitutionRank:
		return s.rankFor(ctx, userID, models.RankScopeInstitution)
	case models.RequirementProgramRank:
		return s.rankFor(ctx, userID, models.RankScopeProgram)
	default:
		return 0, NewValidationError(fmt.Sprintf("unknown requirement type: %s", requirementType), nil)
	}
}

func (s *metricService) rankFor(ctx context.Context, userID int64, scope models.RankScope) (int, error) {
	rank, err := s.rankingService.GetRank(ctx, userID, scope)
	if err != nil {
		return 0, err
	}
	if rank == nil {
		return -1, nil
	}
	return *rank, nil
}
