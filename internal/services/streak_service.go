// ===============================
// FILE: internal/services/streak_service.go
// ===============================

package services

import (
	"context"
	"time"

	"notehub/internal/config"
	"notehub/internal/repositories"

	"go.uber.org/zap"
)

// streakService computes consecutive-day activity streaks against the
// activity log. Day boundaries use the platform timezone from config,
// not the server's local zone.
type streakService struct {
	activityRepo repositories.ActivityRepository
	location     *time.Location
	maxLookback  int
	logger       *zap.Logger
	now          func() time.Time
}

// NewStreakService creates a new streak service.
func NewStreakService(
	activityRepo repositories.ActivityRepository,
	cfg *config.GamificationConfig,
	logger *zap.Logger,
) StreakService {
	return &streakService{
		activityRepo: activityRepo,
		location:     cfg.Location(),
		maxLookback:  cfg.StreakMaxLookbackDays,
		logger:       logger,
		now:          time.Now,
	}
}

// CurrentStreak returns the number of consecutive days with at least
// one logged activity, ending today or yesterday. The anchor is today
// when the user was active today, otherwise yesterday; a user inactive
// both days has a streak of zero. Activity earlier today does not
// extend a streak that already ended yesterday.
func (s *streakService) CurrentStreak(ctx context.Context, userID int64) (int, error) {
	today := truncateToDay(s.now().In(s.location))

	anchor := today
	active, err := s.activityRepo.HasActivity(ctx, userID, anchor)
	if err != nil {
		s.logger.Error("failed to check activity", zap.Error(err), zap.Int64("user_id", userID))
		return 0, NewInternalError("failed to check activity", err)
	}
	if !active {
		anchor = today.AddDate(0, 0, -1)
		active, err = s.activityRepo.HasActivity(ctx, userID, anchor)
		if err != nil {
			s.logger.Error("failed to check activity", zap.Error(err), zap.Int64("user_id", userID))
			return 0, NewInternalError("failed to check activity", err)
		}
		if !active {
			return 0, nil
		}
	}

	streak := 1
	day := anchor
	// maxLookback caps the backward walk (one query per day). It must
	// stay above the largest streak_days threshold in the badge catalog
	// (100); streaks longer than the cap report the cap.
	for streak < s.maxLookback {
		day = day.AddDate(0, 0, -1)
		active, err = s.activityRepo.HasActivity(ctx, userID, day)
		if err != nil {
			s.logger.Error("failed to check activity", zap.Error(err), zap.Int64("user_id", userID))
			return 0, NewInternalError("failed to check activity", err)
		}
		if !active {
			break
		}
		streak++
	}
	return streak, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
