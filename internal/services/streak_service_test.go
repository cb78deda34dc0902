// file: internal/services/streak_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStreakService(activity *fakeActivityRepo, now time.Time) *streakService {
	logger, _ := zap.NewDevelopment()
	return &streakService{
		activityRepo: activity,
		location:     time.UTC,
		maxLookback:  366,
		logger:       logger,
		now:          func() time.Time { return now },
	}
}

func TestCurrentStreakNoActivity(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	service := newTestStreakService(&fakeActivityRepo{}, now)

	streak, err := service.CurrentStreak(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
}

func TestCurrentStreakAnchoredToday(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	activity := &fakeActivityRepo{}
	for i := 0; i < 4; i++ {
		activity.addDay(1, now.AddDate(0, 0, -i))
	}
	service := newTestStreakService(activity, now)

	streak, err := service.CurrentStreak(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4, streak, "today plus the prior 3 days should count as 4")
}

func TestCurrentStreakAnchoredYesterday(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	activity := &fakeActivityRepo{}
	activity.addDay(1, now.AddDate(0, 0, -1))
	activity.addDay(1, now.AddDate(0, 0, -2))
	service := newTestStreakService(activity, now)

	streak, err := service.CurrentStreak(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, streak, "no activity today still counts from yesterday")
}

func TestCurrentStreakCappedAtMaxLookback(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	activity := &fakeActivityRepo{}
	for i := 0; i < 10; i++ {
		activity.addDay(1, now.AddDate(0, 0, -i))
	}
	service := newTestStreakService(activity, now)
	service.maxLookback = 5

	streak, err := service.CurrentStreak(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 5, streak, "walk stops at the lookback bound")
}

func TestCurrentStreakGapResetsToZero(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	activity := &fakeActivityRepo{}
	activity.addDay(1, now.AddDate(0, 0, -2))
	service := newTestStreakService(activity, now)

	streak, err := service.CurrentStreak(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, streak, "an entry only two days ago is a broken streak")
}

func TestCurrentStreakStopsAtFirstGap(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	activity := &fakeActivityRepo{}
	activity.addDay(1, now)
	activity.addDay(1, now.AddDate(0, 0, -1))
	// gap at -2
	activity.addDay(1, now.AddDate(0, 0, -3))
	service := newTestStreakService(activity, now)

	streak, err := service.CurrentStreak(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, streak)
}

func TestCurrentStreakUsesConfiguredTimezone(t *testing.T) {
	// 01:00 UTC on March 10 is still March 9 in New York.
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	now := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)
	localToday := time.Date(2026, 3, 9, 0, 0, 0, 0, loc)

	activity := &fakeActivityRepo{}
	activity.addDay(1, localToday)

	logger, _ := zap.NewDevelopment()
	service := &streakService{
		activityRepo: activity,
		location:     loc,
		maxLookback:  366,
		logger:       logger,
		now:          func() time.Time { return now },
	}

	streak, err := service.CurrentStreak(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
}
