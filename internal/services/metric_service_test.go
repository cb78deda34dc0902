// file: internal/services/metric_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"notehub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMetricService(t *testing.T, engagement *fakeEngagementRepo, users *fakeUserRepo) *metricService {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	ranking := newTestRankingService(t, engagement, users)
	streak := &streakService{
		activityRepo: &fakeActivityRepo{},
		location:     time.UTC,
		maxLookback:  366,
		logger:       logger,
		now:          time.Now,
	}
	return &metricService{
		engagementRepo: engagement,
		userRepo:       users,
		streakService:  streak,
		rankingService: ranking,
		logger:         logger,
		now:            time.Now,
	}
}

func TestTotalEngagementWeighsBookmarksEqually(t *testing.T) {
	engagement := &fakeEngagementRepo{
		likes:     map[int64]int{1: 10},
		bookmarks: map[int64]int{1: 7},
	}
	service := newTestMetricService(t, engagement, &fakeUserRepo{})

	total, err := service.TotalEngagement(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 17, total)
}

func TestAccountAgeDays(t *testing.T) {
	users := &fakeUserRepo{users: map[int64]*models.User{
		1: {ID: 1, CreatedAt: time.Now().Add(-49 * 24 * time.Hour)},
	}}
	service := newTestMetricService(t, &fakeEngagementRepo{}, users)

	age, err := service.AccountAgeDays(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 49, age)
}

func TestAccountAgeDaysUnknownUser(t *testing.T) {
	service := newTestMetricService(t, &fakeEngagementRepo{}, &fakeUserRepo{users: map[int64]*models.User{}})

	_, err := service.AccountAgeDays(context.Background(), 9)
	assert.True(t, IsNotFoundError(err))
}

func TestMetricForRankReturnsMinusOneWhenUnranked(t *testing.T) {
	users := &fakeUserRepo{users: map[int64]*models.User{1: {ID: 1}}}
	service := newTestMetricService(t, &fakeEngagementRepo{}, users)

	value, err := service.MetricFor(context.Background(), 1, models.RequirementInstitutionRank)
	require.NoError(t, err)
	assert.Equal(t, -1, value)
}

func TestMetricForUnknownType(t *testing.T) {
	service := newTestMetricService(t, &fakeEngagementRepo{}, &fakeUserRepo{})

	_, err := service.MetricFor(context.Background(), 1, "karma")
	assert.True(t, IsValidationError(err))
}
