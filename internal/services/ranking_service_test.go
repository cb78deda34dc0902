// file: internal/services/ranking_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"notehub/internal/cache"
	"notehub/internal/config"
	"notehub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRankingService(t *testing.T, engagement *fakeEngagementRepo, users *fakeUserRepo) RankingService {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	c := cache.NewMemoryCache(cache.DefaultConfig(), zap.NewNop())
	t.Cleanup(func() { c.Close() })

	return NewRankingService(engagement, users, c,
		&config.CacheConfig{LeaderboardTTL: time.Minute, DefaultTTL: time.Minute},
		&config.GamificationConfig{LeaderboardLimit: 25, GlobalRankGate: 50, InstitutionRankGate: 10, ProgramRankGate: 5},
		logger,
	)
}

func TestGetLeaderboardCachesPages(t *testing.T) {
	engagement := &fakeEngagementRepo{
		leaderboard: []*models.LeaderboardEntry{
			{Rank: 1, UserID: 1, Username: "ada", Points: 30},
			{Rank: 2, UserID: 2, Username: "grace", Points: 20},
		},
	}
	service := newTestRankingService(t, engagement, &fakeUserRepo{})

	req := &LeaderboardRequest{Scope: models.RankScopeGlobal, Limit: 10}

	first, err := service.GetLeaderboard(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := service.GetLeaderboard(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, engagement.queryCount, "second read must come from cache")
}

func TestGetLeaderboardDeterministicOrder(t *testing.T) {
	// Tied points resolve by ascending user id, so repeated reads agree.
	engagement := &fakeEngagementRepo{
		leaderboard: []*models.LeaderboardEntry{
			{Rank: 1, UserID: 3, Points: 20},
			{Rank: 2, UserID: 5, Points: 20},
		},
	}
	service := newTestRankingService(t, engagement, &fakeUserRepo{})

	entries, err := service.GetLeaderboard(context.Background(), &LeaderboardRequest{Scope: models.RankScopeGlobal})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(3), entries[0].UserID)
	assert.Equal(t, int64(5), entries[1].UserID)
}

func TestGetLeaderboardRejectsInvalidScope(t *testing.T) {
	service := newTestRankingService(t, &fakeEngagementRepo{}, &fakeUserRepo{})

	_, err := service.GetLeaderboard(context.Background(), &LeaderboardRequest{Scope: "galaxy"})
	assert.True(t, IsValidationError(err))
}

func TestGetLeaderboardScopedRequiresScopeID(t *testing.T) {
	service := newTestRankingService(t, &fakeEngagementRepo{}, &fakeUserRepo{})

	_, err := service.GetLeaderboard(context.Background(), &LeaderboardRequest{Scope: models.RankScopeInstitution})
	assert.True(t, IsValidationError(err))
}

func TestGetRankGlobal(t *testing.T) {
	engagement := &fakeEngagementRepo{ranks: map[string]int{"1:global": 4}}
	users := &fakeUserRepo{users: map[int64]*models.User{1: {ID: 1}}}
	service := newTestRankingService(t, engagement, users)

	rank, err := service.GetRank(context.Background(), 1, models.RankScopeGlobal)
	require.NoError(t, err)
	require.NotNil(t, rank)
	assert.Equal(t, 4, *rank)
}

func TestGetRankWithoutAffiliation(t *testing.T) {
	users := &fakeUserRepo{users: map[int64]*models.User{1: {ID: 1}}}
	service := newTestRankingService(t, &fakeEngagementRepo{}, users)

	rank, err := service.GetRank(context.Background(), 1, models.RankScopeInstitution)
	require.NoError(t, err)
	assert.Nil(t, rank, "no affiliation means no rank, not an error")
}

func TestGetRankUnrankedUser(t *testing.T) {
	users := &fakeUserRepo{users: map[int64]*models.User{1: {ID: 1}}}
	service := newTestRankingService(t, &fakeEngagementRepo{}, users)

	rank, err := service.GetRank(context.Background(), 1, models.RankScopeGlobal)
	require.NoError(t, err)
	assert.Nil(t, rank)
}
