package gamification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"notehub/internal/models"
	"notehub/internal/response"
	"notehub/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockBadgeService is a simplified mock implementation for testing
type mockBadgeService struct {
	awarded     []*models.UserBadge
	stats       *services.UserStatsResponse
	lastTrigger services.Trigger
	err         error
}

func (m *mockBadgeService) EvaluateAndAward(ctx context.Context, userID int64, trigger services.Trigger) ([]*models.UserBadge, error) {
	m.lastTrigger = trigger
	return m.awarded, m.err
}

func (m *mockBadgeService) GetCatalog(ctx context.Context) ([]*models.Badge, error) {
	return nil, m.err
}

func (m *mockBadgeService) GetUserBadges(ctx context.Context, userID int64) ([]*models.UserBadge, error) {
	return m.awarded, m.err
}

func (m *mockBadgeService) GetUserStats(ctx context.Context, userID int64) (*services.UserStatsResponse, error) {
	return m.stats, m.err
}

// mockRankingService is a simplified mock implementation for testing
type mockRankingService struct {
	entries []*models.LeaderboardEntry
	err     error
}

func (m *mockRankingService) GetLeaderboard(ctx context.Context, req *services.LeaderboardRequest) ([]*models.LeaderboardEntry, error) {
	return m.entries, m.err
}

func (m *mockRankingService) GetRank(ctx context.Context, userID int64, scope models.RankScope) (*int, error) {
	return nil, m.err
}

func (m *mockRankingService) InvalidateScope(ctx context.Context, scope models.RankScope, scopeID *int64) error {
	return m.err
}

func newTestController(badge services.BadgeService, ranking services.RankingService) *Controller {
	logger, _ := zap.NewDevelopment()
	collection := &services.ServiceCollection{
		BadgeService:   badge,
		RankingService: ranking,
		Logger:         logger,
	}
	return NewController(collection, logger, response.NewBuilder(response.DefaultConfig(), logger))
}

func routeRequest(controller *Controller, method, target, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get("/api/v1/leaderboard", controller.GetLeaderboard)
	r.Route("/api/v1/users/{id}", func(r chi.Router) {
		r.Get("/badges", controller.GetUserBadges)
		r.Get("/stats", controller.GetUserStats)
		r.Post("/evaluate", controller.Evaluate)
	})

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestGetLeaderboard(t *testing.T) {
	ranking := &mockRankingService{entries: []*models.LeaderboardEntry{
		{Rank: 1, UserID: 1, Username: "ada", Points: 30},
	}}
	controller := newTestController(&mockBadgeService{}, ranking)

	rec := routeRequest(controller, http.MethodGet, "/api/v1/leaderboard?scope=global&limit=10", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body response.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
}

func TestGetLeaderboardBadScopeID(t *testing.T) {
	controller := newTestController(&mockBadgeService{}, &mockRankingService{})

	rec := routeRequest(controller, http.MethodGet, "/api/v1/leaderboard?scope=institution&scope_id=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEvaluateDefaultsToFullSweep(t *testing.T) {
	badge := &mockBadgeService{}
	controller := newTestController(badge, &mockRankingService{})

	rec := routeRequest(controller, http.MethodPost, "/api/v1/users/1/evaluate", `{}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, services.TriggerFullSweep, badge.lastTrigger)
}

func TestEvaluateEmptyBodyMeansFullSweep(t *testing.T) {
	badge := &mockBadgeService{}
	controller := newTestController(badge, &mockRankingService{})

	rec := routeRequest(controller, http.MethodPost, "/api/v1/users/1/evaluate", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, services.TriggerFullSweep, badge.lastTrigger)
}

func TestEvaluateRejectsUnknownTrigger(t *testing.T) {
	controller := newTestController(&mockBadgeService{}, &mockRankingService{})

	rec := routeRequest(controller, http.MethodPost, "/api/v1/users/1/evaluate", `{"trigger":"bogus"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEvaluateBadUserID(t *testing.T) {
	controller := newTestController(&mockBadgeService{}, &mockRankingService{})

	rec := routeRequest(controller, http.MethodPost, "/api/v1/users/zero/evaluate", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUserStatsPropagatesServiceError(t *testing.T) {
	badge := &mockBadgeService{err: services.NewNotFoundError("user not found")}
	controller := newTestController(badge, &mockRankingService{})

	rec := routeRequest(controller, http.MethodGet, "/api/v1/users/5/stats", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body response.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "NOT_FOUND", body.Error.Type)
}
