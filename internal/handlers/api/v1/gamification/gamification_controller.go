// ===============================
// FILE: internal/handlers/api/v1/gamification/gamification_controller.go
// ===============================

package gamification

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"notehub/internal/models"
	"notehub/internal/response"
	"notehub/internal/services"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Controller handles gamification API endpoints.
type Controller struct {
	services        *services.ServiceCollection
	logger          *zap.Logger
	responseBuilder *response.Builder
}

// NewController creates a new gamification controller
func NewController(
	serviceCollection *services.ServiceCollection,
	logger *zap.Logger,
	responseBuilder *response.Builder,
) *Controller {
	return &Controller{
		services:        serviceCollection,
		logger:          logger,
		responseBuilder: responseBuilder,
	}
}

// ===============================
// LEADERBOARD
// ===============================

// GetLeaderboard handles GET /api/v1/leaderboard
func (c *Controller) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	req := &services.LeaderboardRequest{
		Scope: models.RankScope(r.URL.Query().Get("scope")),
	}
	if req.Scope == "" {
		req.Scope = models.RankScopeGlobal
	}

	if raw := r.URL.Query().Get("scope_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.responseBuilder.WriteBadRequest(w, r, "scope_id must be an integer")
			return
		}
		req.ScopeID = &id
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.responseBuilder.WriteBadRequest(w, r, "limit must be a non-negative integer")
			return
		}
		req.Limit = limit
	}

	entries, err := c.services.RankingService.GetLeaderboard(r.Context(), req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, entries)
}

// ===============================
// USER BADGES & STATS
// ===============================

// GetUserBadges handles GET /api/v1/users/{id}/badges
func (c *Controller) GetUserBadges(w http.ResponseWriter, r *http.Request) {
	userID, ok := c.parseUserID(w, r)
	if !ok {
		return
	}

	badges, err := c.services.BadgeService.GetUserBadges(r.Context(), userID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, badges)
}

// GetUserStats handles GET /api/v1/users/{id}/stats
func (c *Controller) GetUserStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := c.parseUserID(w, r)
	if !ok {
		return
	}

	stats, err := c.services.BadgeService.GetUserStats(r.Context(), userID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, stats)
}

// ===============================
// BADGE CATALOG & EVALUATION
// ===============================

// GetCatalog handles GET /api/v1/badges
func (c *Controller) GetCatalog(w http.ResponseWriter, r *http.Request) {
	badges, err := c.services.BadgeService.GetCatalog(r.Context())
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, badges)
}

// evaluateRequest is the body of POST /api/v1/users/{id}/evaluate.
type evaluateRequest struct {
	Trigger services.Trigger `json:"trigger"`
}

// evaluateResponse reports the newly awarded badges.
type evaluateResponse struct {
	Awarded []*models.UserBadge `json:"awarded"`
}

// Evaluate handles POST /api/v1/users/{id}/evaluate
func (c *Controller) Evaluate(w http.ResponseWriter, r *http.Request) {
	userID, ok := c.parseUserID(w, r)
	if !ok {
		return
	}

	// An empty body means evaluate without a trigger hint (full sweep).
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		c.logger.Warn("Failed to decode evaluate request", zap.Error(err))
		c.responseBuilder.WriteBadRequest(w, r, "Invalid request body format")
		return
	}
	if req.Trigger == "" {
		req.Trigger = services.TriggerFullSweep
	}
	if !req.Trigger.Valid() {
		c.responseBuilder.WriteBadRequest(w, r, "Unknown trigger")
		return
	}

	awarded, err := c.services.BadgeService.EvaluateAndAward(r.Context(), userID, req.Trigger)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	if len(awarded) > 0 {
		c.logger.Info("Evaluation awarded badges via API",
			zap.Int64("user_id", userID),
			zap.String("trigger", string(req.Trigger)),
			zap.Int("award_count", len(awarded)),
		)
	}
	c.responseBuilder.WriteSuccess(w, r, &evaluateResponse{Awarded: awarded})
}

// ===============================
// HELPERS
// ===============================

func (c *Controller) parseUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		c.responseBuilder.WriteBadRequest(w, r, "user id must be a positive integer")
		return 0, false
	}
	return userID, true
}
