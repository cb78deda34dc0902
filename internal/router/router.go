package router

import (
	"net/http"

	"notehub/internal/handlers/api/v1/gamification"
	"notehub/internal/middleware"
	"notehub/internal/monitoring"
	"notehub/internal/response"
	"notehub/internal/services"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SetupRouter configures all HTTP routes and returns the main handler
func SetupRouter(serviceCollection *services.ServiceCollection, responseBuilder *response.Builder, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID(logger))
	r.Use(middleware.RecoverPanic())
	r.Use(middleware.Logging())
	r.Use(middleware.SecurityHeaders())

	controller := gamification.NewController(serviceCollection, logger, responseBuilder)
	dashboard := monitoring.NewDashboard(serviceCollection, responseBuilder, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/leaderboard", controller.GetLeaderboard)
		r.Get("/badges", controller.GetCatalog)

		r.Route("/users/{id}", func(r chi.Router) {
			r.Get("/badges", controller.GetUserBadges)
			r.Get("/stats", controller.GetUserStats)
			r.Post("/evaluate", controller.Evaluate)
		})
	})

	r.Get("/health", dashboard.Health)
	r.Get("/metrics", dashboard.Metrics)

	return r
}
