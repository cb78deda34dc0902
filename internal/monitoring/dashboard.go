// File: internal/monitoring/dashboard.go
package monitoring

import (
	"net/http"
	"time"

	"notehub/internal/response"
	"notehub/internal/services"

	"go.uber.org/zap"
)

// Dashboard exposes operational health and metrics endpoints.
type Dashboard struct {
	services        *services.ServiceCollection
	responseBuilder *response.Builder
	logger          *zap.Logger
	startTime       time.Time
}

// NewDashboard creates a new monitoring dashboard
func NewDashboard(serviceCollection *services.ServiceCollection, responseBuilder *response.Builder, logger *zap.Logger) *Dashboard {
	return &Dashboard{
		services:        serviceCollection,
		responseBuilder: responseBuilder,
		logger:          logger,
		startTime:       time.Now(),
	}
}

// HealthResponse represents overall system health
type HealthResponse struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Uptime     string            `json:"uptime"`
	Components map[string]string `json:"components"`
}

// MetricsResponse aggregates component metrics
type MetricsResponse struct {
	Timestamp time.Time   `json:"timestamp"`
	Uptime    string      `json:"uptime"`
	Database  interface{} `json:"database"`
	Cache     interface{} `json:"cache,omitempty"`
	EventBus  interface{} `json:"event_bus"`
}

// Health handles GET /health
func (d *Dashboard) Health(w http.ResponseWriter, r *http.Request) {
	components := d.services.Health(r.Context())

	status := "healthy"
	httpStatus := http.StatusOK
	for name, componentStatus := range components {
		if componentStatus != "healthy" {
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
			d.logger.Warn("Component unhealthy",
				zap.String("component", name),
				zap.String("status", componentStatus),
			)
		}
	}

	d.responseBuilder.WriteJSON(w, r, d.responseBuilder.Success(r.Context(), &HealthResponse{
		Status:     status,
		Timestamp:  time.Now(),
		Uptime:     time.Since(d.startTime).String(),
		Components: components,
	}), httpStatus)
}

// Metrics handles GET /metrics
func (d *Dashboard) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics := &MetricsResponse{
		Timestamp: time.Now(),
		Uptime:    time.Since(d.startTime).String(),
		Database:  d.services.DBManager.Metrics(),
		EventBus:  d.services.EventBus.Stats(),
	}
	if stats, err := d.services.Cache.Stats(r.Context()); err == nil {
		metrics.Cache = stats
	}
	d.responseBuilder.WriteSuccess(w, r, metrics)
}
