// file: internal/services/service_collection.go
package services

import (
	"context"
	"fmt"
	"time"

	"notehub/internal/cache"
	"notehub/internal/config"
	"notehub/internal/database"
	"notehub/internal/events"
	"notehub/internal/repositories"

	"go.uber.org/zap"
)

// ServiceCollection wires the gamification services together with their
// infrastructure dependencies.
type ServiceCollection struct {
	// Core Services
	MetricService       MetricService       `json:"-"`
	RankingService      RankingService      `json:"-"`
	StreakService       StreakService       `json:"-"`
	BadgeService        BadgeService        `json:"-"`
	NotificationService NotificationService `json:"-"`

	// Repository Collection
	Repositories *repositories.Collection `json:"-"`

	// Infrastructure Components
	Cache     cache.Cache       `json:"-"`
	EventBus  events.EventBus   `json:"-"`
	Logger    *zap.Logger       `json:"-"`
	Config    *config.Config    `json:"-"`
	DBManager *database.Manager `json:"-"`
}

// NewServiceCollection builds the full service graph in dependency
// order: infrastructure, repositories, then services.
func NewServiceCollection(
	dbManager *database.Manager,
	cfg *config.Config,
	logger *zap.Logger,
) (*ServiceCollection, error) {
	if dbManager == nil {
		return nil, fmt.Errorf("database manager is required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	sc := &ServiceCollection{
		DBManager: dbManager,
		Config:    cfg,
		Logger:    logger,
	}

	if err := sc.initializeInfrastructure(); err != nil {
		return nil, fmt.Errorf("failed to initialize infrastructure: %w", err)
	}
	if err := sc.initializeRepositories(); err != nil {
		return nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}
	sc.initializeServices()

	logger.Info("Service collection initialized")
	return sc, nil
}

func (sc *ServiceCollection) initializeInfrastructure() error {
	cacheInstance, err := cache.NewCache(&cache.Config{
		Provider:        sc.Config.Cache.Provider,
		TTL:             sc.Config.Cache.DefaultTTL,
		MaxKeys:         10000,
		CleanupInterval: 5 * time.Minute,
		RedisURL:        sc.Config.Cache.RedisURL,
		RedisDB:         sc.Config.Cache.RedisDB,
		RedisPassword:   sc.Config.Cache.RedisPassword,
		PoolSize:        sc.Config.Cache.PoolSize,
	}, sc.Logger)
	if err != nil {
		return fmt.Errorf("failed to create cache: %w", err)
	}
	sc.Cache = cacheInstance

	sc.EventBus = events.NewInMemoryEventBus(events.DefaultEventBusConfig(), sc.Logger)
	return nil
}

func (sc *ServiceCollection) initializeRepositories() error {
	collection, err := repositories.NewCollection(sc.DBManager, sc.Logger)
	if err != nil {
		return fmt.Errorf("failed to create repository collection: %w", err)
	}
	sc.Repositories = collection
	return nil
}

func (sc *ServiceCollection) initializeServices() {
	repos := sc.Repositories
	gamCfg := &sc.Config.Gamification
	cacheCfg := &sc.Config.Cache

	sc.StreakService = NewStreakService(repos.Activity, gamCfg, sc.Logger)
	sc.RankingService = NewRankingService(repos.Engagement, repos.User, sc.Cache, cacheCfg, gamCfg, sc.Logger)
	sc.MetricService = NewMetricService(repos.Engagement, repos.User, sc.StreakService, sc.RankingService, sc.Logger)
	sc.NotificationService = NewNotificationService(repos.Notification, sc.EventBus, sc.Logger)
	sc.BadgeService = NewBadgeService(
		repos.Badge,
		repos.User,
		sc.MetricService,
		sc.RankingService,
		sc.StreakService,
		sc.NotificationService,
		sc.Cache,
		gamCfg,
		cacheCfg,
		sc.Logger,
	)
}

// Start brings up background components.
func (sc *ServiceCollection) Start(ctx context.Context) error {
	if err := sc.EventBus.Start(ctx); err != nil {
		return fmt.Errorf("failed to start event bus: %w", err)
	}
	return nil
}

// Shutdown stops background components and releases resources.
func (sc *ServiceCollection) Shutdown(ctx context.Context) error {
	var firstErr error
	if err := sc.EventBus.Stop(ctx); err != nil {
		sc.Logger.Error("failed to stop event bus", zap.Error(err))
		firstErr = err
	}
	if err := sc.Cache.Close(); err != nil {
		sc.Logger.Error("failed to close cache", zap.Error(err))
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Health reports the status of the collection's dependencies.
func (sc *ServiceCollection) Health(ctx context.Context) map[string]string {
	status := make(map[string]string)

	if err := sc.DBManager.Health(ctx); err != nil {
		status["database"] = fmt.Sprintf("unhealthy: %v", err)
	} else {
		status["database"] = "healthy"
	}
	if err := sc.Cache.Health(ctx); err != nil {
		status["cache"] = fmt.Sprintf("unhealthy: %v", err)
	} else {
		status["cache"] = "healthy"
	}
	if err := sc.EventBus.Health(); err != nil {
		status["event_bus"] = fmt.Sprintf("unhealthy: %v", err)
	} else {
		status["event_bus"] = "healthy"
	}
	return status
}
