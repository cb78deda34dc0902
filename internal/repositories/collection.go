// file: internal/repositories/collection.go
package repositories

import (
	"fmt"

	"notehub/internal/database"

	"go.uber.org/zap"
)

// Collection holds all repository instances for dependency injection
type Collection struct {
	User         UserRepository
	Engagement   EngagementRepository
	Activity     ActivityRepository
	Badge        BadgeRepository
	Notification NotificationRepository

	db     *database.Manager
	logger *zap.Logger
}

// NewCollection creates a new repository collection with all dependencies
func NewCollection(db *database.Manager, logger *zap.Logger) (*Collection, error) {
	if db == nil {
		return nil, fmt.Errorf("database manager is required")
	}
	if logger == nil {
		logger, _ = zap.NewProduction()
	}

	return &Collection{
		User:         NewUserRepository(db, logger),
		Engagement:   NewEngagementRepository(db, logger),
		Activity:     NewActivityRepository(db, logger),
		Badge:        NewBadgeRepository(db, logger),
		Notification: NewNotificationRepository(db, logger),
		db:           db,
		logger:       logger,
	}, nil
}

// DB returns the underlying database manager
func (c *Collection) DB() *database.Manager {
	return c.db
}
