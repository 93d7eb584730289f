// File: database/repository/notification/interface.go
package notificationRepo

import (
	"context"
	"time"

	"padelwatch/models"

	"gorm.io/gorm"
)

// NotificationRepository defines data access for search order match
// notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.SearchOrderNotification) error
	GetByID(ctx context.Context, id string) (*models.SearchOrderNotification, error)
	ListByOrder(ctx context.Context, orderID string) ([]models.SearchOrderNotification, error)
	// SeenAvailabilityIDs returns the availability ids already recorded
	// for an order, for diffing against a fresh search result.
	SeenAvailabilityIDs(ctx context.Context, orderID string) (map[string]bool, error)
	MarkNotified(ctx context.Context, id string, at time.Time) error
	MarkRead(ctx context.Context, id string) error
}

// GormNotificationRepo implements NotificationRepository using GORM.
type GormNotificationRepo struct {
	db *gorm.DB
}

// NewGormNotificationRepo constructs a NotificationRepository.
func NewGormNotificationRepo(db *gorm.DB) NotificationRepository {
	return &GormNotificationRepo{db: db}
}
