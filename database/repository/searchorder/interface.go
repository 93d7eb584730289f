// File: database/repository/searchorder/interface.go
package searchOrderRepo

import (
	"context"
	"time"

	"padelwatch/models"

	"gorm.io/gorm"
)

// SearchOrderRepository defines data access for standing search orders.
type SearchOrderRepository interface {
	Create(ctx context.Context, order *models.SearchOrder) error
	GetByID(ctx context.Context, id string) (*models.SearchOrder, error)
	ListByUser(ctx context.Context, userID string) ([]models.SearchOrder, error)
	ListActive(ctx context.Context) ([]models.SearchOrder, error)
	Update(ctx context.Context, order *models.SearchOrder) error
	SetActive(ctx context.Context, id string, active bool) error
	TouchLastChecked(ctx context.Context, id string, at time.Time) error
	// Delete removes the order and its notifications.
	Delete(ctx context.Context, id string) error
}

// GormSearchOrderRepo implements SearchOrderRepository using GORM.
type GormSearchOrderRepo struct {
	db *gorm.DB
}

// NewGormSearchOrderRepo constructs a SearchOrderRepository.
func NewGormSearchOrderRepo(db *gorm.DB) SearchOrderRepository {
	return &GormSearchOrderRepo{db: db}
}
