// File: database/repository/location/interface.go
package locationRepo

import (
	"context"

	"padelwatch/models"

	"gorm.io/gorm"
)

// LocationRepository defines data access for tracked locations.
type LocationRepository interface {
	Create(ctx context.Context, loc *models.Location) error
	GetByID(ctx context.Context, id string) (*models.Location, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Location, error)
	GetBySlug(ctx context.Context, slug, provider string) (*models.Location, error)
	List(ctx context.Context) ([]models.Location, error)
	Update(ctx context.Context, loc *models.Location) error
	// Delete removes the location together with its courts, availability
	// and fetch records in one transaction.
	Delete(ctx context.Context, id string) error
}

// GormLocationRepo implements LocationRepository using GORM.
type GormLocationRepo struct {
	db *gorm.DB
}

// NewGormLocationRepo constructs a LocationRepository.
func NewGormLocationRepo(db *gorm.DB) LocationRepository {
	return &GormLocationRepo{db: db}
}
