// File: database/repository/court/interface.go
package courtRepo

import (
	"context"

	"padelwatch/models"

	"gorm.io/gorm"
)

// CourtRepository defines data access for courts.
type CourtRepository interface {
	// Upsert creates the court or, when (location, provider court id)
	// already exists, refreshes its name and attribute flags in place.
	Upsert(ctx context.Context, court *models.Court) (*models.Court, error)
	GetByID(ctx context.Context, id string) (*models.Court, error)
	GetByProviderID(ctx context.Context, locationID, providerCourtID string) (*models.Court, error)
	ListByLocation(ctx context.Context, locationID string) ([]models.Court, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// GormCourtRepo implements CourtRepository using GORM.
type GormCourtRepo struct {
	db *gorm.DB
}

// NewGormCourtRepo constructs a CourtRepository.
func NewGormCourtRepo(db *gorm.DB) CourtRepository {
	return &GormCourtRepo{db: db}
}
