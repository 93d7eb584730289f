// File: database/repository/availability/interface.go
package availabilityRepo

import (
	"context"
	"time"

	"padelwatch/models"

	"gorm.io/gorm"
)

// AvailabilityRepository defines data access for the availability cache.
type AvailabilityRepository interface {
	// UpsertBatch writes one fetch's rows in a single transaction. Rows
	// matching an existing (court, date, start, end) update that row in
	// place and keep its id; everything else is inserted. Returns the
	// added and updated counts.
	UpsertBatch(ctx context.Context, rows []models.Availability) (added, updated int, err error)
	GetByID(ctx context.Context, id string) (*models.Availability, error)
	// ListByLocationAndDate returns the cached rows of one scope ordered
	// by court id, then start time.
	ListByLocationAndDate(ctx context.Context, locationID, date string) ([]models.Availability, error)
	// MarkUnavailableBefore flips rows of a scope that a fresh fetch did
	// not touch to unavailable. Row ids stay stable for diffing.
	MarkUnavailableBefore(ctx context.Context, locationID, date string, before time.Time) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// GormAvailabilityRepo implements AvailabilityRepository using GORM.
type GormAvailabilityRepo struct {
	db *gorm.DB
}

// NewGormAvailabilityRepo constructs an AvailabilityRepository.
func NewGormAvailabilityRepo(db *gorm.DB) AvailabilityRepository {
	return &GormAvailabilityRepo{db: db}
}
