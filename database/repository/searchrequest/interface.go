// File: database/repository/searchrequest/interface.go
package searchRequestRepo

import (
	"context"
	"time"

	"padelwatch/models"

	"gorm.io/gorm"
)

// SearchRequestRepository defines data access for fetch records. The
// newest live record per (location, date) scope is the cache freshness
// marker.
type SearchRequestRepository interface {
	Record(ctx context.Context, req *models.SearchRequest) error
	// LatestLive returns the newest live fetch record of a scope, or nil
	// when the scope has never been fetched.
	LatestLive(ctx context.Context, locationID, date string) (*models.SearchRequest, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// GormSearchRequestRepo implements SearchRequestRepository using GORM.
type GormSearchRequestRepo struct {
	db *gorm.DB
}

// NewGormSearchRequestRepo constructs a SearchRequestRepository.
func NewGormSearchRequestRepo(db *gorm.DB) SearchRequestRepository {
	return &GormSearchRequestRepo{db: db}
}
