// File: services/search/interface.go
package search

import (
	"context"

	locationRepo "padelwatch/database/repository/location"

	"padelwatch/courtfinder"
	"padelwatch/models"
)

// SearchService runs availability searches across tracked locations.
// SearchLocation exposes the per-location step so the background task
// runner can drive the loop itself and report progress between
// locations.
type SearchService interface {
	Search(ctx context.Context, identity models.Identity, spec models.SearchSpec) (*models.SearchResult, error)
	ResolveLocations(ctx context.Context, locationIDs []string) ([]models.Location, error)
	SearchLocation(ctx context.Context, identity models.Identity, location models.Location, spec models.SearchSpec) (models.LocationResult, error)
}

// DefaultSearchService implements SearchService on top of the cache
// coordinator.
type DefaultSearchService struct {
	LocationRepo locationRepo.LocationRepository
	Coordinator  *CacheCoordinator
	Providers    *courtfinder.Registry
	// FetchConcurrency bounds parallel per-location sourcing during a
	// multi-location search.
	FetchConcurrency int
}
