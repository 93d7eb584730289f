// File: services/locations/interface.go
package locations

import (
	"context"
	"errors"

	courtRepo "padelwatch/database/repository/court"
	locationRepo "padelwatch/database/repository/location"

	"padelwatch/courtfinder"
	"padelwatch/models"
)

// LocationService manages the set of tracked clubs. New clubs are
// onboarded by platform slug: the provider is asked for the club's
// metadata and court inventory, which the normalizer maps into local
// records.
type LocationService interface {
	// AddBySlug onboards the club behind a provider slug. Adding a slug
	// that is already tracked returns the existing location without an
	// upstream call; the boolean reports whether a new record was made.
	AddBySlug(ctx context.Context, provider, slug string) (*models.Location, []models.Court, bool, error)

	// RefreshCourts re-fetches a tracked club's metadata and upserts its
	// court inventory, repairing placeholder courts that were created
	// from availability data alone.
	RefreshCourts(ctx context.Context, locationID string) (*models.Location, []models.Court, error)

	List(ctx context.Context) ([]models.Location, error)
	Get(ctx context.Context, locationID string) (*models.Location, error)
	GetCourts(ctx context.Context, locationID string) ([]models.Court, error)

	// Delete removes the location and everything that hangs off it:
	// courts, cached availability and fetch records.
	Delete(ctx context.Context, locationID string) error
}

// DefaultLocationService is the production implementation.
type DefaultLocationService struct {
	LocationRepo locationRepo.LocationRepository
	CourtRepo    courtRepo.CourtRepository
	Providers    *courtfinder.Registry
}

func NewDefaultLocationService(
	locRepo locationRepo.LocationRepository,
	crtRepo courtRepo.CourtRepository,
	providers *courtfinder.Registry,
) (*DefaultLocationService, error) {
	if locRepo == nil || crtRepo == nil || providers == nil {
		return nil, errors.New("locations: missing required dependency")
	}
	return &DefaultLocationService{
		LocationRepo: locRepo,
		CourtRepo:    crtRepo,
		Providers:    providers,
	}, nil
}
