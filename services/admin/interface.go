// File: services/admin/interface.go
package admin

import (
	"context"
	"errors"

	availabilityRepo "padelwatch/database/repository/availability"
	courtRepo "padelwatch/database/repository/court"
	searchRequestRepo "padelwatch/database/repository/searchrequest"

	"padelwatch/services/locations"
	"padelwatch/services/search"
)

// ClearCacheReport counts what a cache clear removed.
type ClearCacheReport struct {
	AvailabilityDeleted int64 `json:"availabilityDeleted"`
	FetchRecordsDeleted int64 `json:"fetchRecordsDeleted"`
}

// RefreshOutcome is one location's result in a full data refresh.
type RefreshOutcome struct {
	LocationID string `json:"locationId"`
	Slug       string `json:"slug"`
	Courts     int    `json:"courts"`
	Slots      int    `json:"slots"`
	Error      string `json:"error,omitempty"`
}

// RefreshReport summarizes a full data refresh.
type RefreshReport struct {
	Locations           []RefreshOutcome `json:"locations"`
	Succeeded           int              `json:"succeeded"`
	Failed              int              `json:"failed"`
	AvailabilityDeleted int64            `json:"availabilityDeleted"`
	FetchRecordsDeleted int64            `json:"fetchRecordsDeleted"`
	CourtsDeleted       int64            `json:"courtsDeleted"`
}

// AdminService hosts destructive maintenance operations. Routes expose
// them to admin identities only.
type AdminService interface {
	// ClearCache drops cached availability rows and the fetch records
	// that mark scopes fresh. A nil cutoff clears everything; otherwise
	// only data older than the given number of minutes goes.
	ClearCache(ctx context.Context, olderThanMinutes *int) (*ClearCacheReport, error)

	// RefreshAllData rebuilds platform-sourced data from scratch: it
	// wipes courts, availability and fetch records, then re-fetches club
	// info and a fresh availability snapshot for every tracked location.
	// Locations survive with their identity intact. One location failing
	// never stops the rebuild.
	RefreshAllData(ctx context.Context) (*RefreshReport, error)
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	AvailabilityRepo  availabilityRepo.AvailabilityRepository
	SearchRequestRepo searchRequestRepo.SearchRequestRepository
	CourtRepo         courtRepo.CourtRepository
	Locations         locations.LocationService
	Coordinator       *search.CacheCoordinator
}

func NewDefaultAdminService(
	availRepo availabilityRepo.AvailabilityRepository,
	requestRepo searchRequestRepo.SearchRequestRepository,
	crtRepo courtRepo.CourtRepository,
	locationSvc locations.LocationService,
	coordinator *search.CacheCoordinator,
) (*DefaultAdminService, error) {
	if availRepo == nil || requestRepo == nil || crtRepo == nil || locationSvc == nil || coordinator == nil {
		return nil, errors.New("admin: missing required dependency")
	}
	return &DefaultAdminService{
		AvailabilityRepo:  availRepo,
		SearchRequestRepo: requestRepo,
		CourtRepo:         crtRepo,
		Locations:         locationSvc,
		Coordinator:       coordinator,
	}, nil
}
