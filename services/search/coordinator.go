// File: services/search/coordinator.go
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	availabilityRepo "padelwatch/database/repository/availability"
	courtRepo "padelwatch/database/repository/court"
	searchRequestRepo "padelwatch/database/repository/searchrequest"

	"padelwatch/courtfinder"
	"padelwatch/models"
	"padelwatch/utils"
)

// FetchOptions control how the coordinator sources one scope.
type FetchOptions struct {
	// LiveSearch permits a platform fetch when the cache is stale.
	LiveSearch bool
	// ForceLiveSearch always fetches, bypassing the freshness check.
	// Admin only; enforced by the caller.
	ForceLiveSearch bool
}

// LocationData is the coordinator's answer for one (location, date)
// scope: the location's courts plus the availability rows on that date.
type LocationData struct {
	Location models.Location
	Courts   []models.Court
	Rows     []models.Availability
	// Cached is false only when this answer comes straight from a
	// successful live fetch.
	Cached bool
	// Stale marks data older than the freshness threshold or served as
	// fallback after a failed fetch.
	Stale     bool
	FetchedAt *time.Time
	// Skipped counts malformed records dropped during a live fetch.
	Skipped int
}

// CacheCoordinator decides, per (location, date), between serving
// persisted availability and fetching live from the booking platform.
// Concurrent live fetches for the same scope collapse into one upstream
// call through the single-flight group.
type CacheCoordinator struct {
	Providers         *courtfinder.Registry
	CourtRepo         courtRepo.CourtRepository
	AvailabilityRepo  availabilityRepo.AvailabilityRepository
	SearchRequestRepo searchRequestRepo.SearchRequestRepository
	// Freshness is the maximum cache age served without a live fetch.
	Freshness time.Duration

	flight singleflight.Group
}

// GetAvailability returns the availability of one location on one date,
// from cache when fresh enough, live otherwise. A failed live fetch
// falls back to stale cache when the scope has been fetched before;
// the error propagates only when the store holds nothing for the scope.
func (c *CacheCoordinator) GetAvailability(ctx context.Context, location models.Location, date string, opts FetchOptions) (*LocationData, error) {
	needLive := opts.ForceLiveSearch
	if !needLive && opts.LiveSearch {
		marker, err := c.SearchRequestRepo.LatestLive(ctx, location.ID, date)
		if err != nil {
			return nil, fmt.Errorf("failed to read freshness marker: %w", err)
		}
		needLive = marker == nil || time.Since(marker.PerformedAt) > c.freshness()
	}

	if !needLive {
		return c.loadCached(ctx, location, date, false)
	}

	key := location.ID + "|" + date
	v, err, shared := c.flight.Do(key, func() (interface{}, error) {
		return c.refresh(location, date)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		utils.GetLogger().Debug("joined in-flight availability fetch",
			zap.String("locationID", location.ID),
			zap.String("date", date))
	}
	return v.(*LocationData), nil
}

func (c *CacheCoordinator) freshness() time.Duration {
	if c.Freshness > 0 {
		return c.Freshness
	}
	return 15 * time.Minute
}

// refresh performs the live fetch for one scope. It runs inside the
// single-flight group on a detached context: cancelling one waiter must
// not fail the fetch for the callers sharing it, and the platform
// client's own timeout bounds the call.
func (c *CacheCoordinator) refresh(location models.Location, date string) (*LocationData, error) {
	logger := utils.GetLogger()
	ctx := context.Background()

	provider, err := c.Providers.Get(location.Provider)
	if err != nil {
		return nil, err
	}

	raw, err := c.fetchWithRetry(ctx, provider, location.ProviderLocationID, date)
	if err != nil {
		data, loadErr := c.loadCached(ctx, location, date, true)
		if loadErr == nil && data.FetchedAt != nil {
			logger.Warn("live fetch failed, serving stale cache",
				zap.String("locationID", location.ID),
				zap.String("date", date),
				zap.Error(err))
			return data, nil
		}
		return nil, err
	}

	now := time.Now().UTC()
	courtIDs, err := c.ensureCourts(ctx, location, raw)
	if err != nil {
		return nil, err
	}

	rows, skipped := NormalizeAvailability(raw, courtIDs, now)

	added, updated, err := c.AvailabilityRepo.UpsertBatch(ctx, rows)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.Error("availability cache write conflict, single-flight guarantee violated",
				zap.String("locationID", location.ID),
				zap.String("date", date),
				zap.Error(err))
			return nil, NewCacheWriteConflictError(location.ID, date, err)
		}
		return nil, fmt.Errorf("failed to persist availability: %w", err)
	}

	retired, err := c.AvailabilityRepo.MarkUnavailableBefore(ctx, location.ID, date, now)
	if err != nil {
		return nil, fmt.Errorf("failed to retire vanished slots: %w", err)
	}

	if err := c.SearchRequestRepo.Record(ctx, &models.SearchRequest{
		LocationID:  location.ID,
		Date:        date,
		LiveSearch:  true,
		SlotsFound:  len(rows),
		PerformedAt: now,
	}); err != nil {
		// The data itself is persisted; a lost marker only costs an
		// extra fetch on the next search.
		logger.Error("failed to record fetch marker",
			zap.String("locationID", location.ID),
			zap.String("date", date),
			zap.Error(err))
	}

	courts, err := c.CourtRepo.ListByLocation(ctx, location.ID)
	if err != nil {
		return nil, err
	}
	fresh, err := c.AvailabilityRepo.ListByLocationAndDate(ctx, location.ID, date)
	if err != nil {
		return nil, err
	}

	logger.Info("availability cache refreshed",
		zap.String("locationID", location.ID),
		zap.String("date", date),
		zap.Int("added", added),
		zap.Int("updated", updated),
		zap.Int64("retired", retired),
		zap.Int("skipped", skipped))

	return &LocationData{
		Location:  location,
		Courts:    courts,
		Rows:      fresh,
		FetchedAt: &now,
		Skipped:   skipped,
	}, nil
}

// loadCached assembles a scope's answer from the store. fallback marks
// data served because a live fetch just failed.
func (c *CacheCoordinator) loadCached(ctx context.Context, location models.Location, date string, fallback bool) (*LocationData, error) {
	courts, err := c.CourtRepo.ListByLocation(ctx, location.ID)
	if err != nil {
		return nil, err
	}
	rows, err := c.AvailabilityRepo.ListByLocationAndDate(ctx, location.ID, date)
	if err != nil {
		return nil, err
	}
	marker, err := c.SearchRequestRepo.LatestLive(ctx, location.ID, date)
	if err != nil {
		return nil, err
	}

	var fetchedAt *time.Time
	switch {
	case marker != nil:
		t := marker.PerformedAt
		fetchedAt = &t
	case len(rows) > 0:
		t := rows[0].FetchedAt
		for _, row := range rows[1:] {
			if row.FetchedAt.After(t) {
				t = row.FetchedAt
			}
		}
		fetchedAt = &t
	}

	stale := fallback
	if !stale {
		stale = fetchedAt == nil || time.Since(*fetchedAt) > c.freshness()
	}

	return &LocationData{
		Location:  location,
		Courts:    courts,
		Rows:      rows,
		Cached:    true,
		Stale:     stale,
		FetchedAt: fetchedAt,
	}, nil
}

// ensureCourts resolves every resource in the payload to an internal
// court id, creating placeholder courts for resources first seen
// through availability. Club metadata later fills in their proper name
// and attributes.
func (c *CacheCoordinator) ensureCourts(ctx context.Context, location models.Location, raw *courtfinder.RawAvailability) (map[string]string, error) {
	ids := make(map[string]string, len(raw.Resources))
	for _, res := range raw.Resources {
		if _, ok := ids[res.ResourceID]; ok {
			continue
		}
		court, err := c.CourtRepo.GetByProviderID(ctx, location.ID, res.ResourceID)
		switch {
		case err == nil:
			ids[res.ResourceID] = court.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
			created, cerr := c.CourtRepo.Upsert(ctx, &models.Court{
				LocationID:      location.ID,
				ProviderCourtID: res.ResourceID,
				Name:            res.ResourceID,
			})
			if cerr != nil {
				return nil, cerr
			}
			ids[res.ResourceID] = created.ID
		default:
			return nil, err
		}
	}
	return ids, nil
}

// fetchWithRetry retries a transient upstream failure once before the
// caller falls back to stale cache. Malformed payloads are not retried.
func (c *CacheCoordinator) fetchWithRetry(ctx context.Context, provider courtfinder.Provider, tenantID, date string) (*courtfinder.RawAvailability, error) {
	raw, err := provider.FetchAvailability(ctx, tenantID, date)
	if err == nil {
		return raw, nil
	}
	if !courtfinder.IsRetryable(err) {
		return nil, err
	}
	utils.GetLogger().Warn("availability fetch failed, retrying once",
		zap.String("tenantID", tenantID),
		zap.String("date", date),
		zap.Error(err))
	return provider.FetchAvailability(ctx, tenantID, date)
}
