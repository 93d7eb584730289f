// File: services/search/engine.go
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"padelwatch/courtfinder"
	"padelwatch/models"
	"padelwatch/utils"
)

// ValidateSpec rejects malformed search specifications before any data
// is touched. Validation failures are never retried.
func ValidateSpec(spec models.SearchSpec) error {
	if _, err := models.ParseDate(spec.Date); err != nil {
		return NewInvalidParameterError(err.Error())
	}
	if spec.DurationMinutes <= 0 {
		return NewInvalidParameterError("duration must be positive")
	}
	if !spec.Window.Valid() {
		return NewInvalidParameterError(fmt.Sprintf("invalid time window %s", spec.Window))
	}
	if !models.ValidCourtType(spec.CourtType) {
		return NewInvalidParameterError(fmt.Sprintf("unknown court type %q", spec.CourtType))
	}
	if !models.ValidCourtConfig(spec.CourtConfig) {
		return NewInvalidParameterError(fmt.Sprintf("unknown court config %q", spec.CourtConfig))
	}
	return nil
}

// Search runs one availability search. Locations are sourced
// concurrently up to the configured limit; a location whose data cannot
// be sourced is reported as a failure entry while the rest of the
// search proceeds.
func (s *DefaultSearchService) Search(ctx context.Context, identity models.Identity, spec models.SearchSpec) (*models.SearchResult, error) {
	logger := utils.GetLogger()

	if err := ValidateSpec(spec); err != nil {
		return nil, err
	}
	locations, err := s.ResolveLocations(ctx, spec.LocationIDs)
	if err != nil {
		return nil, err
	}

	type outcome struct {
		result  *models.LocationResult
		failure *models.LocationFailure
	}
	outcomes := make([]outcome, len(locations))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency())
	for i, loc := range locations {
		i, loc := i, loc
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := s.SearchLocation(gctx, identity, loc, spec)
			if err != nil {
				logger.Warn("location search failed",
					zap.String("locationID", loc.ID),
					zap.String("date", spec.Date),
					zap.Error(err))
				outcomes[i].failure = &models.LocationFailure{
					LocationID: loc.ID,
					Code:       FailureCode(err),
					Message:    err.Error(),
				}
				return nil
			}
			outcomes[i].result = &res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Outcomes land in index order, so the result order matches the
	// resolved location order no matter which fetch finished first.
	result := &models.SearchResult{
		Date:            spec.Date,
		Window:          spec.Window,
		DurationMinutes: spec.DurationMinutes,
		PerformedAt:     time.Now().UTC(),
	}
	for i := range outcomes {
		if outcomes[i].failure != nil {
			result.Failures = append(result.Failures, *outcomes[i].failure)
			continue
		}
		lr := *outcomes[i].result
		result.Locations = append(result.Locations, lr)
		result.TotalSlots += SlotCount(lr)
	}

	logger.Info("search completed",
		zap.String("date", spec.Date),
		zap.Int("locations", len(result.Locations)),
		zap.Int("failures", len(result.Failures)),
		zap.Int("totalSlots", result.TotalSlots))
	return result, nil
}

// ResolveLocations expands the location scope of a search. An empty
// scope means every known location, ordered by id; an explicit scope
// keeps the caller's order and fails when any id is unknown.
func (s *DefaultSearchService) ResolveLocations(ctx context.Context, locationIDs []string) ([]models.Location, error) {
	if len(locationIDs) == 0 {
		return s.LocationRepo.List(ctx)
	}

	found, err := s.LocationRepo.GetByIDs(ctx, locationIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Location, len(found))
	for _, loc := range found {
		byID[loc.ID] = loc
	}

	locations := make([]models.Location, 0, len(locationIDs))
	seen := make(map[string]bool, len(locationIDs))
	for _, id := range locationIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		loc, ok := byID[id]
		if !ok {
			return nil, NewLocationNotFoundError(id)
		}
		locations = append(locations, loc)
	}
	return locations, nil
}

// SearchLocation sources one location's data through the coordinator
// and applies the court and window filters. ForceLiveSearch is only
// honored for admin callers.
func (s *DefaultSearchService) SearchLocation(ctx context.Context, identity models.Identity, location models.Location, spec models.SearchSpec) (models.LocationResult, error) {
	opts := FetchOptions{
		LiveSearch:      spec.LiveSearch,
		ForceLiveSearch: spec.ForceLiveSearch && identity.Admin,
	}
	data, err := s.Coordinator.GetAvailability(ctx, location, spec.Date, opts)
	if err != nil {
		return models.LocationResult{}, err
	}
	return s.matchLocation(data, spec), nil
}

// matchLocation filters one scope's rows against the spec. Rows arrive
// ordered by court id then start time, so grouping in iteration order
// keeps the result deterministic.
func (s *DefaultSearchService) matchLocation(data *LocationData, spec models.SearchSpec) models.LocationResult {
	courts := make(map[string]models.Court, len(data.Courts))
	for _, court := range data.Courts {
		if !court.MatchesType(spec.CourtType) || !court.MatchesConfig(spec.CourtConfig) {
			continue
		}
		courts[court.ID] = court
	}

	var provider courtfinder.Provider
	if p, err := s.Providers.Get(data.Location.Provider); err == nil {
		provider = p
	}

	result := models.LocationResult{
		LocationID:   data.Location.ID,
		LocationName: data.Location.Name,
		Slug:         data.Location.Slug,
		Cached:       data.Cached,
		Stale:        data.Stale,
		FetchedAt:    data.FetchedAt,
	}

	var current *models.CourtResult
	for _, row := range data.Rows {
		court, ok := courts[row.CourtID]
		if !ok {
			continue
		}
		if !row.Available {
			continue
		}
		// A row is a bookable start time for its own span; the requested
		// duration must match the span, not merely fit the window.
		if row.DurationMinutes != spec.DurationMinutes {
			continue
		}
		if !spec.Window.SlotFits(row.StartMinute, spec.DurationMinutes) {
			continue
		}

		if current == nil || current.Court.ID != court.ID {
			result.Courts = append(result.Courts, models.CourtResult{Court: court})
			current = &result.Courts[len(result.Courts)-1]
		}

		slot := models.SlotResult{
			AvailabilityID:  row.ID,
			CourtID:         row.CourtID,
			Start:           models.FormatClock(row.StartMinute),
			End:             models.FormatClock(row.EndMinute),
			DurationMinutes: row.DurationMinutes,
			Price:           row.Price,
			Currency:        row.Currency,
		}
		if provider != nil {
			slot.BookingURL = provider.BookingURL(
				data.Location.ProviderLocationID, court.ProviderCourtID,
				row.Date, row.StartMinute, row.DurationMinutes)
		}
		current.Slots = append(current.Slots, slot)
	}
	return result
}

// SlotCount sums the matched slots of one location result.
func SlotCount(lr models.LocationResult) int {
	n := 0
	for _, c := range lr.Courts {
		n += len(c.Slots)
	}
	return n
}

func (s *DefaultSearchService) concurrency() int {
	if s.FetchConcurrency > 0 {
		return s.FetchConcurrency
	}
	return 4
}

// FailureCode maps an error to the stable code reported for a failed
// location.
func FailureCode(err error) string {
	if code := courtfinder.CodeOf(err); code != "" {
		return code
	}
	if code := CodeOf(err); code != "" {
		return code
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCodeLocationNotFound
	}
	return "internal"
}
