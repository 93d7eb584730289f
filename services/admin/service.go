// File: services/admin/service.go
package admin

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"padelwatch/models"
	"padelwatch/services/search"
	"padelwatch/utils"
)

func (s *DefaultAdminService) ClearCache(ctx context.Context, olderThanMinutes *int) (*ClearCacheReport, error) {
	logger := utils.GetLogger()
	report := &ClearCacheReport{}

	if olderThanMinutes == nil {
		availability, err := s.AvailabilityRepo.DeleteAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to clear availability cache: %w", err)
		}
		records, err := s.SearchRequestRepo.DeleteAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to clear fetch records: %w", err)
		}
		report.AvailabilityDeleted = availability
		report.FetchRecordsDeleted = records

		logger.Info("availability cache cleared",
			zap.Int64("availabilityDeleted", availability),
			zap.Int64("fetchRecordsDeleted", records))
		return report, nil
	}

	if *olderThanMinutes <= 0 {
		return nil, search.NewInvalidParameterError("olderThanMinutes must be positive")
	}
	cutoff := time.Now().UTC().Add(-time.Duration(*olderThanMinutes) * time.Minute)

	availability, err := s.AvailabilityRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to clear availability cache: %w", err)
	}
	records, err := s.SearchRequestRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to clear fetch records: %w", err)
	}
	report.AvailabilityDeleted = availability
	report.FetchRecordsDeleted = records

	logger.Info("availability cache cleared",
		zap.Time("cutoff", cutoff),
		zap.Int64("availabilityDeleted", availability),
		zap.Int64("fetchRecordsDeleted", records))
	return report, nil
}

func (s *DefaultAdminService) RefreshAllData(ctx context.Context) (*RefreshReport, error) {
	logger := utils.GetLogger()

	tracked, err := s.Locations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	logger.Info("full data refresh started", zap.Int("locations", len(tracked)))

	report := &RefreshReport{}
	if report.AvailabilityDeleted, err = s.AvailabilityRepo.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to wipe availability: %w", err)
	}
	if report.FetchRecordsDeleted, err = s.SearchRequestRepo.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to wipe fetch records: %w", err)
	}
	if report.CourtsDeleted, err = s.CourtRepo.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to wipe courts: %w", err)
	}

	today := time.Now().Format(models.DateLayout)
	for _, location := range tracked {
		outcome := RefreshOutcome{LocationID: location.ID, Slug: location.Slug}

		refreshed, courts, err := s.Locations.RefreshCourts(ctx, location.ID)
		if err != nil {
			outcome.Error = err.Error()
			report.Locations = append(report.Locations, outcome)
			report.Failed++
			logger.Error("failed to refresh location",
				zap.String("locationID", location.ID),
				zap.String("slug", location.Slug),
				zap.Error(err))
			continue
		}
		outcome.Courts = len(courts)

		data, err := s.Coordinator.GetAvailability(ctx, *refreshed, today, search.FetchOptions{LiveSearch: true})
		if err != nil {
			outcome.Error = err.Error()
			report.Locations = append(report.Locations, outcome)
			report.Failed++
			logger.Error("failed to snapshot availability",
				zap.String("locationID", location.ID),
				zap.String("date", today),
				zap.Error(err))
			continue
		}
		outcome.Slots = len(data.Rows)

		report.Locations = append(report.Locations, outcome)
		report.Succeeded++
	}

	logger.Info("full data refresh completed",
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
		zap.Int64("courtsDeleted", report.CourtsDeleted),
		zap.Int64("availabilityDeleted", report.AvailabilityDeleted))
	return report, nil
}
