// File: services/locations/service.go
package locations

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"padelwatch/courtfinder"
	"padelwatch/models"
	"padelwatch/services/search"
	"padelwatch/utils"
)

func (s *DefaultLocationService) AddBySlug(ctx context.Context, provider, slug string) (*models.Location, []models.Court, bool, error) {
	logger := utils.GetLogger()

	if slug == "" {
		return nil, nil, false, search.NewInvalidParameterError("slug is required")
	}
	if provider == "" {
		provider = courtfinder.ProviderPlaytomic
	}
	client, err := s.Providers.Get(provider)
	if err != nil {
		return nil, nil, false, search.NewInvalidParameterError(err.Error())
	}

	if existing, err := s.LocationRepo.GetBySlug(ctx, slug, provider); err == nil {
		courts, err := s.CourtRepo.ListByLocation(ctx, existing.ID)
		if err != nil {
			return nil, nil, false, fmt.Errorf("failed to list courts: %w", err)
		}
		return existing, courts, false, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, false, fmt.Errorf("failed to look up location by slug: %w", err)
	}

	raw, err := client.FetchClubInfo(ctx, slug)
	if err != nil {
		return nil, nil, false, err
	}

	location, courts := search.NormalizeClub(raw)
	if err := s.LocationRepo.Create(ctx, &location); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race with a concurrent add of the same slug.
			existing, lookupErr := s.LocationRepo.GetBySlug(ctx, slug, provider)
			if lookupErr != nil {
				return nil, nil, false, fmt.Errorf("failed to reload location after duplicate insert: %w", lookupErr)
			}
			existingCourts, lookupErr := s.CourtRepo.ListByLocation(ctx, existing.ID)
			if lookupErr != nil {
				return nil, nil, false, fmt.Errorf("failed to list courts: %w", lookupErr)
			}
			return existing, existingCourts, false, nil
		}
		return nil, nil, false, fmt.Errorf("failed to create location: %w", err)
	}

	stored := make([]models.Court, 0, len(courts))
	for i := range courts {
		courts[i].LocationID = location.ID
		court, err := s.CourtRepo.Upsert(ctx, &courts[i])
		if err != nil {
			return nil, nil, false, fmt.Errorf("failed to store court %q: %w", courts[i].ProviderCourtID, err)
		}
		stored = append(stored, *court)
	}

	logger.Info("location added",
		zap.String("locationID", location.ID),
		zap.String("slug", location.Slug),
		zap.String("provider", location.Provider),
		zap.Int("courts", len(stored)))
	return &location, stored, true, nil
}

func (s *DefaultLocationService) RefreshCourts(ctx context.Context, locationID string) (*models.Location, []models.Court, error) {
	logger := utils.GetLogger()

	location, err := s.Get(ctx, locationID)
	if err != nil {
		return nil, nil, err
	}
	client, err := s.Providers.Get(location.Provider)
	if err != nil {
		return nil, nil, fmt.Errorf("location %q has no registered provider: %w", locationID, err)
	}

	raw, err := client.FetchClubInfo(ctx, location.Slug)
	if err != nil {
		return nil, nil, err
	}

	fresh, courts := search.NormalizeClub(raw)
	location.Name = fresh.Name
	location.Address = fresh.Address
	location.ProviderLocationID = fresh.ProviderLocationID
	if err := s.LocationRepo.Update(ctx, location); err != nil {
		return nil, nil, fmt.Errorf("failed to update location: %w", err)
	}

	stored := make([]models.Court, 0, len(courts))
	for i := range courts {
		courts[i].LocationID = location.ID
		court, err := s.CourtRepo.Upsert(ctx, &courts[i])
		if err != nil {
			return nil, nil, fmt.Errorf("failed to refresh court %q: %w", courts[i].ProviderCourtID, err)
		}
		stored = append(stored, *court)
	}

	logger.Info("location courts refreshed",
		zap.String("locationID", location.ID),
		zap.Int("courts", len(stored)))
	return location, stored, nil
}

func (s *DefaultLocationService) List(ctx context.Context) ([]models.Location, error) {
	list, err := s.LocationRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return list, nil
}

func (s *DefaultLocationService) Get(ctx context.Context, locationID string) (*models.Location, error) {
	location, err := s.LocationRepo.GetByID(ctx, locationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, search.NewLocationNotFoundError(locationID)
		}
		return nil, fmt.Errorf("failed to load location: %w", err)
	}
	return location, nil
}

func (s *DefaultLocationService) GetCourts(ctx context.Context, locationID string) ([]models.Court, error) {
	if _, err := s.Get(ctx, locationID); err != nil {
		return nil, err
	}
	courts, err := s.CourtRepo.ListByLocation(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list courts: %w", err)
	}
	return courts, nil
}

func (s *DefaultLocationService) Delete(ctx context.Context, locationID string) error {
	logger := utils.GetLogger()

	if err := s.LocationRepo.Delete(ctx, locationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return search.NewLocationNotFoundError(locationID)
		}
		return fmt.Errorf("failed to delete location: %w", err)
	}

	logger.Info("location deleted", zap.String("locationID", locationID))
	return nil
}
