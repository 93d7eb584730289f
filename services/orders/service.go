// File: services/orders/service.go
package orders

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"padelwatch/models"
	"padelwatch/services/search"
	"padelwatch/utils"
)

func (s *DefaultOrderService) Create(ctx context.Context, identity models.Identity, order *models.SearchOrder) (*models.SearchOrder, error) {
	logger := utils.GetLogger()

	if identity.UserID == "" {
		return nil, search.NewInvalidParameterError("a search order needs an owner")
	}
	if len(order.LocationIDs) == 0 {
		return nil, search.NewInvalidParameterError("a search order needs at least one location id")
	}

	order.UserID = identity.UserID
	order.Active = true
	order.LastCheckedAt = nil
	if order.CourtType == "" {
		order.CourtType = models.CourtTypeAll
	}
	if order.CourtConfig == "" {
		order.CourtConfig = models.CourtConfigAll
	}

	if err := search.ValidateSpec(order.SearchSpec()); err != nil {
		return nil, err
	}
	if _, err := s.Search.ResolveLocations(ctx, order.LocationIDs); err != nil {
		return nil, err
	}

	if err := s.OrderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create search order: %w", err)
	}

	logger.Info("search order created",
		zap.String("orderID", order.ID),
		zap.String("userID", order.UserID),
		zap.String("date", order.Date),
		zap.Strings("locationIDs", order.LocationIDs))
	return order, nil
}

func (s *DefaultOrderService) Get(ctx context.Context, identity models.Identity, orderID string) (*models.SearchOrder, error) {
	return s.load(ctx, identity, orderID)
}

func (s *DefaultOrderService) ListByUser(ctx context.Context, identity models.Identity) ([]models.SearchOrder, error) {
	orders, err := s.OrderRepo.ListByUser(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list search orders: %w", err)
	}
	return orders, nil
}

func (s *DefaultOrderService) Update(ctx context.Context, identity models.Identity, orderID string, patch OrderPatch) (*models.SearchOrder, error) {
	logger := utils.GetLogger()

	order, err := s.load(ctx, identity, orderID)
	if err != nil {
		return nil, err
	}

	if patch.LocationIDs != nil {
		if len(patch.LocationIDs) == 0 {
			return nil, search.NewInvalidParameterError("a search order needs at least one location id")
		}
		order.LocationIDs = patch.LocationIDs
	}
	if patch.Date != nil {
		order.Date = *patch.Date
	}
	if patch.StartMinute != nil {
		order.StartMinute = *patch.StartMinute
	}
	if patch.EndMinute != nil {
		order.EndMinute = *patch.EndMinute
	}
	if patch.DurationMinutes != nil {
		order.DurationMinutes = *patch.DurationMinutes
	}
	if patch.CourtType != nil {
		order.CourtType = *patch.CourtType
	}
	if patch.CourtConfig != nil {
		order.CourtConfig = *patch.CourtConfig
	}

	if err := search.ValidateSpec(order.SearchSpec()); err != nil {
		return nil, err
	}
	if patch.LocationIDs != nil {
		if _, err := s.Search.ResolveLocations(ctx, order.LocationIDs); err != nil {
			return nil, err
		}
	}

	if err := s.OrderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update search order: %w", err)
	}

	logger.Info("search order updated", zap.String("orderID", order.ID))
	return order, nil
}

func (s *DefaultOrderService) SetActive(ctx context.Context, identity models.Identity, orderID string, active bool) (*models.SearchOrder, error) {
	logger := utils.GetLogger()

	order, err := s.load(ctx, identity, orderID)
	if err != nil {
		return nil, err
	}

	if order.Active != active {
		if err := s.OrderRepo.SetActive(ctx, orderID, active); err != nil {
			return nil, fmt.Errorf("failed to set search order active flag: %w", err)
		}
		order.Active = active
		logger.Info("search order active flag changed",
			zap.String("orderID", orderID),
			zap.Bool("active", active))
	}
	return order, nil
}

func (s *DefaultOrderService) Delete(ctx context.Context, identity models.Identity, orderID string) error {
	logger := utils.GetLogger()

	if _, err := s.load(ctx, identity, orderID); err != nil {
		return err
	}

	if err := s.OrderRepo.Delete(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewOrderNotFoundError(orderID)
		}
		return fmt.Errorf("failed to delete search order: %w", err)
	}

	logger.Info("search order deleted", zap.String("orderID", orderID))
	return nil
}

// load fetches an order and enforces the owner-or-admin rule shared by
// every per-order operation.
func (s *DefaultOrderService) load(ctx context.Context, identity models.Identity, orderID string) (*models.SearchOrder, error) {
	order, err := s.OrderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewOrderNotFoundError(orderID)
		}
		return nil, fmt.Errorf("failed to load search order: %w", err)
	}
	if !identity.Admin && order.UserID != identity.UserID {
		return nil, NewForbiddenError(orderID)
	}
	return order, nil
}
