// File: services/orders/scheduler.go
package orders

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"padelwatch/models"
	"padelwatch/utils"
)

func (s *DefaultOrderService) ExecuteNow(ctx context.Context, identity models.Identity, orderID string) (*models.SearchResult, int, error) {
	order, err := s.load(ctx, identity, orderID)
	if err != nil {
		return nil, 0, err
	}
	return s.runOrder(ctx, order)
}

func (s *DefaultOrderService) CheckDueOrders(ctx context.Context) CheckSummary {
	logger := utils.GetLogger()
	var summary CheckSummary

	active, err := s.OrderRepo.ListActive(ctx)
	if err != nil {
		logger.Error("failed to list active search orders", zap.Error(err))
		return summary
	}

	// Calendar dates compare lexicographically in their storage format.
	today := time.Now().Format(models.DateLayout)

	for i := range active {
		order := &active[i]

		if order.Date < today {
			if err := s.OrderRepo.SetActive(ctx, order.ID, false); err != nil {
				logger.Error("failed to deactivate expired search order",
					zap.String("orderID", order.ID), zap.Error(err))
				summary.Failed++
				continue
			}
			logger.Info("search order expired",
				zap.String("orderID", order.ID),
				zap.String("date", order.Date))
			summary.Deactivated++
			continue
		}

		_, matches, err := s.runOrder(ctx, order)
		if err != nil {
			// One bad order never stops the pass; it is retried on the
			// next tick.
			logger.Warn("search order check failed",
				zap.String("orderID", order.ID), zap.Error(err))
			summary.Failed++
			continue
		}
		summary.Checked++
		summary.NewMatches += matches
	}

	if summary.Checked > 0 || summary.Deactivated > 0 || summary.Failed > 0 {
		logger.Info("search order pass completed",
			zap.Int("checked", summary.Checked),
			zap.Int("deactivated", summary.Deactivated),
			zap.Int("newMatches", summary.NewMatches),
			zap.Int("failed", summary.Failed))
	}
	return summary
}

// runOrder searches one order's scope and records a notification for
// every matching slot that earlier passes did not see. LastCheckedAt is
// stamped whenever the search itself succeeds, found matches or not.
func (s *DefaultOrderService) runOrder(ctx context.Context, order *models.SearchOrder) (*models.SearchResult, int, error) {
	logger := utils.GetLogger()

	result, err := s.Search.Search(ctx, models.Identity{UserID: order.UserID}, order.SearchSpec())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to run search for order %q: %w", order.ID, err)
	}

	seen, err := s.Notifications.SeenAvailabilityIDs(ctx, order.ID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load seen slots for order %q: %w", order.ID, err)
	}

	newMatches := 0
	for _, location := range result.Locations {
		for _, court := range location.Courts {
			for _, slot := range court.Slots {
				if seen[slot.AvailabilityID] {
					continue
				}
				n, err := s.Notifications.RecordMatch(ctx, order, slot)
				if err != nil {
					logger.Error("failed to record match",
						zap.String("orderID", order.ID),
						zap.String("availabilityID", slot.AvailabilityID),
						zap.Error(err))
					continue
				}
				if n != nil {
					newMatches++
				}
			}
		}
	}

	now := time.Now().UTC()
	if err := s.OrderRepo.TouchLastChecked(ctx, order.ID, now); err != nil {
		logger.Error("failed to stamp last checked time",
			zap.String("orderID", order.ID), zap.Error(err))
	} else {
		order.LastCheckedAt = &now
	}

	if newMatches > 0 {
		logger.Info("new slots matched search order",
			zap.String("orderID", order.ID),
			zap.String("userID", order.UserID),
			zap.Int("newMatches", newMatches))
	}
	return result, newMatches, nil
}
