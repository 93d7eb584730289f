package notification

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"padelwatch/models"
	"padelwatch/utils"
)

// RecordMatch persists a newly seen match for an order and enqueues its
// delivery. A concurrent duplicate of the same (order, availability)
// pair is treated as already seen and returns nil without error.
func (s *DefaultNotificationService) RecordMatch(ctx context.Context, order *models.SearchOrder, slot models.SlotResult) (*models.SearchOrderNotification, error) {
	n := &models.SearchOrderNotification{
		SearchOrderID:  order.ID,
		AvailabilityID: slot.AvailabilityID,
		CourtID:        slot.CourtID,
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.GetLogger().Debug("match already recorded",
				zap.String("searchOrderID", order.ID),
				zap.String("availabilityID", slot.AvailabilityID))
			return nil, nil
		}
		return nil, err
	}

	s.enqueue(ctx, n)
	return n, nil
}

func (s *DefaultNotificationService) enqueue(ctx context.Context, n *models.SearchOrderNotification) {
	logger := utils.GetLogger()
	if s.Queue == nil {
		logger.Debug("no queue configured, match recorded without dispatch",
			zap.String("notificationID", n.ID))
		return
	}
	task, opts, err := NewMatchDispatchTask(MatchPayload{NotificationID: n.ID})
	if err != nil {
		logger.Error("failed to build dispatch task",
			zap.String("notificationID", n.ID),
			zap.Error(err))
		return
	}
	if _, err := s.Queue.EnqueueContext(ctx, task, opts...); err != nil {
		// The row is persisted; delivery is lost until a re-enqueue, but
		// the match itself is never re-notified as new.
		logger.Error("failed to enqueue match alert",
			zap.String("notificationID", n.ID),
			zap.Error(err))
	}
}

// Dispatch delivers one recorded match. The queue worker calls this;
// redelivery of an already notified row is a no-op so retries stay
// safe.
func (s *DefaultNotificationService) Dispatch(ctx context.Context, notificationID string) error {
	n, err := s.Repo.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotificationNotFoundError(notificationID)
		}
		return err
	}
	if n.Notified {
		return nil
	}

	order, err := s.OrderRepo.GetByID(ctx, n.SearchOrderID)
	if err != nil {
		return err
	}
	if err := s.Mailer.SendMatchAlert(ctx, order.UserID, n); err != nil {
		return err
	}
	return s.Repo.MarkNotified(ctx, n.ID, time.Now().UTC())
}

func (s *DefaultNotificationService) ListForOrder(ctx context.Context, orderID string) ([]models.SearchOrderNotification, error) {
	return s.Repo.ListByOrder(ctx, orderID)
}

func (s *DefaultNotificationService) SeenAvailabilityIDs(ctx context.Context, orderID string) (map[string]bool, error) {
	return s.Repo.SeenAvailabilityIDs(ctx, orderID)
}

// MarkRead flags a notification as read by the owner of its order.
func (s *DefaultNotificationService) MarkRead(ctx context.Context, identity models.Identity, notificationID string) error {
	n, err := s.Repo.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotificationNotFoundError(notificationID)
		}
		return err
	}
	order, err := s.OrderRepo.GetByID(ctx, n.SearchOrderID)
	if err != nil {
		return err
	}
	if !identity.Admin && order.UserID != identity.UserID {
		return NewForbiddenError(notificationID)
	}
	return s.Repo.MarkRead(ctx, notificationID)
}
