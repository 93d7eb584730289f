// File: database/repository/notification/crud.go
package notificationRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"padelwatch/models"
)

const opTimeout = 5 * time.Second

func (r *GormNotificationRepo) Create(ctx context.Context, n *models.SearchOrderNotification) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *GormNotificationRepo) GetByID(ctx context.Context, id string) (*models.SearchOrderNotification, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var n models.SearchOrderNotification
	if err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *GormNotificationRepo) ListByOrder(ctx context.Context, orderID string) ([]models.SearchOrderNotification, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var rows []models.SearchOrderNotification
	err := r.db.WithContext(ctx).
		Where("search_order_id = ?", orderID).
		Order("created_at DESC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormNotificationRepo) SeenAvailabilityIDs(ctx context.Context, orderID string) (map[string]bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var ids []string
	err := r.db.WithContext(ctx).Model(&models.SearchOrderNotification{}).
		Where("search_order_id = ?", orderID).
		Pluck("availability_id", &ids).Error
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}
	return seen, nil
}

func (r *GormNotificationRepo) MarkNotified(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Model(&models.SearchOrderNotification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"notified": true, "notified_at": at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormNotificationRepo) MarkRead(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Model(&models.SearchOrderNotification{}).
		Where("id = ?", id).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
