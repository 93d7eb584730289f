// File: database/repository/searchorder/crud.go
package searchOrderRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"padelwatch/models"
)

const opTimeout = 5 * time.Second

func (r *GormSearchOrderRepo) Create(ctx context.Context, order *models.SearchOrder) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *GormSearchOrderRepo) GetByID(ctx context.Context, id string) (*models.SearchOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var order models.SearchOrder
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormSearchOrderRepo) ListByUser(ctx context.Context, userID string) ([]models.SearchOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var orders []models.SearchOrder
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormSearchOrderRepo) ListActive(ctx context.Context) ([]models.SearchOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var orders []models.SearchOrder
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("id ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormSearchOrderRepo) Update(ctx context.Context, order *models.SearchOrder) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.db.WithContext(ctx).Save(order).Error
}

func (r *GormSearchOrderRepo) SetActive(ctx context.Context, id string, active bool) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Model(&models.SearchOrder{}).
		Where("id = ?", id).
		Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormSearchOrderRepo) TouchLastChecked(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.db.WithContext(ctx).Model(&models.SearchOrder{}).
		Where("id = ?", id).
		Update("last_checked_at", at).Error
}

func (r *GormSearchOrderRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("search_order_id = ?", id).Delete(&models.SearchOrderNotification{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.SearchOrder{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
