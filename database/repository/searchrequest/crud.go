// File: database/repository/searchrequest/crud.go
package searchRequestRepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"padelwatch/models"
)

const opTimeout = 5 * time.Second

func (r *GormSearchRequestRepo) Record(ctx context.Context, req *models.SearchRequest) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.SearchHash == "" {
		req.SearchHash = models.SearchScopeHash(req.LocationID, req.Date)
	}
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *GormSearchRequestRepo) LatestLive(ctx context.Context, locationID, date string) (*models.SearchRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var req models.SearchRequest
	err := r.db.WithContext(ctx).
		Where("location_id = ? AND date = ? AND live_search = ?", locationID, date, true).
		Order("performed_at DESC").
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *GormSearchRequestRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Where("performed_at < ?", cutoff).Delete(&models.SearchRequest{})
	return res.RowsAffected, res.Error
}

func (r *GormSearchRequestRepo) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Where("1 = 1").Delete(&models.SearchRequest{})
	return res.RowsAffected, res.Error
}
