// File: database/repository/location/crud.go
package locationRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"padelwatch/models"
)

const opTimeout = 5 * time.Second

func (r *GormLocationRepo) Create(ctx context.Context, loc *models.Location) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if loc.ID == "" {
		loc.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(loc).Error
}

func (r *GormLocationRepo) GetByID(ctx context.Context, id string) (*models.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var loc models.Location
	if err := r.db.WithContext(ctx).First(&loc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *GormLocationRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var locs []models.Location
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&locs).Error; err != nil {
		return nil, err
	}
	return locs, nil
}

func (r *GormLocationRepo) GetBySlug(ctx context.Context, slug, provider string) (*models.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var loc models.Location
	err := r.db.WithContext(ctx).
		Where("slug = ? AND provider = ?", slug, provider).
		First(&loc).Error
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *GormLocationRepo) List(ctx context.Context) ([]models.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var locs []models.Location
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&locs).Error; err != nil {
		return nil, err
	}
	return locs, nil
}

func (r *GormLocationRepo) Update(ctx context.Context, loc *models.Location) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.db.WithContext(ctx).Save(loc).Error
}

func (r *GormLocationRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		courtIDs := tx.Model(&models.Court{}).Select("id").Where("location_id = ?", id)
		if err := tx.Where("court_id IN (?)", courtIDs).Delete(&models.Availability{}).Error; err != nil {
			return err
		}
		if err := tx.Where("location_id = ?", id).Delete(&models.Court{}).Error; err != nil {
			return err
		}
		if err := tx.Where("location_id = ?", id).Delete(&models.SearchRequest{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Location{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
