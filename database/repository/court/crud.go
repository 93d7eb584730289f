// File: database/repository/court/crud.go
package courtRepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"padelwatch/models"
)

const opTimeout = 5 * time.Second

func (r *GormCourtRepo) Upsert(ctx context.Context, court *models.Court) (*models.Court, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var existing models.Court
	err := r.db.WithContext(ctx).
		Where("location_id = ? AND provider_court_id = ?", court.LocationID, court.ProviderCourtID).
		First(&existing).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"name":   court.Name,
			"indoor": court.Indoor,
			"double": court.Double,
		}
		if err := r.db.WithContext(ctx).Model(&models.Court{}).
			Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
			return nil, err
		}
		existing.Name = court.Name
		existing.Indoor = court.Indoor
		existing.Double = court.Double
		return &existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if court.ID == "" {
			court.ID = uuid.NewString()
		}
		if err := r.db.WithContext(ctx).Create(court).Error; err != nil {
			return nil, err
		}
		return court, nil
	default:
		return nil, err
	}
}

func (r *GormCourtRepo) GetByID(ctx context.Context, id string) (*models.Court, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var court models.Court
	if err := r.db.WithContext(ctx).First(&court, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &court, nil
}

func (r *GormCourtRepo) GetByProviderID(ctx context.Context, locationID, providerCourtID string) (*models.Court, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var court models.Court
	err := r.db.WithContext(ctx).
		Where("location_id = ? AND provider_court_id = ?", locationID, providerCourtID).
		First(&court).Error
	if err != nil {
		return nil, err
	}
	return &court, nil
}

func (r *GormCourtRepo) ListByLocation(ctx context.Context, locationID string) ([]models.Court, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var courts []models.Court
	err := r.db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("id ASC").
		Find(&courts).Error
	if err != nil {
		return nil, err
	}
	return courts, nil
}

func (r *GormCourtRepo) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Where("1 = 1").Delete(&models.Court{})
	return res.RowsAffected, res.Error
}
