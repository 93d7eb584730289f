// File: database/repository/availability/crud.go
package availabilityRepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"padelwatch/models"
)

const opTimeout = 10 * time.Second

func (r *GormAvailabilityRepo) UpsertBatch(ctx context.Context, rows []models.Availability) (int, int, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	added, updated := 0, 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			row := &rows[i]

			var existing models.Availability
			err := tx.Where(
				"court_id = ? AND date = ? AND start_minute = ? AND end_minute = ?",
				row.CourtID, row.Date, row.StartMinute, row.EndMinute,
			).First(&existing).Error

			switch {
			case err == nil:
				updates := map[string]interface{}{
					"duration_minutes": row.DurationMinutes,
					"price":            row.Price,
					"currency":         row.Currency,
					"available":        row.Available,
					"fetched_at":       row.FetchedAt,
				}
				if err := tx.Model(&models.Availability{}).
					Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
					return err
				}
				row.ID = existing.ID
				updated++
			case errors.Is(err, gorm.ErrRecordNotFound):
				if row.ID == "" {
					row.ID = uuid.NewString()
				}
				if err := tx.Create(row).Error; err != nil {
					return err
				}
				added++
			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return added, updated, nil
}

func (r *GormAvailabilityRepo) GetByID(ctx context.Context, id string) (*models.Availability, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var row models.Availability
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormAvailabilityRepo) ListByLocationAndDate(ctx context.Context, locationID, date string) ([]models.Availability, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	courtIDs := r.db.Model(&models.Court{}).Select("id").Where("location_id = ?", locationID)

	var rows []models.Availability
	err := r.db.WithContext(ctx).
		Where("date = ? AND court_id IN (?)", date, courtIDs).
		Order("court_id ASC, start_minute ASC, end_minute ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormAvailabilityRepo) MarkUnavailableBefore(ctx context.Context, locationID, date string, before time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	courtIDs := r.db.Model(&models.Court{}).Select("id").Where("location_id = ?", locationID)

	res := r.db.WithContext(ctx).Model(&models.Availability{}).
		Where("date = ? AND court_id IN (?) AND available = ? AND fetched_at < ?", date, courtIDs, true, before).
		Update("available", false)
	return res.RowsAffected, res.Error
}

func (r *GormAvailabilityRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Where("fetched_at < ?", cutoff).Delete(&models.Availability{})
	return res.RowsAffected, res.Error
}

func (r *GormAvailabilityRepo) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Where("1 = 1").Delete(&models.Availability{})
	return res.RowsAffected, res.Error
}
