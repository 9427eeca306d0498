package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/blomoto/blomoto-server/internal/models"
)

func (r *Gorm) CreateGarage(ctx context.Context, g *models.Garage, serviceIDs []uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Services").Create(g).Error; err != nil {
			return err
		}
		return replaceGarageServices(tx, g, serviceIDs)
	})
}

func (r *Gorm) GetGarage(ctx context.Context, id uint) (*models.Garage, error) {
	var g models.Garage
	if err := r.DB.WithContext(ctx).Preload("Services").First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *Gorm) ListGarages(ctx context.Context, offset, limit int) (int64, []models.Garage, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Garage{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Garage
	if err := r.DB.WithContext(ctx).Preload("Services").Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *Gorm) UpdateGarage(ctx context.Context, g *models.Garage, serviceIDs []uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Services").Save(g).Error; err != nil {
			return err
		}
		if serviceIDs == nil {
			return nil
		}
		return replaceGarageServices(tx, g, serviceIDs)
	})
}

// DeleteGarage removes the garage, its join rows and every review,
// appointment and favorite pointing at it.
func (r *Gorm) DeleteGarage(ctx context.Context, id uint) (*models.Garage, error) {
	g, err := r.GetGarage(ctx, id)
	if err != nil {
		return nil, err
	}

	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(g).Association("Services").Clear(); err != nil {
			return err
		}
		if err := tx.Where("garage_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("garage_id = ?", id).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("garage_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Garage{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func replaceGarageServices(tx *gorm.DB, g *models.Garage, ids []uint) error {
	if len(ids) == 0 {
		return tx.Model(g).Association("Services").Clear()
	}
	var svcs []models.Service
	if err := tx.Find(&svcs, ids).Error; err != nil {
		return err
	}
	if err := tx.Model(g).Association("Services").Replace(svcs); err != nil {
		return err
	}
	g.Services = svcs
	return nil
}
