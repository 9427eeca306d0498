package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/blomoto/blomoto-server/internal/models"
)

func (r *Gorm) CreateService(ctx context.Context, s *models.Service, categoryIDs []uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(s).Error; err != nil {
			return err
		}
		return replaceServiceCategories(tx, s, categoryIDs)
	})
}

func (r *Gorm) GetService(ctx context.Context, id uint) (*models.Service, error) {
	var s models.Service
	if err := r.DB.WithContext(ctx).Preload("Garages").First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Gorm) ListServices(ctx context.Context, offset, limit int) (int64, []models.Service, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Service{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Service
	if err := r.DB.WithContext(ctx).Preload("Garages").Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *Gorm) UpdateService(ctx context.Context, s *models.Service, categoryIDs []uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Categories", "Garages").Save(s).Error; err != nil {
			return err
		}
		if categoryIDs == nil {
			return nil
		}
		return replaceServiceCategories(tx, s, categoryIDs)
	})
}

func (r *Gorm) DeleteService(ctx context.Context, id uint) (*models.Service, error) {
	s, err := r.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(s).Association("Categories").Clear(); err != nil {
			return err
		}
		if err := tx.Model(s).Association("Garages").Clear(); err != nil {
			return err
		}
		if err := tx.Where("service_id = ?", id).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Service{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *Gorm) CreateCategory(ctx context.Context, cat *models.Category, serviceIDs []uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(cat).Error; err != nil {
			return err
		}
		return replaceCategoryServices(tx, cat, serviceIDs)
	})
}

func (r *Gorm) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var cat models.Category
	if err := r.DB.WithContext(ctx).Preload("Services").First(&cat, id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *Gorm) ListCategories(ctx context.Context, offset, limit int) (int64, []models.Category, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Category{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Category
	if err := r.DB.WithContext(ctx).Preload("Services").Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *Gorm) UpdateCategory(ctx context.Context, cat *models.Category, serviceIDs []uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Services").Save(cat).Error; err != nil {
			return err
		}
		if serviceIDs == nil {
			return nil
		}
		return replaceCategoryServices(tx, cat, serviceIDs)
	})
}

func (r *Gorm) DeleteCategory(ctx context.Context, id uint) (*models.Category, error) {
	cat, err := r.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(cat).Association("Services").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return cat, nil
}

func replaceServiceCategories(tx *gorm.DB, s *models.Service, ids []uint) error {
	if len(ids) == 0 {
		return tx.Model(s).Association("Categories").Clear()
	}
	var cats []models.Category
	if err := tx.Find(&cats, ids).Error; err != nil {
		return err
	}
	return tx.Model(s).Association("Categories").Replace(cats)
}

func replaceCategoryServices(tx *gorm.DB, cat *models.Category, ids []uint) error {
	if len(ids) == 0 {
		return tx.Model(cat).Association("Services").Clear()
	}
	var svcs []models.Service
	if err := tx.Find(&svcs, ids).Error; err != nil {
		return err
	}
	return tx.Model(cat).Association("Services").Replace(svcs)
}
