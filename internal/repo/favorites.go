package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/blomoto/blomoto-server/internal/models"
)

func (r *Gorm) CreateFavorite(ctx context.Context, f *models.Favorite) error {
	return r.DB.WithContext(ctx).Create(f).Error
}

func (r *Gorm) FavoriteExists(ctx context.Context, userID, garageID uint) (bool, error) {
	var f models.Favorite
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND garage_id = ?", userID, garageID).
		First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *Gorm) ListFavorites(ctx context.Context, userID uint) ([]models.Favorite, error) {
	var items []models.Favorite
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Gorm) DeleteFavorite(ctx context.Context, id, userID uint) (*models.Favorite, error) {
	var f models.Favorite
	if err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&f).Error; err != nil {
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Delete(&models.Favorite{}, f.ID).Error; err != nil {
		return nil, err
	}
	return &f, nil
}
