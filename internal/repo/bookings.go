package repo

import (
	"context"

	"github.com/blomoto/blomoto-server/internal/models"
)

func (r *Gorm) CreateReview(ctx context.Context, rev *models.Review) error {
	return r.DB.WithContext(ctx).Create(rev).Error
}

func (r *Gorm) GetReview(ctx context.Context, id uint) (*models.Review, error) {
	var rev models.Review
	if err := r.DB.WithContext(ctx).First(&rev, id).Error; err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *Gorm) ListReviews(ctx context.Context, offset, limit int) (int64, []models.Review, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Review{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Review
	if err := r.DB.WithContext(ctx).Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *Gorm) UpdateReview(ctx context.Context, rev *models.Review) error {
	return r.DB.WithContext(ctx).Omit("CreatedAt").Save(rev).Error
}

func (r *Gorm) DeleteReview(ctx context.Context, id uint) (*models.Review, error) {
	rev, err := r.GetReview(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Delete(&models.Review{}, id).Error; err != nil {
		return nil, err
	}
	return rev, nil
}

func (r *Gorm) CreateAppointment(ctx context.Context, a *models.Appointment) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *Gorm) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	var a models.Appointment
	if err := r.DB.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Gorm) ListAppointments(ctx context.Context, offset, limit int) (int64, []models.Appointment, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Appointment{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Appointment
	if err := r.DB.WithContext(ctx).Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *Gorm) UpdateAppointment(ctx context.Context, a *models.Appointment) error {
	return r.DB.WithContext(ctx).Omit("CreatedAt").Save(a).Error
}

func (r *Gorm) DeleteAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	a, err := r.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Delete(&models.Appointment{}, id).Error; err != nil {
		return nil, err
	}
	return a, nil
}
