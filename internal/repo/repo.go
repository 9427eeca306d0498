// Package repo is the storage port of the server. Handlers and the token
// service depend on the Store interface; Gorm is the database-backed
// implementation. Tests substitute an in-memory sqlite database behind the
// same implementation.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/blomoto/blomoto-server/internal/models"
)

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context, offset, limit int) (int64, []models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id uint) (*models.User, error)
}

type CatalogStore interface {
	CreateService(ctx context.Context, s *models.Service, categoryIDs []uint) error
	GetService(ctx context.Context, id uint) (*models.Service, error)
	ListServices(ctx context.Context, offset, limit int) (int64, []models.Service, error)
	UpdateService(ctx context.Context, s *models.Service, categoryIDs []uint) error
	DeleteService(ctx context.Context, id uint) (*models.Service, error)

	CreateCategory(ctx context.Context, cat *models.Category, serviceIDs []uint) error
	GetCategory(ctx context.Context, id uint) (*models.Category, error)
	ListCategories(ctx context.Context, offset, limit int) (int64, []models.Category, error)
	UpdateCategory(ctx context.Context, cat *models.Category, serviceIDs []uint) error
	DeleteCategory(ctx context.Context, id uint) (*models.Category, error)
}

type GarageStore interface {
	CreateGarage(ctx context.Context, g *models.Garage, serviceIDs []uint) error
	GetGarage(ctx context.Context, id uint) (*models.Garage, error)
	ListGarages(ctx context.Context, offset, limit int) (int64, []models.Garage, error)
	UpdateGarage(ctx context.Context, g *models.Garage, serviceIDs []uint) error
	DeleteGarage(ctx context.Context, id uint) (*models.Garage, error)
}

type ReviewStore interface {
	CreateReview(ctx context.Context, r *models.Review) error
	GetReview(ctx context.Context, id uint) (*models.Review, error)
	ListReviews(ctx context.Context, offset, limit int) (int64, []models.Review, error)
	UpdateReview(ctx context.Context, r *models.Review) error
	DeleteReview(ctx context.Context, id uint) (*models.Review, error)
}

type AppointmentStore interface {
	CreateAppointment(ctx context.Context, a *models.Appointment) error
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	ListAppointments(ctx context.Context, offset, limit int) (int64, []models.Appointment, error)
	UpdateAppointment(ctx context.Context, a *models.Appointment) error
	DeleteAppointment(ctx context.Context, id uint) (*models.Appointment, error)
}

type FavoriteStore interface {
	CreateFavorite(ctx context.Context, f *models.Favorite) error
	FavoriteExists(ctx context.Context, userID, garageID uint) (bool, error)
	ListFavorites(ctx context.Context, userID uint) ([]models.Favorite, error)
	DeleteFavorite(ctx context.Context, id, userID uint) (*models.Favorite, error)
}

type TokenStore interface {
	SaveRefreshToken(ctx context.Context, t *models.RefreshToken) error
	GetRefreshToken(ctx context.Context, raw string) (*models.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, raw string) error
}

type Store interface {
	UserStore
	CatalogStore
	GarageStore
	ReviewStore
	AppointmentStore
	FavoriteStore
	TokenStore
}

type Gorm struct {
	DB *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{DB: db}
}

var _ Store = (*Gorm)(nil)
