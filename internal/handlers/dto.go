package handlers

import (
	"time"

	"github.com/blomoto/blomoto-server/internal/models"
)

// Wire representations are mapped by hand, field by field, in both
// directions. Garage detail embeds its services as full sub-objects one
// level deep; a service embeds only the IDs of its garages.

type UserResponse struct {
	ID             uint       `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	BirthDate      *string    `json:"birth_date"`
	PhoneNumber    string     `json:"phone_number"`
	ProfilePicture string     `json:"profile_picture"`
	Role           string     `json:"role"`
	IsActive       bool       `json:"is_active"`
	IsStaff        bool       `json:"is_staff"`
	DateJoined     time.Time  `json:"date_joined"`
	LastLogin      *time.Time `json:"last_login"`
}

func toUserResponse(u *models.User) UserResponse {
	var birth *string
	if u.BirthDate != nil {
		s := u.BirthDate.Format("2006-01-02")
		birth = &s
	}
	return UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		BirthDate:      birth,
		PhoneNumber:    u.PhoneNumber,
		ProfilePicture: u.ProfilePicture,
		Role:           u.Role,
		IsActive:       u.IsActive,
		IsStaff:        u.IsStaff,
		DateJoined:     u.DateJoined,
		LastLogin:      u.LastLogin,
	}
}

func toUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = toUserResponse(&users[i])
	}
	return out
}

type ServiceResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Comment string `json:"comment"`
	Garages []uint `json:"garages"`
}

func toServiceResponse(s *models.Service) ServiceResponse {
	garages := make([]uint, len(s.Garages))
	for i, g := range s.Garages {
		garages[i] = g.ID
	}
	return ServiceResponse{
		ID:      s.ID,
		Name:    s.Name,
		Picture: s.Picture,
		Comment: s.Comment,
		Garages: garages,
	}
}

func toServiceResponses(svcs []models.Service) []ServiceResponse {
	out := make([]ServiceResponse, len(svcs))
	for i := range svcs {
		out[i] = toServiceResponse(&svcs[i])
	}
	return out
}

// EmbeddedService is the one-level-deep service rendering inside a garage.
// It deliberately has no garages field of its own.
type EmbeddedService struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Comment string `json:"comment"`
}

type GarageResponse struct {
	ID          uint              `json:"id"`
	Name        string            `json:"name"`
	Address     string            `json:"address"`
	PhoneNumber string            `json:"phone_number"`
	Services    []EmbeddedService `json:"services"`
}

func toGarageResponse(g *models.Garage) GarageResponse {
	services := make([]EmbeddedService, len(g.Services))
	for i, s := range g.Services {
		services[i] = EmbeddedService{
			ID:      s.ID,
			Name:    s.Name,
			Picture: s.Picture,
			Comment: s.Comment,
		}
	}
	return GarageResponse{
		ID:          g.ID,
		Name:        g.Name,
		Address:     g.Address,
		PhoneNumber: g.PhoneNumber,
		Services:    services,
	}
}

func toGarageResponses(garages []models.Garage) []GarageResponse {
	out := make([]GarageResponse, len(garages))
	for i := range garages {
		out[i] = toGarageResponse(&garages[i])
	}
	return out
}

type CategoryResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Services []uint `json:"services"`
}

func toCategoryResponse(cat *models.Category) CategoryResponse {
	services := make([]uint, len(cat.Services))
	for i, s := range cat.Services {
		services[i] = s.ID
	}
	return CategoryResponse{ID: cat.ID, Name: cat.Name, Services: services}
}

func toCategoryResponses(cats []models.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(cats))
	for i := range cats {
		out[i] = toCategoryResponse(&cats[i])
	}
	return out
}

type ReviewResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	GarageID  uint      `json:"garage_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func toReviewResponse(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		GarageID:  r.GarageID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func toReviewResponses(reviews []models.Review) []ReviewResponse {
	out := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		out[i] = toReviewResponse(&reviews[i])
	}
	return out
}

type AppointmentResponse struct {
	ID              uint      `json:"id"`
	UserID          uint      `json:"user_id"`
	GarageID        uint      `json:"garage_id"`
	ServiceID       uint      `json:"service_id"`
	AppointmentDate time.Time `json:"appointment_date"`
	Status          string    `json:"status"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"created_at"`
}

func toAppointmentResponse(a *models.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:              a.ID,
		UserID:          a.UserID,
		GarageID:        a.GarageID,
		ServiceID:       a.ServiceID,
		AppointmentDate: a.AppointmentDate,
		Status:          a.Status,
		Description:     a.Description,
		CreatedAt:       a.CreatedAt,
	}
}

func toAppointmentResponses(appts []models.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, len(appts))
	for i := range appts {
		out[i] = toAppointmentResponse(&appts[i])
	}
	return out
}

type FavoriteResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	GarageID  uint      `json:"garage_id"`
	CreatedAt time.Time `json:"created_at"`
}

func toFavoriteResponse(f *models.Favorite) FavoriteResponse {
	return FavoriteResponse{ID: f.ID, UserID: f.UserID, GarageID: f.GarageID, CreatedAt: f.CreatedAt}
}

func toFavoriteResponses(favs []models.Favorite) []FavoriteResponse {
	out := make([]FavoriteResponse, len(favs))
	for i := range favs {
		out[i] = toFavoriteResponse(&favs[i])
	}
	return out
}
