package models

import (
	"time"
)

const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCanceled  = "canceled"
)

type User struct {
	ID             uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Username       string     `gorm:"unique;not null"          json:"username"`
	Email          string     `gorm:"index"                    json:"email"`
	PasswordHash   string     `gorm:"not null"                 json:"-"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	BirthDate      *time.Time `json:"birth_date"`
	PhoneNumber    string     `gorm:"size:15"                  json:"phone_number"`
	ProfilePicture string     `json:"profile_picture"`
	Role           string     `gorm:"not null;default:user"    json:"role"`
	IsActive       bool       `gorm:"default:true"             json:"is_active"`
	IsStaff        bool       `gorm:"default:false"            json:"is_staff"`
	DateJoined     time.Time  `gorm:"autoCreateTime"           json:"date_joined"`
	LastLogin      *time.Time `json:"last_login"`
}

type Service struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string `gorm:"size:100"                 json:"name"`
	Picture string `json:"picture"`
	Comment string `json:"comment"`

	Categories []Category `gorm:"many2many:category_services" json:"-"`
	Garages    []Garage   `gorm:"many2many:garage_services"   json:"-"`
}

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:100;not null"        json:"name"`

	Services []Service `gorm:"many2many:category_services" json:"-"`
}

type Garage struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"size:100"                 json:"name"`
	Address     string `gorm:"size:200"                 json:"address"`
	PhoneNumber string `gorm:"size:15"                  json:"phone_number"`

	Services []Service `gorm:"many2many:garage_services" json:"-"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"                                json:"id"`
	UserID    uint      `gorm:"index;not null;constraint:OnDelete:CASCADE"              json:"user_id"`
	GarageID  uint      `gorm:"index;not null;constraint:OnDelete:CASCADE"              json:"garage_id"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5"              json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `gorm:"autoCreateTime"                                          json:"created_at"`
}

type Appointment struct {
	ID              uint      `gorm:"primaryKey;autoIncrement"                   json:"id"`
	UserID          uint      `gorm:"index;not null;constraint:OnDelete:CASCADE" json:"user_id"`
	GarageID        uint      `gorm:"index;not null;constraint:OnDelete:CASCADE" json:"garage_id"`
	ServiceID       uint      `gorm:"index;not null;constraint:OnDelete:CASCADE" json:"service_id"`
	AppointmentDate time.Time `gorm:"not null"                                   json:"appointment_date"`
	Status          string    `gorm:"size:20;not null;default:scheduled"         json:"status"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `gorm:"autoCreateTime"                             json:"created_at"`
}

type Favorite struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"                                   json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_fav_user_garage"                   json:"user_id"`
	GarageID  uint      `gorm:"not null;uniqueIndex:idx_fav_user_garage"                   json:"garage_id"`
	CreatedAt time.Time `gorm:"autoCreateTime"                                             json:"created_at"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}

// ValidStatus reports whether s is one of the three appointment states.
func ValidStatus(s string) bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// ValidStatusTransition reports whether an appointment may move from one
// status to another. Completed and canceled are terminal.
func ValidStatusTransition(from, to string) bool {
	if from == to {
		return true
	}
	return from == StatusScheduled && (to == StatusCompleted || to == StatusCanceled)
}

// All lists every model for migration.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Service{},
		&Category{},
		&Garage{},
		&Review{},
		&Appointment{},
		&Favorite{},
		&RefreshToken{},
	}
}
