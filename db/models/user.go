package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	AdminRole  Role = "admin"
	ViewerRole Role = "user"
)

// User represents a registered dashboard user. Admins get full CRUD access,
// the "user" role is view-only.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	FirstName string    `gorm:"not null" json:"first_name"`
	LastName  string    `gorm:"not null" json:"last_name"`
	Contact   string    `gorm:"not null" json:"contact"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Address   string    `gorm:"type:text" json:"address"`
	Password  string    `json:"-"` // Never include in JSON responses

	Role Role `gorm:"type:varchar(20);default:'user'" json:"role"`

	// Status
	IsActive bool `gorm:"default:true" json:"is_active"`

	// Profile
	ProfileImage *string `json:"profile_image"`

	// Audit fields
	CreatedBy string         `gorm:"not null" json:"created_by"`
	UpdatedBy *string        `json:"updated_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
