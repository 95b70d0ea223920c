package config

import (
	"errors"
	"fmt"
	"log"
	"user-admin-backend/db/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedInitialAdmin creates a single admin user for initial system access
// when no admin exists yet. The credentials are meant to be rotated after
// first login.
func SeedInitialAdmin(db *gorm.DB) error {
	adminEmail := GetEnvWithDefault("INITIAL_ADMIN_EMAIL", "admin@gmail.com")

	var existing models.User
	err := db.Where("email = ?", adminEmail).First(&existing).Error
	if err == nil {
		log.Printf("Initial admin already exists: %s", adminEmail)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for initial admin: %w", err)
	}

	password := GetEnvWithDefault("INITIAL_ADMIN_PASSWORD", "Admin@123")
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash initial admin password: %w", err)
	}

	admin := models.User{
		ID:        uuid.New(),
		FirstName: "System",
		LastName:  "Admin",
		Contact:   "0000000000",
		Email:     adminEmail,
		Address:   "Head Office",
		Password:  string(hashed),
		Role:      models.AdminRole,
		IsActive:  true,
		CreatedBy: "system",
	}

	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create initial admin: %w", err)
	}

	log.Printf("Initial admin seeded: %s", adminEmail)
	return nil
}
