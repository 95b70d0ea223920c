package controllers

import (
	"errors"
	"strings"
	"user-admin-backend/config"
	"user-admin-backend/db/models"
	"user-admin-backend/users/repositories"
	"user-admin-backend/users/services"
	"user-admin-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UpdateUserPayload struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Contact         string `json:"contact"`
	Email           string `json:"email"`
	Address         string `json:"address"`
	Role            string `json:"role"`
	Password        string `json:"password"`     // Old password for verification
	NewPassword     string `json:"new_password"` // New password to set
	UpdatedBy       string `json:"updated_by"`
	ConfirmPassword string `json:"confirm_password"`
}

func (uc *UserController) UpdateUserController(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user ID format",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	// --- Start Database Transaction ---
	tx := uc.DB.Begin()
	if tx.Error != nil {
		config.Logger.Error("Failed to begin transaction", zap.Error(tx.Error))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
			"error":   tx.Error.Error(),
		})
	}

	// Defer rollback (will execute if commit isn't called)
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			config.Logger.Error("Panic during user update", zap.Any("panic", r))
			panic(r)
		}
	}()

	// --- Fetch Existing User (Transaction-aware) ---
	txUserRepo := repositories.NewUserRepository(tx)
	existingUser, err := txUserRepo.GetUserByID(id)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
				"error":   "User does not exist.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error retrieving user",
			"error":   err.Error(),
		})
	}

	// --- Parse and Validate Payload ---
	var payload UpdateUserPayload
	if err := c.BodyParser(&payload); err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	// Field updates
	if payload.FirstName != "" {
		existingUser.FirstName = payload.FirstName
	}
	if payload.LastName != "" {
		existingUser.LastName = payload.LastName
	}
	if payload.Contact != "" {
		existingUser.Contact = payload.Contact
	}
	if payload.Address != "" {
		existingUser.Address = payload.Address
	}
	if payload.Email != "" && payload.Email != existingUser.Email {
		var conflict models.User
		err := tx.Unscoped().Where("email = ? AND id <> ?", strings.TrimSpace(payload.Email), id).First(&conflict).Error
		if err == nil {
			tx.Rollback()
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation error",
				"error":   "Email already in use by another user",
			})
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			tx.Rollback()
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error checking email",
				"error":   err.Error(),
			})
		}
		existingUser.Email = strings.TrimSpace(payload.Email)
	}
	if payload.Role != "" {
		existingUser.Role = models.Role(payload.Role)
	}
	if payload.UpdatedBy != "" {
		existingUser.UpdatedBy = utils.StringPtr(payload.UpdatedBy)
	}

	// Validate the merged record before writing
	candidate := services.CandidateUser{
		FirstName: existingUser.FirstName,
		LastName:  existingUser.LastName,
		Contact:   existingUser.Contact,
		Email:     existingUser.Email,
		Address:   existingUser.Address,
	}
	if violations := services.ValidateCandidate(candidate, false); len(violations) > 0 {
		tx.Rollback()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error",
			"error":   strings.Join(violations, ", "),
		})
	}

	// Password update requires the old password to match
	if payload.NewPassword != "" {
		if !services.ValidPassword(payload.NewPassword) {
			tx.Rollback()
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Password validation failed",
				"error":   "Password must be 8-12 chars with upper, lower, number and special (#, @, $, &)",
			})
		}
		if !repositories.CheckPasswordHash(payload.Password, existingUser.Password) {
			tx.Rollback()
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid old password",
				"error":   "Incorrect credentials",
			})
		}
		hashedPassword, err := repositories.HashPassword(payload.NewPassword)
		if err != nil {
			tx.Rollback()
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Password hashing failed",
				"error":   err.Error(),
			})
		}
		existingUser.Password = hashedPassword
	}

	// --- Update in Database ---
	updatedUser, err := txUserRepo.UpdateUser(existingUser)
	if err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Database update failed",
			"error":   err.Error(),
		})
	}

	// --- Commit Transaction ---
	if err := tx.Commit().Error; err != nil {
		config.Logger.Error("Failed to commit transaction", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to finalize update",
			"error":   err.Error(),
		})
	}

	utils.InvalidateCacheAsync("users_export")

	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"data":    updatedUser,
		"error":   nil,
	})
}
