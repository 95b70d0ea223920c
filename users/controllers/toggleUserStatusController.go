package controllers

import (
	"errors"
	"user-admin-backend/config"
	"user-admin-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ToggleUserStatusController flips the user's active flag. Deactivated users
// stay listed but can no longer sign in.
func (uc *UserController) ToggleUserStatusController(c *fiber.Ctx) error {
	userID := c.Params("id")
	if _, err := uuid.Parse(userID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user ID format",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	user, err := uc.UserRepo.ToggleUserStatus(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
				"data":    nil,
				"error":   "User does not exist.",
			})
		}
		config.Logger.Error("Failed to toggle user status", zap.Error(err), zap.String("userID", userID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update user status",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	utils.InvalidateCacheAsync("users_export")

	message := "User deactivated successfully"
	if user.IsActive {
		message = "User activated successfully"
	}

	return c.JSON(fiber.Map{
		"message": message,
		"data":    user,
		"error":   nil,
	})
}
