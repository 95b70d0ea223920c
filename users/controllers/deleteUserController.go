package controllers

import (
	"errors"
	"user-admin-backend/config"
	"user-admin-backend/users/repositories"
	"user-admin-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (uc *UserController) DeleteUserController(c *fiber.Ctx) error {
	userID := c.Params("id")
	if _, err := uuid.Parse(userID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user ID format",
			"error":   err.Error(),
		})
	}

	// --- Start Database Transaction ---
	tx := uc.DB.Begin()
	if tx.Error != nil {
		config.Logger.Error("Failed to begin database transaction", zap.Error(tx.Error))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error: Could not start database transaction",
			"error":   tx.Error.Error(),
		})
	}

	// Defer rollback (will execute if panic occurs or if commit isn't called)
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			config.Logger.Error("Panic during user deletion", zap.Any("panic", r))
			panic(r)
		}
	}()

	// --- Soft Delete in Database (Transaction-aware) ---
	txUserRepo := repositories.NewUserRepository(tx)
	if err := txUserRepo.DeleteUser(userID); err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
				"error":   "User does not exist.",
			})
		}
		config.Logger.Error("Database deletion failed", zap.Error(err), zap.String("userID", userID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to delete user",
			"error":   err.Error(),
		})
	}

	// --- Commit Transaction ---
	if err := tx.Commit().Error; err != nil {
		config.Logger.Error("Failed to commit transaction", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to finalize deletion",
			"error":   err.Error(),
		})
	}

	utils.InvalidateCacheAsync("users_export")
	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}
