package controllers

import (
	"user-admin-backend/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (uc *UserController) GetAllUsersController(c *fiber.Ctx) error {
	users, err := uc.UserRepo.GetAllUsers()
	if err != nil {
		config.Logger.Error("Failed to fetch users", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch users",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Users retrieved successfully",
		"data":    users,
		"error":   nil,
	})
}
