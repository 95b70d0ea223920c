package controllers

import (
	"user-admin-backend/config"
	"user-admin-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (uc *UserController) GetFilteredUsersController(c *fiber.Ctx) error {
	params := pagination.ParsePaginationParams(c)

	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid pagination parameters",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	offset := (params.Page - 1) * params.PageSize

	users, total, err := uc.UserRepo.GetFilteredUsers(params.PageSize, offset, params.Filters, params.SortBy, params.SortDir)
	if err != nil {
		config.Logger.Error("Failed to fetch paginated users", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch users",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	response := pagination.NewPaginatedResponse(c, users, total, params)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Users retrieved successfully",
		"data":    response,
		"error":   nil,
	})
}
