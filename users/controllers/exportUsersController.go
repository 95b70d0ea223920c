package controllers

import (
	"errors"
	"strings"
	"user-admin-backend/config"
	"user-admin-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// exportableUserHeaders are the columns of the Excel export; each one names
// an exported field of models.User.
var exportableUserHeaders = []string{"FirstName", "LastName", "Contact", "Email", "Address", "Role", "CreatedBy"}

// ExportUsers generates a downloadable listing of all users in the requested
// format (csv, excel or pdf). Identical requests within the cache TTL reuse
// the previously generated file.
func (uc *UserController) ExportUsers(c *fiber.Ctx) error {
	format := strings.ToLower(c.Params("format"))
	if format != "csv" && format != "excel" && format != "pdf" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Unsupported export format",
			"data":    nil,
			"error":   "Supported formats: csv, excel, pdf.",
		})
	}

	cacheKey := utils.GenerateExportCacheKey("users_export", map[string]string{"format": format})

	if cachedPath, err := utils.FindCachedExport(uc.RedisClient, uc.Ctx, cacheKey); err == nil {
		return c.Download("." + cachedPath)
	} else if !errors.Is(err, redis.Nil) {
		config.Logger.Warn("Export cache lookup failed", zap.Error(err), zap.String("cache_key", cacheKey))
	}

	users, err := uc.UserRepo.GetAllUsers()
	if err != nil {
		config.Logger.Error("Failed to fetch users for export", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch users",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	var filePath string
	switch format {
	case "csv":
		filePath, err = utils.GenerateUsersCSV(users, "users_export")
	case "excel":
		filePath, err = utils.GenerateExcel(users, "users_export", exportableUserHeaders)
	case "pdf":
		filePath, err = utils.GenerateUsersReportPDF(users, "users_report")
	}
	if err != nil {
		config.Logger.Error("Failed to generate export file",
			zap.Error(err),
			zap.String("format", format),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to generate export",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	if err := utils.CacheExport(uc.RedisClient, uc.Ctx, cacheKey, filePath); err != nil {
		config.Logger.Warn("Failed to cache export file", zap.Error(err), zap.String("cache_key", cacheKey))
	}

	return c.Download("." + filePath)
}
