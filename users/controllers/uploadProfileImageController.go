package controllers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"user-admin-backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxProfileImageSize = 2 * 1024 * 1024 // 2MB

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadProfileImageController stores a profile picture for the user and
// replaces the previous one on disk when present.
func (uc *UserController) UploadProfileImageController(c *fiber.Ctx) error {
	userID := c.Params("id")
	if _, err := uuid.Parse(userID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user ID format",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	user, err := uc.UserRepo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
				"data":    nil,
				"error":   "User does not exist.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error retrieving user",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No image file provided",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	if fileHeader.Size > maxProfileImageSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Image too large",
			"data":    nil,
			"error":   "Profile images must be 2MB or smaller.",
		})
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExtensions[ext] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Unsupported image type",
			"data":    nil,
			"error":   "Allowed types: jpg, jpeg, png, gif, webp.",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to read uploaded file",
			"data":    nil,
			"error":   err.Error(),
		})
	}
	defer file.Close()

	fileName := fmt.Sprintf("profile_%s_%s%s", userID, uuid.New().String(), ext)
	storedPath, err := uc.FileStorage.UploadFile(file, fileName)
	if err != nil {
		config.Logger.Error("Failed to store profile image", zap.Error(err), zap.String("userID", userID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to store image",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	// Replace the previous image, if any
	if user.ProfileImage != nil && *user.ProfileImage != "" {
		if err := uc.FileStorage.DeleteFile(*user.ProfileImage); err != nil {
			config.Logger.Warn("Failed to remove previous profile image",
				zap.Error(err),
				zap.String("userID", userID),
			)
		}
	}

	user.ProfileImage = &storedPath
	updatedUser, err := uc.UserRepo.UpdateUser(user)
	if err != nil {
		// Roll back the orphaned upload
		_ = uc.FileStorage.DeleteFile(storedPath)
		config.Logger.Error("Failed to save profile image path", zap.Error(err), zap.String("userID", userID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update user",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Profile image uploaded successfully",
		"data":    updatedUser,
		"error":   nil,
	})
}
