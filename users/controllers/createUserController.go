package controllers

import (
	"context"
	"strings"
	"user-admin-backend/config"
	"user-admin-backend/db/models"
	"user-admin-backend/users/repositories"
	"user-admin-backend/users/services"
	"user-admin-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserController struct {
	UserRepo    repositories.UserRepository
	DB          *gorm.DB
	Ctx         context.Context
	RedisClient *redis.Client
	Coordinator *services.BulkSubmissionCoordinator
	FileStorage *utils.LocalFileStorage
}

type CreateUserPayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Contact   string `json:"contact"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	CreatedBy string `json:"created_by"`
}

func (uc *UserController) CreateUser(c *fiber.Ctx) error {
	var payload CreateUserPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	// --- Input Validation ---
	candidate := services.CandidateUser{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Contact:   payload.Contact,
		Email:     payload.Email,
		Address:   payload.Address,
		Password:  payload.Password,
	}
	if violations := services.ValidateCandidate(candidate, true); len(violations) > 0 {
		validationError := strings.Join(violations, ", ")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error: " + validationError,
			"data":    nil,
			"error":   validationError,
		})
	}

	role := models.ViewerRole
	if payload.Role == string(models.AdminRole) {
		role = models.AdminRole
	}

	user := models.User{
		FirstName: strings.TrimSpace(payload.FirstName),
		LastName:  strings.TrimSpace(payload.LastName),
		Contact:   strings.TrimSpace(payload.Contact),
		Email:     strings.TrimSpace(payload.Email),
		Address:   strings.TrimSpace(payload.Address),
		Password:  strings.TrimSpace(payload.Password),
		Role:      role,
		IsActive:  true,
		CreatedBy: payload.CreatedBy,
	}

	// --- Start Database Transaction ---
	tx := uc.DB.Begin()
	if tx.Error != nil {
		config.Logger.Error("Failed to begin database transaction", zap.Error(tx.Error))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error: Could not start database transaction",
			"data":    nil,
			"error":   tx.Error.Error(),
		})
	}

	// Defer rollback (will execute if panic occurs or if commit isn't called)
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			config.Logger.Error("Panic during user creation", zap.Any("panic", r))
			panic(r)
		}
	}()

	// Use a new repository instance tied to the transaction
	txUserRepo := repositories.NewUserRepository(tx)

	createdUser, err := txUserRepo.CreateUser(&user)
	if err != nil {
		tx.Rollback()
		config.Logger.Error("Failed to create user in database", zap.Error(err), zap.String("email", user.Email))
		if strings.Contains(err.Error(), "already exists") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "A user with that email already exists",
				"data":    nil,
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong while creating user in the database",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	// --- Commit Database Transaction ---
	if err := tx.Commit().Error; err != nil {
		config.Logger.Error("Failed to commit database transaction", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error: Could not commit database transaction",
			"data":    nil,
			"error":   err.Error(),
		})
	}

	utils.InvalidateCacheAsync("users_export")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"data":    createdUser,
		"error":   nil,
	})
}
