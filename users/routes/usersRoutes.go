package router

import (
	"context"
	"user-admin-backend/users/controllers"
	"user-admin-backend/users/repositories"
	"user-admin-backend/users/services"
	"user-admin-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func InitRoutes(
	app *fiber.App,
	userRepo repositories.UserRepository,
	ctx context.Context,
	redisClient *redis.Client,
	db *gorm.DB,
	fileStorage *utils.LocalFileStorage,
) {
	coordinator := services.NewBulkSubmissionCoordinator(userRepo)

	userController := &controllers.UserController{
		UserRepo:    userRepo,
		DB:          db,
		Ctx:         ctx,
		RedisClient: redisClient,
		Coordinator: coordinator,
		FileStorage: fileStorage,
	}

	api := app.Group("/api/v1")
	{
		api.Post("/auth/login", userController.LoginUser)

		userRoutes := api.Group("/users")
		{
			// Specific routes first
			userRoutes.Get("/filtered", userController.GetFilteredUsersController)
			userRoutes.Get("/download/:format", userController.ExportUsers)
			userRoutes.Get("/bulk-upload/template", userController.DownloadBulkTemplate)
			userRoutes.Post("/bulk-upload/parse", userController.ParseBulkUpload)
			userRoutes.Post("/bulk-upload", userController.ConfirmBulkUpload)

			// General routes
			userRoutes.Get("/", userController.GetAllUsersController)
			userRoutes.Post("/", userController.CreateUser)

			// ID-based routes
			userRoutes.Get("/:id", userController.RetrieveSingleUserController)
			userRoutes.Patch("/status/:id", userController.ToggleUserStatusController)
			userRoutes.Patch("/:id", userController.UpdateUserController)
			userRoutes.Delete("/:id", userController.DeleteUserController)
			userRoutes.Post("/:id/profile-image", userController.UploadProfileImageController)
		}
	}
}
