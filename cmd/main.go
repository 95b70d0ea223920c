package main

import (
	"context"

	config "user-admin-backend/config"
	"user-admin-backend/middleware"
	"user-admin-backend/utils"

	users_repositories "user-admin-backend/users/repositories"
	user_routes "user-admin-backend/users/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Initialize Zap logger
	config.InitLogger()

	// Load environment variables
	if err := godotenv.Load(".env"); err != nil {
		config.Logger.Warn("No .env file found, relying on process environment", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // bulk upload workbooks
	})

	// Apply CORS middleware from middleware package
	middleware.InitCors(app)

	// Initialize database and configs
	db := config.ConfigureDatabase()
	port := config.GetEnvWithDefault("PORT", "8080")
	ctx := context.Background()

	redisClient := config.InitRedisServer(ctx)

	// SMTP mailer for bulk upload error reports
	utils.InitializeMailer()

	// Seed the first admin account so the dashboard is reachable
	if err := config.SeedInitialAdmin(db); err != nil {
		config.Logger.Fatal("Failed to seed initial admin", zap.Error(err))
	}

	// Static file serving for exports and uploaded profile images
	app.Static("/public", "./public")
	app.Static("/uploads", "./uploads")

	userRepo := users_repositories.NewUserRepository(db)
	fileStorage := utils.NewLocalFileStorage("./uploads")

	user_routes.InitRoutes(
		app,
		userRepo,
		ctx,
		redisClient,
		db,
		fileStorage,
	)

	// Nightly cleanup of expired export files and stale cache entries
	go utils.RunScheduledCleanup(redisClient)

	config.Logger.Info("Starting server", zap.String("port", port))
	if err := app.Listen(":" + port); err != nil {
		config.Logger.Fatal("Server failed to start", zap.Error(err))
	}
}
