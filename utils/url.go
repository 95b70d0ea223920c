package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// GetDownloadURL generates a download URL based on the environment (http for development, https for production).
func GetDownloadURL(c *fiber.Ctx, filePath string) string {
	env := os.Getenv("APP_ENV")
	// Remove leading slash if it exists
	filePath = strings.TrimPrefix(filePath, "/")

	if env == "production" {
		return fmt.Sprintf("https://%s/%s", c.Hostname(), filePath)
	}
	// Default to "http" for development
	return fmt.Sprintf("http://%s/%s", c.Hostname(), filePath)
}

// GenerateDownloadLink builds an absolute link to a public file path
// without a request context, for use in emails and logs.
func GenerateDownloadLink(filePath string) string {
	port := os.Getenv("PORT")
	appEnv := os.Getenv("APP_ENV")

	baseURL := "http://localhost:" + port
	if appEnv == "production" {
		baseURL = os.Getenv("BASE_URL")
	}

	return baseURL + filePath
}
