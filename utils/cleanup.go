package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
	"user-admin-backend/config"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Directories holding generated or temporary files that expire.
var cleanupDirs = []string{"./public/files", "./tmp"}

// CleanupExpiredFile removes the file when it is older than the TTL.
func CleanupExpiredFile(filePath string, ttl time.Duration) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("error checking file: %v", err)
	}

	if time.Since(info.ModTime()) > ttl {
		if err := os.Remove(filePath); err != nil {
			return fmt.Errorf("error deleting expired file: %v", err)
		}
	}
	return nil
}

// CleanupAllExpired walks the export and temp directories and deletes files
// older than the TTL, then drops export-cache keys so stale entries cannot
// point at deleted files.
func CleanupAllExpired(fileTTL time.Duration, redisClient *redis.Client) error {
	for _, dir := range cleanupDirs {
		files, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("error reading directory %s: %v", dir, err)
		}

		for _, file := range files {
			if file.IsDir() {
				continue
			}
			if err := CleanupExpiredFile(filepath.Join(dir, file.Name()), fileTTL); err != nil {
				config.Logger.Warn("Error cleaning up file", zap.String("file", file.Name()), zap.Error(err))
			}
		}
	}

	if err := InvalidateCache("users_export"); err != nil {
		return fmt.Errorf("error cleaning up export cache: %v", err)
	}

	return nil
}

// RunScheduledCleanup runs cleanup tasks daily at 1 AM.
func RunScheduledCleanup(redisClient *redis.Client) {
	c := cron.New()

	_, err := c.AddFunc("0 1 * * *", func() {
		config.Logger.Info("Starting scheduled cleanup of expired export files")
		if err := CleanupAllExpired(ExportCacheTTL, redisClient); err != nil {
			config.Logger.Error("Scheduled cleanup failed", zap.Error(err))
			return
		}
		config.Logger.Info("Scheduled cleanup completed")
	})
	if err != nil {
		config.Logger.Error("Failed to schedule cleanup job", zap.Error(err))
		return
	}

	c.Start()
}
