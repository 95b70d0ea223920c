package utils

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Initialize Redis client for the export cache
var rdb = redis.NewClient(&redis.Options{
	Addr:     os.Getenv("REDIS_ADDRESS"),
	Password: "",
	DB:       0,
})

// ExportCacheTTL bounds how long a generated export file stays reusable.
const ExportCacheTTL = 24 * time.Hour

// InvalidateCache invalidates all cached keys for the given resource type
func InvalidateCache(resourceType string) error {
	// Use SCAN instead of KEYS for better performance in production
	pattern := fmt.Sprintf("%s:*", resourceType)
	iter := rdb.Scan(context.Background(), 0, pattern, 0).Iterator()

	for iter.Next(context.Background()) {
		key := iter.Val()
		if err := rdb.Del(context.Background(), key).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %v", key, err)
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("error during SCAN iteration: %v", err)
	}

	return nil
}

// InvalidateCacheAsync invalidates the cache for a given resource type asynchronously
func InvalidateCacheAsync(resourceType string) {
	go func() {
		if err := InvalidateCache(resourceType); err != nil {
			// Log the error, but don't block the process
			log.Printf("Cache invalidation failed for resource type '%s': %v", resourceType, err)
		}
	}()
}

// GenerateExportCacheKey hashes an export request (resource + parameters)
// into a stable redis key so identical requests can reuse the same file.
func GenerateExportCacheKey(resourceType string, params map[string]string) string {
	query := fmt.Sprintf("resource=%s", resourceType)
	for key, value := range params {
		query += fmt.Sprintf("&%s=%s", key, value)
	}

	hash := sha256.New()
	hash.Write([]byte(query))
	return fmt.Sprintf("%s:%s", resourceType, hex.EncodeToString(hash.Sum(nil)))
}

// FindCachedExport looks up a previously generated export file for the key
// and verifies it still exists on disk. Returns redis.Nil when absent.
func FindCachedExport(client *redis.Client, ctx context.Context, cacheKey string) (string, error) {
	filePath, err := client.Get(ctx, cacheKey).Result()
	if err != nil {
		return "", err
	}
	diskPath := "." + filePath
	if _, statErr := os.Stat(diskPath); statErr != nil {
		// File was cleaned up behind the cache entry
		_ = client.Del(ctx, cacheKey).Err()
		return "", redis.Nil
	}
	return filePath, nil
}

// CacheExport records the public path of a generated export file.
func CacheExport(client *redis.Client, ctx context.Context, cacheKey, filePath string) error {
	return client.Set(ctx, cacheKey, filePath, ExportCacheTTL).Err()
}
