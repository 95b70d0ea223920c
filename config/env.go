package config

import "os"

// GetEnv returns the value of an environment variable, or "" when unset.
func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvWithDefault returns the value of an environment variable, falling
// back to the provided default when unset.
func GetEnvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
