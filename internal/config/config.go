// Package config reads service configuration from the environment.
// Mains load a .env file first (godotenv), then pull values through Get.
package config

import "os"

// Get returns the environment value for key, or fallback when unset or
// empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
