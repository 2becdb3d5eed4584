package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var loadOnce sync.Once

// Config returns the value of an environment variable, loading .env on first use.
func Config(key string) string {
	loadOnce.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("No .env file found, using system environment")
		}
	})
	return os.Getenv(key)
}

// ConfigDefault returns the env value or a fallback when unset.
func ConfigDefault(key, fallback string) string {
	if v := Config(key); v != "" {
		return v
	}
	return fallback
}

// IsDevelopment reports whether the app runs in development mode.
// Internal error details are only exposed to clients in development.
func IsDevelopment() bool {
	return ConfigDefault("GO_ENV", "development") == "development"
}
