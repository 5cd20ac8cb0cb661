// Package config provides configuration management for the RGB stage
// server.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values for the server.
type Config struct {
	// Server configuration
	Port string
	Env  string

	// Database configuration (preset and show library)
	DatabaseURL string

	// OpenRGB SDK server connection
	OpenRGBEnabled bool
	OpenRGBHost    string
	OpenRGBPort    int
	ClientName     string

	// Render loop configuration
	FrameRateHz int // Hz (default 60, matches the show's target frame time)

	// Show definition
	ShowPath string // YAML show file; empty or missing falls back to the built-in show

	// Gamma applied when a show cue does not set one
	DefaultGamma float64

	// Shutdown behavior
	BlackoutTimeout time.Duration // Max time to wait for the final blackout frame

	// Non-interactive mode (for Docker/CI)
	NonInteractive bool

	// CORS configuration
	CORSOrigin string
}

// Load loads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		// Server
		Port: getEnv("PORT", "4000"),
		Env:  getEnv("ENV", "development"),

		// Database
		DatabaseURL: getEnv("DATABASE_URL", "file:./rgbstage.db"),

		// OpenRGB
		OpenRGBEnabled: getEnvBool("OPENRGB_ENABLED", true),
		OpenRGBHost:    getEnv("OPENRGB_HOST", "127.0.0.1"),
		OpenRGBPort:    getEnvInt("OPENRGB_PORT", 6742),
		ClientName:     getEnv("OPENRGB_CLIENT_NAME", "rgbstage"),

		// Render loop
		FrameRateHz: getEnvInt("FRAME_RATE", 60),

		// Show
		ShowPath: getEnv("SHOW_PATH", "./show.yaml"),

		// Compositing
		DefaultGamma: getEnvFloat("DEFAULT_GAMMA", 2.9),

		// Shutdown
		BlackoutTimeout: time.Duration(getEnvInt("BLACKOUT_TIMEOUT_MS", 500)) * time.Millisecond,

		// Non-interactive
		NonInteractive: getEnvBool("NON_INTERACTIVE", false),

		// CORS
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:3000"),
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default value.
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvBool returns the boolean value of an environment variable or a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// getEnvFloat returns the float value of an environment variable or a default value.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
