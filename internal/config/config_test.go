package config

import (
	"testing"
	"time"
)

func TestLoad_CustomEnvironment(t *testing.T) {
	// Set custom environment variables using t.Setenv (auto cleanup)
	t.Setenv("PORT", "8080")
	t.Setenv("ENV", "production")
	t.Setenv("DATABASE_URL", "file:./prod.db")
	t.Setenv("OPENRGB_ENABLED", "false")
	t.Setenv("OPENRGB_HOST", "10.0.0.5")
	t.Setenv("OPENRGB_PORT", "7000")
	t.Setenv("OPENRGB_CLIENT_NAME", "stage-test")
	t.Setenv("FRAME_RATE", "30")
	t.Setenv("SHOW_PATH", "/etc/shows/main.yaml")
	t.Setenv("DEFAULT_GAMMA", "2.2")
	t.Setenv("BLACKOUT_TIMEOUT_MS", "250")
	t.Setenv("NON_INTERACTIVE", "true")
	t.Setenv("CORS_ORIGIN", "http://example.com")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Expected Port to be '8080', got '%s'", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Errorf("Expected Env to be 'production', got '%s'", cfg.Env)
	}
	if cfg.DatabaseURL != "file:./prod.db" {
		t.Errorf("Expected DatabaseURL to be 'file:./prod.db', got '%s'", cfg.DatabaseURL)
	}
	if cfg.OpenRGBEnabled {
		t.Error("Expected OpenRGBEnabled to be false")
	}
	if cfg.OpenRGBHost != "10.0.0.5" {
		t.Errorf("Expected OpenRGBHost to be '10.0.0.5', got '%s'", cfg.OpenRGBHost)
	}
	if cfg.OpenRGBPort != 7000 {
		t.Errorf("Expected OpenRGBPort to be 7000, got %d", cfg.OpenRGBPort)
	}
	if cfg.ClientName != "stage-test" {
		t.Errorf("Expected ClientName to be 'stage-test', got '%s'", cfg.ClientName)
	}
	if cfg.FrameRateHz != 30 {
		t.Errorf("Expected FrameRateHz to be 30, got %d", cfg.FrameRateHz)
	}
	if cfg.ShowPath != "/etc/shows/main.yaml" {
		t.Errorf("Expected ShowPath to be '/etc/shows/main.yaml', got '%s'", cfg.ShowPath)
	}
	if cfg.DefaultGamma != 2.2 {
		t.Errorf("Expected DefaultGamma to be 2.2, got %f", cfg.DefaultGamma)
	}
	if cfg.BlackoutTimeout != 250*time.Millisecond {
		t.Errorf("Expected BlackoutTimeout to be 250ms, got %v", cfg.BlackoutTimeout)
	}
	if !cfg.NonInteractive {
		t.Error("Expected NonInteractive to be true")
	}
	if cfg.CORSOrigin != "http://example.com" {
		t.Errorf("Expected CORSOrigin to be 'http://example.com', got '%s'", cfg.CORSOrigin)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("OPENRGB_PORT", "not-a-number")
	t.Setenv("FRAME_RATE", "sixty")
	t.Setenv("OPENRGB_ENABLED", "maybe")
	t.Setenv("DEFAULT_GAMMA", "curvy")

	cfg := Load()

	if cfg.OpenRGBPort != 6742 {
		t.Errorf("Expected default OpenRGBPort 6742, got %d", cfg.OpenRGBPort)
	}
	if cfg.FrameRateHz != 60 {
		t.Errorf("Expected default FrameRateHz 60, got %d", cfg.FrameRateHz)
	}
	if !cfg.OpenRGBEnabled {
		t.Error("Expected default OpenRGBEnabled true")
	}
	if cfg.DefaultGamma != 2.9 {
		t.Errorf("Expected default DefaultGamma 2.9, got %f", cfg.DefaultGamma)
	}
}

func TestIsDevelopment(t *testing.T) {
	cfg := &Config{Env: "development"}
	if !cfg.IsDevelopment() {
		t.Error("Expected IsDevelopment to be true")
	}
	if cfg.IsProduction() {
		t.Error("Expected IsProduction to be false")
	}

	cfg.Env = "production"
	if cfg.IsDevelopment() {
		t.Error("Expected IsDevelopment to be false")
	}
	if !cfg.IsProduction() {
		t.Error("Expected IsProduction to be true")
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STRING", "value")
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_FLOAT", "1.5")

	if got := getEnv("TEST_STRING", "default"); got != "value" {
		t.Errorf("getEnv = %q, want 'value'", got)
	}
	if got := getEnv("TEST_MISSING", "default"); got != "default" {
		t.Errorf("getEnv = %q, want 'default'", got)
	}
	if got := getEnvInt("TEST_INT", 0); got != 42 {
		t.Errorf("getEnvInt = %d, want 42", got)
	}
	if got := getEnvBool("TEST_BOOL", false); !got {
		t.Error("getEnvBool = false, want true")
	}
	if got := getEnvFloat("TEST_FLOAT", 0); got != 1.5 {
		t.Errorf("getEnvFloat = %f, want 1.5", got)
	}
}
