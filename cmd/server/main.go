// Package main is the entry point for the RGB stage server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/rgbstage/rgbstage-go/internal/api"
	"github.com/rgbstage/rgbstage-go/internal/config"
	"github.com/rgbstage/rgbstage-go/internal/database"
	"github.com/rgbstage/rgbstage-go/internal/database/models"
	"github.com/rgbstage/rgbstage-go/internal/database/repositories"
	"github.com/rgbstage/rgbstage-go/internal/ledcolor"
	"github.com/rgbstage/rgbstage-go/internal/services/device"
	"github.com/rgbstage/rgbstage-go/internal/services/pubsub"
	"github.com/rgbstage/rgbstage-go/internal/services/show"
	"github.com/rgbstage/rgbstage-go/internal/stage"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load .env file if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Print startup banner
	printBanner(cfg)

	// Connect to database
	db, err := database.Connect(database.Config{
		URL:         cfg.DatabaseURL,
		MaxIdleConn: 5,
		MaxOpenConn: 10,
		Debug:       cfg.IsDevelopment(),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close() }()

	// Auto-migrate database schema
	log.Println("Running database migrations...")
	if err := db.AutoMigrate(
		&models.GradientPreset{},
		&models.GradientStop{},
		&models.ShowRecord{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migrations complete")

	// Seed built-in gradient presets
	presetRepo := repositories.NewPresetRepository(db)
	if err := presetRepo.SeedBuiltins(context.Background()); err != nil {
		log.Fatalf("Failed to seed built-in presets: %v", err)
	}

	// Load the show definition, falling back to the built-in startup show
	def := loadShow(cfg.ShowPath, repositories.NewShowRepository(db))

	// Create and initialize the device service over the show's devices
	targets := make([]device.Target, len(def.Devices))
	for i, d := range def.Devices {
		targets[i] = device.Target{
			ID:          d.ID,
			Name:        d.Name,
			DeviceIndex: d.DeviceIndex,
			ZoneIndex:   d.ZoneIndex,
			LEDCount:    d.LEDCount,
		}
	}
	deviceService := device.NewService(device.Config{
		Enabled:    cfg.OpenRGBEnabled,
		Host:       cfg.OpenRGBHost,
		Port:       cfg.OpenRGBPort,
		ClientName: cfg.ClientName,
		Targets:    targets,
	})
	if err := deviceService.Initialize(); err != nil {
		log.Printf("Warning: %v, continuing in simulation mode", err)
		deviceService.Disable()
		_ = deviceService.Initialize()
	}

	// Create the stage and register every device the show touches
	stageManager := stage.NewManager(deviceService, deviceService, cfg.FrameRateHz)
	for _, t := range targets {
		if err := stageManager.RegisterDevice(t.ID); err != nil {
			log.Fatalf("Failed to register device %s: %v", t.ID, err)
		}
	}

	// Feed rendered frames to the preview stream
	bus := pubsub.New()
	stageManager.SetFrameHook(func(deviceID string, colors []ledcolor.RGB) {
		bus.Publish(pubsub.TopicFrameRendered, deviceID,
			api.NewFrameEvent(deviceID, stageManager.FrameCount(), colors))
	})

	// Start the render loop and the show
	stageManager.Start()

	runner := show.NewRunner(stageManager, presetRepoResolver(presetRepo), cfg.DefaultGamma)
	runner.SetUpdateCallback(func(status show.Status) {
		bus.Publish(pubsub.TopicShowState, "", status)
	})
	if err := runner.Start(def); err != nil {
		log.Fatalf("Failed to start show: %v", err)
	}

	// HTTP surface
	apiServer := api.NewServer(api.Config{
		Stage:      stageManager,
		Runner:     runner,
		Devices:    deviceService,
		PresetRepo: presetRepo,
		Bus:        bus,
		CORSOrigin: cfg.CORSOrigin,
		Version:    Version,
	})

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      apiServer.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on http://localhost:%s\n", cfg.Port)
		log.Printf("Preview stream: ws://localhost:%s/ws/preview\n", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Cleanup services in reverse order. The device service sends the final
	// blackout frame, so the stage must stop pushing first.
	runner.Stop()
	stageManager.Stop()
	time.Sleep(cfg.BlackoutTimeout)
	deviceService.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}

// loadShow reads the YAML show file, keeps a copy in the show library, and
// falls back to the built-in startup show when no file is present.
func loadShow(path string, showRepo *repositories.ShowRepository) *show.Definition {
	def, err := show.Load(path)
	if err != nil {
		log.Printf("No show file at %s (%v), using built-in startup show", path, err)
		return show.DefaultDefinition()
	}

	if raw, readErr := os.ReadFile(path); readErr == nil && showRepo != nil {
		if _, err := showRepo.Upsert(context.Background(), def.Name, string(raw)); err != nil {
			log.Printf("Warning: could not store show %q: %v", def.Name, err)
		}
	}

	log.Printf("🎭 Loaded show %q: %d devices, %d cues", def.Name, len(def.Devices), len(def.Cues))
	return def
}

// presetRepoResolver resolves gradient presets from the database, which
// lets stored presets shadow the built-in ones.
func presetRepoResolver(repo *repositories.PresetRepository) show.PresetResolver {
	return func(name string) ([]ledcolor.Stop, error) {
		preset, err := repo.FindByName(context.Background(), name)
		if err != nil {
			return nil, err
		}
		if preset == nil {
			return nil, nil
		}
		return repositories.Stops(preset), nil
	}
}

// printBanner prints the startup banner.
func printBanner(cfg *config.Config) {
	fmt.Println("============================================")
	fmt.Println("  RGB Stage Server")
	fmt.Printf("  Version: %s\n", Version)
	fmt.Printf("  Build:   %s\n", BuildTime)
	fmt.Printf("  Commit:  %s\n", GitCommit)
	fmt.Println("============================================")
	fmt.Printf("  Environment: %s\n", cfg.Env)
	fmt.Printf("  Port:        %s\n", cfg.Port)
	fmt.Printf("  Database:    %s\n", cfg.DatabaseURL)
	fmt.Printf("  OpenRGB:     %v (%s:%d)\n", cfg.OpenRGBEnabled, cfg.OpenRGBHost, cfg.OpenRGBPort)
	fmt.Printf("  Frame rate:  %d Hz\n", cfg.FrameRateHz)
	fmt.Println("============================================")
}
