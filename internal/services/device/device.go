// Package device bridges the stage to the OpenRGB server: it implements
// the stage sink and the LED-count provider over a configured table of
// devices and zones.
package device

import (
	"fmt"
	"log"
	"sync"

	"github.com/rgbstage/rgbstage-go/internal/ledcolor"
	"github.com/rgbstage/rgbstage-go/pkg/openrgb"
)

// NoZone marks a target that addresses a whole device rather than a single
// zone.
const NoZone = -1

// Target describes one addressable LED surface: either a whole OpenRGB
// device or a single zone of one. LED counts come from the lighting setup
// and are fixed for the life of the process.
type Target struct {
	ID          string // handle used by the stage and show definitions
	Name        string // human-readable label
	DeviceIndex int    // OpenRGB controller index
	ZoneIndex   int    // zone within the controller, or NoZone
	LEDCount    int
}

// Config holds device service configuration.
type Config struct {
	Enabled    bool
	Host       string
	Port       int
	ClientName string
	Targets    []Target
}

// Service applies computed frames to the OpenRGB server. With Enabled set
// to false it runs in simulation mode: frames are accepted and dropped,
// which keeps the render loop and tests independent of real hardware.
type Service struct {
	mu sync.RWMutex

	client  *openrgb.Client
	enabled bool
	name    string
	targets map[string]Target
	running bool
}

// NewService creates a device service from the configured targets. LED
// counts below 1 are clamped up, matching the validation the effects do.
func NewService(cfg Config) *Service {
	targets := make(map[string]Target, len(cfg.Targets))
	for _, t := range cfg.Targets {
		if t.LEDCount < 1 {
			t.LEDCount = 1
		}
		targets[t.ID] = t
	}
	return &Service{
		client:  openrgb.NewClient(cfg.Host, cfg.Port),
		enabled: cfg.Enabled,
		name:    cfg.ClientName,
		targets: targets,
	}
}

// Initialize connects to the OpenRGB server when enabled.
func (s *Service) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	if s.enabled {
		if err := s.client.Connect(s.name); err != nil {
			return fmt.Errorf("device: OpenRGB server unavailable: %w", err)
		}
		count, err := s.client.ControllerCount()
		if err != nil {
			log.Printf("Warning: could not query controller count: %v", err)
		} else {
			log.Printf("🎨 OpenRGB connected, %d controllers, %d configured targets", count, len(s.targets))
		}
	} else {
		log.Printf("🎨 Device service initialized with %d targets (simulation mode)", len(s.targets))
	}

	s.running = true
	return nil
}

// Apply pushes one composited frame to a device or zone. Implements the
// stage sink.
func (s *Service) Apply(deviceID string, colors []ledcolor.RGB) error {
	s.mu.RLock()
	target, ok := s.targets[deviceID]
	enabled := s.enabled
	s.mu.RUnlock()

	if !ok {
		return fmt.Errorf("device: unknown target %q", deviceID)
	}
	if !enabled {
		return nil
	}

	wire := make([]openrgb.Color, len(colors))
	for i, c := range colors {
		wire[i] = openrgb.Color{R: c.R, G: c.G, B: c.B}
	}

	if target.ZoneIndex == NoZone {
		return s.client.UpdateLEDs(uint32(target.DeviceIndex), wire)
	}
	return s.client.UpdateZoneLEDs(uint32(target.DeviceIndex), uint32(target.ZoneIndex), wire)
}

// LEDCount returns the configured LED count for a target. Implements the
// stage LED-count provider.
func (s *Service) LEDCount(deviceID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	target, ok := s.targets[deviceID]
	if !ok {
		return 0, fmt.Errorf("device: unknown target %q", deviceID)
	}
	return target.LEDCount, nil
}

// TargetIDs returns the configured target handles.
func (s *Service) TargetIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.targets))
	for id := range s.targets {
		ids = append(ids, id)
	}
	return ids
}

// Disable switches the service to simulation mode. Used when the OpenRGB
// server is unreachable at startup so the render loop can still run.
func (s *Service) Disable() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = false
}

// IsEnabled reports whether real output is enabled.
func (s *Service) IsEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled
}

// Stop sends a final blackout to every target and closes the connection.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.running = false

	if s.enabled && s.client.IsConnected() {
		for _, target := range s.targets {
			black := make([]openrgb.Color, target.LEDCount)
			var err error
			if target.ZoneIndex == NoZone {
				err = s.client.UpdateLEDs(uint32(target.DeviceIndex), black)
			} else {
				err = s.client.UpdateZoneLEDs(uint32(target.DeviceIndex), uint32(target.ZoneIndex), black)
			}
			if err != nil {
				log.Printf("Blackout send error for target %s: %v", target.ID, err)
			}
		}
		_ = s.client.Close()
	}

	log.Printf("🎨 Device service stopped")
}
