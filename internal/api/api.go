// Package api exposes the HTTP surface of the server: health and status
// endpoints, stored preset lookup, and a websocket stream of rendered
// frames for preview clients.
package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"github.com/rgbstage/rgbstage-go/internal/database/repositories"
	"github.com/rgbstage/rgbstage-go/internal/ledcolor"
	"github.com/rgbstage/rgbstage-go/internal/services/device"
	"github.com/rgbstage/rgbstage-go/internal/services/pubsub"
	"github.com/rgbstage/rgbstage-go/internal/services/show"
	"github.com/rgbstage/rgbstage-go/internal/stage"
)

// FrameEvent is the websocket payload for one composited device frame.
type FrameEvent struct {
	Device string     `json:"device"`
	Frame  uint64     `json:"frame"`
	Colors [][3]uint8 `json:"colors"`
}

// NewFrameEvent packs a composited frame for publication.
func NewFrameEvent(deviceID string, frame uint64, colors []ledcolor.RGB) FrameEvent {
	packed := make([][3]uint8, len(colors))
	for i, c := range colors {
		packed[i] = [3]uint8{c.R, c.G, c.B}
	}
	return FrameEvent{Device: deviceID, Frame: frame, Colors: packed}
}

// Config holds the dependencies and settings for the API server.
type Config struct {
	Stage      *stage.Manager
	Runner     *show.Runner
	Devices    *device.Service
	PresetRepo *repositories.PresetRepository
	Bus        *pubsub.PubSub
	CORSOrigin string
	Version    string
}

// Server routes HTTP and websocket traffic.
type Server struct {
	cfg      Config
	router   chi.Router
	upgrader websocket.Upgrader
	started  time.Time
}

// NewServer builds the router with middleware and all routes attached.
func NewServer(cfg Config) *Server {
	s := &Server{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins for WebSocket
			},
		},
		started: time.Now(),
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin, "http://localhost:3000", "http://localhost:4000"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	router.Use(corsMiddleware.Handler)

	router.Get("/health", s.handleHealth)
	router.Get("/status", s.handleStatus)
	router.Get("/presets", s.handlePresets)
	router.Get("/ws/preview", s.handlePreview)

	s.router = router
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   s.cfg.Version,
		"uptime":    time.Since(s.started).Round(time.Second).String(),
	})
}

type deviceStatus struct {
	ID            string `json:"id"`
	LEDCount      int    `json:"ledCount"`
	ActiveEffects int    `json:"activeEffects"`
}

type statusResponse struct {
	Show    show.Status    `json:"show"`
	Running bool           `json:"running"`
	Frames  uint64         `json:"frames"`
	Output  bool           `json:"outputEnabled"`
	Devices []deviceStatus `json:"devices"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		Show:    s.cfg.Runner.Status(),
		Running: s.cfg.Stage.IsRunning(),
		Frames:  s.cfg.Stage.FrameCount(),
		Output:  s.cfg.Devices.IsEnabled(),
	}
	for _, id := range s.cfg.Devices.TargetIDs() {
		count, _ := s.cfg.Stage.LEDCount(id)
		resp.Devices = append(resp.Devices, deviceStatus{
			ID:            id,
			LEDCount:      count,
			ActiveEffects: s.cfg.Stage.ActiveEffectCount(id),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type presetResponse struct {
	Name    string          `json:"name"`
	BuiltIn bool            `json:"builtIn"`
	Stops   []presetStopDTO `json:"stops"`
}

type presetStopDTO struct {
	Position float64 `json:"position"`
	H        float64 `json:"h"`
	S        float64 `json:"s"`
	V        float64 `json:"v"`
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	presets, err := s.cfg.PresetRepo.FindAll(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	resp := make([]presetResponse, 0, len(presets))
	for i := range presets {
		p := presetResponse{Name: presets[i].Name, BuiltIn: presets[i].BuiltIn}
		for _, stop := range repositories.Stops(&presets[i]) {
			p.Stops = append(p.Stops, presetStopDTO{
				Position: stop.Position,
				H:        stop.Color.H,
				S:        stop.Color.S,
				V:        stop.Color.V,
			})
		}
		resp = append(resp, p)
	}
	writeJSON(w, http.StatusOK, resp)
}

// handlePreview upgrades to a websocket and streams rendered frames until
// the client disconnects. The optional ?device= query limits the stream to
// a single device.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Preview websocket upgrade failed: %v", err)
		return
	}
	defer func() { _ = conn.Close() }()

	deviceID := r.URL.Query().Get("device")
	sub := s.cfg.Bus.Subscribe(pubsub.TopicFrameRendered, deviceID, 16)
	defer s.cfg.Bus.Unsubscribe(sub)

	// Drain reads so close frames and pings are processed.
	ctx, cancel := context.WithCancel(r.Context())
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel:
			if !ok {
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
