// Package stage provides the render loop that drives effects onto devices.
// Each frame the manager ticks every active effect, composites its
// brightness buffer with its color source into final per-LED colors and
// pushes the result to the device sink. Frames are fully computed before
// anything is sent, so a device never shows a partially updated buffer.
package stage

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/lucsky/cuid"

	"github.com/rgbstage/rgbstage-go/internal/effects"
	"github.com/rgbstage/rgbstage-go/internal/ledcolor"
)

// Sink applies a computed color buffer to a device. Implementations are
// assumed synchronous and fire-and-forget: nothing feeds back into effect
// state. Retry policy for device communication lives behind the sink.
type Sink interface {
	Apply(deviceID string, colors []ledcolor.RGB) error
}

// LEDCountProvider supplies the LED count for a device or zone. The count
// is treated as fixed for the lifetime of an effect instance.
type LEDCountProvider interface {
	LEDCount(deviceID string) (int, error)
}

// layer pairs an active effect with the color source it composites
// against. Layers stack per device, last on top.
type layer struct {
	id      string
	effect  effects.Effect
	source  ledcolor.Source
	addedAt time.Time
}

// Manager owns the per-device effect layers and the frame loop.
type Manager struct {
	mu sync.RWMutex

	sink   Sink
	counts LEDCountProvider

	// Per registered device: active layers and the reusable canvas.
	layers   map[string][]*layer
	canvases map[string][]ledcolor.RGB
	ledCount map[string]int

	// Dither noise. Seeded once; only consulted when an effect enables
	// dithering.
	rng *rand.Rand

	// Frame statistics for the status API.
	frameCount  uint64
	lastFrameAt time.Time

	// Optional per-frame hook, used to feed the preview stream.
	onFrame func(deviceID string, colors []ledcolor.RGB)

	frameInterval time.Duration
	stopChan      chan struct{}
	running       bool
}

// NewManager creates a stage manager rendering at the given frame rate.
// Rates <= 0 fall back to 60Hz.
func NewManager(sink Sink, counts LEDCountProvider, frameRateHz int) *Manager {
	if frameRateHz <= 0 {
		frameRateHz = 60
	}
	return &Manager{
		sink:          sink,
		counts:        counts,
		layers:        make(map[string][]*layer),
		canvases:      make(map[string][]ledcolor.RGB),
		ledCount:      make(map[string]int),
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		frameInterval: time.Second / time.Duration(frameRateHz),
		stopChan:      make(chan struct{}),
	}
}

// SetFrameHook registers a callback invoked with every composited device
// frame, after the frame has been handed to the sink.
func (m *Manager) SetFrameHook(hook func(deviceID string, colors []ledcolor.RGB)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onFrame = hook
}

// RegisterDevice makes a device known to the manager, resolving its LED
// count through the provider. Zero LEDs is a valid degenerate case and
// produces empty updates.
func (m *Manager) RegisterDevice(deviceID string) error {
	count, err := m.counts.LEDCount(deviceID)
	if err != nil {
		return fmt.Errorf("stage: resolving LED count for %q: %w", deviceID, err)
	}
	if count < 0 {
		count = 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.ledCount[deviceID]; ok {
		return nil
	}
	m.ledCount[deviceID] = count
	m.canvases[deviceID] = make([]ledcolor.RGB, count)
	m.layers[deviceID] = nil
	return nil
}

// LEDCount returns the registered LED count for a device.
func (m *Manager) LEDCount(deviceID string) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count, ok := m.ledCount[deviceID]
	return count, ok
}

// AddEffect layers an effect with its color source onto a device and
// returns the layer ID. The device must have been registered first.
func (m *Manager) AddEffect(deviceID string, effect effects.Effect, source ledcolor.Source) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.ledCount[deviceID]; !ok {
		return "", fmt.Errorf("stage: device %q is not registered", deviceID)
	}

	id := cuid.New()
	m.layers[deviceID] = append(m.layers[deviceID], &layer{
		id:     id,
		effect: effect,
		source: source,
	})
	return id, nil
}

// ClearEffects removes all effect layers from a device.
func (m *Manager) ClearEffects(deviceID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.layers[deviceID] = nil
}

// ClearAll removes all effect layers from every device.
func (m *Manager) ClearAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for deviceID := range m.layers {
		m.layers[deviceID] = nil
	}
}

// HasLayer reports whether a layer is still active on a device. Finished
// layers are removed at the end of the frame that rendered their final
// values, so a missing layer means its effect has completed or was
// cleared.
func (m *Manager) HasLayer(deviceID, layerID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, l := range m.layers[deviceID] {
		if l.id == layerID {
			return true
		}
	}
	return false
}

// ActiveEffectCount returns the number of unfinished layers on a device.
func (m *Manager) ActiveEffectCount(deviceID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.layers[deviceID])
}

// Start launches the frame loop.
func (m *Manager) Start() {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.stopChan = make(chan struct{})
	stop := m.stopChan
	m.mu.Unlock()

	go m.renderLoop(stop)
}

// Stop signals the frame loop to exit. The frame in progress completes;
// no effect update is interrupted mid-computation.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	close(m.stopChan)
	m.mu.Unlock()
}

// IsRunning reports whether the frame loop is active.
func (m *Manager) IsRunning() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.running
}

// FrameCount returns the number of frames rendered since start.
func (m *Manager) FrameCount() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.frameCount
}

func (m *Manager) renderLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(m.frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			m.RenderFrame(now)
		}
	}
}

// RenderFrame executes one full update and render cycle: tick and
// composite every device's layers, drop finished effects, then push all
// canvases to the sink. Exposed so tests and callers can drive frames with
// explicit timestamps.
func (m *Manager) RenderFrame(now time.Time) {
	m.mu.Lock()

	deviceIDs := make([]string, 0, len(m.layers))
	for deviceID := range m.layers {
		deviceIDs = append(deviceIDs, deviceID)
	}
	sort.Strings(deviceIDs)

	canvases := make([][]ledcolor.RGB, len(deviceIDs))

	for idx, deviceID := range deviceIDs {
		canvas := m.canvases[deviceID]
		canvases[idx] = canvas
		for i := range canvas {
			canvas[i] = ledcolor.RGB{}
		}

		keep := m.layers[deviceID][:0]
		for _, l := range m.layers[deviceID] {
			if l.addedAt.IsZero() {
				l.addedAt = now
			}
			l.effect.Tick(now)
			m.composite(canvas, l, now)
			if !l.effect.Finished() {
				keep = append(keep, l)
			}
		}
		m.layers[deviceID] = keep
	}

	m.frameCount++
	m.lastFrameAt = now
	hook := m.onFrame
	m.mu.Unlock()

	// Push after all canvases are computed so devices stay in sync.
	for idx, deviceID := range deviceIDs {
		if err := m.sink.Apply(deviceID, canvases[idx]); err != nil {
			log.Printf("stage: sink error for device %s: %v", deviceID, err)
		}
		if hook != nil {
			hook(deviceID, canvases[idx])
		}
	}
}

// composite folds one layer's brightness buffer into the device canvas:
// spatial reverse, dither noise, gamma curve, then the color source's HSV
// scaled by the resulting brightness. Layers overwrite; last on top wins.
func (m *Manager) composite(canvas []ledcolor.RGB, l *layer, now time.Time) {
	brightness := l.effect.Brightness()
	opts := l.effect.Options()
	count := len(canvas)
	if count == 0 || len(brightness) == 0 {
		return
	}
	elapsed := now.Sub(l.addedAt)

	for i := 0; i < count; i++ {
		src := i
		if src >= len(brightness) {
			src = len(brightness) - 1
		}
		if opts.Reverse {
			src = len(brightness) - 1 - src
		}
		b := brightness[src]

		if opts.DitherStrength > 0 {
			b += (m.rng.Float64()*2 - 1) * opts.DitherStrength
		}
		if b < 0 {
			b = 0
		} else if b > 1 {
			b = 1
		}
		b = math.Pow(b, opts.Gamma)

		pos := float64(i) / float64(count)
		c := l.source.ColorAt(pos, elapsed)
		c.V *= b
		canvas[i] = c.ToRGB()
	}
}
