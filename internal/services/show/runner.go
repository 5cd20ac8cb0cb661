package show

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/rgbstage/rgbstage-go/internal/stage"
)

// Status describes the runner's position in the show.
type Status struct {
	Show     string
	CueIndex int
	CueName  string
	Running  bool
	// Done means the final cue's blocking effects have completed; any
	// indefinite effects of that cue keep rendering.
	Done bool
}

// blockingLayer identifies one blocking effect layer on the stage.
type blockingLayer struct {
	deviceID string
	layerID  string
}

// Runner plays a show definition on a stage manager. It polls the stage
// for completion of the current cue's blocking layers and advances cue by
// cue; the stage's own frame loop does all rendering.
type Runner struct {
	mu sync.RWMutex

	stage        *stage.Manager
	presets      PresetResolver
	defaultGamma float64

	def      *Definition
	cueIndex int
	blocking []blockingLayer
	done     bool

	pollInterval time.Duration
	stopChan     chan struct{}
	running      bool

	// Callback for status updates (optional)
	onUpdate func(Status)
}

// NewRunner creates a show runner.
func NewRunner(stageManager *stage.Manager, presets PresetResolver, defaultGamma float64) *Runner {
	return &Runner{
		stage:        stageManager,
		presets:      presets,
		defaultGamma: defaultGamma,
		pollInterval: 50 * time.Millisecond,
		stopChan:     make(chan struct{}),
	}
}

// SetUpdateCallback sets the callback for cue transition updates.
func (r *Runner) SetUpdateCallback(callback func(Status)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onUpdate = callback
}

// Start begins playing the show from its first cue. Devices referenced by
// the show must already be registered on the stage.
func (r *Runner) Start(def *Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return fmt.Errorf("show: runner already started")
	}
	r.def = def
	r.cueIndex = 0
	r.done = false
	r.running = true
	r.stopChan = make(chan struct{})

	if err := r.startCueLocked(0); err != nil {
		r.running = false
		r.mu.Unlock()
		return err
	}
	stop := r.stopChan
	r.mu.Unlock()

	go r.watchLoop(stop)
	return nil
}

// Stop stops the runner. Effects already on the stage keep rendering
// until the stage itself is cleared or stopped.
func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	close(r.stopChan)
	r.mu.Unlock()
}

// Status returns the runner's current position.
func (r *Runner) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.statusLocked()
}

func (r *Runner) statusLocked() Status {
	s := Status{Running: r.running, Done: r.done}
	if r.def != nil {
		s.Show = r.def.Name
		s.CueIndex = r.cueIndex
		if r.cueIndex < len(r.def.Cues) {
			s.CueName = r.def.Cues[r.cueIndex].Name
		}
	}
	return s
}

// watchLoop polls for cue completion until stopped.
func (r *Runner) watchLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			r.checkAdvance()
		}
	}
}

// checkAdvance moves to the next cue once every blocking layer of the
// current cue has left the stage.
func (r *Runner) checkAdvance() {
	r.mu.Lock()

	if !r.running || r.done {
		r.mu.Unlock()
		return
	}

	for _, b := range r.blocking {
		if r.stage.HasLayer(b.deviceID, b.layerID) {
			r.mu.Unlock()
			return
		}
	}

	var callback func(Status)
	var status Status

	if r.cueIndex+1 >= len(r.def.Cues) {
		r.done = true
		log.Printf("🎬 Show %q complete, holding final cue", r.def.Name)
	} else {
		r.cueIndex++
		if err := r.startCueLocked(r.cueIndex); err != nil {
			log.Printf("Show %q: starting cue %d failed: %v", r.def.Name, r.cueIndex, err)
			r.done = true
		}
	}
	callback = r.onUpdate
	status = r.statusLocked()
	r.mu.Unlock()

	if callback != nil {
		callback(status)
	}
}

// startCueLocked clears the devices the cue touches and layers its
// effects on. Caller holds the lock.
func (r *Runner) startCueLocked(index int) error {
	cue := &r.def.Cues[index]

	if cue.ClearAll {
		r.stage.ClearAll()
	} else {
		for _, deviceID := range cue.TouchedDevices() {
			r.stage.ClearEffects(deviceID)
		}
	}

	r.blocking = r.blocking[:0]
	for _, spec := range cue.Effects {
		numLEDs, ok := r.stage.LEDCount(spec.Device)
		if !ok {
			return fmt.Errorf("show: device %q is not registered on the stage", spec.Device)
		}

		effect, err := buildEffect(spec, numLEDs, r.defaultGamma)
		if err != nil {
			return err
		}
		source, err := buildSource(spec.Color, r.presets)
		if err != nil {
			return err
		}

		layerID, err := r.stage.AddEffect(spec.Device, effect, source)
		if err != nil {
			return err
		}
		if spec.Blocking {
			r.blocking = append(r.blocking, blockingLayer{deviceID: spec.Device, layerID: layerID})
		}
	}

	log.Printf("🎬 Show %q: cue %d/%d %q (%d effects, %d blocking)",
		r.def.Name, index+1, len(r.def.Cues), cue.Name, len(cue.Effects), len(r.blocking))
	return nil
}
