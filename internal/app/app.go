// Package app wires camera capture, hand detection and the match simulation
// into the live game pipeline.
package app

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/ayusman/handpong/internal/capture"
	"github.com/ayusman/handpong/internal/detector"
	"github.com/ayusman/handpong/internal/game"
	"github.com/ayusman/handpong/internal/gesture"
	"github.com/ayusman/handpong/internal/store"
	"github.com/google/uuid"
)

// Settings keys for gesture calibration.
const (
	settingFistThreshold = "fist_threshold"
	settingCurlThreshold = "curl_threshold"
)

// Pipeline timing constants.
const (
	// TickRate is the simulation rate in ticks per second. The game ticker
	// never changes; only the camera frame rate is throttled while idle.
	TickRate = 30
	// MotionIdleTimeout is how long the court may sit still before the
	// camera drops to its idle frame rate.
	MotionIdleTimeout = 4 * time.Second
)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	CameraID     int
	MotionThresh float64
	Game         game.Config

	// TickInterval overrides the simulation tick period. Zero means the
	// standard rate; tests shrink it to run matches quickly.
	TickInterval time.Duration
}

// App owns the match and the pipeline goroutine that drives it. The match is
// mutated only by that goroutine; every other consumer reads Snapshot copies.
type App struct {
	config     Config
	session    string
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   *detector.Cached
	classifier *gesture.Classifier
	match      *game.Match
	countdown  *countdown

	mu         sync.RWMutex
	enabled    bool
	stopCh     chan struct{}
	snapshot   game.Snapshot
	pendingCfg *game.Config
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	a := &App{
		config:     config,
		session:    uuid.New().String(),
		camera:     capture.NewCamera(config.CameraID),
		motion:     capture.NewMotionDetector(motionThreshold),
		classifier: gesture.NewClassifier(),
		match:      game.New(config.Game),
		countdown:  newCountdown(),
		enabled:    true,
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = detector.NewCached(mp)
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewCached(detector.NewMockDetector())
	}

	a.snapshot = a.match.Snapshot()
	a.snapshot.Session = a.session

	return a
}

// SetEnabled pauses or resumes the pipeline. While paused the simulation is
// frozen and the camera is left untouched.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether the pipeline is currently running the simulation.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use. It must be called
// before Start.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = detector.NewCached(d)
}

// SetCamera sets the camera implementation to use. It must be called before
// Start.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// LoadTuning loads the active tuning profile and the gesture calibration from
// the database and applies them. Missing entries are not errors; the
// configured defaults stand.
func (a *App) LoadTuning() error {
	if a.config.Store == nil {
		return nil
	}

	settings := a.config.Store.Settings()
	if v, err := settings.GetFloat(settingFistThreshold, a.classifier.FistThreshold); err == nil {
		a.classifier.FistThreshold = v
	}
	if v, err := settings.GetFloat(settingCurlThreshold, a.classifier.CurlThreshold); err == nil {
		a.classifier.CurlThreshold = v
	}

	cfg, err := a.config.Store.Tunings().Active()
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}

	a.config.Game = cfg
	a.match = game.New(cfg)
	a.snapshot = a.match.Snapshot()

	log.Println("Loaded tuning profile from database")
	return nil
}

// Tuning returns the game tuning the pipeline is running with, including any
// update that has been applied but not yet picked up by a tick.
func (a *App) Tuning() game.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.pendingCfg != nil {
		return *a.pendingCfg
	}
	return a.config.Game
}

// ApplyTuning persists the given tuning as the active profile and hands it to
// the pipeline, which applies it at the start of its next tick.
func (a *App) ApplyTuning(cfg game.Config) error {
	if a.config.Store != nil {
		if err := a.config.Store.Tunings().SaveActive(cfg); err != nil {
			return err
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.pendingCfg = &cfg
	return nil
}

// takePendingTuning hands the latest tuning update to the pipeline goroutine.
func (a *App) takePendingTuning() (game.Config, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.pendingCfg == nil {
		return game.Config{}, false
	}
	cfg := *a.pendingCfg
	a.pendingCfg = nil
	a.config.Game = cfg
	return cfg, true
}

// Start opens the camera and begins the game pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	// Open the camera
	if err := a.camera.Open(); err != nil {
		return err
	}

	// The camera starts at the idle rate; the pipeline raises it on motion
	// and whenever a point is in play.
	a.camera.SetFPS(capture.IdleFPS)

	// Create stop channel and start the pipeline
	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Game pipeline started")
	return nil
}

// Stop halts the pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Signal the pipeline to stop
	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	a.countdown.clear()

	// Close the camera
	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	// Close motion detector
	a.motion.Close()

	// Close the hand detector if set
	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Game pipeline stopped")
}

// Snapshot returns the most recently published match state.
func (a *App) Snapshot() game.Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snapshot
}

// publish stores the snapshot produced by the tick that just finished.
func (a *App) publish(snap game.Snapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.snapshot = snap
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Detector returns the deduplicating hand detector.
func (a *App) Detector() *detector.Cached {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}
