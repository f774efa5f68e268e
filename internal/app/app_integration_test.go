package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ayusman/handpong/internal/capture"
	"github.com/ayusman/handpong/internal/detector"
	"github.com/ayusman/handpong/internal/game"
	"github.com/ayusman/handpong/internal/store"
)

// newTestApp builds an app on mocks with a fast tick so a whole match phase
// chain runs in milliseconds.
func newTestApp(t *testing.T) (*App, *detector.MockDetector) {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	a := New(Config{
		Store:        s,
		CameraID:     -1,
		MotionThresh: 0.05,
		Game:         game.DefaultConfig(),
		TickInterval: time.Millisecond,
	})

	mockDetector := detector.NewMockDetector()
	a.SetDetector(mockDetector)
	a.SetCamera(capture.NewMockCamera(nil, false))

	return a, mockDetector
}

// waitForPhase polls the published snapshot until the match reports the given
// phase.
func waitForPhase(t *testing.T, a *App, phase string) game.Snapshot {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		snap := a.Snapshot()
		if snap.Phase == phase {
			return snap
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("match never reached phase %q, stuck at %q", phase, a.Snapshot().Phase)
	return game.Snapshot{}
}

func TestApp_PipelineReachesRally(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, mock := newTestApp(t)

	if err := a.Start(); err != nil {
		t.Fatalf("app.Start() error = %v", err)
	}
	defer a.Stop()

	// An open hand is enough to leave Initializing and AwaitingHand.
	mock.SetHands([]detector.HandLandmarks{detector.OpenHandAt(0.5, 0.5)})
	waitForPhase(t, a, "menu")

	// A fist starts the game.
	mock.SetHands([]detector.HandLandmarks{detector.FistAt(0.5, 0.5)})
	snap := waitForPhase(t, a, "serving")

	if snap.Server != "player" {
		t.Errorf("first server = %q, want player", snap.Server)
	}
	if snap.PlayerScore != 0 || snap.OpponentScore != 0 {
		t.Errorf("fresh game score = %d-%d, want 0-0", snap.PlayerScore, snap.OpponentScore)
	}
	if snap.Countdown == 0 {
		t.Error("serve countdown not running")
	}

	// Curling the index finger serves.
	mock.SetHands([]detector.HandLandmarks{detector.IndexCurlAt(0.5, 0.5)})
	snap = waitForPhase(t, a, "active")

	if snap.BallDY == 0 {
		t.Error("launched ball has no vertical velocity")
	}
}

func TestApp_FistAloneNeverServes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, mock := newTestApp(t)

	if err := a.Start(); err != nil {
		t.Fatalf("app.Start() error = %v", err)
	}
	defer a.Stop()

	mock.SetHands([]detector.HandLandmarks{detector.OpenHandAt(0.5, 0.5)})
	waitForPhase(t, a, "menu")

	// Keep the fist held through the whole countdown. A fist also curls the
	// index finger, so this is the pose most likely to serve by accident.
	mock.SetHands([]detector.HandLandmarks{detector.FistAt(0.5, 0.5)})
	waitForPhase(t, a, "serving")

	time.Sleep(200 * time.Millisecond)
	if snap := a.Snapshot(); snap.Phase != "serving" {
		t.Errorf("held fist moved the match to %q, want serving", snap.Phase)
	}
}

func TestApp_PauseFreezesSimulation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, mock := newTestApp(t)

	if err := a.Start(); err != nil {
		t.Fatalf("app.Start() error = %v", err)
	}
	defer a.Stop()

	mock.SetHands([]detector.HandLandmarks{detector.OpenHandAt(0.5, 0.5)})
	waitForPhase(t, a, "menu")

	a.SetEnabled(false)
	frozen := a.Snapshot()

	// A fist would normally start a game; paused, nothing may change.
	mock.SetHands([]detector.HandLandmarks{detector.FistAt(0.5, 0.5)})
	time.Sleep(100 * time.Millisecond)

	if snap := a.Snapshot(); snap.Phase != frozen.Phase {
		t.Errorf("paused pipeline advanced from %q to %q", frozen.Phase, snap.Phase)
	}

	a.SetEnabled(true)
	waitForPhase(t, a, "serving")
}

func TestApp_CameraRateFollowsPlay(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, mock := newTestApp(t)

	if err := a.Start(); err != nil {
		t.Fatalf("app.Start() error = %v", err)
	}
	defer a.Stop()

	// Empty frames carry no motion, so the camera stays throttled through
	// the menu.
	mock.SetHands([]detector.HandLandmarks{detector.OpenHandAt(0.5, 0.5)})
	waitForPhase(t, a, "menu")

	if fps := a.Camera().FPS(); fps != capture.IdleFPS {
		t.Errorf("menu camera FPS = %d, want %d", fps, capture.IdleFPS)
	}

	// The moment a point is in play the camera runs at full rate.
	mock.SetHands([]detector.HandLandmarks{detector.FistAt(0.5, 0.5)})
	waitForPhase(t, a, "serving")

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) && a.Camera().FPS() != capture.DefaultFPS {
		time.Sleep(time.Millisecond)
	}
	if fps := a.Camera().FPS(); fps != capture.DefaultFPS {
		t.Errorf("in-play camera FPS = %d, want %d", fps, capture.DefaultFPS)
	}
}

func TestApp_TuningRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, _ := newTestApp(t)

	cfg := game.DefaultConfig()
	cfg.WinningScore = 21
	cfg.ServeTrigger = game.TriggerAfterCountdown

	if err := a.ApplyTuning(cfg); err != nil {
		t.Fatalf("ApplyTuning() error = %v", err)
	}

	got := a.Tuning()
	if got.WinningScore != 21 {
		t.Errorf("WinningScore = %d, want 21", got.WinningScore)
	}
	if got.ServeTrigger != game.TriggerAfterCountdown {
		t.Errorf("ServeTrigger = %v, want TriggerAfterCountdown", got.ServeTrigger)
	}

	// A fresh app over the same store picks the profile up from disk.
	b := New(Config{Store: a.config.Store, Game: game.DefaultConfig()})
	if err := b.LoadTuning(); err != nil {
		t.Fatalf("LoadTuning() error = %v", err)
	}
	if b.Tuning().WinningScore != 21 {
		t.Errorf("reloaded WinningScore = %d, want 21", b.Tuning().WinningScore)
	}
}
