package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ayusman/handpong/internal/game"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestSettings_SetGet(t *testing.T) {
	s := newTestStore(t)
	settings := s.Settings()

	if err := settings.Set("camera_id", "2"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := settings.Get("camera_id")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "2" {
		t.Errorf("Get() = %q, want %q", got, "2")
	}

	// Overwrite
	if err := settings.Set("camera_id", "0"); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}
	got, _ = settings.Get("camera_id")
	if got != "0" {
		t.Errorf("Get() after overwrite = %q, want %q", got, "0")
	}
}

func TestSettings_MissingKey(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Settings().Get("no_such_key")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestSettings_TypedAccessors(t *testing.T) {
	s := newTestStore(t)
	settings := s.Settings()

	if err := settings.SetBool("paused", true); err != nil {
		t.Fatalf("SetBool() error = %v", err)
	}
	b, err := settings.GetBool("paused", false)
	if err != nil {
		t.Fatalf("GetBool() error = %v", err)
	}
	if !b {
		t.Error("GetBool() = false, want true")
	}

	if b, _ := settings.GetBool("missing", true); !b {
		t.Error("GetBool() fallback not used for missing key")
	}

	if err := settings.SetInt("camera_id", 3); err != nil {
		t.Fatalf("SetInt() error = %v", err)
	}
	n, err := settings.GetInt("camera_id", 0)
	if err != nil {
		t.Fatalf("GetInt() error = %v", err)
	}
	if n != 3 {
		t.Errorf("GetInt() = %d, want 3", n)
	}

	if n, _ := settings.GetInt("missing", 7); n != 7 {
		t.Errorf("GetInt() fallback = %d, want 7", n)
	}
}

func TestSettings_Delete(t *testing.T) {
	s := newTestStore(t)
	settings := s.Settings()

	settings.Set("key", "value")
	if err := settings.Delete("key"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := settings.Get("key"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}

	// Deleting a missing key is fine
	if err := settings.Delete("key"); err != nil {
		t.Errorf("Delete() of missing key error = %v", err)
	}
}

func TestTunings_SaveGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	tunings := s.Tunings()

	cfg := game.DefaultConfig()
	cfg.WinningScore = 21
	cfg.RallySpeedup = 1.1
	cfg.ServeTrigger = game.TriggerAfterCountdown

	if err := tunings.Save("long-game", cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := tunings.Get("long-game")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if got.WinningScore != 21 {
		t.Errorf("WinningScore = %d, want 21", got.WinningScore)
	}
	if got.RallySpeedup != 1.1 {
		t.Errorf("RallySpeedup = %v, want 1.1", got.RallySpeedup)
	}
	if got.ServeTrigger != game.TriggerAfterCountdown {
		t.Errorf("ServeTrigger = %v, want TriggerAfterCountdown", got.ServeTrigger)
	}
}

func TestTunings_GetMissing(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Tunings().Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestTunings_ListAndDelete(t *testing.T) {
	s := newTestStore(t)
	tunings := s.Tunings()

	tunings.Save("b", game.DefaultConfig())
	tunings.Save("a", game.DefaultConfig())

	names, err := tunings.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("List() = %v, want [a b]", names)
	}

	if err := tunings.Delete("a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := tunings.Delete("a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestTunings_ActiveProfile(t *testing.T) {
	s := newTestStore(t)
	tunings := s.Tunings()

	// No profile saved yet
	if _, err := tunings.Active(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Active() on empty store error = %v, want ErrNotFound", err)
	}

	cfg := game.DefaultConfig()
	cfg.OpponentSpeed = 9

	if err := tunings.SaveActive(cfg); err != nil {
		t.Fatalf("SaveActive() error = %v", err)
	}

	got, err := tunings.Active()
	if err != nil {
		t.Fatalf("Active() error = %v", err)
	}
	if got.OpponentSpeed != 9 {
		t.Errorf("OpponentSpeed = %v, want 9", got.OpponentSpeed)
	}

	// Switching to another profile changes what Active returns
	easy := game.DefaultConfig()
	easy.OpponentSpeed = 3
	tunings.Save("easy", easy)

	if err := tunings.SetActive("easy"); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}
	got, _ = tunings.Active()
	if got.OpponentSpeed != 3 {
		t.Errorf("OpponentSpeed after SetActive = %v, want 3", got.OpponentSpeed)
	}

	// SetActive refuses unknown profiles
	if err := tunings.SetActive("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetActive(nope) error = %v, want ErrNotFound", err)
	}
}
