// Package tray provides the system tray controls for the game.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// Tray represents the system tray application.
type Tray struct {
	onToggle func(enabled bool)
	onOpen   func()
	onQuit   func()
	enabled  bool
	mu       sync.RWMutex

	// Menu items stored for later updates
	menuToggle *systray.MenuItem
	menuScore  *systray.MenuItem
}

// New creates a new Tray instance with tracking enabled by default.
func New() *Tray {
	return &Tray{
		enabled: true,
	}
}

// OnToggle sets the callback function to be called when tracking is toggled.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnOpen sets the callback function to be called when the open-game menu item
// is clicked.
func (t *Tray) OnOpen(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onOpen = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("HandPong")
	systray.SetTooltip("HandPong gesture table tennis")

	// Create menu items
	t.menuToggle = systray.AddMenuItem("● Tracking", "Toggle hand tracking")
	systray.AddSeparator()

	t.menuScore = systray.AddMenuItem("No game in progress", "Current score")
	t.menuScore.Disable()
	systray.AddSeparator()

	menuOpen := systray.AddMenuItem("Open Game...", "Open the game in a browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit HandPong")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuOpen.ClickedCh:
				t.handleOpen()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {
}

// handleToggle handles the toggle menu item click.
func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	// Update menu item text based on new state
	if enabled {
		t.menuToggle.SetTitle("● Tracking")
	} else {
		t.menuToggle.SetTitle("○ Paused")
	}

	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

// handleOpen handles the open-game menu item click.
func (t *Tray) handleOpen() {
	t.mu.RLock()
	callback := t.onOpen
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetScoreLine updates the score display in the menu. An empty string resets
// it to the idle text.
func (t *Tray) SetScoreLine(line string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuScore != nil {
		if line == "" {
			t.menuScore.SetTitle("No game in progress")
		} else {
			t.menuScore.SetTitle(line)
		}
	}
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}
