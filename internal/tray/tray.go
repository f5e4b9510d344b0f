// Package tray provides the system tray menu used when running headless.
package tray

import (
	"fmt"
	"sync"

	"github.com/getlantern/systray"

	"github.com/ayusman/gridshot/internal/app"
)

// Tray represents the system tray application.
type Tray struct {
	onToggle  func() bool
	onRespawn func()
	onQuit    func()
	gesture   bool
	status    string
	mu        sync.RWMutex

	// Menu items stored for later updates
	menuToggle *systray.MenuItem
	menuStatus *systray.MenuItem
}

// New creates a new Tray with gesture control shown as off.
func New() *Tray {
	return &Tray{status: "Round 1"}
}

// OnToggle sets the callback run when gesture control is toggled. It
// returns whether gesture control is active afterwards.
func (t *Tray) OnToggle(fn func() bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnRespawn sets the callback run when the respawn item is clicked.
func (t *Tray) OnRespawn(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onRespawn = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until Quit is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit closes the tray and unblocks Run.
func (t *Tray) Quit() {
	systray.Quit()
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("Gridshot")
	systray.SetTooltip("Gridshot")

	t.mu.Lock()
	t.menuToggle = systray.AddMenuItem(gestureTitle(t.gesture), "Toggle gesture control")
	systray.AddSeparator()
	t.menuStatus = systray.AddMenuItem(t.status, "Current round")
	t.menuStatus.Disable()
	t.mu.Unlock()
	systray.AddSeparator()

	menuRespawn := systray.AddMenuItem("Respawn", "Start a new round")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Gridshot")

	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuRespawn.ClickedCh:
				t.handleRespawn()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {}

func gestureTitle(active bool) string {
	if active {
		return "● Gesture control"
	}
	return "○ Gesture control"
}

// handleToggle handles the toggle menu item click.
func (t *Tray) handleToggle() {
	t.mu.RLock()
	callback := t.onToggle
	t.mu.RUnlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback == nil {
		return
	}
	t.SetGesture(callback())
}

// handleRespawn handles the respawn menu item click.
func (t *Tray) handleRespawn() {
	t.mu.RLock()
	callback := t.onRespawn
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

// SetGesture updates the gesture toggle. It is safe to call before the
// menu exists.
func (t *Tray) SetGesture(active bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.gesture = active
	if t.menuToggle != nil {
		t.menuToggle.SetTitle(gestureTitle(active))
	}
}

// SetStatus updates the status line in the menu.
func (t *Tray) SetStatus(status app.Status) {
	line := FormatStatus(status)

	t.mu.Lock()
	defer t.mu.Unlock()

	t.status = line
	if t.menuStatus != nil {
		t.menuStatus.SetTitle(line)
	}
}

// GestureActive returns the gesture state shown in the menu.
func (t *Tray) GestureActive() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.gesture
}

// Status returns the current status line.
func (t *Tray) Status() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

// FormatStatus renders the one-line round summary shown in the menu.
func FormatStatus(s app.Status) string {
	if s.Stats.Completed {
		return fmt.Sprintf("Round %d cleared: %d kills, %d shots", s.Stats.Round, s.Stats.Kills, s.Stats.Shots)
	}
	return fmt.Sprintf("Round %d: %d/%d left, %d shots", s.Stats.Round, s.Stats.Remaining, s.Stats.Spawned, s.Stats.Shots)
}
