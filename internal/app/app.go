// Package app ties the gesture pipeline, the simulation and round
// recording together.
package app

import (
	"context"
	"log"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ayusman/gridshot/internal/audio"
	"github.com/ayusman/gridshot/internal/capture"
	"github.com/ayusman/gridshot/internal/detector"
	"github.com/ayusman/gridshot/internal/game"
	"github.com/ayusman/gridshot/internal/gesture"
	"github.com/ayusman/gridshot/internal/store"
)

// SoundPlayer plays sound effects.
type SoundPlayer interface {
	Play(effect audio.Effect)
}

// Config holds configuration options for the application.
type Config struct {
	Game     game.Config
	Gesture  gesture.Config
	Camera   capture.Config
	Detector detector.Config

	// Store records round history. Nil disables recording.
	Store *store.Store
	// Seed for the simulation. Zero picks a time-based seed.
	Seed int64
	// Sprites is the number of monster images available to the renderer.
	Sprites int
	// Sound plays effects. Nil is silent.
	Sound SoundPlayer
}

// DefaultConfig returns a Config with every component at its defaults.
func DefaultConfig() Config {
	return Config{
		Game:     game.DefaultConfig(),
		Gesture:  gesture.DefaultConfig(),
		Camera:   capture.DefaultConfig(),
		Detector: detector.DefaultConfig(),
	}
}

// Status summarises the application for status displays.
type Status struct {
	GestureActive bool            `json:"gesture_active"`
	Intent        IntentState     `json:"intent"`
	Stats         game.RoundStats `json:"stats"`
}

// App is the main application.
type App struct {
	config  Config
	seed    int64
	intents *Intents

	worldMu       sync.Mutex
	world         *game.World
	gestureAiming bool
	moveCooldown  int
	round         *store.Round
	usedGesture   bool

	mu         sync.RWMutex
	camera     capture.Camera
	detector   detector.Detector
	preprocess *capture.Preprocessor
	stopCh     chan struct{}
	doneCh     chan struct{}
	closed     bool

	toggling atomic.Bool
	toggles  sync.WaitGroup

	frameMu sync.RWMutex
	frame   []byte

	now       func() time.Time
	closeOnce sync.Once
}

// New creates a new App and starts the first round.
func New(config Config) *App {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	a := &App{
		config:     config,
		seed:       seed,
		intents:    NewIntents(),
		world:      game.NewWorld(config.Game, rand.New(rand.NewSource(seed)), config.Sprites),
		camera:     capture.NewCamera(config.Camera),
		preprocess: capture.NewPreprocessor(config.Camera.Mirror, config.Camera.BlurSize),
		now:        time.Now,
	}

	if mp, err := detector.NewMediaPipeDetector(config.Detector); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), gesture control disabled", err)
	}

	a.worldMu.Lock()
	a.startRound()
	a.worldMu.Unlock()

	return a
}

// SetDetector sets the hand detector implementation to use and closes
// the one it replaces. Call it while gesture control is off.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	prev := a.detector
	a.detector = d
	a.mu.Unlock()

	if prev != nil && prev != d {
		if err := prev.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}
}

// SetCamera replaces the camera. It takes effect the next time gesture
// control is enabled.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Config returns the application configuration.
func (a *App) Config() Config {
	return a.config
}

// Seed returns the simulation seed.
func (a *App) Seed() int64 {
	return a.seed
}

// Intents returns the capture-to-simulation hand-off.
func (a *App) Intents() *Intents {
	return a.intents
}

// Tick applies pending input and advances the simulation one step.
func (a *App) Tick() game.StepReport {
	shots, state := a.intents.Drain()

	a.worldMu.Lock()
	defer a.worldMu.Unlock()

	for _, ev := range shots {
		if a.world.Fire(ev.Angle, a.config.Game.GesturePower) {
			a.usedGesture = true
			a.play(audio.EffectShot)
		}
	}

	if state.Aiming {
		a.world.SetAim(state.AimAngle, a.config.Game.ShootRange())
		a.gestureAiming = true
	} else if a.gestureAiming {
		a.world.ClearAim()
		a.gestureAiming = false
	}

	if a.moveCooldown > 0 {
		a.moveCooldown--
	}
	if !state.Direction.IsIdle() && a.moveCooldown == 0 {
		if a.world.MovePlayer(state.Direction.DX, state.Direction.DY) {
			a.moveCooldown = a.config.Gesture.MoveInterval
			a.usedGesture = true
		}
	}

	report := a.world.Step()

	if report.Hits > report.Kills {
		a.play(audio.EffectHit)
	}
	if report.Kills > 0 {
		a.play(audio.EffectKill)
	}
	if report.LevelCompleted {
		a.play(audio.EffectLevelComplete)
		log.Printf("Level %d completed", a.world.Round())
		a.finishRound()
	}

	return report
}

// Run drives Tick at the configured tick rate until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	rate := a.config.Game.TickRate
	if rate <= 0 {
		rate = game.DefaultTickRate
	}

	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			a.Tick()
		}
	}
}

// Move moves the player one cell.
func (a *App) Move(dx, dy int) bool {
	a.worldMu.Lock()
	defer a.worldMu.Unlock()
	return a.world.MovePlayer(dx, dy)
}

// Fire shoots from the player at angleDeg with the given power.
func (a *App) Fire(angleDeg, power float64) bool {
	a.worldMu.Lock()
	defer a.worldMu.Unlock()

	if !a.world.Fire(angleDeg, power) {
		return false
	}
	a.play(audio.EffectShot)
	return true
}

// FireAt shoots toward the screen point (x, y) with power equal to the
// distance from the player. Points closer than PointerMinPower fire nothing.
func (a *App) FireAt(x, y float64) bool {
	a.worldMu.Lock()
	defer a.worldMu.Unlock()

	angle, distance := game.PointerAim(a.world.PlayerCenter(), x, y)
	if distance <= a.config.Game.PointerMinPower {
		return false
	}
	if !a.world.Fire(angle, distance) {
		return false
	}
	a.play(audio.EffectShot)
	return true
}

// AimAt shows the aim line toward the screen point (x, y), clamped to range.
func (a *App) AimAt(x, y float64) {
	a.worldMu.Lock()
	defer a.worldMu.Unlock()

	angle, distance := game.PointerAim(a.world.PlayerCenter(), x, y)
	a.world.SetAim(angle, math.Min(distance, a.config.Game.ShootRange()))
	a.gestureAiming = false
}

// ClearAim hides the aim line.
func (a *App) ClearAim() {
	a.worldMu.Lock()
	defer a.worldMu.Unlock()
	a.world.ClearAim()
	a.gestureAiming = false
}

// Respawn ends the current round and starts a new one.
func (a *App) Respawn() int {
	a.worldMu.Lock()
	defer a.worldMu.Unlock()

	a.finishRound()
	n := a.world.Respawn()
	a.gestureAiming = false
	a.startRound()

	log.Printf("Round %d started with %d monsters", a.world.Round(), n)
	return n
}

// Snapshot returns a copy of the world state.
func (a *App) Snapshot() game.Snapshot {
	a.worldMu.Lock()
	defer a.worldMu.Unlock()
	return a.world.Snapshot()
}

// Status returns the gesture state and round counters.
func (a *App) Status() Status {
	active := a.GestureActive()

	a.worldMu.Lock()
	stats := a.world.Stats()
	a.worldMu.Unlock()

	return Status{
		GestureActive: active,
		Intent:        a.intents.Latest(),
		Stats:         stats,
	}
}

// WithWorld runs fn with exclusive access to the world.
func (a *App) WithWorld(fn func(w *game.World)) {
	a.worldMu.Lock()
	defer a.worldMu.Unlock()
	fn(a.world)
}

// LatestFrame returns the most recent annotated camera frame as JPEG,
// or nil when gesture control has not produced one.
func (a *App) LatestFrame() []byte {
	a.frameMu.RLock()
	defer a.frameMu.RUnlock()
	return a.frame
}

func (a *App) setFrame(jpeg []byte) {
	a.frameMu.Lock()
	defer a.frameMu.Unlock()
	a.frame = jpeg
}

// Close stops gesture control, records the current round and releases
// the detector. It is safe to call more than once.
func (a *App) Close() error {
	var err error
	a.closeOnce.Do(func() {
		a.mu.Lock()
		a.closed = true
		a.mu.Unlock()

		a.toggles.Wait()
		a.DisableGesture()

		a.worldMu.Lock()
		a.finishRound()
		a.worldMu.Unlock()

		a.mu.Lock()
		if a.detector != nil {
			err = a.detector.Close()
		}
		a.mu.Unlock()

		a.preprocess.Close()
	})
	return err
}

func (a *App) play(effect audio.Effect) {
	if a.config.Sound != nil {
		a.config.Sound.Play(effect)
	}
}
