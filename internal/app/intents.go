package app

import (
	"sync"

	"github.com/ayusman/gridshot/internal/gesture"
)

// IntentState is the latest continuous input from the gesture loop.
type IntentState struct {
	Tracked   bool              `json:"tracked"`
	Aiming    bool              `json:"aiming"`
	AimAngle  float64           `json:"aim_angle"`
	Direction gesture.Direction `json:"direction"`
}

// Intents is the hand-off between the capture loop and the simulation loop.
// Shoot events queue until drained so each one is applied exactly once;
// direction and aim are overwritten by every frame.
type Intents struct {
	mu     sync.Mutex
	shots  []gesture.ShootEvent
	latest IntentState
}

// NewIntents creates an empty Intents.
func NewIntents() *Intents {
	return &Intents{}
}

// Post records the outcome of one processed frame.
func (i *Intents) Post(res gesture.Result) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if res.Shot != nil {
		i.shots = append(i.shots, *res.Shot)
	}

	if !res.Tracked {
		i.latest = IntentState{}
		return
	}
	i.latest = IntentState{
		Tracked:   true,
		Aiming:    res.Reading.AimPose,
		AimAngle:  res.Reading.AimAngle,
		Direction: res.Direction,
	}
}

// Drain returns and clears the queued shoot events together with the latest state.
func (i *Intents) Drain() ([]gesture.ShootEvent, IntentState) {
	i.mu.Lock()
	defer i.mu.Unlock()

	shots := i.shots
	i.shots = nil
	return shots, i.latest
}

// Latest returns the latest state without draining shots.
func (i *Intents) Latest() IntentState {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.latest
}

// Reset clears the continuous state. Queued shots are kept so that a shot
// made just before gesture control stops is still applied.
func (i *Intents) Reset() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.latest = IntentState{}
}
