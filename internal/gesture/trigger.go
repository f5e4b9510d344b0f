package gesture

import "time"

// TriggerState is the state of a ShootTrigger.
type TriggerState int

const (
	StateIdle TriggerState = iota
	StateAiming
)

func (s TriggerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAiming:
		return "aiming"
	default:
		return "unknown"
	}
}

// ShootEvent is emitted when the aim pose is released outside the cooldown.
type ShootEvent struct {
	Angle float64   `json:"angle"`
	At    time.Time `json:"at"`
}

// ShootTrigger fires once on each aim-to-release edge. Releases within the
// cooldown of the previous shot return to idle without firing.
type ShootTrigger struct {
	state    TriggerState
	cooldown time.Duration
	lastShot time.Time
	fired    bool
}

// NewShootTrigger creates an idle trigger.
func NewShootTrigger(cooldown time.Duration) *ShootTrigger {
	if cooldown < 0 {
		cooldown = 0
	}
	return &ShootTrigger{cooldown: cooldown}
}

// Update feeds the pose of the current frame. It returns the shoot event and
// true only on a release that is outside the cooldown window.
func (t *ShootTrigger) Update(aimPose bool, angle float64, now time.Time) (ShootEvent, bool) {
	if aimPose {
		t.state = StateAiming
		return ShootEvent{}, false
	}

	if t.state != StateAiming {
		return ShootEvent{}, false
	}
	t.state = StateIdle

	if t.fired && now.Sub(t.lastShot) <= t.cooldown {
		return ShootEvent{}, false
	}

	t.fired = true
	t.lastShot = now
	return ShootEvent{Angle: angle, At: now}, true
}

// State returns the current trigger state.
func (t *ShootTrigger) State() TriggerState {
	return t.state
}

// LastShot returns the time of the last emitted event and whether one was emitted.
func (t *ShootTrigger) LastShot() (time.Time, bool) {
	return t.lastShot, t.fired
}
