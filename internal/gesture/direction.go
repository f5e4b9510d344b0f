package gesture

import (
	"math"
	"time"
)

// Direction is a unit grid step. The zero value is Idle.
type Direction struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// Movement intents. Screen y grows downward, so Up is negative DY.
var (
	Idle  = Direction{}
	Up    = Direction{DX: 0, DY: -1}
	Down  = Direction{DX: 0, DY: 1}
	Left  = Direction{DX: -1, DY: 0}
	Right = Direction{DX: 1, DY: 0}
)

// IsIdle reports whether d is the no-movement intent.
func (d Direction) IsIdle() bool {
	return d == Idle
}

func (d Direction) String() string {
	switch d {
	case Idle:
		return "idle"
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "invalid"
	}
}

// DirectionIntent maps a smoothed fingertip position to a movement intent
// relative to the frame centre, holding the previous intent briefly so a
// single noisy frame cannot reverse direction.
type DirectionIntent struct {
	deadZone  float64
	threshold float64
	hold      time.Duration

	last   Direction
	lastAt time.Time
}

// NewDirectionIntent creates a DirectionIntent from config.
func NewDirectionIntent(config Config) *DirectionIntent {
	return &DirectionIntent{
		deadZone:  config.DeadZone,
		threshold: config.MovementThreshold,
		hold:      config.DirectionHold,
	}
}

// Update returns the intent for position p given the frame centre.
func (d *DirectionIntent) Update(p, center Point, now time.Time) Direction {
	dx := p.X - center.X
	dy := p.Y - center.Y

	if math.Abs(dx) < d.deadZone && math.Abs(dy) < d.deadZone {
		d.last = Idle
		d.lastAt = time.Time{}
		return Idle
	}

	next := Idle
	if math.Abs(dx) > math.Abs(dy) {
		if math.Abs(dx) > d.threshold {
			next = Direction{DX: sign(dx)}
		}
	} else if math.Abs(dy) > d.threshold {
		next = Direction{DY: sign(dy)}
	}

	if !d.last.IsIdle() && next != d.last && now.Sub(d.lastAt) < d.hold {
		return d.last
	}

	if !next.IsIdle() && next != d.last {
		d.last = next
		d.lastAt = now
	}
	return next
}

// Last returns the most recently accepted non-idle intent.
func (d *DirectionIntent) Last() Direction {
	return d.last
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}
