// Package gesture turns per-frame hand landmarks into aim, shoot and
// movement intents.
package gesture

import "time"

// Default tuning values for the gesture pipeline.
const (
	DefaultHistorySize           = 5
	DefaultDeadZone              = 50.0
	DefaultMovementThreshold     = 50.0
	DefaultDirectionHold         = 100 * time.Millisecond
	DefaultShootCooldown         = 500 * time.Millisecond
	DefaultMinFingerAngle        = 60.0
	DefaultMaxFingerAngle        = 120.0
	DefaultMinThumbIndexDistance = 60.0
	DefaultMoveInterval          = 6 // ticks
)

// Config holds the thresholds used by the classifier, trigger and direction intent.
// Distances are in frame pixels and angles in degrees.
type Config struct {
	HistorySize           int           `yaml:"history_size"`
	DeadZone              float64       `yaml:"dead_zone"`
	MovementThreshold     float64       `yaml:"movement_threshold"`
	DirectionHold         time.Duration `yaml:"direction_hold"`
	ShootCooldown         time.Duration `yaml:"shoot_cooldown"`
	MinFingerAngle        float64       `yaml:"min_finger_angle"`
	MaxFingerAngle        float64       `yaml:"max_finger_angle"`
	MinThumbIndexDistance float64       `yaml:"min_thumb_index_distance"`

	// MoveInterval is the minimum number of simulation ticks between two
	// player moves driven by the direction intent.
	MoveInterval int `yaml:"move_interval"`
}

// DefaultConfig returns the default gesture configuration.
func DefaultConfig() Config {
	return Config{
		HistorySize:           DefaultHistorySize,
		DeadZone:              DefaultDeadZone,
		MovementThreshold:     DefaultMovementThreshold,
		DirectionHold:         DefaultDirectionHold,
		ShootCooldown:         DefaultShootCooldown,
		MinFingerAngle:        DefaultMinFingerAngle,
		MaxFingerAngle:        DefaultMaxFingerAngle,
		MinThumbIndexDistance: DefaultMinThumbIndexDistance,
		MoveInterval:          DefaultMoveInterval,
	}
}
