package gesture

import (
	"time"

	"github.com/ayusman/gridshot/internal/detector"
)

// Result is the outcome of processing one frame.
type Result struct {
	Tracked   bool         `json:"tracked"`
	Reading   Reading      `json:"reading"`
	Smoothed  Point        `json:"smoothed"`
	Direction Direction    `json:"direction"`
	State     TriggerState `json:"state"`
	Shot      *ShootEvent  `json:"shot,omitempty"`
}

// Controller owns the per-session gesture state and runs the classifier,
// trigger, smoother and direction intent for each frame.
// It is not safe for concurrent use; the capture loop owns it.
type Controller struct {
	config     Config
	classifier *Classifier
	trigger    *ShootTrigger
	smoother   *Smoother
	direction  *DirectionIntent
}

// NewController creates a Controller with fresh state.
func NewController(config Config) *Controller {
	return &Controller{
		config:     config,
		classifier: NewClassifier(config),
		trigger:    NewShootTrigger(config.ShootCooldown),
		smoother:   NewSmoother(config.HistorySize),
		direction:  NewDirectionIntent(config),
	}
}

// Process handles one frame. A nil hand leaves the trigger and history
// untouched and reports an idle direction.
func (c *Controller) Process(hand *detector.HandLandmarks, width, height int, now time.Time) Result {
	if hand == nil {
		return Result{State: c.trigger.State()}
	}

	reading := c.classifier.Classify(hand, width, height)

	res := Result{
		Tracked: true,
		Reading: reading,
	}

	if ev, ok := c.trigger.Update(reading.AimPose, reading.AimAngle, now); ok {
		res.Shot = &ev
	}
	res.State = c.trigger.State()

	res.Smoothed = c.smoother.Observe(reading.Index)
	center := Point{X: float64(width / 2), Y: float64(height / 2)}
	res.Direction = c.direction.Update(res.Smoothed, center, now)

	return res
}

// Config returns the controller's configuration.
func (c *Controller) Config() Config {
	return c.config
}
