package gesture

import (
	"math"

	"github.com/ayusman/gridshot/internal/detector"
)

// Reading is the geometric summary of one frame's hand.
type Reading struct {
	AimPose            bool    `json:"aim_pose"`
	AimAngle           float64 `json:"aim_angle"`
	FingerAngle        float64 `json:"finger_angle"`
	ThumbIndexDistance float64 `json:"thumb_index_distance"`
	IndexExtended      bool    `json:"index_extended"`
	MiddleBent         bool    `json:"middle_bent"`

	Wrist     Point `json:"wrist"`
	Thumb     Point `json:"thumb"`
	Index     Point `json:"index"`
	IndexBase Point `json:"index_base"`
}

// Classifier decides whether a hand is in the aim pose: index finger up,
// middle finger bent, thumb held out at roughly a right angle.
type Classifier struct {
	config Config
}

// NewClassifier creates a Classifier with the given thresholds.
func NewClassifier(config Config) *Classifier {
	return &Classifier{config: config}
}

// Classify measures hand in a frame of width x height pixels.
// A nil hand yields the zero Reading.
func (c *Classifier) Classify(hand *detector.HandLandmarks, width, height int) Reading {
	if hand == nil {
		return Reading{}
	}

	pixel := func(index int) Point {
		x, y := hand.Pixel(index, width, height)
		return Point{X: x, Y: y}
	}

	r := Reading{
		Wrist:     pixel(detector.Wrist),
		Thumb:     pixel(detector.ThumbTip),
		Index:     pixel(detector.IndexTip),
		IndexBase: pixel(detector.IndexMCP),
	}

	r.FingerAngle = AngleAt(r.Thumb, r.Wrist, r.Index)
	r.AimAngle = DirectionAngle(r.IndexBase, r.Index)
	r.ThumbIndexDistance = math.Hypot(r.Index.X-r.Thumb.X, r.Index.Y-r.Thumb.Y)
	r.IndexExtended = hand.Above(detector.IndexTip, detector.IndexPIP)
	r.MiddleBent = hand.Above(detector.MiddlePIP, detector.MiddleTip)

	r.AimPose = r.IndexExtended &&
		r.MiddleBent &&
		r.FingerAngle > c.config.MinFingerAngle &&
		r.FingerAngle < c.config.MaxFingerAngle &&
		r.ThumbIndexDistance > c.config.MinThumbIndexDistance

	return r
}

// AngleAt returns the angle in degrees at vertex between the rays to a and b.
// Zero-length rays yield 0.
func AngleAt(a, vertex, b Point) float64 {
	ax, ay := a.X-vertex.X, a.Y-vertex.Y
	bx, by := b.X-vertex.X, b.Y-vertex.Y

	na := math.Hypot(ax, ay)
	nb := math.Hypot(bx, by)
	if na == 0 || nb == 0 {
		return 0
	}

	cos := (ax*bx + ay*by) / (na * nb)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

// DirectionAngle returns the direction from one point to another in degrees
// within [0,360). Screen y grows downward, so the angle is measured with y
// inverted and grows counter-clockwise.
func DirectionAngle(from, to Point) float64 {
	dx := to.X - from.X
	dy := to.Y - from.Y
	if dx == 0 && dy == 0 {
		return 0
	}

	angle := math.Atan2(-dy, dx) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}
	if angle >= 360 {
		angle -= 360
	}
	return angle
}
