// Package detector provides hand landmark detection for the gesture pipeline.
package detector

import "math"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D is a landmark position in normalized image coordinates.
// X and Y are in [0,1] relative to the frame, Z is relative depth.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks holds the 21 landmarks of one tracked hand.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// Pixel converts the landmark at index into pixel coordinates of a frame
// with the given dimensions. Coordinates are truncated to whole pixels.
// Out-of-range indices return the origin.
func (h *HandLandmarks) Pixel(index, width, height int) (x, y float64) {
	if h == nil || index < 0 || index >= NumLandmarks {
		return 0, 0
	}
	p := h.Points[index]
	return math.Trunc(p.X * float64(width)), math.Trunc(p.Y * float64(height))
}

// Above reports whether landmark a is higher in the image than landmark b.
// Image y grows downward, so "higher" means a smaller normalized y.
func (h *HandLandmarks) Above(a, b int) bool {
	if h == nil || a < 0 || b < 0 || a >= NumLandmarks || b >= NumLandmarks {
		return false
	}
	return h.Points[a].Y < h.Points[b].Y
}
