package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results. It is safe to
// reconfigure while a pipeline goroutine is calling Detect.
type MockDetector struct {
	mu     sync.Mutex
	hands  []HandLandmarks
	err    error
	calls  int
	closes int
	block  <-chan struct{}
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times Detect has been called.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// SetBlock makes Detect wait until ch is closed, like a detector service
// that stopped answering. A nil ch stops blocking for later calls.
func (m *MockDetector) SetBlock(ch <-chan struct{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.block = ch
}

// Closes returns how many times Close has been called.
func (m *MockDetector) Closes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closes
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	m.calls++
	block := m.block
	m.mu.Unlock()

	if block != nil {
		<-block
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close records the call.
func (m *MockDetector) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closes++
	return nil
}

// FingerGunLandmarks returns a right hand in the aim pose: index finger
// pointing straight up, thumb spread out to the side, other fingers curled.
// At 640x480 the thumb/index angle at the wrist is about 73 degrees and the
// fingertips are about 230px apart.
func FingerGunLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	landmarks.Points[Wrist] = Point3D{X: 0.50, Y: 0.80}

	landmarks.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.77}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.74}
	landmarks.Points[ThumbIP] = Point3D{X: 0.69, Y: 0.72}
	landmarks.Points[ThumbTip] = Point3D{X: 0.75, Y: 0.70}

	landmarks.Points[IndexMCP] = Point3D{X: 0.50, Y: 0.62}
	landmarks.Points[IndexPIP] = Point3D{X: 0.50, Y: 0.50}
	landmarks.Points[IndexDIP] = Point3D{X: 0.50, Y: 0.42}
	landmarks.Points[IndexTip] = Point3D{X: 0.50, Y: 0.35}

	landmarks.Points[MiddleMCP] = Point3D{X: 0.45, Y: 0.63}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.45, Y: 0.60}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.46, Y: 0.65}
	landmarks.Points[MiddleTip] = Point3D{X: 0.46, Y: 0.68}

	landmarks.Points[RingMCP] = Point3D{X: 0.41, Y: 0.65}
	landmarks.Points[RingPIP] = Point3D{X: 0.41, Y: 0.62}
	landmarks.Points[RingDIP] = Point3D{X: 0.42, Y: 0.67}
	landmarks.Points[RingTip] = Point3D{X: 0.42, Y: 0.70}

	landmarks.Points[PinkyMCP] = Point3D{X: 0.37, Y: 0.68}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.37, Y: 0.66}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.38, Y: 0.70}
	landmarks.Points[PinkyTip] = Point3D{X: 0.38, Y: 0.72}

	return landmarks
}

// OpenPalmLandmarks returns a right hand with every finger extended.
// The middle finger is straight, so this never satisfies the aim pose.
func OpenPalmLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	landmarks.Points[Wrist] = Point3D{X: 0.5, Y: 0.8}

	landmarks.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70}
	landmarks.Points[ThumbIP] = Point3D{X: 0.68, Y: 0.65}
	landmarks.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.60}

	landmarks.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68}
	landmarks.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.55}
	landmarks.Points[IndexDIP] = Point3D{X: 0.58, Y: 0.45}
	landmarks.Points[IndexTip] = Point3D{X: 0.58, Y: 0.35}

	landmarks.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.52}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.40}
	landmarks.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.28}

	landmarks.Points[RingMCP] = Point3D{X: 0.45, Y: 0.68}
	landmarks.Points[RingPIP] = Point3D{X: 0.43, Y: 0.55}
	landmarks.Points[RingDIP] = Point3D{X: 0.42, Y: 0.45}
	landmarks.Points[RingTip] = Point3D{X: 0.42, Y: 0.35}

	landmarks.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.37, Y: 0.60}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.35, Y: 0.50}
	landmarks.Points[PinkyTip] = Point3D{X: 0.34, Y: 0.42}

	return landmarks
}

// FistLandmarks returns a closed right hand: every fingertip sits below its
// middle joint, so the index finger does not count as extended.
func FistLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.9,
	}

	landmarks.Points[Wrist] = Point3D{X: 0.50, Y: 0.80}

	landmarks.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.76}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.57, Y: 0.71}
	landmarks.Points[ThumbIP] = Point3D{X: 0.55, Y: 0.67}
	landmarks.Points[ThumbTip] = Point3D{X: 0.52, Y: 0.66}

	landmarks.Points[IndexMCP] = Point3D{X: 0.54, Y: 0.64}
	landmarks.Points[IndexPIP] = Point3D{X: 0.54, Y: 0.60}
	landmarks.Points[IndexDIP] = Point3D{X: 0.53, Y: 0.64}
	landmarks.Points[IndexTip] = Point3D{X: 0.52, Y: 0.67}

	landmarks.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.63}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.59}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.49, Y: 0.63}
	landmarks.Points[MiddleTip] = Point3D{X: 0.48, Y: 0.66}

	landmarks.Points[RingMCP] = Point3D{X: 0.46, Y: 0.64}
	landmarks.Points[RingPIP] = Point3D{X: 0.46, Y: 0.61}
	landmarks.Points[RingDIP] = Point3D{X: 0.45, Y: 0.65}
	landmarks.Points[RingTip] = Point3D{X: 0.45, Y: 0.67}

	landmarks.Points[PinkyMCP] = Point3D{X: 0.42, Y: 0.66}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.42, Y: 0.63}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.41, Y: 0.66}
	landmarks.Points[PinkyTip] = Point3D{X: 0.41, Y: 0.68}

	return landmarks
}
