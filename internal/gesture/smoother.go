package gesture

// Point is a position in frame pixel coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Smoother keeps a bounded history of a tracked point and reports its mean.
// The oldest point is dropped when the history is full.
type Smoother struct {
	points   []Point
	capacity int
}

// NewSmoother creates a Smoother holding at most capacity points.
// Non-positive capacities use DefaultHistorySize.
func NewSmoother(capacity int) *Smoother {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &Smoother{
		points:   make([]Point, 0, capacity),
		capacity: capacity,
	}
}

// Observe records p and returns the mean of the held points.
func (s *Smoother) Observe(p Point) Point {
	if len(s.points) == s.capacity {
		copy(s.points, s.points[1:])
		s.points = s.points[:len(s.points)-1]
	}
	s.points = append(s.points, p)

	mean, _ := s.Smoothed()
	return mean
}

// Smoothed returns the mean of the held points. The second value is false
// when nothing has been observed yet.
func (s *Smoother) Smoothed() (Point, bool) {
	if len(s.points) == 0 {
		return Point{}, false
	}

	var sum Point
	for _, p := range s.points {
		sum.X += p.X
		sum.Y += p.Y
	}
	n := float64(len(s.points))
	return Point{X: sum.X / n, Y: sum.Y / n}, true
}

// Len returns the number of held points.
func (s *Smoother) Len() int {
	return len(s.points)
}
