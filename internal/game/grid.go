package game

import "math"

// GridPosition is an integer cell coordinate.
type GridPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Step returns the neighbouring cell dx, dy away.
func (p GridPosition) Step(dx, dy int) GridPosition {
	return GridPosition{X: p.X + dx, Y: p.Y + dy}
}

// Vec2 is a position or velocity in screen pixels. Y grows downward.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Manhattan returns |X| + |Y|.
func (v Vec2) Manhattan() float64 {
	return math.Abs(v.X) + math.Abs(v.Y)
}

// InBounds reports whether p is a cell of the grid.
func (c Config) InBounds(p GridPosition) bool {
	return p.X >= 0 && p.X < c.GridWidth() && p.Y >= 0 && p.Y < c.GridHeight()
}

// OnScreen reports whether v lies inside the screen rectangle, edges included.
func (c Config) OnScreen(v Vec2) bool {
	return v.X >= 0 && v.X <= float64(c.ScreenWidth) && v.Y >= 0 && v.Y <= float64(c.ScreenHeight)
}

// CellCenter returns the pixel centre of cell p.
func (c Config) CellCenter(p GridPosition) Vec2 {
	half := float64(c.TileSize) / 2
	return Vec2{
		X: float64(p.X*c.TileSize) + half,
		Y: float64(p.Y*c.TileSize) + half,
	}
}

// CellAt returns the cell containing pixel v. The result may be out of bounds.
func (c Config) CellAt(v Vec2) GridPosition {
	tile := float64(c.TileSize)
	return GridPosition{
		X: int(math.Floor(v.X / tile)),
		Y: int(math.Floor(v.Y / tile)),
	}
}
