package game

import "math"

// ShotVelocity converts an aim angle and power into a per-tick velocity.
// Angles are degrees, counter-clockwise with y up, so the screen y
// component is negated. Speed is power/20 capped at 10 pixels per tick.
func ShotVelocity(angleDeg, power float64) Vec2 {
	speed := math.Min(power/powerPerSpeed, maxSpeed)
	rad := angleDeg * math.Pi / 180
	return Vec2{
		X: math.Cos(rad) * speed,
		Y: -math.Sin(rad) * speed,
	}
}

// PointerAim returns the angle from a point to the pointer at (x, y) in the
// same convention as ShotVelocity, and the pixel distance between them.
func PointerAim(from Vec2, x, y float64) (angleDeg, distance float64) {
	dx := x - from.X
	dy := y - from.Y
	distance = math.Hypot(dx, dy)
	if distance == 0 {
		return 0, 0
	}

	angleDeg = math.Atan2(-dy, dx) * 180 / math.Pi
	if angleDeg < 0 {
		angleDeg += 360
	}
	if angleDeg >= 360 {
		angleDeg -= 360
	}
	return angleDeg, distance
}

// AimLineAt returns the end of a line of the given length from from along angleDeg.
func AimLineAt(from Vec2, angleDeg, length float64) Vec2 {
	rad := angleDeg * math.Pi / 180
	return Vec2{
		X: from.X + math.Cos(rad)*length,
		Y: from.Y - math.Sin(rad)*length,
	}
}

// AimLineTo returns the end of a line from from toward (x, y), clamped to maxLength.
func AimLineTo(from Vec2, x, y, maxLength float64) Vec2 {
	angle, distance := PointerAim(from, x, y)
	if distance <= maxLength {
		return Vec2{X: x, Y: y}
	}
	return AimLineAt(from, angle, maxLength)
}
