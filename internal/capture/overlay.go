package capture

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"
)

// aimArrowLength is the length in pixels of the aim arrow drawn from the index fingertip.
const aimArrowLength = 120

var (
	colorWhite   = color.RGBA{R: 255, G: 255, B: 255, A: 0}
	colorMagenta = color.RGBA{R: 255, G: 0, B: 255, A: 0}
	colorYellow  = color.RGBA{R: 255, G: 255, B: 0, A: 0}
	colorCyan    = color.RGBA{R: 0, G: 255, B: 255, A: 0}
	colorGreen   = color.RGBA{R: 0, G: 255, B: 0, A: 0}
	colorRed     = color.RGBA{R: 255, G: 0, B: 0, A: 0}
	colorBlue    = color.RGBA{R: 0, G: 0, B: 255, A: 0}
	colorGray    = color.RGBA{R: 100, G: 100, B: 100, A: 0}
	colorHint    = color.RGBA{R: 200, G: 200, B: 200, A: 0}
)

// Overlay describes the gesture diagnostics drawn on a preview frame.
// Points are in frame pixel coordinates.
type Overlay struct {
	Tracked     bool
	Aiming      bool
	Shot        bool
	Wrist       image.Point
	Thumb       image.Point
	Index       image.Point
	AimAngle    float64 // degrees, counter-clockwise with y up
	FingerAngle float64 // degrees
	DeadZone    int     // half-size of the centre box in pixels
}

// AimArrowEnd returns the end point of the aim arrow starting at from.
// The angle grows counter-clockwise, so the screen y offset is negated.
func AimArrowEnd(from image.Point, angleDeg float64, length int) image.Point {
	rad := angleDeg * math.Pi / 180
	return image.Point{
		X: from.X + int(float64(length)*math.Cos(rad)),
		Y: from.Y - int(float64(length)*math.Sin(rad)),
	}
}

// DrawOverlay annotates frame in place with the aiming diagnostics.
func DrawOverlay(frame *gocv.Mat, o Overlay) {
	if frame == nil || frame.Empty() {
		return
	}

	w, h := frame.Cols(), frame.Rows()

	if o.DeadZone > 0 {
		cx, cy := w/2, h/2
		box := image.Rect(cx-o.DeadZone, cy-o.DeadZone, cx+o.DeadZone, cy+o.DeadZone)
		gocv.Rectangle(frame, box, colorGray, 1)
	}

	if !o.Tracked {
		return
	}

	if o.Aiming {
		gocv.Line(frame, o.Wrist, o.Thumb, colorMagenta, 2)
		gocv.Line(frame, o.Wrist, o.Index, colorMagenta, 2)
		gocv.Line(frame, o.Thumb, o.Index, colorCyan, 2)

		gocv.Circle(frame, o.Wrist, 8, colorWhite, -1)
		gocv.Circle(frame, o.Thumb, 10, colorBlue, -1)
		gocv.Circle(frame, o.Index, 10, colorRed, -1)

		gocv.ArrowedLine(frame, o.Index, AimArrowEnd(o.Index, o.AimAngle, aimArrowLength), colorGreen, 4)

		gocv.PutText(frame, fmt.Sprintf("Finger Angle: %.1f", o.FingerAngle),
			image.Pt(10, 30), gocv.FontHersheySimplex, 0.6, colorWhite, 2)
		gocv.PutText(frame, fmt.Sprintf("Shoot Direction: %.1f", o.AimAngle),
			image.Pt(10, 55), gocv.FontHersheySimplex, 0.6, colorGreen, 2)
		gocv.PutText(frame, "READY TO SHOOT!", image.Pt(10, 80), gocv.FontHersheySimplex, 0.7, colorGreen, 2)
	} else {
		gocv.Circle(frame, o.Index, 8, colorYellow, -1)
		gocv.Circle(frame, o.Thumb, 6, colorYellow, -1)
		gocv.PutText(frame, "AIM...", image.Pt(10, 80), gocv.FontHersheySimplex, 0.7, colorCyan, 2)
	}

	if o.Shot {
		gocv.PutText(frame, "SHOOT!", image.Pt(w/2-50, h/2), gocv.FontHersheySimplex, 1.5, colorRed, 4)
	}

	gocv.PutText(frame, "Make L-shape: Index straight, thumb out, others bent",
		image.Pt(10, h-40), gocv.FontHersheySimplex, 0.5, colorHint, 1)
	gocv.PutText(frame, "Release gesture to shoot",
		image.Pt(10, h-20), gocv.FontHersheySimplex, 0.5, colorHint, 1)
}
