package gesture

import (
	"testing"
	"time"
)

var center = Point{X: 320, Y: 240}

func TestDirectionIntent_Single(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		want Direction
	}{
		{name: "centre", p: center, want: Idle},
		{name: "inside dead zone", p: Point{X: 369, Y: 191}, want: Idle},
		{name: "right", p: Point{X: 400, Y: 240}, want: Right},
		{name: "left", p: Point{X: 240, Y: 240}, want: Left},
		{name: "up", p: Point{X: 320, Y: 160}, want: Up},
		{name: "down", p: Point{X: 320, Y: 320}, want: Down},
		{name: "horizontal dominates", p: Point{X: 400, Y: 300}, want: Right},
		{name: "vertical dominates", p: Point{X: 380, Y: 320}, want: Down},
		{name: "tie goes vertical", p: Point{X: 240, Y: 160}, want: Up},
		{name: "on the threshold", p: Point{X: 370, Y: 240}, want: Idle},
		{name: "minor axis ignored", p: Point{X: 330, Y: 300}, want: Down},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDirectionIntent(DefaultConfig())
			if got := d.Update(tt.p, center, time.Unix(0, 0)); got != tt.want {
				t.Errorf("Update(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestDirectionIntent_Hysteresis(t *testing.T) {
	d := NewDirectionIntent(DefaultConfig())
	t0 := time.Unix(100, 0)
	right := Point{X: 420, Y: 240}
	left := Point{X: 220, Y: 240}

	if got := d.Update(right, center, t0); got != Right {
		t.Fatalf("first read = %v, want right", got)
	}
	if got := d.Update(left, center, t0.Add(50*time.Millisecond)); got != Right {
		t.Errorf("flip inside hold = %v, want right held", got)
	}
	if got := d.Update(left, center, t0.Add(150*time.Millisecond)); got != Left {
		t.Errorf("flip after hold = %v, want left", got)
	}
}

func TestDirectionIntent_DeadZoneResetsHysteresis(t *testing.T) {
	d := NewDirectionIntent(DefaultConfig())
	t0 := time.Unix(100, 0)

	d.Update(Point{X: 420, Y: 240}, center, t0)

	if got := d.Update(center, center, t0.Add(10*time.Millisecond)); got != Idle {
		t.Errorf("dead zone after strong read = %v, want idle", got)
	}
	if d.Last() != Idle {
		t.Errorf("Last() = %v after dead zone, want idle", d.Last())
	}
	if got := d.Update(Point{X: 220, Y: 240}, center, t0.Add(20*time.Millisecond)); got != Left {
		t.Errorf("read after dead zone = %v, want left without waiting for hold", got)
	}
}

func TestDirectionIntent_HoldMeasuredFromFirstEmission(t *testing.T) {
	d := NewDirectionIntent(DefaultConfig())
	t0 := time.Unix(100, 0)
	right := Point{X: 420, Y: 240}

	d.Update(right, center, t0)
	d.Update(right, center, t0.Add(90*time.Millisecond))
	d.Update(right, center, t0.Add(180*time.Millisecond))

	if got := d.Update(Point{X: 320, Y: 340}, center, t0.Add(190*time.Millisecond)); got != Down {
		t.Errorf("Update() = %v, want down: repeating right must not restart the hold", got)
	}
}

func TestDirectionIntent_BelowThresholdHeld(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MovementThreshold = 100
	d := NewDirectionIntent(cfg)
	t0 := time.Unix(100, 0)

	d.Update(Point{X: 450, Y: 240}, center, t0)

	if got := d.Update(Point{X: 400, Y: 240}, center, t0.Add(30*time.Millisecond)); got != Right {
		t.Errorf("weak read inside hold = %v, want right", got)
	}
	if got := d.Update(Point{X: 400, Y: 240}, center, t0.Add(200*time.Millisecond)); got != Idle {
		t.Errorf("weak read after hold = %v, want idle", got)
	}
}

func TestDirection_String(t *testing.T) {
	tests := map[Direction]string{
		Idle:           "idle",
		Up:             "up",
		Down:           "down",
		Left:           "left",
		Right:          "right",
		{DX: 1, DY: 1}: "invalid",
	}
	for d, want := range tests {
		if got := d.String(); got != want {
			t.Errorf("%+v.String() = %q, want %q", d, got, want)
		}
	}
}
