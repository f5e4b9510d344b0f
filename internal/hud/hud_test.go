package hud

import (
	"strings"
	"testing"

	"github.com/ayusman/gridshot/internal/game"
)

func TestLines(t *testing.T) {
	snap := game.Snapshot{
		Round: 3,
		Stats: game.RoundStats{Round: 3, Spawned: 9, Remaining: 4, Shots: 11, Hits: 6, Kills: 5},
	}

	tests := []struct {
		name string
		info Info
		want string
	}{
		{"gesture off", Info{Snapshot: snap}, "Gesture: off (G)"},
		{"no hand", Info{Snapshot: snap, GestureActive: true}, "Gesture: no hand"},
		{"aiming", Info{Snapshot: snap, GestureActive: true, Tracked: true, Aiming: true}, "Gesture: READY TO SHOOT!"},
		{"moving", Info{Snapshot: snap, GestureActive: true, Tracked: true, Direction: "left"}, "Gesture: AIM... move left"},
		{"idle", Info{Snapshot: snap, GestureActive: true, Tracked: true, Direction: "idle"}, "Gesture: AIM..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := Lines(tt.info)
			if len(lines) != 4 {
				t.Fatalf("got %d lines, want 4: %q", len(lines), lines)
			}
			if lines[0] != "Round 3  Monsters 4/9" {
				t.Errorf("line 0 = %q", lines[0])
			}
			if lines[1] != "Shots 11  Hits 6  Kills 5" {
				t.Errorf("line 1 = %q", lines[1])
			}
			if lines[2] != tt.want {
				t.Errorf("gesture line = %q, want %q", lines[2], tt.want)
			}
		})
	}
}

func TestBanner(t *testing.T) {
	if _, ok := Banner(game.Snapshot{}); ok {
		t.Error("no banner expected while monsters remain")
	}

	msg, ok := Banner(game.Snapshot{LevelCompleted: true})
	if !ok || !strings.Contains(msg, "LEVEL COMPLETE") {
		t.Errorf("Banner() = %q, %v", msg, ok)
	}
}

func TestHealthBar(t *testing.T) {
	m := game.MonsterView{Pos: game.GridPosition{X: 2, Y: 1}, Health: 3, MaxHealth: 6, HealthRatio: 0.5}
	bar := HealthBar(m, 80)

	if bar.X != 168 || bar.Y != 84 {
		t.Errorf("bar origin = (%v,%v), want (168,84)", bar.X, bar.Y)
	}
	if bar.W != 64 || bar.Fill != 32 {
		t.Errorf("bar width = %v fill = %v, want 64 and 32", bar.W, bar.Fill)
	}

	m.HealthRatio = 1.5
	if got := HealthBar(m, 80).Fill; got != 64 {
		t.Errorf("over-full bar fill = %v, want clamped 64", got)
	}
}

func TestMarkerAlpha(t *testing.T) {
	tests := []struct {
		ttl, max int
		want     uint8
	}{
		{30, 30, 100},
		{15, 30, 50},
		{1, 30, 3},
		{0, 30, 0},
		{40, 30, 100},
		{5, 0, 0},
	}

	for _, tt := range tests {
		if got := MarkerAlpha(tt.ttl, tt.max); got != tt.want {
			t.Errorf("MarkerAlpha(%d,%d) = %d, want %d", tt.ttl, tt.max, got, tt.want)
		}
	}
}

func TestSpriteScale(t *testing.T) {
	sx, sy := SpriteScale(40, 160, 80)
	if sx != 2 || sy != 0.5 {
		t.Errorf("SpriteScale(40,160,80) = (%v,%v), want (2,0.5)", sx, sy)
	}

	sx, sy = SpriteScale(0, 0, 80)
	if sx != 1 || sy != 1 {
		t.Errorf("SpriteScale of empty image = (%v,%v), want (1,1)", sx, sy)
	}
}
