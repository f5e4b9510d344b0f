package tray

import (
	"testing"

	"github.com/ayusman/gridshot/internal/app"
	"github.com/ayusman/gridshot/internal/game"
)

func TestTray_Callbacks(t *testing.T) {
	tr := New()

	active := false
	tr.OnToggle(func() bool {
		active = !active
		return active
	})

	respawns := 0
	tr.OnRespawn(func() { respawns++ })

	tr.handleToggle()
	if !tr.GestureActive() {
		t.Error("toggle should show gesture control as active")
	}
	tr.handleToggle()
	if tr.GestureActive() {
		t.Error("second toggle should show gesture control as inactive")
	}

	tr.handleRespawn()
	if respawns != 1 {
		t.Errorf("respawn callback ran %d times, want 1", respawns)
	}
}

func TestTray_NoCallbacks(t *testing.T) {
	tr := New()

	tr.handleToggle()
	tr.handleRespawn()

	if tr.GestureActive() {
		t.Error("toggle without a callback should not change state")
	}
}

func TestFormatStatus(t *testing.T) {
	tests := []struct {
		name   string
		status app.Status
		want   string
	}{
		{
			name:   "in progress",
			status: app.Status{Stats: game.RoundStats{Round: 2, Spawned: 9, Remaining: 4, Shots: 12}},
			want:   "Round 2: 4/9 left, 12 shots",
		},
		{
			name:   "cleared",
			status: app.Status{Stats: game.RoundStats{Round: 3, Spawned: 5, Kills: 5, Shots: 7, Completed: true}},
			want:   "Round 3 cleared: 5 kills, 7 shots",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatStatus(tt.status); got != tt.want {
				t.Errorf("FormatStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTray_SetStatus(t *testing.T) {
	tr := New()
	tr.SetStatus(app.Status{Stats: game.RoundStats{Round: 1, Spawned: 6, Remaining: 6}})

	if got := tr.Status(); got != "Round 1: 6/6 left, 0 shots" {
		t.Errorf("Status() = %q", got)
	}
}
