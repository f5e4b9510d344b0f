package app

import (
	"testing"
	"time"

	"github.com/ayusman/gridshot/internal/gesture"
)

func TestIntents_QueuesShotsUntilDrained(t *testing.T) {
	in := NewIntents()
	now := time.Now()

	in.Post(gesture.Result{Tracked: true, Shot: &gesture.ShootEvent{Angle: 90, At: now}})
	in.Post(gesture.Result{Tracked: true})
	in.Post(gesture.Result{Tracked: true, Shot: &gesture.ShootEvent{Angle: 45, At: now.Add(time.Second)}})

	shots, _ := in.Drain()
	if len(shots) != 2 {
		t.Fatalf("Drain() returned %d shots, want 2", len(shots))
	}
	if shots[0].Angle != 90 || shots[1].Angle != 45 {
		t.Errorf("shots out of order: %+v", shots)
	}

	shots, _ = in.Drain()
	if len(shots) != 0 {
		t.Errorf("second Drain() returned %d shots, want 0", len(shots))
	}
}

func TestIntents_LatestState(t *testing.T) {
	in := NewIntents()

	in.Post(gesture.Result{
		Tracked:   true,
		Reading:   gesture.Reading{AimPose: true, AimAngle: 135},
		Direction: gesture.Left,
	})

	_, state := in.Drain()
	if !state.Tracked || !state.Aiming || state.AimAngle != 135 || state.Direction != gesture.Left {
		t.Errorf("unexpected state after tracked frame: %+v", state)
	}

	// Direction and aim survive a drain.
	if got := in.Latest(); got != state {
		t.Errorf("Latest() = %+v, want %+v", got, state)
	}

	in.Post(gesture.Result{})
	if got := in.Latest(); got != (IntentState{}) {
		t.Errorf("Latest() after lost hand = %+v, want zero", got)
	}
}

func TestIntents_ResetKeepsShots(t *testing.T) {
	in := NewIntents()
	in.Post(gesture.Result{
		Tracked:   true,
		Direction: gesture.Up,
		Shot:      &gesture.ShootEvent{Angle: 10},
	})

	in.Reset()

	shots, state := in.Drain()
	if len(shots) != 1 {
		t.Errorf("Reset dropped queued shots: got %d, want 1", len(shots))
	}
	if !state.Direction.IsIdle() {
		t.Errorf("direction after Reset = %v, want idle", state.Direction)
	}
}
