package game

import (
	"errors"
	"math/rand"
	"testing"
)

// emptyWorld returns a world with no monsters and wandering disabled.
func emptyWorld(t *testing.T, modify func(*Config)) *World {
	t.Helper()

	cfg := DefaultConfig()
	cfg.WanderChance = 0
	if modify != nil {
		modify(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid test config: %v", err)
	}

	w := NewWorld(cfg, rand.New(rand.NewSource(1)), 0)
	w.Clear()
	return w
}

func TestNewWorld(t *testing.T) {
	cfg := DefaultConfig()
	w := NewWorld(cfg, rand.New(rand.NewSource(5)), 2)

	if w.Player() != (GridPosition{X: 6, Y: 6}) {
		t.Errorf("Player() = %+v, want bottom-right {6 6}", w.Player())
	}
	if w.Round() != 1 {
		t.Errorf("Round() = %d, want 1", w.Round())
	}

	n := len(w.Monsters())
	if n < cfg.MinMonsters || n > cfg.MaxMonsters {
		t.Errorf("spawned %d monsters, want [%d,%d]", n, cfg.MinMonsters, cfg.MaxMonsters)
	}

	ids := map[int]bool{}
	for _, m := range w.Monsters() {
		if m.ID == 0 || ids[m.ID] {
			t.Errorf("monster ID %d is zero or duplicated", m.ID)
		}
		ids[m.ID] = true
	}
	if w.Stats().Spawned != n {
		t.Errorf("Stats().Spawned = %d, want %d", w.Stats().Spawned, n)
	}
}

func TestWorld_MovePlayer(t *testing.T) {
	w := emptyWorld(t, nil)
	if _, err := w.AddMonster(GridPosition{X: 5, Y: 6}, 1); err != nil {
		t.Fatalf("AddMonster() error = %v", err)
	}

	tests := []struct {
		name   string
		dx, dy int
		want   bool
		pos    GridPosition
	}{
		{name: "off the right edge", dx: 1, dy: 0, want: false, pos: GridPosition{X: 6, Y: 6}},
		{name: "off the bottom edge", dx: 0, dy: 1, want: false, pos: GridPosition{X: 6, Y: 6}},
		{name: "into a monster", dx: -1, dy: 0, want: false, pos: GridPosition{X: 6, Y: 6}},
		{name: "diagonal", dx: -1, dy: -1, want: false, pos: GridPosition{X: 6, Y: 6}},
		{name: "no movement", dx: 0, dy: 0, want: false, pos: GridPosition{X: 6, Y: 6}},
		{name: "up", dx: 0, dy: -1, want: true, pos: GridPosition{X: 6, Y: 5}},
		{name: "left past the monster", dx: -1, dy: 0, want: true, pos: GridPosition{X: 5, Y: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.MovePlayer(tt.dx, tt.dy); got != tt.want {
				t.Errorf("MovePlayer(%d, %d) = %v, want %v", tt.dx, tt.dy, got, tt.want)
			}
			if w.Player() != tt.pos {
				t.Errorf("Player() = %+v, want %+v", w.Player(), tt.pos)
			}
		})
	}
}

func TestWorld_AddMonster(t *testing.T) {
	w := emptyWorld(t, nil)

	tests := []struct {
		name    string
		pos     GridPosition
		health  int
		wantErr error
	}{
		{name: "free cell", pos: GridPosition{X: 0, Y: 0}, health: 2},
		{name: "same cell again", pos: GridPosition{X: 0, Y: 0}, health: 1, wantErr: ErrCellOccupied},
		{name: "player cell", pos: GridPosition{X: 6, Y: 6}, health: 1, wantErr: ErrCellOccupied},
		{name: "outside grid", pos: GridPosition{X: 7, Y: 0}, health: 1, wantErr: ErrOutOfBounds},
		{name: "no health", pos: GridPosition{X: 1, Y: 1}, health: 0, wantErr: ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := w.AddMonster(tt.pos, tt.health)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("AddMonster() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("AddMonster() error = %v", err)
			}
			if m.Health != tt.health || m.MaxHealth != tt.health {
				t.Errorf("monster health = %d/%d, want %d/%d", m.Health, m.MaxHealth, tt.health, tt.health)
			}
		})
	}
}

func TestWorld_SetPlayer(t *testing.T) {
	w := emptyWorld(t, nil)
	w.AddMonster(GridPosition{X: 2, Y: 2}, 1)

	if err := w.SetPlayer(GridPosition{X: 2, Y: 2}); !errors.Is(err, ErrCellOccupied) {
		t.Errorf("SetPlayer() onto a monster error = %v, want ErrCellOccupied", err)
	}
	if err := w.SetPlayer(GridPosition{X: -1, Y: 0}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("SetPlayer() outside error = %v, want ErrOutOfBounds", err)
	}
	if err := w.SetPlayer(GridPosition{X: 0, Y: 3}); err != nil {
		t.Fatalf("SetPlayer() error = %v", err)
	}
	if w.Player() != (GridPosition{X: 0, Y: 3}) {
		t.Errorf("Player() = %+v, want {0 3}", w.Player())
	}
}

func TestWorld_Fire(t *testing.T) {
	w := emptyWorld(t, nil)

	if w.Fire(0, 0) {
		t.Error("Fire() with zero power should fire nothing")
	}
	if !w.Fire(90, 200) {
		t.Fatal("Fire() returned false")
	}

	ps := w.Projectiles()
	if len(ps) != 1 {
		t.Fatalf("Projectiles() = %d, want 1", len(ps))
	}
	p := ps[0]
	if p.Pos != (Vec2{X: 520, Y: 520}) {
		t.Errorf("projectile starts at %+v, want the player centre {520 520}", p.Pos)
	}
	if p.Vel.Y >= 0 {
		t.Errorf("a 90 degree shot should move up the screen, velocity %+v", p.Vel)
	}
	if p.RemainingRange != 400 {
		t.Errorf("RemainingRange = %f, want 400", p.RemainingRange)
	}
	if w.Stats().Shots != 1 {
		t.Errorf("Stats().Shots = %d, want 1", w.Stats().Shots)
	}
}

func TestWorld_Respawn(t *testing.T) {
	w := emptyWorld(t, nil)
	w.AddMonster(GridPosition{X: 3, Y: 3}, 1)
	w.Fire(180, 200)
	w.Fire(90, 200)

	// Kill the monster so the level completes and leaves a hit marker.
	w.projectiles = append(w.projectiles, Projectile{
		Pos:            Vec2{X: 270, Y: 280},
		Vel:            Vec2{X: 10},
		RemainingRange: 100,
	})
	w.Step()
	if !w.LevelCompleted() || len(w.HitMarkers()) == 0 {
		t.Fatal("setup: expected a completed level with a hit marker")
	}

	round := w.Round()
	n := w.Respawn()

	if w.LevelCompleted() {
		t.Error("Respawn() should reset the completion flag")
	}
	if len(w.Projectiles()) != 0 || len(w.HitMarkers()) != 0 {
		t.Error("Respawn() should clear projectiles and hit markers")
	}
	if n != len(w.Monsters()) || n < DefaultMinMonsters {
		t.Errorf("Respawn() = %d with %d live monsters", n, len(w.Monsters()))
	}
	if w.Round() != round+1 {
		t.Errorf("Round() = %d, want %d", w.Round(), round+1)
	}
	if s := w.Stats(); s.Shots != 0 || s.Kills != 0 || s.Spawned != n {
		t.Errorf("Stats() after respawn = %+v", s)
	}
	for _, m := range w.Monsters() {
		if m.Pos == w.Player() {
			t.Errorf("monster spawned on the player at %+v", m.Pos)
		}
	}
}

func TestWorld_Snapshot(t *testing.T) {
	w := emptyWorld(t, nil)
	w.AddMonster(GridPosition{X: 1, Y: 1}, 4)
	w.monsters[0].Health = 1

	s := w.Snapshot()
	if s.Aim != nil {
		t.Error("Snapshot().Aim should be nil when not aiming")
	}
	if len(s.Monsters) != 1 || s.Monsters[0].HealthRatio != 0.25 {
		t.Errorf("Snapshot().Monsters = %+v, want one monster at ratio 0.25", s.Monsters)
	}
	if s.GridWidth != 7 || s.GridHeight != 7 || s.TileSize != 80 {
		t.Errorf("snapshot geometry = %dx%d tile %d", s.GridWidth, s.GridHeight, s.TileSize)
	}
	if s.Projectiles == nil || s.HitMarkers == nil {
		t.Error("empty collections should be non-nil for encoding")
	}

	w.SetAim(180, 100)
	s = w.Snapshot()
	if s.Aim == nil {
		t.Fatal("Snapshot().Aim = nil after SetAim")
	}
	if !near(s.Aim.To.X, 420) || !near(s.Aim.To.Y, 520) {
		t.Errorf("aim line ends at %+v, want {420 520}", s.Aim.To)
	}

	w.ClearAim()
	if w.Snapshot().Aim != nil {
		t.Error("ClearAim() should hide the aim line")
	}

	// Mutating the snapshot must not touch the world.
	s.Monsters[0].Health = 99
	if w.Monsters()[0].Health != 1 {
		t.Error("snapshot shares monster state with the world")
	}
}

func TestMonster_HealthRatio(t *testing.T) {
	tests := []struct {
		health, max int
		want        float64
	}{
		{health: 3, max: 6, want: 0.5},
		{health: 6, max: 6, want: 1},
		{health: 0, max: 6, want: 0},
		{health: 2, max: 0, want: 0},
	}
	for _, tt := range tests {
		m := Monster{Health: tt.health, MaxHealth: tt.max}
		if got := m.HealthRatio(); got != tt.want {
			t.Errorf("HealthRatio(%d/%d) = %f, want %f", tt.health, tt.max, got, tt.want)
		}
	}
}
