package game

import (
	"errors"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
	if cfg.GridWidth() != 7 || cfg.GridHeight() != 7 {
		t.Errorf("grid = %dx%d, want 7x7", cfg.GridWidth(), cfg.GridHeight())
	}
	if cfg.ShootRange() != 400 {
		t.Errorf("ShootRange() = %f, want 400", cfg.ShootRange())
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{name: "zero tile", modify: func(c *Config) { c.TileSize = 0 }},
		{name: "tile larger than screen", modify: func(c *Config) { c.TileSize = 700 }},
		{name: "no range", modify: func(c *Config) { c.MaxShootRange = 0 }},
		{name: "negative ttl", modify: func(c *Config) { c.HitMarkerTTL = -1 }},
		{name: "wander above one", modify: func(c *Config) { c.WanderChance = 1.5 }},
		{name: "inverted monster range", modify: func(c *Config) { c.MinMonsters = 9; c.MaxMonsters = 3 }},
		{name: "zero health", modify: func(c *Config) { c.MinHealth = 0 }},
		{name: "no spawn attempts", modify: func(c *Config) { c.SpawnAttempts = 0 }},
		{name: "no tick rate", modify: func(c *Config) { c.TickRate = 0 }},
		{name: "no gesture power", modify: func(c *Config) { c.GesturePower = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidValue) {
				t.Errorf("Validate() error = %v, want ErrInvalidValue", err)
			}
		})
	}
}

func TestConfig_Cells(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		v    Vec2
		want GridPosition
	}{
		{name: "origin", v: Vec2{}, want: GridPosition{}},
		{name: "inside first cell", v: Vec2{X: 79.9, Y: 79.9}, want: GridPosition{}},
		{name: "tile boundary", v: Vec2{X: 80, Y: 160}, want: GridPosition{X: 1, Y: 2}},
		{name: "negative floors down", v: Vec2{X: -0.5, Y: 10}, want: GridPosition{X: -1, Y: 0}},
		{name: "right edge", v: Vec2{X: 600, Y: 599}, want: GridPosition{X: 7, Y: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.CellAt(tt.v); got != tt.want {
				t.Errorf("CellAt(%+v) = %+v, want %+v", tt.v, got, tt.want)
			}
		})
	}

	if got := cfg.CellCenter(GridPosition{X: 6, Y: 6}); got != (Vec2{X: 520, Y: 520}) {
		t.Errorf("CellCenter(6,6) = %+v, want {520 520}", got)
	}
	if cfg.InBounds(GridPosition{X: 7, Y: 0}) || cfg.InBounds(GridPosition{X: 0, Y: -1}) {
		t.Error("InBounds() accepted a cell outside the grid")
	}
	if !cfg.OnScreen(Vec2{X: 600, Y: 600}) || cfg.OnScreen(Vec2{X: 600.1, Y: 0}) {
		t.Error("OnScreen() should include the edges and nothing beyond")
	}
}
