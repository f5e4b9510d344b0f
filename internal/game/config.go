// Package game implements the grid combat simulation: the player, wandering
// monsters, projectiles and hit markers, advanced one tick at a time.
package game

import (
	"errors"
	"fmt"
)

// Default world parameters.
const (
	DefaultScreenWidth     = 600
	DefaultScreenHeight    = 600
	DefaultTileSize        = 80
	DefaultMaxShootRange   = 5 // tiles
	DefaultHitMarkerTTL    = 30
	DefaultWanderChance    = 0.02
	DefaultMinMonsters     = 5
	DefaultMaxMonsters     = 15
	DefaultMinHealth       = 1
	DefaultMaxHealth       = 6
	DefaultSpawnAttempts   = 100
	DefaultTickRate        = 30
	DefaultGesturePower    = 200.0
	DefaultPointerMinPower = 10.0
)

const (
	powerPerSpeed = 20.0
	maxSpeed      = 10.0
)

// Errors returned by world mutations.
var (
	ErrOutOfBounds  = errors.New("cell out of bounds")
	ErrCellOccupied = errors.New("cell occupied")
	ErrInvalidValue = errors.New("invalid value")
)

// Config holds the world dimensions and tuning constants.
type Config struct {
	ScreenWidth     int     `yaml:"screen_width"`
	ScreenHeight    int     `yaml:"screen_height"`
	TileSize        int     `yaml:"tile_size"`
	MaxShootRange   int     `yaml:"max_shoot_range"`
	HitMarkerTTL    int     `yaml:"hit_marker_ttl"`
	WanderChance    float64 `yaml:"wander_chance"`
	MinMonsters     int     `yaml:"min_monsters"`
	MaxMonsters     int     `yaml:"max_monsters"`
	MinHealth       int     `yaml:"min_health"`
	MaxHealth       int     `yaml:"max_health"`
	SpawnAttempts   int     `yaml:"spawn_attempts"`
	TickRate        int     `yaml:"tick_rate"`
	GesturePower    float64 `yaml:"gesture_power"`
	PointerMinPower float64 `yaml:"pointer_min_power"`
}

// DefaultConfig returns a 7x7 world on a 600x600 screen.
func DefaultConfig() Config {
	return Config{
		ScreenWidth:     DefaultScreenWidth,
		ScreenHeight:    DefaultScreenHeight,
		TileSize:        DefaultTileSize,
		MaxShootRange:   DefaultMaxShootRange,
		HitMarkerTTL:    DefaultHitMarkerTTL,
		WanderChance:    DefaultWanderChance,
		MinMonsters:     DefaultMinMonsters,
		MaxMonsters:     DefaultMaxMonsters,
		MinHealth:       DefaultMinHealth,
		MaxHealth:       DefaultMaxHealth,
		SpawnAttempts:   DefaultSpawnAttempts,
		TickRate:        DefaultTickRate,
		GesturePower:    DefaultGesturePower,
		PointerMinPower: DefaultPointerMinPower,
	}
}

// GridWidth returns the number of columns.
func (c Config) GridWidth() int {
	if c.TileSize <= 0 {
		return 0
	}
	return c.ScreenWidth / c.TileSize
}

// GridHeight returns the number of rows.
func (c Config) GridHeight() int {
	if c.TileSize <= 0 {
		return 0
	}
	return c.ScreenHeight / c.TileSize
}

// ShootRange returns the projectile range in pixels.
func (c Config) ShootRange() float64 {
	return float64(c.MaxShootRange * c.TileSize)
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	switch {
	case c.TileSize <= 0:
		return fmt.Errorf("tile_size must be positive: %w", ErrInvalidValue)
	case c.GridWidth() < 1 || c.GridHeight() < 1:
		return fmt.Errorf("screen %dx%d holds no %dpx tiles: %w", c.ScreenWidth, c.ScreenHeight, c.TileSize, ErrInvalidValue)
	case c.MaxShootRange <= 0:
		return fmt.Errorf("max_shoot_range must be positive: %w", ErrInvalidValue)
	case c.HitMarkerTTL < 0:
		return fmt.Errorf("hit_marker_ttl must not be negative: %w", ErrInvalidValue)
	case c.WanderChance < 0 || c.WanderChance > 1:
		return fmt.Errorf("wander_chance %v outside [0,1]: %w", c.WanderChance, ErrInvalidValue)
	case c.MinMonsters < 0 || c.MaxMonsters < c.MinMonsters:
		return fmt.Errorf("monster count range [%d,%d] invalid: %w", c.MinMonsters, c.MaxMonsters, ErrInvalidValue)
	case c.MinHealth < 1 || c.MaxHealth < c.MinHealth:
		return fmt.Errorf("health range [%d,%d] invalid: %w", c.MinHealth, c.MaxHealth, ErrInvalidValue)
	case c.SpawnAttempts < 1:
		return fmt.Errorf("spawn_attempts must be positive: %w", ErrInvalidValue)
	case c.TickRate < 1:
		return fmt.Errorf("tick_rate must be positive: %w", ErrInvalidValue)
	case c.GesturePower <= 0:
		return fmt.Errorf("gesture_power must be positive: %w", ErrInvalidValue)
	case c.PointerMinPower < 0:
		return fmt.Errorf("pointer_min_power must not be negative: %w", ErrInvalidValue)
	}
	return nil
}
