package game

import (
	"fmt"
	"math"
	"math/rand"
)

// World is the full simulation state. It is not safe for concurrent use;
// one loop owns it and advances it with Step.
type World struct {
	config  Config
	rng     *rand.Rand
	planner *SpawnPlanner
	sprites int

	player      GridPosition
	monsters    []*Monster
	projectiles []Projectile
	markers     []HitMarker

	levelCompleted bool
	aiming         bool
	aimAngle       float64
	aimLength      float64

	tick    uint64
	round   int
	nextID  int
	spawned int
	shots   int
	hits    int
	kills   int
}

// NewWorld creates a world with the player in the bottom-right cell and
// spawns the first round. sprites is the number of monster images available.
func NewWorld(config Config, rng *rand.Rand, sprites int) *World {
	w := &World{
		config:  config,
		rng:     rng,
		planner: NewSpawnPlanner(config, rng),
		sprites: sprites,
		player:  GridPosition{X: config.GridWidth() - 1, Y: config.GridHeight() - 1},
	}
	w.Respawn()
	return w
}

// Config returns the world configuration.
func (w *World) Config() Config {
	return w.config
}

// Player returns the player's cell.
func (w *World) Player() GridPosition {
	return w.player
}

// PlayerCenter returns the pixel centre of the player's cell.
func (w *World) PlayerCenter() Vec2 {
	return w.config.CellCenter(w.player)
}

// Monsters returns copies of the live monsters.
func (w *World) Monsters() []Monster {
	out := make([]Monster, len(w.monsters))
	for i, m := range w.monsters {
		out[i] = *m
	}
	return out
}

// Projectiles returns a copy of the active projectiles.
func (w *World) Projectiles() []Projectile {
	return append([]Projectile(nil), w.projectiles...)
}

// HitMarkers returns a copy of the active hit markers.
func (w *World) HitMarkers() []HitMarker {
	return append([]HitMarker(nil), w.markers...)
}

// LevelCompleted reports whether every monster of the round has been killed.
func (w *World) LevelCompleted() bool {
	return w.levelCompleted
}

// Round returns the current round number, starting at 1.
func (w *World) Round() int {
	return w.round
}

// Tick returns the number of steps taken.
func (w *World) Tick() uint64 {
	return w.tick
}

// MonsterAt returns the monster in cell p, or nil.
func (w *World) MonsterAt(p GridPosition) *Monster {
	for _, m := range w.monsters {
		if m.Pos == p {
			return m
		}
	}
	return nil
}

// MovePlayer moves the player one cell. The move is rejected when it is
// not a unit step, leaves the grid or enters a monster's cell.
func (w *World) MovePlayer(dx, dy int) bool {
	if abs(dx)+abs(dy) != 1 {
		return false
	}
	target := w.player.Step(dx, dy)
	if !w.config.InBounds(target) || w.MonsterAt(target) != nil {
		return false
	}
	w.player = target
	return true
}

// SetPlayer places the player on cell p.
func (w *World) SetPlayer(p GridPosition) error {
	if !w.config.InBounds(p) {
		return fmt.Errorf("set player %v: %w", p, ErrOutOfBounds)
	}
	if w.MonsterAt(p) != nil {
		return fmt.Errorf("set player %v: %w", p, ErrCellOccupied)
	}
	w.player = p
	return nil
}

// AddMonster places a monster with the given health on cell p.
func (w *World) AddMonster(p GridPosition, health int) (*Monster, error) {
	if health <= 0 {
		return nil, fmt.Errorf("add monster health %d: %w", health, ErrInvalidValue)
	}
	if !w.config.InBounds(p) {
		return nil, fmt.Errorf("add monster %v: %w", p, ErrOutOfBounds)
	}
	if p == w.player || w.MonsterAt(p) != nil {
		return nil, fmt.Errorf("add monster %v: %w", p, ErrCellOccupied)
	}

	m := &Monster{Pos: p, Health: health, MaxHealth: health}
	w.adopt(m)
	return m, nil
}

func (w *World) adopt(m *Monster) {
	w.nextID++
	m.ID = w.nextID
	w.monsters = append(w.monsters, m)
	w.spawned++
}

// Fire launches a projectile from the player's cell centre. Power below or
// at zero, or a non-finite angle, fires nothing.
func (w *World) Fire(angleDeg, power float64) bool {
	if power <= 0 || math.IsNaN(power) || math.IsNaN(angleDeg) || math.IsInf(angleDeg, 0) {
		return false
	}

	w.projectiles = append(w.projectiles, Projectile{
		Pos:            w.PlayerCenter(),
		Vel:            ShotVelocity(angleDeg, power),
		RemainingRange: w.config.ShootRange(),
	})
	w.shots++
	return true
}

// SetAim shows an aim line of the given length from the player along angleDeg.
func (w *World) SetAim(angleDeg, length float64) {
	w.aiming = true
	w.aimAngle = angleDeg
	w.aimLength = length
}

// ClearAim hides the aim line.
func (w *World) ClearAim() {
	w.aiming = false
}

// Clear removes every monster, projectile and hit marker and resets the
// completion flag. The player stays where it is.
func (w *World) Clear() {
	w.monsters = nil
	w.projectiles = nil
	w.markers = nil
	w.levelCompleted = false
}

// Respawn starts a new round: the board is cleared and a fresh set of
// monsters is placed. It returns the number of monsters spawned.
func (w *World) Respawn() int {
	w.Clear()
	w.round++
	w.spawned = 0
	w.shots = 0
	w.hits = 0
	w.kills = 0

	planned := w.planner.Plan(w.player, w.sprites)
	for i := range planned {
		w.adopt(&planned[i])
	}
	return len(w.monsters)
}

// Stats returns the counters of the current round.
func (w *World) Stats() RoundStats {
	return RoundStats{
		Round:     w.round,
		Spawned:   w.spawned,
		Remaining: len(w.monsters),
		Shots:     w.shots,
		Hits:      w.hits,
		Kills:     w.kills,
		Completed: w.levelCompleted,
	}
}

// RoundStats summarises the current round.
type RoundStats struct {
	Round     int  `json:"round"`
	Spawned   int  `json:"spawned"`
	Remaining int  `json:"remaining"`
	Shots     int  `json:"shots"`
	Hits      int  `json:"hits"`
	Kills     int  `json:"kills"`
	Completed bool `json:"completed"`
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
