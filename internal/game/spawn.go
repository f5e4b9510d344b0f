package game

import "math/rand"

// SpawnPlanner places monsters on free cells by rejection sampling.
type SpawnPlanner struct {
	config Config
	rng    *rand.Rand
}

// NewSpawnPlanner creates a planner drawing from rng.
func NewSpawnPlanner(config Config, rng *rand.Rand) *SpawnPlanner {
	return &SpawnPlanner{config: config, rng: rng}
}

// Plan picks a count in [MinMonsters, MaxMonsters] and places that many
// monsters around the player. It may return fewer when the grid is crowded.
func (s *SpawnPlanner) Plan(player GridPosition, sprites int) []Monster {
	count := s.config.MinMonsters
	if span := s.config.MaxMonsters - s.config.MinMonsters; span > 0 {
		count += s.rng.Intn(span + 1)
	}
	return s.Place(count, player, sprites)
}

// Place tries to put count monsters on distinct cells other than the player's.
// A monster that finds no free cell within SpawnAttempts samples is skipped.
func (s *SpawnPlanner) Place(count int, player GridPosition, sprites int) []Monster {
	w, h := s.config.GridWidth(), s.config.GridHeight()
	if w <= 0 || h <= 0 || count <= 0 {
		return nil
	}

	occupied := map[GridPosition]bool{player: true}
	monsters := make([]Monster, 0, count)

	for i := 0; i < count; i++ {
		pos, ok := s.freeCell(occupied, w, h)
		if !ok {
			continue
		}
		occupied[pos] = true

		health := s.config.MinHealth
		if span := s.config.MaxHealth - s.config.MinHealth; span > 0 {
			health += s.rng.Intn(span + 1)
		}

		sprite := 0
		if sprites > 0 {
			sprite = s.rng.Intn(sprites)
		}

		monsters = append(monsters, Monster{
			Pos:       pos,
			Health:    health,
			MaxHealth: health,
			Sprite:    sprite,
		})
	}

	return monsters
}

func (s *SpawnPlanner) freeCell(occupied map[GridPosition]bool, w, h int) (GridPosition, bool) {
	for attempt := 0; attempt < s.config.SpawnAttempts; attempt++ {
		pos := GridPosition{X: s.rng.Intn(w), Y: s.rng.Intn(h)}
		if !occupied[pos] {
			return pos, true
		}
	}
	return GridPosition{}, false
}
