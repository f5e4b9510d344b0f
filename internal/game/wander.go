package game

var wanderSteps = [4]GridPosition{
	{X: 0, Y: -1},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
}

// wander gives each monster a WanderChance to step to a random free
// neighbouring cell. Targets are checked against the player's current cell
// and the cells other monsters hold at that moment, so no two entities
// ever end the tick on the same cell. It returns the number of moves.
func (w *World) wander() int {
	if w.config.WanderChance <= 0 || len(w.monsters) == 0 {
		return 0
	}

	occupied := make(map[GridPosition]bool, len(w.monsters))
	for _, m := range w.monsters {
		occupied[m.Pos] = true
	}

	moved := 0
	for _, m := range w.monsters {
		if w.rng.Float64() >= w.config.WanderChance {
			continue
		}

		for _, i := range w.rng.Perm(len(wanderSteps)) {
			target := m.Pos.Step(wanderSteps[i].X, wanderSteps[i].Y)
			if !w.config.InBounds(target) || target == w.player || occupied[target] {
				continue
			}
			delete(occupied, m.Pos)
			occupied[target] = true
			m.Pos = target
			moved++
			break
		}
	}
	return moved
}
