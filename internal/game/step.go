package game

// StepReport describes what happened during one tick.
type StepReport struct {
	Hits           int  `json:"hits"`
	Kills          int  `json:"kills"`
	Expired        int  `json:"expired"`
	Wandered       int  `json:"wandered"`
	LevelCompleted bool `json:"level_completed"`
}

// Step advances the world by one tick: projectiles move, collide, the win
// condition is checked, hit markers decay and monsters wander.
func (w *World) Step() StepReport {
	var report StepReport
	w.tick++

	w.advanceProjectiles(&report)

	hadMonsters := len(w.monsters) > 0
	w.resolveCollisions(&report)

	if hadMonsters && len(w.monsters) == 0 && !w.levelCompleted {
		w.levelCompleted = true
		report.LevelCompleted = true
	}

	w.decayMarkers()
	report.Wandered = w.wander()

	return report
}

func (w *World) advanceProjectiles(report *StepReport) {
	next := make([]Projectile, 0, len(w.projectiles))
	for _, p := range w.projectiles {
		if !p.Advance() || !w.config.OnScreen(p.Pos) {
			report.Expired++
			continue
		}
		next = append(next, p)
	}
	w.projectiles = next
}

func (w *World) resolveCollisions(report *StepReport) {
	if len(w.projectiles) == 0 || len(w.monsters) == 0 {
		return
	}

	byCell := make(map[GridPosition]*Monster, len(w.monsters))
	for _, m := range w.monsters {
		byCell[m.Pos] = m
	}

	survivors := make([]Projectile, 0, len(w.projectiles))
	for _, p := range w.projectiles {
		cell := w.config.CellAt(p.Pos)
		m, ok := byCell[cell]
		if !ok {
			survivors = append(survivors, p)
			continue
		}

		m.Health--
		w.markers = append(w.markers, HitMarker{Cell: cell, TTL: w.config.HitMarkerTTL})
		report.Hits++
		w.hits++

		if m.Health <= 0 {
			delete(byCell, cell)
			report.Kills++
			w.kills++
		}
	}
	w.projectiles = survivors

	if report.Kills == 0 {
		return
	}
	alive := make([]*Monster, 0, len(w.monsters))
	for _, m := range w.monsters {
		if m.Health > 0 {
			alive = append(alive, m)
		}
	}
	w.monsters = alive
}

func (w *World) decayMarkers() {
	next := make([]HitMarker, 0, len(w.markers))
	for _, hm := range w.markers {
		hm.TTL--
		if hm.TTL > 0 {
			next = append(next, hm)
		}
	}
	w.markers = next
}
