package game

// Monster is an enemy occupying one cell.
type Monster struct {
	ID        int          `json:"id"`
	Pos       GridPosition `json:"pos"`
	Health    int          `json:"health"`
	MaxHealth int          `json:"max_health"`
	Sprite    int          `json:"sprite"`
}

// HealthRatio returns Health / MaxHealth in [0,1].
func (m *Monster) HealthRatio() float64 {
	if m.MaxHealth <= 0 || m.Health <= 0 {
		return 0
	}
	if m.Health >= m.MaxHealth {
		return 1
	}
	return float64(m.Health) / float64(m.MaxHealth)
}

// Projectile moves in continuous screen space until its range runs out.
type Projectile struct {
	Pos            Vec2    `json:"pos"`
	Vel            Vec2    `json:"vel"`
	RemainingRange float64 `json:"remaining_range"`
}

// Advance moves the projectile one tick and charges the Manhattan length
// of the step against its range. It reports whether range remains.
func (p *Projectile) Advance() bool {
	p.Pos = p.Pos.Add(p.Vel)
	p.RemainingRange -= p.Vel.Manhattan()
	return p.RemainingRange > 0
}

// HitMarker is a cosmetic flash left on a cell that was hit.
type HitMarker struct {
	Cell GridPosition `json:"cell"`
	TTL  int          `json:"ttl"`
}
