package game

// MonsterView is the rendered state of one monster.
type MonsterView struct {
	ID          int          `json:"id"`
	Pos         GridPosition `json:"pos"`
	Health      int          `json:"health"`
	MaxHealth   int          `json:"max_health"`
	HealthRatio float64      `json:"health_ratio"`
	Sprite      int          `json:"sprite"`
}

// AimLine is the aim indicator drawn from the player.
type AimLine struct {
	From  Vec2    `json:"from"`
	To    Vec2    `json:"to"`
	Angle float64 `json:"angle"`
}

// Snapshot is a read-only copy of the world for renderers.
type Snapshot struct {
	Tick           uint64        `json:"tick"`
	Round          int           `json:"round"`
	ScreenWidth    int           `json:"screen_width"`
	ScreenHeight   int           `json:"screen_height"`
	TileSize       int           `json:"tile_size"`
	GridWidth      int           `json:"grid_width"`
	GridHeight     int           `json:"grid_height"`
	Player         GridPosition  `json:"player"`
	Monsters       []MonsterView `json:"monsters"`
	Projectiles    []Projectile  `json:"projectiles"`
	HitMarkers     []HitMarker   `json:"hit_markers"`
	Aim            *AimLine      `json:"aim,omitempty"`
	LevelCompleted bool          `json:"level_completed"`
	Stats          RoundStats    `json:"stats"`
}

// Snapshot copies the current state.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Tick:           w.tick,
		Round:          w.round,
		ScreenWidth:    w.config.ScreenWidth,
		ScreenHeight:   w.config.ScreenHeight,
		TileSize:       w.config.TileSize,
		GridWidth:      w.config.GridWidth(),
		GridHeight:     w.config.GridHeight(),
		Player:         w.player,
		Monsters:       make([]MonsterView, 0, len(w.monsters)),
		Projectiles:    w.Projectiles(),
		HitMarkers:     w.HitMarkers(),
		LevelCompleted: w.levelCompleted,
		Stats:          w.Stats(),
	}

	for _, m := range w.monsters {
		s.Monsters = append(s.Monsters, MonsterView{
			ID:          m.ID,
			Pos:         m.Pos,
			Health:      m.Health,
			MaxHealth:   m.MaxHealth,
			HealthRatio: m.HealthRatio(),
			Sprite:      m.Sprite,
		})
	}

	if w.aiming {
		from := w.PlayerCenter()
		s.Aim = &AimLine{
			From:  from,
			To:    AimLineAt(from, w.aimAngle, w.aimLength),
			Angle: w.aimAngle,
		}
	}

	if s.Projectiles == nil {
		s.Projectiles = []Projectile{}
	}
	if s.HitMarkers == nil {
		s.HitMarkers = []HitMarker{}
	}
	return s
}
