package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Rounds table - one row per level played
		`CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			number INTEGER NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			mode TEXT NOT NULL DEFAULT 'pointer' CHECK(mode IN ('pointer', 'gesture')),
			spawned INTEGER NOT NULL DEFAULT 0,
			shots INTEGER NOT NULL DEFAULT 0,
			hits INTEGER NOT NULL DEFAULT 0,
			kills INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME NOT NULL,
			ended_at DATETIME
		)`,

		`CREATE INDEX IF NOT EXISTS idx_rounds_started_at ON rounds(started_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
