package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// InputMode is how the player aimed during a round.
type InputMode string

const (
	ModePointer InputMode = "pointer"
	ModeGesture InputMode = "gesture"
)

// Round is the recorded outcome of one level.
type Round struct {
	ID        string     `json:"id"`
	Number    int        `json:"number"`
	Seed      int64      `json:"seed"`
	Mode      InputMode  `json:"mode"`
	Spawned   int        `json:"spawned"`
	Shots     int        `json:"shots"`
	Hits      int        `json:"hits"`
	Kills     int        `json:"kills"`
	Completed bool       `json:"completed"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

// Finished reports whether the round has ended.
func (r *Round) Finished() bool {
	return r.EndedAt != nil
}

// RoundRepository provides operations on recorded rounds.
type RoundRepository struct {
	db *sql.DB
}

// Rounds returns the round repository for this store.
func (s *Store) Rounds() *RoundRepository {
	return &RoundRepository{db: s.db}
}

const roundColumns = `id, number, seed, mode, spawned, shots, hits, kills, completed, started_at, ended_at`

// Create inserts a new round. An empty ID is filled with a fresh UUID and
// a zero StartedAt with the current time. Times are stored in UTC so that
// rounds sort by start time.
func (r *RoundRepository) Create(round *Round) error {
	if round.ID == "" {
		round.ID = uuid.NewString()
	}
	if round.StartedAt.IsZero() {
		round.StartedAt = time.Now()
	}
	round.StartedAt = round.StartedAt.UTC()
	if round.Mode == "" {
		round.Mode = ModePointer
	}

	_, err := r.db.Exec(
		`INSERT INTO rounds (`+roundColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		round.ID, round.Number, round.Seed, string(round.Mode), round.Spawned,
		round.Shots, round.Hits, round.Kills, round.Completed, round.StartedAt, nullTime(round.EndedAt),
	)
	if err != nil {
		return fmt.Errorf("insert round: %w", err)
	}
	return nil
}

// Finish stores the final counters of a round and marks it ended at endedAt.
func (r *RoundRepository) Finish(round *Round, endedAt time.Time) error {
	endedAt = endedAt.UTC()

	result, err := r.db.Exec(
		`UPDATE rounds SET mode = ?, spawned = ?, shots = ?, hits = ?, kills = ?, completed = ?, ended_at = ?
		 WHERE id = ?`,
		string(round.Mode), round.Spawned, round.Shots, round.Hits, round.Kills, round.Completed, endedAt, round.ID,
	)
	if err != nil {
		return fmt.Errorf("finish round: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	round.EndedAt = &endedAt
	return nil
}

// GetByID retrieves a round by its ID.
func (r *RoundRepository) GetByID(id string) (*Round, error) {
	row := r.db.QueryRow(`SELECT `+roundColumns+` FROM rounds WHERE id = ?`, id)

	round, err := scanRound(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return round, nil
}

// List returns the most recent rounds first. A non-positive limit returns all rounds.
func (r *RoundRepository) List(limit int) ([]*Round, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.Query(
		`SELECT `+roundColumns+` FROM rounds ORDER BY started_at DESC, number DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rounds []*Round
	for rows.Next() {
		round, err := scanRound(rows)
		if err != nil {
			return nil, err
		}
		rounds = append(rounds, round)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rounds, nil
}

// Delete removes a round by its ID.
func (r *RoundRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM rounds WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRound(s scanner) (*Round, error) {
	round := &Round{}
	var mode string
	var ended sql.NullTime

	err := s.Scan(
		&round.ID, &round.Number, &round.Seed, &mode, &round.Spawned,
		&round.Shots, &round.Hits, &round.Kills, &round.Completed, &round.StartedAt, &ended,
	)
	if err != nil {
		return nil, err
	}

	round.Mode = InputMode(mode)
	if ended.Valid {
		t := ended.Time
		round.EndedAt = &t
	}
	return round, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
