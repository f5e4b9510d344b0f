package app

import (
	"log"

	"github.com/ayusman/gridshot/internal/store"
)

// startRound opens a history record for the world's current round.
// The caller holds worldMu.
func (a *App) startRound() {
	a.usedGesture = a.GestureActive()
	a.round = nil

	if a.config.Store == nil {
		return
	}

	stats := a.world.Stats()
	r := &store.Round{
		Number:    stats.Round,
		Seed:      a.seed,
		Mode:      store.ModePointer,
		Spawned:   stats.Spawned,
		StartedAt: a.now(),
	}
	if err := a.config.Store.Rounds().Create(r); err != nil {
		log.Printf("Failed to record round %d: %v", stats.Round, err)
		return
	}
	a.round = r
}

// finishRound closes the open history record with the world's counters.
// It does nothing when no round is open. The caller holds worldMu.
func (a *App) finishRound() {
	if a.round == nil || a.config.Store == nil {
		return
	}

	stats := a.world.Stats()
	a.round.Spawned = stats.Spawned
	a.round.Shots = stats.Shots
	a.round.Hits = stats.Hits
	a.round.Kills = stats.Kills
	a.round.Completed = stats.Completed
	if a.usedGesture {
		a.round.Mode = store.ModeGesture
	}

	if err := a.config.Store.Rounds().Finish(a.round, a.now()); err != nil {
		log.Printf("Failed to finish round %d: %v", stats.Round, err)
	}
	a.round = nil
}
