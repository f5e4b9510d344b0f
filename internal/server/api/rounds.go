package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ayusman/gridshot/internal/store"
)

// DefaultListLimit caps GET /api/rounds when no limit is given.
const DefaultListLimit = 50

// RoundHandler serves the round history.
type RoundHandler struct {
	store *store.Store
}

// NewRoundHandler creates a new RoundHandler with the given store.
func NewRoundHandler(s *store.Store) *RoundHandler {
	return &RoundHandler{store: s}
}

// Routes mounts the handler's endpoints on r.
func (h *RoundHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Delete("/{id}", h.Delete)
}

type roundResponse struct {
	ID        string  `json:"id"`
	Number    int     `json:"number"`
	Seed      int64   `json:"seed"`
	Mode      string  `json:"mode"`
	Spawned   int     `json:"spawned"`
	Shots     int     `json:"shots"`
	Hits      int     `json:"hits"`
	Kills     int     `json:"kills"`
	Completed bool    `json:"completed"`
	StartedAt string  `json:"started_at"`
	EndedAt   *string `json:"ended_at"`
}

type listRoundsResponse struct {
	Rounds []roundResponse `json:"rounds"`
}

func toResponse(r *store.Round) roundResponse {
	resp := roundResponse{
		ID:        r.ID,
		Number:    r.Number,
		Seed:      r.Seed,
		Mode:      string(r.Mode),
		Spawned:   r.Spawned,
		Shots:     r.Shots,
		Hits:      r.Hits,
		Kills:     r.Kills,
		Completed: r.Completed,
		StartedAt: r.StartedAt.Format(time.RFC3339),
	}
	if r.EndedAt != nil {
		ended := r.EndedAt.Format(time.RFC3339)
		resp.EndedAt = &ended
	}
	return resp
}

// List handles GET /api/rounds, newest first. ?limit=N bounds the result;
// limit=0 returns every round.
func (h *RoundHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			WriteError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	rounds, err := h.store.Rounds().List(limit)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to list rounds")
		return
	}

	response := listRoundsResponse{
		Rounds: make([]roundResponse, 0, len(rounds)),
	}
	for _, round := range rounds {
		response.Rounds = append(response.Rounds, toResponse(round))
	}

	WriteJSON(w, http.StatusOK, response)
}

// Get handles GET /api/rounds/{id}.
func (h *RoundHandler) Get(w http.ResponseWriter, r *http.Request) {
	round, err := h.store.Rounds().GetByID(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Round not found")
			return
		}
		WriteError(w, http.StatusInternalServerError, "Failed to get round")
		return
	}

	WriteJSON(w, http.StatusOK, toResponse(round))
}

// Delete handles DELETE /api/rounds/{id}.
func (h *RoundHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Rounds().Delete(chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Round not found")
			return
		}
		WriteError(w, http.StatusInternalServerError, "Failed to delete round")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
