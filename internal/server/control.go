package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ayusman/gridshot/internal/game"
	"github.com/ayusman/gridshot/internal/gesture"
	"github.com/ayusman/gridshot/internal/server/api"
)

type controlHandler struct {
	game Game
}

type moveRequest struct {
	Direction string `json:"direction"`
}

type moveResponse struct {
	Moved  bool              `json:"moved"`
	Player game.GridPosition `json:"player"`
}

// fireRequest aims either at a screen point (x, y) or along an angle.
type fireRequest struct {
	X     *float64 `json:"x"`
	Y     *float64 `json:"y"`
	Angle *float64 `json:"angle"`
	Power float64  `json:"power"`
}

type fireResponse struct {
	Fired bool `json:"fired"`
}

type respawnResponse struct {
	Round    int `json:"round"`
	Monsters int `json:"monsters"`
}

type gestureRequest struct {
	Enabled bool `json:"enabled"`
}

type gestureResponse struct {
	Active bool `json:"active"`
}

func parseDirection(s string) (gesture.Direction, bool) {
	switch strings.ToLower(s) {
	case "up":
		return gesture.Up, true
	case "down":
		return gesture.Down, true
	case "left":
		return gesture.Left, true
	case "right":
		return gesture.Right, true
	default:
		return gesture.Idle, false
	}
}

// state handles GET /api/state.
func (h *controlHandler) state(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, h.game.Snapshot())
}

// move handles POST /api/move.
func (h *controlHandler) move(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	dir, ok := parseDirection(req.Direction)
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "Direction must be up, down, left or right")
		return
	}

	moved := h.game.Move(dir.DX, dir.DY)
	api.WriteJSON(w, http.StatusOK, moveResponse{
		Moved:  moved,
		Player: h.game.Snapshot().Player,
	})
}

// fire handles POST /api/fire.
func (h *controlHandler) fire(w http.ResponseWriter, r *http.Request) {
	var req fireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var fired bool
	switch {
	case req.X != nil && req.Y != nil:
		fired = h.game.FireAt(*req.X, *req.Y)
	case req.Angle != nil:
		power := req.Power
		if power == 0 {
			power = game.DefaultGesturePower
		}
		if power < 0 {
			api.WriteError(w, http.StatusBadRequest, "Power must be positive")
			return
		}
		fired = h.game.Fire(*req.Angle, power)
	default:
		api.WriteError(w, http.StatusBadRequest, "Either x and y or angle is required")
		return
	}

	api.WriteJSON(w, http.StatusOK, fireResponse{Fired: fired})
}

// respawn handles POST /api/respawn.
func (h *controlHandler) respawn(w http.ResponseWriter, r *http.Request) {
	n := h.game.Respawn()
	api.WriteJSON(w, http.StatusOK, respawnResponse{
		Round:    h.game.Snapshot().Round,
		Monsters: n,
	})
}

// gestureStatus handles GET /api/gesture.
func (h *controlHandler) gestureStatus(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, h.game.Status())
}

// gesture handles POST /api/gesture.
func (h *controlHandler) gesture(w http.ResponseWriter, r *http.Request) {
	var req gestureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !req.Enabled {
		h.game.DisableGesture()
		api.WriteJSON(w, http.StatusOK, gestureResponse{Active: false})
		return
	}

	if !h.game.EnableGesture() {
		api.WriteError(w, http.StatusServiceUnavailable, "Gesture control unavailable")
		return
	}
	api.WriteJSON(w, http.StatusOK, gestureResponse{Active: true})
}
