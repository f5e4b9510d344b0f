// Package server provides the HTTP control API, the world snapshot
// WebSocket and the annotated camera stream.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ayusman/gridshot/internal/app"
	"github.com/ayusman/gridshot/internal/game"
	"github.com/ayusman/gridshot/internal/server/api"
	"github.com/ayusman/gridshot/internal/store"
)

// Game is the part of the application the server drives.
type Game interface {
	Snapshot() game.Snapshot
	Status() app.Status
	Move(dx, dy int) bool
	Fire(angleDeg, power float64) bool
	FireAt(x, y float64) bool
	Respawn() int
	EnableGesture() bool
	DisableGesture()
	GestureActive() bool
	LatestFrame() []byte
}

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Game      Game
	// SnapshotInterval is the WebSocket push period. Zero uses DefaultSnapshotInterval.
	SnapshotInterval time.Duration
}

// Server represents the HTTP server.
type Server struct {
	config Config
	router chi.Router
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	if config.SnapshotInterval <= 0 {
		config.SnapshotInterval = DefaultSnapshotInterval
	}

	s := &Server{
		config: config,
		router: chi.NewRouter(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	r := s.router
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		if s.config.Game != nil {
			control := &controlHandler{game: s.config.Game}
			r.Get("/state", control.state)
			r.Post("/move", control.move)
			r.Post("/fire", control.fire)
			r.Post("/respawn", control.respawn)
			r.Get("/gesture", control.gestureStatus)
			r.Post("/gesture", control.gesture)

			r.Handle("/ws", NewSnapshotHandler(s.config.Game, s.config.SnapshotInterval))
			r.Handle("/stream", NewStreamHandler(s.config.Game))
		}

		if s.config.Store != nil {
			r.Route("/rounds", api.NewRoundHandler(s.config.Store).Routes)
		}
	})

	if s.config.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(s.config.StaticDir)))
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	})
}
