package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/meur/lorequiz/internal/storage"
)

// Server holds the HTTP server dependencies
type Server struct {
	store             *storage.Store
	ascendancyTypeIDs []int
	router            chi.Router
}

// New creates a new API server. ascendancyTypeIDs is the configured set
// of type ids whose items are ascendancy classes.
func New(store *storage.Store, ascendancyTypeIDs []int) *Server {
	s := &Server{
		store:             store,
		ascendancyTypeIDs: ascendancyTypeIDs,
		router:            chi.NewRouter(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Router exposes the underlying chi router so callers can mount extra
// handlers, like the static frontend.
func (s *Server) Router() chi.Router {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Route("/game", func(r chi.Router) {
		r.Post("/start", s.handleStartGame)
		r.Post("/submit", s.handleSubmitScore)
		r.Get("/leaderboard", s.handleGetLeaderboard)
	})

	s.router.Get("/questions/random/{difficulty}", s.handleRandomQuestion)

	// Health check
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
