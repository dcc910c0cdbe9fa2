package api

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abrystyle/ritualesbienestar/internal/config"
	"github.com/abrystyle/ritualesbienestar/internal/core"
	"github.com/abrystyle/ritualesbienestar/internal/store"
)

type Server struct {
	router  *chi.Mux
	cfg     *config.Config
	updater *core.UpdateService
	runs    *store.Store // nil when no database is configured
	running atomic.Bool
}

func NewServer(cfg *config.Config, updater *core.UpdateService, runs *store.Store) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		cfg:     cfg,
		updater: updater,
		runs:    runs,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Update-Token"},
	}))

	s.router.Get("/health", s.handleHealth)
	s.router.Get("/stats", s.handleStats)
	s.router.Get("/products", s.handleProducts)
	s.router.Get("/runs", s.handleRuns)

	s.router.Group(func(r chi.Router) {
		r.Use(s.requireToken)
		r.Post("/update", s.handleUpdate)
		r.Post("/build", s.handleBuild)
	})
}

// requireToken guards the trigger endpoints with the shared update secret,
// accepted either as the X-Update-Token header or a token query parameter.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.UpdateToken == "" {
			respondError(w, http.StatusServiceUnavailable, "Update token not configured")
			return
		}
		token := r.Header.Get("X-Update-Token")
		if token == "" {
			token = r.URL.Query().Get("token")
		}
		if token != s.cfg.UpdateToken {
			respondError(w, http.StatusUnauthorized, "Invalid or missing token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
