package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
)

const requestTimeout = 15 * time.Second

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(s.corsMiddleware())
	r.Use(timeoutMiddleware(requestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Get("/games", s.handleListGames)
		r.Post("/intuition-index", s.handleComputeIndex)

		r.Get("/profiles", s.handleListProfiles)
		r.Post("/profiles", s.handleCreateProfile)
		r.Get("/profiles/{id}", s.handleGetProfile)
		r.Patch("/profiles/{id}", s.handleUpdateProfile)
		r.Delete("/profiles/{id}", s.handleDeleteProfile)

		r.Group(func(r chi.Router) {
			r.Use(s.profileMiddleware)

			r.Post("/sessions", s.handleCreateSession)
			r.Get("/sessions/{id}", s.handleGetSession)
			r.Post("/sessions/{id}/start", s.handleStartSession)
			r.Post("/sessions/{id}/select", s.handleSelectOption)
			r.Post("/sessions/{id}/next", s.handleNextRound)
			r.Post("/sessions/{id}/end", s.handleEndSession)
			r.Post("/sessions/{id}/reset", s.handleResetSession)

			r.Get("/runs", s.handleListRuns)
			r.Get("/progress", s.handleProgress)
			r.Get("/difficulty/{gameID}", s.handleDifficulty)
		})
	})

	return r
}

func (s *Server) corsMiddleware() func(http.Handler) http.Handler {
	origins := s.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", profileHeader, "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}).Handler
}
