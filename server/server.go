// Package server exposes the agent over HTTP: a decision endpoint, a
// learning endpoint, a health check and a Q-table dump. Every request
// loads the table fresh from the store; only learning writes it back.
package server

import (
	"net/http"
	"time"

	"tictac/agent"
	"tictac/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

type Server struct {
	agent  *agent.Agent
	store  store.Store
	logger zerolog.Logger
}

func New(a *agent.Agent, s store.Store, logger zerolog.Logger) *Server {
	return &Server{agent: a, store: s, logger: logger}
}

// Router builds the HTTP handler with request logging and timing.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(hlog.NewHandler(s.logger))
	r.Use(hlog.AccessHandler(func(req *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(req).Info().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Int("status", status).
			Dur("duration", duration).
			Msg("request processed")
	}))

	r.Get("/health", s.handleHealth)
	r.Post("/get_move", s.handleGetMove)
	r.Post("/learn", s.handleLearn)
	r.Get("/", s.handleIndex)
	return r
}
