// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/prompt-battle/cliparse"
	"github.com/danielhkuo/prompt-battle/gemini"
	"github.com/danielhkuo/prompt-battle/handlers"
	"github.com/danielhkuo/prompt-battle/middleware"
	"github.com/danielhkuo/prompt-battle/ratelimit"
	"github.com/danielhkuo/prompt-battle/store"
)

func NewRouter(s *store.Store, limiter *ratelimit.Limiter, generator *gemini.Service, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	battleHandler := handlers.NewBattleHandler(s, limiter, generator)
	voteHandler := handlers.NewVoteHandler(s, limiter, cfg.VoterSalt)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Battle lifecycle
	mux.HandleFunc("POST /api/battles", middleware.WithLogging(battleHandler.Create))
	mux.HandleFunc("GET /api/battles", middleware.WithLogging(battleHandler.List))
	mux.HandleFunc("GET /api/battles/{id}", middleware.WithLogging(battleHandler.Get))

	// Voting (public)
	mux.HandleFunc("POST /api/battles/{id}/vote", middleware.WithLogging(voteHandler.Cast))

	// Operational stats
	mux.HandleFunc("GET /api/stats", middleware.WithLogging(battleHandler.Stats))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("prompt-battle API v1"))
	})

	return mux
}
