// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Prompt Battle API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, limiter, generator, cfg)

# Endpoints

Health:

	GET /health

Battles (public):

	POST /api/battles      - Create battle (generates both responses)
	GET  /api/battles      - List completed battles
	GET  /api/battles/{id} - Get full battle

Voting (public):

	POST /api/battles/{id}/vote - Cast a vote

Operational:

	GET /api/stats - Store and limiter counters

# Handler Initialization

The router creates handler instances with dependency injection:

	battleHandler := handlers.NewBattleHandler(store, limiter, generator)
	voteHandler := handlers.NewVoteHandler(store, limiter, cfg.VoterSalt)

CORS wrapping happens at the server level in main, not per route.
*/
package router
