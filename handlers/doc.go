// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Prompt Battle API.

# Handler Types

Each handler is a struct with its dependencies injected via constructor:

  - BattleHandler: Battle creation, lookup, listing, and stats
  - VoteHandler: Vote casting

	battleHandler := handlers.NewBattleHandler(store, limiter, generator)
	voteHandler := handlers.NewVoteHandler(store, limiter, cfg.VoterSalt)

# Battle Lifecycle

A battle is created with two prompts, generates one AI response per prompt,
and is stored ready for voting:

	POST /api/battles           → Create (validates, generates, stores)
	GET  /api/battles           → List (filter, sort, paginate)
	GET  /api/battles/{id}      → Get (full battle with responses)
	POST /api/battles/{id}/vote → Cast (one vote per voter per battle)

# Request Processing Order

Creation validates input before spending the client's rate budget; read and
vote paths check the rate limit first. Rejected requests never reach the
generation backend.

# Error Envelope

All failures use one JSON envelope with a stable machine-readable code:

	{"error": {"code": "RATE_LIMIT", "message": "...", "statusCode": 429,
	           "details": {"retryAfter": 42}, "timestamp": "..."}}

respondError maps errors from any layer (guard, ratelimit, store, gemini)
onto this envelope; handlers never build it by hand.
*/
package handlers
