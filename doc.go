// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Prompt Battle API server.

Prompt Battle pits two user-submitted prompts against each other: each prompt
gets one AI-generated response, then the public votes on which response is
better (or calls it a tie). Vote tallies decide a winner and feed ranked
battle lists.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	GEMINI_API_KEY=... VOTER_SALT=... go run main.go

Or with flags:

	go run main.go -p 3411 -model gemini-2.0-flash

A .env file in the working directory is loaded if present.

# Configuration

Required settings:

  - GEMINI_API_KEY (-api-key): Gemini API key for response generation
  - VOTER_SALT (-voter-salt): Secret for anonymous voter hashing

Optional settings:

  - PORT (-p): Server port (default: 3411)
  - GEMINI_MODEL (-model): Generation model (default: gemini-2.0-flash)
  - MAX_BATTLES (-max-battles): In-memory store capacity (default: 1000)
  - ALLOWED_ORIGIN (-origin): CORS origin (default: any)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (battles, voting)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, client identity
  - models: Request/response and domain types
  - guard: Input validation and content screening
  - ratelimit: Fixed-window per-client rate limiting
  - gemini: Generation orchestration with retry and fallback
  - store: Bounded in-memory battle and vote repository
  - auth: Anonymous voter identity hashing
  - cliparse: Configuration parsing

All state is in memory; restarting the server clears battles and votes.

See package documentation for each component.
*/
package main
