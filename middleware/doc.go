// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(cfg.AllowedOrigin, mux),
	}

Handles OPTIONS preflight and sets Access-Control-Max-Age.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)

	var req models.CreateBattleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil { ... }

# Client Identity

GetClientIP returns the first X-Forwarded-For value, then X-Real-IP, then
the sentinel "unknown". It feeds both rate limiting and voter hashing.
*/
package middleware
