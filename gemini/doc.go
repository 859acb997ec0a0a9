// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package gemini drives the upstream text-generation service for battle
creation.

# Orchestration

Service.GenerateComparison issues one generation call per prompt, sharing a
single instructional prefix so neither side gets a framing advantage. Both
calls run concurrently; each retries up to three times on rate-limited
failures with 2s/4s/8s backoff. If the concurrent pass fails for any reason,
one strictly sequential pass is attempted before the error surfaces.

# Error Classification

Upstream failures are bucketed into RATE_LIMIT (retryable), SAFETY
(terminal, user must change input), NETWORK, and UNKNOWN (both terminal).
Callers receive a *Error carrying the Kind.

# Upstream Contract

The orchestrator depends only on the one-method TextGenerator interface;
Client implements it over google.golang.org/genai.
*/
package gemini
