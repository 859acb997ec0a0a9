// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ratelimit bounds request volume per client and operation class using
fixed-window counting.

# Usage

One long-lived Limiter is shared by all handlers:

	limiter := ratelimit.NewLimiter(nil) // DefaultPolicies
	if err := limiter.Enforce(ratelimit.OpVote, clientKey); err != nil {
		// err is *RateLimitError carrying RetryAfter
	}

Keys are "op:clientKey". Windows reset lazily on the first check after
expiry. StartSweeper evicts stale keys periodically to bound memory; the
sweep is housekeeping, never a correctness requirement.
*/
package ratelimit
