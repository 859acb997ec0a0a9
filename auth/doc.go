// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package auth derives anonymous voter identities. VoterID hashes the
// client network address with a server-side salt so duplicate-vote checks
// work without ever exposing or storing the raw address.
package auth
