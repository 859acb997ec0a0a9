// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles server configuration from CLI flags and
environment variables.

CLI flags take precedence; env variables fill anything left unset.

Required (env preferred for secrets):

  - GEMINI_API_KEY (-api-key): upstream generation API key
  - VOTER_SALT (-voter-salt): secret for anonymous voter hashing

Optional:

  - PORT (-p): server port (default 3411)
  - GEMINI_MODEL (-model): generation model (orchestrator default applies)
  - MAX_BATTLES (-max-battles): store capacity (store default 1000)
  - ALLOWED_ORIGIN (-origin): CORS origin (default any)
*/
package cliparse
