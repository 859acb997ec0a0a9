// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package guard validates and sanitizes text crossing the API boundary.

# Create Validation

ValidateCreateBattle enforces length bounds (prompts 10-2000 runes, topic
3-100 when present), rejects verbatim-identical prompt pairs, rejects pairs
whose word-overlap similarity exceeds 0.90, and blocks prompts matching the
unsafe-content patterns (script injection, violence against persons,
SSN/email-shaped substrings).

All failures surface as *ValidationError with a human-readable reason.

# Output Sanitization

Sanitize strips control characters from generated responses before they are
stored; it is not applied to user input.
*/
package guard
