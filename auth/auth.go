// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VoterID derives an anonymous voter identity from a client IP. The raw
// address never crosses the API boundary; the salt prevents rainbow-table
// reversal. First 16 hex chars (64 bits) are enough for deduplication.
func VoterID(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	return "voter_" + hex.EncodeToString(sum[:8])
}
