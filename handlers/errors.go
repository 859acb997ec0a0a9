// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/prompt-battle/gemini"
	"github.com/danielhkuo/prompt-battle/guard"
	"github.com/danielhkuo/prompt-battle/middleware"
	"github.com/danielhkuo/prompt-battle/models"
	"github.com/danielhkuo/prompt-battle/ratelimit"
	"github.com/danielhkuo/prompt-battle/store"
)

// Wire error codes. Clients match on these, not on messages.
const (
	codeValidation     = "VALIDATION_ERROR"
	codeInvalidVote    = "INVALID_VOTE"
	codeBattleNotFound = "BATTLE_NOT_FOUND"
	codeAlreadyVoted   = "ALREADY_VOTED"
	codeRateLimit      = "RATE_LIMIT"
	codeGeminiSafety   = "GEMINI_SAFETY"
	codeGeminiError    = "GEMINI_ERROR"
	codeInternal       = "INTERNAL_ERROR"
)

// BattleNotFoundError reports a lookup against an unknown or evicted battle.
type BattleNotFoundError struct {
	BattleID string
}

func (e *BattleNotFoundError) Error() string {
	return fmt.Sprintf("battle with ID %s does not exist", e.BattleID)
}

func writeError(w http.ResponseWriter, code, message string, statusCode int, details map[string]any) {
	middleware.JSONResponse(w, statusCode, models.ErrorResponse{
		Error: models.ErrorBody{
			Code:       code,
			Message:    message,
			StatusCode: statusCode,
			Details:    details,
			Timestamp:  time.Now().UTC(),
		},
	})
}

// respondError maps an error from any layer onto the wire envelope. Unknown
// errors are logged in full but surface only a generic message.
func respondError(w http.ResponseWriter, err error) {
	var validationErr *guard.ValidationError
	var rateErr *ratelimit.RateLimitError
	var notFoundErr *BattleNotFoundError
	var genErr *gemini.Error

	switch {
	case errors.As(err, &validationErr):
		writeError(w, codeValidation, validationErr.Reason, http.StatusBadRequest, nil)

	case errors.As(err, &rateErr):
		seconds := rateErr.RetryAfterSeconds()
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
		writeError(w, codeRateLimit, rateErr.Error(), http.StatusTooManyRequests,
			map[string]any{"retryAfter": seconds})

	case errors.As(err, &notFoundErr):
		writeError(w, codeBattleNotFound, notFoundErr.Error(), http.StatusNotFound, nil)

	case errors.Is(err, store.ErrDuplicateVote):
		writeError(w, codeAlreadyVoted, "you have already voted on this battle", http.StatusConflict, nil)

	case errors.As(err, &genErr):
		if genErr.Kind == gemini.KindSafety {
			writeError(w, codeGeminiSafety, genErr.Message, http.StatusUnprocessableEntity, nil)
			return
		}
		slog.Error("generation failed", "kind", string(genErr.Kind), "error", genErr)
		writeError(w, codeGeminiError, "failed to generate AI responses, please try again",
			http.StatusInternalServerError, nil)

	default:
		slog.Error("unhandled error", "error", err)
		writeError(w, codeInternal, "an unexpected error occurred", http.StatusInternalServerError, nil)
	}
}
