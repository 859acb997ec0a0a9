// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/prompt-battle/auth"
	"github.com/danielhkuo/prompt-battle/guard"
	"github.com/danielhkuo/prompt-battle/middleware"
	"github.com/danielhkuo/prompt-battle/models"
	"github.com/danielhkuo/prompt-battle/ratelimit"
	"github.com/danielhkuo/prompt-battle/store"
)

// VoteHandler handles vote casting.
type VoteHandler struct {
	store     *store.Store
	limiter   *ratelimit.Limiter
	voterSalt string
}

// NewVoteHandler creates a vote handler with its dependencies.
func NewVoteHandler(s *store.Store, l *ratelimit.Limiter, voterSalt string) *VoteHandler {
	return &VoteHandler{store: s, limiter: l, voterSalt: voterSalt}
}

// Cast handles POST /api/battles/{id}/vote. The voter identity comes from the
// request when supplied, otherwise from a salted hash of the client IP, so
// anonymous voters are stable without any stored PII.
func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	clientIP := middleware.GetClientIP(r)
	if err := h.limiter.Enforce(ratelimit.OpVote, clientIP); err != nil {
		respondError(w, err)
		return
	}

	battleID := r.PathValue("id")
	if err := guard.ValidateBattleID(battleID); err != nil {
		respondError(w, err)
		return
	}

	if _, ok := h.store.Get(battleID); !ok {
		respondError(w, &BattleNotFoundError{BattleID: battleID})
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		writeError(w, codeInvalidVote, "request body must be valid JSON", http.StatusBadRequest, nil)
		return
	}

	if err := guard.ValidateVote(req); err != nil {
		writeError(w, codeInvalidVote, err.Error(), http.StatusBadRequest, nil)
		return
	}

	voterID := req.VoterID
	if voterID == "" {
		voterID = auth.VoterID(clientIP, h.voterSalt)
	}

	if h.store.HasVoted(battleID, voterID) {
		respondError(w, store.ErrDuplicateVote)
		return
	}

	record := models.VoteRecord{
		VoteID:    uuid.NewString(),
		BattleID:  battleID,
		Vote:      req.Vote,
		VoterID:   voterID,
		Timestamp: time.Now().UTC(),
	}

	// The store re-checks existence and duplicates under its own lock; the
	// battle may have been evicted since the Get above.
	updated, err := h.store.AddVote(battleID, record)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, &BattleNotFoundError{BattleID: battleID})
			return
		}
		respondError(w, err)
		return
	}

	slog.Info("vote recorded",
		"battle_id", battleID,
		"vote", req.Vote,
		"total", updated.Votes.Total(),
	)

	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{
		BattleID:   battleID,
		Vote:       req.Vote,
		Votes:      updated.Votes,
		TotalVotes: updated.Votes.Total(),
		Winner:     updated.Votes.WinnerPtr(),
	})
}
