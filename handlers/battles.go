// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/prompt-battle/gemini"
	"github.com/danielhkuo/prompt-battle/guard"
	"github.com/danielhkuo/prompt-battle/middleware"
	"github.com/danielhkuo/prompt-battle/models"
	"github.com/danielhkuo/prompt-battle/ratelimit"
	"github.com/danielhkuo/prompt-battle/store"
)

// BattleHandler handles battle creation, lookup, and listing.
type BattleHandler struct {
	store     *store.Store
	limiter   *ratelimit.Limiter
	generator *gemini.Service
}

// NewBattleHandler creates a battle handler with its dependencies.
func NewBattleHandler(s *store.Store, l *ratelimit.Limiter, g *gemini.Service) *BattleHandler {
	return &BattleHandler{store: s, limiter: l, generator: g}
}

// Create handles POST /api/battles. Validation runs before the rate limit
// check so malformed requests never burn the client's creation budget.
func (h *BattleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBattleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		writeError(w, codeValidation, "request body must be valid JSON", http.StatusBadRequest, nil)
		return
	}

	req, err := guard.ValidateCreateBattle(req)
	if err != nil {
		respondError(w, err)
		return
	}

	clientIP := middleware.GetClientIP(r)
	if err := h.limiter.Enforce(ratelimit.OpCreateBattle, clientIP); err != nil {
		respondError(w, err)
		return
	}

	battleID := uuid.NewString()
	slog.Info("creating battle", "battle_id", battleID, "client", clientIP)

	result, err := h.generator.GenerateComparison(r.Context(), req.PromptA, req.PromptB, req.Topic)
	if err != nil {
		respondError(w, err)
		return
	}

	var topic *string
	if req.Topic != "" {
		topic = &req.Topic
	}

	battle := models.Battle{
		BattleID:         battleID,
		PromptA:          req.PromptA,
		PromptB:          req.PromptB,
		ResponseA:        guard.Sanitize(result.ResponseA),
		ResponseB:        guard.Sanitize(result.ResponseB),
		Topic:            topic,
		CreatedAt:        time.Now().UTC(),
		CreatedBy:        req.UserID,
		GenerationTimeMs: result.GenerationTime.Milliseconds(),
		Status:           models.StatusCompleted,
	}
	h.store.Save(battle)

	slog.Info("battle created",
		"battle_id", battleID,
		"generation_ms", battle.GenerationTimeMs,
	)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateBattleResponse{
		BattleID:  battle.BattleID,
		PromptA:   battle.PromptA,
		PromptB:   battle.PromptB,
		ResponseA: battle.ResponseA,
		ResponseB: battle.ResponseB,
		Topic:     battle.Topic,
		Votes:     battle.Votes,
		CreatedAt: battle.CreatedAt,
		Status:    battle.Status,
	})
}

// Get handles GET /api/battles/{id}.
func (h *BattleHandler) Get(w http.ResponseWriter, r *http.Request) {
	if err := h.limiter.Enforce(ratelimit.OpGetBattle, middleware.GetClientIP(r)); err != nil {
		respondError(w, err)
		return
	}

	battleID := r.PathValue("id")
	if err := guard.ValidateBattleID(battleID); err != nil {
		respondError(w, err)
		return
	}

	battle, ok := h.store.Get(battleID)
	if !ok {
		respondError(w, &BattleNotFoundError{BattleID: battleID})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, battle)
}

// List handles GET /api/battles.
func (h *BattleHandler) List(w http.ResponseWriter, r *http.Request) {
	if err := h.limiter.Enforce(ratelimit.OpListBattles, middleware.GetClientIP(r)); err != nil {
		respondError(w, err)
		return
	}

	q, err := guard.ParseListQuery(r.URL.Query())
	if err != nil {
		respondError(w, err)
		return
	}

	items, total := h.store.List(q)

	middleware.JSONResponse(w, http.StatusOK, models.ListBattlesResponse{
		Battles: items,
		Pagination: models.Pagination{
			Offset:  q.Offset,
			Limit:   q.Limit,
			Total:   total,
			HasMore: q.Offset+q.Limit < total,
		},
	})
}

// Stats handles GET /api/stats.
func (h *BattleHandler) Stats(w http.ResponseWriter, r *http.Request) {
	battles, votes := h.store.Stats()

	middleware.JSONResponse(w, http.StatusOK, models.StatsResponse{
		TotalBattles:  battles,
		TotalVotes:    votes,
		RateLimitKeys: h.limiter.Keys(),
	})
}
