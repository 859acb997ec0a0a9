// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/prompt-battle/cliparse"
	"github.com/danielhkuo/prompt-battle/gemini"
	"github.com/danielhkuo/prompt-battle/models"
	"github.com/danielhkuo/prompt-battle/ratelimit"
	"github.com/danielhkuo/prompt-battle/store"
)

// FakeGenerator implements gemini.TextGenerator without upstream calls.
// Responses can be scripted through Respond; the default is a canned
// non-empty response.
type FakeGenerator struct {
	mu    sync.Mutex
	calls int

	// Respond overrides the canned output. call is 1-based across all
	// goroutines.
	Respond func(call int, prompt string) (string, error)
}

func (f *FakeGenerator) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.mu.Unlock()

	if f.Respond != nil {
		return f.Respond(call, prompt)
	}
	return fmt.Sprintf("Generated response %d for testing", call), nil
}

// Calls returns how many generation calls were made.
func (f *FakeGenerator) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// NewTestService builds an orchestrator over gen, or over a fresh
// FakeGenerator when gen is nil.
func NewTestService(gen gemini.TextGenerator) *gemini.Service {
	if gen == nil {
		gen = &FakeGenerator{}
	}
	return gemini.NewService(gen, "test-model")
}

// NewTestLimiter returns a limiter whose budgets are high enough that tests
// never trip them by accident. Tests exercising rate limiting build their own
// strict policies.
func NewTestLimiter() *ratelimit.Limiter {
	policies := make(map[string]ratelimit.Policy, len(ratelimit.DefaultPolicies))
	for op := range ratelimit.DefaultPolicies {
		policies[op] = ratelimit.Policy{MaxRequests: 10000, Window: time.Minute}
	}
	return ratelimit.NewLimiter(policies)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3411,
		GeminiAPIKey: "test-api-key",
		GeminiModel:  "test-model",
		VoterSalt:    "test-voter-salt",
		MaxBattles:   100,
	}
}

// SeedBattle saves a completed battle and casts the given votes from distinct
// seeded voters, returning the battle as stored.
func SeedBattle(t *testing.T, s *store.Store, votes models.VoteCounts) models.Battle {
	t.Helper()

	battle := models.Battle{
		BattleID:  uuid.NewString(),
		PromptA:   "Write a haiku about the ocean at dawn",
		PromptB:   "Compose a limerick about morning coffee",
		ResponseA: "Test response A",
		ResponseB: "Test response B",
		Status:    models.StatusCompleted,
		CreatedAt: time.Now().UTC(),
	}
	s.Save(battle)

	voter := 0
	cast := func(choice string, n int) {
		for i := 0; i < n; i++ {
			voter++
			record := models.VoteRecord{
				VoteID:    uuid.NewString(),
				BattleID:  battle.BattleID,
				Vote:      choice,
				VoterID:   fmt.Sprintf("seed-voter-%d", voter),
				Timestamp: time.Now().UTC(),
			}
			if _, err := s.AddVote(battle.BattleID, record); err != nil {
				t.Fatalf("Failed to seed vote: %v", err)
			}
		}
	}
	cast(models.VoteA, votes.A)
	cast(models.VoteB, votes.B)
	cast(models.VoteTie, votes.Tie)

	battle.Votes = votes
	return battle
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertErrorCode checks that the body carries the wire error envelope with
// the expected code.
func AssertErrorCode(t *testing.T, w *httptest.ResponseRecorder, expected string) {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error.Code != expected {
		t.Errorf("Expected error code %s, got %s (%s)", expected, resp.Error.Code, resp.Error.Message)
	}
}
