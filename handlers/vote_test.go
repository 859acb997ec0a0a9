package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/prompt-battle/models"
	"github.com/danielhkuo/prompt-battle/ratelimit"
	"github.com/danielhkuo/prompt-battle/store"
	"github.com/danielhkuo/prompt-battle/testutil"
)

func newTestVoteHandler() (*VoteHandler, *store.Store) {
	s := store.New(100)
	return NewVoteHandler(s, testutil.NewTestLimiter(), "test-voter-salt"), s
}

func castVote(handler *VoteHandler, battleID string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	req := testutil.MakeRequest("POST", "/api/battles/"+battleID+"/vote", body, headers)
	req.SetPathValue("id", battleID)
	w := httptest.NewRecorder()
	handler.Cast(w, req)
	return w
}

func TestCastVote(t *testing.T) {
	handler, s := newTestVoteHandler()
	battle := testutil.SeedBattle(t, s, models.VoteCounts{})

	w := castVote(handler, battle.BattleID, models.VoteRequest{Vote: models.VoteA},
		map[string]string{"X-Forwarded-For": "203.0.113.1"})

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.VoteResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Votes.A != 1 || resp.TotalVotes != 1 {
		t.Errorf("Expected one A vote, got %+v", resp.Votes)
	}
	if resp.Winner == nil || *resp.Winner != models.VoteA {
		t.Error("Expected winner A after a single A vote")
	}
}

func TestCastVoteDuplicateVoter(t *testing.T) {
	handler, s := newTestVoteHandler()
	battle := testutil.SeedBattle(t, s, models.VoteCounts{})
	headers := map[string]string{"X-Forwarded-For": "203.0.113.1"}

	w := castVote(handler, battle.BattleID, models.VoteRequest{Vote: models.VoteA}, headers)
	testutil.AssertStatus(t, w, http.StatusOK)

	// Same client IP hashes to the same anonymous voter.
	w = castVote(handler, battle.BattleID, models.VoteRequest{Vote: models.VoteB}, headers)
	testutil.AssertStatus(t, w, http.StatusConflict)
	testutil.AssertErrorCode(t, w, "ALREADY_VOTED")

	got, _ := s.Get(battle.BattleID)
	if got.Votes.Total() != 1 {
		t.Errorf("Duplicate vote must not count, got %d votes", got.Votes.Total())
	}

	// A different client may still vote.
	w = castVote(handler, battle.BattleID, models.VoteRequest{Vote: models.VoteB},
		map[string]string{"X-Forwarded-For": "203.0.113.2"})
	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestCastVoteExplicitVoterID(t *testing.T) {
	handler, s := newTestVoteHandler()
	battle := testutil.SeedBattle(t, s, models.VoteCounts{})
	headers := map[string]string{"X-Forwarded-For": "203.0.113.1"}

	// Two distinct self-supplied voter IDs from one IP both count.
	w := castVote(handler, battle.BattleID, models.VoteRequest{Vote: models.VoteA, VoterID: "voter_aaa"}, headers)
	testutil.AssertStatus(t, w, http.StatusOK)

	w = castVote(handler, battle.BattleID, models.VoteRequest{Vote: models.VoteB, VoterID: "voter_bbb"}, headers)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.VoteResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.TotalVotes != 2 {
		t.Errorf("Expected 2 votes, got %d", resp.TotalVotes)
	}
	if resp.Winner == nil || *resp.Winner != models.VoteTie {
		t.Error("Expected tie with counts 1-1")
	}
}

func TestCastVoteValidation(t *testing.T) {
	handler, s := newTestVoteHandler()
	battle := testutil.SeedBattle(t, s, models.VoteCounts{})

	t.Run("invalid choice", func(t *testing.T) {
		w := castVote(handler, battle.BattleID, models.VoteRequest{Vote: "C"}, nil)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
		testutil.AssertErrorCode(t, w, "INVALID_VOTE")
	})

	t.Run("malformed battle id", func(t *testing.T) {
		w := castVote(handler, "not-a-uuid", models.VoteRequest{Vote: models.VoteA}, nil)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
		testutil.AssertErrorCode(t, w, "VALIDATION_ERROR")
	})

	t.Run("unknown battle", func(t *testing.T) {
		w := castVote(handler, uuid.NewString(), models.VoteRequest{Vote: models.VoteA}, nil)
		testutil.AssertStatus(t, w, http.StatusNotFound)
		testutil.AssertErrorCode(t, w, "BATTLE_NOT_FOUND")
	})

	t.Run("invalid JSON body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/battles/"+battle.BattleID+"/vote",
			strings.NewReader("{not json"))
		req.SetPathValue("id", battle.BattleID)
		w := httptest.NewRecorder()

		handler.Cast(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
		testutil.AssertErrorCode(t, w, "INVALID_VOTE")
	})
}

func TestCastVoteRateLimited(t *testing.T) {
	s := store.New(100)
	limiter := ratelimit.NewLimiter(map[string]ratelimit.Policy{
		ratelimit.OpVote: {MaxRequests: 1, Window: time.Minute},
	})
	handler := NewVoteHandler(s, limiter, "test-voter-salt")
	battle := testutil.SeedBattle(t, s, models.VoteCounts{})
	headers := map[string]string{"X-Forwarded-For": "203.0.113.1"}

	w := castVote(handler, battle.BattleID, models.VoteRequest{Vote: models.VoteA}, headers)
	testutil.AssertStatus(t, w, http.StatusOK)

	w = castVote(handler, battle.BattleID, models.VoteRequest{Vote: models.VoteA}, headers)
	testutil.AssertStatus(t, w, http.StatusTooManyRequests)
	testutil.AssertErrorCode(t, w, "RATE_LIMIT")
}

func TestCastVoteWinnerProgression(t *testing.T) {
	handler, s := newTestVoteHandler()
	battle := testutil.SeedBattle(t, s, models.VoteCounts{})

	// 1-0: A leads.
	w := castVote(handler, battle.BattleID,
		models.VoteRequest{Vote: models.VoteA, VoterID: "voter_1"}, nil)
	var resp models.VoteResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Winner == nil || *resp.Winner != models.VoteA {
		t.Error("Expected winner A at 1-0")
	}

	// 1-1: tie.
	w = castVote(handler, battle.BattleID,
		models.VoteRequest{Vote: models.VoteB, VoterID: "voter_2"}, nil)
	testutil.AssertJSON(t, w, &resp)
	if resp.Winner == nil || *resp.Winner != models.VoteTie {
		t.Error("Expected tie at 1-1")
	}

	// 1-2: B leads.
	w = castVote(handler, battle.BattleID,
		models.VoteRequest{Vote: models.VoteB, VoterID: "voter_3"}, nil)
	testutil.AssertJSON(t, w, &resp)
	if resp.Winner == nil || *resp.Winner != models.VoteB {
		t.Error("Expected winner B at 1-2")
	}
}
