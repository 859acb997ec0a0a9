// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/prompt-battle/models"
)

func makeBattle(createdAt time.Time) models.Battle {
	return models.Battle{
		BattleID:  uuid.NewString(),
		PromptA:   "First contestant prompt",
		PromptB:   "Second contestant prompt",
		Status:    models.StatusCompleted,
		CreatedAt: createdAt,
	}
}

func makeVote(battleID, voterID, choice string) models.VoteRecord {
	return models.VoteRecord{
		VoteID:    uuid.NewString(),
		BattleID:  battleID,
		Vote:      choice,
		VoterID:   voterID,
		Timestamp: time.Now(),
	}
}

func TestSaveAndGet(t *testing.T) {
	s := New(10)
	b := makeBattle(time.Now())
	s.Save(b)

	got, ok := s.Get(b.BattleID)
	require.True(t, ok)
	assert.Equal(t, b.BattleID, got.BattleID)

	_, ok = s.Get(uuid.NewString())
	assert.False(t, ok)
}

func TestGetReturnsCopy(t *testing.T) {
	s := New(10)
	b := makeBattle(time.Now())
	s.Save(b)

	got, _ := s.Get(b.BattleID)
	got.Votes.A = 99

	fresh, _ := s.Get(b.BattleID)
	assert.Equal(t, 0, fresh.Votes.A, "mutating a returned battle must not touch store state")
}

func TestAddVoteIncrementsCounters(t *testing.T) {
	s := New(10)
	b := makeBattle(time.Now())
	s.Save(b)

	updated, err := s.AddVote(b.BattleID, makeVote(b.BattleID, "voter-1", models.VoteA))
	require.NoError(t, err)
	assert.Equal(t, models.VoteCounts{A: 1}, updated.Votes)

	updated, _ = s.AddVote(b.BattleID, makeVote(b.BattleID, "voter-2", models.VoteTie))
	assert.Equal(t, models.VoteCounts{A: 1, Tie: 1}, updated.Votes)
}

func TestAddVoteAbsentBattle(t *testing.T) {
	s := New(10)
	_, err := s.AddVote(uuid.NewString(), makeVote("x", "voter-1", models.VoteA))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddVoteDuplicateVoter(t *testing.T) {
	s := New(10)
	b := makeBattle(time.Now())
	s.Save(b)

	_, err := s.AddVote(b.BattleID, makeVote(b.BattleID, "voter-1", models.VoteA))
	require.NoError(t, err)

	// Same voter again, even with a different choice, must not count.
	_, err = s.AddVote(b.BattleID, makeVote(b.BattleID, "voter-1", models.VoteB))
	assert.ErrorIs(t, err, ErrDuplicateVote)

	got, _ := s.Get(b.BattleID)
	assert.Equal(t, models.VoteCounts{A: 1}, got.Votes)
}

func TestAddVoteRejectsIncompleteBattle(t *testing.T) {
	s := New(10)
	b := makeBattle(time.Now())
	b.Status = models.StatusError
	s.Save(b)

	_, err := s.AddVote(b.BattleID, makeVote(b.BattleID, "voter-1", models.VoteA))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHasVoted(t *testing.T) {
	s := New(10)
	b := makeBattle(time.Now())
	s.Save(b)

	assert.False(t, s.HasVoted(b.BattleID, "voter-1"))
	s.AddVote(b.BattleID, makeVote(b.BattleID, "voter-1", models.VoteB))
	assert.True(t, s.HasVoted(b.BattleID, "voter-1"))
	assert.False(t, s.HasVoted(b.BattleID, "voter-2"))
}

func TestEvictionOldestFirst(t *testing.T) {
	const capacity = 5
	s := New(capacity)

	ids := make([]string, 0, capacity+1)
	base := time.Now()
	for i := 0; i < capacity+1; i++ {
		b := makeBattle(base.Add(time.Duration(i) * time.Second))
		s.Save(b)
		ids = append(ids, b.BattleID)
		if i == 0 {
			s.AddVote(b.BattleID, makeVote(b.BattleID, "early-voter", models.VoteA))
		}
	}

	assert.Equal(t, capacity, s.Len())

	// Earliest inserted battle is gone, along with its vote records.
	_, ok := s.Get(ids[0])
	assert.False(t, ok)
	assert.False(t, s.HasVoted(ids[0], "early-voter"))

	for _, id := range ids[1:] {
		_, ok := s.Get(id)
		assert.True(t, ok, "battle %s should survive", id)
	}
}

func TestVoteSumMatchesRecords(t *testing.T) {
	s := New(10)
	b := makeBattle(time.Now())
	s.Save(b)

	choices := []string{models.VoteA, models.VoteA, models.VoteB, models.VoteTie, models.VoteA, models.VoteB}
	for i, c := range choices {
		_, err := s.AddVote(b.BattleID, makeVote(b.BattleID, fmt.Sprintf("voter-%d", i), c))
		require.NoError(t, err)
	}

	got, _ := s.Get(b.BattleID)
	assert.Equal(t, len(choices), got.Votes.Total())
	assert.Equal(t, models.VoteCounts{A: 3, B: 2, Tie: 1}, got.Votes)
}

func TestConcurrentAddVoteSameBattle(t *testing.T) {
	s := New(10)
	b := makeBattle(time.Now())
	s.Save(b)

	const voters = 100
	var wg sync.WaitGroup
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			choice := models.VoteA
			if n%2 == 1 {
				choice = models.VoteB
			}
			s.AddVote(b.BattleID, makeVote(b.BattleID, fmt.Sprintf("voter-%d", n), choice))
		}(i)
	}
	wg.Wait()

	got, _ := s.Get(b.BattleID)
	assert.Equal(t, voters, got.Votes.Total(), "no increment may be lost under contention")
	assert.Equal(t, voters/2, got.Votes.A)
	assert.Equal(t, voters/2, got.Votes.B)
}

func TestConcurrentListDuringVotes(t *testing.T) {
	s := New(10)
	b := makeBattle(time.Now())
	s.Save(b)

	const voters = 50
	var wg sync.WaitGroup
	for i := 0; i < voters; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			s.AddVote(b.BattleID, makeVote(b.BattleID, fmt.Sprintf("voter-%d", n), models.VoteA))
		}(i)
		go func() {
			defer wg.Done()
			// Listing while votes land must return internally consistent
			// snapshots, never a tally torn mid-update.
			items, _ := s.List(models.ListQuery{Limit: 20, SortBy: models.SortPopular})
			for _, item := range items {
				if item.TotalVotes != item.Votes.Total() {
					t.Errorf("list item tally out of sync: totalVotes=%d counts=%+v",
						item.TotalVotes, item.Votes)
				}
			}
		}()
	}
	wg.Wait()

	got, _ := s.Get(b.BattleID)
	assert.Equal(t, voters, got.Votes.Total())
}

func TestListFiltersIncomplete(t *testing.T) {
	s := New(10)
	done := makeBattle(time.Now())
	s.Save(done)

	failed := makeBattle(time.Now())
	failed.Status = models.StatusError
	s.Save(failed)

	items, total := s.List(models.ListQuery{Limit: 20, SortBy: models.SortRecent, Filter: models.FilterAll})
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, done.BattleID, items[0].BattleID)
}

func TestListDecidedAndTied(t *testing.T) {
	s := New(10)

	decided := makeBattle(time.Now())
	s.Save(decided)
	s.AddVote(decided.BattleID, makeVote(decided.BattleID, "v1", models.VoteA))

	tied := makeBattle(time.Now())
	s.Save(tied)
	s.AddVote(tied.BattleID, makeVote(tied.BattleID, "v1", models.VoteA))
	s.AddVote(tied.BattleID, makeVote(tied.BattleID, "v2", models.VoteB))

	unvoted := makeBattle(time.Now())
	s.Save(unvoted)

	items, total := s.List(models.ListQuery{Limit: 20, Filter: models.FilterDecided})
	assert.Equal(t, 1, total)
	assert.Equal(t, decided.BattleID, items[0].BattleID)

	items, total = s.List(models.ListQuery{Limit: 20, Filter: models.FilterTied})
	assert.Equal(t, 1, total)
	assert.Equal(t, tied.BattleID, items[0].BattleID)
}

func TestListSortOrders(t *testing.T) {
	s := New(10)
	base := time.Now()

	oldest := makeBattle(base.Add(-2 * time.Hour))
	middle := makeBattle(base.Add(-1 * time.Hour))
	newest := makeBattle(base)
	s.Save(oldest)
	s.Save(middle)
	s.Save(newest)

	// middle: 3 votes, lopsided; oldest: 2 votes, close; newest: none.
	s.AddVote(middle.BattleID, makeVote(middle.BattleID, "v1", models.VoteA))
	s.AddVote(middle.BattleID, makeVote(middle.BattleID, "v2", models.VoteA))
	s.AddVote(middle.BattleID, makeVote(middle.BattleID, "v3", models.VoteA))
	s.AddVote(oldest.BattleID, makeVote(oldest.BattleID, "v1", models.VoteA))
	s.AddVote(oldest.BattleID, makeVote(oldest.BattleID, "v2", models.VoteB))

	items, _ := s.List(models.ListQuery{Limit: 20, SortBy: models.SortRecent})
	require.Len(t, items, 3)
	assert.Equal(t, newest.BattleID, items[0].BattleID)
	assert.Equal(t, oldest.BattleID, items[2].BattleID)

	items, _ = s.List(models.ListQuery{Limit: 20, SortBy: models.SortPopular})
	assert.Equal(t, middle.BattleID, items[0].BattleID)
	assert.Equal(t, oldest.BattleID, items[1].BattleID)
	assert.Equal(t, newest.BattleID, items[2].BattleID)

	items, _ = s.List(models.ListQuery{Limit: 20, SortBy: models.SortControversial})
	// |A-B|: oldest 0, newest 0, middle 3. Closest first.
	assert.Equal(t, middle.BattleID, items[2].BattleID)
}

func TestListPagination(t *testing.T) {
	s := New(20)
	base := time.Now()
	for i := 0; i < 5; i++ {
		s.Save(makeBattle(base.Add(time.Duration(i) * time.Minute)))
	}

	items, total := s.List(models.ListQuery{Offset: 0, Limit: 2, SortBy: models.SortRecent})
	assert.Equal(t, 5, total)
	assert.Len(t, items, 2)

	items, _ = s.List(models.ListQuery{Offset: 4, Limit: 2, SortBy: models.SortRecent})
	assert.Len(t, items, 1)

	items, _ = s.List(models.ListQuery{Offset: 10, Limit: 2, SortBy: models.SortRecent})
	assert.Empty(t, items)
}

func TestListTruncatesPrompts(t *testing.T) {
	s := New(10)
	b := makeBattle(time.Now())
	b.PromptA = strings.Repeat("a", 150)
	s.Save(b)

	items, _ := s.List(models.ListQuery{Limit: 20})
	require.Len(t, items, 1)
	assert.Len(t, items[0].PromptA, 100)
	assert.True(t, strings.HasSuffix(items[0].PromptA, "..."))
	assert.Equal(t, "Second contestant prompt", items[0].PromptB)
}

func TestStats(t *testing.T) {
	s := New(10)
	b1 := makeBattle(time.Now())
	b2 := makeBattle(time.Now())
	s.Save(b1)
	s.Save(b2)
	s.AddVote(b1.BattleID, makeVote(b1.BattleID, "v1", models.VoteA))
	s.AddVote(b2.BattleID, makeVote(b2.BattleID, "v1", models.VoteB))
	s.AddVote(b2.BattleID, makeVote(b2.BattleID, "v2", models.VoteTie))

	battles, votes := s.Stats()
	assert.Equal(t, 2, battles)
	assert.Equal(t, 3, votes)
}
