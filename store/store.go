// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/danielhkuo/prompt-battle/models"
)

// ErrNotFound reports an absent battle; callers decide whether absence is an
// error (it may be normal expiry from eviction).
var ErrNotFound = errors.New("battle not found")

// ErrDuplicateVote reports a second vote from the same voter identity.
var ErrDuplicateVote = errors.New("voter already has a vote on this battle")

// DefaultMaxBattles bounds the store when no capacity is configured.
const DefaultMaxBattles = 1000

// listPromptLimit truncates prompts in list items.
const listPromptLimit = 100

// Store is the authoritative in-memory repository of battles and their vote
// records. It owns every Battle and VoteRecord; callers get copies. All
// access goes through one RWMutex so readers never observe a vote record
// without its counter increment or vice versa.
type Store struct {
	mu          sync.RWMutex
	battles     map[string]*models.Battle
	voteRecords map[string][]models.VoteRecord
	insertOrder []string
	maxBattles  int
}

// New creates a store holding at most maxBattles battles
// (DefaultMaxBattles when <= 0).
func New(maxBattles int) *Store {
	if maxBattles <= 0 {
		maxBattles = DefaultMaxBattles
	}
	return &Store{
		battles:     make(map[string]*models.Battle),
		voteRecords: make(map[string][]models.VoteRecord),
		maxBattles:  maxBattles,
	}
}

// Save inserts a battle, evicting the oldest-inserted battles (and their
// vote records) when capacity is exceeded.
func (s *Store) Save(battle models.Battle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := battle
	s.battles[b.BattleID] = &b
	s.insertOrder = append(s.insertOrder, b.BattleID)
	s.voteRecords[b.BattleID] = nil

	s.evictLocked()
}

func (s *Store) evictLocked() {
	if len(s.battles) <= s.maxBattles {
		return
	}

	toRemove := len(s.battles) - s.maxBattles
	for _, id := range s.insertOrder[:toRemove] {
		delete(s.battles, id)
		delete(s.voteRecords, id)
	}
	s.insertOrder = s.insertOrder[toRemove:]

	slog.Info("evicted old battles", "removed", toRemove, "total", len(s.battles))
}

// Get returns a copy of the battle, with ok=false when absent.
func (s *Store) Get(id string) (models.Battle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.battles[id]
	if !ok {
		return models.Battle{}, false
	}
	return *b, true
}

// AddVote appends the record and increments the matching counter as one
// operation. The duplicate check runs under the same lock, so two racing
// requests from one voter can never both count. Absent battles (including
// ones evicted between a caller's existence check and this call) return
// ErrNotFound.
func (s *Store) AddVote(id string, record models.VoteRecord) (models.Battle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.battles[id]
	if !ok {
		return models.Battle{}, ErrNotFound
	}
	if b.Status != models.StatusCompleted {
		return models.Battle{}, ErrNotFound
	}

	for _, rec := range s.voteRecords[id] {
		if rec.VoterID == record.VoterID {
			return *b, ErrDuplicateVote
		}
	}

	s.voteRecords[id] = append(s.voteRecords[id], record)

	switch record.Vote {
	case models.VoteA:
		b.Votes.A++
	case models.VoteB:
		b.Votes.B++
	case models.VoteTie:
		b.Votes.Tie++
	}

	return *b, nil
}

// HasVoted reports whether voterID already has a record on the battle.
func (s *Store) HasVoted(id, voterID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.voteRecords[id] {
		if rec.VoterID == voterID {
			return true
		}
	}
	return false
}

// List returns completed battles filtered, sorted, and paginated, plus the
// total count after filtering. Prompts in items are truncated. Battles are
// copied out under the lock; sorting and item building work on the copies so
// concurrent vote updates cannot tear a tally mid-read.
func (s *Store) List(q models.ListQuery) ([]models.BattleListItem, int) {
	s.mu.RLock()

	filtered := make([]models.Battle, 0, len(s.battles))
	for _, b := range s.battles {
		if b.Status != models.StatusCompleted {
			continue
		}
		if !matchesFilter(b, q.Filter) {
			continue
		}
		filtered = append(filtered, *b)
	}

	s.mu.RUnlock()

	sortBattles(filtered, q.SortBy)

	total := len(filtered)
	start := q.Offset
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}

	items := make([]models.BattleListItem, 0, end-start)
	for _, b := range filtered[start:end] {
		items = append(items, models.BattleListItem{
			BattleID:   b.BattleID,
			PromptA:    truncate(b.PromptA, listPromptLimit),
			PromptB:    truncate(b.PromptB, listPromptLimit),
			Topic:      b.Topic,
			Votes:      b.Votes,
			TotalVotes: b.Votes.Total(),
			Winner:     b.Votes.WinnerPtr(),
			CreatedAt:  b.CreatedAt,
		})
	}

	return items, total
}

func matchesFilter(b *models.Battle, filter string) bool {
	switch filter {
	case models.FilterDecided:
		return b.Votes.Total() > 0 && b.Votes.A != b.Votes.B
	case models.FilterTied:
		return b.Votes.Total() > 0 && b.Votes.A == b.Votes.B
	default:
		return true
	}
}

func sortBattles(battles []models.Battle, sortBy string) {
	switch sortBy {
	case models.SortPopular:
		sort.SliceStable(battles, func(i, j int) bool {
			ti, tj := battles[i].Votes.Total(), battles[j].Votes.Total()
			if ti != tj {
				return ti > tj
			}
			return battles[i].CreatedAt.After(battles[j].CreatedAt)
		})
	case models.SortControversial:
		// Closest contests first.
		sort.SliceStable(battles, func(i, j int) bool {
			return absDiff(battles[i].Votes) < absDiff(battles[j].Votes)
		})
	default:
		sort.SliceStable(battles, func(i, j int) bool {
			return battles[i].CreatedAt.After(battles[j].CreatedAt)
		})
	}
}

func absDiff(v models.VoteCounts) int {
	d := v.A - v.B
	if d < 0 {
		return -d
	}
	return d
}

func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return strings.TrimRight(string(runes[:max-3]), " ") + "..."
}

// Len returns the number of stored battles.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.battles)
}

// Stats reports battle and vote totals for the stats endpoint.
func (s *Store) Stats() (totalBattles, totalVotes int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, records := range s.voteRecords {
		totalVotes += len(records)
	}
	return len(s.battles), totalVotes
}
