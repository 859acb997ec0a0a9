package models

import "time"

// Battle status constants
const (
	StatusGenerating = "generating"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

// Vote choice constants
const (
	VoteA   = "A"
	VoteB   = "B"
	VoteTie = "tie"
)

// List query constants
const (
	SortRecent        = "recent"
	SortPopular       = "popular"
	SortControversial = "controversial"

	FilterAll     = "all"
	FilterDecided = "decided"
	FilterTied    = "tied"
)

// Request types

type CreateBattleRequest struct {
	PromptA string `json:"promptA"`
	PromptB string `json:"promptB"`
	Topic   string `json:"topic,omitempty"`
	UserID  string `json:"userId,omitempty"`
}

type VoteRequest struct {
	Vote    string `json:"vote"`
	VoterID string `json:"voterId,omitempty"`
}

// ListQuery holds validated query parameters for GET /api/battles
type ListQuery struct {
	Offset int
	Limit  int
	SortBy string
	Filter string
}

// Response types

type CreateBattleResponse struct {
	BattleID  string     `json:"battleId"`
	PromptA   string     `json:"promptA"`
	PromptB   string     `json:"promptB"`
	ResponseA string     `json:"responseA"`
	ResponseB string     `json:"responseB"`
	Topic     *string    `json:"topic"`
	Votes     VoteCounts `json:"votes"`
	CreatedAt time.Time  `json:"createdAt"`
	Status    string     `json:"status"`
}

type VoteResponse struct {
	BattleID   string     `json:"battleId"`
	Vote       string     `json:"vote"`
	Votes      VoteCounts `json:"votes"`
	TotalVotes int        `json:"totalVotes"`
	Winner     *string    `json:"winner"`
}

type BattleListItem struct {
	BattleID   string     `json:"battleId"`
	PromptA    string     `json:"promptA"`
	PromptB    string     `json:"promptB"`
	Topic      *string    `json:"topic"`
	Votes      VoteCounts `json:"votes"`
	TotalVotes int        `json:"totalVotes"`
	Winner     *string    `json:"winner"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type Pagination struct {
	Offset  int  `json:"offset"`
	Limit   int  `json:"limit"`
	Total   int  `json:"total"`
	HasMore bool `json:"hasMore"`
}

type ListBattlesResponse struct {
	Battles    []BattleListItem `json:"battles"`
	Pagination Pagination       `json:"pagination"`
}

type StatsResponse struct {
	TotalBattles  int `json:"totalBattles"`
	TotalVotes    int `json:"totalVotes"`
	RateLimitKeys int `json:"rateLimitKeys"`
}

// Domain types

type Battle struct {
	BattleID         string     `json:"battleId"`
	PromptA          string     `json:"promptA"`
	PromptB          string     `json:"promptB"`
	ResponseA        string     `json:"responseA"`
	ResponseB        string     `json:"responseB"`
	Topic            *string    `json:"topic"`
	Votes            VoteCounts `json:"votes"`
	CreatedAt        time.Time  `json:"createdAt"`
	CreatedBy        string     `json:"createdBy,omitempty"`
	GenerationTimeMs int64      `json:"generationTimeMs"`
	Status           string     `json:"status"`
	ErrorDetail      string     `json:"error,omitempty"`
}

type VoteRecord struct {
	VoteID    string    `json:"voteId"`
	BattleID  string    `json:"battleId"`
	Vote      string    `json:"vote"`
	VoterID   string    `json:"-"` // Never expose in JSON
	Timestamp time.Time `json:"timestamp"`
}

// Error response envelope

type ErrorBody struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	StatusCode int            `json:"statusCode"`
	Details    map[string]any `json:"details,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}
