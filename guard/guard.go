// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package guard

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/danielhkuo/prompt-battle/models"
)

// Length bounds for submitted text, applied after trimming.
const (
	MinPromptLen = 10
	MaxPromptLen = 2000
	MinTopicLen  = 3
	MaxTopicLen  = 100

	// Prompts more alike than this defeat the point of a comparison.
	maxSimilarity = 0.90
)

// ValidationError signals malformed or policy-violating input. It is always
// a client-caused condition and is never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalid(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// blockedPatterns rejects prompts carrying injection markers, violent
// phrasing aimed at people, or personal-identifier-shaped substrings.
var blockedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)on\w+\s*=`),
	regexp.MustCompile(`(?i)\b(kill|harm|attack|bomb|weapon)\s+(people|person|someone|children)\b`),
	regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
	regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
}

var uuidV4Pattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-4[0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)

// controlChars matches characters stripped by Sanitize. Newlines and tabs
// survive; everything else below 0x20 plus DEL goes.
var controlChars = regexp.MustCompile("[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]")

// ValidateCreateBattle trims and checks a create request, returning the
// cleaned request or a *ValidationError.
func ValidateCreateBattle(req models.CreateBattleRequest) (models.CreateBattleRequest, error) {
	req.PromptA = strings.TrimSpace(req.PromptA)
	req.PromptB = strings.TrimSpace(req.PromptB)
	req.Topic = strings.TrimSpace(req.Topic)

	if err := checkPromptLength("promptA", req.PromptA); err != nil {
		return req, err
	}
	if err := checkPromptLength("promptB", req.PromptB); err != nil {
		return req, err
	}

	if req.Topic != "" {
		if n := len([]rune(req.Topic)); n < MinTopicLen || n > MaxTopicLen {
			return req, invalid("topic must be %d-%d characters", MinTopicLen, MaxTopicLen)
		}
	}

	if req.PromptA == req.PromptB {
		return req, invalid("prompts must be different")
	}

	if Similarity(req.PromptA, req.PromptB) > maxSimilarity {
		return req, invalid("prompts are too similar (>90%% match)")
	}

	if containsBlockedContent(req.PromptA) {
		return req, invalid("promptA contains potentially harmful content")
	}
	if containsBlockedContent(req.PromptB) {
		return req, invalid("promptB contains potentially harmful content")
	}

	return req, nil
}

func checkPromptLength(field, prompt string) error {
	n := len([]rune(prompt))
	if n < MinPromptLen {
		return invalid("%s must be at least %d characters", field, MinPromptLen)
	}
	if n > MaxPromptLen {
		return invalid("%s must be at most %d characters", field, MaxPromptLen)
	}
	return nil
}

// ValidateVote checks that the choice is one of A, B, or tie.
func ValidateVote(req models.VoteRequest) error {
	switch req.Vote {
	case models.VoteA, models.VoteB, models.VoteTie:
		return nil
	default:
		return invalid(`vote must be "A", "B", or "tie"`)
	}
}

// ValidateBattleID rejects identifiers that are not UUID-v4 shaped before
// any store lookup is attempted.
func ValidateBattleID(id string) error {
	if !uuidV4Pattern.MatchString(id) {
		return invalid("invalid battle ID format (must be UUID v4)")
	}
	return nil
}

// ParseListQuery validates query parameters for the battle list, applying
// defaults for anything absent.
func ParseListQuery(values url.Values) (models.ListQuery, error) {
	q := models.ListQuery{
		Offset: 0,
		Limit:  20,
		SortBy: models.SortRecent,
		Filter: models.FilterAll,
	}

	if raw := values.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return q, invalid("offset must be a non-negative integer")
		}
		q.Offset = n
	}

	if raw := values.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			return q, invalid("limit must be an integer between 1 and 100")
		}
		q.Limit = n
	}

	if raw := values.Get("sortBy"); raw != "" {
		switch raw {
		case models.SortRecent, models.SortPopular, models.SortControversial:
			q.SortBy = raw
		default:
			return q, invalid(`sortBy must be "recent", "popular", or "controversial"`)
		}
	}

	if raw := values.Get("filter"); raw != "" {
		switch raw {
		case models.FilterAll, models.FilterDecided, models.FilterTied:
			q.Filter = raw
		default:
			return q, invalid(`filter must be "all", "decided", or "tied"`)
		}
	}

	return q, nil
}

// Sanitize strips control characters from generated output before storage.
// Newlines and tabs are preserved.
func Sanitize(text string) string {
	return controlChars.ReplaceAllString(text, "")
}

// Similarity computes word-overlap similarity between two texts: the size of
// the intersection of their lowercase word sets over the size of the union.
func Similarity(a, b string) float64 {
	wordsA := wordSet(a)
	wordsB := wordSet(b)

	if len(wordsA) == 0 && len(wordsB) == 0 {
		return 0
	}

	intersection := 0
	for w := range wordsA {
		if _, ok := wordsB[w]; ok {
			intersection++
		}
	}

	union := len(wordsA) + len(wordsB) - intersection
	return float64(intersection) / float64(union)
}

func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(text)) {
		set[w] = struct{}{}
	}
	return set
}

func containsBlockedContent(text string) bool {
	for _, p := range blockedPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
