// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// Kind classifies an upstream generation failure. Only KindRateLimit is
// retried; everything else is terminal for the attempt.
type Kind string

const (
	KindRateLimit Kind = "RATE_LIMIT"
	KindSafety    Kind = "SAFETY"
	KindNetwork   Kind = "NETWORK"
	KindUnknown   Kind = "UNKNOWN"
)

// Error is a classified generation failure.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("generation failed (%s): %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Classify buckets an upstream error by status code and message heuristics.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	code := 0
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		code = apiErr.Code
	}

	msg := strings.ToLower(err.Error())

	switch {
	case code == http.StatusTooManyRequests,
		strings.Contains(msg, "rate limit"),
		strings.Contains(msg, "quota"):
		return KindRateLimit
	case strings.Contains(msg, "safety"),
		strings.Contains(msg, "blocked"):
		return KindSafety
	case errors.Is(err, context.DeadlineExceeded),
		strings.Contains(msg, "timeout"),
		strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "network"):
		return KindNetwork
	default:
		return KindUnknown
	}
}
