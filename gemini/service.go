// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package gemini

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

// maxRetries is the per-call retry budget for rate-limited attempts.
const maxRetries = 3

// Result holds both generated responses and the end-to-end generation time,
// measured from dispatch until both results are available.
type Result struct {
	ResponseA      string
	ResponseB      string
	GenerationTime time.Duration
}

// Service orchestrates the dual-prompt generation: parallel dispatch with
// per-call retry on rate limits, and one sequential fallback pass when the
// parallel dispatch fails.
type Service struct {
	gen   TextGenerator
	model string

	// sleep is the backoff delay; injectable so tests observe waits
	// without waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewService creates an orchestrator over gen. model falls back to
// DefaultModel when empty.
func NewService(gen TextGenerator, model string) *Service {
	if model == "" {
		model = DefaultModel
	}
	return &Service{
		gen:   gen,
		model: model,
		sleep: sleepContext,
	}
}

// GenerateComparison produces one response per prompt. Both calls run
// concurrently; if that pass fails for any reason, one strictly sequential
// retry is made (A fully resolved, including its own retries, before B
// starts). Responses are never cached.
func (s *Service) GenerateComparison(ctx context.Context, promptA, promptB, topic string) (Result, error) {
	start := time.Now()
	system := buildSystemPrompt(topic)

	var responseA, responseB string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		responseA, err = s.generateSingle(gctx, system, promptA, "A")
		return err
	})
	g.Go(func() error {
		var err error
		responseB, err = s.generateSingle(gctx, system, promptB, "B")
		return err
	})

	if err := g.Wait(); err != nil {
		slog.Warn("concurrent generation failed, retrying sequentially", "error", err)
		return s.generateSequential(ctx, system, promptA, promptB, start)
	}

	elapsed := time.Since(start)
	slog.Info("generated comparison", "duration_ms", elapsed.Milliseconds())

	return Result{ResponseA: responseA, ResponseB: responseB, GenerationTime: elapsed}, nil
}

// generateSequential is the fallback pass. Worst case this doubles latency,
// in exchange for recovering from transient cross-request contention.
func (s *Service) generateSequential(ctx context.Context, system, promptA, promptB string, start time.Time) (Result, error) {
	responseA, err := s.generateSingle(ctx, system, promptA, "A")
	if err != nil {
		return Result{}, err
	}

	responseB, err := s.generateSingle(ctx, system, promptB, "B")
	if err != nil {
		return Result{}, err
	}

	elapsed := time.Since(start)
	slog.Info("generated comparison sequentially", "duration_ms", elapsed.Milliseconds())

	return Result{ResponseA: responseA, ResponseB: responseB, GenerationTime: elapsed}, nil
}

// generateSingle runs one generation call with retries. Only rate-limited
// failures are retried, with backoff 2^attempt seconds (2s, 4s, 8s). An
// empty or whitespace-only response is a failure, not an empty success.
func (s *Service) generateSingle(ctx context.Context, system, prompt, side string) (string, error) {
	full := system + "\n\nPrompt: " + prompt

	for attempt := 1; ; attempt++ {
		text, err := s.gen.GenerateText(ctx, s.model, full)
		if err == nil {
			text = strings.TrimSpace(text)
			if text != "" {
				slog.Info("generated response", "side", side, "chars", len(text), "attempt", attempt)
				return text, nil
			}
			err = errors.New("empty response from model")
		}

		kind := Classify(err)
		slog.Error("generation attempt failed",
			"side", side,
			"attempt", attempt,
			"kind", string(kind),
			"error", err,
		)

		if kind == KindSafety {
			return "", &Error{
				Kind:    KindSafety,
				Message: "content was blocked by safety filters, try a different prompt",
				Err:     err,
			}
		}

		if kind != KindRateLimit || attempt > maxRetries {
			return "", &Error{Kind: kind, Message: err.Error(), Err: err}
		}

		backoff := time.Duration(1<<uint(attempt)) * time.Second
		slog.Info("retrying after backoff", "side", side, "backoff", backoff)
		if serr := s.sleep(ctx, backoff); serr != nil {
			return "", &Error{Kind: kind, Message: serr.Error(), Err: err}
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
