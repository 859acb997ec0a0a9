// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// TextGenerator is the narrow contract the orchestrator holds on the
// upstream service: one fully-assembled prompt in, one text out. Tests
// substitute fakes; production uses *Client.
type TextGenerator interface {
	GenerateText(ctx context.Context, model, prompt string) (string, error)
}

// Client wraps the Gemini API behind TextGenerator.
type Client struct {
	client *genai.Client
}

// NewClient creates a Gemini-backed text generator.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Client{client: client}, nil
}

// GenerateText runs one generation call against the given model.
func (c *Client) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
