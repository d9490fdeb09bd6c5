package ai

import (
	"context"
	"errors"
)

// ErrUpstream wraps every failure of the completion service.
var ErrUpstream = errors.New("completion service error")

// Provider defines the contract for interacting with completion models.
// OpenAI and Gemini implementations are interchangeable.
type Provider interface {
	// Complete sends a system prompt and a single user message and returns
	// the model's text reply.
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)

	// Name identifies the provider in logs and metrics.
	Name() string
}
