package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultOpenAIModel   = "gpt-4o"
)

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// OpenAIProvider implements Provider on the chat completions endpoint.
type OpenAIProvider struct {
	client *resty.Client
	model  string
}

// NewOpenAIProvider builds a client for baseURL (DefaultOpenAIBaseURL when
// empty). timeout bounds each round trip; ctx cancellation is honoured too.
func NewOpenAIProvider(apiKey, model, baseURL string, timeout time.Duration) *OpenAIProvider {
	if model == "" {
		model = DefaultOpenAIModel
	}
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	return &OpenAIProvider{client: client, model: model}
}

func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Complete sends the system prompt and user message and returns the reply text.
func (p *OpenAIProvider) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	var cr chatResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model: p.model,
			Messages: []chatMessage{
				{Role: "system", Content: systemPrompt},
				{Role: "user", Content: userMessage},
			},
		}).
		SetResult(&cr).
		SetError(&cr).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("%w: openai: do request: %v", ErrUpstream, err)
	}
	if resp.IsError() {
		if cr.Error != nil {
			return "", fmt.Errorf("%w: openai: status %d: %s", ErrUpstream, resp.StatusCode(), cr.Error.Message)
		}
		return "", fmt.Errorf("%w: openai: status %d", ErrUpstream, resp.StatusCode())
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("%w: openai: empty choices array", ErrUpstream)
	}
	return strings.TrimSpace(cr.Choices[0].Message.Content), nil
}
