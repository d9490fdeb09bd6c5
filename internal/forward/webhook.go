package forward

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// WebhookForwarder POSTs the payload as flat JSON to an automation webhook.
// Only the status code of the answer is inspected.
type WebhookForwarder struct {
	client *resty.Client
	url    string
}

func NewWebhookForwarder(url string, timeout time.Duration) *WebhookForwarder {
	client := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	return &WebhookForwarder{client: client, url: url}
}

func (w *WebhookForwarder) Name() string {
	return "webhook"
}

func (w *WebhookForwarder) Forward(ctx context.Context, payload any) error {
	resp, err := w.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(w.url)
	if err != nil {
		return fmt.Errorf("webhook: do request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: webhook status %d", ErrRejected, resp.StatusCode())
	}
	return nil
}
