package webhook

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/playrummy/ledger/internal/domain"
	"github.com/playrummy/ledger/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Notifier delivers outbox events to the game platform's webhook endpoint.
// Transient HTTP failures are retried by the underlying client; anything
// still failing is reported back to the outbox processor, which owns the
// bounded retry bookkeeping.
type Notifier struct {
	url    string
	apiKey string
	client *retryablehttp.Client
	logger *logger.Logger
}

// NewNotifier creates a new webhook notifier
func NewNotifier(url, apiKey string, log *logger.Logger) domain.EventNotifier {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.HTTPClient.Timeout = 10 * time.Second
	client.Logger = nil

	return &Notifier{
		url:    url,
		apiKey: apiKey,
		client: client,
		logger: log,
	}
}

type eventPayload struct {
	Type   string       `json:"type"`
	Data   domain.JSONB `json:"data"`
	SentAt time.Time    `json:"sent_at"`
}

// Notify POSTs the event to the configured webhook URL
func (n *Notifier) Notify(eventType string, data domain.JSONB) error {
	payload := eventPayload{
		Type:   eventType,
		Data:   data,
		SentAt: time.Now(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := retryablehttp.NewRequest("POST", n.url, body)
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.apiKey != "" {
		req.Header.Set("x-api-key", n.apiKey)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook delivery failed: unexpected status %d", resp.StatusCode)
	}

	n.logger.Debug("Delivered webhook event",
		zap.String("event_type", eventType),
		zap.Int("status", resp.StatusCode))

	return nil
}
