package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Alert describes an operator-facing incident emitted by the service.
type Alert struct {
	Kind        string    `json:"kind"`
	UserID      string    `json:"user_id,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
	PointsDelta int64     `json:"points_delta,omitempty"`
	Detail      string    `json:"detail,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Notifier delivers alerts to the operator channel.
type Notifier interface {
	Notify(ctx context.Context, a Alert) error
}

// WebhookClient posts alerts to an external webhook.
type WebhookClient struct {
	endpoint   *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewWebhookClient creates an alert webhook client with default timeout.
func NewWebhookClient(endpoint string, logger *slog.Logger) (*WebhookClient, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse alert webhook url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("alert webhook url must be absolute")
	}
	return &WebhookClient{
		endpoint: parsed,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Notify posts the alert as JSON and fails on any non-2xx response.
func (c *WebhookClient) Notify(ctx context.Context, a Alert) error {
	if a.OccurredAt.IsZero() {
		a.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(a)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("alert delivery failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return fmt.Errorf("alert webhook error: %s", resp.Status)
	}
	return nil
}

// LogNotifier writes alerts to the service log. It backs deployments that
// have no webhook configured, so incidents still land somewhere visible.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a Notifier that records alerts via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, a Alert) error {
	n.logger.Error("operator alert",
		slog.String("kind", a.Kind),
		slog.String("user_id", a.UserID),
		slog.String("request_id", a.RequestID),
		slog.Int64("points_delta", a.PointsDelta),
		slog.String("detail", a.Detail),
	)
	return nil
}
