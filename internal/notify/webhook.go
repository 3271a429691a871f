package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// WebhookNotifier posts text messages to an HTTP webhook as JSON
type WebhookNotifier struct {
	client     *http.Client
	webhookURL string
}

type webhookMessage struct {
	MsgType string                `json:"msg_type"`
	Content webhookMessageContent `json:"content"`
}

type webhookMessageContent struct {
	Text string `json:"text"`
}

// NewWebhookNotifier creates a webhook notifier with the given endpoint and
// request timeout.
func NewWebhookNotifier(webhookURL string, timeout time.Duration) Notifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookNotifier{
		client:     &http.Client{Timeout: timeout},
		webhookURL: webhookURL,
	}
}

// Send posts the message to the webhook endpoint
func (n *WebhookNotifier) Send(ctx context.Context, message string) error {
	payload, err := json.Marshal(webhookMessage{
		MsgType: "text",
		Content: webhookMessageContent{Text: message},
	})
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
