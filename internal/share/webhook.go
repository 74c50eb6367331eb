package share

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultWebhookTimeout bounds a single webhook delivery.
const DefaultWebhookTimeout = 5 * time.Second

// WebhookSharer POSTs each payload as JSON to a URL.
type WebhookSharer struct {
	url    string
	client *http.Client
}

// NewWebhookSharer returns a sharer posting to url. A nil client gets one with
// DefaultWebhookTimeout.
func NewWebhookSharer(url string, client *http.Client) *WebhookSharer {
	if client == nil {
		client = &http.Client{Timeout: DefaultWebhookTimeout}
	}
	return &WebhookSharer{url: url, client: client}
}

// Share delivers p. Any non-2xx response is an error.
func (s *WebhookSharer) Share(ctx context.Context, p Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("share.WebhookSharer.Share: encode: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("share.WebhookSharer.Share: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("share.WebhookSharer.Share: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("share.WebhookSharer.Share: unexpected status %d", resp.StatusCode)
	}
	return nil
}
