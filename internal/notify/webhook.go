package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Client posts project lifecycle events to an optional external webhook
// (e.g. a Slack relay or the customer's own backend). Unconfigured clients
// skip sending and report success, so the webhook stays strictly optional.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

func NewClient(apiKey, endpoint string) *Client {
	return &Client{
		apiKey:   apiKey,
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Event is the envelope posted to the webhook.
type Event struct {
	Type      string    `json:"type"` // e.g. "project.completed"
	ProjectID string    `json:"project_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// PostEvent sends one event to the configured webhook endpoint.
func (c *Client) PostEvent(ctx context.Context, eventType, projectID string, payload any) error {
	if c.endpoint == "" {
		log.Println("WARN: Webhook endpoint not configured. Skipping event post.")
		return nil
	}

	event := Event{
		Type:      eventType,
		ProjectID: projectID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}

	jsonData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	log.Printf("Posting %s event for project %s to webhook", eventType, projectID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Printf("Webhook error response body: %s", string(body))
		return fmt.Errorf("webhook returned non-success status: %s", resp.Status)
	}
	return nil
}
