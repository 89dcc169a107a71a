// Package feedview implements the client side of the feedback portal:
// an HTTP client for the remote feedback API and a view state container
// that lists, paginates and deletes records.
package feedview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Feedback is the wire shape the remote API serves. FeedbackID is an
// opaque token; the client never inspects it beyond echoing it back on
// deletion.
type Feedback struct {
	FeedbackID string    `json:"feedback_id"`
	Username   string    `json:"username"`
	Feedback   string    `json:"feedback"`
	Polarity   string    `json:"polarity"`
	DateTime   time.Time `json:"date_time"`
}

// API is the remote surface the view depends on.
type API interface {
	ListFeedbacks(ctx context.Context) ([]Feedback, error)
	DeleteFeedback(ctx context.Context, feedbackID string) error
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// ListFeedbacks retrieves the entire collection; the API offers no
// server-side pagination or filtering.
func (c *Client) ListFeedbacks(ctx context.Context) ([]Feedback, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/feedbacks", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("list feedbacks: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var feedbacks []Feedback
	if err := json.NewDecoder(resp.Body).Decode(&feedbacks); err != nil {
		return nil, fmt.Errorf("decode feedbacks: %w", err)
	}
	return feedbacks, nil
}

// DeleteFeedback posts {feedback_id} to /delete_feedbacks. Any 2xx
// counts as success; the response body is not consumed.
func (c *Client) DeleteFeedback(ctx context.Context, feedbackID string) error {
	payload, err := json.Marshal(map[string]string{"feedback_id": feedbackID})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/delete_feedbacks", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("delete feedback %s: status %d", feedbackID, resp.StatusCode)
	}
	return nil
}
