// Package telegram is the chat transport: a Bot API client plus the two
// ways of receiving updates, long polling and webhooks.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	apiURL = "https://api.telegram.org"

	// longPollTimeout is how long getUpdates holds the connection open
	// waiting for new updates.
	longPollTimeout = 30 * time.Second
)

type Client struct {
	token string
	base  string
	http  *http.Client
	// poll needs more headroom than regular calls because getUpdates
	// blocks server-side for up to longPollTimeout.
	poll *http.Client
}

func NewClient(token string) *Client {
	return &Client{
		token: token,
		base:  apiURL,
		http:  &http.Client{Timeout: 15 * time.Second},
		poll:  &http.Client{Timeout: longPollTimeout + 10*time.Second},
	}
}

// SendMessage delivers text to a chat, rendered as Markdown. A message
// the API rejects is resent once as plain text.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	err := c.call(ctx, c.http, "sendMessage", map[string]any{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "Markdown",
	}, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	// Model output does not always survive Markdown parsing (unbalanced
	// entities, or a truncation cut inside one), and the API rejects the
	// whole message when it doesn't. An ok=false response means nothing
	// was delivered, so the plain resend cannot duplicate.
	return c.call(ctx, c.http, "sendMessage", map[string]any{
		"chat_id": chatID,
		"text":    text,
	}, nil)
}

// SendChatAction shows a transient status such as "typing" in the chat.
func (c *Client) SendChatAction(ctx context.Context, chatID int64, action string) error {
	params := map[string]any{
		"chat_id": chatID,
		"action":  action,
	}
	return c.call(ctx, c.http, "sendChatAction", params, nil)
}

// GetUpdates long-polls for updates with ids at or above offset.
func (c *Client) GetUpdates(ctx context.Context, offset int64) ([]Update, error) {
	params := map[string]any{
		"offset":          offset,
		"timeout":         int(longPollTimeout / time.Second),
		"allowed_updates": []string{"message"},
	}
	var updates []Update
	if err := c.call(ctx, c.poll, "getUpdates", params, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// SetWebhook registers url to receive updates, authenticated by secret.
func (c *Client) SetWebhook(ctx context.Context, url, secret string) error {
	params := map[string]any{
		"url":             url,
		"secret_token":    secret,
		"allowed_updates": []string{"message"},
	}
	return c.call(ctx, c.http, "setWebhook", params, nil)
}

// DeleteWebhook unregisters any webhook so long polling can take over.
func (c *Client) DeleteWebhook(ctx context.Context) error {
	return c.call(ctx, c.http, "deleteWebhook", map[string]any{}, nil)
}

// APIError is a Bot API response with ok=false: the request reached
// Telegram and was rejected, as opposed to failing in transit.
type APIError struct {
	Method      string
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram API %s: %s", e.Method, e.Description)
}

func (c *Client) call(ctx context.Context, hc *http.Client, method string, params, result any) error {
	payload, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("marshaling %s params: %w", method, err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/%s", c.base, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", method, err)
	}
	defer resp.Body.Close()

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decoding %s response: %w", method, err)
	}
	if !envelope.OK {
		return &APIError{Method: method, Description: envelope.Description}
	}
	if result != nil {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return fmt.Errorf("decoding %s result: %w", method, err)
		}
	}
	return nil
}
