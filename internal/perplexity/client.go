// Package perplexity calls the Perplexity chat-completions API, which
// speaks the OpenAI wire format. Timeouts are retried with exponential
// backoff; every failure ends in a Result with fixed fallback text rather
// than an error, so one bad completion never takes a chat down.
package perplexity

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"net/url"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nanohit/alphy-llm/internal/history"
	"github.com/nanohit/alphy-llm/internal/retry"
	"github.com/nanohit/alphy-llm/internal/usage"
)

const (
	baseURL = "https://api.perplexity.ai"

	// Model is the Perplexity search model used for all completions.
	Model = "sonar"

	maxOutputTokens = 200
	temperature     = 0.7

	requestTimeout = 30 * time.Second
	maxRetries     = 3
)

// Fixed user-facing texts returned in place of model output.
const (
	needMessageText = "I need a message from you to respond!"
	timeoutText     = "Sorry, the request timed out. Please try again later."
	transportText   = "Sorry, I encountered an error when trying to process your request. Please try again later."
	badResponseText = "Sorry, I had trouble understanding the response. Please try again later."
	internalText    = "Sorry, an unexpected error occurred. Please try again later."
)

// completionAPI is the slice of the OpenAI-compatible client the Client
// depends on; tests substitute a fake.
type completionAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client turns a conversation history into a model reply and records the
// spend on every completed request.
type Client struct {
	api     completionAPI
	tracker *usage.Tracker
	retry   retry.Policy
}

func New(apiKey string, tracker *usage.Tracker) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	cfg.HTTPClient = &http.Client{Timeout: requestTimeout}

	return &Client{
		api:     openai.NewClientWithConfig(cfg),
		tracker: tracker,
		retry: retry.Policy{
			MaxAttempts: maxRetries,
			Backoff:     retry.Exponential(time.Second),
			Retryable:   isTimeout,
		},
	}
}

// Complete sends the conversation to the API and returns the top choice.
// A history holding only the system prompt short-circuits without a
// network call. Only genuine model output comes back as a non-Fallback
// Result.
func (c *Client) Complete(ctx context.Context, msgs []history.Message) Result {
	if len(msgs) <= 1 {
		log.Printf("perplexity: asked to complete an empty conversation")
		return fallback(needMessageText, ReasonEmptyHistory)
	}

	req := openai.ChatCompletionRequest{
		Model:       Model,
		Messages:    toChatMessages(msgs),
		MaxTokens:   maxOutputTokens,
		Temperature: temperature,
	}

	log.Printf("perplexity: completing conversation of %d messages", len(msgs))

	var resp openai.ChatCompletionResponse
	err := c.retry.Do(ctx, func() error {
		var attemptErr error
		resp, attemptErr = c.api.CreateChatCompletion(ctx, req)
		return attemptErr
	})
	if err != nil {
		reason := classify(err)
		log.Printf("perplexity: completion failed (%v): %v", reason, err)
		switch reason {
		case ReasonTimeout:
			return fallback(timeoutText, ReasonTimeout)
		case ReasonTransport:
			return fallback(transportText, ReasonTransport)
		default:
			return fallback(internalText, ReasonInternal)
		}
	}

	if len(resp.Choices) == 0 {
		log.Printf("perplexity: response carried no choices")
		return fallback(badResponseText, ReasonBadResponse)
	}

	c.tracker.Record(resp.Usage.PromptTokens + resp.Usage.CompletionTokens)

	return ok(resp.Choices[0].Message.Content)
}

func toChatMessages(msgs []history.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(msgs))
	for i, m := range msgs {
		out[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}
	return out
}

// classify maps a request error to the fallback reason deciding which
// apology the user sees. Timeouts are the only retryable class.
func classify(err error) Reason {
	if isTimeout(err) {
		return ReasonTimeout
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return ReasonTransport
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return ReasonTransport
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return ReasonTransport
	}

	return ReasonInternal
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
