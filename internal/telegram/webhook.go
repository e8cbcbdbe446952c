package telegram

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
)

// secretTokenHeader carries the secret configured via setWebhook.
// Reference: https://core.telegram.org/bots/api#setwebhook
const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// WebhookHandler receives updates pushed by the Bot API.
type WebhookHandler struct {
	secret  string
	handler UpdateHandler
}

func NewWebhookHandler(secret string, handler UpdateHandler) *WebhookHandler {
	return &WebhookHandler{secret: secret, handler: handler}
}

// ServeHTTP validates the secret, acknowledges immediately, and hands the
// update off for async processing. Telegram retries deliveries that do not
// get a fast 2xx back.
func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.secret != "" && r.Header.Get(secretTokenHeader) != h.secret {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var u Update
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		log.Printf("webhook: failed to decode update: %v", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	go h.handler.HandleUpdate(context.Background(), u)
	w.WriteHeader(http.StatusOK)
}
