package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordHandler struct {
	ch chan Update
}

func (h *recordHandler) HandleUpdate(_ context.Context, u Update) {
	h.ch <- u
}

func TestWebhookRejectsBadSecret(t *testing.T) {
	h := &recordHandler{ch: make(chan Update, 1)}
	wh := NewWebhookHandler("s3cret", h)

	req := httptest.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader(`{"update_id":1}`))
	req.Header.Set(secretTokenHeader, "wrong")
	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Empty(t, h.ch)
}

func TestWebhookDispatchesUpdate(t *testing.T) {
	h := &recordHandler{ch: make(chan Update, 1)}
	wh := NewWebhookHandler("s3cret", h)

	body := `{"update_id":9,"message":{"message_id":1,"chat":{"id":42,"type":"private"},"text":"hi"}}`
	req := httptest.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader(body))
	req.Header.Set(secretTokenHeader, "s3cret")
	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	select {
	case u := <-h.ch:
		require.Equal(t, int64(9), u.UpdateID)
		require.Equal(t, "hi", u.Message.Text)
	case <-time.After(2 * time.Second):
		t.Fatal("update never reached the handler")
	}
}

func TestWebhookAcksMalformedBody(t *testing.T) {
	h := &recordHandler{ch: make(chan Update, 1)}
	wh := NewWebhookHandler("", h)

	req := httptest.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, req)

	// 200 even on garbage, so the Bot API does not redeliver it forever.
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, h.ch)
}
