package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func testClient(srvURL string) *Client {
	c := NewClient("TESTTOKEN")
	c.base = srvURL
	return c
}

func TestSendMessage(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, `{"ok":true,"result":{}}`)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	require.NoError(t, c.SendMessage(context.Background(), 42, "*hello*"))

	require.Equal(t, "/botTESTTOKEN/sendMessage", gotPath)
	require.Equal(t, float64(42), gotBody["chat_id"])
	require.Equal(t, "*hello*", gotBody["text"])
	require.Equal(t, "Markdown", gotBody["parse_mode"])
}

func TestSendMessageFallsBackToPlainText(t *testing.T) {
	var bodies []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		bodies = append(bodies, body)
		if _, ok := body["parse_mode"]; ok {
			fmt.Fprint(w, `{"ok":false,"description":"Bad Request: can't parse entities: can't find end of the entity starting at byte offset 0"}`)
			return
		}
		fmt.Fprint(w, `{"ok":true,"result":{}}`)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	require.NoError(t, c.SendMessage(context.Background(), 42, "*broken"))

	require.Len(t, bodies, 2)
	require.Equal(t, "Markdown", bodies[0]["parse_mode"])
	require.NotContains(t, bodies[1], "parse_mode")
	require.Equal(t, "*broken", bodies[1]["text"])
}

func TestSendMessageDoesNotRetryTransportFailures(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		conn, _, err := w.(http.Hijacker).Hijack()
		require.NoError(t, err)
		conn.Close()
	}))
	defer srv.Close()

	// A connection that dies mid-request may or may not have delivered the
	// message, so the client must not send it again.
	c := testClient(srv.URL)
	require.Error(t, c.SendMessage(context.Background(), 42, "hello"))
	require.Equal(t, 1, calls)
}

func TestSendChatAction(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, `{"ok":true,"result":true}`)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	require.NoError(t, c.SendChatAction(context.Background(), 42, "typing"))
	require.Equal(t, "typing", gotBody["action"])
}

func TestGetUpdates(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, `{"ok":true,"result":[{"update_id":7,"message":{"message_id":1,"chat":{"id":42,"type":"private"},"text":"hi"}}]}`)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	updates, err := c.GetUpdates(context.Background(), 3)
	require.NoError(t, err)

	require.Equal(t, float64(3), gotBody["offset"])
	require.Equal(t, float64(30), gotBody["timeout"])

	require.Len(t, updates, 1)
	require.Equal(t, int64(7), updates[0].UpdateID)
	require.Equal(t, int64(42), updates[0].Message.Chat.ID)
	require.Equal(t, "hi", updates[0].Message.Text)
}

func TestCallReportsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ok":false,"description":"Bad Request: chat not found"}`)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	err := c.SendMessage(context.Background(), 42, "hello")
	require.ErrorContains(t, err, "chat not found")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "sendMessage", apiErr.Method)
}
