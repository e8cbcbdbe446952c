// Package bot orchestrates one inbound update end to end: bound the chat
// history, route between canned and model replies, persist what belongs in
// context, and send the formatted response back.
package bot

import (
	"context"
	"log"
	"strings"

	"github.com/nanohit/alphy-llm/internal/canned"
	"github.com/nanohit/alphy-llm/internal/format"
	"github.com/nanohit/alphy-llm/internal/history"
	"github.com/nanohit/alphy-llm/internal/perplexity"
	"github.com/nanohit/alphy-llm/internal/session"
	"github.com/nanohit/alphy-llm/internal/telegram"
	"github.com/nanohit/alphy-llm/internal/usage"
)

// Sender delivers outbound messages to the chat transport.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendChatAction(ctx context.Context, chatID int64, action string) error
}

// Completer produces a model reply for a conversation.
type Completer interface {
	Complete(ctx context.Context, msgs []history.Message) perplexity.Result
}

type Handler struct {
	sender    Sender
	completer Completer
	history   *history.Store
	sessions  *session.Manager
	usage     *usage.Tracker
}

func New(sender Sender, completer Completer, sessions *session.Manager, tracker *usage.Tracker) *Handler {
	return &Handler{
		sender:    sender,
		completer: completer,
		history:   history.New(systemPrompt),
		sessions:  sessions,
		usage:     tracker,
	}
}

// HandleUpdate implements telegram.UpdateHandler. Work for the same chat
// is serialized through the session manager so interleaved messages cannot
// corrupt the append-and-bound sequence.
func (h *Handler) HandleUpdate(ctx context.Context, u telegram.Update) {
	if u.Message == nil || u.Message.Text == "" {
		return
	}
	msg := u.Message

	if strings.HasPrefix(msg.Text, "/") {
		h.sessions.WithLock(msg.Chat.ID, func() {
			h.handleCommand(ctx, msg)
		})
		return
	}

	if !h.sessions.Allow(msg.Chat.ID) {
		log.Printf("bot: rate limited chat %d", msg.Chat.ID)
		h.send(ctx, msg.Chat.ID, rateLimitText)
		return
	}

	h.sessions.WithLock(msg.Chat.ID, func() {
		h.handleMessage(ctx, msg)
	})
}

func (h *Handler) handleMessage(ctx context.Context, msg *telegram.Message) {
	chatID := msg.Chat.ID

	// One misbehaving message must never take the process down; convert
	// anything unexpected into the generic notice.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("bot: panic handling message for chat %d: %v", chatID, r)
			h.send(ctx, chatID, errorNoticeText)
		}
	}()

	if err := h.sender.SendChatAction(ctx, chatID, "typing"); err != nil {
		log.Printf("bot: send typing action to chat %d: %v", chatID, err)
	}

	log.Printf("bot: message from chat %d: %.60q", chatID, msg.Text)

	msgs, wasReset := h.history.AppendUser(chatID, msg.Text)
	if wasReset {
		log.Printf("bot: history for chat %d exceeded limits, reset", chatID)
		h.send(ctx, chatID, historyResetText)
		return
	}

	var reply string
	if text, group, ok := canned.Reply(msg.Text); ok {
		log.Printf("bot: canned %s reply for chat %d", group, chatID)
		reply = text
		h.history.AppendAssistant(chatID, reply)
	} else {
		res := h.completer.Complete(ctx, msgs)
		reply = res.Text
		if res.Fallback {
			log.Printf("bot: completion fell back (%v) for chat %d", res.Reason, chatID)
		} else {
			h.history.AppendAssistant(chatID, reply)
		}
	}

	h.send(ctx, chatID, format.Truncate(reply, format.MaxOutputLength))
}

func (h *Handler) handleCommand(ctx context.Context, msg *telegram.Message) {
	chatID := msg.Chat.ID

	switch cmd := commandName(msg.Text); cmd {
	case "start", "restart":
		h.history.Reset(chatID)
		h.send(ctx, chatID, greetingText(firstName(msg)))
	case "clear":
		h.history.Reset(chatID)
		h.send(ctx, chatID, historyClearedText)
	case "help":
		h.send(ctx, chatID, helpText)
	case "stats":
		h.send(ctx, chatID, statsText(h.usage.Snapshot()))
	default:
		log.Printf("bot: ignoring unknown command %q from chat %d", cmd, chatID)
	}
}

func (h *Handler) send(ctx context.Context, chatID int64, text string) {
	if err := h.sender.SendMessage(ctx, chatID, text); err != nil {
		log.Printf("bot: send reply to chat %d: %v", chatID, err)
	}
}

// commandName extracts "start" from inputs like "/start" or "/start@AlphyBot now".
func commandName(text string) string {
	cmd := strings.TrimPrefix(strings.Fields(text)[0], "/")
	if i := strings.Index(cmd, "@"); i >= 0 {
		cmd = cmd[:i]
	}
	return cmd
}

func firstName(msg *telegram.Message) string {
	if msg.From != nil && msg.From.FirstName != "" {
		return msg.From.FirstName
	}
	return "there"
}
