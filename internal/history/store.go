// Package history keeps per-chat conversation logs in memory and enforces
// the size bounds that keep completion requests affordable: a message-count
// cap with trimming for bursts of short messages, and a token-estimate cap
// with full reset for oversized context.
package history

import (
	"slices"
	"sync"
)

const (
	// maxMessages is the number of user/assistant turns kept per chat,
	// excluding the leading system prompt.
	maxMessages = 30
	// tokenLimit is the estimated token ceiling before the history is reset.
	tokenLimit = 3500
)

// Store holds one conversation per chat id. Histories live only for the
// lifetime of the process; a restart clears everything.
type Store struct {
	mu     sync.Mutex
	system Message
	chats  map[int64][]Message
}

func New(systemPrompt string) *Store {
	return &Store{
		system: Message{Role: RoleSystem, Content: systemPrompt},
		chats:  make(map[int64][]Message),
	}
}

// Get returns a copy of the chat's history, seeding a fresh one (system
// prompt only) for chats seen for the first time.
func (s *Store) Get(chatID int64) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.chats[chatID]
	if !ok {
		h = s.seed()
		s.chats[chatID] = h
	}
	return slices.Clone(h)
}

// Reset replaces the chat's history with the seed.
func (s *Store) Reset(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats[chatID] = s.seed()
}

// AppendUser appends a user message, enforcing both bounds. The token
// estimate is checked first: exceeding it resets the history outright and
// the message is not retained; the caller must ask the user to resend.
// A count overflow is recoverable: the history is trimmed to the system
// prompt plus the most recent maxMessages turns, and the token estimate
// is re-checked before committing. On success the committed history is
// returned.
func (s *Store) AppendUser(chatID int64, text string) (msgs []Message, reset bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.chats[chatID]
	if !ok {
		current = s.seed()
	}

	candidate := append(slices.Clone(current), Message{Role: RoleUser, Content: text})

	if EstimateTokens(candidate) > tokenLimit {
		s.chats[chatID] = s.seed()
		return nil, true
	}

	if len(candidate) > maxMessages+1 { // +1 for the system prompt
		candidate = append([]Message{candidate[0]}, candidate[len(candidate)-maxMessages:]...)
		if EstimateTokens(candidate) > tokenLimit {
			s.chats[chatID] = s.seed()
			return nil, true
		}
	}

	s.chats[chatID] = candidate
	return slices.Clone(candidate), false
}

// AppendAssistant records an assistant turn. Callers must not feed fallback
// error text in here; only genuine model (or canned) output belongs in
// context.
func (s *Store) AppendAssistant(chatID int64, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.chats[chatID]
	if !ok {
		current = s.seed()
	}
	s.chats[chatID] = append(current, Message{Role: RoleAssistant, Content: text})
}

func (s *Store) seed() []Message {
	return []Message{s.system}
}
