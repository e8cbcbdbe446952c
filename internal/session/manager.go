// Package session tracks per-chat runtime state: the lock that serializes
// message handling for a chat and the rate limiter that keeps one chat
// from burning the completion API budget.
package session

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// messageRate sustains up to ten messages per minute per chat.
	messageRate = rate.Limit(10.0 / 60.0)
	// messageBurst is how many messages may arrive back to back before
	// the limiter pushes back.
	messageBurst = 10
)

// Manager serializes message processing per chat to prevent lost updates
// when multiple messages arrive simultaneously for the same chat.
type Manager struct {
	mu    sync.Mutex
	chats map[int64]*chatState
}

type chatState struct {
	mu       sync.Mutex
	limiter  *rate.Limiter
	lastUsed time.Time
}

func NewManager() *Manager {
	return &Manager{
		chats: make(map[int64]*chatState),
	}
}

func (m *Manager) get(chatID int64) *chatState {
	m.mu.Lock()
	defer m.mu.Unlock()
	cs, ok := m.chats[chatID]
	if !ok {
		cs = &chatState{limiter: rate.NewLimiter(messageRate, messageBurst)}
		m.chats[chatID] = cs
	}
	cs.lastUsed = time.Now()
	return cs
}

// WithLock executes fn while holding the per-chat mutex.
// Concurrent messages from the same chat are serialized; different chats run in parallel.
func (m *Manager) WithLock(chatID int64, fn func()) {
	cs := m.get(chatID)
	cs.mu.Lock()
	defer cs.mu.Unlock()
	fn()
}

// Allow reports whether the chat is within its message rate budget.
func (m *Manager) Allow(chatID int64) bool {
	return m.get(chatID).limiter.Allow()
}

// Cleanup removes state for chats idle longer than maxAge to prevent
// memory leaks, returning how many were dropped. Conversation histories
// are stored elsewhere and are not affected.
func (m *Manager) Cleanup(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	removed := 0
	for chatID, cs := range m.chats {
		if now.Sub(cs.lastUsed) > maxAge {
			delete(m.chats, chatID)
			removed++
		}
	}
	return removed
}
