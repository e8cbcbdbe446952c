// Package usage tracks cumulative completion API spend for the process.
package usage

import "sync"

// Pricing for the Perplexity sonar model in low search mode.
const (
	// RequestCost is the flat per-request cost in dollars.
	RequestCost = 0.005
	// TokenCostPerMillion is the cost in dollars per million tokens.
	TokenCostPerMillion = 1.0
)

// Tracker accumulates request, token, and cost totals across all chats.
// Counters start at zero, only grow, and reset with the process.
type Tracker struct {
	mu       sync.Mutex
	requests int
	tokens   int
	costUSD  float64
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Record adds one completed request with its reported token usage (prompt
// plus completion tokens, zero when the API response carried no usage).
func (t *Tracker) Record(tokens int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.requests++
	t.tokens += tokens
	t.costUSD += RequestCost + float64(tokens)/1_000_000*TokenCostPerMillion
}

// Snapshot returns a point-in-time copy of the totals.
func (t *Tracker) Snapshot() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Stats{
		Requests: t.requests,
		Tokens:   t.tokens,
		CostUSD:  t.costUSD,
	}
}

// Stats is a consistent read of the counters.
type Stats struct {
	Requests int
	Tokens   int
	CostUSD  float64
}
