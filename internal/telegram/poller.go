package telegram

import (
	"context"
	"log"
	"time"
)

// pollRetryDelay is how long the poller waits after a failed getUpdates
// call before trying again.
const pollRetryDelay = 5 * time.Second

// UpdateHandler consumes one inbound update.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, u Update)
}

// UpdateSource produces batches of updates; *Client satisfies it.
type UpdateSource interface {
	GetUpdates(ctx context.Context, offset int64) ([]Update, error)
}

// Poller drives the bot from getUpdates long polling.
type Poller struct {
	source  UpdateSource
	handler UpdateHandler
}

func NewPoller(source UpdateSource, handler UpdateHandler) *Poller {
	return &Poller{source: source, handler: handler}
}

// Run polls until ctx is canceled. Each update is handled in its own
// goroutine so one slow completion does not stall other chats; per-chat
// ordering is the handler's concern.
func (p *Poller) Run(ctx context.Context) error {
	var offset int64
	for {
		updates, err := p.source.GetUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("telegram: get updates: %v", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(pollRetryDelay):
			}
			continue
		}

		for _, u := range updates {
			if u.UpdateID >= offset {
				offset = u.UpdateID + 1
			}
			go p.handler.HandleUpdate(ctx, u)
		}
	}
}
