package telegram

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeSource serves queued batches, then blocks until ctx is canceled.
type fakeSource struct {
	mu      sync.Mutex
	offsets []int64
	batches [][]Update
}

func (f *fakeSource) GetUpdates(ctx context.Context, offset int64) ([]Update, error) {
	f.mu.Lock()
	f.offsets = append(f.offsets, offset)
	var batch []Update
	if len(f.batches) > 0 {
		batch = f.batches[0]
		f.batches = f.batches[1:]
	}
	f.mu.Unlock()

	if batch == nil {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return batch, nil
}

type collectHandler struct {
	mu  sync.Mutex
	got []Update
	ch  chan struct{}
}

func (h *collectHandler) HandleUpdate(_ context.Context, u Update) {
	h.mu.Lock()
	h.got = append(h.got, u)
	h.mu.Unlock()
	h.ch <- struct{}{}
}

func TestPollerDispatchesAndAdvancesOffset(t *testing.T) {
	src := &fakeSource{batches: [][]Update{
		{{UpdateID: 5}, {UpdateID: 6}},
	}}
	h := &collectHandler{ch: make(chan struct{}, 8)}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- NewPoller(src, h).Run(ctx) }()

	for i := 0; i < 2; i++ {
		select {
		case <-h.ch:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for updates to reach the handler")
		}
	}

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	src.mu.Lock()
	defer src.mu.Unlock()
	require.GreaterOrEqual(t, len(src.offsets), 2)
	require.Equal(t, int64(0), src.offsets[0])
	// The next poll acknowledges everything up to the last update id.
	require.Equal(t, int64(7), src.offsets[1])

	h.mu.Lock()
	defer h.mu.Unlock()
	require.Len(t, h.got, 2)
}
