package chat

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUpserter struct {
	mu       sync.Mutex
	calls    []Identity
	failures int
}

func (f *fakeUpserter) UpsertIdentity(ctx context.Context, id Identity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, id)
	if len(f.calls) <= f.failures {
		return errors.New("provider unavailable")
	}
	return nil
}

func (f *fakeUpserter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestSyncer(up Upserter) *Syncer {
	s := NewSyncer(up, zap.NewNop())
	s.backoff = time.Millisecond
	return s
}

func TestSyncerDelivers(t *testing.T) {
	up := &fakeUpserter{}
	s := newTestSyncer(up)
	go s.Run()

	s.Enqueue(Identity{ID: "u1", Name: "Alice", Image: "a.png"})
	s.Close()

	require.Equal(t, 1, up.callCount())
	assert.Equal(t, "u1", up.calls[0].ID)
	assert.Equal(t, "Alice", up.calls[0].Name)
}

func TestSyncerRetriesTransientFailure(t *testing.T) {
	up := &fakeUpserter{failures: 2}
	s := newTestSyncer(up)
	go s.Run()

	s.Enqueue(Identity{ID: "u1"})
	s.Close()

	// two failures, then success on the final allowed attempt
	assert.Equal(t, 3, up.callCount())
}

func TestSyncerGivesUpAfterRetries(t *testing.T) {
	up := &fakeUpserter{failures: 100}
	s := newTestSyncer(up)
	go s.Run()

	s.Enqueue(Identity{ID: "u1"})
	s.Enqueue(Identity{ID: "u2"})
	s.Close()

	// each identity gets exactly `retries` attempts, then is dropped
	assert.Equal(t, 2*s.retries, up.callCount())
}

func TestSyncerDropsWhenQueueFull(t *testing.T) {
	up := &fakeUpserter{}
	s := newTestSyncer(up)
	s.queue = make(chan Identity, 1)

	// worker not running yet, so the second enqueue finds the queue full
	s.Enqueue(Identity{ID: "u1"})
	s.Enqueue(Identity{ID: "u2"})

	go s.Run()
	s.Close()

	require.Equal(t, 1, up.callCount())
	assert.Equal(t, "u1", up.calls[0].ID)
}

func TestClientTokenFor(t *testing.T) {
	c, err := NewClient("api-key", "api-secret")
	require.NoError(t, err)

	token, err := c.TokenFor("user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}
