package chat

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	queueSize      = 256
	defaultRetries = 3
	defaultBackoff = time.Second
	upsertTimeout  = 10 * time.Second
)

// Syncer reconciles local identities with the chat provider off the request
// path. Enqueue never blocks and never reports failure to the caller:
// profile correctness must not depend on provider availability. A full queue
// drops the newest item; the next profile write enqueues it again.
type Syncer struct {
	upserter Upserter
	logger   *zap.Logger

	queue chan Identity
	done  chan struct{}

	retries int
	backoff time.Duration
}

func NewSyncer(upserter Upserter, logger *zap.Logger) *Syncer {
	return &Syncer{
		upserter: upserter,
		logger:   logger,
		queue:    make(chan Identity, queueSize),
		done:     make(chan struct{}),
		retries:  defaultRetries,
		backoff:  defaultBackoff,
	}
}

// Run consumes the queue until Close is called. Run it on its own goroutine.
func (s *Syncer) Run() {
	defer close(s.done)
	for id := range s.queue {
		s.sync(id)
	}
}

// Enqueue schedules an identity push.
func (s *Syncer) Enqueue(id Identity) {
	select {
	case s.queue <- id:
	default:
		s.logger.Warn("chat sync queue full, dropping identity",
			zap.String("user_id", id.ID))
	}
}

// Close stops intake and waits for in-flight work to finish.
func (s *Syncer) Close() {
	close(s.queue)
	<-s.done
}

func (s *Syncer) sync(id Identity) {
	delay := s.backoff
	for attempt := 1; ; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), upsertTimeout)
		err := s.upserter.UpsertIdentity(ctx, id)
		cancel()

		if err == nil {
			s.logger.Debug("chat identity synced", zap.String("user_id", id.ID))
			return
		}
		if attempt >= s.retries {
			s.logger.Warn("chat identity sync gave up",
				zap.String("user_id", id.ID),
				zap.Int("attempts", attempt),
				zap.Error(err))
			return
		}

		s.logger.Info("chat identity sync retrying",
			zap.String("user_id", id.ID),
			zap.Int("attempt", attempt),
			zap.Error(err))
		time.Sleep(delay)
		delay *= 2
	}
}
