package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/dimitrije/amazing-calendar/internal/metrics"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Notifier is the remote notification service as seen by the worker.
type Notifier interface {
	NotifyEvent(ctx context.Context, title, creator string) (string, error)
	NotifyInvitation(ctx context.Context, email, eventTitle string) (string, error)
}

type WorkerConfig struct {
	// MaxAttempts bounds delivery attempts per message. 1 means at-most-once.
	MaxAttempts int
	// Timeout bounds each attempt.
	Timeout time.Duration
	// InitialInterval is the first backoff delay between attempts.
	InitialInterval time.Duration
}

func (c WorkerConfig) withDefaults() WorkerConfig {
	if c.MaxAttempts < 1 {
		c.MaxAttempts = 1
	}
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
	if c.InitialInterval <= 0 {
		c.InitialInterval = 200 * time.Millisecond
	}
	return c
}

// Worker drains a Queue and performs the remote notification calls. Every
// message is acknowledged once handled, whether or not delivery succeeded.
type Worker struct {
	queue    Queue
	notifier Notifier
	metrics  metrics.Recorder
	logger   *slog.Logger
	cfg      WorkerConfig
	now      func() time.Time
}

func NewWorker(queue Queue, notifier Notifier, rec metrics.Recorder, logger *slog.Logger, cfg WorkerConfig) *Worker {
	return &Worker{
		queue:    queue,
		notifier: notifier,
		metrics:  rec,
		logger:   logger,
		cfg:      cfg.withDefaults(),
		now:      time.Now,
	}
}

// Run consumes until ctx is cancelled or the queue is closed.
func (w *Worker) Run(ctx context.Context) error {
	deliveries, err := w.queue.Consume(ctx)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	w.logger.Info("dispatch worker started", "max_attempts", w.cfg.MaxAttempts, "timeout", w.cfg.Timeout)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("dispatch worker stopped")
			return nil
		case d, ok := <-deliveries:
			if !ok {
				w.logger.Info("dispatch queue closed")
				return nil
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d Delivery) {
	kind := string(d.Message.Kind)
	err := w.deliver(ctx, d.Message)

	if !d.Message.EnqueuedAt.IsZero() {
		w.metrics.RecordDispatchLatency(w.now().Sub(d.Message.EnqueuedAt))
	}
	if err != nil {
		w.metrics.RecordFailed(kind)
		w.logger.Warn("notification delivery failed", "kind", kind, "error", err)
	} else {
		w.metrics.RecordDelivered(kind)
	}

	if err := d.Ack(); err != nil {
		w.logger.Error("failed to ack dispatch message", "kind", kind, "error", err)
	}
}

func (w *Worker) deliver(ctx context.Context, msg Message) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = w.cfg.InitialInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(w.cfg.MaxAttempts-1)), ctx)

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		callCtx, cancel := context.WithTimeout(ctx, w.cfg.Timeout)
		defer cancel()

		ack, err := w.call(callCtx, msg)
		if err != nil {
			w.logger.Debug("notification attempt failed", "kind", msg.Kind, "attempt", attempt, "error", err)
			if isPermanent(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		w.logger.Debug("notification delivered", "kind", msg.Kind, "status", ack, "attempt", attempt)
		return nil
	}, policy)
}

func (w *Worker) call(ctx context.Context, msg Message) (string, error) {
	switch msg.Kind {
	case KindEventCreated:
		return w.notifier.NotifyEvent(ctx, msg.Title, msg.Creator)
	case KindInvitationSent:
		return w.notifier.NotifyInvitation(ctx, msg.Email, msg.EventTitle)
	}
	return "", backoff.Permanent(msg.Validate())
}

// isPermanent reports errors that retrying cannot fix.
func isPermanent(err error) bool {
	switch status.Code(err) {
	case codes.InvalidArgument, codes.Unimplemented, codes.PermissionDenied:
		return true
	}
	return false
}
