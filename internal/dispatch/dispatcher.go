package dispatch

import (
	"context"
	"log/slog"
	"time"

	"github.com/dimitrije/amazing-calendar/internal/metrics"
)

// Dispatcher publishes notification facts. Its methods never fail from the
// caller's point of view; problems are logged and counted.
type Dispatcher struct {
	queue   Queue
	metrics metrics.Recorder
	logger  *slog.Logger
	now     func() time.Time
}

func NewDispatcher(queue Queue, rec metrics.Recorder, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		queue:   queue,
		metrics: rec,
		logger:  logger,
		now:     time.Now,
	}
}

func (d *Dispatcher) NotifyEventCreated(ctx context.Context, title, creator string) {
	d.publish(ctx, Message{Kind: KindEventCreated, Title: title, Creator: creator})
}

func (d *Dispatcher) NotifyInvitation(ctx context.Context, email, eventTitle string) {
	d.publish(ctx, Message{Kind: KindInvitationSent, Email: email, EventTitle: eventTitle})
}

func (d *Dispatcher) publish(ctx context.Context, msg Message) {
	msg.EnqueuedAt = d.now()
	if err := d.queue.Publish(context.WithoutCancel(ctx), msg); err != nil {
		d.metrics.RecordDropped(string(msg.Kind))
		d.logger.Error("failed to dispatch notification", "kind", msg.Kind, "error", err)
		return
	}
	d.metrics.RecordPublished(string(msg.Kind))
}
