package dispatch

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrQueueFull   = errors.New("dispatch queue full")
	ErrQueueClosed = errors.New("dispatch queue closed")
)

const DefaultBufferSize = 256

// Queue is the boundary between the request path and the delivery worker.
type Queue interface {
	// Publish must not block on a slow consumer.
	Publish(ctx context.Context, msg Message) error
	Consume(ctx context.Context) (<-chan Delivery, error)
	Close() error
}

// Delivery is a consumed message. Ack must be called once handling is finished.
type Delivery struct {
	Message Message
	Ack     func() error
}

func noAck() error { return nil }

// MemoryQueue is an in-process Queue backed by a buffered channel. Messages
// still buffered when the process exits are lost.
type MemoryQueue struct {
	messages  chan Message
	closed    chan struct{}
	closeOnce sync.Once
}

func NewMemoryQueue(size int) *MemoryQueue {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &MemoryQueue{
		messages: make(chan Message, size),
		closed:   make(chan struct{}),
	}
}

func (q *MemoryQueue) Publish(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-q.closed:
		return ErrQueueClosed
	default:
	}

	select {
	case q.messages <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

func (q *MemoryQueue) Consume(ctx context.Context) (<-chan Delivery, error) {
	select {
	case <-q.closed:
		return nil, ErrQueueClosed
	default:
	}

	out := make(chan Delivery)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case <-q.closed:
				return
			case msg := <-q.messages:
				select {
				case out <- Delivery{Message: msg, Ack: noAck}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Len reports how many messages are waiting.
func (q *MemoryQueue) Len() int {
	return len(q.messages)
}

func (q *MemoryQueue) Close() error {
	q.closeOnce.Do(func() { close(q.closed) })
	return nil
}
