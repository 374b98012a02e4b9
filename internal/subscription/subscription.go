package subscription

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/brc20-ledger/common/errs"
)

// BufferSize is the buffer size of the subscription input and error channels.
// A slow consumer does not block the producer until the buffer is full.
var BufferSize = 8

// Subscription forwards values from a producer to the consumer channel in the order they were sent.
// Errors are delivered on a separate channel.
type Subscription[T any] struct {
	channel chan<- T
	in      chan T
	err     chan error

	quitOnce  sync.Once
	quit      chan struct{}
	closeOnce sync.Once

	// closed once the forwarding loop has stopped writing to channel.
	done chan struct{}
}

func NewSubscription[T any](channel chan<- T) *Subscription[T] {
	s := &Subscription[T]{
		channel: channel,
		in:      make(chan T, BufferSize),
		err:     make(chan error, BufferSize),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Subscription[T]) Unsubscribe() {
	_ = s.UnsubscribeWithContext(context.Background())
}

func (s *Subscription[T]) UnsubscribeWithContext(ctx context.Context) (err error) {
	s.quitOnce.Do(func() {
		close(s.quit)
		select {
		case <-s.done:
		case <-ctx.Done():
			err = ctx.Err()
		}
	})
	return errors.WithStack(err)
}

// Close marks the end of the producer's values. Values already sent are still delivered before Done is
// closed. Send must not be called after Close.
func (s *Subscription[T]) Close() {
	s.closeOnce.Do(func() {
		close(s.in)
	})
}

// Client returns the consumer side of the subscription.
func (s *Subscription[T]) Client() *ClientSubscription[T] {
	return &ClientSubscription[T]{subscription: s}
}

func (s *Subscription[T]) Err() <-chan error {
	return s.err
}

func (s *Subscription[T]) Done() <-chan struct{} {
	return s.done
}

func (s *Subscription[T]) IsClosed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Send queues a value for the consumer. It fails once the subscription is closed.
func (s *Subscription[T]) Send(ctx context.Context, value T) error {
	select {
	case s.in <- value:
		return nil
	case <-s.done:
		return errors.Wrap(errs.InternalError, "subscription is closed")
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	}
}

// SendError queues an error for the consumer. It fails once the subscription is closed.
func (s *Subscription[T]) SendError(ctx context.Context, err error) error {
	select {
	case s.err <- err:
		return nil
	case <-s.done:
		return errors.Wrap(errs.InternalError, "subscription is closed")
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	}
}

func (s *Subscription[T]) run() {
	defer close(s.done)
	for {
		select {
		case <-s.quit:
			return
		case value, ok := <-s.in:
			if !ok {
				return
			}
			select {
			case s.channel <- value:
			case <-s.quit:
				return
			}
		}
	}
}

// ClientSubscription is the consumer's handle. It can only observe and cancel the subscription.
type ClientSubscription[T any] struct {
	subscription *Subscription[T]
}

func (c *ClientSubscription[T]) Unsubscribe() {
	c.subscription.Unsubscribe()
}

func (c *ClientSubscription[T]) UnsubscribeWithContext(ctx context.Context) error {
	return c.subscription.UnsubscribeWithContext(ctx)
}

func (c *ClientSubscription[T]) Err() <-chan error {
	return c.subscription.Err()
}

func (c *ClientSubscription[T]) Done() <-chan struct{} {
	return c.subscription.Done()
}

func (c *ClientSubscription[T]) IsClosed() bool {
	return c.subscription.IsClosed()
}
