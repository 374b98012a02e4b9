package subscription

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscription(t *testing.T) {
	t.Run("forwards_in_order", func(t *testing.T) {
		ch := make(chan int)
		sub := NewSubscription(ch)
		defer sub.Unsubscribe()

		ctx := context.Background()
		go func() {
			for i := 0; i < 5; i++ {
				_ = sub.Send(ctx, i)
			}
		}()

		for i := 0; i < 5; i++ {
			select {
			case v := <-ch:
				assert.Equal(t, i, v)
			case <-time.After(time.Second):
				t.Fatal("timeout waiting for value")
			}
		}
	})
	t.Run("send_after_unsubscribe", func(t *testing.T) {
		sub := NewSubscription(make(chan int))
		sub.Unsubscribe()

		client := sub.Client()
		assert.True(t, client.IsClosed())

		// the buffer may still accept values, but never past its capacity
		var err error
		for i := 0; i <= BufferSize; i++ {
			if err = sub.Send(context.Background(), i); err != nil {
				break
			}
		}
		require.Error(t, err)
	})
	t.Run("errors_are_delivered", func(t *testing.T) {
		sub := NewSubscription(make(chan int))
		defer sub.Unsubscribe()

		require.NoError(t, sub.SendError(context.Background(), assert.AnError))
		assert.ErrorIs(t, <-sub.Client().Err(), assert.AnError)
	})
	t.Run("close_delivers_buffered_values", func(t *testing.T) {
		ch := make(chan int)
		sub := NewSubscription(ch)
		defer sub.Unsubscribe()

		ctx := context.Background()
		for i := 0; i < BufferSize; i++ {
			require.NoError(t, sub.Send(ctx, i))
		}
		sub.Close()

		received := make([]int, 0, BufferSize)
		for len(received) < BufferSize {
			select {
			case v := <-ch:
				received = append(received, v)
			case <-time.After(time.Second):
				t.Fatal("timeout waiting for value")
			}
		}
		for i, v := range received {
			assert.Equal(t, i, v)
		}
		select {
		case <-sub.Done():
		case <-time.After(time.Second):
			t.Fatal("subscription is not done after close")
		}
	})
	t.Run("unsubscribe_is_idempotent", func(t *testing.T) {
		sub := NewSubscription(make(chan int))
		require.NoError(t, sub.UnsubscribeWithContext(context.Background()))
		require.NoError(t, sub.UnsubscribeWithContext(context.Background()))
		<-sub.Done()
	})
}
